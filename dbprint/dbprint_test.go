package dbprint

import (
	"bytes"
	"errors"
	"testing"
)

func TestNilLoggerIsSilent(t *testing.T) {
	var l *Logger
	if l.Enabled() {
		t.Fatal("nil logger reports enabled")
	}
	// Must not panic.
	l.Info("x")
	l.CritInt("v=", 7, "")
}

func TestLevelsAndInt(t *testing.T) {
	var b bytes.Buffer
	l := New(&b)

	l.Info("RTC initialized with LFXO")
	l.WarnInt("slept ", 5, " s")
	l.Crit("Delay too long, can't fit in the field!")

	got := b.String()
	want := "INFO: RTC initialized with LFXO\r\n" +
		"WARN: slept 5 s\r\n" +
		"CRIT: Delay too long, can't fit in the field!\r\n"
	if got != want {
		t.Errorf("output mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestInfoHex(t *testing.T) {
	var b bytes.Buffer
	l := New(&b)
	l.InfoHex("compare=", 0xFFFFFF, "")
	if got := b.String(); got != "INFO: compare=00FFFFFF\r\n" {
		t.Errorf("hex output %q", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("uart gone") }

func TestWriteErrorsDropped(t *testing.T) {
	l := New(failingWriter{})
	// Errors from the sink must be invisible to callers.
	l.Info("boot")
	l.InfoInt("ticks ", 163840, "")
}
