// Package dbprint is the leveled diagnostic sink for debug output. It is
// deliberately tiny: fixed text plus an optional integer, rendered through
// x/conv into a stack buffer, no fmt on the output path. A nil *Logger is
// valid and drops everything, so callers never guard their log sites.
//
// Output failures are swallowed: diagnostics must never change timing
// behaviour.
package dbprint

import (
	"io"
	"sync"

	"powercode-go/x/conv"
)

type Logger struct {
	mu  sync.Mutex
	out io.Writer
}

// New returns a logger writing to w. A nil writer yields a silent logger.
func New(w io.Writer) *Logger {
	if w == nil {
		return nil
	}
	return &Logger{out: w}
}

// Enabled reports whether output would go anywhere.
func (l *Logger) Enabled() bool { return l != nil && l.out != nil }

func (l *Logger) Info(msg string) { l.line("INFO: ", msg) }
func (l *Logger) Warn(msg string) { l.line("WARN: ", msg) }
func (l *Logger) Crit(msg string) { l.line("CRIT: ", msg) }

// InfoInt prints pre, the decimal value, then post on one line.
func (l *Logger) InfoInt(pre string, v uint32, post string) { l.lineInt("INFO: ", pre, v, post) }
func (l *Logger) WarnInt(pre string, v uint32, post string) { l.lineInt("WARN: ", pre, v, post) }
func (l *Logger) CritInt(pre string, v uint32, post string) { l.lineInt("CRIT: ", pre, v, post) }

// InfoHex is like InfoInt with 8-digit hex rendering.
func (l *Logger) InfoHex(pre string, v uint32, post string) {
	if !l.Enabled() {
		return
	}
	var buf [8]byte
	l.write("INFO: "+pre, string(conv.U32Hex(buf[:], v)), post)
}

func (l *Logger) line(prefix, msg string) {
	if !l.Enabled() {
		return
	}
	l.write(prefix, msg, "")
}

func (l *Logger) lineInt(prefix, pre string, v uint32, post string) {
	if !l.Enabled() {
		return
	}
	var buf [10]byte
	l.write(prefix+pre, string(conv.Utoa(buf[:], uint64(v))), post)
}

func (l *Logger) write(parts ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range parts {
		if p == "" {
			continue
		}
		_, _ = io.WriteString(l.out, p)
	}
	_, _ = io.WriteString(l.out, "\r\n")
}
