package si7021

import (
	"errors"
	"testing"
)

// fakeI2C scripts one response per command byte.
type fakeI2C struct {
	responses map[byte][]byte
	lastAddr  uint16
	err       error
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	f.lastAddr = addr
	if f.err != nil {
		return f.err
	}
	if len(w) != 1 {
		return errors.New("unexpected write")
	}
	resp, ok := f.responses[w[0]]
	if !ok {
		return errors.New("unexpected command")
	}
	copy(r, resp)
	return nil
}

func withCRC(msb, lsb byte) []byte {
	return []byte{msb, lsb, crc8([]byte{msb, lsb})}
}

func TestReadTemperature(t *testing.T) {
	// code 0x6000 = 24576: 17572*24576/65536 - 4685 = 6589 - 4685 = 1904.
	f := &fakeI2C{responses: map[byte][]byte{
		cmdMeasureTempHold: withCRC(0x60, 0x00),
	}}
	d := New(f)

	got, err := d.ReadTemperature()
	if err != nil {
		t.Fatalf("ReadTemperature: %v", err)
	}
	if got != 1904 {
		t.Errorf("temperature = %d centi-C, want 1904", got)
	}
	if f.lastAddr != Address {
		t.Errorf("addressed 0x%02X, want 0x%02X", f.lastAddr, Address)
	}
}

func TestReadHumidityClamped(t *testing.T) {
	// code 0xFFFF yields a raw value above 100 %RH; driver clamps.
	f := &fakeI2C{responses: map[byte][]byte{
		cmdMeasureRHHold: withCRC(0xFF, 0xFF),
	}}
	d := New(f)

	got, err := d.ReadHumidity()
	if err != nil {
		t.Fatalf("ReadHumidity: %v", err)
	}
	if got != 10000 {
		t.Errorf("humidity = %d, want clamp to 10000", got)
	}
}

func TestCRCMismatch(t *testing.T) {
	f := &fakeI2C{responses: map[byte][]byte{
		cmdMeasureTempHold: {0x60, 0x00, 0x00}, // bad checksum
	}}
	d := New(f)

	if _, err := d.ReadTemperature(); err != ErrCRC {
		t.Errorf("err = %v, want %v", err, ErrCRC)
	}
}

func TestPreviousTemperatureSkipsCRC(t *testing.T) {
	f := &fakeI2C{responses: map[byte][]byte{
		cmdReadPrevTemp: {0x60, 0x00},
	}}
	d := New(f)

	got, err := d.ReadPreviousTemperature()
	if err != nil {
		t.Fatalf("ReadPreviousTemperature: %v", err)
	}
	if got != 1904 {
		t.Errorf("temperature = %d centi-C, want 1904", got)
	}
}

func TestBusErrorPropagates(t *testing.T) {
	busErr := errors.New("nak")
	d := New(&fakeI2C{err: busErr})
	if _, err := d.ReadTemperature(); err != busErr {
		t.Errorf("err = %v, want %v", err, busErr)
	}
}

func TestZeroCodeIsProtocolError(t *testing.T) {
	f := &fakeI2C{responses: map[byte][]byte{
		cmdMeasureTempHold: withCRC(0x00, 0x00),
	}}
	d := New(f)
	if _, err := d.ReadTemperature(); err != ErrProtocol {
		t.Errorf("err = %v, want %v", err, ErrProtocol)
	}
}
