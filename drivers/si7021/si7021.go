// Package si7021 provides a driver for the Si7021 temperature/humidity
// sensor found on the starter kit. Reads use the chip's hold-master mode:
// the sensor stretches the I²C clock until the conversion finishes, so a
// single transaction returns the value.
//
// NOTE: I2C.Tx MUST perform a write followed by a repeated-start read when
// both w and r are provided, without releasing the bus.
//
// The driver avoids floating point; values come back in centi-units
// (centi-°C and centi-%RH).
package si7021

import (
	"errors"

	"tinygo.org/x/drivers"
)

// I2C address.
const Address = 0x40

// Commands (per datasheet).
const (
	cmdMeasureRHHold   = 0xE5
	cmdMeasureTempHold = 0xE3
	cmdReadPrevTemp    = 0xE0 // temperature from the last RH conversion, no CRC
	cmdReset           = 0xFE
)

// Errors returned by the driver.
var (
	ErrCRC      = errors.New("si7021: crc mismatch")
	ErrProtocol = errors.New("si7021: protocol error")
)

// Device wraps an I2C connection to an Si7021.
type Device struct {
	bus     drivers.I2C
	Address uint16

	buf [3]byte // reuse buffer to avoid allocations
}

// New creates a new Si7021 connection. The I2C bus must already be
// configured. This only creates the Device object; it does not touch the
// sensor.
func New(bus drivers.I2C) Device {
	return Device{bus: bus, Address: Address}
}

// Reset issues a soft reset. The sensor needs up to 15 ms before the next
// command; the caller owns that wait.
func (d *Device) Reset() error {
	return d.bus.Tx(d.Address, []byte{cmdReset}, nil)
}

// ReadTemperature returns the temperature in centi-degrees Celsius.
func (d *Device) ReadTemperature() (int32, error) {
	code, err := d.measure(cmdMeasureTempHold, true)
	if err != nil {
		return 0, err
	}
	return tempCentiC(code), nil
}

// ReadHumidity returns the relative humidity in centi-percent, clamped to
// 0..10000 as the datasheet allows codes slightly outside the range.
func (d *Device) ReadHumidity() (int32, error) {
	code, err := d.measure(cmdMeasureRHHold, true)
	if err != nil {
		return 0, err
	}
	rh := (12500*int32(code))/65536 - 600
	if rh < 0 {
		rh = 0
	}
	if rh > 10000 {
		rh = 10000
	}
	return rh, nil
}

// ReadPreviousTemperature returns the temperature sampled during the last
// humidity conversion, saving one conversion when both values are wanted.
func (d *Device) ReadPreviousTemperature() (int32, error) {
	code, err := d.measure(cmdReadPrevTemp, false)
	if err != nil {
		return 0, err
	}
	return tempCentiC(code), nil
}

func (d *Device) measure(cmd byte, withCRC bool) (uint16, error) {
	n := 2
	if withCRC {
		n = 3
	}
	if err := d.bus.Tx(d.Address, []byte{cmd}, d.buf[:n]); err != nil {
		return 0, err
	}
	code := uint16(d.buf[0])<<8 | uint16(d.buf[1])
	if withCRC && crc8(d.buf[:2]) != d.buf[2] {
		return 0, ErrCRC
	}
	if code == 0 {
		// The sensor never returns an all-zero code; the bus read back
		// nothing useful.
		return 0, ErrProtocol
	}
	return code, nil
}

func tempCentiC(code uint16) int32 {
	return (17572*int32(code))/65536 - 4685
}

// crc8 is the sensor's checksum: polynomial x^8 + x^5 + x^4 + 1, init 0.
func crc8(data []byte) byte {
	var crc byte
	for _, b := range data {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ 0x31
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
