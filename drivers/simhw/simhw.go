// Package simhw simulates the timing and wake hardware on a host build,
// the way the MCU drivers ship host simulators next to their register
// code. Waits run in scaled wall-clock time so a simulated 5 s sleep can
// finish in milliseconds.
package simhw

import (
	"sync"
	"time"

	"powercode-go/services/timing"
	"powercode-go/services/wakewatch"
)

// Tick simulates the periodic tick source. Handler must be set (to the
// engine's HandleTick) before the first Start.
type Tick struct {
	Handler func()
	// Scale divides real time: 1000 makes a simulated millisecond one
	// microsecond of wall time. Zero means 1.
	Scale uint32

	mu      sync.Mutex
	running bool
}

func (t *Tick) CoreFrequency() uint32 { return 14_000_000 }

func (t *Tick) Start(reload uint32) error {
	t.SetRunning(true)
	return nil
}

func (t *Tick) SetRunning(on bool) {
	t.mu.Lock()
	was := t.running
	t.running = on
	t.mu.Unlock()
	if on && !was {
		go t.pump()
	}
}

func (t *Tick) pump() {
	period := time.Millisecond / time.Duration(t.scale())
	if period <= 0 {
		period = time.Microsecond
	}
	for {
		t.mu.Lock()
		run := t.running
		t.mu.Unlock()
		if !run {
			return
		}
		t.Handler()
		time.Sleep(period)
	}
}

func (t *Tick) scale() uint32 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

// RTC simulates the compare-match counter. Handler must be set (to the
// engine's HandleCompareMatch) before the first wait.
type RTC struct {
	Handler func()
	Scale   uint32

	mu      sync.Mutex
	osc     timing.Oscillator
	gate    bool
	compare uint32
	count   uint32
	running bool
}

func (r *RTC) Init(osc timing.Oscillator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.osc = osc
	r.gate = true
}

func (r *RTC) GateClock(on bool) {
	r.mu.Lock()
	r.gate = on
	r.mu.Unlock()
}

func (r *RTC) SetCompare(ticks uint32) {
	r.mu.Lock()
	r.compare = ticks
	r.mu.Unlock()
}

func (r *RTC) SetRunning(on bool) {
	r.mu.Lock()
	if on {
		r.count = 0
	}
	r.running = on
	r.mu.Unlock()
}

func (r *RTC) Count() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

func (r *RTC) ClearInterrupt() {}

func (r *RTC) scale() uint32 {
	if r.Scale == 0 {
		return 1
	}
	return r.Scale
}

// runToCompare blocks for the scaled wait, then delivers the compare
// interrupt the way the hardware would: handler first, then resume.
func (r *RTC) runToCompare() {
	r.mu.Lock()
	ticks := r.compare
	hz := r.osc.Hz()
	r.mu.Unlock()

	d := time.Duration(ticks) * time.Second / time.Duration(hz) / time.Duration(r.scale())
	time.Sleep(d)

	r.mu.Lock()
	r.count = ticks
	r.mu.Unlock()
	r.Handler()
}

// Energy simulates the low-power states by delegating the wait to the RTC.
type Energy struct {
	RTC *RTC
}

func (e *Energy) DeepSleep()    { e.RTC.runToCompare() }
func (e *Energy) StandbySleep() { e.RTC.runToCompare() }

// Pin simulates the wake button for wakewatch.
type Pin struct {
	mu      sync.Mutex
	level   bool
	handler func()
}

func (p *Pin) Get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

func (p *Pin) Number() int { return 0 }

func (p *Pin) SetIRQ(edge wakewatch.Edge, h func()) error {
	p.mu.Lock()
	p.handler = h
	p.mu.Unlock()
	return nil
}

func (p *Pin) ClearIRQ() error {
	p.mu.Lock()
	p.handler = nil
	p.mu.Unlock()
	return nil
}

// Set drives the simulated line and fires the registered interrupt.
func (p *Pin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	h := p.handler
	p.mu.Unlock()
	if h != nil {
		h()
	}
}

// I2C answers Si7021 hold-master reads with slowly drifting codes, enough
// to watch telemetry move on a host run.
type I2C struct {
	mu   sync.Mutex
	n    uint16
	Fail bool
}

func (f *I2C) Tx(addr uint16, w, r []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return errSimNak
	}
	f.n++
	var code uint16
	switch {
	case len(w) == 1 && w[0] == 0xE5: // humidity, hold master
		code = 0x7800 + f.n*16
	case len(w) == 1 && (w[0] == 0xE3 || w[0] == 0xE0): // temperature
		code = 0x6600 + f.n*8
	default:
		return nil
	}
	r[0] = byte(code >> 8)
	r[1] = byte(code)
	if len(r) == 3 {
		r[2] = sensorCRC(r[:2])
	}
	return nil
}

// sensorCRC is the sensor's CRC-8, polynomial 0x31, init 0x00.
func sensorCRC(data []byte) byte {
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

type simErr string

func (e simErr) Error() string { return string(e) }

const errSimNak = simErr("simhw: nak")
