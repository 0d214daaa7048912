package timing

import (
	"sync/atomic"

	"powercode-go/errcode"
)

type unit uint8

const (
	unitMillis unit = iota
	unitSeconds
)

// rtcRun is the shared wait path for both Delay (milliseconds) and Sleep
// (seconds) on the hardware counter. d == 0 initializes only. Every exit
// path leaves the counter stopped and the peripheral clock gate disabled.
func (e *Engine) rtcRun(d uint32, u unit) error {
	if !e.rtcReady {
		e.rtcInit()
	} else if d > 0 {
		e.rtc.GateClock(true)
	}

	if d == 0 {
		// Init-only call: the gate opened during bring-up is not needed
		// until a real wait.
		e.rtc.GateClock(false)
		return nil
	}

	if u == unitSeconds && e.cfg.AnnounceSleep {
		if e.cfg.Oscillator == OscULFRCO {
			e.cfg.Diag.InfoInt("Sleeping in EM3 for ", d, " s")
		} else {
			e.cfg.Diag.InfoInt("Sleeping in EM2 for ", d, " s")
		}
	}

	ticks := e.ticksFor(d, u)
	if ticks > compareMax {
		e.cfg.Diag.Crit("Wait too long, can't fit in the compare field")
		e.rtc.GateClock(false)
		return errcode.OutOfRange
	}
	e.rtc.SetCompare(uint32(ticks))

	if u == unitSeconds {
		atomic.StoreUint32(&e.sleeping, 1)
	}

	e.rtc.SetRunning(true)

	// The compare-match handler runs to completion before execution
	// resumes here; hardware guarantees that ordering, not a lock.
	if e.cfg.Oscillator == OscULFRCO {
		e.em.DeepSleep()
	} else {
		e.em.StandbySleep()
	}

	if u == unitSeconds {
		atomic.StoreUint32(&e.sleeping, 0)
	}

	e.rtc.GateClock(false)
	return nil
}

// ticksFor converts a duration to native counter ticks at the active
// oscillator frequency. uint64 math: 32768 Hz times a uint32 duration
// overflows 32 bits long before it overflows the compare check.
func (e *Engine) ticksFor(d uint32, u unit) uint64 {
	hz := uint64(e.cfg.Oscillator.Hz())
	if u == unitMillis {
		return uint64(d) * hz / 1000
	}
	return uint64(d) * hz
}

func (e *Engine) rtcInit() {
	e.rtc.Init(e.cfg.Oscillator)
	if e.cfg.Oscillator == OscULFRCO {
		e.cfg.Diag.Info("RTC initialized with ULFRCO")
	} else {
		e.cfg.Diag.Info("RTC initialized with LFXO")
	}
	e.rtcReady = true
}
