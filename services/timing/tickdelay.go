package timing

import (
	"runtime"
	"sync/atomic"
)

// tickDelay busy-waits on the free-running millisecond counter. The first
// call configures and starts the tick source (one interrupt per
// millisecond); later calls re-enable it for the wait and disable it again
// before returning, so no tick interrupts fire while idle.
func (e *Engine) tickDelay(ms uint32) error {
	if !e.tickReady {
		if err := e.tick.Start(e.tick.CoreFrequency() / 1000); err != nil {
			return err
		}
		e.cfg.Diag.Info("tick source initialized")
		e.tickReady = true
	} else if ms > 0 {
		e.tick.SetRunning(true)
	}

	if ms == 0 {
		return nil
	}

	// Wrap-safe: unsigned subtraction stays correct across the 2^32
	// rollover of the counter.
	start := atomic.LoadUint32(&e.ticks)
	for atomic.LoadUint32(&e.ticks)-start < ms {
		runtime.Gosched()
	}

	e.tick.SetRunning(false)
	return nil
}
