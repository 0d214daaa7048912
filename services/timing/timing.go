// Package timing is the delay/sleep engine. It provides millisecond active
// delays and second-granularity low-power sleeps over two selectable
// back-ends: a continuously running millisecond tick counter, or a
// compare-match hardware counter clocked by the ULFRCO or the LFXO.
//
// One goroutine owns an Engine at a time; delays and sleeps are neither
// concurrent nor nested. The only state shared with interrupt context (the
// tick counter, the sleeping flag and the wake flag) is accessed through
// sync/atomic so the busy-wait and the post-wake reads never see stale
// values across the suspension point.
package timing

import (
	"sync/atomic"
)

// Engine owns the timing hardware. Create one with New and keep it for the
// life of the process; initialization of each back-end happens lazily on
// first use and exactly once.
type Engine struct {
	// ISR-shared fields first, 32-bit aligned. Accessed with sync/atomic
	// from both main and interrupt context.
	ticks    uint32
	sleeping uint32
	wake     uint32

	cfg  Config
	tick TickSource
	rtc  RTC
	em   EnergyController

	tickReady bool
	rtcReady  bool
}

// New builds an engine over the given hardware. tick may be nil when the
// configured back-end is BackendRTC; rtc and em are always required because
// Sleep uses the hardware counter regardless of the configured back-end.
func New(cfg Config, tick TickSource, rtc RTC, em EnergyController) *Engine {
	return &Engine{cfg: cfg, tick: tick, rtc: rtc, em: em}
}

// Delay waits for ms milliseconds on the configured back-end. Delay(0)
// initializes the back-end and returns without waiting. On BackendRTC a
// duration whose tick conversion exceeds the compare field is rejected
// with errcode.OutOfRange before any wait starts.
func (e *Engine) Delay(ms uint32) error {
	if e.cfg.Backend == BackendTick {
		return e.tickDelay(ms)
	}
	return e.rtcRun(ms, unitMillis)
}

// Sleep waits for s seconds in the low-power state of the configured
// oscillator. Sleep(0) initializes the counter back-end and returns
// without waiting. Sleep always uses the hardware counter, even when
// delays run on BackendTick.
func (e *Engine) Sleep(s uint32) error {
	return e.rtcRun(s, unitSeconds)
}

// WakeWasTimer reports whether the last sleep ended via the programmed
// compare match. It does not clear the flag.
func (e *Engine) WakeWasTimer() bool {
	return atomic.LoadUint32(&e.wake) != 0
}

// ClearWake unconditionally clears the wake flag.
func (e *Engine) ClearWake() {
	atomic.StoreUint32(&e.wake, 0)
}

// ElapsedSleepSeconds reads the hardware count, stops the counter, and
// returns the whole seconds the last sleep actually lasted. Meaningful
// only after a sleep has ended; after a delay, or before any sleep ran,
// the value is an unspecified tick residue.
func (e *Engine) ElapsedSleepSeconds() uint32 {
	n := e.rtc.Count()
	e.rtc.SetRunning(false)
	return n / e.cfg.Oscillator.Hz()
}

// Ticks returns the free-running millisecond counter of BackendTick. It
// wraps at 2^32 and is never reset.
func (e *Engine) Ticks() uint32 {
	return atomic.LoadUint32(&e.ticks)
}

// HandleTick is the periodic tick interrupt body. Bind it to the tick
// vector. It increments the counter and nothing else; it is safe at 1 kHz
// and never blocks.
func (e *Engine) HandleTick() {
	atomic.AddUint32(&e.ticks, 1)
}

// HandleCompareMatch is the compare-match interrupt body. Bind it to the
// counter's vector. It stops the counter, clears the interrupt source and,
// only when a sleep (not a delay) is in progress, raises the wake flag.
// Clock-gate teardown stays with the code that resumes after the wait.
func (e *Engine) HandleCompareMatch() {
	e.rtc.SetRunning(false)
	e.rtc.ClearInterrupt()
	if atomic.LoadUint32(&e.sleeping) != 0 {
		atomic.StoreUint32(&e.wake, 1)
	}
}
