package timing

// Backend selects the hardware mechanism behind Delay.
type Backend uint8

const (
	// BackendTick measures delays with a free-running 1 kHz tick interrupt
	// and a busy-wait on the tick delta. The CPU stays in its run state for
	// the whole wait; that is the price of millisecond granularity, not an
	// oversight. Use BackendRTC when power matters more than resolution.
	BackendTick Backend = iota

	// BackendRTC measures delays with the 24-bit compare-match counter and
	// parks the CPU in a low-power state until the compare interrupt.
	BackendRTC
)

// Oscillator selects the clock source driving the compare-match counter.
// It fixes both the tick frequency and the reachable power depth: with the
// crystal the core can only go as deep as a state that keeps the crystal
// running.
type Oscillator uint8

const (
	// OscULFRCO is the ultra-low-frequency RC oscillator, 1000 Hz nominal.
	OscULFRCO Oscillator = iota
	// OscLFXO is the low-frequency crystal, 32768 Hz nominal.
	OscLFXO
)

// Hz returns the oscillator's nominal tick frequency.
func (o Oscillator) Hz() uint32 {
	if o == OscLFXO {
		return freqLFXO
	}
	return freqULFRCO
}

func (o Oscillator) String() string {
	if o == OscLFXO {
		return "LFXO"
	}
	return "ULFRCO"
}

const (
	freqULFRCO = 1000
	freqLFXO   = 32768

	// compareMax is the largest value the counter's 24-bit compare field
	// holds. Conversions above it are rejected before any wait starts.
	compareMax = 0x00ffffff
)

// TickSource is the periodic-interrupt counter behind BackendTick
// (SysTick-shaped). Start configures the reload value and starts the
// counter in one step; SetRunning gates the tick interrupt and counter
// together afterwards.
type TickSource interface {
	Start(ticksPerInterrupt uint32) error
	SetRunning(on bool)
	CoreFrequency() uint32
}

// RTC is the compare-match counter peripheral behind BackendRTC.
//
// Init performs the one-time bring-up: enable the oscillator, route it to
// the counter clock, enable the peripheral clock gate and the compare
// interrupt, and leave the counter stopped. The engine owns the gate while
// a wait is active and disables it before returning to the caller.
type RTC interface {
	Init(osc Oscillator)
	GateClock(on bool)
	SetCompare(ticks uint32)
	SetRunning(on bool)
	Count() uint32
	ClearInterrupt()
}

// EnergyController parks the CPU until an interrupt fires. Implementations
// save and restore clock and oscillator configuration across the
// transition.
type EnergyController interface {
	// DeepSleep is the deepest state: every clock but the ULFRCO stopped.
	DeepSleep()
	// StandbySleep keeps the low-frequency oscillators running, for use
	// when the crystal drives the counter.
	StandbySleep()
}
