package timing

import "powercode-go/dbprint"

// Config fixes an engine's back-end, oscillator and diagnostics. All of it
// is decided at build time: DefaultConfig reads the build-tag selection,
// and nothing here is changed after New.
type Config struct {
	Backend    Backend
	Oscillator Oscillator

	// AnnounceSleep emits a diagnostic line before each low-power entry.
	AnnounceSleep bool

	// Diag is the diagnostic sink. nil drops everything; sink failures
	// never affect timing behaviour.
	Diag *dbprint.Logger
}

// DefaultConfig returns the build-tag-selected configuration:
// tag timing_tick selects BackendTick (default BackendRTC),
// tag osc_lfxo selects the crystal (default ULFRCO),
// tag announce enables the sleep-entry diagnostic.
func DefaultConfig() Config {
	return Config{
		Backend:       defaultBackend,
		Oscillator:    defaultOscillator,
		AnnounceSleep: defaultAnnounce,
	}
}
