// Package types holds the payload structs exchanged on the bus between
// services. Keep these small and JSON-serialisable; they cross service
// boundaries and may be forwarded to a host over the debug UART.
package types

// WakeCause says what ended a sleep.
type WakeCause string

const (
	// WakeTimer: the programmed compare match fired.
	WakeTimer WakeCause = "timer"
	// WakePin: an external pin interrupt ended the sleep early.
	WakePin WakeCause = "pin"
)

// WakeValue is published after every sleep, once the cause has been
// disambiguated and the elapsed hardware count read back.
type WakeValue struct {
	Cause    WakeCause `json:"cause"`
	ElapsedS uint32    `json:"elapsed_s"` // whole seconds actually slept
	TsMs     int64     `json:"ts_ms"`
}

// ButtonValue reports the logical state of the wake button.
type ButtonValue struct {
	Pressed bool  `json:"pressed"`
	TsMs    int64 `json:"ts_ms"`
}

// TemperatureValue in centi-degrees Celsius (no floats on the MCU path).
type TemperatureValue struct {
	CentiC int32 `json:"centi_c"`
	TsMs   int64 `json:"ts_ms"`
}

// HumidityValue in centi-percent relative humidity.
type HumidityValue struct {
	CentiPct int32 `json:"centi_pct"`
	TsMs     int64 `json:"ts_ms"`
}

// BatteryValue in millivolts, from the supply-rail ADC channel.
type BatteryValue struct {
	MilliV uint32 `json:"milli_v"`
	TsMs   int64  `json:"ts_ms"`
}
