//go:build !osc_lfxo

package timing

const defaultOscillator = OscULFRCO
