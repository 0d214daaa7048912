//go:build timing_tick

package timing

const defaultBackend = BackendTick
