//go:build efm32hg

package efm32hg

import (
	"powercode-go/errcode"
)

// hfrcoHz is the HFRCO default band the core runs from after reset.
const hfrcoHz = 14_000_000

// SysTick implements timing.TickSource over the Cortex-M system timer.
type SysTick struct{}

func (SysTick) CoreFrequency() uint32 { return hfrcoHz }

func (SysTick) Start(reload uint32) error {
	if reload == 0 || reload > 0x00ffffff {
		return errcode.InvalidParams
	}
	systRVR.Set(reload - 1)
	systCVR.Set(0) // any write clears current count
	systCSR.Set(systCLKSOURCE | systTICKINT | systENABLE)
	return nil
}

func (SysTick) SetRunning(on bool) {
	if on {
		systCSR.SetBits(systTICKINT | systENABLE)
	} else {
		// Must be off before any low-power entry or the tick interrupt
		// wakes the core every millisecond.
		systCSR.ClearBits(systTICKINT | systENABLE)
	}
}

var tickHandler func()

// BindSysTick routes the SysTick vector to h.
func BindSysTick(h func()) { tickHandler = h }

//go:export SysTick_Handler
func sysTickIRQ() {
	if tickHandler != nil {
		tickHandler()
	}
}
