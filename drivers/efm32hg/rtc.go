//go:build efm32hg

package efm32hg

import (
	"powercode-go/services/timing"
)

// RTC implements timing.RTC over the hardware counter.
type RTC struct{}

func (RTC) Init(osc timing.Oscillator) {
	// Low-energy module interface clock first, then the LFA routing.
	cmuHFCORECLKEN0.SetBits(cmuLE)
	if osc == timing.OscLFXO {
		cmuOSCENCMD.Set(cmuLFXOEN)
		for cmuSTATUS.Get()&cmuLFXORDY == 0 {
		}
		cmuLFCLKSEL.ReplaceBits(cmuLFALFXO, cmuLFAMask, 0)
	} else {
		// The ULFRCO is always on; the LFAE bit routes it to LFA.
		cmuLFCLKSEL.SetBits(cmuLFAE)
	}
	cmuLFACLKEN0.SetBits(cmuRTCGate)

	rtcIEN.SetBits(rtcIntCOMP0)
	rtcIFC.Set(rtcIntCOMP0)
	nvicClearPending(rtcIRQn)
	nvicEnable(rtcIRQn)

	// Counter stays stopped until a wait programs it.
	rtcCTRL.ClearBits(rtcCTRLEN)
}

func (RTC) GateClock(on bool) {
	if on {
		cmuLFACLKEN0.SetBits(cmuRTCGate)
	} else {
		cmuLFACLKEN0.ClearBits(cmuRTCGate)
	}
}

func (RTC) SetCompare(ticks uint32) {
	rtcCOMP0.Set(ticks & 0x00ffffff)
}

func (RTC) SetRunning(on bool) {
	if on {
		// Starting also restarts the count from the wait's beginning.
		rtcCNT.Set(0)
		rtcCTRL.SetBits(rtcCTRLEN)
	} else {
		rtcCTRL.ClearBits(rtcCTRLEN)
	}
}

func (RTC) Count() uint32 { return rtcCNT.Get() }

func (RTC) ClearInterrupt() { rtcIFC.Set(rtcIntCOMP0) }

var rtcHandler func()

// BindRTC routes the RTC compare vector to h. Call it once during boot,
// before the first sleep.
func BindRTC(h func()) { rtcHandler = h }

//go:export RTC_IRQHandler
func rtcIRQ() {
	if rtcHandler != nil {
		rtcHandler()
	}
}
