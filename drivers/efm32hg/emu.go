//go:build efm32hg

package efm32hg

import (
	"device/arm"
)

// EMU implements timing.EnergyController. Both EM2 and EM3 are SLEEPDEEP
// plus WFI on this core; EM3 additionally stops the low-frequency
// oscillators so only the ULFRCO keeps ticking.
type EMU struct{}

func (EMU) StandbySleep() {
	sleepDeep()
}

func (EMU) DeepSleep() {
	status := cmuSTATUS.Get()
	cmuOSCENCMD.Set(cmuLFXODIS | cmuLFRCODIS)

	sleepDeep()

	// Restore the oscillators that were running before entry.
	if status&cmuLFRCOENS != 0 {
		cmuOSCENCMD.Set(cmuLFRCOEN)
		for cmuSTATUS.Get()&cmuLFRCORDY == 0 {
		}
	}
	if status&cmuLFXOENS != 0 {
		cmuOSCENCMD.Set(cmuLFXOEN)
		for cmuSTATUS.Get()&cmuLFXORDY == 0 {
		}
	}
}

func sleepDeep() {
	scbSCR.SetBits(scbSLEEPDEEP)
	arm.Asm("wfi")
	scbSCR.ClearBits(scbSLEEPDEEP)
}
