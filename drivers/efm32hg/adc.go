//go:build efm32hg

package efm32hg

// ADC0 registers.
var (
	adcCTRL       = reg32(adcBase + 0x000)
	adcCMD        = reg32(adcBase + 0x004)
	adcSTATUS     = reg32(adcBase + 0x008)
	adcSINGLECTRL = reg32(adcBase + 0x00C)
	adcSINGLEDATA = reg32(adcBase + 0x024)
)

const (
	adcCMDSingleStart = 1 << 0
	adcSingleDataV    = 1 << 16 // STATUS: single conversion data valid

	// SINGLECTRL: 12-bit resolution, 1.25 V reference, VDD/3 input.
	adcSingleVDDDiv3 = 0x0 |
		0x9<<8 | // INPUTSEL = VDD/3
		0x0<<16 | // REF = 1.25 V
		0x0 << 4 // RES = 12 bit
)

// Battery reads the supply rail through the ADC's internal VDD/3 channel.
// It implements telemetry.BatteryReader.
type Battery struct{}

func (Battery) ReadBatteryMilliV() (uint32, error) {
	cmuHFPERCLKEN0.SetBits(cmuADC0Gate)
	adcSINGLECTRL.Set(adcSingleVDDDiv3)
	adcCMD.Set(adcCMDSingleStart)
	for adcSTATUS.Get()&adcSingleDataV == 0 {
	}
	raw := adcSINGLEDATA.Get() & 0xFFF
	cmuHFPERCLKEN0.ClearBits(cmuADC0Gate)

	// raw/4095 of the 1.25 V reference, times 3 for the divider.
	return raw * 1250 * 3 / 4095, nil
}
