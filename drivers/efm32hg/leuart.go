//go:build efm32hg

package efm32hg

// LEUART0 registers, for the debug console.
var (
	leuartCMD    = reg32(leuart0 + 0x004)
	leuartSTATUS = reg32(leuart0 + 0x008)
	leuartCLKDIV = reg32(leuart0 + 0x00C)
	leuartTXDATA = reg32(leuart0 + 0x028)
	leuartROUTE  = reg32(leuart0 + 0x054)
)

const (
	leuartCMDTxEn    = 1 << 1
	leuartStatusTXBL = 1 << 5
	leuartGate       = 1 << 0 // LFBCLKEN0 bit for LEUART0

	// ROUTE: enable TX on the board's debug location.
	leuartRouteTX = 1<<1 | 0x0<<8
)

// DebugConsole is a write-only LEUART0 binding used as the dbprint sink.
// The LEUART runs from the LFB clock, so it keeps working in EM2.
type DebugConsole struct{}

// Init brings up LEUART0 at 9600 baud on the debug location.
func (DebugConsole) Init() {
	cmuHFCORECLKEN0.SetBits(cmuLE)
	cmuLFBCLKEN0.SetBits(leuartGate)
	leuartCLKDIV.Set(0) // 9600 baud at the undivided LFB clock
	leuartROUTE.Set(leuartRouteTX)
	leuartCMD.Set(leuartCMDTxEn)
}

func (DebugConsole) Write(p []byte) (int, error) {
	for _, b := range p {
		for leuartSTATUS.Get()&leuartStatusTXBL == 0 {
		}
		leuartTXDATA.Set(uint32(b))
	}
	return len(p), nil
}
