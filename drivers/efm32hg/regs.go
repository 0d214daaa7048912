//go:build efm32hg

package efm32hg

import (
	"runtime/volatile"
	"unsafe"
)

// Peripheral base addresses (EFM32HG memory map).
const (
	cmuBase   = 0x400C8000
	rtcBase   = 0x40080000
	gpioBase  = 0x40006000
	adcBase   = 0x40002000
	leuart0   = 0x40084000
	systBase  = 0xE000E010
	scbSCRReg = 0xE000ED10
	nvicISER  = 0xE000E100
	nvicICPR  = 0xE000E280
)

func reg32(addr uintptr) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(addr))
}

// CMU registers.
var (
	cmuOSCENCMD     = reg32(cmuBase + 0x020)
	cmuLFCLKSEL     = reg32(cmuBase + 0x028)
	cmuSTATUS       = reg32(cmuBase + 0x02C)
	cmuHFCORECLKEN0 = reg32(cmuBase + 0x040)
	cmuHFPERCLKEN0  = reg32(cmuBase + 0x044)
	cmuLFACLKEN0    = reg32(cmuBase + 0x058)
	cmuLFBCLKEN0    = reg32(cmuBase + 0x060)
)

const (
	// OSCENCMD bits.
	cmuLFRCOEN  = 1 << 6
	cmuLFRCODIS = 1 << 7
	cmuLFXOEN   = 1 << 8
	cmuLFXODIS  = 1 << 9

	// STATUS bits.
	cmuLFRCOENS = 1 << 6
	cmuLFRCORDY = 1 << 7
	cmuLFXOENS  = 1 << 8
	cmuLFXORDY  = 1 << 9

	// LFCLKSEL: LFA clock select field and the ULFRCO extension bit.
	cmuLFAMask = 0x3
	cmuLFALFXO = 0x2
	cmuLFAE    = 1 << 16

	// HFCORECLKEN0 bits.
	cmuLE = 1 << 2

	// LFACLKEN0 bits.
	cmuRTCGate = 1 << 0

	// HFPERCLKEN0 bits.
	cmuGPIOGate = 1 << 8
	cmuADC0Gate = 1 << 5
)

// RTC registers.
var (
	rtcCTRL  = reg32(rtcBase + 0x000)
	rtcCNT   = reg32(rtcBase + 0x004)
	rtcCOMP0 = reg32(rtcBase + 0x008)
	rtcIFS   = reg32(rtcBase + 0x014)
	rtcIFC   = reg32(rtcBase + 0x018)
	rtcIEN   = reg32(rtcBase + 0x01C)
)

const (
	rtcCTRLEN    = 1 << 0
	rtcIntCOMP0  = 1 << 1
	rtcIRQn      = 11
	gpioEvenIRQn = 1
	gpioOddIRQn  = 9
)

// SysTick / SCB.
var (
	systCSR = reg32(systBase + 0x00)
	systRVR = reg32(systBase + 0x04)
	systCVR = reg32(systBase + 0x08)
	scbSCR  = reg32(scbSCRReg)
)

const (
	systENABLE    = 1 << 0
	systTICKINT   = 1 << 1
	systCLKSOURCE = 1 << 2
	scbSLEEPDEEP  = 1 << 2
)

func nvicEnable(irq uint32)       { reg32(nvicISER).Set(1 << irq) }
func nvicClearPending(irq uint32) { reg32(nvicICPR).Set(1 << irq) }
