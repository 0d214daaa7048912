//go:build efm32hg

package efm32hg

import (
	"runtime/volatile"

	"powercode-go/errcode"
	"powercode-go/services/wakewatch"
)

// Per-port register offsets (stride 0x24).
const (
	gpioPortStride = 0x24
	gpioMODEL      = 0x04
	gpioMODEH      = 0x08
	gpioDOUT       = 0x0C
	gpioDIN        = 0x1C

	// Shared external-interrupt registers.
	gpioEXTIPSELL = 0x100
	gpioEXTIPSELH = 0x104
	gpioEXTIRISE  = 0x108
	gpioEXTIFALL  = 0x10C
	gpioIEN       = 0x110
	gpioIF        = 0x114
	gpioIFC       = 0x11C

	gpioModeInputPull = 0x3
)

// Pin identifies one GPIO as port (0 = A) and pin number.
type Pin struct {
	Port uint8
	Pin  uint8
}

func (p Pin) portReg(off uintptr) *volatile.Register32 {
	return reg32(gpioBase + uintptr(p.Port)*gpioPortStride + off)
}

// ConfigureInputPull enables the GPIO clock, sets input-with-pull mode and
// drives DOUT to select pull-up (true) or pull-down (false).
func (p Pin) ConfigureInputPull(up bool) {
	cmuHFPERCLKEN0.SetBits(cmuGPIOGate)

	mode := p.portReg(gpioMODEL)
	shift := uint32(p.Pin) * 4
	if p.Pin >= 8 {
		mode = p.portReg(gpioMODEH)
		shift = uint32(p.Pin-8) * 4
	}
	mode.ReplaceBits(gpioModeInputPull, 0xF, uint8(shift))

	if up {
		p.portReg(gpioDOUT).SetBits(1 << p.Pin)
	} else {
		p.portReg(gpioDOUT).ClearBits(1 << p.Pin)
	}
}

func (p Pin) Get() bool {
	return p.portReg(gpioDIN).HasBits(1 << p.Pin)
}

func (p Pin) Number() int { return int(p.Port)*16 + int(p.Pin) }

// One external interrupt line per pin number, shared across ports.
var extiHandlers [16]func()

// SetIRQ routes the pin's external interrupt line to its port, selects the
// edges and enables the matching even/odd NVIC vector.
func (p Pin) SetIRQ(edge wakewatch.Edge, handler func()) error {
	if edge == wakewatch.EdgeNone || handler == nil {
		return errcode.InvalidParams
	}
	if extiHandlers[p.Pin] != nil {
		return errcode.PinInUse
	}
	extiHandlers[p.Pin] = handler

	sel := reg32(gpioBase + gpioEXTIPSELL)
	shift := uint32(p.Pin) * 4
	if p.Pin >= 8 {
		sel = reg32(gpioBase + gpioEXTIPSELH)
		shift = uint32(p.Pin-8) * 4
	}
	sel.ReplaceBits(uint32(p.Port), 0xF, uint8(shift))

	mask := uint32(1) << p.Pin
	if edge == wakewatch.EdgeRising || edge == wakewatch.EdgeBoth {
		reg32(gpioBase + gpioEXTIRISE).SetBits(mask)
	}
	if edge == wakewatch.EdgeFalling || edge == wakewatch.EdgeBoth {
		reg32(gpioBase + gpioEXTIFALL).SetBits(mask)
	}
	reg32(gpioBase + gpioIFC).Set(mask)
	reg32(gpioBase + gpioIEN).SetBits(mask)

	if p.Pin%2 == 0 {
		nvicEnable(gpioEvenIRQn)
	} else {
		nvicEnable(gpioOddIRQn)
	}
	return nil
}

func (p Pin) ClearIRQ() error {
	mask := uint32(1) << p.Pin
	reg32(gpioBase + gpioIEN).ClearBits(mask)
	reg32(gpioBase + gpioIFC).Set(mask)
	extiHandlers[p.Pin] = nil
	return nil
}

func dispatchGPIO(parity uint32) {
	flags := reg32(gpioBase + gpioIF).Get()
	for pin := parity; pin < 16; pin += 2 {
		mask := uint32(1) << pin
		if flags&mask == 0 {
			continue
		}
		reg32(gpioBase + gpioIFC).Set(mask)
		if h := extiHandlers[pin]; h != nil {
			h()
		}
	}
}

//go:export GPIO_EVEN_IRQHandler
func gpioEvenIRQ() { dispatchGPIO(0) }

//go:export GPIO_ODD_IRQHandler
func gpioOddIRQ() { dispatchGPIO(1) }
