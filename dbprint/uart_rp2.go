//go:build rp2040

package dbprint

import (
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

// NewUART configures the given uartx port for debug output and returns a
// logger writing to it. Defaults inside uartx apply when baud is zero.
func NewUART(u *uartx.UART, baud uint32, tx, rx machine.Pin) *Logger {
	_ = u.Configure(uartx.UARTConfig{
		BaudRate: baud,
		TX:       tx,
		RX:       rx,
	})
	return New(u)
}
