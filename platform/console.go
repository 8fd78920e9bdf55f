//go:build rp2040

package platform

import (
	"machine"

	"github.com/jangala-dev/tinygo-uartx/uartx"

	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/hal"
)

// SerialConsole is the UART0 menu console (115200 8N1 on the default
// Pico pins). Reads are non-blocking against the driver's RX ring.
type SerialConsole struct {
	u *uartx.UART
}

func NewSerialConsole() (*SerialConsole, error) {
	u := uartx.UART0
	err := u.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	if err != nil {
		return nil, err
	}
	return &SerialConsole{u: u}, nil
}

func (c *SerialConsole) ReadByte() (byte, bool) {
	if c.u.Buffered() == 0 {
		return 0, false
	}
	b, err := c.u.ReadByte()
	if err != nil {
		return 0, false
	}
	return b, true
}

func (c *SerialConsole) WriteString(s string) {
	_, _ = c.u.Write([]byte(s))
}

var _ hal.Console = (*SerialConsole)(nil)
