//go:build rp2040

package platform

import (
	"machine"
	"time"

	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/errcode"
)

// IR command bytes. The receiver only needs distinct codes; this is a
// generic NEC-style framing, not any manufacturer protocol.
const (
	irPowerOn  = 0xA1
	irPowerOff = 0xA2
	irTemp20   = 0xA4
	irFan1     = 0xA5
	irFan2     = 0xA6
)

const (
	irHeaderMark = 9000 * time.Microsecond
	irHeaderGap  = 4500 * time.Microsecond
	irBitMark    = 560 * time.Microsecond
	irZeroGap    = 560 * time.Microsecond
	irOneGap     = 1690 * time.Microsecond
)

// pwmSlice is the slice of the machine PWM API the carrier needs; the
// concrete machine type is unexported.
type pwmSlice interface {
	Configure(machine.PWMConfig) error
	Channel(machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// IRLED keys a 38 kHz PWM carrier on the IR pin. GP16 sits on PWM slice 0
// channel A.
type IRLED struct {
	pwm pwmSlice
	ch  uint8
	on  uint32
}

func NewIRLED() *IRLED { return &IRLED{pwm: machine.PWM0} }

func (t *IRLED) Init() error {
	err := t.pwm.Configure(machine.PWMConfig{
		Period: uint64(1e9) / 38000, // 38 kHz carrier
	})
	if err != nil {
		return errcode.IRInitFailed
	}
	ch, err := t.pwm.Channel(machine.Pin(PinIR))
	if err != nil {
		return errcode.IRInitFailed
	}
	t.ch = ch
	t.on = t.pwm.Top() / 3 // ~33% duty keeps the LED inside its rating
	t.pwm.Set(t.ch, 0)
	return nil
}

func (t *IRLED) PowerOn() bool          { return t.send(irPowerOn) }
func (t *IRLED) PowerOff() bool         { return t.send(irPowerOff) }
func (t *IRLED) SetTemperature20() bool { return t.send(irTemp20) }

func (t *IRLED) SetFanLevel(level int) bool {
	switch level {
	case 1:
		return t.send(irFan1)
	case 2:
		return t.send(irFan2)
	}
	return false
}

// send frames one command byte: header burst, 8 bits MSB-first with
// pulse-distance encoding, stop mark.
func (t *IRLED) send(cmd byte) bool {
	t.burst(irHeaderMark)
	t.gap(irHeaderGap)
	for bit := 7; bit >= 0; bit-- {
		t.burst(irBitMark)
		if cmd&(1<<uint(bit)) != 0 {
			t.gap(irOneGap)
		} else {
			t.gap(irZeroGap)
		}
	}
	t.burst(irBitMark)
	t.gap(irZeroGap)
	return true
}

func (t *IRLED) burst(d time.Duration) {
	t.pwm.Set(t.ch, t.on)
	time.Sleep(d)
	t.pwm.Set(t.ch, 0)
}

func (t *IRLED) gap(d time.Duration) {
	time.Sleep(d)
}
