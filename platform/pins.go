//go:build rp2040

package platform

import (
	"machine"

	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/hal"
)

type rp2Pin struct {
	p machine.Pin
	n int
}

// Pin maps a logical GP number to a hal.GPIOPin. Numbers outside
// GP0..GP28 return nil.
func Pin(n int) hal.GPIOPin {
	if n < 0 || n > 28 {
		return nil
	}
	return &rp2Pin{p: machine.Pin(n), n: n}
}

func (r *rp2Pin) ConfigureInput(pull hal.Pull) error {
	var mode machine.PinMode
	switch pull {
	case hal.PullUp:
		mode = machine.PinInputPullup
	case hal.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(b bool) { r.p.Set(b) }
func (r *rp2Pin) Get() bool  { return r.p.Get() }

func (r *rp2Pin) Toggle() {
	if r.p.Get() {
		r.p.Low()
	} else {
		r.p.High()
	}
}

func (r *rp2Pin) Number() int { return r.n }
