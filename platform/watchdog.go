//go:build rp2040

package platform

import (
	"device/rp"
	"machine"

	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/hal"
)

// rp2Watchdog wraps the hardware watchdog block. The same block owns the
// scratch registers, which survive a watchdog reset but not power loss,
// so both hal roles live here.
type rp2Watchdog struct{}

// Watchdog returns the one hardware watchdog.
func Watchdog() hal.Watchdog { return rp2Watchdog{} }

// Scratch returns the watchdog scratch bank as a hal.ScratchStore.
func Scratch() hal.ScratchStore { return rp2Watchdog{} }

func (rp2Watchdog) Configure(cfg hal.WatchdogConfig) error {
	return machine.Watchdog.Configure(machine.WatchdogConfig{
		TimeoutMillis: cfg.TimeoutMillis,
	})
}

func (rp2Watchdog) Start() error { return machine.Watchdog.Start() }
func (rp2Watchdog) Update()      { machine.Watchdog.Update() }

// The RP2040 has eight 32-bit scratch registers. Slots 0 and 1 carry the
// reset count and the fault code.
func scratchReg(slot int) interface {
	Get() uint32
	Set(uint32)
} {
	switch slot {
	case 0:
		return &rp.WATCHDOG.SCRATCH0
	case 1:
		return &rp.WATCHDOG.SCRATCH1
	case 2:
		return &rp.WATCHDOG.SCRATCH2
	case 3:
		return &rp.WATCHDOG.SCRATCH3
	case 4:
		return &rp.WATCHDOG.SCRATCH4
	case 5:
		return &rp.WATCHDOG.SCRATCH5
	case 6:
		return &rp.WATCHDOG.SCRATCH6
	case 7:
		return &rp.WATCHDOG.SCRATCH7
	default:
		return nil
	}
}

func (rp2Watchdog) Read(slot int) uint32 {
	r := scratchReg(slot)
	if r == nil {
		return 0
	}
	return r.Get()
}

func (rp2Watchdog) Write(slot int, v uint32) {
	if r := scratchReg(slot); r != nil {
		r.Set(v)
	}
}

// CausedByWatchdog checks the REASON register the hardware latches on a
// watchdog-triggered reboot. It reads zero after a power-on or run-pin
// reset.
func (rp2Watchdog) CausedByWatchdog() bool {
	return rp.WATCHDOG.REASON.Get() != 0
}
