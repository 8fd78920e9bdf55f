// Package boot runs the one-shot power-up sequence: visual boot cue,
// diagnostic classification, boot screen, IR bring-up and finally arming
// the watchdog. The watchdog is deliberately armed last so a hang during
// bring-up stays visible instead of turning into a reset storm.
package boot

import (
	"context"
	"time"

	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/appliance"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/bus"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/diag"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/errcode"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/hal"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/services/display"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/types"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/x/timex"
)

var topicBoot = bus.T("diag", "boot")

type Config struct {
	Watchdog hal.WatchdogConfig

	BootBlinks    int           // red LED pulses at power-up
	BlinkInterval time.Duration // pulse width
	DiagDwell     time.Duration // boot screen hold time
	FatalBlink    time.Duration // IR bring-up failure blink
}

func DefaultConfig() Config {
	return Config{
		Watchdog:      hal.WatchdogConfig{TimeoutMillis: 5000, PauseOnDebug: true},
		BootBlinks:    3,
		BlinkInterval: 120 * time.Millisecond,
		DiagDwell:     3 * time.Second,
		FatalBlink:    100 * time.Millisecond,
	}
}

type Deps struct {
	Store    hal.ScratchStore
	Watchdog hal.Watchdog
	Display  hal.Display
	IR       hal.Transmitter
	Console  hal.Console
	BootLED  hal.GPIOPin // red
}

// Run executes the boot sequence and returns the diagnostic report with
// the watchdog armed. An IR bring-up failure is fatal: the watchdog is
// never armed and the red LED blinks until power-cycle (ctx cancellation
// is the test escape hatch).
func Run(ctx context.Context, cfg Config, d Deps, conn *bus.Connection, clock timex.Clock) (diag.Report, error) {
	if clock.NowMs == nil || clock.Sleep == nil {
		clock = timex.System()
	}

	for i := 0; i < cfg.BootBlinks; i++ {
		d.BootLED.Set(true)
		clock.Sleep(cfg.BlinkInterval)
		d.BootLED.Set(false)
		clock.Sleep(cfg.BlinkInterval)
	}

	rep := diag.Classify(d.Store)
	if rep.WatchdogReset {
		println("boot: watchdog reset, count", rep.ResetCount, "fault", rep.Fault.String())
	} else {
		println("boot: power-on reset")
	}
	if conn != nil {
		conn.Publish(conn.NewMessage(topicBoot, types.BootEvent{
			WatchdogReset: rep.WatchdogReset,
			ResetCount:    rep.ResetCount,
			FaultCode:     uint32(rep.Fault),
			TimeoutMs:     cfg.Watchdog.TimeoutMillis,
			TSms:          clock.NowMs(),
		}, true))
	}

	_ = d.Display.Render(display.Boot(rep, cfg.Watchdog.TimeoutMillis))
	clock.Sleep(cfg.DiagDwell)

	if err := d.IR.Init(); err != nil {
		println("boot: ir init failed:", err.Error())
		for {
			select {
			case <-ctx.Done():
				return rep, errcode.IRInitFailed
			default:
			}
			d.BootLED.Toggle()
			clock.Sleep(cfg.FatalBlink)
		}
	}

	if err := d.Watchdog.Configure(cfg.Watchdog); err != nil {
		return rep, err
	}
	if err := d.Watchdog.Start(); err != nil {
		return rep, err
	}
	println("boot: watchdog armed,", cfg.Watchdog.TimeoutMillis, "ms timeout")

	if d.Console != nil {
		d.Console.WriteString(appliance.Menu)
	}
	return rep, nil
}
