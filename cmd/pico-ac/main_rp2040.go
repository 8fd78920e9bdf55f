//go:build rp2040

// Firmware entry point for the BitDogLab IR air-conditioner controller.
package main

import (
	"context"
	"time"

	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/bus"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/hal"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/platform"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/services/boot"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/services/supervisor"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/x/timex"
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("pico-ac boot")

	red := output(platform.PinLEDRed)
	green := output(platform.PinLEDGreen)
	blue := output(platform.PinLEDBlue)
	onboard := output(platform.PinLEDOnboard)
	btnA := input(platform.PinButtonA)
	btnB := input(platform.PinButtonB)

	oled, err := platform.NewOLED()
	if err != nil {
		fatal(red, "display init failed: "+err.Error())
	}

	var console hal.Console
	if c, err := platform.NewSerialConsole(); err == nil {
		console = c
	} else {
		println("console unavailable:", err.Error())
	}

	ir := platform.NewIRLED()
	store := platform.Scratch()
	wdt := platform.Watchdog()

	b := bus.NewBus(16)
	go logTelemetry(b.NewConnection("log"))

	ctx := context.Background()
	clock := timex.System()

	rep, err := boot.Run(ctx, boot.DefaultConfig(), boot.Deps{
		Store:    store,
		Watchdog: wdt,
		Display:  oled,
		IR:       ir,
		Console:  console,
		BootLED:  red,
	}, b.NewConnection("boot"), clock)
	if err != nil {
		// Unreachable on hardware: the fatal bring-up loop never returns.
		fatal(red, "boot failed: "+err.Error())
	}
	println("running, resets so far:", rep.ResetCount)

	sup := supervisor.New(supervisor.DefaultConfig(), supervisor.Deps{
		Store:         store,
		Watchdog:      wdt,
		Display:       oled,
		IR:            ir,
		Console:       console,
		FaultButton:   btnA,
		AdvanceButton: btnB,
		HeartbeatLED:  green,
		FaultLED:      blue,
		PowerLED:      onboard,
	}, b.NewConnection("supervisor"), clock)

	_ = sup.Run(ctx)

	// Only an injection point gets here; hold until the watchdog fires.
	for {
		time.Sleep(time.Hour)
	}
}

func output(n int) hal.GPIOPin {
	p := platform.Pin(n)
	_ = p.ConfigureOutput(false)
	return p
}

func input(n int) hal.GPIOPin {
	p := platform.Pin(n)
	_ = p.ConfigureInput(hal.PullUp)
	return p
}

// fatal is for bring-up errors before the watchdog is armed: report and
// blink until someone power-cycles the board.
func fatal(led hal.GPIOPin, msg string) {
	println("fatal:", msg)
	for {
		led.Toggle()
		time.Sleep(100 * time.Millisecond)
	}
}

// logTelemetry mirrors every bus event onto the USB console.
func logTelemetry(conn *bus.Connection) {
	sub := conn.Subscribe(bus.T("#"))
	for msg := range sub.Channel() {
		println("event:", topicString(msg.Topic))
	}
}

func topicString(t bus.Topic) string {
	s := ""
	for i, tok := range t {
		if i > 0 {
			s += "/"
		}
		s += tok
	}
	return s
}
