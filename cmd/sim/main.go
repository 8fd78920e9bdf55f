// Command sim runs the controller on a desktop against simulated
// hardware. The scratch store lives across simulated reboots, so the
// watchdog-reset diagnostics behave like the real board: induce a fault
// and watch the reset count climb.
//
// Keyboard:
//
//	a<enter>      press the fault button (trigger A)
//	b<enter>      press the advance button
//	0..6<enter>   serial menu tokens
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/bus"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/hal"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/services/boot"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/services/supervisor"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/simhw"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/x/timex"
)

func main() {
	dwell := flag.Duration("dwell", time.Second, "boot screen hold time")
	timeout := flag.Uint("timeout", 5000, "watchdog timeout in ms")
	flag.Parse()

	fmt.Println("pico-ac simulator")
	fmt.Println("  a = fault button, b = advance button, 0-6 = menu tokens")
	fmt.Println()

	store := &simhw.MemScratch{}
	ir := &simhw.ScriptedIR{}
	con := &simhw.ByteConsole{}
	btnA := simhw.NewButtonPin(5)
	btnB := simhw.NewButtonPin(6)
	green := simhw.NewFakePin(11, false)
	blue := simhw.NewFakePin(12, false)
	red := simhw.NewFakePin(13, false)
	onboard := simhw.NewFakePin(25, false)

	b := bus.NewBus(32)
	go monitor(b.NewConnection("monitor"))
	go readKeys(con, btnA, btnB)
	go echoConsole(con)

	bootCfg := boot.DefaultConfig()
	bootCfg.BlinkInterval = 40 * time.Millisecond
	bootCfg.DiagDwell = *dwell
	bootCfg.Watchdog.TimeoutMillis = uint32(*timeout)

	supCfg := supervisor.DefaultConfig()
	supCfg.Watchdog = bootCfg.Watchdog

	for cycle := 1; ; cycle++ {
		fmt.Printf("===== boot cycle %d =====\n", cycle)

		wdt := &simhw.FakeWatchdog{}
		disp := &termDisplay{}
		ctx, cancel := context.WithCancel(context.Background())
		go biteWatch(ctx, cancel, wdt)

		_, err := boot.Run(ctx, bootCfg, boot.Deps{
			Store:    store,
			Watchdog: wdt,
			Display:  disp,
			IR:       ir,
			Console:  con,
			BootLED:  red,
		}, b.NewConnection("boot"), timex.System())
		if err != nil {
			cancel()
			fmt.Println("boot failed:", err)
			return
		}

		sup := supervisor.New(supCfg, supervisor.Deps{
			Store:         store,
			Watchdog:      wdt,
			Display:       disp,
			IR:            ir,
			Console:       con,
			FaultButton:   btnA,
			AdvanceButton: btnB,
			HeartbeatLED:  green,
			FaultLED:      blue,
			PowerLED:      onboard,
		}, b.NewConnection("supervisor"), timex.System())

		err = sup.Run(ctx)
		cancel()
		fmt.Printf("*** supervisor stopped: %v — simulating watchdog reset\n", err)

		store.SetWatchdogReset(true)
		btnA.Release()
		btnB.Release()
		time.Sleep(500 * time.Millisecond)
	}
}

// biteWatch models watchdog expiry: once armed, a missed feed window
// "resets" the system by cancelling the run context.
func biteWatch(ctx context.Context, cancel context.CancelFunc, wdt *simhw.FakeWatchdog) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(50 * time.Millisecond):
		}
		if wdt.Starved() {
			fmt.Println("*** WATCHDOG BITE ***")
			cancel()
			return
		}
	}
}

func readKeys(con *simhw.ByteConsole, btnA, btnB *simhw.FakePin) {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "a":
			tap(btnA)
		case "b":
			tap(btnB)
		default:
			con.Push(line)
		}
	}
}

// tap holds the active-low button down long enough for one loop pass.
func tap(p *simhw.FakePin) {
	p.Press()
	time.AfterFunc(350*time.Millisecond, p.Release)
}

// echoConsole relays firmware console writes (menu text) to stdout.
func echoConsole(con *simhw.ByteConsole) {
	var seen int
	for {
		time.Sleep(100 * time.Millisecond)
		out := con.Output()
		if len(out) > seen {
			fmt.Print(out[seen:])
			seen = len(out)
		}
	}
}

func monitor(conn *bus.Connection) {
	sub := conn.Subscribe(bus.T("#"))
	for msg := range sub.Channel() {
		fmt.Printf("[bus] %s %+v\n", strings.Join(msg.Topic, "/"), msg.Payload)
	}
}

// termDisplay draws each frame as a bordered text block.
type termDisplay struct{}

func (termDisplay) Render(lines []hal.Line) error {
	fmt.Println("+----------------------+")
	for _, ln := range lines {
		fmt.Printf("| %-20s |\n", ln.Text)
	}
	fmt.Println("+----------------------+")
	return nil
}
