package supervisor

import (
	"context"
	"testing"
	"time"

	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/appliance"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/bus"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/diag"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/errcode"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/simhw"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/types"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/x/timex"
)

// manualClock is a single-goroutine scripted clock: Sleep advances time
// instead of waiting.
type manualClock struct{ now int64 }

func (c *manualClock) clock() timex.Clock {
	return timex.Clock{
		NowMs: func() int64 { return c.now },
		Sleep: func(d time.Duration) { c.now += int64(d / time.Millisecond) },
	}
}

type rig struct {
	sup     *Supervisor
	clk     *manualClock
	store   *simhw.MemScratch
	wdt     *simhw.FakeWatchdog
	disp    *simhw.RecorderDisplay
	ir      *simhw.ScriptedIR
	con     *simhw.ByteConsole
	btnA    *simhw.FakePin
	btnB    *simhw.FakePin
	green   *simhw.FakePin
	blue    *simhw.FakePin
	onboard *simhw.FakePin
}

func newRig(t *testing.T, conn *bus.Connection) *rig {
	t.Helper()
	r := &rig{
		clk:     &manualClock{now: 1000},
		store:   &simhw.MemScratch{},
		wdt:     &simhw.FakeWatchdog{},
		disp:    &simhw.RecorderDisplay{},
		ir:      &simhw.ScriptedIR{},
		con:     &simhw.ByteConsole{},
		btnA:    simhw.NewButtonPin(5),
		btnB:    simhw.NewButtonPin(6),
		green:   simhw.NewFakePin(11, false),
		blue:    simhw.NewFakePin(12, false),
		onboard: simhw.NewFakePin(25, false),
	}
	deps := Deps{
		Store:         r.store,
		Watchdog:      r.wdt,
		Display:       r.disp,
		IR:            r.ir,
		Console:       r.con,
		FaultButton:   r.btnA,
		AdvanceButton: r.btnB,
		HeartbeatLED:  r.green,
		FaultLED:      r.blue,
		PowerLED:      r.onboard,
	}
	r.sup = New(DefaultConfig(), deps, conn, r.clk.clock())
	return r
}

// cancelledCtx makes the dead-end loops return on entry, standing in for
// the watchdog reset.
func cancelledCtx() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

func TestExecuteCommitsOnSuccess(t *testing.T) {
	r := newRig(t, nil)

	if !r.sup.Execute(context.Background(), appliance.On) {
		t.Fatal("Execute(On) = false, want true")
	}
	if r.sup.State() != appliance.On {
		t.Errorf("state = %v, want On", r.sup.State())
	}
	if got := r.wdt.Feeds(); got != 2 {
		t.Errorf("feeds = %d, want 2 (entry + post-success)", got)
	}
	if calls := r.ir.Calls(); len(calls) != 1 || calls[0] != "power_on" {
		t.Errorf("ir calls = %v, want [power_on]", calls)
	}
	if !r.onboard.Get() {
		t.Error("power LED not set after power on")
	}
}

func TestExecuteSoftFailureKeepsState(t *testing.T) {
	r := newRig(t, nil)
	r.ir.FailAll = true

	if r.sup.Execute(context.Background(), appliance.On) {
		t.Fatal("Execute = true despite transmitter failure")
	}
	if r.sup.State() != appliance.Off {
		t.Errorf("state = %v, want Off", r.sup.State())
	}
	if got := r.wdt.Feeds(); got != 1 {
		t.Errorf("feeds = %d, want 1 (entry feed only)", got)
	}
	if r.store.Read(diag.SlotFault) != 0 {
		t.Error("soft failure must not touch the fault slot")
	}
}

func TestExecuteInvalidTargetRejected(t *testing.T) {
	r := newRig(t, nil)

	if r.sup.Execute(context.Background(), appliance.Invalid) {
		t.Fatal("Execute accepted an invalid target")
	}
	if len(r.ir.Calls()) != 0 {
		t.Errorf("ir calls = %v, want none", r.ir.Calls())
	}
	if got := r.wdt.Feeds(); got != 1 {
		t.Errorf("feeds = %d, want 1", got)
	}
}

func TestExecuteTemp22NeverCommits(t *testing.T) {
	r := newRig(t, nil)

	if r.sup.Execute(cancelledCtx(), appliance.Temp22) {
		t.Fatal("Temp22 reported success")
	}
	if r.sup.State() != appliance.Off {
		t.Errorf("state = %v, want Off", r.sup.State())
	}
	if !r.sup.Faulted() {
		t.Error("supervisor not marked faulted")
	}
	if got := diag.Fault(r.store.Read(diag.SlotFault)); got != diag.FaultTemp22 {
		t.Errorf("fault slot = %v, want temp22", got)
	}
	if got := r.wdt.Feeds(); got != 1 {
		t.Errorf("feeds = %d, want 1 (no feed after the injection point)", got)
	}
	if !r.disp.Contains("INDUCED FAULT") || !r.disp.Contains("TEMP 22C CMD") {
		t.Errorf("fault banner missing, last frame: %v", r.disp.Last())
	}
}

func TestFaultButtonEntersLockup(t *testing.T) {
	r := newRig(t, nil)
	r.btnA.Press()

	err := r.sup.RunOnce(cancelledCtx())
	if err != errcode.FaultInjected {
		t.Fatalf("RunOnce = %v, want FaultInjected", err)
	}
	if got := diag.Fault(r.store.Read(diag.SlotFault)); got != diag.FaultButton {
		t.Errorf("fault slot = %v, want button", got)
	}
	if !r.disp.Contains("BUTTON A") {
		t.Errorf("banner missing, last frame: %v", r.disp.Last())
	}
	if got := r.wdt.Feeds(); got != 0 {
		t.Errorf("feeds = %d, want 0 after trigger A", got)
	}
}

func TestLockupBlinksUntilReset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ButtonBlink = time.Millisecond

	r := newRig(t, nil)
	r.sup.cfg = cfg
	r.sup.clock = timex.System()
	r.btnA.Press()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.sup.RunOnce(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != errcode.FaultInjected {
			t.Fatalf("RunOnce = %v, want FaultInjected", err)
		}
	case <-time.After(time.Second):
		t.Fatal("lockup did not return after ctx cancel")
	}
	if r.blue.Toggles() == 0 {
		t.Error("fault LED never blinked during lockup")
	}
}

func TestAdvanceButtonDebounce(t *testing.T) {
	r := newRig(t, nil)
	ctx := context.Background()
	r.btnB.Press() // held down

	if err := r.sup.RunOnce(ctx); err != nil {
		t.Fatal(err)
	}
	if r.sup.State() != appliance.On {
		t.Fatalf("state after first press = %v, want On", r.sup.State())
	}

	// Still inside the debounce window (Execute's settle advanced the
	// clock by only 100ms).
	if err := r.sup.RunOnce(ctx); err != nil {
		t.Fatal(err)
	}
	if r.sup.State() != appliance.On {
		t.Errorf("debounced press advanced state to %v", r.sup.State())
	}

	r.clk.now += 400
	if err := r.sup.RunOnce(ctx); err != nil {
		t.Fatal(err)
	}
	if r.sup.State() != appliance.Temp20 {
		t.Errorf("state after debounce window = %v, want Temp20", r.sup.State())
	}
}

func TestAdvanceOntoTemp22TriggersFault(t *testing.T) {
	r := newRig(t, nil)
	ctx := cancelledCtx()
	r.btnB.Press()

	// Off -> On -> Temp20, then the next advance lands on Temp22.
	for i := 0; i < 2; i++ {
		if err := r.sup.RunOnce(ctx); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
		r.clk.now += 400
	}
	if r.sup.State() != appliance.Temp20 {
		t.Fatalf("state = %v, want Temp20", r.sup.State())
	}

	err := r.sup.RunOnce(ctx)
	if err != errcode.FaultInjected {
		t.Fatalf("RunOnce = %v, want FaultInjected", err)
	}
	if got := diag.Fault(r.store.Read(diag.SlotFault)); got != diag.FaultTemp22 {
		t.Errorf("fault slot = %v, want temp22", got)
	}
}

func TestConsoleTokens(t *testing.T) {
	r := newRig(t, nil)
	ctx := context.Background()

	r.con.Push("5")
	if err := r.sup.RunOnce(ctx); err != nil {
		t.Fatal(err)
	}
	if r.sup.State() != appliance.Fan1 {
		t.Errorf("state = %v, want Fan1", r.sup.State())
	}

	r.con.Push("0")
	if err := r.sup.RunOnce(ctx); err != nil {
		t.Fatal(err)
	}
	if r.con.Output() != appliance.Menu {
		t.Errorf("menu not echoed, got %q", r.con.Output())
	}

	// Unknown bytes are dropped silently.
	r.con.Push("x")
	before := len(r.ir.Calls())
	if err := r.sup.RunOnce(ctx); err != nil {
		t.Fatal(err)
	}
	if len(r.ir.Calls()) != before {
		t.Error("unknown token reached the transmitter")
	}
}

func TestHeartbeatCadence(t *testing.T) {
	r := newRig(t, nil)
	ctx := context.Background()

	if err := r.sup.RunOnce(ctx); err != nil {
		t.Fatal(err)
	}
	if !r.green.Get() {
		t.Fatal("heartbeat LED not on after first pass")
	}

	// Within the period: no toggle.
	r.clk.now += 100
	if err := r.sup.RunOnce(ctx); err != nil {
		t.Fatal(err)
	}
	if !r.green.Get() {
		t.Error("heartbeat toggled inside the period")
	}

	r.clk.now += 500
	if err := r.sup.RunOnce(ctx); err != nil {
		t.Fatal(err)
	}
	if r.green.Get() {
		t.Error("heartbeat LED still on after period elapsed")
	}
}

func TestDisplayRefreshAndFeeds(t *testing.T) {
	r := newRig(t, nil)
	ctx := context.Background()

	// First pass always renders: two feeds (display + final).
	if err := r.sup.RunOnce(ctx); err != nil {
		t.Fatal(err)
	}
	if r.disp.Frames() != 1 {
		t.Fatalf("frames = %d, want 1", r.disp.Frames())
	}
	if got := r.wdt.Feeds(); got != 2 {
		t.Errorf("feeds after render pass = %d, want 2", got)
	}

	// Idle pass inside the refresh period: no render, but the final
	// feed still happens.
	r.clk.now += 100
	if err := r.sup.RunOnce(ctx); err != nil {
		t.Fatal(err)
	}
	if r.disp.Frames() != 1 {
		t.Errorf("frames = %d, want still 1", r.disp.Frames())
	}
	if got := r.wdt.Feeds(); got != 3 {
		t.Errorf("feeds after idle pass = %d, want 3", got)
	}

	// Past the period: render again.
	r.clk.now += 1000
	if err := r.sup.RunOnce(ctx); err != nil {
		t.Fatal(err)
	}
	if r.disp.Frames() != 2 {
		t.Errorf("frames = %d, want 2", r.disp.Frames())
	}
	if !r.disp.Contains("AC: OFF") {
		t.Errorf("running screen missing state line: %v", r.disp.Last())
	}
}

func TestStateChangeForcesRedraw(t *testing.T) {
	r := newRig(t, nil)
	ctx := context.Background()

	if err := r.sup.RunOnce(ctx); err != nil {
		t.Fatal(err)
	}
	r.con.Push("1")
	r.clk.now += 100 // still inside the refresh period
	if err := r.sup.RunOnce(ctx); err != nil {
		t.Fatal(err)
	}
	if !r.disp.Contains("AC: ON") {
		t.Errorf("screen not redrawn after state change: %v", r.disp.Last())
	}
}

func TestTelemetryEvents(t *testing.T) {
	b := bus.NewBus(16)
	mon := b.NewConnection("monitor")
	cmdSub := mon.Subscribe(bus.T("ac", "command"))
	stateSub := mon.Subscribe(bus.T("ac", "state"))

	r := newRig(t, b.NewConnection("supervisor"))
	if !r.sup.Execute(context.Background(), appliance.Fan2) {
		t.Fatal("Execute failed")
	}

	select {
	case msg := <-cmdSub.Channel():
		ev := msg.Payload.(types.CommandEvent)
		if ev.Target != "FAN 2" || !ev.OK {
			t.Errorf("command event = %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no command event published")
	}

	select {
	case msg := <-stateSub.Channel():
		ev := msg.Payload.(types.StateEvent)
		if ev.State != "FAN 2" {
			t.Errorf("state event = %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no state event published")
	}
}
