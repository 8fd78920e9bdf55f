// Package supervisor runs the watchdog-protected control loop.
//
// One goroutine owns everything: the appliance state, the debounce
// timestamps and the diagnostic slots are only touched from the loop (or
// from the two dead-end fault modes it can divert into). The watchdog is
// fed exclusively at points where forward progress has just been proven.
package supervisor

import (
	"time"

	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/appliance"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/bus"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/hal"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/types"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/x/timex"
)

// Telemetry topics.
var (
	topicState     = bus.T("ac", "state")
	topicCommand   = bus.T("ac", "command")
	topicFault     = bus.T("ac", "fault")
	topicHeartbeat = bus.T("ac", "heartbeat")
)

// Config carries the loop timings. Values are fixed at boot.
type Config struct {
	Watchdog hal.WatchdogConfig

	Debounce        time.Duration // button re-trigger suppression
	HeartbeatPeriod time.Duration // green LED toggle
	DisplayPeriod   time.Duration // state screen refresh
	SettleDelay     time.Duration // post-IR transmission settle
	ButtonBlink     time.Duration // trigger-A dead-end blink
	CommandBlink    time.Duration // trigger-B dead-end blink
	LoopPause       time.Duration // per-iteration sleep
}

// DefaultConfig matches the board firmware timings.
func DefaultConfig() Config {
	return Config{
		Watchdog:        hal.WatchdogConfig{TimeoutMillis: 5000, PauseOnDebug: true},
		Debounce:        300 * time.Millisecond,
		HeartbeatPeriod: 500 * time.Millisecond,
		DisplayPeriod:   time.Second,
		SettleDelay:     100 * time.Millisecond,
		ButtonBlink:     200 * time.Millisecond,
		CommandBlink:    150 * time.Millisecond,
		LoopPause:       10 * time.Millisecond,
	}
}

// Deps are the external collaborators, all behind narrow interfaces.
type Deps struct {
	Store    hal.ScratchStore
	Watchdog hal.Watchdog
	Display  hal.Display
	IR       hal.Transmitter
	Console  hal.Console

	FaultButton   hal.GPIOPin // trigger A, active-low
	AdvanceButton hal.GPIOPin // cyclic advance, active-low
	HeartbeatLED  hal.GPIOPin // green: normal operation
	FaultLED      hal.GPIOPin // blue: induced lockup
	PowerLED      hal.GPIOPin // onboard: mirrors appliance power
}

type Supervisor struct {
	cfg   Config
	d     Deps
	conn  *bus.Connection
	clock timex.Clock

	state     appliance.State
	lastShown appliance.State

	lastFaultPress int64 // debounce timestamps, ms
	lastAdvPress   int64
	nextHeartbeat  int64
	nextDisplay    int64
	heartbeat      bool

	faulted bool // set once an injection point has been entered
}

// New builds a supervisor. conn may be nil when no telemetry is wanted.
func New(cfg Config, d Deps, conn *bus.Connection, clock timex.Clock) *Supervisor {
	if clock.NowMs == nil || clock.Sleep == nil {
		clock = timex.System()
	}
	return &Supervisor{
		cfg:       cfg,
		d:         d,
		conn:      conn,
		clock:     clock,
		state:     appliance.Off,
		lastShown: appliance.Invalid, // force the first render
	}
}

// State returns the committed appliance state.
func (s *Supervisor) State() appliance.State { return s.state }

func (s *Supervisor) publish(topic bus.Topic, payload any, retained bool) {
	if s.conn == nil {
		return
	}
	s.conn.Publish(s.conn.NewMessage(topic, payload, retained))
}

func (s *Supervisor) publishState() {
	s.publish(topicState, types.StateEvent{State: s.state.String(), TSms: s.clock.NowMs()}, true)
}

func (s *Supervisor) publishCommand(target appliance.State, ok bool) {
	s.publish(topicCommand, types.CommandEvent{Target: target.String(), OK: ok, TSms: s.clock.NowMs()}, false)
}

func ms(d time.Duration) int64 { return int64(d / time.Millisecond) }
