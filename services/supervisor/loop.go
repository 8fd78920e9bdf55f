package supervisor

import (
	"context"

	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/appliance"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/diag"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/errcode"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/services/display"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/types"
)

// Run drives the supervisory loop until ctx is cancelled or an injection
// point is entered. On hardware neither happens: the loop only ends when
// the watchdog resets the chip.
func (s *Supervisor) Run(ctx context.Context) error {
	for {
		if err := s.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s.clock.Sleep(s.cfg.LoopPause)
	}
}

// RunOnce performs a single cooperative pass: fault button, advance
// button, one console byte, heartbeat, display refresh, final feed. The
// final feed is unconditional; it is the proof the whole pass completed.
func (s *Supervisor) RunOnce(ctx context.Context) error {
	now := s.clock.NowMs()

	// Trigger A: induced fault. Never comes back on hardware.
	if !s.d.FaultButton.Get() && now-s.lastFaultPress > ms(s.cfg.Debounce) {
		s.lastFaultPress = now
		s.lockup(ctx, diag.FaultButton, "BUTTON A", s.cfg.ButtonBlink)
		return errcode.FaultInjected
	}

	// Cyclic advance through the guarded executor.
	if !s.d.AdvanceButton.Get() && now-s.lastAdvPress > ms(s.cfg.Debounce) {
		s.lastAdvPress = now
		s.Execute(ctx, s.state.Next())
		if s.faulted {
			return errcode.FaultInjected
		}
	}

	// One console byte per pass keeps the loop latency bounded.
	if s.d.Console != nil {
		if b, ok := s.d.Console.ReadByte(); ok {
			s.handleToken(ctx, b)
			if s.faulted {
				return errcode.FaultInjected
			}
		}
	}

	if now >= s.nextHeartbeat {
		s.heartbeat = !s.heartbeat
		s.d.HeartbeatLED.Set(s.heartbeat)
		s.publish(topicHeartbeat, types.HeartbeatEvent{On: s.heartbeat, TSms: now}, false)
		s.nextHeartbeat = now + ms(s.cfg.HeartbeatPeriod)
	}

	// Redraw on cadence or when the state changed under us. The I2C
	// transfer is the slowest thing in the pass, so it gets its own feed.
	if now >= s.nextDisplay || s.lastShown != s.state {
		_ = s.d.Display.Render(display.Running(s.state))
		s.lastShown = s.state
		s.nextDisplay = now + ms(s.cfg.DisplayPeriod)
		s.d.Watchdog.Update()
	}

	s.d.Watchdog.Update()
	return nil
}

func (s *Supervisor) handleToken(ctx context.Context, b byte) {
	if b == '0' {
		if s.d.Console != nil {
			s.d.Console.WriteString(appliance.Menu)
		}
		return
	}
	target, ok := appliance.ParseToken(b)
	if !ok {
		return
	}
	s.Execute(ctx, target)
}
