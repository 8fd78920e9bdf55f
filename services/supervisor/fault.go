package supervisor

import (
	"context"
	"time"

	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/diag"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/services/display"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/types"
)

// lockup is the shared dead end behind both injection points: record the
// fault in the scratch slots, show the banner, then blink the fault LED
// without ever feeding again. On hardware ctx is context.Background(), so
// the only exit is the watchdog reset. The simulator and the tests cancel
// ctx to stand in for the reset.
func (s *Supervisor) lockup(ctx context.Context, f diag.Fault, banner string, blink time.Duration) {
	s.faulted = true
	diag.RecordFault(s.d.Store, f)
	_ = s.d.Display.Render(display.FaultBanner(banner))
	s.publish(topicFault, types.FaultEvent{
		Code:  uint32(f),
		Label: f.String(),
		TSms:  s.clock.NowMs(),
	}, true)
	println("fault: induced", f.String(), "- watchdog feed stopped")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		s.d.FaultLED.Toggle()
		if f == diag.FaultTemp22 {
			s.d.PowerLED.Toggle()
		}
		s.clock.Sleep(blink)
	}
}

// Faulted reports whether an injection point has been entered. After a
// true return the supervisor is dead weight; only a reset clears it.
func (s *Supervisor) Faulted() bool { return s.faulted }
