package supervisor

import (
	"context"

	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/appliance"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/diag"
)

// Execute runs one guarded appliance command and reports whether the
// state committed. The watchdog is fed on entry (reaching the executor is
// proof the loop is alive) and again only after the transmitter reported
// success. A soft transmission failure is logged and dropped: the state
// does not change and nothing is written to the diagnostic slots.
//
// Temp22 is an injection point. On hardware the call diverts into a
// dead-end loop and never returns; ctx cancellation is how the simulator
// and the tests model the watchdog pulling the plug.
func (s *Supervisor) Execute(ctx context.Context, target appliance.State) bool {
	s.d.Watchdog.Update()

	if target == appliance.Temp22 {
		s.lockup(ctx, diag.FaultTemp22, "TEMP 22C CMD", s.cfg.CommandBlink)
		return false
	}

	var ok bool
	switch target {
	case appliance.Off:
		ok = s.d.IR.PowerOff()
	case appliance.On:
		ok = s.d.IR.PowerOn()
	case appliance.Temp20:
		ok = s.d.IR.SetTemperature20()
	case appliance.Fan1:
		ok = s.d.IR.SetFanLevel(1)
	case appliance.Fan2:
		ok = s.d.IR.SetFanLevel(2)
	default:
		println("exec: invalid target", uint8(target))
		s.publishCommand(target, false)
		return false
	}
	if !ok {
		println("exec: ir dispatch failed:", target.String())
		s.publishCommand(target, false)
		return false
	}

	s.d.Watchdog.Update()
	s.clock.Sleep(s.cfg.SettleDelay)

	s.state = target
	s.d.PowerLED.Set(target.PowerOn())
	s.publishCommand(target, true)
	s.publishState()
	return true
}
