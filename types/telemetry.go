// types/telemetry.go
//
// Bus payload types shared by the supervisor, the boot sequencer and the
// host-side monitors. Keep them small and JSON-serialisable.
package types

// BootEvent summarises the boot diagnostic pass. Retained on diag/boot.
type BootEvent struct {
	WatchdogReset bool
	ResetCount    uint32
	FaultCode     uint32
	TimeoutMs     uint32
	TSms          int64
}

// StateEvent is the current appliance state. Retained on ac/state.
type StateEvent struct {
	State string
	TSms  int64
}

// CommandEvent reports one executor pass. Published on ac/command.
type CommandEvent struct {
	Target string
	OK     bool
	TSms   int64
}

// FaultEvent records an induced fault just before the no-feed loop is
// entered. Retained on ac/fault.
type FaultEvent struct {
	Code  uint32
	Label string
	TSms  int64
}

// HeartbeatEvent mirrors the green liveness LED. Published on ac/heartbeat.
type HeartbeatEvent struct {
	On   bool
	TSms int64
}
