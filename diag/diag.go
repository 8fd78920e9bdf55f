// Package diag owns the reset-cycle diagnostic slots.
//
// Two scratch slots survive a watchdog-caused reset and are cleared by any
// other reset source. That asymmetry is the load-bearing contract: a
// non-zero count or fault code can only be the product of a watchdog reset.
package diag

import (
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/hal"
)

// Slot assignments in the scratch bank.
const (
	SlotResetCount = 0
	SlotFault      = 1
)

// Fault identifies the last induced lockup, persisted across the reset.
type Fault uint32

const (
	FaultNone   Fault = 0x00
	FaultButton Fault = 0x01 // manual trigger, infinite no-feed loop
	FaultTemp22 Fault = 0x02 // 22C command lockup
)

func (f Fault) String() string {
	switch f {
	case FaultNone:
		return "none"
	case FaultButton:
		return "button"
	case FaultTemp22:
		return "temp22"
	default:
		return "unknown"
	}
}

// Report is the outcome of the boot-time classification pass.
type Report struct {
	WatchdogReset bool
	ResetCount    uint32
	Fault         Fault
}

// Classify applies the boot slot policy exactly once per boot:
//
//	watchdog reset: count += 1, fault slot untouched (it holds the cause
//	                written before the lockup);
//	any other boot: both slots zeroed.
//
// It returns the post-policy view of the slots.
func Classify(store hal.ScratchStore) Report {
	wdt := store.CausedByWatchdog()
	if wdt {
		store.Write(SlotResetCount, store.Read(SlotResetCount)+1)
	} else {
		store.Write(SlotResetCount, 0)
		store.Write(SlotFault, uint32(FaultNone))
	}
	return Report{
		WatchdogReset: wdt,
		ResetCount:    store.Read(SlotResetCount),
		Fault:         Fault(store.Read(SlotFault)),
	}
}

// RecordFault stamps the fault slot. Called by the two injection points
// immediately before they stop feeding the watchdog, so the code is in
// place when the reset fires.
func RecordFault(store hal.ScratchStore, f Fault) {
	store.Write(SlotFault, uint32(f))
}
