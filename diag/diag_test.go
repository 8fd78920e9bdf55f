package diag

import (
	"testing"

	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/simhw"
)

func TestColdBootClearsSlots(t *testing.T) {
	store := &simhw.MemScratch{}
	// Leftover garbage from a previous life must not leak through.
	store.Write(SlotResetCount, 7)
	store.Write(SlotFault, uint32(FaultTemp22))

	rep := Classify(store)

	if rep.WatchdogReset {
		t.Error("cold boot classified as watchdog reset")
	}
	if rep.ResetCount != 0 {
		t.Errorf("ResetCount = %d, want 0", rep.ResetCount)
	}
	if rep.Fault != FaultNone {
		t.Errorf("Fault = %v, want none", rep.Fault)
	}
}

func TestWatchdogBootIncrementsAndPreservesFault(t *testing.T) {
	store := &simhw.MemScratch{}
	RecordFault(store, FaultButton)
	store.SetWatchdogReset(true)

	rep := Classify(store)

	if !rep.WatchdogReset {
		t.Fatal("expected watchdog reset classification")
	}
	if rep.ResetCount != 1 {
		t.Errorf("ResetCount = %d, want 1", rep.ResetCount)
	}
	if rep.Fault != FaultButton {
		t.Errorf("Fault = %v, want button", rep.Fault)
	}
}

func TestConsecutiveWatchdogBootsAccumulate(t *testing.T) {
	store := &simhw.MemScratch{}
	RecordFault(store, FaultTemp22)
	store.SetWatchdogReset(true)

	if rep := Classify(store); rep.ResetCount != 1 {
		t.Fatalf("first watchdog boot: count = %d, want 1", rep.ResetCount)
	}

	// Second lockup and reset without an intervening cold boot.
	rep := Classify(store)
	if rep.ResetCount != 2 {
		t.Errorf("second watchdog boot: count = %d, want 2", rep.ResetCount)
	}
	if rep.Fault != FaultTemp22 {
		t.Errorf("Fault = %v, want temp22", rep.Fault)
	}
}

func TestColdBootAfterWatchdogResetsEverything(t *testing.T) {
	store := &simhw.MemScratch{}
	RecordFault(store, FaultButton)
	store.SetWatchdogReset(true)
	Classify(store)

	store.SetWatchdogReset(false)
	rep := Classify(store)

	if rep.ResetCount != 0 || rep.Fault != FaultNone {
		t.Errorf("after manual reset: count=%d fault=%v, want 0/none", rep.ResetCount, rep.Fault)
	}
}

func TestFaultLabels(t *testing.T) {
	cases := []struct {
		f    Fault
		want string
	}{
		{FaultNone, "none"},
		{FaultButton, "button"},
		{FaultTemp22, "temp22"},
		{Fault(0xEE), "unknown"},
	}
	for _, c := range cases {
		if got := c.f.String(); got != c.want {
			t.Errorf("%#02x: got %q, want %q", uint32(c.f), got, c.want)
		}
	}
}
