// Package display composes the three controller screens as positioned
// text lines. The hal.Display driver owns the frame decoration and the
// actual pixel pushing; this package owns the content.
package display

import (
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/appliance"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/diag"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/hal"
	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/x/conv"
)

// Boot is the post-reset diagnostic screen: cause, count, fault code and
// the configured watchdog timeout.
func Boot(rep diag.Report, timeoutMs uint32) []hal.Line {
	cause := "RESET NORMAL"
	if rep.WatchdogReset {
		cause = "RESET WATCHDOG"
	}
	return []hal.Line{
		{X: 6, Y: 6, Text: "IR + WDT SYSTEM"},
		{X: 10, Y: 16, Text: cause},
		{X: 10, Y: 28, Text: string(conv.AppendUint([]byte("COUNT: "), rep.ResetCount))},
		{X: 10, Y: 40, Text: string(conv.AppendU8Hex([]byte("FAULT: "), uint8(rep.Fault)))},
		{X: 10, Y: 52, Text: string(append(conv.AppendUint([]byte("TIMEOUT: "), timeoutMs), "ms"...))},
	}
}

// Running shows the current appliance state plus the button legend.
func Running(s appliance.State) []hal.Line {
	return []hal.Line{
		{X: 12, Y: 6, Text: "AC CONTROL+WDT"},
		{X: 10, Y: 16, Text: "AC: " + s.String()},
		{X: 10, Y: 28, Text: "BTN A=FAULT"},
		{X: 10, Y: 40, Text: "BTN B=NEXT CMD"},
		{X: 10, Y: 52, Text: "WDT: ACTIVE"},
	}
}

// FaultBanner is shown right before an injection point stops feeding.
func FaultBanner(msg string) []hal.Line {
	return []hal.Line{
		{X: 12, Y: 6, Text: "INDUCED FAULT"},
		{X: 10, Y: 16, Text: msg},
		{X: 10, Y: 28, Text: "NO WDT FEED"},
		{X: 10, Y: 40, Text: "WAIT RESET"},
		{X: 10, Y: 52, Text: "IN ~5s..."},
	}
}
