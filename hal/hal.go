// hal/hal.go
package hal

// Pull selects the input pull resistor for a GPIO pin.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// GPIOPin is the subset of pin behaviour the controller needs.
// Implementations must be safe to call from the supervisory loop only.
type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Toggle()
	Number() int
}

// WatchdogConfig is set once at boot and never mutated.
type WatchdogConfig struct {
	// TimeoutMillis covers worst-case IR command plus display latency with margin.
	TimeoutMillis uint32
	// PauseOnDebug keeps the countdown frozen while a debugger has the core halted.
	PauseOnDebug bool
}

// Watchdog is the hardware countdown that resets the system unless fed.
type Watchdog interface {
	Configure(cfg WatchdogConfig) error
	// Start arms the countdown. After this call a missed feed window
	// ends in a full reset; there is no way to disarm.
	Start() error
	// Update feeds the countdown, asserting forward progress.
	Update()
}

// ScratchStore is a tiny register bank that survives a watchdog-caused
// reset but is cleared by power loss or an external reset.
//
// Slot writes are atomic and always available; there is no failure mode.
type ScratchStore interface {
	Read(slot int) uint32
	Write(slot int, v uint32)
	// CausedByWatchdog reports whether the immediately preceding reset
	// was triggered by watchdog expiry.
	CausedByWatchdog() bool
}

// Transmitter sends discrete appliance commands over IR. The physical
// encoding is the driver's business; callers only see success/failure.
type Transmitter interface {
	Init() error
	PowerOn() bool
	PowerOff() bool
	SetTemperature20() bool
	SetFanLevel(level int) bool
}

// Line is one row of text at a framebuffer position.
type Line struct {
	X, Y int16
	Text string
}

// Display renders a full screen of lines and flushes it. Implementations
// draw the common frame decoration themselves.
type Display interface {
	Render(lines []Line) error
}

// Console is a non-blocking byte-oriented text command interface.
type Console interface {
	// ReadByte returns the next pending byte, or ok=false when none is buffered.
	ReadByte() (b byte, ok bool)
	WriteString(s string)
}
