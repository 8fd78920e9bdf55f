// Package simhw provides host-side stand-ins for the controller hardware.
//
// They back the unit tests and cmd/sim. Everything is mutex-guarded because
// the simulator drives buttons and the console from other goroutines; on
// real hardware the equivalents are only touched by the supervisory loop.
package simhw

import (
	"sync"
	"time"

	"github.com/Mateus-MDS/Emissor-IR-com-watchdog-time/hal"
)

// -----------------------------------------------------------------------------
// Scratch store
// -----------------------------------------------------------------------------

// MemScratch is an in-memory scratch bank. The simulator keeps one instance
// alive across simulated reboots so the slots "survive" a watchdog reset;
// ColdBoot models power loss.
type MemScratch struct {
	mu       sync.Mutex
	slots    [8]uint32
	wdtReset bool
}

func (m *MemScratch) Read(slot int) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if slot < 0 || slot >= len(m.slots) {
		return 0
	}
	return m.slots[slot]
}

func (m *MemScratch) Write(slot int, v uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if slot < 0 || slot >= len(m.slots) {
		return
	}
	m.slots[slot] = v
}

func (m *MemScratch) CausedByWatchdog() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.wdtReset
}

// SetWatchdogReset marks the next boot as watchdog-caused.
func (m *MemScratch) SetWatchdogReset(v bool) {
	m.mu.Lock()
	m.wdtReset = v
	m.mu.Unlock()
}

// ColdBoot models power loss: slots cleared, reset cause cleared.
func (m *MemScratch) ColdBoot() {
	m.mu.Lock()
	m.slots = [8]uint32{}
	m.wdtReset = false
	m.mu.Unlock()
}

// -----------------------------------------------------------------------------
// Watchdog
// -----------------------------------------------------------------------------

// FakeWatchdog records configuration, arming and feeds.
type FakeWatchdog struct {
	mu       sync.Mutex
	cfg      hal.WatchdogConfig
	started  bool
	feeds    int
	lastFeed time.Time
}

func (w *FakeWatchdog) Configure(cfg hal.WatchdogConfig) error {
	w.mu.Lock()
	w.cfg = cfg
	w.mu.Unlock()
	return nil
}

func (w *FakeWatchdog) Start() error {
	w.mu.Lock()
	w.started = true
	w.lastFeed = time.Now()
	w.mu.Unlock()
	return nil
}

func (w *FakeWatchdog) Update() {
	w.mu.Lock()
	w.feeds++
	w.lastFeed = time.Now()
	w.mu.Unlock()
}

func (w *FakeWatchdog) Feeds() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.feeds
}

func (w *FakeWatchdog) Started() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.started
}

func (w *FakeWatchdog) Config() hal.WatchdogConfig {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cfg
}

// Starved reports whether the configured timeout has elapsed since the
// last feed while armed. The simulator polls this to model expiry.
func (w *FakeWatchdog) Starved() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return false
	}
	timeout := time.Duration(w.cfg.TimeoutMillis) * time.Millisecond
	return time.Since(w.lastFeed) > timeout
}

// -----------------------------------------------------------------------------
// GPIO
// -----------------------------------------------------------------------------

// FakePin is a level-holding pin. Buttons are active-low with pull-up, so
// NewButtonPin starts high and Press drives it low.
type FakePin struct {
	mu      sync.Mutex
	n       int
	level   bool
	output  bool
	pull    hal.Pull
	toggles int
}

func NewFakePin(n int, level bool) *FakePin { return &FakePin{n: n, level: level} }

// NewButtonPin returns an idle (released) active-low button pin.
func NewButtonPin(n int) *FakePin { return &FakePin{n: n, level: true} }

func (p *FakePin) ConfigureInput(pull hal.Pull) error {
	p.mu.Lock()
	p.output = false
	p.pull = pull
	if pull == hal.PullUp {
		p.level = true
	}
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.output = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

func (p *FakePin) Get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

func (p *FakePin) Toggle() {
	p.mu.Lock()
	p.level = !p.level
	p.toggles++
	p.mu.Unlock()
}

func (p *FakePin) Number() int { return p.n }

func (p *FakePin) Toggles() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.toggles
}

// Press drives an active-low button low; Release returns it to idle.
func (p *FakePin) Press()   { p.Set(false) }
func (p *FakePin) Release() { p.Set(true) }

// -----------------------------------------------------------------------------
// Display
// -----------------------------------------------------------------------------

// RecorderDisplay captures every rendered frame.
type RecorderDisplay struct {
	mu     sync.Mutex
	frames [][]hal.Line
}

func (d *RecorderDisplay) Render(lines []hal.Line) error {
	cp := append([]hal.Line(nil), lines...)
	d.mu.Lock()
	d.frames = append(d.frames, cp)
	d.mu.Unlock()
	return nil
}

func (d *RecorderDisplay) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.frames)
}

// Last returns the most recent frame, or nil when nothing rendered yet.
func (d *RecorderDisplay) Last() []hal.Line {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.frames) == 0 {
		return nil
	}
	return d.frames[len(d.frames)-1]
}

// Contains reports whether the last frame carries a line with exactly text.
func (d *RecorderDisplay) Contains(text string) bool {
	for _, ln := range d.Last() {
		if ln.Text == text {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------
// IR transmitter
// -----------------------------------------------------------------------------

// ScriptedIR records command dispatches and can be told to fail.
type ScriptedIR struct {
	mu      sync.Mutex
	InitErr error
	FailAll bool
	calls   []string
}

func (s *ScriptedIR) Init() error { return s.InitErr }

func (s *ScriptedIR) record(name string) bool {
	s.mu.Lock()
	s.calls = append(s.calls, name)
	fail := s.FailAll
	s.mu.Unlock()
	return !fail
}

func (s *ScriptedIR) PowerOn() bool          { return s.record("power_on") }
func (s *ScriptedIR) PowerOff() bool         { return s.record("power_off") }
func (s *ScriptedIR) SetTemperature20() bool { return s.record("temp_20") }

func (s *ScriptedIR) SetFanLevel(level int) bool {
	if level == 1 {
		return s.record("fan_1")
	}
	return s.record("fan_2")
}

func (s *ScriptedIR) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// -----------------------------------------------------------------------------
// Console
// -----------------------------------------------------------------------------

// ByteConsole is a scripted serial console: Push feeds input bytes, Output
// collects everything written by the firmware.
type ByteConsole struct {
	mu  sync.Mutex
	in  []byte
	out []byte
}

func (c *ByteConsole) Push(data string) {
	c.mu.Lock()
	c.in = append(c.in, data...)
	c.mu.Unlock()
}

func (c *ByteConsole) ReadByte() (byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.in) == 0 {
		return 0, false
	}
	b := c.in[0]
	c.in = c.in[1:]
	return b, true
}

func (c *ByteConsole) WriteString(s string) {
	c.mu.Lock()
	c.out = append(c.out, s...)
	c.mu.Unlock()
}

func (c *ByteConsole) Output() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return string(c.out)
}
