package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// Clock bundles the two time operations the supervisory loop performs,
// so tests can substitute a scripted clock.
type Clock struct {
	NowMs func() int64
	Sleep func(d time.Duration)
}

// System returns a Clock backed by the real time package.
func System() Clock {
	return Clock{NowMs: NowMs, Sleep: time.Sleep}
}
