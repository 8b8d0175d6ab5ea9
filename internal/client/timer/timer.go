// Package timer implements the per-stage countdown clock.
package timer

import (
	"fmt"
	"sync"
	"time"
)

type Severity int

const (
	Normal Severity = iota
	Warning
	Critical
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	}
	return "normal"
}

// Display receives every rendered tick.
type Display interface {
	Render(text string, severity Severity)
}

type DisplayFunc func(text string, severity Severity)

func (f DisplayFunc) Render(text string, severity Severity) { f(text, severity) }

// Durations configures named countdowns in seconds.
type Durations struct {
	ByName     map[string]int
	Default    int
	WarningAt  int
	CriticalAt int
}

func (d Durations) lookup(name string) int {
	if v, ok := d.ByName[name]; ok && v > 0 {
		return v
	}
	if d.Default > 0 {
		return d.Default
	}
	return 60
}

type Option func(*Timer)

// WithInterval overrides the one second tick.
func WithInterval(interval time.Duration) Option {
	return func(t *Timer) {
		if interval > 0 {
			t.interval = interval
		}
	}
}

type Timer struct {
	name      string
	durations Durations
	display   Display
	onExpire  func()
	interval  time.Duration

	mu        sync.Mutex
	duration  int
	remaining int
	active    bool
	expired   bool
	fired     bool
	stop      chan struct{}
}

func New(name string, durations Durations, display Display, onExpire func(), opts ...Option) *Timer {
	t := &Timer{
		name:      name,
		durations: durations,
		display:   display,
		onExpire:  onExpire,
		interval:  time.Second,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.duration = durations.lookup(name)
	t.remaining = t.duration
	return t
}

// Start begins ticking. It does nothing if the timer is running or expired.
func (t *Timer) Start() {
	t.mu.Lock()
	if t.active || t.expired {
		t.mu.Unlock()
		return
	}
	if t.remaining <= 0 {
		fire := t.expireLocked()
		t.mu.Unlock()
		t.render(0)
		t.notify(fire)
		return
	}
	t.active = true
	stop := make(chan struct{})
	t.stop = stop
	remaining := t.remaining
	t.mu.Unlock()

	t.render(remaining)
	go t.run(stop)
}

// Stop halts ticking; calling it on a stopped timer is a no-op.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

// Reset stops the timer and re-arms it with seconds, or with its named
// duration when seconds <= 0. It does not start it.
func (t *Timer) Reset(seconds int) {
	t.mu.Lock()
	t.stopLocked()
	if seconds <= 0 {
		seconds = t.durations.lookup(t.name)
	}
	t.duration = seconds
	t.remaining = seconds
	t.expired = false
	t.fired = false
	t.mu.Unlock()

	t.render(seconds)
}

func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

func (t *Timer) Duration() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.duration
}

func (t *Timer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

func (t *Timer) Expired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expired
}

func (t *Timer) run(stop chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if done := t.tick(stop); done {
				return
			}
		}
	}
}

// tick decrements once. A tick from a loop that was stopped or replaced is
// dropped.
func (t *Timer) tick(stop chan struct{}) bool {
	t.mu.Lock()
	if t.stop != stop {
		t.mu.Unlock()
		return true
	}
	t.remaining--
	if t.remaining > 0 {
		remaining := t.remaining
		t.mu.Unlock()
		t.render(remaining)
		return false
	}

	t.stopLocked()
	fire := t.expireLocked()
	t.mu.Unlock()

	t.render(0)
	t.notify(fire)
	return true
}

func (t *Timer) stopLocked() {
	if !t.active {
		return
	}
	t.active = false
	close(t.stop)
	t.stop = nil
}

func (t *Timer) expireLocked() bool {
	t.remaining = 0
	t.expired = true
	fire := !t.fired
	t.fired = true
	return fire
}

func (t *Timer) notify(fire bool) {
	if fire && t.onExpire != nil {
		t.onExpire()
	}
}

func (t *Timer) render(remaining int) {
	if t.display == nil {
		return
	}
	t.display.Render(Format(remaining), SeverityFor(remaining, t.durations.WarningAt, t.durations.CriticalAt))
}

// Format renders seconds as mm:ss, clamping negatives to zero.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func SeverityFor(remaining, warningAt, criticalAt int) Severity {
	switch {
	case remaining <= criticalAt:
		return Critical
	case remaining <= warningAt:
		return Warning
	}
	return Normal
}
