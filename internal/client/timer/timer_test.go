package timer

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	frames []string
	levels []Severity
}

func (r *recorder) Render(text string, severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, text)
	r.levels = append(r.levels, severity)
}

func (r *recorder) last() (string, Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames[len(r.frames)-1], r.levels[len(r.levels)-1]
}

func durations(seconds int) Durations {
	return Durations{ByName: map[string]int{"stage2": seconds}, Default: 60, WarningAt: 30, CriticalAt: 10}
}

func TestExpiresExactlyOnce(t *testing.T) {
	for _, d := range []int{1, 3, 5} {
		var fired atomic.Int32
		rec := &recorder{}
		tm := New("stage2", durations(d), rec, func() { fired.Add(1) }, WithInterval(time.Millisecond))

		tm.Start()
		require.Eventually(t, tm.Expired, time.Second, time.Millisecond)
		time.Sleep(10 * time.Millisecond)

		assert.Equal(t, int32(1), fired.Load(), "duration %d", d)
		assert.Equal(t, 0, tm.Remaining())
		assert.False(t, tm.Active())

		text, sev := rec.last()
		assert.Equal(t, "00:00", text)
		assert.Equal(t, Critical, sev)

		tm.Start()
		time.Sleep(5 * time.Millisecond)
		assert.Equal(t, int32(1), fired.Load())
	}
}

func TestStopIsIdempotentAndFreezes(t *testing.T) {
	tm := New("stage2", durations(1000), nil, nil, WithInterval(time.Millisecond))
	tm.Start()
	require.Eventually(t, func() bool { return tm.Remaining() < 1000 }, time.Second, time.Millisecond)

	tm.Stop()
	tm.Stop()
	frozen := tm.Remaining()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, frozen, tm.Remaining())
	assert.False(t, tm.Active())
	assert.False(t, tm.Expired())
}

func TestResetRearmsWithoutStarting(t *testing.T) {
	var fired atomic.Int32
	tm := New("stage2", durations(2), nil, func() { fired.Add(1) }, WithInterval(time.Millisecond))
	tm.Start()
	require.Eventually(t, tm.Expired, time.Second, time.Millisecond)

	tm.Reset(45)
	assert.Equal(t, 45, tm.Remaining())
	assert.False(t, tm.Expired())
	assert.False(t, tm.Active())

	tm.Reset(0)
	assert.Equal(t, 2, tm.Remaining())

	tm.Start()
	require.Eventually(t, tm.Expired, time.Second, time.Millisecond)
	assert.Equal(t, int32(2), fired.Load())
}

func TestUnknownNameUsesDefault(t *testing.T) {
	tm := New("bonus", Durations{}, nil, nil)
	assert.Equal(t, 60, tm.Duration())

	tm = New("bonus", Durations{Default: 90}, nil, nil)
	assert.Equal(t, 90, tm.Remaining())
}

func TestFormatAndSeverity(t *testing.T) {
	assert.Equal(t, "05:00", Format(300))
	assert.Equal(t, "01:05", Format(65))
	assert.Equal(t, "00:00", Format(-4))

	assert.Equal(t, Normal, SeverityFor(31, 30, 10))
	assert.Equal(t, Warning, SeverityFor(30, 30, 10))
	assert.Equal(t, Warning, SeverityFor(11, 30, 10))
	assert.Equal(t, Critical, SeverityFor(10, 30, 10))
	assert.Equal(t, "critical", Critical.String())
}
