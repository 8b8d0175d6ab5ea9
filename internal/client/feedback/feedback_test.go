package feedback

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"gitlab.com/stark-bootcamp.net/internal/client/timer"
)

func TestBusyControlExcludes(t *testing.T) {
	c := NewBusyControl("Submit", "Submitting...")
	assert.Equal(t, "Submit", c.Label())

	assert.True(t, c.TryAcquire())
	assert.False(t, c.TryAcquire())
	assert.True(t, c.Busy())
	assert.Equal(t, "Submitting...", c.Label())

	c.Release()
	assert.False(t, c.Busy())
	assert.True(t, c.TryAcquire())
}

func TestBusyControlConcurrentAcquire(t *testing.T) {
	c := NewBusyControl("Submit", "Submitting...")
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.TryAcquire() {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	assert.Equal(t, Toast{}, r.Last())

	r.Notify(Error, "URL is required.")
	r.Mark("git_hub_link", false, "URL is required.")
	r.Notify(Success, "done")

	assert.Equal(t, Toast{Kind: Success, Message: "done"}, r.Last())
	assert.Len(t, r.Toasts, 2)
	assert.False(t, r.Fields["git_hub_link"].Valid)
}

func TestConsoleWritesMessages(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Notify(Warning, "Time is up. Submission disabled.")
	c.Mark("abstract", false, "Technical Abstract is required.")
	c.Render("04:59", timer.Normal)
	c.Line(Error, "Compilation Error")

	out := buf.String()
	assert.Contains(t, out, "Time is up. Submission disabled.")
	assert.Contains(t, out, "abstract: Technical Abstract is required.")
	assert.Contains(t, out, "04:59")
	assert.Contains(t, out, "Compilation Error")
}
