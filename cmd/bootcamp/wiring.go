package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"gitlab.com/stark-bootcamp.net/internal/client/config"
	"gitlab.com/stark-bootcamp.net/internal/client/feedback"
	"gitlab.com/stark-bootcamp.net/internal/client/leaderboard"
	"gitlab.com/stark-bootcamp.net/internal/client/stage"
	"gitlab.com/stark-bootcamp.net/internal/client/timer"
)

func durations(c config.Config) timer.Durations {
	return timer.Durations{
		ByName:     c.Timers.Durations,
		Default:    c.Timers.DefaultDuration,
		WarningAt:  c.Timers.WarningAt,
		CriticalAt: c.Timers.CriticalAt,
	}
}

// timerDisplay prints a frame only when the severity changes, plus the
// final 00:00 frame, so the countdown does not flood the terminal.
type timerDisplay struct {
	mu      sync.Mutex
	console *feedback.Console
	last    timer.Severity
	started bool
}

func (d *timerDisplay) Render(text string, severity timer.Severity) {
	d.mu.Lock()
	changed := !d.started || severity != d.last
	d.started = true
	d.last = severity
	d.mu.Unlock()

	if changed || text == "00:00" {
		d.console.Render(text, severity)
	}
}

func newStageTimer(n int) *timer.Timer {
	name := fmt.Sprintf("stage%d", n)
	return timer.New(name, durations(cfg), &timerDisplay{console: console}, func() {
		console.Notify(feedback.Error, stage.MsgExpired)
		logger.Info("Stage timer expired", "stage", n)
	})
}

// leaderboardNavigator shows the leaderboard in place of a page change.
type leaderboardNavigator struct {
	out io.Writer
}

func (n leaderboardNavigator) Navigate(ctx context.Context, route stage.Route) error {
	if route.View != stage.LeaderboardView {
		return fmt.Errorf("unknown view %q", route.View)
	}
	return showLeaderboard(ctx, n.out, route.From)
}

func showLeaderboard(ctx context.Context, out io.Writer, from int) error {
	view, err := leaderboard.Load(ctx, api, from)
	if err != nil {
		logger.Warn("Leaderboard fetch failed", "error", err)
	}
	return leaderboard.Render(out, view)
}
