// Package stage drives the submission of stages 2 to 5: validate, encode,
// post, report, then hand over to the leaderboard.
package stage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gitlab.com/stark-bootcamp.net/internal/client/apiclient"
	"gitlab.com/stark-bootcamp.net/internal/client/feedback"
	"gitlab.com/stark-bootcamp.net/internal/client/validation"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/domain"
)

const (
	MsgExpired = "Time is up. Submission disabled."
	MsgSuccess = "Submitted successfully."

	LeaderboardView = "leaderboard"
)

// Route names the view to open next and the stage that led there.
type Route struct {
	View string
	From int
}

type Navigator interface {
	Navigate(ctx context.Context, route Route) error
}

// Poster is the backend call the flow needs.
type Poster interface {
	Post(ctx context.Context, path, contentType string, body []byte) (apiclient.ResponseInfo, error)
}

// Clock is the stage timer as seen by the flow.
type Clock interface {
	Expired() bool
	Stop()
}

// Deps are the collaborators shared by every stage.
type Deps struct {
	API           Poster
	Clock         Clock
	Control       feedback.Control
	Notifier      feedback.Notifier
	Marker        feedback.FieldMarker
	Navigator     Navigator
	Session       validation.Getter
	FallbackTeam  string
	RedirectDelay time.Duration
	Logger        primary.Logger
}

// Outcome is a successful submission.
type Outcome struct {
	Message string
	URLs    []string
}

type Flow struct {
	def  Definition
	deps Deps
}

func NewFlow(def Definition, deps Deps) *Flow {
	return &Flow{def: def, deps: deps}
}

func (f *Flow) Definition() Definition {
	return f.def
}

func (f *Flow) Submit(ctx context.Context, form Form) (*Outcome, error) {
	d := f.deps

	if d.Clock != nil && d.Clock.Expired() {
		f.notify(feedback.Error, MsgExpired)
		return nil, ErrExpired
	}

	for _, rule := range f.def.Rules {
		res := rule.Check(form)
		if !res.Valid {
			f.notify(feedback.Error, res.Message)
			f.mark(rule.Field, false, res.Message)
			return nil, &ValidationError{Field: rule.Field, Message: res.Message}
		}
		f.mark(rule.Field, true, "")
	}

	team := validation.ResolveTeamName(d.Session, d.FallbackTeam)
	body, err := f.def.Build(team, form)
	if err != nil {
		f.notify(feedback.Error, err.Error())
		return nil, fmt.Errorf("failed to build stage %d body: %w", f.def.Stage, err)
	}

	if d.Control != nil {
		if !d.Control.TryAcquire() {
			return nil, ErrBusy
		}
	}
	release := func() {
		if d.Control != nil {
			d.Control.Release()
		}
	}

	f.log("Submitting stage", "stage", f.def.Stage, "team", team, "endpoint", f.def.Endpoint, "bytes", len(body.Data))
	info, err := d.API.Post(ctx, f.def.Endpoint, body.ContentType, body.Data)
	if err != nil {
		release()
		f.notify(feedback.Error, "Network error: "+err.Error())
		return nil, &NetworkError{Err: err}
	}
	if !info.OK() {
		release()
		msg := validation.ParseAPIError(info.Body, info.StatusCode)
		f.notify(feedback.Error, msg)
		return nil, &RejectedError{StatusCode: info.StatusCode, Message: msg}
	}

	var resp domain.UploadResponse
	if err := json.Unmarshal(info.Body, &resp); err != nil {
		f.log("Unreadable stage reply", "stage", f.def.Stage, "status", info.StatusCode, "error", err)
	}
	msg := MsgSuccess
	if len(resp.URLs) > 0 {
		msg = fmt.Sprintf("%s %d file(s) uploaded.", MsgSuccess, len(resp.URLs))
	}
	f.notify(feedback.Success, msg)
	if d.Clock != nil {
		d.Clock.Stop()
	}
	release()

	outcome := &Outcome{Message: msg, URLs: resp.URLs}
	if err := f.redirect(ctx); err != nil {
		return outcome, err
	}
	return outcome, nil
}

func (f *Flow) redirect(ctx context.Context) error {
	if f.deps.Navigator == nil {
		return nil
	}
	if f.deps.RedirectDelay > 0 {
		t := time.NewTimer(f.deps.RedirectDelay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	return f.deps.Navigator.Navigate(ctx, Route{View: LeaderboardView, From: f.def.Stage})
}

func (f *Flow) notify(kind feedback.Kind, msg string) {
	if f.deps.Notifier != nil {
		f.deps.Notifier.Notify(kind, msg)
	}
}

func (f *Flow) mark(field string, valid bool, msg string) {
	if f.deps.Marker != nil {
		f.deps.Marker.Mark(field, valid, msg)
	}
}

func (f *Flow) log(msg string, args ...interface{}) {
	if f.deps.Logger != nil {
		f.deps.Logger.Debug(msg, args...)
	}
}
