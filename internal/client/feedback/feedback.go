// Package feedback carries user-facing messages, busy controls and field
// markers between the client flows and whatever renders them.
package feedback

import (
	"sync"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Warning Kind = "warning"
	Info    Kind = "info"
)

// Toast is one transient message.
type Toast struct {
	Kind    Kind
	Message string
}

type Notifier interface {
	Notify(kind Kind, message string)
}

// FieldMarker flags a form field as valid or invalid.
type FieldMarker interface {
	Mark(field string, valid bool, message string)
}

// Control is a submit control that is busy while a request is in flight.
type Control interface {
	TryAcquire() bool
	Release()
	Busy() bool
}

// BusyControl swaps its label while held.
type BusyControl struct {
	mu           sync.Mutex
	busy         bool
	label        string
	loadingLabel string
}

func NewBusyControl(label, loadingLabel string) *BusyControl {
	return &BusyControl{label: label, loadingLabel: loadingLabel}
}

func (c *BusyControl) TryAcquire() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return false
	}
	c.busy = true
	return true
}

func (c *BusyControl) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
}

func (c *BusyControl) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Label is the text the control currently shows.
func (c *BusyControl) Label() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return c.loadingLabel
	}
	return c.label
}

// FieldState is the last marking of one field.
type FieldState struct {
	Valid   bool
	Message string
}

// Recorder keeps every toast and field marking in memory.
type Recorder struct {
	mu     sync.Mutex
	Toasts []Toast
	Fields map[string]FieldState
}

func NewRecorder() *Recorder {
	return &Recorder{Fields: make(map[string]FieldState)}
}

func (r *Recorder) Notify(kind Kind, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Toasts = append(r.Toasts, Toast{Kind: kind, Message: message})
}

func (r *Recorder) Mark(field string, valid bool, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Fields[field] = FieldState{Valid: valid, Message: message}
}

// Last returns the most recent toast, or a zero Toast.
func (r *Recorder) Last() Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Toasts) == 0 {
		return Toast{}
	}
	return r.Toasts[len(r.Toasts)-1]
}
