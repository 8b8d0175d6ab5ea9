// Package validation holds the pure checks run before any stage submission.
package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"

	"gitlab.com/stark-bootcamp.net/internal/client/session"
)

// Result is the outcome of one check. Message is empty when Valid.
type Result struct {
	Valid   bool
	Message string
}

func ok() Result { return Result{Valid: true} }

func fail(format string, args ...interface{}) Result {
	return Result{Message: fmt.Sprintf(format, args...)}
}

// File is the part of an upload the size check needs.
type File struct {
	Name string
	Size int64
}

// ValidateFileSize reports the first file larger than ceiling.
func ValidateFileSize(files []File, ceiling int64) Result {
	for _, f := range files {
		if f.Size > ceiling {
			return fail("File %q exceeds %s limit.", f.Name, humanize.IBytes(uint64(ceiling)))
		}
	}
	return ok()
}

type URLKind int

const (
	Any URLKind = iota
	GitHub
	Figma
)

var urlPatterns = map[URLKind]*regexp.Regexp{
	Any:    regexp.MustCompile(`(?i)^https?://.+`),
	GitHub: regexp.MustCompile(`(?i)^https?://(www\.)?github\.com/.+`),
	Figma:  regexp.MustCompile(`(?i)^https?://(www\.)?(figma\.com|figma\.app)/.+`),
}

var urlHints = map[URLKind]string{
	Any:    "Please enter a valid http(s) URL.",
	GitHub: "Please enter a valid GitHub URL.",
	Figma:  "Please enter a valid Figma URL.",
}

func ValidateURL(raw string, kind URLKind) Result {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fail("URL is required.")
	}
	pattern, known := urlPatterns[kind]
	if !known {
		kind, pattern = Any, urlPatterns[Any]
	}
	if !pattern.MatchString(raw) {
		return Result{Message: urlHints[kind]}
	}
	return ok()
}

// Getter is the read side of the session store.
type Getter interface {
	Get(key string) string
}

// ResolveTeamName returns the stored team name, or fallback when none is set.
func ResolveTeamName(store Getter, fallback string) string {
	if store == nil {
		return fallback
	}
	if name := strings.TrimSpace(store.Get(session.KeyTeamName)); name != "" {
		return name
	}
	return fallback
}

// ParseAPIError turns an error response into the message shown to the user.
func ParseAPIError(body []byte, status int) string {
	fallback := fmt.Sprintf("Submission failed: %d", status)

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 || string(envelope.Detail) == "null" {
		return fallback
	}

	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		if text == "" {
			return fallback
		}
		return text
	}

	type withMsg struct {
		Msg string `json:"msg"`
	}
	var obj withMsg
	if err := json.Unmarshal(envelope.Detail, &obj); err == nil && obj.Msg != "" {
		return obj.Msg
	}
	var list []withMsg
	if err := json.Unmarshal(envelope.Detail, &list); err == nil && len(list) > 0 && list[0].Msg != "" {
		return list[0].Msg
	}
	return string(envelope.Detail)
}
