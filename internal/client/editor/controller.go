// Package editor runs contestant code against a problem's test cases through
// the execution service and reports the outcome to the contest backend.
package editor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gitlab.com/stark-bootcamp.net/internal/client/apiclient"
	"gitlab.com/stark-bootcamp.net/internal/client/feedback"
	"gitlab.com/stark-bootcamp.net/internal/client/judge"
	"gitlab.com/stark-bootcamp.net/internal/client/validation"
	"gitlab.com/stark-bootcamp.net/internal/core/ports/primary"
	"gitlab.com/stark-bootcamp.net/internal/domain"
)

var (
	ErrBusy        = errors.New("execution already in progress")
	ErrExpired     = errors.New("time is up")
	ErrNoCode      = errors.New("no code")
	ErrNoTestCases = errors.New("no test cases available")
)

const MsgExpired = "Time is up. Submission disabled."

type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Executor runs one program against one input.
type Executor interface {
	Run(ctx context.Context, lang, code, stdin string) (*judge.Response, error)
}

// Backend is the contest API as seen by the editor.
type Backend interface {
	GetJSON(ctx context.Context, path string, out interface{}) error
	PostJSON(ctx context.Context, path string, body []byte) (apiclient.ResponseInfo, error)
}

type Clock interface {
	Expired() bool
}

// Terminal receives the editor's output lines.
type Terminal interface {
	Line(kind feedback.Kind, text string)
}

type Deps struct {
	Judge        Executor
	API          Backend
	Clock        Clock
	Terminal     Terminal
	Session      validation.Getter
	FallbackTeam string
	ContestID    string
	ProblemID    int
	Logger       primary.Logger
}

// Summary is the result of a full submission.
type Summary struct {
	Passed int
	Total  int
	Status string
}

type Controller struct {
	deps Deps

	mu       sync.Mutex
	state    State
	buf      Buffer
	problem  *domain.Problem
	template string
}

func New(deps Deps, language string) (*Controller, error) {
	l, err := judge.Lookup(language)
	if err != nil {
		return nil, err
	}
	return &Controller{deps: deps, buf: Buffer{Language: l.Key}}, nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Buffer() Buffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf
}

func (c *Controller) Problem() *domain.Problem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.problem
}

func (c *Controller) SetCode(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf.Code = code
}

// SetLanguage switches the buffer language. The starter template of the new
// language replaces the code only while the code is untouched.
func (c *Controller) SetLanguage(lang string) error {
	l, err := judge.Lookup(lang)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	untouched := c.buf.Code == "" || c.buf.Code == c.template
	c.buf.Language = l.Key
	if c.problem != nil && untouched {
		c.template = codeFor(c.problem.PreCode, l.Key)
		c.buf.Code = c.template
	}
	return nil
}

// LoadProblem fetches a problem, prints its statement and seeds the buffer
// with the starter template when the buffer is empty.
func (c *Controller) LoadProblem(ctx context.Context, id int) (*domain.Problem, error) {
	var p domain.Problem
	if err := c.deps.API.GetJSON(ctx, fmt.Sprintf("/problem/%d", id), &p); err != nil {
		c.line(feedback.Error, "Error loading problem: "+err.Error())
		return nil, fmt.Errorf("failed to load problem %d: %w", id, err)
	}

	c.mu.Lock()
	c.problem = &p
	if c.buf.Code == "" {
		c.template = codeFor(p.PreCode, c.buf.Language)
		c.buf.Code = c.template
	}
	c.mu.Unlock()

	c.line(feedback.Info, p.Title)
	if p.Description != "" {
		c.line(feedback.Info, p.Description)
	}
	for i, tc := range p.VisibleTestCases() {
		c.line(feedback.Info, fmt.Sprintf("Example %d", i+1))
		c.line(feedback.Info, "  Input:  "+tc.Input)
		c.line(feedback.Info, "  Output: "+tc.ExpectedOutput)
	}
	return &p, nil
}

func (c *Controller) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Running {
		return ErrBusy
	}
	c.state = Running
	return nil
}

func (c *Controller) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Idle
}

// snapshot returns the buffer, the source to execute and the test cases.
func (c *Controller) snapshot() (Buffer, string, []domain.TestCase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	buf := c.buf
	buf.Code = strings.TrimSpace(buf.Code)
	var cases []domain.TestCase
	source := buf.Code
	if c.problem != nil {
		cases = c.problem.TestCases
		if trailer := codeFor(c.problem.PostCode, buf.Language); trailer != "" {
			source = buf.Code + "\n" + trailer
		}
	}
	return buf, source, cases
}

// Run executes the buffer against the first test case's input.
func (c *Controller) Run(ctx context.Context) (*judge.Response, error) {
	if err := c.begin(); err != nil {
		return nil, err
	}
	defer c.end()

	buf, source, cases := c.snapshot()
	if buf.Code == "" {
		c.line(feedback.Error, "Error: No code to execute")
		return nil, ErrNoCode
	}

	c.line(feedback.Info, "Executing code...")
	stdin := ""
	if len(cases) > 0 {
		stdin = cases[0].Input
		if stdin != "" {
			c.line(feedback.Info, "Input: "+stdin)
		}
	}

	res, err := c.deps.Judge.Run(ctx, buf.Language, source, stdin)
	if err != nil {
		c.line(feedback.Error, "Error: "+err.Error())
		return nil, err
	}
	c.report(res)
	return res, nil
}

func (c *Controller) report(res *judge.Response) {
	switch res.Verdict() {
	case judge.Accepted:
		c.line(feedback.Success, "Output: "+orDefault(res.Stdout, "(no output)"))
		if res.Stderr != "" {
			c.line(feedback.Warning, "Warning: "+res.Stderr)
		}
	case judge.WrongAnswer:
		c.line(feedback.Error, "Wrong Answer. Expected different output.")
		if res.Stdout != "" {
			c.line(feedback.Info, "Your output: "+res.Stdout)
		}
	case judge.TimeLimitExceeded:
		c.line(feedback.Error, "Time Limit Exceeded")
	case judge.CompilationError:
		c.line(feedback.Error, "Compilation Error: "+orDefault(res.CompileOutput, "Unknown error"))
	case judge.RuntimeError:
		c.line(feedback.Error, "Runtime Error: "+orDefault(res.Stderr, res.Message, "Unknown error"))
	default:
		c.line(feedback.Error, "Status: "+orDefault(res.Status.Description, "Unknown status"))
		if res.Stdout != "" {
			c.line(feedback.Info, "Output: "+res.Stdout)
		}
		if res.Stderr != "" {
			c.line(feedback.Error, "Error: "+res.Stderr)
		}
	}
	if res.Time != "" || res.Memory > 0 {
		c.line(feedback.Info, fmt.Sprintf("Time: %ss | Memory: %.2f KB", orDefault(res.Time, "0"), res.MemoryKB()))
	}
}

// Submit grades the buffer against every test case, then posts the summary
// to the backend.
func (c *Controller) Submit(ctx context.Context) (*Summary, error) {
	if c.deps.Clock != nil && c.deps.Clock.Expired() {
		c.line(feedback.Error, MsgExpired)
		return nil, ErrExpired
	}
	if err := c.begin(); err != nil {
		return nil, err
	}
	defer c.end()

	buf, source, cases := c.snapshot()
	if buf.Code == "" {
		c.line(feedback.Error, "Error: No code to submit")
		return nil, ErrNoCode
	}
	if len(cases) == 0 {
		c.line(feedback.Error, "Error: No test cases available for this problem")
		return nil, ErrNoTestCases
	}

	c.line(feedback.Info, "Testing solution against all test cases...")
	summary := &Summary{Total: len(cases)}
	for i, tc := range cases {
		n := i + 1
		if tc.IsHidden {
			c.line(feedback.Info, fmt.Sprintf("Running hidden test case %d/%d...", n, summary.Total))
		} else {
			c.line(feedback.Info, fmt.Sprintf("Running test case %d/%d...", n, summary.Total))
			c.line(feedback.Info, "Input: "+tc.Input)
		}

		res, err := c.deps.Judge.Run(ctx, buf.Language, source, tc.Input)
		if err != nil {
			c.line(feedback.Error, fmt.Sprintf("[FAIL] Test %d: ERROR - %s", n, err.Error()))
			continue
		}
		if c.grade(n, tc, res) {
			summary.Passed++
		}
		if res.Verdict() == judge.CompilationError {
			break
		}
	}

	summary.Status = domain.SubmissionFailed
	c.line(feedback.Info, "")
	if summary.Passed == summary.Total {
		summary.Status = domain.SubmissionPassed
		c.line(feedback.Success, fmt.Sprintf("[OK] All tests passed (%d/%d)", summary.Passed, summary.Total))
		c.line(feedback.Success, "Solution accepted!")
	} else {
		c.line(feedback.Error, fmt.Sprintf("[FAIL] Tests passed: %d/%d", summary.Passed, summary.Total))
		c.line(feedback.Error, "Solution needs improvement.")
	}
	c.line(feedback.Info, fmt.Sprintf("Passed %d/%d test cases", summary.Passed, summary.Total))

	if err := c.postSummary(ctx, buf, summary); err != nil {
		return summary, err
	}
	return summary, nil
}

func (c *Controller) grade(n int, tc domain.TestCase, res *judge.Response) bool {
	switch res.Verdict() {
	case judge.Accepted:
		got := strings.TrimSpace(res.Stdout)
		want := strings.TrimSpace(tc.ExpectedOutput)
		if got == want {
			if tc.IsHidden {
				c.line(feedback.Success, fmt.Sprintf("[OK] Test %d: PASSED (hidden)", n))
			} else {
				c.line(feedback.Success, fmt.Sprintf("[OK] Test %d: PASSED", n))
			}
			return true
		}
		c.line(feedback.Error, fmt.Sprintf("[FAIL] Test %d: FAILED", n))
		if tc.IsHidden {
			c.line(feedback.Info, "  Output does not match expected result")
		} else {
			c.line(feedback.Info, "  Expected: "+want)
			c.line(feedback.Info, "  Got: "+got)
		}
	case judge.CompilationError:
		c.line(feedback.Error, fmt.Sprintf("[FAIL] Test %d: COMPILATION ERROR", n))
		c.line(feedback.Info, "  "+orDefault(res.CompileOutput, "Unknown compilation error"))
	case judge.RuntimeError:
		c.line(feedback.Error, fmt.Sprintf("[FAIL] Test %d: RUNTIME ERROR", n))
		c.line(feedback.Info, "  "+orDefault(res.Stderr, res.Message, "Unknown runtime error"))
	default:
		c.line(feedback.Error, fmt.Sprintf("[FAIL] Test %d: %s", n, orDefault(res.Status.Description, "FAILED")))
	}
	return false
}

type submitPayload struct {
	TeamName  string `json:"Team_Name"`
	ContestID string `json:"contest_id"`
	ProblemID int    `json:"problem_id"`
	Code      string `json:"code"`
	Language  string `json:"language"`
	Status    string `json:"status"`
}

func (c *Controller) postSummary(ctx context.Context, buf Buffer, summary *Summary) error {
	c.line(feedback.Info, "")
	c.line(feedback.Info, "Submitting solution to server...")

	payload := submitPayload{
		TeamName:  validation.ResolveTeamName(c.deps.Session, c.deps.FallbackTeam),
		ContestID: c.deps.ContestID,
		ProblemID: c.deps.ProblemID,
		Code:      buf.Code,
		Language:  buf.Language,
		Status:    summary.Status,
	}
	if p := c.Problem(); p != nil {
		payload.ProblemID = p.ID
		if p.ContestID != "" {
			payload.ContestID = p.ContestID
		}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode submission: %w", err)
	}

	if c.deps.Logger != nil {
		c.deps.Logger.Debug("Posting code submission", "team", payload.TeamName, "problem", payload.ProblemID, "status", payload.Status)
	}
	info, err := c.deps.API.PostJSON(ctx, "/submit", body)
	if err != nil {
		c.line(feedback.Error, "[FAIL] Submission error: "+err.Error())
		return fmt.Errorf("failed to post submission: %w", err)
	}
	if !info.OK() {
		c.line(feedback.Error, "[FAIL] Submission error: "+validation.ParseAPIError(info.Body, info.StatusCode))
		return &apiclient.StatusError{StatusCode: info.StatusCode, Body: info.Body}
	}

	c.line(feedback.Success, "[OK] Submission successful. Status: "+summary.Status)
	var saved domain.CodeSubmission
	if json.Unmarshal(info.Body, &saved) == nil && saved.ID != uuid.Nil {
		c.line(feedback.Info, "Submission ID: "+saved.ID.String())
	}
	return nil
}

func (c *Controller) line(kind feedback.Kind, text string) {
	if c.deps.Terminal != nil {
		c.deps.Terminal.Line(kind, text)
	}
}

// codeFor picks the per-language snippet, accepting "js" keyed maps too.
func codeFor(snippets map[string]string, lang string) string {
	if s, ok := snippets[lang]; ok {
		return s
	}
	for k, s := range snippets {
		if judge.Normalize(k) == lang {
			return s
		}
	}
	return ""
}

func orDefault(values ...string) string {
	for _, v := range values[:len(values)-1] {
		if v != "" {
			return v
		}
	}
	return values[len(values)-1]
}
