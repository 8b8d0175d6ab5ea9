// Package judge talks to a Judge0 compatible execution service.
package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"
)

const (
	DefaultCPUTimeLimit  = 2
	DefaultMemoryLimitKB = 128000

	submissionsPath = "/submissions?wait=true&base64_encoded=false"
)

// Language is one entry of the execution service's language table.
type Language struct {
	Key      string
	ID       int
	Version  string
	FileName string
	// LineInput languages read stdin line by line.
	LineInput bool
}

var languages = map[string]Language{
	"python":     {Key: "python", ID: 92, Version: "3.10.0", FileName: "main.py", LineInput: true},
	"cpp":        {Key: "cpp", ID: 54, Version: "10.2.0", FileName: "main.cpp", LineInput: true},
	"java":       {Key: "java", ID: 62, Version: "15.0.2", FileName: "Main.java", LineInput: true},
	"c":          {Key: "c", ID: 50, Version: "10.2.0", FileName: "main.c", LineInput: true},
	"javascript": {Key: "javascript", ID: 93, Version: "18.15.0", FileName: "main.js"},
}

var aliases = map[string]string{
	"js":      "javascript",
	"c++":     "cpp",
	"py":      "python",
	"python3": "python",
}

var ErrUnsupportedLanguage = errors.New("unsupported language")

// Normalize maps aliases such as "js" to their table key.
func Normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if key, ok := aliases[lang]; ok {
		return key
	}
	return lang
}

func Lookup(lang string) (Language, error) {
	l, ok := languages[Normalize(lang)]
	if !ok {
		return Language{}, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}
	return l, nil
}

// Languages lists the table keys in a stable order.
func Languages() []string {
	keys := make([]string, 0, len(languages))
	for k := range languages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var whitespace = regexp.MustCompile(`\s+`)

// FormatStdin turns single-line, space separated input into one value per
// line for languages that read line by line. Input that already holds a
// newline is left alone.
func FormatStdin(stdin, lang string) string {
	if stdin == "" || strings.Contains(stdin, "\n") {
		return stdin
	}
	l, ok := languages[Normalize(lang)]
	if !ok || !l.LineInput {
		return stdin
	}
	return strings.Join(whitespace.Split(strings.TrimSpace(stdin), -1), "\n")
}

type Request struct {
	SourceCode     string  `json:"source_code"`
	LanguageID     int     `json:"language_id"`
	Stdin          string  `json:"stdin"`
	ExpectedOutput *string `json:"expected_output"`
	CPUTimeLimit   float64 `json:"cpu_time_limit"`
	MemoryLimit    int     `json:"memory_limit"`
}

type Status struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

type Response struct {
	Stdout        string  `json:"stdout"`
	Stderr        string  `json:"stderr"`
	CompileOutput string  `json:"compile_output"`
	Message       string  `json:"message"`
	Status        Status  `json:"status"`
	Time          string  `json:"time"`
	Memory        float64 `json:"memory"`
}

func (r *Response) Verdict() Verdict {
	return Classify(r.Status.ID)
}

// MemoryKB is the reported memory divided by 1024, as the editor shows it.
func (r *Response) MemoryKB() float64 {
	return r.Memory / 1024
}

type Verdict int

const (
	UnknownStatus Verdict = iota
	Accepted
	WrongAnswer
	TimeLimitExceeded
	CompilationError
	RuntimeError
)

func (v Verdict) String() string {
	switch v {
	case Accepted:
		return "Accepted"
	case WrongAnswer:
		return "Wrong Answer"
	case TimeLimitExceeded:
		return "Time Limit Exceeded"
	case CompilationError:
		return "Compilation Error"
	case RuntimeError:
		return "Runtime Error"
	default:
		return "Unknown"
	}
}

// Classify maps a Judge0 status id to a verdict. Ids 7 to 12 are the
// runtime error family (SIGSEGV, SIGXFSZ, SIGFPE, SIGABRT, NZEC, other).
func Classify(statusID int) Verdict {
	switch {
	case statusID == 3:
		return Accepted
	case statusID == 4:
		return WrongAnswer
	case statusID == 5:
		return TimeLimitExceeded
	case statusID == 6:
		return CompilationError
	case statusID >= 7 && statusID <= 12:
		return RuntimeError
	default:
		return UnknownStatus
	}
}

type Options struct {
	BaseURL       string
	AuthToken     string
	Timeout       time.Duration
	CPUTimeLimit  float64
	MemoryLimitKB int
}

type Client struct {
	baseURL   string
	authToken string
	cpuLimit  float64
	memLimit  int
	http      *http.Client
}

func New(opts Options) *Client {
	if opts.CPUTimeLimit <= 0 {
		opts.CPUTimeLimit = DefaultCPUTimeLimit
	}
	if opts.MemoryLimitKB <= 0 {
		opts.MemoryLimitKB = DefaultMemoryLimitKB
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		authToken: opts.AuthToken,
		cpuLimit:  opts.CPUTimeLimit,
		memLimit:  opts.MemoryLimitKB,
		http:      &http.Client{Timeout: opts.Timeout},
	}
}

// Run builds a request for code in lang and executes it.
func (c *Client) Run(ctx context.Context, lang, code, stdin string) (*Response, error) {
	l, err := Lookup(lang)
	if err != nil {
		return nil, err
	}
	return c.Execute(ctx, Request{
		SourceCode:   code,
		LanguageID:   l.ID,
		Stdin:        FormatStdin(stdin, l.Key),
		CPUTimeLimit: c.cpuLimit,
		MemoryLimit:  c.memLimit,
	})
}

func (c *Client) Execute(ctx context.Context, req Request) (*Response, error) {
	if req.CPUTimeLimit <= 0 {
		req.CPUTimeLimit = c.cpuLimit
	}
	if req.MemoryLimit <= 0 {
		req.MemoryLimit = c.memLimit
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode judge request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+submissionsPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build judge request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		httpReq.Header.Set("X-Auth-Token", c.authToken)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("judge request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read judge response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("judge API error: %s", http.StatusText(resp.StatusCode))
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode judge response: %w", err)
	}
	return &out, nil
}
