package feedback

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/stark-bootcamp.net/internal/client/timer"
)

var (
	successColor = lipgloss.Color("#8BC34A")
	errorColor   = lipgloss.Color("#e53935")
	warningColor = lipgloss.Color("#FFC107")
	infoColor    = lipgloss.Color("#2196F3")
	mutedColor   = lipgloss.Color("#8a94a6")

	toastStyles = map[Kind]lipgloss.Style{
		Success: lipgloss.NewStyle().Foreground(successColor).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(errorColor).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(warningColor).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(infoColor),
	}

	toastIcons = map[Kind]string{
		Success: "✓",
		Error:   "✗",
		Warning: "!",
		Info:    "i",
	}

	timerStyles = map[timer.Severity]lipgloss.Style{
		timer.Normal:   lipgloss.NewStyle().Foreground(infoColor),
		timer.Warning:  lipgloss.NewStyle().Foreground(warningColor).Bold(true),
		timer.Critical: lipgloss.NewStyle().Foreground(errorColor).Bold(true),
	}

	fieldOK  = lipgloss.NewStyle().Foreground(successColor)
	fieldBad = lipgloss.NewStyle().Foreground(errorColor)
	muted    = lipgloss.NewStyle().Foreground(mutedColor)
)

// Console renders feedback as styled lines on a terminal.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Notify(kind Kind, message string) {
	style, ok := toastStyles[kind]
	if !ok {
		style = toastStyles[Info]
	}
	c.println(style.Render(fmt.Sprintf("%s %s", toastIcons[kind], message)))
}

func (c *Console) Mark(field string, valid bool, message string) {
	if valid {
		c.println(fieldOK.Render("  ✓ " + field))
		return
	}
	c.println(fieldBad.Render(fmt.Sprintf("  ✗ %s: %s", field, message)))
}

// Render draws one timer frame.
func (c *Console) Render(text string, severity timer.Severity) {
	c.println(timerStyles[severity].Render("⏱ " + text))
}

// Line prints terminal output in the style of kind.
func (c *Console) Line(kind Kind, text string) {
	style, ok := toastStyles[kind]
	if !ok {
		style = muted
	}
	c.println(style.Render(text))
}

// Plain prints unstyled muted text.
func (c *Console) Plain(text string) {
	c.println(muted.Render(text))
}

func (c *Console) println(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.out, s)
}
