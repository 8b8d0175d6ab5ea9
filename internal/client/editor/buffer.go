package editor

import (
	"fmt"
	"strings"
)

// Buffer is the code being edited in one language.
type Buffer struct {
	Language string
	Code     string
}

// Lines is the number of lines in the buffer, at least 1.
func (b Buffer) Lines() int {
	return strings.Count(b.Code, "\n") + 1
}

// Column is the length of the last line, where typing continues.
func (b Buffer) Column() int {
	i := strings.LastIndex(b.Code, "\n")
	return len([]rune(b.Code[i+1:]))
}

// StatusLine renders "Ln 3, Col 12 | python".
func (b Buffer) StatusLine() string {
	return fmt.Sprintf("Ln %d, Col %d | %s", b.Lines(), b.Column(), b.Language)
}

// Numbered returns the code with a right-aligned line number gutter.
func (b Buffer) Numbered() string {
	lines := strings.Split(b.Code, "\n")
	width := len(fmt.Sprint(len(lines)))
	var sb strings.Builder
	for i, l := range lines {
		fmt.Fprintf(&sb, "%*d | %s\n", width, i+1, l)
	}
	return sb.String()
}
