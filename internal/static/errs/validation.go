package errs

import "strings"

// FieldError describes one rejected request field.
type FieldError struct {
	Field string
	Msg   string
}

// ValidationErrors is returned when a request is missing or has malformed fields.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Msg)
	}
	return strings.Join(parts, "; ")
}
