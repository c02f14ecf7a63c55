// Package diag defines the parse diagnostic type. Parsing stops at the
// first error; the error pinpoints the rejection with a 1-based line and
// column derived from byte positions in the source.
package diag

import "fmt"

// Error is a parse diagnostic. Line and Column are 1-based; zero means
// the diagnostic carries no location. Filename, when set, decorates the
// formatted message.
type Error struct {
	Message  string
	Line     int
	Column   int
	Filename string
}

// New builds a located diagnostic. The pipeline tracks 0-based lines and
// columns internally; the +1 to the reported position happens here,
// exactly once.
func New(line, col int, format string, args ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(format, args...),
		Line:    line + 1,
		Column:  col + 1,
	}
}

// Bare builds a diagnostic without a location.
func Bare(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Error formats the diagnostic. A located error with a filename renders
// as "<message> at <line>:<column> of <filename>"; otherwise the bare
// message is returned.
func (e *Error) Error() string {
	if e.Filename != "" && e.Line > 0 {
		return fmt.Sprintf("%s at %d:%d of <%s>", e.Message, e.Line, e.Column, e.Filename)
	}
	return e.Message
}
