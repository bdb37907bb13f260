package seq

import (
	"fmt"

	"seq/internal/diag"
	"seq/internal/source"
)

// Error is an expansion failure positioned at the offending token.
type Error struct {
	Code  diag.Code
	Span  source.Span
	Msg   string
	Notes []diag.Note
	Fixes []diag.Fix
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Code.ID(), e.Span, e.Msg)
}

// Diagnostic converts the error into an error-level diagnostic.
func (e *Error) Diagnostic() diag.Diagnostic {
	d := diag.NewError(e.Code, e.Span, e.Msg)
	d.Notes = append(d.Notes, e.Notes...)
	d.Fixes = append(d.Fixes, e.Fixes...)
	return d
}

func errorAt(code diag.Code, sp source.Span, format string, args ...any) *Error {
	return &Error{Code: code, Span: sp, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) withFix(f diag.Fix) *Error {
	e.Fixes = append(e.Fixes, f)
	return e
}
