package diag

import (
	"seq/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit заменяет текст под Span на NewText.
// Непустой OldText должен совпасть с текущим текстом под Span.
type FixEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// FixApplicability says whether a fix can be applied without review.
type FixApplicability uint8

const (
	FixApplicabilityAlwaysSafe FixApplicability = iota
	FixApplicabilityMaybeIncorrect
)

func (a FixApplicability) String() string {
	switch a {
	case FixApplicabilityAlwaysSafe:
		return "always-safe"
	case FixApplicabilityMaybeIncorrect:
		return "maybe-incorrect"
	default:
		return "unknown"
	}
}

type Fix struct {
	// ID стабилен в пределах одного прогона; пустой ID генерируется при применении
	ID            string
	Title         string
	Applicability FixApplicability
	Edits         []FixEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
