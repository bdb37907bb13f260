package fix

import (
	"seq/internal/diag"
	"seq/internal/source"
)

// Option mutates fix during construction.
type Option func(*diag.Fix)

// WithApplicability overrides applicability metadata.
func WithApplicability(app diag.FixApplicability) Option {
	return func(f *diag.Fix) {
		f.Applicability = app
	}
}

// MaybeIncorrect marks the fix as a guess that needs review.
func MaybeIncorrect() Option {
	return WithApplicability(diag.FixApplicabilityMaybeIncorrect)
}

// WithID sets stable identifier for fix.
func WithID(id string) Option {
	return func(f *diag.Fix) {
		f.ID = id
	}
}

func build(title string, edits []diag.FixEdit, opts []Option) diag.Fix {
	f := diag.Fix{
		Title:         title,
		Applicability: diag.FixApplicabilityAlwaysSafe,
		Edits:         edits,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&f)
		}
	}
	return f
}

// InsertText creates fix that inserts text at the start of at.
func InsertText(title string, at source.Span, text string, opts ...Option) diag.Fix {
	return build(title, []diag.FixEdit{{Span: at.StartPoint(), NewText: text}}, opts)
}

// DeleteSpan removes text covered by span; expect guards against stale spans.
func DeleteSpan(title string, span source.Span, expect string, opts ...Option) diag.Fix {
	return build(title, []diag.FixEdit{{Span: span, OldText: expect}}, opts)
}

// ReplaceSpan replaces text covered by span with newText.
func ReplaceSpan(title string, span source.Span, newText, expect string, opts ...Option) diag.Fix {
	return build(title, []diag.FixEdit{{Span: span, NewText: newText, OldText: expect}}, opts)
}

// WrapWith surrounds span with prefix and suffix insertions.
func WrapWith(title string, span source.Span, prefix, suffix string, opts ...Option) diag.Fix {
	edits := []diag.FixEdit{
		{Span: span.StartPoint(), NewText: prefix},
		{Span: span.EndPoint(), NewText: suffix},
	}
	opts = append([]Option{MaybeIncorrect()}, opts...)
	return build(title, edits, opts)
}
