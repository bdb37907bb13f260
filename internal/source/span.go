package source

import "fmt"

// Span is a half-open byte range [Start, End) inside one file of a FileSet.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) String() string { return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End) }

func (s Span) Empty() bool { return s.End == s.Start }

func (s Span) Len() uint32 { return s.End - s.Start }

// StartPoint and EndPoint collapse s to an insertion point at one of its ends.
func (s Span) StartPoint() Span { return Span{File: s.File, Start: s.Start, End: s.Start} }

func (s Span) EndPoint() Span { return Span{File: s.File, Start: s.End, End: s.End} }

// Cover returns the smallest span containing both s and other.
// Spans from different files are not merged; s is returned unchanged.
func (s Span) Cover(other Span) Span {
	if other.File != s.File {
		return s
	}
	s.Start = min(s.Start, other.Start)
	s.End = max(s.End, other.End)
	return s
}

// Contains reports whether other lies entirely inside s.
func (s Span) Contains(other Span) bool {
	if other.File != s.File {
		return false
	}
	return s.Start <= other.Start && other.End <= s.End
}

// Overlaps reports whether two edits at s and other would touch the same
// bytes. An insertion point overlaps a range only strictly inside it or at
// its start; two insertion points never overlap.
func (s Span) Overlaps(other Span) bool {
	if other.File != s.File {
		return false
	}
	switch {
	case s.Empty() && other.Empty():
		return false
	case s.Empty():
		return other.Start <= s.Start && s.Start < other.End
	case other.Empty():
		return s.Start <= other.Start && other.Start < s.End
	}
	return s.Start < other.End && other.Start < s.End
}
