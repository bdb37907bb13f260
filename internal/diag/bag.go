package diag

import (
	"cmp"
	"math"
	"slices"

	"seq/internal/source"
)

// Bag collects the diagnostics of one file or run. Anything past the cap is
// counted in Dropped instead of being stored.
type Bag struct {
	items   []Diagnostic
	limit   uint16
	dropped int
}

// NewBag creates a bag holding at most limit diagnostics.
// Non-positive or oversized limits mean the uint16 maximum.
func NewBag(limit int) *Bag {
	if limit <= 0 || limit > math.MaxUint16 {
		limit = math.MaxUint16
	}
	return &Bag{items: make([]Diagnostic, 0, min(limit, 64)), limit: uint16(limit)}
}

// Add stores d and reports whether it fit under the cap.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) < int(b.limit) {
		b.items = append(b.items, d)
		return true
	}
	b.dropped++
	return false
}

func (b *Bag) Cap() uint16 { return b.limit }
func (b *Bag) Len() int { return len(b.items) }
func (b *Bag) Dropped() int { return b.dropped }
func (b *Bag) HasErrors() bool { return b.countAtLeast(SevError) > 0 }
func (b *Bag) HasWarnings() bool { return b.countAtLeast(SevWarning) > 0 }

// ErrorCount counts stored diagnostics of error severity.
func (b *Bag) ErrorCount() int { return b.countAtLeast(SevError) }

func (b *Bag) countAtLeast(sev Severity) int {
	n := 0
	for _, d := range b.items {
		if d.Severity.AtLeast(sev) {
			n++
		}
	}
	return n
}

// Items exposes the stored diagnostics; callers must not modify the slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends everything other holds, growing the cap so nothing stored
// in other is lost. Its dropped count carries over.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if need := len(b.items) + len(other.items); need > int(b.limit) {
		b.limit = uint16(min(need, math.MaxUint16))
	}
	for _, d := range other.items {
		b.Add(d)
	}
	b.dropped += other.dropped
}

// Sort orders diagnostics by position, then by severity (highest first)
// and code. Equal entries keep their emission order.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup keeps the first diagnostic for every code and primary span.
func (b *Bag) Dedup() {
	type key struct {
		code Code
		at   source.Span
	}
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{d.Code, d.Primary}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
