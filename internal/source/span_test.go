package source

import (
	"testing"
)

func TestSpan_Overlaps(t *testing.T) {
	sp := func(s, e uint32) Span { return Span{File: 1, Start: s, End: e} }
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"disjoint", sp(0, 3), sp(5, 8), false},
		{"adjacent", sp(0, 3), sp(3, 6), false},
		{"crossing", sp(0, 4), sp(3, 6), true},
		{"nested", sp(2, 9), sp(4, 5), true},
		{"insert at range start", sp(3, 3), sp(3, 6), true},
		{"insert at range end", sp(6, 6), sp(3, 6), false},
		{"insert inside", sp(4, 4), sp(3, 6), true},
		{"two inserts", sp(4, 4), sp(4, 4), false},
		{"other file", sp(0, 4), Span{File: 2, Start: 0, End: 4}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps is not symmetric for %v and %v", tt.a, tt.b)
			}
		})
	}
}

func TestSpan_Cover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Errorf("Cover = %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("cross-file Cover = %v, want %v", got, a)
	}
}

func TestSpan_ContainsAndPoints(t *testing.T) {
	outer := Span{File: 3, Start: 10, End: 30}

	if !outer.Contains(Span{File: 3, Start: 10, End: 30}) {
		t.Error("span must contain itself")
	}
	if outer.Contains(Span{File: 3, Start: 9, End: 12}) {
		t.Error("span starting before must not be contained")
	}
	if outer.Contains(Span{File: 4, Start: 12, End: 13}) {
		t.Error("span from another file must not be contained")
	}
	if p := outer.StartPoint(); !p.Empty() || p.Start != 10 {
		t.Errorf("StartPoint = %v", p)
	}
	if p := outer.EndPoint(); !p.Empty() || p.Start != 30 {
		t.Errorf("EndPoint = %v", p)
	}
	if outer.Len() != 20 {
		t.Errorf("Len = %d", outer.Len())
	}
}
