package seq

import "fmt"

// MarkerPolicy decides what happens when a body holds more than one
// `#( ... )*` marker.
type MarkerPolicy uint8

const (
	// MarkersFirst expands the first marker met depth-first, left to right.
	// Later markers are copied through verbatim.
	MarkersFirst MarkerPolicy = iota
	// MarkersAll expands every marker at every depth.
	MarkersAll
	// MarkersReject fails with SeqMultipleMarkers on the second marker.
	MarkersReject
)

func (p MarkerPolicy) String() string {
	switch p {
	case MarkersAll:
		return "all"
	case MarkersReject:
		return "reject"
	default:
		return "first"
	}
}

// ParseMarkerPolicy accepts "first", "all" or "reject"; empty means first.
func ParseMarkerPolicy(s string) (MarkerPolicy, error) {
	switch s {
	case "", "first":
		return MarkersFirst, nil
	case "all":
		return MarkersAll, nil
	case "reject":
		return MarkersReject, nil
	}
	return MarkersFirst, fmt.Errorf("unknown marker policy %q (want first, all or reject)", s)
}

const (
	DefaultMacro    = "seq"
	DefaultMaxDepth = 32
	// DefaultMaxIterations caps one range so a huge bound cannot exhaust memory.
	DefaultMaxIterations = 1 << 16
)

// Options configure expansion. The zero value is usable.
type Options struct {
	Markers MarkerPolicy
	// Macro is the name recognised at use sites (`seq!(...)`).
	Macro string
	// MaxDepth bounds re-expansion of sites produced by other expansions.
	MaxDepth int
	// MaxIterations bounds the length of a single range.
	MaxIterations int
}

func (o Options) withDefaults() Options {
	if o.Macro == "" {
		o.Macro = DefaultMacro
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	return o
}
