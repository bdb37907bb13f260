package wire

import (
	"seq/internal/diag"
)

// Request asks the expander to process one fragment.
//
// The host either sends Source text, which is lexed and parsed here, or an
// already built token forest in Tokens. Spans in Tokens are byte offsets
// into Source when the host has it; otherwise they only serve as opaque
// provenance and are echoed back.
type Request struct {
	ID       uint64 `msgpack:"id"`
	Path     string `msgpack:"path,omitempty"`
	Source   string `msgpack:"source,omitempty"`
	Fragment bool   `msgpack:"fragment,omitempty"`
	Tokens   []Node `msgpack:"tokens,omitempty"`
}

// Response answers the Request with the same ID.
type Response struct {
	ID          uint64       `msgpack:"id"`
	Tokens      []Node       `msgpack:"tokens"`
	Text        string       `msgpack:"text"`
	Sites       int          `msgpack:"sites"`
	Diagnostics []Diagnostic `msgpack:"diagnostics,omitempty"`
	// Error is set when the request itself could not be served.
	Error string `msgpack:"error,omitempty"`
}

// HasErrors reports whether any diagnostic is an error.
func (r *Response) HasErrors() bool {
	if r.Error != "" {
		return true
	}
	for _, d := range r.Diagnostics {
		if d.Severity == diag.SevError.String() {
			return true
		}
	}
	return false
}

type Span struct {
	Start uint32 `msgpack:"s"`
	End   uint32 `msgpack:"e"`
}

type Note struct {
	Span    Span   `msgpack:"span"`
	Message string `msgpack:"msg"`
}

type Diagnostic struct {
	Severity string `msgpack:"severity"`
	Code     string `msgpack:"code"`
	Message  string `msgpack:"msg"`
	Span     Span   `msgpack:"span"`
	Notes    []Note `msgpack:"notes,omitempty"`
}

// FromDiagnostic drops file identity: a request carries a single fragment.
func FromDiagnostic(d diag.Diagnostic) Diagnostic {
	out := Diagnostic{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Span:     Span{Start: d.Primary.Start, End: d.Primary.End},
	}
	for _, n := range d.Notes {
		out.Notes = append(out.Notes, Note{
			Span:    Span{Start: n.Span.Start, End: n.Span.End},
			Message: n.Msg,
		})
	}
	return out
}

// FromBag converts every diagnostic collected in bag, in emission order.
func FromBag(bag *diag.Bag) []Diagnostic {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	items := bag.Items()
	out := make([]Diagnostic, 0, len(items))
	for _, d := range items {
		out = append(out, FromDiagnostic(d))
	}
	return out
}
