package diag

import "seq/internal/source"

// DedupReporter forwards a diagnostic only the first time its code,
// severity, primary span and message are seen. Nested invocations report
// the same header error once per outer iteration; one copy is enough.
// Not safe for concurrent use; the driver keeps one per file.
type DedupReporter struct {
	next       Reporter
	seen       map[dedupKey]struct{}
	suppressed int
}

type dedupKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r == nil {
		return
	}
	k := dedupKey{code: code, sev: sev, span: primary, msg: msg}
	if _, dup := r.seen[k]; dup {
		r.suppressed++
		return
	}
	r.seen[k] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes, fixes)
	}
}

// Suppressed returns how many duplicates were dropped.
func (r *DedupReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	return r.suppressed
}
