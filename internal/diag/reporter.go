package diag

import "seq/internal/source"

// Reporter принимает диагностики от лексера, сборщика деревьев и раскрытия.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix)
}

// Report forwards d to r as a single call.
func (d Diagnostic) Report(r Reporter) {
	if r == nil {
		return
	}
	r.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, d.Fixes)
}

// BagReporter пишет в *Bag; при переполнении Bag молча отбрасывает.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Primary: primary, Notes: notes, Fixes: fixes,
	})
}

// MultiReporter рассылает каждую диагностику во все вложенные Reporter.
type MultiReporter []Reporter

func (m MultiReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	for _, r := range m {
		if r != nil {
			r.Report(code, sev, primary, msg, notes, fixes)
		}
	}
}

// ReportFunc adapts a plain function to Reporter.
type ReportFunc func(d Diagnostic)

func (f ReportFunc) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	f(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes, Fixes: fixes})
}

// ReportBuilder collects notes and fixes for one diagnostic and sends it
// on Emit. A nil builder is inert so call chains need no checks.
type ReportBuilder struct {
	to      Reporter
	d       Diagnostic
	emitted bool
}

// ReportError starts an error diagnostic bound to r.
func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{to: r, d: NewError(code, primary, msg)}
}

// ReportWarning starts a warning diagnostic bound to r.
func ReportWarning(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{to: r, d: New(SevWarning, code, primary, msg)}
}

func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b != nil {
		b.d = b.d.WithNote(sp, msg)
	}
	return b
}

func (b *ReportBuilder) WithFixSuggestion(f Fix) *ReportBuilder {
	if b != nil {
		b.d = b.d.WithFixSuggestion(f)
	}
	return b
}

// Emit sends the diagnostic once; later calls do nothing.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	b.emitted = true
	b.d.Report(b.to)
}
