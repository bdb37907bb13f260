package diag

// Severity orders diagnostics; higher is worse.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]struct{ upper, lower string }{
	SevInfo:    {"INFO", "info"},
	SevWarning: {"WARNING", "warning"},
	SevError:   {"ERROR", "error"},
}

// String is the upper-case form used by the pretty and JSON renderers.
func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s].upper
	}
	return "UNKNOWN"
}

// Label is the lower-case form used in single-line golden output.
func (s Severity) Label() string {
	if int(s) < len(severityNames) {
		return severityNames[s].lower
	}
	return "unknown"
}

// AtLeast reports whether s is as severe as min or worse.
func (s Severity) AtLeast(minSev Severity) bool {
	return s >= minSev
}
