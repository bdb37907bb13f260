package trace

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Format represents the output format for trace events.
type Format uint8

const (
	FormatAuto   Format = iota // по расширению файла
	FormatText                 // для человека
	FormatNDJSON               // JSON построчно
)

// ParseFormat accepts auto, text or ndjson (json is an alias).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

func resolveFormat(f Format, path string) Format {
	if f != FormatAuto {
		return f
	}
	if strings.HasSuffix(path, ".ndjson") || strings.HasSuffix(path, ".jsonl") {
		return FormatNDJSON
	}
	return FormatText
}

// FormatEvent renders ev as one line terminated by '\n'.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return appendNDJSON(nil, ev)
	}
	return appendText(nil, ev)
}

type jsonEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id,omitempty"`
	ParentID uint64            `json:"parent_id,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

func appendNDJSON(dst []byte, ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Extra:    ev.Extra,
	})
	if err != nil {
		return dst
	}
	return append(append(dst, data...), '\n')
}

var kindMarks = [...]string{
	KindSpanBegin: "→ ",
	KindSpanEnd:   "← ",
	KindPoint:     "• ",
	KindHeartbeat: "♡ ",
}

// appendText: "#seq   [scope]   → name (detail) {k=v, ...}"; children are indented.
func appendText(dst []byte, ev *Event) []byte {
	dst = fmt.Appendf(dst, "#%-6d [%s] ", ev.Seq, ev.Scope)
	if ev.ParentID > 0 {
		dst = append(dst, "  "...)
	}
	if int(ev.Kind) < len(kindMarks) {
		dst = append(dst, kindMarks[ev.Kind]...)
	}
	dst = append(dst, ev.Name...)
	if ev.Detail != "" {
		dst = fmt.Appendf(dst, " (%s)", ev.Detail)
	}
	if len(ev.Extra) > 0 {
		dst = append(dst, " {"...)
		for i, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			if i > 0 {
				dst = append(dst, ", "...)
			}
			dst = fmt.Appendf(dst, "%s=%s", k, ev.Extra[k])
		}
		dst = append(dst, '}')
	}
	return append(dst, '\n')
}
