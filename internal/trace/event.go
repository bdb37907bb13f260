package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

func (k Kind) String() string { return nameOf(kindNames[:], int(k)) }

// Scope is the granularity of an event; lower values are coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // команда CLI, цикл serve
	ScopePass                    // load, lex, expand, print, write
	ScopeFile                    // один файл или запрос хоста
	ScopeSite                    // один раскрытый use site
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopePass:   "pass",
	ScopeFile:   "file",
	ScopeSite:   "site",
}

func (s Scope) String() string { return nameOf(scopeNames[:], int(s)) }

func nameOf(names []string, i int) string {
	if i <= 0 || i >= len(names) || names[i] == "" {
		return "unknown"
	}
	return names[i]
}

// Event is one record handed to a Tracer.
type Event struct {
	Time     time.Time
	Seq      uint64 // глобальный, монотонный; 0 — присвоит приёмник
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 у корней
	Name     string // "expand", "file:src/a.sq", "site:seq"
	Detail   string
	Extra    map[string]string
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if !wants(t, scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		Name:     name,
		Detail:   detail,
	})
}
