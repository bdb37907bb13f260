package trace

import (
	"fmt"
	"slices"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // ничего
	LevelError               // только ring, дамп при ошибке
	LevelPhase               // границы команды и проходов
	LevelDetail              // плюс по спану на файл
	LevelDebug               // плюс по спану на use site
)

var levelNames = []string{"off", "error", "phase", "detail", "debug"}

// finest scope recorded at each level; LevelError records everything into
// its ring because nothing is streamed.
var levelScope = [...]Scope{
	LevelOff:    0,
	LevelError:  ScopeSite,
	LevelPhase:  ScopePass,
	LevelDetail: ScopeFile,
	LevelDebug:  ScopeSite,
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a string to a Level. Empty means off.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelOff, nil
	}
	if i := slices.Index(levelNames, s); i >= 0 {
		return Level(i), nil
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames, "|"))
}

// ShouldEmit reports whether events of scope are recorded at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	return int(l) < len(levelScope) && scope <= levelScope[l]
}

func wants(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(scope)
}
