package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Timer sums durations per pipeline phase (load, lex, expand...). Phases are
// reported in the order they were first seen. Per-file workers share one
// timer, so it locks.
type Timer struct {
	mu     sync.Mutex
	order  []string
	phases map[string]*phaseTotal
}

type phaseTotal struct {
	dur   time.Duration
	count int
}

func NewTimer() *Timer { return &Timer{phases: make(map[string]*phaseTotal)} }

// Add records one measured run of phase name.
func (t *Timer) Add(name string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.phases[name]
	if !ok {
		if t.phases == nil {
			t.phases = make(map[string]*phaseTotal)
		}
		p = &phaseTotal{}
		t.phases[name] = p
		t.order = append(t.order, name)
	}
	p.dur += d
	p.count++
}

// Measure starts phase name and returns the function that records it.
func (t *Timer) Measure(name string) func() {
	start := time.Now()
	return func() { t.Add(name, time.Since(start)) }
}

// Total is the sum of all phase durations.
func (t *Timer) Total() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	var total time.Duration
	for _, p := range t.phases {
		total += p.dur
	}
	return total
}

// PhaseReport is the serialisable form of a phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Runs       int     `json:"runs"`
}

type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report snapshots the phases.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	var r Report
	var total time.Duration
	for _, name := range t.order {
		p := t.phases[name]
		total += p.dur
		r.Phases = append(r.Phases, PhaseReport{Name: name, DurationMS: millis(p.dur), Runs: p.count})
	}
	r.TotalMS = millis(total)
	return r
}

// Summary renders the report as an aligned table.
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-12s %9.2f ms  x%d\n", p.Name, p.DurationMS, p.Runs)
	}
	fmt.Fprintf(&sb, "  %-12s %9.2f ms\n", "total", r.TotalMS)
	return sb.String()
}

func millis(d time.Duration) float64 {
	return d.Seconds() * 1e3
}
