package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the last N events in memory for post-mortem dumps.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	start int // индекс самого старого события
	n     int
	level Level
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{buf: make([]Event, capacity), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	stored := *ev
	if stored.Seq == 0 {
		stored.Seq = nextSeq()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.n < len(t.buf) {
		t.buf[(t.start+t.n)%len(t.buf)] = stored
		t.n++
		return
	}
	// полон: перезаписываем самое старое
	t.buf[t.start] = stored
	t.start = (t.start + 1) % len(t.buf)
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, t.n)
	for i := range out {
		out[i] = t.buf[(t.start+i)%len(t.buf)]
	}
	return out
}

// Dump writes the stored events to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
