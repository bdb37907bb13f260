package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
)

const defaultRingSize = 4096

// Tracer is the sink for trace events. Implementations are goroutine-safe.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// StorageMode says where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // сразу в writer
	ModeRing                          // кольцевой буфер
	ModeBoth                          // writer и буфер
)

var modeNames = [...]string{ModeStream: "stream", ModeRing: "ring", ModeBoth: "both"}

func (m StorageMode) String() string { return nameOf(modeNames[:], int(m)) }

// ParseMode accepts stream, ring or both; empty means stream.
func ParseMode(s string) (StorageMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeStream, nil
	}
	if i := slices.Index(modeNames[:], s); i > 0 {
		return StorageMode(i), nil
	}
	return ModeStream, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format
	Output     io.Writer // важнее OutputPath
	OutputPath string    // "" или "-" означает stderr
	RingSize   int
}

// New builds a Tracer for cfg. LevelError always records into a ring only:
// nothing is streamed until someone dumps it.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = defaultRingSize
	}
	mode := cfg.Mode
	if cfg.Level == LevelError {
		mode = ModeRing
	} else if mode == 0 {
		mode = ModeStream
	}
	if mode == ModeRing {
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	}
	if mode != ModeStream && mode != ModeBoth {
		return nil, fmt.Errorf("unknown storage mode: %v", mode)
	}

	stream, err := openStream(cfg)
	if err != nil {
		return nil, err
	}
	if mode == ModeStream {
		return stream, nil
	}
	return &fanout{level: cfg.Level, sinks: []Tracer{stream, NewRingTracer(cfg.RingSize, cfg.Level)}}, nil
}

// RingOf returns the ring buffer behind t, if it keeps one.
func RingOf(t Tracer) *RingTracer {
	switch v := t.(type) {
	case *RingTracer:
		return v
	case *fanout:
		for _, s := range v.sinks {
			if r, ok := s.(*RingTracer); ok {
				return r
			}
		}
	}
	return nil
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop is the tracer used when tracing is disabled.
var Nop Tracer = nopTracer{}

// streamTracer formats and writes each event as it arrives. Files it opened
// itself are buffered and closed on Close; caller writers are used as is.
type streamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	buf    *bufio.Writer // nil для чужих writer
	file   *os.File
	level  Level
	format Format
}

func openStream(cfg Config) (*streamTracer, error) {
	st := &streamTracer{level: cfg.Level, format: resolveFormat(cfg.Format, cfg.OutputPath)}
	switch {
	case cfg.Output != nil:
		st.w = cfg.Output
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		st.w = os.Stderr
	default:
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open trace output: %w", err)
		}
		st.file = f
		st.buf = bufio.NewWriter(f)
		st.w = st.buf
	}
	return st, nil
}

func (t *streamTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	if ev.Seq == 0 {
		ev.Seq = nextSeq()
	}
	data := FormatEvent(ev, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	// ошибка записи трассы не должна ронять раскрытие
	_, _ = t.w.Write(data)
}

func (t *streamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.buf != nil {
		return t.buf.Flush()
	}
	return nil
}

func (t *streamTracer) Close() error {
	err := t.Flush()
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.file != nil {
		err = errors.Join(err, t.file.Close())
		t.file = nil
	}
	return err
}

func (t *streamTracer) Level() Level  { return t.level }
func (t *streamTracer) Enabled() bool { return t.level > LevelOff }

// fanout sends every event to all sinks.
type fanout struct {
	level Level
	sinks []Tracer
}

func (t *fanout) Emit(ev *Event) {
	for _, s := range t.sinks {
		s.Emit(ev)
	}
}

func (t *fanout) Flush() error { return t.each(Tracer.Flush) }
func (t *fanout) Close() error { return t.each(Tracer.Close) }

func (t *fanout) each(op func(Tracer) error) error {
	var errs []error
	for _, s := range t.sinks {
		errs = append(errs, op(s))
	}
	return errors.Join(errs...)
}

func (t *fanout) Level() Level  { return t.level }
func (t *fanout) Enabled() bool { return t.level > LevelOff }
