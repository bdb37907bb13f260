package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// nextSeq returns a process-wide monotonically increasing sequence number.
func nextSeq() uint64 { return seqCounter.Add(1) }

// SpanContext identifies the active span carried by a context.
type SpanContext struct {
	SpanID uint64
}

// ctxState is the single value trace keeps in a context.
type ctxState struct {
	tracer Tracer
	span   SpanContext
}

type ctxKey struct{}

func stateOf(ctx context.Context) ctxState {
	if ctx != nil {
		if st, ok := ctx.Value(ctxKey{}).(ctxState); ok {
			return st
		}
	}
	return ctxState{tracer: Nop}
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return stateOf(ctx).tracer
}

// WithTracer attaches t to ctx; the active span is kept.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	st := stateOf(ctx)
	st.tracer = t
	return context.WithValue(ctx, ctxKey{}, st)
}

// CurrentSpan returns the active span of ctx; zero when there is none.
func CurrentSpan(ctx context.Context) SpanContext {
	return stateOf(ctx).span
}

// PointCtx emits an instant event under the active span of ctx.
func PointCtx(ctx context.Context, scope Scope, name, detail string) {
	st := stateOf(ctx)
	Point(st.tracer, scope, name, detail, st.span.SpanID)
}

// Span tracks one begin/end pair. A span that is not recorded is inert:
// its methods do nothing and ID returns 0.
type Span struct {
	tracer   Tracer
	id       uint64
	parentID uint64
	scope    Scope
	name     string
	started  time.Time
	extra    map[string]string
}

var inert = &Span{}

// Begin starts a span under parent (0 for roots) and emits its begin event.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !wants(t, scope) {
		return inert
	}
	s := &Span{
		tracer:   t,
		id:       spanCounter.Add(1),
		parentID: parent,
		scope:    scope,
		name:     name,
		started:  time.Now(),
	}
	s.emit(KindSpanBegin, s.started, "")
	return s
}

// BeginCtx starts a span under the tracer and active span of ctx and returns
// a context in which the new span is active.
func BeginCtx(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	st := stateOf(ctx)
	s := Begin(st.tracer, scope, name, st.span.SpanID)
	if s.id == 0 {
		return s, ctx
	}
	st.span = SpanContext{SpanID: s.id}
	return s, context.WithValue(ctx, ctxKey{}, st)
}

func (s *Span) emit(kind Kind, at time.Time, detail string) {
	ev := &Event{
		Time:     at,
		Seq:      nextSeq(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parentID,
		Name:     s.name,
		Detail:   detail,
	}
	if kind == KindSpanEnd {
		ev.Extra = s.extra
	}
	s.tracer.Emit(ev)
}

// End emits the end event and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.id == 0 {
		return 0
	}
	now := time.Now()
	s.emit(KindSpanEnd, now, detail)
	return now.Sub(s.started)
}

// WithExtra attaches a key-value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.id == 0 {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}
