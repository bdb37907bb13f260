package trace

import (
	"context"
	"strconv"
	"time"
)

// Heartbeat emits a liveness event every interval. A serve session that
// keeps beating without span ends is stuck inside one request.
type Heartbeat struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// StartHeartbeat returns nil when tracing is off or interval is not positive.
func StartHeartbeat(t Tracer, interval time.Duration) *Heartbeat {
	if t == nil || !t.Enabled() || interval <= 0 {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	h := &Heartbeat{cancel: cancel, done: make(chan struct{})}
	go h.beat(ctx, t, interval)
	return h
}

func (h *Heartbeat) beat(ctx context.Context, t Tracer, interval time.Duration) {
	defer close(h.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for n := 1; ; n++ {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			t.Emit(&Event{
				Time:   now,
				Seq:    nextSeq(),
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				Name:   "heartbeat",
				Detail: "#" + strconv.Itoa(n),
			})
		}
	}
}

// Stop ends the heartbeat goroutine and waits for it. Safe on nil and
// safe to call twice.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.cancel()
	<-h.done
}
