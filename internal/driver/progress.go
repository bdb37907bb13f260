package driver

import (
	"sync"
	"time"
)

// Stage describes a phase of the per-file pipeline.
type Stage string

const (
	StageLoad   Stage = "load"
	StageLex    Stage = "lex"
	StageExpand Stage = "expand"
	StagePrint  Stage = "print"
	StageWrite  Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a file, or for the whole run when File is empty.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Workers call it concurrently.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// RecordingSink keeps every event; used by tests and --timings.
type RecordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *RecordingSink) OnEvent(evt Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
}

func (s *RecordingSink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

func emit(sink ProgressSink, file string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

func emitQueued(sink ProgressSink, files []string) {
	for _, f := range files {
		emit(sink, f, "", StatusQueued, nil, 0)
	}
}
