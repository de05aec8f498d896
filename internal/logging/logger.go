package logging

import (
	"fmt"
	"sync"
	"time"
)

// Event is one entry of the workflow event stream.
type Event struct {
	Time    time.Time `json:"time"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Task    string    `json:"task,omitempty"`
	RunID   string    `json:"run_id,omitempty"`
}

// Sink consumes events. Implementations must be safe for concurrent use.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

// Emit calls f.
func (f SinkFunc) Emit(e Event) { f(e) }

// Logger emits events tagged with a task name and run ID to its sinks.
// Loggers are immutable; With* methods return copies.
type Logger struct {
	sinks []Sink
	task  string
	runID string
	now   func() time.Time
}

// New creates a Logger that fans out to sinks.
func New(sinks ...Sink) *Logger {
	return &Logger{sinks: sinks, now: time.Now}
}

// Nop returns a Logger that drops every event.
func Nop() *Logger {
	return New()
}

// WithTask returns a copy of l that tags events with task.
func (l *Logger) WithTask(task string) *Logger {
	c := *l
	c.task = task
	return &c
}

// WithRunID returns a copy of l that tags events with runID.
func (l *Logger) WithRunID(runID string) *Logger {
	c := *l
	c.runID = runID
	return &c
}

// WithClock returns a copy of l that timestamps events with now.
func (l *Logger) WithClock(now func() time.Time) *Logger {
	c := *l
	c.now = now
	return &c
}

// Task returns the task name events are tagged with.
func (l *Logger) Task() string { return l.task }

// Log emits a formatted message at level.
func (l *Logger) Log(level Level, format string, args ...any) {
	if l == nil || len(l.sinks) == 0 {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	e := Event{Time: l.now(), Level: level, Message: msg, Task: l.task, RunID: l.runID}
	for _, s := range l.sinks {
		s.Emit(e)
	}
}

// Debug emits at LevelDebug.
func (l *Logger) Debug(format string, args ...any) { l.Log(LevelDebug, format, args...) }

// Info emits at LevelInfo.
func (l *Logger) Info(format string, args ...any) { l.Log(LevelInfo, format, args...) }

// Normal emits at LevelNormal.
func (l *Logger) Normal(format string, args ...any) { l.Log(LevelNormal, format, args...) }

// Step emits at LevelStep.
func (l *Logger) Step(format string, args ...any) { l.Log(LevelStep, format, args...) }

// Success emits at LevelSuccess.
func (l *Logger) Success(format string, args ...any) { l.Log(LevelSuccess, format, args...) }

// Warning emits at LevelWarning.
func (l *Logger) Warning(format string, args ...any) { l.Log(LevelWarning, format, args...) }

// Error emits at LevelError.
func (l *Logger) Error(format string, args ...any) { l.Log(LevelError, format, args...) }

// Recorder is a Sink that keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Emit implements Sink.
func (r *Recorder) Emit(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Messages returns the messages recorded at level.
func (r *Recorder) Messages(level Level) []string {
	var out []string
	for _, e := range r.Events() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}
