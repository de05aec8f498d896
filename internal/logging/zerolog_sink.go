package logging

import "github.com/rs/zerolog"

// ZerologSink writes events to a zerolog logger, typically the rotating file log.
type ZerologSink struct {
	logger zerolog.Logger
}

// NewZerologSink creates a sink backed by logger.
func NewZerologSink(logger zerolog.Logger) *ZerologSink {
	return &ZerologSink{logger: logger}
}

// Emit implements Sink. Messages are filtered for credentials before they are written.
func (s *ZerologSink) Emit(e Event) {
	ev := s.logger.WithLevel(e.Level.zerologLevel())
	if ev == nil {
		return
	}
	ev = ev.Str("kind", e.Level.String())
	if e.Task != "" {
		ev = ev.Str("task", e.Task)
	}
	if e.RunID != "" {
		ev = ev.Str("run_id", e.RunID)
	}
	ev.Msg(FilterSensitiveValue(e.Message))
}
