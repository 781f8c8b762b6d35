package notifier

import (
	"context"
	"log/slog"
	"sync"
)

// LogSink writes every notice to the structured log.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Show(ctx context.Context, n Notice) (func(), error) {
	s.logger.InfoContext(ctx, "notice", "message", n.Message, "kind", n.Kind)
	return nil, nil
}

// CurrentSink remembers the notice that is visible right now so clients can
// poll for it.
type CurrentSink struct {
	mu      sync.RWMutex
	current *Notice
}

func NewCurrentSink() *CurrentSink {
	return &CurrentSink{}
}

func (s *CurrentSink) Show(_ context.Context, n Notice) (func(), error) {
	s.mu.Lock()
	s.current = &n
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.current != nil && *s.current == n {
			s.current = nil
		}
	}, nil
}

// Current returns the visible notice, if any.
func (s *CurrentSink) Current() (Notice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Notice{}, false
	}
	return *s.current, true
}
