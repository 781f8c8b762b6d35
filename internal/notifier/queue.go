package notifier

import (
	"context"
	"log/slog"
	"time"
)

const queueSize = 32

// Queue shows one notice at a time on every sink and dismisses it after the
// configured duration. Notices arriving while one is visible wait their turn.
type Queue struct {
	sinks    []Sink
	duration time.Duration
	logger   *slog.Logger
	notices  chan Notice
	now      func() time.Time
}

func NewQueue(duration time.Duration, logger *slog.Logger, sinks ...Sink) *Queue {
	if duration <= 0 {
		duration = DefaultDuration
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Queue{
		sinks:    sinks,
		duration: duration,
		logger:   logger,
		notices:  make(chan Notice, queueSize),
		now:      time.Now,
	}
}

// Notify enqueues a notice without blocking. When the queue is full the
// notice is dropped.
func (q *Queue) Notify(message string, kind Kind) {
	n := Notice{Message: message, Kind: kind, At: q.now()}
	select {
	case q.notices <- n:
	default:
		q.logger.Warn("notice dropped, queue full", "message", message, "kind", kind)
	}
}

// Run displays queued notices until ctx is cancelled.
func (q *Queue) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case n := <-q.notices:
			q.display(ctx, n)
		}
	}
}

func (q *Queue) display(ctx context.Context, n Notice) {
	var dismissals []func()
	for _, sink := range q.sinks {
		dismiss, err := sink.Show(ctx, n)
		if err != nil {
			q.logger.Error("failed to show notice", "error", err, "kind", n.Kind)
			continue
		}
		if dismiss != nil {
			dismissals = append(dismissals, dismiss)
		}
	}

	timer := time.NewTimer(q.duration)
	select {
	case <-ctx.Done():
		timer.Stop()
	case <-timer.C:
	}

	for _, dismiss := range dismissals {
		dismiss()
	}
}
