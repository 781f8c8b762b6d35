// Package notifier delivers short user-facing notices about save, load and
// delete outcomes. Notices are fire-and-forget: callers never wait for or
// depend on their delivery.
package notifier

import (
	"context"
	"time"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// DefaultDuration is how long a notice stays visible.
const DefaultDuration = 3 * time.Second

type Notice struct {
	Message string    `json:"message"`
	Kind    Kind      `json:"kind"`
	At      time.Time `json:"at"`
}

type Notifier interface {
	Notify(message string, kind Kind)
}

// Sink displays a notice and returns the function that takes it down again.
type Sink interface {
	Show(ctx context.Context, n Notice) (dismiss func(), err error)
}
