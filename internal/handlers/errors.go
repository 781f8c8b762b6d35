package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/diet-forms/internal/auth"
	"github.com/gdg-garage/diet-forms/internal/session"
	"github.com/gdg-garage/diet-forms/internal/store"
)

// storeError turns a store failure into an HTTP error without exposing the
// underlying message.
func storeError(err error, fallback string) error {
	switch {
	case errors.Is(err, store.ErrUnavailable):
		return huma.Error503ServiceUnavailable("Local storage is unavailable")
	case errors.Is(err, store.ErrDuplicateKey):
		return huma.Error409Conflict("A diet with this service number already exists")
	default:
		return huma.Error500InternalServerError(fallback)
	}
}

// currentSession resolves the session named by the request's cookie.
func currentSession(ctx context.Context, sessions *session.Registry) (*session.Session, error) {
	id, ok := auth.SessionID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("No form session, create one first")
	}
	sess, ok := sessions.Get(id)
	if !ok {
		return nil, huma.Error401Unauthorized("Form session expired")
	}
	return sess, nil
}
