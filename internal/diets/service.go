// Package diets decides how a filled-in form reaches the store and runs the
// load, delete and list operations around it.
package diets

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gdg-garage/diet-forms/internal/form"
	"github.com/gdg-garage/diet-forms/internal/models"
	"github.com/gdg-garage/diet-forms/internal/notifier"
	"github.com/gdg-garage/diet-forms/internal/store"
)

// ListView is the record picker the UI keeps open while browsing diets.
type ListView interface {
	Refresh(diets []models.Diet)
	ClosePicker()
}

// Validator returns the keys of the fields that block a save.
type Validator func(f form.Form) []string

type Service struct {
	store    store.Store
	notifier notifier.Notifier
	validate Validator
	now      func() time.Time
	logger   *slog.Logger
}

type Option func(*Service)

func WithValidator(v Validator) Option {
	return func(s *Service) { s.validate = v }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func NewService(st store.Store, n notifier.Notifier, opts ...Option) *Service {
	s := &Service{
		store:    st,
		notifier: n,
		validate: form.Validate,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const (
	msgSaved           = "Diet saved"
	msgUpdated         = "Diet updated"
	msgUnchanged       = "No changes to save"
	msgCancelled       = "Save cancelled"
	msgNotEligible     = "Complete the required fields before saving"
	msgLoaded          = "Diet loaded"
	msgDeleted         = "Diet deleted"
	msgCleared         = "All diets deleted"
	msgUnavailable     = "Local storage is unavailable"
	msgDuplicate       = "A diet with this service number already exists"
	msgSaveFailed      = "Could not save the diet"
	msgLoadFailed      = "Could not load the diet"
	msgDeleteFailed    = "Could not delete the diet"
	msgClearFailed     = "Could not delete the diets"
	msgListFailed      = "Could not read the saved diets"
	overwriteTitle     = "Overwrite diet"
	diffStoredLabel    = "saved"
	diffCandidateLabel = "new"
)

// failure maps a store error to the single notice the user sees for it.
func (s *Service) failure(err error, fallback string) {
	msg := fallback
	switch {
	case errors.Is(err, store.ErrUnavailable):
		msg = msgUnavailable
	case errors.Is(err, store.ErrDuplicateKey):
		msg = msgDuplicate
	}
	s.logger.Error(fallback, "error", err)
	s.notifier.Notify(msg, notifier.KindError)
}
