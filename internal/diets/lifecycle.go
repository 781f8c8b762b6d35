package diets

import (
	"context"
	"fmt"

	"github.com/gdg-garage/diet-forms/internal/form"
	"github.com/gdg-garage/diet-forms/internal/models"
	"github.com/gdg-garage/diet-forms/internal/notifier"
	"github.com/gdg-garage/diet-forms/internal/session"
)

// Reset starts a new, empty diet in the session.
func (s *Service) Reset(sess *session.Session) {
	sess.Reset()
}

// LoadIntoForm replaces the session's form with the stored diet. It reports
// false, without touching the session, when no diet has that id.
func (s *Service) LoadIntoForm(ctx context.Context, sess *session.Session, id string) (bool, error) {
	diet, found, err := s.store.Get(ctx, id)
	if err != nil {
		s.failure(err, msgLoadFailed)
		return false, fmt.Errorf("diets.Service.LoadIntoForm %q: %w", id, err)
	}
	if !found {
		return false, nil
	}

	sess.Load(form.FromRecord(diet))
	s.notifier.Notify(msgLoaded, notifier.KindInfo)
	return true, nil
}

// Delete removes a diet and refreshes the view with what is left. The picker
// is closed once the store is empty. Deleting an unknown id is not an error.
func (s *Service) Delete(ctx context.Context, id string, view ListView) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		s.failure(err, msgDeleteFailed)
		return fmt.Errorf("diets.Service.Delete %q: %w", id, err)
	}
	s.notifier.Notify(msgDeleted, notifier.KindSuccess)

	remaining, err := s.store.GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, msgListFailed, "error", err)
		return fmt.Errorf("diets.Service.Delete %q: %w", id, err)
	}
	refresh(view, remaining)
	return nil
}

// Clear removes every diet and closes the picker.
func (s *Service) Clear(ctx context.Context, view ListView) error {
	if err := s.store.ClearAll(ctx); err != nil {
		s.failure(err, msgClearFailed)
		return fmt.Errorf("diets.Service.Clear: %w", err)
	}
	s.notifier.Notify(msgCleared, notifier.KindSuccess)
	refresh(view, nil)
	return nil
}

func refresh(view ListView, remaining []models.Diet) {
	if view == nil {
		return
	}
	view.Refresh(remaining)
	if len(remaining) == 0 {
		view.ClosePicker()
	}
}

// Enumerate returns every stored diet in no particular order.
func (s *Service) Enumerate(ctx context.Context) ([]models.Diet, error) {
	all, err := s.store.GetAll(ctx)
	if err != nil {
		s.failure(err, msgListFailed)
		return nil, fmt.Errorf("diets.Service.Enumerate: %w", err)
	}
	return all, nil
}

// Recent returns every stored diet, most recently saved first.
func (s *Service) Recent(ctx context.Context) ([]models.Diet, error) {
	all, err := s.store.ListBySavedAt(ctx)
	if err != nil {
		s.failure(err, msgListFailed)
		return nil, fmt.Errorf("diets.Service.Recent: %w", err)
	}
	return all, nil
}

func (s *Service) Get(ctx context.Context, id string) (models.Diet, bool, error) {
	diet, found, err := s.store.Get(ctx, id)
	if err != nil {
		s.failure(err, msgLoadFailed)
		return models.Diet{}, false, fmt.Errorf("diets.Service.Get %q: %w", id, err)
	}
	return diet, found, nil
}
