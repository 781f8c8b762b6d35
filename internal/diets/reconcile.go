package diets

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdg-garage/diet-forms/internal/form"
	"github.com/gdg-garage/diet-forms/internal/models"
	"github.com/gdg-garage/diet-forms/internal/notifier"
	"github.com/gdg-garage/diet-forms/internal/session"
)

// Reconcile stores candidate unless an identical diet is already there. A
// different diet under the same id is only replaced after the confirmer
// agrees. Nothing is written when any step fails.
//
// The lookup and the write are not atomic; one writer per store is assumed.
func (s *Service) Reconcile(ctx context.Context, candidate models.Diet, confirmer Confirmer) (Outcome, error) {
	if candidate.ID == "" {
		return "", fmt.Errorf("diets.Service.Reconcile: %w: empty id", ErrNotEligible)
	}

	stored, found, err := s.store.Get(ctx, candidate.ID)
	if err != nil {
		return "", fmt.Errorf("diets.Service.Reconcile: %w", err)
	}

	if !found {
		if err := s.store.Add(ctx, candidate); err != nil {
			return "", fmt.Errorf("diets.Service.Reconcile: %w", err)
		}
		return Created, nil
	}

	if stored.SameData(candidate) {
		return Unchanged, nil
	}

	ok, err := confirmer.Confirm(ctx, overwriteMessage(stored, candidate), overwriteTitle)
	if err != nil {
		return "", fmt.Errorf("diets.Service.Reconcile: %w", err)
	}
	if !ok {
		return Cancelled, nil
	}

	if err := s.store.Update(ctx, candidate); err != nil {
		return "", fmt.Errorf("diets.Service.Reconcile: %w", err)
	}
	return Overwritten, nil
}

func overwriteMessage(stored, candidate models.Diet) string {
	return fmt.Sprintf("A diet for service %s saved on %s already exists. Overwrite it?\n\n%s",
		stored.ID,
		stored.SavedAt.Local().Format("2006-01-02 15:04"),
		form.Diff(diffStoredLabel, diffCandidateLabel, form.FromRecord(stored), form.FromRecord(candidate)),
	)
}

// Save validates the session's form, reconciles it with the store and emits
// exactly one notice about the result. The baseline moves to the saved
// snapshot on Created and Overwritten.
//
// A pending confirmation is returned as ErrConfirmationRequired without a
// notice; the question itself is the feedback.
func (s *Service) Save(ctx context.Context, sess *session.Session, confirmer Confirmer) (Outcome, error) {
	snapshot := sess.Form()

	if invalid := s.validate(snapshot); len(invalid) > 0 {
		sess.SetInvalid(invalid)
		s.notifier.Notify(msgNotEligible, notifier.KindWarning)
		return "", fmt.Errorf("diets.Service.Save: %w: %v", ErrNotEligible, invalid)
	}
	sess.SetInvalid(nil)

	outcome, err := s.Reconcile(ctx, snapshot.Record(s.now().UTC()), confirmer)
	if err != nil {
		if !errors.Is(err, ErrConfirmationRequired) {
			s.failure(err, msgSaveFailed)
		}
		return "", err
	}

	switch outcome {
	case Created:
		s.notifier.Notify(msgSaved, notifier.KindSuccess)
	case Overwritten:
		s.notifier.Notify(msgUpdated, notifier.KindSuccess)
	case Unchanged:
		s.notifier.Notify(msgUnchanged, notifier.KindInfo)
	case Cancelled:
		s.notifier.Notify(msgCancelled, notifier.KindInfo)
	}
	if outcome.ResetsBaseline() {
		sess.MarkSaved(snapshot)
	}

	s.logger.InfoContext(ctx, "diet saved", "id", models.DeriveID(snapshot.Services), "outcome", outcome)
	return outcome, nil
}
