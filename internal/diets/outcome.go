package diets

import (
	"context"
	"errors"
	"fmt"
)

// Outcome is the result of reconciling a candidate diet with the store.
type Outcome string

const (
	Created     Outcome = "created"
	Overwritten Outcome = "overwritten"
	Unchanged   Outcome = "unchanged"
	Cancelled   Outcome = "cancelled"
)

// ResetsBaseline reports whether the form baseline moves to the saved
// snapshot after this outcome.
func (o Outcome) ResetsBaseline() bool {
	return o == Created || o == Overwritten
}

var (
	ErrNotEligible          = errors.New("form is not eligible for saving")
	ErrConfirmationRequired = errors.New("confirmation required")
)

// Confirmer answers a yes/no question put to the user.
type Confirmer interface {
	Confirm(ctx context.Context, message, title string) (bool, error)
}

type ConfirmFunc func(ctx context.Context, message, title string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, message, title string) (bool, error) {
	return f(ctx, message, title)
}

// ConfirmationRequiredError carries the question that still needs an answer.
type ConfirmationRequiredError struct {
	Title   string
	Message string
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("%s: %s", ErrConfirmationRequired, e.Title)
}

func (e *ConfirmationRequiredError) Is(target error) bool {
	return target == ErrConfirmationRequired
}

// Answer returns a Confirmer that replies with a pre-recorded answer. With no
// answer it fails with a ConfirmationRequiredError holding the question.
func Answer(answer *bool) Confirmer {
	return ConfirmFunc(func(_ context.Context, message, title string) (bool, error) {
		if answer == nil {
			return false, &ConfirmationRequiredError{Title: title, Message: message}
		}
		return *answer, nil
	})
}
