// Package store persists diet records keyed by their derived id.
//
// Two backends implement Store: GormStore (gorm over SQLite) and BoltStore
// (bbolt buckets). Both keep a non-unique index on SavedAt. Every failure is
// returned to the caller wrapped around one of the sentinel errors below; a
// missing record is reported through the found flag of Get, never as an error.
package store

import (
	"context"
	"errors"

	"github.com/gdg-garage/diet-forms/internal/models"
)

var (
	ErrUnavailable  = errors.New("store unavailable")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrWrite        = errors.New("store write failed")
	ErrRead         = errors.New("store read failed")
)

type Store interface {
	// Open establishes the collection and the savedAt index. Calling it again
	// is a no-op.
	Open(ctx context.Context) error

	// Add inserts a new diet. It fails with ErrDuplicateKey when the id is taken.
	Add(ctx context.Context, diet models.Diet) error

	// Update replaces the diet with the same id, inserting it when absent.
	Update(ctx context.Context, diet models.Diet) error

	Get(ctx context.Context, id string) (models.Diet, bool, error)

	// GetAll returns every diet in no particular order.
	GetAll(ctx context.Context) ([]models.Diet, error)

	// ListBySavedAt returns every diet, most recently saved first.
	ListBySavedAt(ctx context.Context) ([]models.Diet, error)

	// DeleteByID removes the diet. Deleting an absent id succeeds.
	DeleteByID(ctx context.Context, id string) error

	ClearAll(ctx context.Context) error

	Close() error
}
