package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdg-garage/diet-forms/internal/models"
	"go.etcd.io/bbolt"
)

var (
	dietsBucket   = []byte("diets")
	savedAtBucket = []byte("diets_by_saved_at")
)

// savedAtLayout sorts lexically in chronological order.
const savedAtLayout = "2006-01-02T15:04:05.000000000Z"

type BoltStore struct {
	path string

	mu sync.RWMutex
	db *bbolt.DB
}

func NewBoltStore(path string) *BoltStore {
	return &BoltStore{path: path}
}

func (s *BoltStore) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return nil
	}

	db, err := bbolt.Open(s.path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return fmt.Errorf("store.BoltStore.Open: %w: %w", ErrUnavailable, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(dietsBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(savedAtBucket)
		return err
	})
	if err != nil {
		db.Close()
		return fmt.Errorf("store.BoltStore.Open: %w: %w", ErrUnavailable, err)
	}

	s.db = db
	return nil
}

func (s *BoltStore) Add(ctx context.Context, diet models.Diet) error {
	err := s.update(ctx, func(tx *bbolt.Tx) error {
		if tx.Bucket(dietsBucket).Get([]byte(diet.ID)) != nil {
			return ErrDuplicateKey
		}
		return putDiet(tx, diet)
	})
	if err != nil {
		return fmt.Errorf("store.BoltStore.Add %q: %w", diet.ID, err)
	}
	return nil
}

func (s *BoltStore) Update(ctx context.Context, diet models.Diet) error {
	err := s.update(ctx, func(tx *bbolt.Tx) error {
		if err := unindex(tx, diet.ID); err != nil {
			return err
		}
		return putDiet(tx, diet)
	})
	if err != nil {
		return fmt.Errorf("store.BoltStore.Update %q: %w", diet.ID, err)
	}
	return nil
}

func (s *BoltStore) Get(ctx context.Context, id string) (models.Diet, bool, error) {
	var (
		diet  models.Diet
		found bool
	)
	err := s.view(ctx, func(tx *bbolt.Tx) error {
		data := tx.Bucket(dietsBucket).Get([]byte(id))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &diet)
	})
	if err != nil {
		return models.Diet{}, false, fmt.Errorf("store.BoltStore.Get %q: %w", id, err)
	}
	return diet, found, nil
}

func (s *BoltStore) GetAll(ctx context.Context) ([]models.Diet, error) {
	var diets []models.Diet
	err := s.view(ctx, func(tx *bbolt.Tx) error {
		return tx.Bucket(dietsBucket).ForEach(func(_, v []byte) error {
			var diet models.Diet
			if err := json.Unmarshal(v, &diet); err != nil {
				return err
			}
			diets = append(diets, diet)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("store.BoltStore.GetAll: %w", err)
	}
	return diets, nil
}

func (s *BoltStore) ListBySavedAt(ctx context.Context) ([]models.Diet, error) {
	var diets []models.Diet
	err := s.view(ctx, func(tx *bbolt.Tx) error {
		records := tx.Bucket(dietsBucket)
		c := tx.Bucket(savedAtBucket).Cursor()
		for k, id := c.Last(); k != nil; k, id = c.Prev() {
			data := records.Get(id)
			if data == nil {
				continue
			}
			var diet models.Diet
			if err := json.Unmarshal(data, &diet); err != nil {
				return err
			}
			diets = append(diets, diet)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store.BoltStore.ListBySavedAt: %w", err)
	}
	return diets, nil
}

func (s *BoltStore) DeleteByID(ctx context.Context, id string) error {
	err := s.update(ctx, func(tx *bbolt.Tx) error {
		if err := unindex(tx, id); err != nil {
			return err
		}
		return tx.Bucket(dietsBucket).Delete([]byte(id))
	})
	if err != nil {
		return fmt.Errorf("store.BoltStore.DeleteByID %q: %w", id, err)
	}
	return nil
}

func (s *BoltStore) ClearAll(ctx context.Context) error {
	err := s.update(ctx, func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{dietsBucket, savedAtBucket} {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store.BoltStore.ClearAll: %w", err)
	}
	return nil
}

func (s *BoltStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *BoltStore) handle(ctx context.Context) (*bbolt.DB, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrUnavailable
	}
	return s.db, nil
}

func (s *BoltStore) update(ctx context.Context, fn func(tx *bbolt.Tx) error) error {
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}
	if err := db.Update(fn); err != nil {
		if isSentinel(err) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

func (s *BoltStore) view(ctx context.Context, fn func(tx *bbolt.Tx) error) error {
	db, err := s.handle(ctx)
	if err != nil {
		return err
	}
	if err := db.View(fn); err != nil {
		return fmt.Errorf("%w: %w", ErrRead, err)
	}
	return nil
}

// putDiet stores the diet as one JSON document; services keep their slice order.
func putDiet(tx *bbolt.Tx, diet models.Diet) error {
	data, err := json.Marshal(diet)
	if err != nil {
		return err
	}
	if err := tx.Bucket(dietsBucket).Put([]byte(diet.ID), data); err != nil {
		return err
	}
	return tx.Bucket(savedAtBucket).Put(savedAtKey(diet.SavedAt, diet.ID), []byte(diet.ID))
}

// unindex drops the savedAt index entry of the currently stored version of id.
func unindex(tx *bbolt.Tx, id string) error {
	data := tx.Bucket(dietsBucket).Get([]byte(id))
	if data == nil {
		return nil
	}
	var old models.Diet
	if err := json.Unmarshal(data, &old); err != nil {
		return err
	}
	return tx.Bucket(savedAtBucket).Delete(savedAtKey(old.SavedAt, id))
}

func savedAtKey(savedAt time.Time, id string) []byte {
	return []byte(savedAt.UTC().Format(savedAtLayout) + "|" + id)
}

func isSentinel(err error) bool {
	return errors.Is(err, ErrDuplicateKey) || errors.Is(err, ErrUnavailable)
}
