package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdg-garage/diet-forms/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Open(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("store.GormStore.Open: %w: no database handle", ErrUnavailable)
	}
	if err := s.db.WithContext(ctx).AutoMigrate(&models.Diet{}, &models.ServiceEntry{}); err != nil {
		return fmt.Errorf("store.GormStore.Open: %w: %w", ErrUnavailable, err)
	}
	return nil
}

func (s *GormStore) Add(ctx context.Context, diet models.Diet) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Diet{}).Where("id = ?", diet.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
		if count > 0 {
			return ErrDuplicateKey
		}
		return writeDiet(tx, diet, false)
	})
	if err != nil {
		return fmt.Errorf("store.GormStore.Add %q: %w", diet.ID, err)
	}
	return nil
}

func (s *GormStore) Update(ctx context.Context, diet models.Diet) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("diet_id = ?", diet.ID).Delete(&models.ServiceEntry{}).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
		return writeDiet(tx, diet, true)
	})
	if err != nil {
		return fmt.Errorf("store.GormStore.Update %q: %w", diet.ID, err)
	}
	return nil
}

// writeDiet stores the parent row without associations, then the service rows
// in slice order.
func writeDiet(tx *gorm.DB, diet models.Diet, upsert bool) error {
	services := models.Positioned(diet.ID, diet.Services)
	diet.Services = nil

	q := tx.Omit(clause.Associations)
	if upsert {
		q = q.Clauses(clause.OnConflict{UpdateAll: true})
	}
	if err := q.Create(&diet).Error; err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if len(services) > 0 {
		if err := tx.Create(&services).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}
	return nil
}

func (s *GormStore) Get(ctx context.Context, id string) (models.Diet, bool, error) {
	var diet models.Diet
	err := s.withServices(ctx).Where("id = ?", id).First(&diet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Diet{}, false, nil
	}
	if err != nil {
		return models.Diet{}, false, fmt.Errorf("store.GormStore.Get %q: %w: %w", id, ErrRead, err)
	}
	return diet, true, nil
}

func (s *GormStore) GetAll(ctx context.Context) ([]models.Diet, error) {
	var diets []models.Diet
	if err := s.withServices(ctx).Find(&diets).Error; err != nil {
		return nil, fmt.Errorf("store.GormStore.GetAll: %w: %w", ErrRead, err)
	}
	return diets, nil
}

func (s *GormStore) ListBySavedAt(ctx context.Context) ([]models.Diet, error) {
	var diets []models.Diet
	if err := s.withServices(ctx).Order("saved_at desc").Order("id").Find(&diets).Error; err != nil {
		return nil, fmt.Errorf("store.GormStore.ListBySavedAt: %w: %w", ErrRead, err)
	}
	return diets, nil
}

func (s *GormStore) DeleteByID(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("diet_id = ?", id).Delete(&models.ServiceEntry{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Diet{}).Error
	})
	if err != nil {
		return fmt.Errorf("store.GormStore.DeleteByID %q: %w: %w", id, ErrWrite, err)
	}
	return nil
}

func (s *GormStore) ClearAll(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ServiceEntry{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.Diet{}).Error
	})
	if err != nil {
		return fmt.Errorf("store.GormStore.ClearAll: %w: %w", ErrWrite, err)
	}
	return nil
}

func (s *GormStore) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) withServices(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Services", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}
