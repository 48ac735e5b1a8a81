package repository

import (
	"context"

	"github.com/Mathdino/cardapio-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreRepository defines the interface for store data access.
type StoreRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	FindBySlug(ctx context.Context, slug string) (*models.Store, error)
	Update(ctx context.Context, store *models.Store) error
	ReplaceBusinessHours(ctx context.Context, storeID uuid.UUID, hours []models.BusinessHours) error
}

// GormStoreRepository implements StoreRepository using GORM.
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository.
func NewGormStoreRepository(db *gorm.DB) StoreRepository {
	return &GormStoreRepository{db: db}
}

// FindByID retrieves a store with its business hours preloaded.
func (r *GormStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).
		Preload("BusinessHours").
		First(&store, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// FindBySlug retrieves a store by its public slug.
func (r *GormStoreRepository) FindBySlug(ctx context.Context, slug string) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).
		Preload("BusinessHours").
		First(&store, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

// Update saves store settings.
func (r *GormStoreRepository) Update(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

// ReplaceBusinessHours swaps the store's weekly schedule in one transaction.
func (r *GormStoreRepository) ReplaceBusinessHours(ctx context.Context, storeID uuid.UUID, hours []models.BusinessHours) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("store_id = ?", storeID).Delete(&models.BusinessHours{}).Error; err != nil {
			return err
		}
		if len(hours) == 0 {
			return nil
		}
		return tx.Create(&hours).Error
	})
}
