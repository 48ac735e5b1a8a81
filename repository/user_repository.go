package repository

import (
	"context"
	"strings"

	"github.com/Mathdino/cardapio-backend/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for owner-account data access.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository.
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
