package services

import (
	"context"

	"github.com/Mathdino/cardapio-backend/models"
	"github.com/Mathdino/cardapio-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StoreService defines the interface for store business logic.
type StoreService interface {
	GetBySlug(ctx context.Context, slug string) (*models.Store, *ServiceError)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Store, *ServiceError)
	UpdateStore(ctx context.Context, storeID uuid.UUID, req *models.UpdateStoreRequest) (*models.Store, *ServiceError)
	SetBusinessHours(ctx context.Context, storeID uuid.UUID, req *models.BusinessHoursRequest) *ServiceError
}

type storeServiceImpl struct {
	repo   repository.StoreRepository
	logger *zap.Logger
}

// NewStoreService creates a new StoreService.
func NewStoreService(repo repository.StoreRepository, logger *zap.Logger) StoreService {
	return &storeServiceImpl{repo: repo, logger: logger}
}

func (s *storeServiceImpl) GetBySlug(ctx context.Context, slug string) (*models.Store, *ServiceError) {
	store, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, &ServiceError{StatusCode: 404, Message: "Store not found"}
	}
	return store, nil
}

func (s *storeServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Store, *ServiceError) {
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &ServiceError{StatusCode: 404, Message: "Store not found"}
	}
	return store, nil
}

// UpdateStore applies the owner's settings changes; nil fields stay put.
func (s *storeServiceImpl) UpdateStore(ctx context.Context, storeID uuid.UUID, req *models.UpdateStoreRequest) (*models.Store, *ServiceError) {
	store, err := s.repo.FindByID(ctx, storeID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 404, Message: "Store not found"}
	}

	if req.Name != nil {
		store.Name = *req.Name
	}
	if req.Description != nil {
		store.Description = *req.Description
	}
	if req.WhatsAppNumber != nil {
		store.WhatsAppNumber = *req.WhatsAppNumber
	}
	if req.Address != nil {
		store.Address = *req.Address
	}
	if req.MinimumOrderValue != nil {
		store.MinimumOrderValue = *req.MinimumOrderValue
	}
	if req.IsOpen != nil {
		store.IsOpen = *req.IsOpen
	}

	if err := s.repo.Update(ctx, store); err != nil {
		s.logger.Error("Failed to update store", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update store"}
	}
	return store, nil
}

// SetBusinessHours replaces the weekly schedule.
func (s *storeServiceImpl) SetBusinessHours(ctx context.Context, storeID uuid.UUID, req *models.BusinessHoursRequest) *ServiceError {
	hours := make([]models.BusinessHours, 0, len(req.Hours))
	seen := make(map[int]bool)
	for _, entry := range req.Hours {
		if seen[entry.Weekday] {
			return &ServiceError{StatusCode: 400, Message: "Duplicate weekday in business hours"}
		}
		seen[entry.Weekday] = true
		if entry.Open && (entry.OpensAt == "" || entry.ClosesAt == "") {
			return &ServiceError{StatusCode: 400, Message: "Open days require opening and closing times"}
		}
		hours = append(hours, models.BusinessHours{
			StoreID:  storeID,
			Weekday:  entry.Weekday,
			Open:     entry.Open,
			OpensAt:  entry.OpensAt,
			ClosesAt: entry.ClosesAt,
		})
	}

	if err := s.repo.ReplaceBusinessHours(ctx, storeID, hours); err != nil {
		s.logger.Error("Failed to set business hours", zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to set business hours"}
	}
	return nil
}
