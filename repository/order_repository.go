package repository

import (
	"context"

	"github.com/Mathdino/cardapio-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByCode(ctx context.Context, code string) (*models.Order, error)
	FindByStore(ctx context.Context, storeID uuid.UUID, status models.OrderStatus, page, limit int) ([]models.Order, int64, error)
	FindByCustomerPhone(ctx context.Context, storeID uuid.UUID, phone string, page, limit int) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, storeID, orderID uuid.UUID, status models.OrderStatus) error
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository.
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts the order and its item snapshots in one transaction.
// The unique index on code surfaces collisions to the caller.
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindByCode(ctx context.Context, code string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByStore retrieves paginated orders for the dashboard, newest first,
// optionally narrowed to one status.
func (r *GormOrderRepository) FindByStore(ctx context.Context, storeID uuid.UUID, status models.OrderStatus, page, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("store_id = ?", storeID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("Items").
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// FindByCustomerPhone retrieves a customer's order history within a store.
func (r *GormOrderRepository) FindByCustomerPhone(ctx context.Context, storeID uuid.UUID, phone string, page, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("store_id = ? AND customer_phone = ?", storeID, phone)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Preload("Items").
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// UpdateStatus writes the new status, scoped to the owning store so a
// dashboard can never move another store's order.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, storeID, orderID uuid.UUID, status models.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND store_id = ?", orderID, storeID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
