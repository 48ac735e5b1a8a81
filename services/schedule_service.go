package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Mathdino/cardapio-backend/models"
	"github.com/Mathdino/cardapio-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const slotInterval = 30 * time.Minute

// DaySlots groups the bookable times of one calendar day.
type DaySlots struct {
	Date    string      `json:"date"` // "2006-01-02"
	Weekday int         `json:"weekday"`
	Slots   []time.Time `json:"slots"`
}

// ScheduleService computes valid pickup/delivery slots for a session cart.
type ScheduleService interface {
	AvailableSlots(ctx context.Context, storeID uuid.UUID, sessionID string) ([]DaySlots, *ServiceError)
}

type scheduleServiceImpl struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
	logger      *zap.Logger
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	logger *zap.Logger,
) ScheduleService {
	return &scheduleServiceImpl{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		storeRepo:   storeRepo,
		logger:      logger,
	}
}

// AvailableSlots returns the next 7 days of bookable slots for the
// session's cart. An empty cart produces no slots.
func (s *scheduleServiceImpl) AvailableSlots(ctx context.Context, storeID uuid.UUID, sessionID string) ([]DaySlots, *ServiceError) {
	cart, err := s.cartRepo.Get(ctx, storeID.String(), sessionID)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load cart"}
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, nil
	}

	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 404, Message: "Store not found"}
	}

	prepMinutes, svcErr := s.aggregatePrepMinutes(ctx, cart)
	if svcErr != nil {
		return nil, svcErr
	}

	return GenerateSlots(store.BusinessHours, prepMinutes, time.Now()), nil
}

// aggregatePrepMinutes sums preparation time across every cart item,
// quantity included. It is a sum, not a max: each item sequentially adds
// to the earliest fulfillable moment.
func (s *scheduleServiceImpl) aggregatePrepMinutes(ctx context.Context, cart *models.Cart) (int, *ServiceError) {
	var ids []uuid.UUID
	for _, item := range cart.Items {
		if id, err := uuid.Parse(item.ProductID); err == nil {
			ids = append(ids, id)
		}
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to load cart products", zap.Error(err))
		return 0, &ServiceError{StatusCode: 500, Message: "Failed to compute preparation time"}
	}

	prepByID := make(map[string]int, len(products))
	for i := range products {
		prepByID[products[i].ID.String()] = products[i].PrepMinutes()
	}

	var total int
	for _, item := range cart.Items {
		total += prepByID[item.ProductID] * item.Quantity
	}
	return total, nil
}

// GenerateSlots produces the ordered, time-ascending slot list over the
// next 7 calendar days: 30-minute ticks inside each open day's business
// hours, starting no earlier than now plus the aggregate preparation time.
func GenerateSlots(hours []models.BusinessHours, prepMinutes int, now time.Time) []DaySlots {
	byWeekday := make(map[int]models.BusinessHours, len(hours))
	for _, h := range hours {
		byWeekday[h.Weekday] = h
	}

	earliest := now.Add(time.Duration(prepMinutes) * time.Minute)

	var days []DaySlots
	for d := 0; d < 7; d++ {
		day := now.AddDate(0, 0, d)
		h, ok := byWeekday[int(day.Weekday())]
		if !ok || !h.Open {
			continue
		}

		opens, err1 := atClock(day, h.OpensAt)
		closes, err2 := atClock(day, h.ClosesAt)
		if err1 != nil || err2 != nil || !closes.After(opens) {
			continue
		}

		var slots []time.Time
		for tick := opens; tick.Before(closes); tick = tick.Add(slotInterval) {
			if tick.Before(earliest) {
				continue
			}
			slots = append(slots, tick)
		}
		if len(slots) == 0 {
			continue
		}

		days = append(days, DaySlots{
			Date:    day.Format("2006-01-02"),
			Weekday: int(day.Weekday()),
			Slots:   slots,
		})
	}
	return days
}

// atClock anchors an "HH:MM" clock string onto a calendar day.
func atClock(day time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock value %q: %w", clock, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, day.Location()), nil
}
