package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/Mathdino/cardapio-backend/models"
	"github.com/Mathdino/cardapio-backend/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func weekHours(open ...int) []models.BusinessHours {
	openSet := make(map[int]bool, len(open))
	for _, d := range open {
		openSet[d] = true
	}
	var hours []models.BusinessHours
	for d := 0; d < 7; d++ {
		hours = append(hours, models.BusinessHours{
			Weekday:  d,
			Open:     openSet[d],
			OpensAt:  "09:00",
			ClosesAt: "18:00",
		})
	}
	return hours
}

func TestGenerateSlots_PrepTimePushesFirstSlot(t *testing.T) {
	// A Monday morning, store open every day.
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	hours := weekHours(0, 1, 2, 3, 4, 5, 6)

	days := services.GenerateSlots(hours, 90, now)
	assert.NotEmpty(t, days)
	assert.Equal(t, "2025-03-10", days[0].Date)

	first := days[0].Slots[0]
	assert.Equal(t, 11, first.Hour())
	assert.Equal(t, 30, first.Minute(), "10:00 + 90min prep lands on the 11:30 tick")
}

func TestGenerateSlots_TicksAndOrdering(t *testing.T) {
	now := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	hours := weekHours(1) // Mondays only

	days := services.GenerateSlots(hours, 0, now)
	assert.Len(t, days, 1, "one open weekday inside the 7-day window")

	slots := days[0].Slots
	assert.Equal(t, 9, slots[0].Hour())
	assert.Equal(t, 18, len(slots), "09:00 through 17:30 on a 30-minute grid")
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i].After(slots[i-1]), "slots are strictly ascending")
		assert.Equal(t, 30*time.Minute, slots[i].Sub(slots[i-1]))
	}
	last := slots[len(slots)-1]
	assert.Equal(t, 17, last.Hour())
	assert.Equal(t, 30, last.Minute(), "closing time itself is not bookable")
}

func TestGenerateSlots_SkipsClosedAndExhaustedDays(t *testing.T) {
	// Saturday evening, past closing. Open Saturday and Sunday.
	now := time.Date(2025, 3, 15, 19, 0, 0, 0, time.UTC)
	hours := weekHours(6, 0)

	days := services.GenerateSlots(hours, 0, now)
	for _, day := range days {
		assert.NotEqual(t, "2025-03-15", day.Date, "today has no slots left after closing")
	}
	assert.Equal(t, "2025-03-16", days[0].Date)
}

func TestGenerateSlots_MultiDayPrep(t *testing.T) {
	// A big order whose prep time reaches into the day after tomorrow.
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	hours := weekHours(0, 1, 2, 3, 4, 5, 6)

	days := services.GenerateSlots(hours, 2*1440, now)
	assert.NotEmpty(t, days)
	assert.Equal(t, "2025-03-12", days[0].Date, "earlier days are skipped entirely")
}

func TestGenerateSlots_NoHoursConfigured(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	assert.Empty(t, services.GenerateSlots(nil, 0, now))
	assert.Empty(t, services.GenerateSlots(weekHours(), 0, now), "all days closed")
}

func TestScheduleService_EmptyCartHasNoSlots(t *testing.T) {
	storeID := uuid.New()
	store := &models.Store{ID: storeID, Slug: "pizzeria", BusinessHours: weekHours(1, 2, 3)}
	logger, _ := zap.NewDevelopment()
	svc := services.NewScheduleService(newMockCartRepo(), newMockProductRepo(), newMockStoreRepo(store), logger)

	days, svcErr := svc.AvailableSlots(context.Background(), storeID, "sess-1")
	assert.Nil(t, svcErr)
	assert.Empty(t, days)
}

func TestScheduleService_PrepTimeSumsAcrossItems(t *testing.T) {
	storeID := uuid.New()
	store := &models.Store{ID: storeID, Slug: "pizzeria", BusinessHours: weekHours(0, 1, 2, 3, 4, 5, 6)}

	cake := &models.Product{
		ID: uuid.New(), StoreID: storeID, Name: "Cake",
		Type: models.ProductTypeSimple, Price: 80, Available: true,
		PreparationTime: 1, PreparationUnit: models.PrepUnitDays,
	}
	pie := &models.Product{
		ID: uuid.New(), StoreID: storeID, Name: "Pie",
		Type: models.ProductTypeSimple, Price: 30, Available: true,
		PreparationTime: 2, PreparationUnit: models.PrepUnitHours,
	}

	carts := newMockCartRepo()
	carts.Save(context.Background(), &models.Cart{
		StoreID: storeID.String(), SessionID: "sess-1",
		Items: []models.CartItem{
			{ID: "l1", ProductID: cake.ID.String(), Quantity: 1, Subtotal: 80},
			{ID: "l2", ProductID: pie.ID.String(), Quantity: 2, Subtotal: 60},
		},
	})

	logger, _ := zap.NewDevelopment()
	svc := services.NewScheduleService(carts, newMockProductRepo(cake, pie), newMockStoreRepo(store), logger)

	days, svcErr := svc.AvailableSlots(context.Background(), storeID, "sess-1")
	assert.Nil(t, svcErr)
	assert.NotEmpty(t, days)

	// 1 day + 2x2 hours of prep: nothing today or tomorrow morning.
	earliest := time.Now().Add((1440 + 240) * time.Minute)
	first := days[0].Slots[0]
	assert.False(t, first.Before(earliest.Truncate(30*time.Minute)), "first slot respects the summed prep time")
}
