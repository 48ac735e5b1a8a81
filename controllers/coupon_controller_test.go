package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Mathdino/cardapio-backend/controllers"
	"github.com/Mathdino/cardapio-backend/middleware"
	"github.com/Mathdino/cardapio-backend/models"
	"github.com/Mathdino/cardapio-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Mock services ---

type mockStoreService struct {
	store *models.Store
}

func (m *mockStoreService) GetBySlug(_ context.Context, slug string) (*models.Store, *services.ServiceError) {
	if m.store == nil || m.store.Slug != slug {
		return nil, &services.ServiceError{StatusCode: 404, Message: "Store not found"}
	}
	return m.store, nil
}

func (m *mockStoreService) GetByID(_ context.Context, id uuid.UUID) (*models.Store, *services.ServiceError) {
	if m.store == nil || m.store.ID != id {
		return nil, &services.ServiceError{StatusCode: 404, Message: "Store not found"}
	}
	return m.store, nil
}

func (m *mockStoreService) UpdateStore(_ context.Context, _ uuid.UUID, _ *models.UpdateStoreRequest) (*models.Store, *services.ServiceError) {
	return m.store, nil
}

func (m *mockStoreService) SetBusinessHours(_ context.Context, _ uuid.UUID, _ *models.BusinessHoursRequest) *services.ServiceError {
	return nil
}

type mockCouponService struct {
	createFn   func(ctx context.Context, storeID uuid.UUID, req *models.CreateCouponRequest) (*models.Coupon, *services.ServiceError)
	validateFn func(ctx context.Context, storeID uuid.UUID, req *models.ValidateCouponRequest) (*models.ValidateCouponResponse, *services.ServiceError)
}

func (m *mockCouponService) CreateCoupon(ctx context.Context, storeID uuid.UUID, req *models.CreateCouponRequest) (*models.Coupon, *services.ServiceError) {
	return m.createFn(ctx, storeID, req)
}
func (m *mockCouponService) UpdateCoupon(_ context.Context, _, _ uuid.UUID, _ *models.CreateCouponRequest) (*models.Coupon, *services.ServiceError) {
	return nil, nil
}
func (m *mockCouponService) DeleteCoupon(_ context.Context, _, _ uuid.UUID) *services.ServiceError {
	return nil
}
func (m *mockCouponService) ToggleCoupon(_ context.Context, _, _ uuid.UUID, _ bool) *services.ServiceError {
	return nil
}
func (m *mockCouponService) ValidateCoupon(ctx context.Context, storeID uuid.UUID, req *models.ValidateCouponRequest) (*models.ValidateCouponResponse, *services.ServiceError) {
	return m.validateFn(ctx, storeID, req)
}
func (m *mockCouponService) ListCoupons(_ context.Context, _ uuid.UUID, _, _ int) ([]models.Coupon, int64, *services.ServiceError) {
	return nil, 0, nil
}

// --- Helpers ---

func setupRouter(store *models.Store, svc services.CouponService) *gin.Engine {
	r := gin.New()
	cc := controllers.NewCouponController(svc, &mockStoreService{store: store})

	r.POST("/stores/:slug/coupons/validate", cc.ValidateCoupon)

	owner := r.Group("/dashboard")
	owner.Use(func(c *gin.Context) {
		c.Set(middleware.StoreContextKey, store.ID.String())
		c.Next()
	})
	owner.POST("/coupons", cc.CreateCoupon)
	return r
}

// --- Tests ---

func TestValidateCoupon_Public(t *testing.T) {
	store := &models.Store{ID: uuid.New(), Slug: "pizzeria"}
	svc := &mockCouponService{
		validateFn: func(_ context.Context, storeID uuid.UUID, req *models.ValidateCouponRequest) (*models.ValidateCouponResponse, *services.ServiceError) {
			assert.Equal(t, store.ID, storeID)
			return &models.ValidateCouponResponse{
				Valid: true, Code: req.Code,
				Type: models.CouponTypePercentage, Discount: 10,
			}, nil
		},
	}
	r := setupRouter(store, svc)

	body, _ := json.Marshal(models.ValidateCouponRequest{Code: "SAVE10", Subtotal: 100})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/stores/pizzeria/coupons/validate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.ValidateCouponResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Equal(t, 10.0, resp.Discount)
}

func TestValidateCoupon_UnknownStore(t *testing.T) {
	store := &models.Store{ID: uuid.New(), Slug: "pizzeria"}
	r := setupRouter(store, &mockCouponService{})

	body, _ := json.Marshal(models.ValidateCouponRequest{Code: "SAVE10", Subtotal: 100})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/stores/nope/coupons/validate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateCoupon_Owner(t *testing.T) {
	store := &models.Store{ID: uuid.New(), Slug: "pizzeria"}
	svc := &mockCouponService{
		createFn: func(_ context.Context, storeID uuid.UUID, req *models.CreateCouponRequest) (*models.Coupon, *services.ServiceError) {
			assert.Equal(t, store.ID, storeID)
			return &models.Coupon{
				ID: uuid.New(), StoreID: storeID,
				Code: req.Code, Type: req.Type, Value: req.Value, Active: true,
			}, nil
		},
	}
	r := setupRouter(store, svc)

	body, _ := json.Marshal(models.CreateCouponRequest{
		Code: "SAVE10", Type: models.CouponTypePercentage, Value: 10,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/dashboard/coupons", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateCoupon_InvalidPayload(t *testing.T) {
	store := &models.Store{ID: uuid.New(), Slug: "pizzeria"}
	r := setupRouter(store, &mockCouponService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/dashboard/coupons", bytes.NewReader([]byte(`{"code":"X"}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
