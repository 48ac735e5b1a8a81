package services_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/Mathdino/cardapio-backend/models"
	"github.com/Mathdino/cardapio-backend/notifier"

	"github.com/google/uuid"
)

// --- In-memory repositories shared by the service tests ---

type notFoundError struct{}

func (e *notFoundError) Error() string { return "record not found" }

type mockCartRepo struct {
	carts map[string]*models.Cart
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{carts: make(map[string]*models.Cart)}
}

func cartKey(storeID, sessionID string) string { return storeID + ":" + sessionID }

func (m *mockCartRepo) Get(_ context.Context, storeID, sessionID string) (*models.Cart, error) {
	cart, ok := m.carts[cartKey(storeID, sessionID)]
	if !ok {
		return nil, nil
	}
	return cart, nil
}

func (m *mockCartRepo) Save(_ context.Context, cart *models.Cart) error {
	m.carts[cartKey(cart.StoreID, cart.SessionID)] = cart
	return nil
}

func (m *mockCartRepo) Delete(_ context.Context, storeID, sessionID string) error {
	delete(m.carts, cartKey(storeID, sessionID))
	return nil
}

type mockProductRepo struct {
	products   map[uuid.UUID]*models.Product
	categories map[uuid.UUID]*models.Category
}

func newMockProductRepo(products ...*models.Product) *mockProductRepo {
	repo := &mockProductRepo{
		products:   make(map[uuid.UUID]*models.Product),
		categories: make(map[uuid.UUID]*models.Category),
	}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		repo.products[p.ID] = p
	}
	return repo
}

func (m *mockProductRepo) Create(_ context.Context, p *models.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepo) Update(_ context.Context, p *models.Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return &notFoundError{}
	}
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, storeID, productID uuid.UUID) error {
	p, ok := m.products[productID]
	if !ok || p.StoreID != storeID {
		return &notFoundError{}
	}
	delete(m.products, productID)
	return nil
}

func (m *mockProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, &notFoundError{}
	}
	return p, nil
}

func (m *mockProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]models.Product, error) {
	var result []models.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProductRepo) FindByStore(_ context.Context, storeID uuid.UUID) ([]models.Product, error) {
	var result []models.Product
	for _, p := range m.products {
		if p.StoreID == storeID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProductRepo) CreateCategory(_ context.Context, c *models.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.categories[c.ID] = c
	return nil
}

func (m *mockProductRepo) UpdateCategory(_ context.Context, c *models.Category) error {
	if _, ok := m.categories[c.ID]; !ok {
		return &notFoundError{}
	}
	m.categories[c.ID] = c
	return nil
}

func (m *mockProductRepo) DeleteCategory(_ context.Context, storeID, categoryID uuid.UUID) error {
	c, ok := m.categories[categoryID]
	if !ok || c.StoreID != storeID {
		return &notFoundError{}
	}
	delete(m.categories, categoryID)
	return nil
}

func (m *mockProductRepo) FindCategoryByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, &notFoundError{}
	}
	return c, nil
}

func (m *mockProductRepo) FindCategoriesByStore(_ context.Context, storeID uuid.UUID) ([]models.Category, error) {
	var result []models.Category
	for _, c := range m.categories {
		if c.StoreID == storeID {
			result = append(result, *c)
		}
	}
	return result, nil
}

type mockCouponRepo struct {
	coupons map[uuid.UUID]*models.Coupon
}

func newMockCouponRepo(coupons ...*models.Coupon) *mockCouponRepo {
	repo := &mockCouponRepo{coupons: make(map[uuid.UUID]*models.Coupon)}
	for _, c := range coupons {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		repo.coupons[c.ID] = c
	}
	return repo
}

func (m *mockCouponRepo) Create(_ context.Context, c *models.Coupon) error {
	for _, existing := range m.coupons {
		if existing.StoreID == c.StoreID && strings.EqualFold(existing.Code, c.Code) {
			return fmt.Errorf("duplicate key value violates unique constraint")
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.coupons[c.ID] = c
	return nil
}

func (m *mockCouponRepo) Update(_ context.Context, c *models.Coupon) error {
	if _, ok := m.coupons[c.ID]; !ok {
		return &notFoundError{}
	}
	m.coupons[c.ID] = c
	return nil
}

func (m *mockCouponRepo) Delete(_ context.Context, storeID, couponID uuid.UUID) error {
	c, ok := m.coupons[couponID]
	if !ok || c.StoreID != storeID {
		return &notFoundError{}
	}
	delete(m.coupons, couponID)
	return nil
}

func (m *mockCouponRepo) FindByCode(_ context.Context, storeID uuid.UUID, code string) (*models.Coupon, error) {
	for _, c := range m.coupons {
		if c.StoreID == storeID && strings.EqualFold(c.Code, code) && c.Active {
			return c, nil
		}
	}
	return nil, &notFoundError{}
}

func (m *mockCouponRepo) FindByID(_ context.Context, storeID, couponID uuid.UUID) (*models.Coupon, error) {
	c, ok := m.coupons[couponID]
	if !ok || c.StoreID != storeID {
		return nil, &notFoundError{}
	}
	return c, nil
}

func (m *mockCouponRepo) IncrementUsedCount(_ context.Context, couponID uuid.UUID) error {
	c, ok := m.coupons[couponID]
	if !ok {
		return &notFoundError{}
	}
	c.UsedCount++
	return nil
}

func (m *mockCouponRepo) SetActive(_ context.Context, storeID, couponID uuid.UUID, active bool) error {
	c, ok := m.coupons[couponID]
	if !ok || c.StoreID != storeID {
		return &notFoundError{}
	}
	c.Active = active
	return nil
}

func (m *mockCouponRepo) FindByStore(_ context.Context, storeID uuid.UUID, _, _ int) ([]models.Coupon, int64, error) {
	var result []models.Coupon
	for _, c := range m.coupons {
		if c.StoreID == storeID {
			result = append(result, *c)
		}
	}
	return result, int64(len(result)), nil
}

type mockStoreRepo struct {
	stores map[uuid.UUID]*models.Store
}

func newMockStoreRepo(stores ...*models.Store) *mockStoreRepo {
	repo := &mockStoreRepo{stores: make(map[uuid.UUID]*models.Store)}
	for _, s := range stores {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		repo.stores[s.ID] = s
	}
	return repo
}

func (m *mockStoreRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Store, error) {
	s, ok := m.stores[id]
	if !ok {
		return nil, &notFoundError{}
	}
	return s, nil
}

func (m *mockStoreRepo) FindBySlug(_ context.Context, slug string) (*models.Store, error) {
	for _, s := range m.stores {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, &notFoundError{}
}

func (m *mockStoreRepo) Update(_ context.Context, store *models.Store) error {
	if _, ok := m.stores[store.ID]; !ok {
		return &notFoundError{}
	}
	m.stores[store.ID] = store
	return nil
}

func (m *mockStoreRepo) ReplaceBusinessHours(_ context.Context, storeID uuid.UUID, hours []models.BusinessHours) error {
	s, ok := m.stores[storeID]
	if !ok {
		return &notFoundError{}
	}
	s.BusinessHours = hours
	return nil
}

// mockOrderRepo stores orders by code and can inject failures on Create
// to drive the code-collision retry path.
type mockOrderRepo struct {
	orders         map[string]*models.Order
	createFailures int
	failErr        error
	createCalls    int
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[string]*models.Order)}
}

func (m *mockOrderRepo) Create(_ context.Context, order *models.Order) error {
	m.createCalls++
	if m.createFailures > 0 {
		m.createFailures--
		return m.failErr
	}
	if _, ok := m.orders[order.Code]; ok {
		return fmt.Errorf("duplicate key value violates unique constraint")
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	m.orders[order.Code] = order
	return nil
}

func (m *mockOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	for _, o := range m.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, &notFoundError{}
}

func (m *mockOrderRepo) FindByCode(_ context.Context, code string) (*models.Order, error) {
	o, ok := m.orders[code]
	if !ok {
		return nil, &notFoundError{}
	}
	return o, nil
}

func (m *mockOrderRepo) FindByStore(_ context.Context, storeID uuid.UUID, status models.OrderStatus, _, _ int) ([]models.Order, int64, error) {
	var result []models.Order
	for _, o := range m.orders {
		if o.StoreID != storeID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		result = append(result, *o)
	}
	return result, int64(len(result)), nil
}

func (m *mockOrderRepo) FindByCustomerPhone(_ context.Context, storeID uuid.UUID, phone string, _, _ int) ([]models.Order, int64, error) {
	var result []models.Order
	for _, o := range m.orders {
		if o.StoreID == storeID && o.CustomerPhone == phone {
			result = append(result, *o)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, storeID, orderID uuid.UUID, status models.OrderStatus) error {
	for _, o := range m.orders {
		if o.ID == orderID && o.StoreID == storeID {
			o.Status = status
			return nil
		}
	}
	return &notFoundError{}
}

type mockNotifier struct {
	sent    []string // order codes
	failErr error
}

func (m *mockNotifier) NotifyOrderCreated(_ context.Context, _ *models.Store, order *models.Order) (notifier.SendResult, error) {
	if m.failErr != nil {
		return notifier.SendResult{}, m.failErr
	}
	m.sent = append(m.sent, order.Code)
	return notifier.SendResult{MessageID: "msg-" + order.Code}, nil
}
