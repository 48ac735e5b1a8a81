package services_test

import (
	"context"
	"testing"

	"github.com/Mathdino/cardapio-backend/models"
	"github.com/Mathdino/cardapio-backend/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newProductService(repo *mockProductRepo) services.ProductService {
	logger, _ := zap.NewDevelopment()
	return services.NewProductService(repo, logger)
}

func seedCategory(repo *mockProductRepo, storeID uuid.UUID) *models.Category {
	category := &models.Category{ID: uuid.New(), StoreID: storeID, Name: "Mains"}
	repo.CreateCategory(context.Background(), category)
	return category
}

func TestProductService_CreateSimple(t *testing.T) {
	storeID := uuid.New()
	repo := newMockProductRepo()
	category := seedCategory(repo, storeID)
	svc := newProductService(repo)

	product, svcErr := svc.CreateProduct(context.Background(), storeID, &models.CreateProductRequest{
		CategoryID: category.ID,
		Name:       "Pizza Margherita",
		Type:       models.ProductTypeSimple,
		Price:      40.00,
	})
	assert.Nil(t, svcErr)
	assert.Equal(t, storeID, product.StoreID)
	assert.True(t, product.Available)
}

func TestProductService_ExactlyOnePayloadPerType(t *testing.T) {
	storeID := uuid.New()
	repo := newMockProductRepo()
	category := seedCategory(repo, storeID)
	svc := newProductService(repo)
	ctx := context.Background()

	flavors := &models.FlavorConfig{Min: 1, Max: 1, Options: []models.FlavorOption{{ID: "f1", Name: "A", Price: 5}}}
	combo := &models.ComboConfig{Groups: []models.ComboGroup{{ID: "g1", Name: "G", Type: models.ComboGroupCustom,
		Items: []models.ComboGroupItem{{ID: "i1", Name: "X", Price: 2}}}}}

	// A simple product rejects any type payload.
	_, svcErr := svc.CreateProduct(ctx, storeID, &models.CreateProductRequest{
		CategoryID: category.ID, Name: "Pizza", Type: models.ProductTypeSimple,
		Price: 40, Flavors: flavors,
	})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)

	// A flavors product rejects a second payload.
	_, svcErr = svc.CreateProduct(ctx, storeID, &models.CreateProductRequest{
		CategoryID: category.ID, Name: "Bowl", Type: models.ProductTypeFlavors,
		Flavors: flavors, Combo: combo,
	})
	assert.NotNil(t, svcErr)

	// A flavors product requires its payload.
	_, svcErr = svc.CreateProduct(ctx, storeID, &models.CreateProductRequest{
		CategoryID: category.ID, Name: "Bowl", Type: models.ProductTypeFlavors,
	})
	assert.NotNil(t, svcErr)

	// A wholesale product requires both threshold and price.
	_, svcErr = svc.CreateProduct(ctx, storeID, &models.CreateProductRequest{
		CategoryID: category.ID, Name: "Coxinha", Type: models.ProductTypeWholesale,
		Price: 5, WholesaleMinQuantity: 10,
	})
	assert.NotNil(t, svcErr)

	// Combos never take promotional pricing of their own.
	_, svcErr = svc.CreateProduct(ctx, storeID, &models.CreateProductRequest{
		CategoryID: category.ID, Name: "Combo", Type: models.ProductTypeCombo,
		Combo: combo, PromoPrice: floatPtr(9.99),
	})
	assert.NotNil(t, svcErr)
}

func TestProductService_CreateRejectsForeignCategory(t *testing.T) {
	storeID := uuid.New()
	repo := newMockProductRepo()
	foreign := seedCategory(repo, uuid.New())
	svc := newProductService(repo)

	_, svcErr := svc.CreateProduct(context.Background(), storeID, &models.CreateProductRequest{
		CategoryID: foreign.ID, Name: "Pizza", Type: models.ProductTypeSimple, Price: 40,
	})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}

func TestProductService_GetMenuDisplayPrices(t *testing.T) {
	storeID := uuid.New()
	repo := newMockProductRepo()
	category := seedCategory(repo, storeID)
	svc := newProductService(repo)
	ctx := context.Background()

	_, svcErr := svc.CreateProduct(ctx, storeID, &models.CreateProductRequest{
		CategoryID: category.ID, Name: "Acai", Type: models.ProductTypeFlavors,
		Flavors: &models.FlavorConfig{Min: 1, Max: 1, Options: []models.FlavorOption{
			{ID: "f1", Name: "Small", Price: 12},
			{ID: "f2", Name: "Large", Price: 18},
		}},
	})
	assert.Nil(t, svcErr)

	menu, svcErr := svc.GetMenu(ctx, storeID)
	assert.Nil(t, svcErr)
	assert.Len(t, menu, 1)
	assert.Len(t, menu[0].Products, 1)
	assert.Equal(t, 12.0, menu[0].Products[0].DisplayPrice, "menu shows the cheapest flavor as the from price")
}
