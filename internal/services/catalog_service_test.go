package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"storefront/internal/analytics"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/seed"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_FilterAllReturnsFullCatalog(t *testing.T) {
	mockRepo := new(MockProductRepository)
	catalog := seed.Products()
	mockRepo.On("GetAll").Return(catalog, nil).Once()
	tracker := &recordingTracker{}
	service := services.NewCatalogService(mockRepo, tracker, "USD")

	products, err := service.Filter(context.Background(), "s1", models.CategoryAll, "")

	require.NoError(t, err)
	assert.Equal(t, catalog, products)
	assert.Empty(t, tracker.Events())
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_FilterByCategoryAndSearch(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("GetAll").Return([]models.Product{
		{ID: 1, Name: "Quantum Watch", Category: models.CategoryAccessories, Description: "Time"},
		{ID: 2, Name: "Desk Lamp", Category: models.CategoryHome, Description: "Warm light for the WATCH tower"},
		{ID: 3, Name: "Jacket", Category: models.CategoryFashion, Description: "Warm"},
	}, nil)
	tracker := &recordingTracker{}
	service := services.NewCatalogService(mockRepo, tracker, "USD")

	products, err := service.Filter(context.Background(), "s1", models.CategoryAll, "watch")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, 2, products[1].ID)

	products, err = service.Filter(context.Background(), "s1", models.CategoryHome, "watch")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 2, products[0].ID)

	events := tracker.Events()
	require.Len(t, events, 2)
	assert.Equal(t, analytics.EventSearch, events[0].Name)
	assert.Equal(t, "watch", events[0].SearchString)
}

func TestCatalogService_FilterEmptyCategory(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("GetAll").Return([]models.Product{
		{ID: 1, Name: "Quantum Watch", Category: models.CategoryAccessories},
	}, nil)
	tracker := &recordingTracker{}
	service := services.NewCatalogService(mockRepo, tracker, "USD")

	products, err := service.Filter(context.Background(), "s1", models.CategoryFashion, "ab")

	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
	// Two-character queries are not reported.
	assert.Empty(t, tracker.Events())
}

func TestCatalogService_GetProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	tracker := &recordingTracker{}
	service := services.NewCatalogService(mockRepo, tracker, "USD")

	expected := &models.Product{ID: 4, Name: "Holo Lamp", Price: 45.5, Category: models.CategoryHome}
	mockRepo.On("GetByID", 4).Return(expected, nil).Once()

	product, err := service.GetProduct(context.Background(), "s1", 4)
	require.NoError(t, err)
	assert.Equal(t, expected, product)

	events := tracker.Events()
	require.Len(t, events, 1)
	assert.Equal(t, analytics.EventViewContent, events[0].Name)
	assert.Equal(t, []string{"4"}, events[0].ContentIDs)
	assert.Equal(t, 45.5, events[0].Value)
	assert.Equal(t, "USD", events[0].Currency)

	mockRepo.On("GetByID", 99).Return(nil, fmt.Errorf("product with ID 99 %w", repositories.ErrNotFound)).Once()
	product, err = service.GetProduct(context.Background(), "s1", 99)
	assert.Nil(t, product)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Len(t, tracker.Events(), 1)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_FeaturedAndRelated(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	for _, p := range []models.Product{
		{ID: 1, Name: "A", Category: models.CategoryElectronics, Featured: true},
		{ID: 2, Name: "B", Category: models.CategoryElectronics},
		{ID: 3, Name: "C", Category: models.CategoryHome, Featured: true},
		{ID: 4, Name: "D", Category: models.CategoryElectronics},
		{ID: 5, Name: "E", Category: models.CategoryElectronics},
		{ID: 6, Name: "F", Category: models.CategoryElectronics},
		{ID: 7, Name: "G", Category: models.CategoryElectronics},
	} {
		p := p
		require.NoError(t, repo.Create(&p))
	}
	service := services.NewCatalogService(repo, analytics.Nop{}, "USD")

	featured, err := service.Featured()
	require.NoError(t, err)
	require.Len(t, featured, 2)
	assert.Equal(t, 1, featured[0].ID)
	assert.Equal(t, 3, featured[1].ID)

	related, err := service.Related(2, services.RelatedLimit)
	require.NoError(t, err)
	require.Len(t, related, 4)
	for _, p := range related {
		assert.NotEqual(t, 2, p.ID)
		assert.Equal(t, models.CategoryElectronics, p.Category)
	}

	related, err = service.Related(3, services.RelatedLimit)
	require.NoError(t, err)
	assert.Empty(t, related)

	_, err = service.Related(42, services.RelatedLimit)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCatalogService_CreateProduct(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	for _, p := range seed.Products() {
		p := p
		require.NoError(t, repo.Create(&p))
	}
	service := services.NewCatalogService(repo, analytics.Nop{}, "USD")

	product := &models.Product{ID: 3, Name: "Plasma Kettle", Price: 59, Category: models.CategoryHome, Stock: 4}
	require.NoError(t, service.CreateProduct(product))
	assert.Equal(t, len(seed.Products())+1, product.ID)
	assert.Zero(t, product.Rating)

	stored, err := service.GetProductByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plasma Kettle", stored.Name)
}

func TestCatalogService_CreateProductValidation(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, analytics.Nop{}, "USD")

	err := service.CreateProduct(&models.Product{Name: "", Price: -1, Category: models.CategoryAll})

	require.Error(t, err)
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := map[string]bool{}
	for _, fe := range verrs {
		fields[fe.Field()] = true
	}
	assert.True(t, fields["Name"])
	assert.True(t, fields["Price"])
	assert.True(t, fields["Category"])
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCatalogService_UpdateAndDeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewCatalogService(mockRepo, analytics.Nop{}, "USD")

	product := &models.Product{ID: 2, Name: "Renamed", Price: 10, Category: models.CategoryFashion}
	mockRepo.On("Update", product).Return(nil).Once()
	assert.NoError(t, service.UpdateProduct(product))

	mockRepo.On("Delete", 2).Return(nil).Once()
	assert.NoError(t, service.DeleteProduct(2))

	mockRepo.On("Delete", 99).Return(fmt.Errorf("product with ID 99 %w", repositories.ErrNotFound)).Once()
	assert.ErrorIs(t, service.DeleteProduct(99), repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
