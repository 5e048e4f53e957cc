package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/lumiderm/storefront-backend/internal/api/handlers"
	"github.com/lumiderm/storefront-backend/internal/application/services"
	"github.com/lumiderm/storefront-backend/internal/domain/entities"
	apperrors "github.com/lumiderm/storefront-backend/pkg/errors"
)

type MockProductFilterService struct {
	mock.Mock
}

func (m *MockProductFilterService) GetFilteredProducts(ctx context.Context, categorySlug string, selectedOptionIDs []string, offset, limit int) (*services.FilteredProductsResult, error) {
	args := m.Called(ctx, categorySlug, selectedOptionIDs, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.FilteredProductsResult), args.Error(1)
}

type MockProductDetailService struct {
	mock.Mock
}

func (m *MockProductDetailService) Detail(ctx context.Context, slug string) (*entities.ProductDetail, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ProductDetail), args.Error(1)
}

func TestProductHandler_GetProducts_ReturnsContract(t *testing.T) {
	mockFilter := new(MockProductFilterService)
	handler := handlers.NewProductHandler(mockFilter, new(MockProductDetailService))

	expected := &services.FilteredProductsResult{
		Products: []entities.ProductSummary{
			{ID: "p1", Name: "Aqua Cream", Slug: "aqua-cream", Brand: "Lumiderm", Category: "Skincare", Price: 20},
		},
		Offset:  0,
		Limit:   24,
		Total:   1,
		HasMore: false,
	}

	mockFilter.On("GetFilteredProducts", mock.Anything, "skincare", []string{"opt-dry", "opt-acne"}, 0, 24).
		Return(expected, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products?categorySlug=skincare&optionIds=opt-dry,opt-acne&offset=0&limit=24", nil)
	rec := httptest.NewRecorder()

	handler.GetProducts(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp services.FilteredProductsResult
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, *expected, resp)
	mockFilter.AssertExpectations(t)
}

func TestProductHandler_GetProducts_MissingCategorySlug(t *testing.T) {
	handler := handlers.NewProductHandler(new(MockProductFilterService), new(MockProductDetailService))

	req := httptest.NewRequest(http.MethodGet, "/api/products?optionIds=opt-dry", nil)
	rec := httptest.NewRecorder()

	handler.GetProducts(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductHandler_GetProducts_MalformedPagingFallsBackToDefaults(t *testing.T) {
	mockFilter := new(MockProductFilterService)
	handler := handlers.NewProductHandler(mockFilter, new(MockProductDetailService))

	// Unparseable offset/limit reach the service as zero values; the service
	// owns the clamping rules.
	mockFilter.On("GetFilteredProducts", mock.Anything, "skincare", []string(nil), 0, 0).
		Return(&services.FilteredProductsResult{Products: []entities.ProductSummary{}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products?categorySlug=skincare&offset=abc&limit=xyz", nil)
	rec := httptest.NewRecorder()

	handler.GetProducts(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockFilter.AssertExpectations(t)
}

func TestProductHandler_GetProducts_CategoryNotFound(t *testing.T) {
	mockFilter := new(MockProductFilterService)
	handler := handlers.NewProductHandler(mockFilter, new(MockProductDetailService))

	mockFilter.On("GetFilteredProducts", mock.Anything, "fragrance", []string(nil), 0, 0).
		Return(nil, apperrors.NewNotFoundError("category with slug fragrance not found"))

	req := httptest.NewRequest(http.MethodGet, "/api/products?categorySlug=fragrance", nil)
	rec := httptest.NewRecorder()

	handler.GetProducts(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandler_GetProduct_ReturnsDetail(t *testing.T) {
	mockDetail := new(MockProductDetailService)
	handler := handlers.NewProductHandler(new(MockProductFilterService), mockDetail)

	expected := &entities.ProductDetail{
		Product:  entities.Product{ID: "p1", Name: "Aqua Cream", Slug: "aqua-cream"},
		Brand:    "Lumiderm",
		Category: "Skincare",
		Variants: []entities.ProductVariant{
			{ID: "v1a", ProductID: "p1", Price: 30},
		},
	}

	mockDetail.On("Detail", mock.Anything, "aqua-cream").Return(expected, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products/aqua-cream", nil)
	req.SetPathValue("slug", "aqua-cream")
	rec := httptest.NewRecorder()

	handler.GetProduct(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp entities.ProductDetail
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, expected.Name, resp.Name)
	assert.Equal(t, expected.Brand, resp.Brand)
	assert.Len(t, resp.Variants, 1)
}

func TestProductHandler_GetProduct_NotFound(t *testing.T) {
	mockDetail := new(MockProductDetailService)
	handler := handlers.NewProductHandler(new(MockProductFilterService), mockDetail)

	mockDetail.On("Detail", mock.Anything, "gone").
		Return(nil, apperrors.NewNotFoundError("product with slug gone not found"))

	req := httptest.NewRequest(http.MethodGet, "/api/products/gone", nil)
	req.SetPathValue("slug", "gone")
	rec := httptest.NewRecorder()

	handler.GetProduct(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
