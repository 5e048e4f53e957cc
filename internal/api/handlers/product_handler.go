package handlers

import (
	"context"
	"net/http"

	"github.com/lumiderm/storefront-backend/internal/application/services"
	"github.com/lumiderm/storefront-backend/internal/domain/entities"
)

// ProductFilterProvider resolves a page of category products under a facet
// selection
type ProductFilterProvider interface {
	GetFilteredProducts(ctx context.Context, categorySlug string, selectedOptionIDs []string, offset, limit int) (*services.FilteredProductsResult, error)
}

// ProductDetailProvider hydrates a product slug into the product-page shape
type ProductDetailProvider interface {
	Detail(ctx context.Context, slug string) (*entities.ProductDetail, error)
}

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	filter ProductFilterProvider
	detail ProductDetailProvider
}

// NewProductHandler creates a new product handler
func NewProductHandler(filter ProductFilterProvider, detail ProductDetailProvider) *ProductHandler {
	return &ProductHandler{
		filter: filter,
		detail: detail,
	}
}

// GetProducts handles GET /api/products?categorySlug=&optionIds=&offset=&limit=
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	categorySlug := query.Get("categorySlug")
	if categorySlug == "" {
		respondWithError(w, http.StatusBadRequest, "categorySlug is required")
		return
	}

	optionIDs := parseCSV(query.Get("optionIds"))
	offset := parseIntOrDefault(query.Get("offset"), 0)
	limit := parseIntOrDefault(query.Get("limit"), 0)

	result, err := h.filter.GetFilteredProducts(r.Context(), categorySlug, optionIDs, offset, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// GetProduct handles GET /api/products/{slug}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		respondWithError(w, http.StatusBadRequest, "product slug is required")
		return
	}

	product, err := h.detail.Detail(r.Context(), slug)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, product)
}
