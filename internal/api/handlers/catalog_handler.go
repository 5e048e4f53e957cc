package handlers

import (
	"net/http"

	"github.com/lumiderm/storefront-backend/internal/domain/repositories"
)

// CatalogHandler serves the navigation lookups: categories and brands
type CatalogHandler struct {
	categoryRepo repositories.CategoryRepository
	brandRepo    repositories.BrandRepository
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(categoryRepo repositories.CategoryRepository, brandRepo repositories.BrandRepository) *CatalogHandler {
	return &CatalogHandler{
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
	}
}

// ListCategories handles GET /api/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"count":      len(categories),
	})
}

// GetCategory handles GET /api/categories/{slug}
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		respondWithError(w, http.StatusBadRequest, "category slug is required")
		return
	}

	category, err := h.categoryRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, category)
}

// ListBrands handles GET /api/brands
func (h *CatalogHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.brandRepo.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list brands")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"brands": brands,
		"count":  len(brands),
	})
}
