package handlers

import (
	"context"
	"net/http"

	"github.com/lumiderm/storefront-backend/internal/domain/entities"
)

// FacetCountProvider computes a category's facets with selection-aware
// option counts
type FacetCountProvider interface {
	GetFacetCounts(ctx context.Context, categorySlug string, selectedOptionIDs []string) ([]entities.FacetWithCounts, error)
}

// FacetHandler handles facet-related HTTP requests
type FacetHandler struct {
	facetCounts FacetCountProvider
}

// NewFacetHandler creates a new facet handler
func NewFacetHandler(facetCounts FacetCountProvider) *FacetHandler {
	return &FacetHandler{
		facetCounts: facetCounts,
	}
}

// GetFacets handles GET /api/facets?categorySlug=&selectedOptionIds=
func (h *FacetHandler) GetFacets(w http.ResponseWriter, r *http.Request) {
	categorySlug := r.URL.Query().Get("categorySlug")
	if categorySlug == "" {
		respondWithError(w, http.StatusBadRequest, "categorySlug is required")
		return
	}

	selected := parseCSV(r.URL.Query().Get("selectedOptionIds"))

	facets, err := h.facetCounts.GetFacetCounts(r.Context(), categorySlug, selected)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"facets": facets,
	})
}
