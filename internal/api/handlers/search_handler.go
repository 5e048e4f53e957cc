package handlers

import (
	"context"
	"net/http"

	"github.com/lumiderm/storefront-backend/internal/domain/entities"
)

// ProductSearchProvider runs full-text product search and hydrates the hits
type ProductSearchProvider interface {
	Search(ctx context.Context, query string, limit int) ([]entities.ProductSummary, error)
}

// SearchHandler handles the storefront search box
type SearchHandler struct {
	search ProductSearchProvider
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(search ProductSearchProvider) *SearchHandler {
	return &SearchHandler{
		search: search,
	}
}

// SearchProducts handles GET /api/search?q=&limit=
func (h *SearchHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "q is required")
		return
	}

	limit := parseIntOrDefault(r.URL.Query().Get("limit"), 0)

	products, err := h.search.Search(r.Context(), query, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "search is unavailable")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}
