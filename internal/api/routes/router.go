package routes

import (
	"net/http"

	"github.com/lumiderm/storefront-backend/internal/api/handlers"
	"github.com/lumiderm/storefront-backend/internal/api/middleware"
	"github.com/lumiderm/storefront-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	facetHandler   *handlers.FacetHandler
	productHandler *handlers.ProductHandler
	catalogHandler *handlers.CatalogHandler
	searchHandler  *handlers.SearchHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	facetHandler *handlers.FacetHandler,
	productHandler *handlers.ProductHandler,
	catalogHandler *handlers.CatalogHandler,
	searchHandler *handlers.SearchHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		facetHandler:   facetHandler,
		productHandler: productHandler,
		catalogHandler: catalogHandler,
		searchHandler:  searchHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Facet endpoints
	r.mux.HandleFunc("GET /api/facets", r.facetHandler.GetFacets)

	// Product endpoints
	r.mux.HandleFunc("GET /api/products", r.productHandler.GetProducts)
	r.mux.HandleFunc("GET /api/products/{slug}", r.productHandler.GetProduct)

	// Catalog navigation endpoints
	r.mux.HandleFunc("GET /api/categories", r.catalogHandler.ListCategories)
	r.mux.HandleFunc("GET /api/categories/{slug}", r.catalogHandler.GetCategory)
	r.mux.HandleFunc("GET /api/brands", r.catalogHandler.ListBrands)

	// Search endpoint
	if r.searchHandler != nil {
		r.mux.HandleFunc("GET /api/search", r.searchHandler.SearchProducts)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	// Apply cache middleware if available
	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Apply HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
