package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lumiderm/storefront-backend/internal/adapters/cache"
	"github.com/lumiderm/storefront-backend/internal/adapters/database"
	"github.com/lumiderm/storefront-backend/internal/adapters/search"
	"github.com/lumiderm/storefront-backend/internal/api/handlers"
	"github.com/lumiderm/storefront-backend/internal/api/middleware"
	"github.com/lumiderm/storefront-backend/internal/api/routes"
	"github.com/lumiderm/storefront-backend/internal/application/loaders"
	"github.com/lumiderm/storefront-backend/internal/application/services"
	"github.com/lumiderm/storefront-backend/internal/domain/providers"
	"github.com/lumiderm/storefront-backend/internal/domain/repositories"
	"github.com/lumiderm/storefront-backend/internal/infrastructure/clients/postgres"
	"github.com/lumiderm/storefront-backend/internal/infrastructure/clients/redis"
	"github.com/lumiderm/storefront-backend/internal/infrastructure/clients/typesense"
	"github.com/lumiderm/storefront-backend/internal/infrastructure/observability"
	"github.com/lumiderm/storefront-backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()

	// Initialize Redis client. The storefront works without caching, so a
	// missing Redis only costs performance.
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
	} else {
		defer redisClient.Close()
	}

	// Initialize Typesense client. Search degrades to unavailable without it.
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Failed to initialize Typesense client: %v", err)
	}

	// Initialize adapters
	categoryAdapter := database.NewCategoryAdapter(pgClient)
	brandAdapter := database.NewBrandAdapter(pgClient)
	facetAdapter := database.NewFacetAdapter(pgClient)
	productAdapter := database.NewProductAdapter(pgClient)

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	var searchRepo repositories.ProductSearchRepository
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Printf("Warning: Failed to init Typesense schema: %v", err)
		}
		searchRepo = adapter
	}

	// Initialize services
	batchLoaders := loaders.NewLoaders(brandAdapter, categoryAdapter)
	hydrator := services.NewProductHydrator(productAdapter, batchLoaders)

	facetCountService := services.NewFacetCountService(categoryAdapter, facetAdapter, productAdapter)
	productFilterService := services.NewProductFilterService(categoryAdapter, facetAdapter, productAdapter, hydrator)

	// Initialize handlers
	facetHandler := handlers.NewFacetHandler(facetCountService)
	productHandler := handlers.NewProductHandler(productFilterService, hydrator)
	catalogHandler := handlers.NewCatalogHandler(categoryAdapter, brandAdapter)

	var searchHandler *handlers.SearchHandler
	if searchRepo != nil {
		searchService := services.NewProductSearchService(searchRepo, hydrator)
		searchHandler = handlers.NewSearchHandler(searchService)
	}

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		facetHandler,
		productHandler,
		catalogHandler,
		searchHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
