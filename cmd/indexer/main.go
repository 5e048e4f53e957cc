package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lumiderm/storefront-backend/internal/adapters/database"
	"github.com/lumiderm/storefront-backend/internal/adapters/search"
	"github.com/lumiderm/storefront-backend/internal/infrastructure/clients/postgres"
	"github.com/lumiderm/storefront-backend/internal/infrastructure/clients/typesense"
	"github.com/lumiderm/storefront-backend/pkg/config"
)

// Reindexes the product catalog into Typesense, once or on an interval.
// Run with -interval (or REINDEX_INTERVAL) to keep the index tracking the
// catalog; merchandising edits land in search on the next pass.
func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	var err error
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatalf("Invalid interval %q: %v", intervalValue, err)
		}
		if interval <= 0 {
			log.Fatalf("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset); err != nil {
			log.Printf("Reindex failed: %v", err)
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Printf("Reindex complete. Next run in %s.", interval)

		select {
		case <-ctx.Done():
			log.Println("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	if reset {
		if _, err := tsClient.Client().Collection("products").Delete(ctx); err != nil {
			log.Printf("Could not delete collection (may not exist): %v", err)
		}
	}

	searchRepo := search.NewTypesenseAdapter(tsClient)
	if err := searchRepo.InitSchema(ctx); err != nil {
		return err
	}

	categoryRepo := database.NewCategoryAdapter(pgClient)
	brandRepo := database.NewBrandAdapter(pgClient)
	productRepo := database.NewProductAdapter(pgClient)

	categories, err := categoryRepo.List(ctx)
	if err != nil {
		return err
	}

	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	total := 0
	for _, category := range categories {
		ids, err := productRepo.ListIDsByCategory(ctx, category.ID)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			continue
		}

		products, err := productRepo.GetByIDs(ctx, ids)
		if err != nil {
			return err
		}

		brandIDs := make([]string, 0, len(products))
		seen := make(map[string]struct{})
		for _, p := range products {
			if _, ok := seen[p.BrandID]; ok {
				continue
			}
			seen[p.BrandID] = struct{}{}
			brandIDs = append(brandIDs, p.BrandID)
		}

		brands, err := brandRepo.GetByIDs(ctx, brandIDs)
		if err != nil {
			return err
		}
		brandNames := make(map[string]string, len(brands))
		for _, b := range brands {
			brandNames[b.ID] = b.Name
		}

		for _, p := range products {
			if err := searchRepo.Index(ctx, p, brandNames[p.BrandID], categoryNames[p.CategoryID]); err != nil {
				log.Printf("Failed to index product %s: %v", p.Name, err)
				continue
			}
			total++
		}
	}

	log.Printf("Indexed %d products across %d categories", total, len(categories))
	return nil
}
