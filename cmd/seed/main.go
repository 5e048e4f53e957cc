package main

import (
	"context"
	"log"
	"os"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/lumiderm/storefront-backend/internal/adapters/search"
	"github.com/lumiderm/storefront-backend/internal/domain/entities"
	"github.com/lumiderm/storefront-backend/internal/infrastructure/clients/postgres"
	"github.com/lumiderm/storefront-backend/internal/infrastructure/clients/typesense"
	"github.com/lumiderm/storefront-backend/pkg/config"
	"github.com/lumiderm/storefront-backend/pkg/utils"
)

const schema = `
CREATE TABLE IF NOT EXISTS categories (
	id UUID PRIMARY KEY,
	slug TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS brands (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	slug TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS category_facets (
	id UUID PRIMARY KEY,
	category_id UUID NOT NULL REFERENCES categories(id),
	name TEXT NOT NULL,
	slug TEXT NOT NULL,
	sort_order INT NOT NULL DEFAULT 0,
	UNIQUE (category_id, slug)
);

CREATE TABLE IF NOT EXISTS facet_options (
	id UUID PRIMARY KEY,
	facet_id UUID NOT NULL REFERENCES category_facets(id),
	label TEXT NOT NULL,
	value TEXT NOT NULL,
	sort_order INT NOT NULL DEFAULT 0,
	UNIQUE (facet_id, value)
);

CREATE TABLE IF NOT EXISTS products (
	id UUID PRIMARY KEY,
	category_id UUID NOT NULL REFERENCES categories(id),
	brand_id UUID NOT NULL REFERENCES brands(id),
	name TEXT NOT NULL,
	slug TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	tags TEXT[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_products_category_name ON products (category_id, name);

CREATE TABLE IF NOT EXISTS product_variants (
	id UUID PRIMARY KEY,
	product_id UUID NOT NULL REFERENCES products(id),
	price NUMERIC(10,2) NOT NULL,
	compare_at_price NUMERIC(10,2),
	images TEXT[] NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS idx_variants_product ON product_variants (product_id);

CREATE TABLE IF NOT EXISTS product_facet_options (
	product_id UUID NOT NULL REFERENCES products(id),
	facet_option_id UUID NOT NULL REFERENCES facet_options(id),
	PRIMARY KEY (product_id, facet_option_id)
);
CREATE INDEX IF NOT EXISTS idx_pfo_option ON product_facet_options (facet_option_id);
`

// seeder accumulates rows, then writes each table in one multi-row insert
type seeder struct {
	db *goqu.Database

	categories []goqu.Record
	brands     []goqu.Record
	facets     []goqu.Record
	options    []goqu.Record
	products   []goqu.Record
	variants   []goqu.Record
	links      []goqu.Record

	// for Typesense indexing after the relational seed
	indexed []indexedProduct
}

type indexedProduct struct {
	product  *entities.Product
	brand    string
	category string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if _, err := pgClient.DB().ExecContext(ctx, schema); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				product_facet_options,
				product_variants,
				products,
				facet_options,
				category_facets,
				brands,
				categories
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	s := &seeder{db: goqu.New("postgres", pgClient.DB())}

	lumiderm := s.brand("Lumiderm")
	velura := s.brand("Velura")
	petalco := s.brand("Petal & Co")

	skincare := s.category("Skincare", "Cleansers, serums and moisturizers")
	makeup := s.category("Makeup", "Complexion, eyes and lips")

	skinType := s.facet(skincare, "Skin Type", 1)
	dry := s.option(skinType, "Dry", 1)
	oily := s.option(skinType, "Oily", 2)
	combo := s.option(skinType, "Combination", 3)

	concern := s.facet(skincare, "Concern", 2)
	acne := s.option(concern, "Acne", 1)
	aging := s.option(concern, "Aging", 2)
	dullness := s.option(concern, "Dullness", 3)

	finish := s.facet(makeup, "Finish", 1)
	matte := s.option(finish, "Matte", 1)
	dewy := s.option(finish, "Dewy", 2)

	s.product(skincare, lumiderm, "Hydra Gel Cream",
		"Lightweight gel cream with hyaluronic acid",
		[]string{"moisturizer", "hydration"},
		[]variant{{price: 28, compareAt: 34, images: []string{"hydra-gel-50ml.jpg"}}},
		dry, combo, dullness)

	s.product(skincare, lumiderm, "Clear Start Cleanser",
		"Salicylic acid foaming cleanser",
		[]string{"cleanser", "bha"},
		[]variant{{price: 16, images: []string{"clear-start-150ml.jpg"}}},
		oily, acne)

	s.product(skincare, velura, "Midnight Repair Serum",
		"Retinal renewal serum for overnight use",
		[]string{"serum", "retinal"},
		[]variant{
			{price: 52, images: []string{"midnight-30ml.jpg"}},
			{price: 84, images: []string{"midnight-50ml.jpg"}},
		},
		dry, aging)

	s.product(skincare, velura, "Glow Tonic",
		"PHA exfoliating toner for sensitive skin",
		[]string{"toner", "exfoliant"},
		[]variant{{price: 22, images: []string{"glow-tonic.jpg"}}},
		combo, dullness)

	s.product(skincare, petalco, "Balance Mist",
		"Rice water balancing mist",
		[]string{"mist"},
		[]variant{{price: 18, images: []string{"balance-mist.jpg"}}},
		oily, combo)

	s.product(makeup, petalco, "Velvet Matte Tint",
		"Long-wear lip tint",
		[]string{"lip", "tint"},
		[]variant{
			{price: 14, images: []string{"velvet-rosewood.jpg"}},
			{price: 14, images: []string{"velvet-sienna.jpg"}},
		},
		matte)

	s.product(makeup, velura, "Lit Skin Highlighter",
		"Liquid highlighter for a glass-skin finish",
		[]string{"highlighter"},
		[]variant{{price: 26, compareAt: 30, images: []string{"lit-skin.jpg"}}},
		dewy)

	if err := s.flush(ctx); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}
	log.Printf("Seeded %d categories, %d brands, %d products", len(s.categories), len(s.brands), len(s.products))

	// Index into Typesense when available
	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Skipping search indexing: %v", err)
		return
	}

	searchRepo := search.NewTypesenseAdapter(tsClient)
	if err := searchRepo.InitSchema(ctx); err != nil {
		log.Printf("Failed to init Typesense schema: %v", err)
		return
	}

	for _, ip := range s.indexed {
		if err := searchRepo.Index(ctx, ip.product, ip.brand, ip.category); err != nil {
			log.Printf("Failed to index product %s: %v", ip.product.Name, err)
		}
	}
	log.Printf("Indexed %d products into Typesense", len(s.indexed))
}

type ref struct {
	id   string
	name string
}

type variant struct {
	price     float64
	compareAt float64
	images    []string
}

func (s *seeder) category(name, description string) ref {
	id := uuid.New().String()
	s.categories = append(s.categories, goqu.Record{
		"id": id, "slug": utils.Slugify(name), "name": name, "description": description,
	})
	return ref{id: id, name: name}
}

func (s *seeder) brand(name string) ref {
	id := uuid.New().String()
	s.brands = append(s.brands, goqu.Record{
		"id": id, "name": name, "slug": utils.Slugify(name),
	})
	return ref{id: id, name: name}
}

func (s *seeder) facet(category ref, name string, sortOrder int) ref {
	id := uuid.New().String()
	s.facets = append(s.facets, goqu.Record{
		"id": id, "category_id": category.id, "name": name,
		"slug": utils.Slugify(name), "sort_order": sortOrder,
	})
	return ref{id: id, name: name}
}

func (s *seeder) option(facet ref, label string, sortOrder int) ref {
	id := uuid.New().String()
	s.options = append(s.options, goqu.Record{
		"id": id, "facet_id": facet.id, "label": label,
		"value": utils.Slugify(label), "sort_order": sortOrder,
	})
	return ref{id: id, name: label}
}

func (s *seeder) product(category, brand ref, name, description string, tags []string, variants []variant, options ...ref) {
	id := uuid.New().String()
	s.products = append(s.products, goqu.Record{
		"id": id, "category_id": category.id, "brand_id": brand.id,
		"name": name, "slug": utils.Slugify(name), "description": description,
		"tags": tagsLiteral(tags),
	})

	for _, v := range variants {
		rec := goqu.Record{
			"id": uuid.New().String(), "product_id": id,
			"price": v.price, "images": tagsLiteral(v.images),
		}
		if v.compareAt > 0 {
			rec["compare_at_price"] = v.compareAt
		}
		s.variants = append(s.variants, rec)
	}

	for _, o := range options {
		s.links = append(s.links, goqu.Record{
			"product_id": id, "facet_option_id": o.id,
		})
	}

	s.indexed = append(s.indexed, indexedProduct{
		product: &entities.Product{
			ID:          id,
			Name:        name,
			Slug:        utils.Slugify(name),
			Description: description,
			Tags:        tags,
		},
		brand:    brand.name,
		category: category.name,
	})
}

func (s *seeder) flush(ctx context.Context) error {
	inserts := []struct {
		table string
		rows  []goqu.Record
	}{
		{"categories", s.categories},
		{"brands", s.brands},
		{"category_facets", s.facets},
		{"facet_options", s.options},
		{"products", s.products},
		{"product_variants", s.variants},
		{"product_facet_options", s.links},
	}

	for _, ins := range inserts {
		if len(ins.rows) == 0 {
			continue
		}
		rows := make([]interface{}, len(ins.rows))
		for i, r := range ins.rows {
			rows[i] = r
		}
		if _, err := s.db.Insert(ins.table).Rows(rows...).Executor().ExecContext(ctx); err != nil {
			return err
		}
	}
	return nil
}

// tagsLiteral renders a Postgres text[] literal. goqu doesn't know about
// array columns, so the value is passed pre-formatted.
func tagsLiteral(tags []string) string {
	out := "{"
	for i, t := range tags {
		if i > 0 {
			out += ","
		}
		out += `"` + t + `"`
	}
	return out + "}"
}
