package entities

// Facet is a named filter dimension scoped to one category, e.g. "Skin Type"
// within Skincare. Facets are displayed in SortOrder ascending.
type Facet struct {
	ID         string `json:"id" db:"id"`
	CategoryID string `json:"category_id" db:"category_id"`
	Name       string `json:"name" db:"name"`
	Slug       string `json:"slug" db:"slug"`
	SortOrder  int    `json:"sort_order" db:"sort_order"`
}

// FacetOption is one selectable value within a facet. Value is the URL-safe
// derived form of Label (see utils.Slugify).
type FacetOption struct {
	ID        string `json:"id" db:"id"`
	FacetID   string `json:"facet_id" db:"facet_id"`
	Label     string `json:"label" db:"label"`
	Value     string `json:"value" db:"value"`
	SortOrder int    `json:"sort_order" db:"sort_order"`
}

// ProductFacetLink is one row of the product/facet-option join table. A
// product may carry several options of the same facet (OR semantics within a
// facet) and options of multiple facets at once (AND semantics across facets).
type ProductFacetLink struct {
	ProductID     string `json:"product_id" db:"product_id"`
	FacetOptionID string `json:"facet_option_id" db:"facet_option_id"`
}

// OptionWithCount is a facet option annotated with the number of products
// matching it given the selections made in the other facets.
type OptionWithCount struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FacetWithCounts is the facet-count endpoint's unit of output
type FacetWithCounts struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Slug    string            `json:"slug"`
	Options []OptionWithCount `json:"options"`
}
