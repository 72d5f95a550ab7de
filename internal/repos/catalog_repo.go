package repos

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"vellashop/internal/domain"
)

// CatalogRepo holds the static product list. It is loaded once at startup
// and never mutated afterwards, so reads need no locking.
type CatalogRepo struct {
	products []domain.Product
	byID     map[int]domain.Product
}

// NewCatalogRepo builds a catalog from an explicit product list.
func NewCatalogRepo(products []domain.Product) *CatalogRepo {
	byID := make(map[int]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &CatalogRepo{products: products, byID: byID}
}

// LoadCatalog reads products from a YAML file, falling back to the built-in
// seed when path is empty.
func LoadCatalog(path string) (*CatalogRepo, error) {
	if path == "" {
		return NewCatalogRepo(seedProducts()), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var doc struct {
		Products []domain.Product `yaml:"products"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(doc.Products) == 0 {
		return nil, fmt.Errorf("catalog %s contains no products", path)
	}
	return NewCatalogRepo(doc.Products), nil
}

// Get resolves a product by id; ok is false for ids absent from the catalog.
func (r *CatalogRepo) Get(id int) (domain.Product, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// All returns the catalog in authored order. Callers must not mutate the
// returned slice.
func (r *CatalogRepo) All() []domain.Product {
	return r.products
}

// Filter returns products matching the predicate, in authored order.
func (r *CatalogRepo) Filter(keep func(domain.Product) bool) []domain.Product {
	var out []domain.Product
	for _, p := range r.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// ByCategory lists products in a category; "all" returns everything.
func (r *CatalogRepo) ByCategory(category string) []domain.Product {
	if category == "" || category == "all" {
		out := make([]domain.Product, len(r.products))
		copy(out, r.products)
		return out
	}
	return r.Filter(func(p domain.Product) bool { return p.Category == category })
}

// OnSale lists products with a reference price above the current price.
func (r *CatalogRepo) OnSale() []domain.Product {
	return r.Filter(domain.Product.OnSale)
}

// SortProducts orders a product slice in place by the given key:
// "price", "price-desc" or "name".
func SortProducts(products []domain.Product, order string) {
	switch order {
	case "price":
		sort.SliceStable(products, func(i, j int) bool { return products[i].PriceCents < products[j].PriceCents })
	case "price-desc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].PriceCents > products[j].PriceCents })
	case "name":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	}
}
