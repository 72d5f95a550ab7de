package services

import (
	"vellashop/internal/domain"
	"vellashop/internal/repos"
)

type CatalogService struct {
	Repo *repos.CatalogRepo
}

func NewCatalogService(repo *repos.CatalogRepo) *CatalogService {
	return &CatalogService{Repo: repo}
}

func (s *CatalogService) Get(id int) (domain.Product, bool) {
	return s.Repo.Get(id)
}

func (s *CatalogService) All() []domain.Product {
	return s.Repo.All()
}

// Featured picks the storefront's home-page selection: tagged products first,
// topped up with the head of the catalog.
func (s *CatalogService) Featured(limit int) []domain.Product {
	out := s.Repo.Filter(func(p domain.Product) bool { return p.Tag != "" })
	if len(out) < limit {
		for _, p := range s.Repo.All() {
			if p.Tag == "" {
				out = append(out, p)
			}
			if len(out) >= limit {
				break
			}
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// List filters by category ("all" for everything) and sorts by the given
// order key.
func (s *CatalogService) List(category, order string) []domain.Product {
	products := s.Repo.ByCategory(category)
	repos.SortProducts(products, order)
	return products
}

// GiftSets lists the curated SET-tagged products for the gift page.
func (s *CatalogService) GiftSets() []domain.Product {
	return s.Repo.Filter(func(p domain.Product) bool { return p.Tag == "SET" })
}

// Ofertas lists discounted products (reference price above current price).
func (s *CatalogService) Ofertas() []domain.Product {
	return s.Repo.OnSale()
}
