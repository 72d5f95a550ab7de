package handlers

import (
	"github.com/jmoiron/sqlx"

	"vellashop/internal/config"
	"vellashop/internal/repos"
	"vellashop/internal/services"
)

type Deps struct {
	CatalogHandler  *CatalogHandler
	CartHandler     *CartHandler
	CheckoutHandler *CheckoutHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, catalog *repos.CatalogRepo) *Deps {
	cartRepo := repos.NewCartRepo(db)

	catalogSvc := services.NewCatalogService(catalog)
	cartSvc := services.NewCartService(cartRepo, catalog)

	return &Deps{
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc},
		CartHandler: &CartHandler{
			Cart:    cartSvc,
			Pricing: cfg.Pricing,
			BaseURL: cfg.BaseURL,
		},
		CheckoutHandler: &CheckoutHandler{
			Cart:    cartSvc,
			Pricing: cfg.Pricing,
			Phone:   cfg.WhatsAppPhone,
		},
	}
}
