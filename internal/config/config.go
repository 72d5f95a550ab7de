package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port          string
	DBDSN         string
	CatalogPath   string
	LogFile       string
	BaseURL       string
	WhatsAppPhone string

	Pricing Pricing
}

// Pricing holds the cart pricing settings. The defaults must be kept for
// compatibility with the storefront's published offers.
type Pricing struct {
	DiscountThresholdCents     int64 // cart-wide discount from this subtotal on
	DiscountRateBP             int64 // basis points, 1500 = 15%
	FreeShippingThresholdCents int64
	ShippingCostCents          int64
}

func Load() Config {
	cfg := Config{
		Port:          env("PORT", "8080"),
		DBDSN:         env("DB_DSN", "vellashop.db"), // sqlite file in project root
		CatalogPath:   env("CATALOG_PATH", ""),       // empty = built-in seed catalog
		LogFile:       env("LOG_FILE", "./vellashop.log"),
		BaseURL:       env("BASE_URL", "http://localhost:8080"),
		WhatsAppPhone: env("WHATSAPP_PHONE", "34661202616"),
		Pricing:       PricingFromEnv(),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s CATALOG_PATH=%s BASE_URL=%s", cfg.Port, cfg.DBDSN, cfg.CatalogPath, cfg.BaseURL)
	return cfg
}

// DefaultPricing returns the published offer values: 15% off and free
// shipping from 35.00, 6.00 flat shipping below that.
func DefaultPricing() Pricing {
	return Pricing{
		DiscountThresholdCents:     3500,
		DiscountRateBP:             1500,
		FreeShippingThresholdCents: 3500,
		ShippingCostCents:          600,
	}
}

func PricingFromEnv() Pricing {
	def := DefaultPricing()
	return Pricing{
		DiscountThresholdCents:     envInt("DISCOUNT_THRESHOLD_CENTS", def.DiscountThresholdCents),
		DiscountRateBP:             envInt("DISCOUNT_RATE_BP", def.DiscountRateBP),
		FreeShippingThresholdCents: envInt("FREE_SHIPPING_THRESHOLD_CENTS", def.FreeShippingThresholdCents),
		ShippingCostCents:          envInt("SHIPPING_COST_CENTS", def.ShippingCostCents),
	}
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			return n
		}
		log.Printf("[config] ignoring invalid %s=%q", key, v)
	}
	return def
}
