package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"vellashop/internal/config"
	"vellashop/internal/http/handlers"
	applog "vellashop/internal/log"
	"vellashop/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	catalog, err := repos.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[catalog] %d products loaded", len(catalog.All()))

	// Templates & app
	engine := html.New("./web/templates", ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Hemos tenido un problema técnico. Vuelve a intentarlo.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Hemos tenido un problema técnico. Vuelve a intentarlo.")
			}
			return nil
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "La comprobación de seguridad ha fallado. Recarga la página."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	deps := handlers.NewDeps(db, cfg, catalog)

	// Shared-cart links take precedence over the persisted snapshot and are
	// stripped from the URL once consumed.
	app.Use(deps.CartHandler.ConsumeSharedToken)
	app.Use(deps.CartHandler.InjectCartCount)

	// ---------- Static assets ----------
	app.Static("/static", "./web/static")

	// Public pages
	app.Get("/", deps.CatalogHandler.Home)
	app.Get("/shop", deps.CatalogHandler.Shop)
	app.Get("/product/:id", deps.CatalogHandler.Detail)
	app.Get("/ofertas", deps.CatalogHandler.Ofertas)
	app.Get("/regalos", deps.CatalogHandler.Regalos)
	app.Get("/catalogo", deps.CatalogHandler.Catalogo)
	app.Get("/asistente", func(c *fiber.Ctx) error {
		return c.Render("asistente", fiber.Map{"CartCount": c.Locals("CartCount")})
	})
	app.Post("/currency", deps.CatalogHandler.SetCurrency)

	// Catalog export
	app.Get("/catalogo.csv", deps.CatalogHandler.ExportCSV)

	// Cart
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/update", deps.CartHandler.Update)
	app.Post("/cart/remove", deps.CartHandler.Remove)
	app.Post("/cart/clear", deps.CartHandler.Clear)
	app.Get("/cart/share", deps.CartHandler.Share)
	app.Get("/cart/export.csv", deps.CartHandler.ExportCSV)

	// Checkout
	app.Get("/checkout", deps.CheckoutHandler.Checkout)
	app.Post("/checkout", deps.CheckoutHandler.Place)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Página no encontrada"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
