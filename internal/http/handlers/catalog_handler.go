package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"vellashop/internal/domain"
	applog "vellashop/internal/log"
	"vellashop/internal/services"
	"vellashop/internal/validate"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

type productVM struct {
	ID           int
	Name         string
	Brand        string
	Price        string
	RegularPrice string
	OnSale       bool
	ImageURL     string
	Tag          string
	BeautyPoints int
	Variants     map[string][]domain.VariantOption
	Description  string
}

func toProductVM(p domain.Product, cur string) productVM {
	vm := productVM{
		ID:           p.ID,
		Name:         p.Name,
		Brand:        p.Brand,
		Price:        domain.FormatPrice(p.PriceCents, cur),
		OnSale:       p.OnSale(),
		ImageURL:     p.ImageURL,
		Tag:          p.Tag,
		BeautyPoints: p.BeautyPoints,
		Variants:     p.Variants,
		Description:  p.Description,
	}
	if p.OnSale() {
		vm.RegularPrice = domain.FormatPrice(p.RegularCents, cur)
	}
	return vm
}

func toProductVMs(products []domain.Product, cur string) []productVM {
	out := make([]productVM, 0, len(products))
	for _, p := range products {
		out = append(out, toProductVM(p, cur))
	}
	return out
}

func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	cur := currency(c)
	return render(c, "home", fiber.Map{
		"Featured": toProductVMs(h.Catalog.Featured(8), cur),
	})
}

func (h *CatalogHandler) Shop(c *fiber.Ctx) error {
	category := c.Query("category", "all")
	order := c.Query("sort")
	cur := currency(c)
	return render(c, "shop", fiber.Map{
		"Category": category,
		"Sort":     order,
		"Products": toProductVMs(h.Catalog.List(category, order), cur),
	})
}

func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Este artículo ya no está disponible"})
	}
	p, ok := h.Catalog.Get(id)
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Este artículo ya no está disponible"})
	}
	return render(c, "product", fiber.Map{"P": toProductVM(p, currency(c))})
}

func (h *CatalogHandler) Ofertas(c *fiber.Ctx) error {
	return render(c, "ofertas", fiber.Map{
		"Products": toProductVMs(h.Catalog.Ofertas(), currency(c)),
	})
}

// Regalos shows the curated gift sets.
func (h *CatalogHandler) Regalos(c *fiber.Ctx) error {
	return render(c, "regalos", fiber.Map{
		"Products": toProductVMs(h.Catalog.GiftSets(), currency(c)),
	})
}

// Catalogo hosts the downloadable product catalog.
func (h *CatalogHandler) Catalogo(c *fiber.Ctx) error {
	return render(c, "catalogo", fiber.Map{
		"Count": len(h.Catalog.All()),
	})
}

// ExportCSV streams the full catalog in the WooCommerce import format.
func (h *CatalogHandler) ExportCSV(c *fiber.Ctx) error {
	body := services.CatalogCSV(h.Catalog.All())
	name := "CATALOGO_VELLA_IMPORT_" + strconv.FormatInt(time.Now().Unix(), 10) + ".csv"
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	applog.Info(c, "catalog.export", map[string]any{"products": len(h.Catalog.All())})
	return c.Send(body)
}

// SetCurrency switches the cosmetic display currency and bounces back.
func (h *CatalogHandler) SetCurrency(c *fiber.Ctx) error {
	cur := c.FormValue("currency")
	if cur != "EUR" && cur != "USD" {
		cur = "EUR"
	}
	c.Cookie(&fiber.Cookie{Name: "cur", Value: cur, Path: "/"})
	back := c.FormValue("back", "/")
	return c.Redirect(back)
}
