package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"vellashop/internal/config"
	"vellashop/internal/domain"
	applog "vellashop/internal/log"
	"vellashop/internal/services"
	"vellashop/internal/validate"
)

type CartHandler struct {
	Cart    *services.CartService
	Pricing config.Pricing
	BaseURL string
}

type cartLineVM struct {
	ID        string
	Name      string
	Brand     string
	ImageURL  string
	Variant   string
	Quantity  int
	UnitPrice string
	LineTotal string
}

type cartVM struct {
	Lines           []cartLineVM
	ItemCount       int
	Subtotal        string
	Discount        string
	HasDiscount     bool
	Shipping        string
	FreeShipping    bool
	FreeShippingGap string
	NearFreeShip    bool
	Total           string
	LoyaltyPoints   int
}

func buildCartVM(cart *services.CartService, pricing config.Pricing, sessionID, cur string) ([]domain.CartLine, domain.Totals, cartVM) {
	lines := cart.Lines(sessionID)
	totals := services.ComputeTotals(lines, pricing)

	vm := cartVM{
		ItemCount:     totals.ItemCount,
		Subtotal:      domain.FormatPrice(totals.SubtotalCents, cur),
		Discount:      domain.FormatPrice(totals.DiscountCents, cur),
		HasDiscount:   totals.DiscountCents > 0,
		Shipping:      domain.FormatPrice(totals.ShippingCents, cur),
		FreeShipping:  totals.ShippingCents == 0,
		Total:         domain.FormatPrice(totals.TotalCents, cur),
		LoyaltyPoints: totals.LoyaltyPoints,
	}
	if totals.FreeShippingGapCents > 0 {
		vm.NearFreeShip = true
		vm.FreeShippingGap = domain.FormatPrice(totals.FreeShippingGapCents, cur)
	}
	for _, l := range lines {
		vm.Lines = append(vm.Lines, cartLineVM{
			ID:        l.ID,
			Name:      l.Product.Name,
			Brand:     l.Product.Brand,
			ImageURL:  l.Product.ImageURL,
			Variant:   services.VariantLabel(l.Variant),
			Quantity:  l.Quantity,
			UnitPrice: domain.FormatPrice(l.Product.PriceCents, cur),
			LineTotal: domain.FormatPrice(l.LineTotalCents(), cur),
		})
	}
	return lines, totals, vm
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_, _, vm := buildCartVM(h.Cart, h.Pricing, sid, currency(c))
	return render(c, "cart", fiber.Map{"Cart": vm})
}

// Add puts a product into the cart. Variant selections arrive as
// variant_<attribute> form fields; only attributes the product actually
// declares are honored.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ProductID(c.FormValue("productId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	qty := validate.Qty(c.FormValue("qty"))

	variant := h.variantSelection(c, productID)
	if err := h.Cart.Add(sid, productID, variant, qty); err != nil {
		applog.Security(c, "cart.add.fail", map[string]any{"product": productID, "error": err.Error()})
		return c.Status(fiber.StatusBadRequest).SendString("unknown product")
	}
	applog.Info(c, "cart.add", map[string]any{"product": productID, "qty": qty})
	return c.Redirect("/cart")
}

func (h *CartHandler) variantSelection(c *fiber.Ctx, productID int) map[string]string {
	p, ok := h.Cart.Catalog().Get(productID)
	if !ok || len(p.Variants) == 0 {
		return nil
	}
	variant := map[string]string{}
	for attr := range p.Variants {
		if v := c.FormValue("variant_" + attr); v != "" {
			variant[attr] = v
		}
	}
	if len(variant) == 0 {
		return nil
	}
	return variant
}

// Update sets a line's quantity; zero or below removes the line.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	sid := ensureSID(c)
	lineID := c.FormValue("lineId")
	if lineID == "" {
		return c.Status(fiber.StatusBadRequest).SendString("missing lineId")
	}
	h.Cart.UpdateQuantity(sid, lineID, validate.QtyUpdate(c.FormValue("qty")))
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	lineID := c.FormValue("lineId")
	if lineID == "" {
		return c.Status(fiber.StatusBadRequest).SendString("missing lineId")
	}
	h.Cart.Remove(sid, lineID)
	return c.Redirect("/cart")
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	sid := ensureSID(c)
	h.Cart.Clear(sid)
	return c.Redirect("/cart")
}

// Share returns a URL that reproduces the current cart on another device.
func (h *CartHandler) Share(c *fiber.Ctx) error {
	sid := ensureSID(c)
	lines := h.Cart.Lines(sid)
	if len(lines) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cart is empty"})
	}
	token := services.EncodeCartToken(lines)
	return c.JSON(fiber.Map{"url": services.ShareURL(h.BaseURL, token)})
}

// ExportCSV streams the cart as a spreadsheet-friendly table.
func (h *CartHandler) ExportCSV(c *fiber.Ctx) error {
	sid := ensureSID(c)
	lines, totals, _ := buildCartVM(h.Cart, h.Pricing, sid, currency(c))
	body := services.CartCSV(lines, totals)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="carrito_vella.csv"`)
	return c.Send(body)
}

// ConsumeSharedToken is app-level middleware: a ?cart= token on any GET page
// request replaces the session cart (taking precedence over the persisted
// snapshot) and the request is redirected to the clean URL so the token is
// never re-processed. A malformed or stale token is logged and ignored.
func (h *CartHandler) ConsumeSharedToken(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodGet {
		return c.Next()
	}
	token := c.Query("cart")
	if token == "" {
		return c.Next()
	}
	sid := ensureSID(c)
	if snapshot, err := services.DecodeCartToken(token); err != nil {
		applog.Security(c, "cart.share.decode.fail", map[string]any{"error": err.Error()})
	} else if restored := h.Cart.Restore(sid, snapshot); restored > 0 {
		applog.Info(c, "cart.share.import", map[string]any{"lines": restored})
	} else {
		applog.Info(c, "cart.share.empty", nil)
	}
	// strip only the token; filters and sort on the page survive
	args := c.Request().URI().QueryArgs()
	args.Del("cart")
	target := c.Path()
	if qs := args.String(); qs != "" {
		target += "?" + qs
	}
	return c.Redirect(target)
}

// InjectCartCount puts the session's cart unit count into Locals so every
// rendered page can show the header badge.
func (h *CartHandler) InjectCartCount(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Path(), "/static/") {
		return c.Next()
	}
	c.Locals("CartCount", h.Cart.ItemCount(ensureSID(c)))
	return c.Next()
}
