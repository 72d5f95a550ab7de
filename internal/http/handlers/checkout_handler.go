package handlers

import (
	"github.com/gofiber/fiber/v2"

	"vellashop/internal/config"
	applog "vellashop/internal/log"
	"vellashop/internal/services"
)

type CheckoutHandler struct {
	Cart    *services.CartService
	Pricing config.Pricing
	Phone   string
}

func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_, _, vm := buildCartVM(h.Cart, h.Pricing, sid, currency(c))
	return render(c, "checkout", fiber.Map{
		"Cart": vm, "Errors": map[string]string{}, "Form": services.Contact{},
	})
}

// Place validates the customer fields and hands the order off to WhatsApp
// with a prefilled summary. Validation failures re-render the form and leave
// the cart untouched; the cart also survives the hand-off itself, since the
// order is confirmed manually on the other end.
func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cur := currency(c)

	lines := h.Cart.Lines(sid)
	if len(lines) == 0 {
		return c.Redirect("/cart")
	}

	contact := services.Contact{
		FirstName: c.FormValue("firstName"),
		LastName:  c.FormValue("lastName"),
		Address:   c.FormValue("address"),
		City:      c.FormValue("city"),
		Zip:       c.FormValue("zip"),
		Phone:     c.FormValue("phone"),
		Email:     c.FormValue("email"),
		Notes:     c.FormValue("notes"),
	}
	if errs := services.ValidateContact(contact); len(errs) > 0 {
		applog.Security(c, "validation.fail", map[string]any{"fields": len(errs)})
		_, _, vm := buildCartVM(h.Cart, h.Pricing, sid, cur)
		c.Status(fiber.StatusBadRequest)
		return render(c, "checkout", fiber.Map{
			"Cart": vm, "Errors": errs, "Form": contact, "Currency": cur,
		})
	}

	totals := services.ComputeTotals(lines, h.Pricing)
	checkout := services.NewCheckoutService(h.Phone, cur)
	message := checkout.OrderMessage(lines, totals, contact)

	applog.Audit(c, "order.handoff", map[string]any{
		"items": totals.ItemCount,
		"total": totals.TotalCents,
	})
	return c.Redirect(checkout.WhatsAppLink(message))
}
