package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// Pick up the token the CSRF middleware put into Locals
	if tok, _ := c.Locals("CSRFToken").(string); tok != "" {
		data["CSRFToken"] = tok
	}
	if _, ok := data["Currency"]; !ok {
		data["Currency"] = currency(c)
	}
	if n, ok := c.Locals("CartCount").(int); ok {
		data["CartCount"] = n
	}
	return c.Render(tmpl, data)
}

// ensureSID returns the storefront session id, minting a cookie on first
// visit. The cart is keyed by this id.
func ensureSID(c *fiber.Ctx) string {
	// Clone: fasthttp reuses the request buffer backing c.Cookies, and the
	// cart service keeps this id as a map key beyond the request's lifetime.
	sid := strings.Clone(c.Cookies("sid"))
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return sid
}

// currency reads the display currency cookie; formatting is cosmetic only
// and never changes the computation currency.
func currency(c *fiber.Ctx) string {
	if cur := c.Cookies("cur"); cur == "USD" {
		return "USD"
	}
	return "EUR"
}
