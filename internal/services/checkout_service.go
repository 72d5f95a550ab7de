package services

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"vellashop/internal/domain"
	"vellashop/internal/validate"
)

// Contact carries the customer-entered checkout fields.
type Contact struct {
	FirstName string
	LastName  string
	Address   string
	City      string
	Zip       string
	Phone     string
	Email     string
	Notes     string
}

// ValidateContact returns field -> message for every invalid required field.
// Validation never touches the cart; the caller re-renders the form with the
// messages and the customer keeps editing.
func ValidateContact(c Contact) map[string]string {
	errs := map[string]string{}
	if _, ok := validate.Name(c.FirstName); !ok {
		errs["firstName"] = "El nombre es obligatorio"
	}
	if _, ok := validate.Name(c.LastName); !ok {
		errs["lastName"] = "Los apellidos son obligatorios"
	}
	if _, ok := validate.Required(c.Address, 120); !ok {
		errs["address"] = "La dirección es obligatoria"
	}
	if _, ok := validate.Required(c.City, 60); !ok {
		errs["city"] = "La ciudad es obligatoria"
	}
	if _, ok := validate.Zip(c.Zip); !ok {
		errs["zip"] = "El código postal es obligatorio"
	}
	if _, ok := validate.Phone(c.Phone); !ok {
		errs["phone"] = "El teléfono es obligatorio"
	}
	if c.Email != "" {
		if _, ok := validate.Email(c.Email); !ok {
			errs["email"] = "El email no es válido"
		}
	}
	return errs
}

// CheckoutService renders the order hand-off for the external messaging
// channel. There is no payment step: the storefront opens a prefilled
// WhatsApp conversation and the order is handled personally from there.
type CheckoutService struct {
	Phone    string // destination number in international format, digits only
	Currency string
}

func NewCheckoutService(phone, currency string) *CheckoutService {
	return &CheckoutService{Phone: phone, Currency: currency}
}

// VariantLabel renders a variant selection for display ("Coral" or
// "Negro / 30ml"), values ordered by attribute name.
func VariantLabel(variant map[string]string) string {
	if len(variant) == 0 {
		return ""
	}
	keys := make([]string, 0, len(variant))
	for k := range variant {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	vals := make([]string, 0, len(keys))
	for _, k := range keys {
		vals = append(vals, variant[k])
	}
	return strings.Join(vals, " / ")
}

// OrderMessage builds the human-readable order summary passed to the
// messaging deep link. Totals come from the pricing engine at the moment of
// hand-off.
func (s *CheckoutService) OrderMessage(lines []domain.CartLine, totals domain.Totals, contact Contact) string {
	var b strings.Builder
	b.WriteString("*Nuevo pedido en Vellaperfumeria:* 🌸\n\n")
	for _, l := range lines {
		fmt.Fprintf(&b, "• [%d] x %s", l.Quantity, l.Product.Name)
		if label := VariantLabel(l.Variant); label != "" {
			fmt.Fprintf(&b, " (%s)", label)
		}
		fmt.Fprintf(&b, " - %s\n", domain.FormatPrice(l.LineTotalCents(), s.Currency))
	}
	fmt.Fprintf(&b, "\n*Subtotal:* %s", domain.FormatPrice(totals.SubtotalCents, s.Currency))
	if totals.DiscountCents > 0 {
		fmt.Fprintf(&b, "\n*Descuento (15%%):* -%s", domain.FormatPrice(totals.DiscountCents, s.Currency))
	}
	if totals.ShippingCents == 0 {
		b.WriteString("\n*Envío:* GRATIS")
	} else {
		fmt.Fprintf(&b, "\n*Envío:* %s", domain.FormatPrice(totals.ShippingCents, s.Currency))
	}
	fmt.Fprintf(&b, "\n*Total:* %s\n", domain.FormatPrice(totals.TotalCents, s.Currency))
	b.WriteString("\n--------------------------------\n")
	b.WriteString("*Datos del Cliente:*\n")
	fmt.Fprintf(&b, "%s %s\n%s, %s\nCP: %s\nTel: %s\n", contact.FirstName, contact.LastName, contact.Address, contact.City, contact.Zip, contact.Phone)
	if contact.Notes != "" {
		fmt.Fprintf(&b, "\n📝 *Notas:* %s", contact.Notes)
	}
	return b.String()
}

// WhatsAppLink wraps a message in a wa.me deep link.
func (s *CheckoutService) WhatsAppLink(message string) string {
	return "https://wa.me/" + s.Phone + "?text=" + url.QueryEscape(message)
}
