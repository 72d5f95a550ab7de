package services_test

import (
	"net/url"
	"strings"
	"testing"

	"vellashop/internal/config"
	"vellashop/internal/domain"
	"vellashop/internal/services"
)

func validContact() services.Contact {
	return services.Contact{
		FirstName: "María",
		LastName:  "García",
		Address:   "Calle Mayor 1",
		City:      "Madrid",
		Zip:       "28001",
		Phone:     "+34 600 000 000",
	}
}

func TestValidateContactRequiredFields(t *testing.T) {
	errs := services.ValidateContact(services.Contact{})
	for _, field := range []string{"firstName", "lastName", "address", "city", "zip", "phone"} {
		if errs[field] == "" {
			t.Fatalf("want error for %s", field)
		}
	}
	// email is optional, must not be flagged when blank
	if errs["email"] != "" {
		t.Fatalf("blank email must not error: %q", errs["email"])
	}

	c := validContact()
	c.Email = "not-an-email"
	if errs := services.ValidateContact(c); errs["email"] == "" {
		t.Fatal("want error for malformed email")
	}

	if errs := services.ValidateContact(validContact()); len(errs) != 0 {
		t.Fatalf("valid contact must pass, got %v", errs)
	}
}

func TestOrderMessageIncludesDiscountedTotal(t *testing.T) {
	lines := []domain.CartLine{
		{ID: services.LineID(1, nil), Product: domain.Product{ID: 1, Name: "Perfume Divine", PriceCents: 2000}, Quantity: 2},
	}
	totals := services.ComputeTotals(lines, config.DefaultPricing())
	svc := services.NewCheckoutService("34661202616", "EUR")

	msg := svc.OrderMessage(lines, totals, validContact())
	if !strings.Contains(msg, "• [2] x Perfume Divine - 40.00 €") {
		t.Fatalf("line item missing:\n%s", msg)
	}
	if !strings.Contains(msg, "*Descuento (15%):* -6.00 €") {
		t.Fatalf("discount line missing:\n%s", msg)
	}
	if !strings.Contains(msg, "*Envío:* GRATIS") {
		t.Fatalf("free shipping line missing:\n%s", msg)
	}
	// the quoted total reflects the discount
	if !strings.Contains(msg, "*Total:* 34.00 €") {
		t.Fatalf("total must include the discount:\n%s", msg)
	}
	if !strings.Contains(msg, "María García") || !strings.Contains(msg, "CP: 28001") {
		t.Fatalf("customer block missing:\n%s", msg)
	}
	if strings.Contains(msg, "Notas") {
		t.Fatalf("notes block must be omitted when empty:\n%s", msg)
	}
}

func TestOrderMessageVariantAndNotes(t *testing.T) {
	lines := []domain.CartLine{
		{
			ID:       services.LineID(43123, map[string]string{"Color": "Negro"}),
			Product:  domain.Product{ID: 43123, Name: "Máscara THE ONE Pro", PriceCents: 1299},
			Variant:  map[string]string{"Color": "Negro"},
			Quantity: 1,
		},
	}
	totals := services.ComputeTotals(lines, config.DefaultPricing())
	c := validContact()
	c.Notes = "Entregar por la tarde"

	msg := services.NewCheckoutService("34661202616", "EUR").OrderMessage(lines, totals, c)
	if !strings.Contains(msg, "(Negro)") {
		t.Fatalf("variant label missing:\n%s", msg)
	}
	if !strings.Contains(msg, "*Notas:* Entregar por la tarde") {
		t.Fatalf("notes missing:\n%s", msg)
	}
	if !strings.Contains(msg, "*Envío:* 6.00 €") {
		t.Fatalf("shipping cost missing under threshold:\n%s", msg)
	}
}

func TestWhatsAppLink(t *testing.T) {
	svc := services.NewCheckoutService("34661202616", "EUR")
	link := svc.WhatsAppLink("hola mundo & más")

	if !strings.HasPrefix(link, "https://wa.me/34661202616?text=") {
		t.Fatalf("bad link prefix: %s", link)
	}
	u, err := url.Parse(link)
	if err != nil {
		t.Fatal(err)
	}
	if got := u.Query().Get("text"); got != "hola mundo & más" {
		t.Fatalf("message does not survive escaping: %q", got)
	}
}

func TestVariantLabelOrdering(t *testing.T) {
	label := services.VariantLabel(map[string]string{"Tono": "30ml", "Color": "Negro"})
	if label != "Negro / 30ml" {
		t.Fatalf("want attribute-name order, got %q", label)
	}
	if services.VariantLabel(nil) != "" {
		t.Fatal("nil variant must render empty")
	}
}
