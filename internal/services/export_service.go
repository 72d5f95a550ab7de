package services

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"vellashop/internal/domain"
)

// CSV exports carry a UTF-8 byte-order marker so spreadsheet apps pick up
// accented characters, and rely on encoding/csv for RFC 4180 quoting (fields
// with commas, quotes or newlines are wrapped, inner quotes doubled).

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CartCSV renders the cart as a table: one row per line item plus trailing
// summary rows for subtotal, discount, shipping and total.
func CartCSV(lines []domain.CartLine, totals domain.Totals) []byte {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"ID", "Nombre", "Marca", "Variante", "Precio Unitario", "Cantidad", "Subtotal"})
	for _, l := range lines {
		_ = w.Write([]string{
			strconv.Itoa(l.Product.ID),
			l.Product.Name,
			l.Product.Brand,
			VariantLabel(l.Variant),
			domain.FormatAmount(l.Product.PriceCents),
			strconv.Itoa(l.Quantity),
			domain.FormatAmount(l.LineTotalCents()),
		})
	}
	_ = w.Write([]string{"", "", "", "", "", "Subtotal", domain.FormatAmount(totals.SubtotalCents)})
	_ = w.Write([]string{"", "", "", "", "", "Descuento", domain.FormatAmount(totals.DiscountCents)})
	_ = w.Write([]string{"", "", "", "", "", "Envío", domain.FormatAmount(totals.ShippingCents)})
	_ = w.Write([]string{"", "", "", "", "", "Total", domain.FormatAmount(totals.TotalCents)})
	w.Flush()
	return buf.Bytes()
}

// CatalogCSV renders the whole catalog with the WooCommerce importer's
// column set, ready to feed its native product import.
func CatalogCSV(products []domain.Product) []byte {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{
		"ID", "Type", "SKU", "Name", "Published", "Is featured?", "Visibility in catalog",
		"Short description", "Description", "In stock?", "Stock", "Sale price", "Regular price",
		"Categories", "Images", "Attribute 1 name", "Attribute 1 value(s)", "Attribute 1 visible", "Attribute 1 global",
	})
	for _, p := range products {
		regular := p.RegularCents
		if regular == 0 {
			regular = p.PriceCents
		}
		_ = w.Write([]string{
			strconv.Itoa(p.ID),
			"simple",
			"VELLA-" + strconv.Itoa(p.ID),
			p.Name,
			"1",
			"0",
			"visible",
			"Vellaperfumeria - " + p.Brand,
			p.Description,
			"1",
			strconv.Itoa(p.Stock),
			domain.FormatAmount(p.PriceCents),
			domain.FormatAmount(regular),
			p.Category,
			p.ImageURL,
			"Marca",
			p.Brand,
			"1",
			"1",
		})
	}
	w.Flush()
	return buf.Bytes()
}
