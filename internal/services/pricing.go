package services

import (
	"vellashop/internal/config"
	"vellashop/internal/domain"
)

// ComputeTotals derives cart totals from the current lines and the pricing
// settings. It is pure: totals are recomputed on every read and never stored.
//
// The discount is all-or-nothing: reaching the threshold discounts the whole
// subtotal, not just the excess. Shipping is waived when any line carries a
// shipping-saver product or the subtotal reaches the free-shipping threshold.
func ComputeTotals(lines []domain.CartLine, cfg config.Pricing) domain.Totals {
	var t domain.Totals
	for _, l := range lines {
		t.SubtotalCents += l.LineTotalCents()
		t.LoyaltyPoints += l.Product.BeautyPoints * l.Quantity
		t.ItemCount += l.Quantity
		if l.Product.ShippingSaver {
			t.HasShippingSaver = true
		}
	}

	if t.SubtotalCents >= cfg.DiscountThresholdCents {
		// half-up rounding to whole cents
		t.DiscountCents = (t.SubtotalCents*cfg.DiscountRateBP + 5000) / 10000
	}

	if !t.HasShippingSaver && t.SubtotalCents < cfg.FreeShippingThresholdCents {
		t.ShippingCents = cfg.ShippingCostCents
	}

	t.TotalCents = t.SubtotalCents - t.DiscountCents + t.ShippingCents

	if gap := cfg.FreeShippingThresholdCents - t.SubtotalCents; gap > 0 {
		t.FreeShippingGapCents = gap
	}
	return t
}
