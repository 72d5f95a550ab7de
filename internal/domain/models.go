package domain

// VariantOption is one selectable value for a product attribute (e.g. shade).
type VariantOption struct {
	Value     string `yaml:"value" json:"value"`
	ColorCode string `yaml:"colorCode,omitempty" json:"colorCode,omitempty"`
	ImageURL  string `yaml:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}

type Product struct {
	ID            int                        `yaml:"id" json:"id"`
	Name          string                     `yaml:"name" json:"name"`
	Brand         string                     `yaml:"brand" json:"brand"`
	PriceCents    int64                      `yaml:"priceCents" json:"priceCents"`
	RegularCents  int64                      `yaml:"regularCents,omitempty" json:"regularCents,omitempty"`
	ImageURL      string                     `yaml:"imageUrl" json:"imageUrl"`
	Description   string                     `yaml:"description" json:"description"`
	Stock         int                        `yaml:"stock" json:"stock"`
	Category      string                     `yaml:"category" json:"category"` // perfume | hair | makeup | skincare | personal-care | men | wellness | accessories
	Tag           string                     `yaml:"tag,omitempty" json:"tag,omitempty"`
	BeautyPoints  int                        `yaml:"beautyPoints,omitempty" json:"beautyPoints,omitempty"`
	ShippingSaver bool                       `yaml:"shippingSaver,omitempty" json:"shippingSaver,omitempty"`
	Variants      map[string][]VariantOption `yaml:"variants,omitempty" json:"variants,omitempty"`
}

// OnSale reports whether the product has a pre-discount reference price above
// its current price.
func (p Product) OnSale() bool {
	return p.RegularCents > p.PriceCents
}

// CartLine is one cart entry: a catalog product plus a chosen variant and a
// quantity. ID is the composite line identifier derived from the product id
// and the canonical variant serialization.
type CartLine struct {
	ID       string            `json:"id"`
	Product  Product           `json:"product"`
	Quantity int               `json:"quantity"`
	Variant  map[string]string `json:"selectedVariant,omitempty"`
}

// LineTotalCents is the line subtotal (unit price x quantity).
func (l CartLine) LineTotalCents() int64 {
	return l.Product.PriceCents * int64(l.Quantity)
}

// SnapshotLine is the minimized persisted/shared form of a cart line: the
// product is referenced by id only and re-resolved from the catalog on load.
type SnapshotLine struct {
	ID        string            `json:"id"`
	ProductID int               `json:"productId"`
	Quantity  int               `json:"quantity"`
	Variant   map[string]string `json:"selectedVariant,omitempty"`
}

// Totals is a pure projection of cart contents; recomputed on every read,
// never stored.
type Totals struct {
	SubtotalCents        int64
	DiscountCents        int64
	ShippingCents        int64
	TotalCents           int64
	LoyaltyPoints        int
	FreeShippingGapCents int64 // remaining spend for free shipping, saturates at 0
	HasShippingSaver     bool
	ItemCount            int
}
