package repos

import (
	"strconv"

	"vellashop/internal/domain"
)

// seedProducts is the built-in demo catalog, a trimmed version of the Vella
// perfumery assortment. Prices are authored in EUR cents.
func seedProducts() []domain.Product {
	img := func(id int) string {
		s := strconv.Itoa(id)
		return "https://media-cdn.oriflame.com/productImage?externalMediaId=product-management-media%2FProducts%2F" +
			s + "%2F" + s + "_1.png"
	}
	return []domain.Product{
		{
			ID: 42810, Name: "Eau de Toilette Eclat Homme", Brand: "Eclat",
			PriceCents: 2499, RegularCents: 4200, ImageURL: img(42810),
			Description: "El equilibrio perfecto entre la elegancia francesa y el espíritu moderno. Notas de cidra, cilantro y cuero.",
			Stock:       50, Category: "perfume", BeautyPoints: 12,
		},
		{
			ID: 38531, Name: "Set Giordani Gold Essenza: Parfum + Crema", Brand: "Giordani Gold",
			PriceCents: 3999, RegularCents: 6500, ImageURL: img(38531),
			Description: "Set de lujo con el perfume de flor de azahar y una crema corporal satinada.",
			Stock:       20, Category: "perfume", Tag: "SET", BeautyPoints: 20,
		},
		{
			ID: 42503, Name: "Set Amber Elixir: Perfume + Mist Corporal", Brand: "Amber Elixir",
			PriceCents: 2999, RegularCents: 4800, ImageURL: img(42503),
			Description: "Cálido y misterioso. La profundidad del ámbar con la ligereza de un mist corporal.",
			Stock:       15, Category: "perfume", Tag: "SET", BeautyPoints: 15,
		},
		{
			ID: 42502, Name: "Eau de Parfum Amber Elixir", Brand: "Amber Elixir",
			PriceCents: 1999, RegularCents: 3600, ImageURL: img(42502),
			Description: "La fragancia clásica de ámbar y mandarina en formato individual.",
			Stock:       30, Category: "perfume", BeautyPoints: 10,
		},
		{
			ID: 42726, Name: "Set Love Potion Secrets: EDP + Crema", Brand: "Love Potion",
			PriceCents: 3299, RegularCents: 5200, ImageURL: img(42726),
			Description: "Notas de chocolate blanco y fresas para una seducción irresistible.",
			Stock:       25, Category: "perfume", Tag: "SET", BeautyPoints: 16,
		},
		{
			ID: 35649, Name: "Eau de Parfum All or Nothing", Brand: "All or Nothing",
			PriceCents: 4500, RegularCents: 7500, ImageURL: img(35649),
			Description: "Nuestra fragancia más lujosa. Una experiencia olfativa única que se adapta a tu piel.",
			Stock:       10, Category: "perfume", Tag: "BESTSELLER", BeautyPoints: 22, ShippingSaver: true,
		},
		{
			ID: 35958, Name: "Body Mist Fragance Mist Flor de Cerezo", Brand: "Vella Body",
			PriceCents: 899, RegularCents: 1500, ImageURL: img(35958),
			Description: "Ligereza y frescura en cada pulverización para una piel suave y radiante.",
			Stock:       60, Category: "personal-care", BeautyPoints: 4,
		},
		{
			ID: 35959, Name: `Crema Perfumada Corporal "Oro" 250ml`, Brand: "Vella Body",
			PriceCents: 1099, RegularCents: 1800, ImageURL: img(35959),
			Description: "Crema corporal perfumada de absorción rápida, con un sutil acabado dorado.",
			Stock:       45, Category: "personal-care", BeautyPoints: 5,
		},
		{
			ID: 43123, Name: "Máscara THE ONE Pro Volumen 5-en-1", Brand: "THE ONE",
			PriceCents: 1299, RegularCents: 2200, ImageURL: img(43123),
			Description: "Resultados profesionales con la tecnología de vanguardia sueca.",
			Stock:       100, Category: "makeup", BeautyPoints: 6,
			Variants: map[string][]domain.VariantOption{
				"Color": {
					{Value: "Negro", ColorCode: "#000000"},
					{Value: "Marrón", ColorCode: "#5b3a29"},
				},
			},
		},
		{
			ID: 38743, Name: "Labial OnColour Vibrante", Brand: "OnColour",
			PriceCents: 599, RegularCents: 1200, ImageURL: img(38743),
			Description: "Color intenso de larga duración con acabado cremoso.",
			Stock:       80, Category: "makeup", BeautyPoints: 3,
			Variants: map[string][]domain.VariantOption{
				"Tono": {
					{Value: "Coral", ColorCode: "#ff7f50"},
					{Value: "Rojo Clásico", ColorCode: "#c0392b"},
					{Value: "Nude", ColorCode: "#d2a679"},
				},
			},
		},
		{
			ID: 41005, Name: "Set Especial Regalo Vol. 5", Brand: "Possess",
			PriceCents: 1899, RegularCents: 3000, ImageURL: img(42501),
			Description: "Una combinación curada de fragancia y cuidado corporal para una experiencia completa.",
			Stock:       20, Category: "perfume", Tag: "SET", BeautyPoints: 9,
		},
		{
			ID: 41006, Name: "Set Especial Regalo Vol. 6", Brand: "Divine",
			PriceCents: 1999, RegularCents: 3100, ImageURL: img(42502),
			Description: "Una combinación curada de fragancia y cuidado corporal para una experiencia completa.",
			Stock:       20, Category: "perfume", Tag: "SET", BeautyPoints: 9,
		},
		{
			ID: 44110, Name: "Champú Reparador HairX Advanced", Brand: "HairX",
			PriceCents: 749, RegularCents: 1300, ImageURL: img(44110),
			Description: "Repara el cabello dañado desde la raíz hasta las puntas.",
			Stock:       70, Category: "hair", BeautyPoints: 3, ShippingSaver: true,
		},
		{
			ID: 44250, Name: "Crema Facial Día Optimals Hydra", Brand: "Optimals",
			PriceCents: 1599, RegularCents: 2600, ImageURL: img(44250),
			Description: "Hidratación profunda durante 24 horas con extractos botánicos suecos.",
			Stock:       40, Category: "skincare", BeautyPoints: 8,
		},
	}
}
