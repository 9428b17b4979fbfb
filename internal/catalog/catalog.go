// Package catalog holds the storefront's product list. Products are compiled
// into the binary and never read from or written to the database.
package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"github.com/flicky/carcare-storefront/internal/model"
)

var defaultFeatures = []string{
	"Professional grade formula",
	"Long-lasting protection",
	"Safe for all surfaces",
	"Easy application",
	"Great value",
}

var defaultSpecifications = map[string]string{
	"Volume":      "16 fl oz (473ml)",
	"Type":        "Professional Grade",
	"Application": "Spray & Wipe",
	"Coverage":    "Up to 10 vehicles",
	"Drying Time": "5-10 minutes",
}

const defaultStock = 50

var products = []model.Product{
	{
		ID:          uuid.MustParse("550e8400-e29b-41d4-a716-446655440001"),
		ShortID:     "1",
		Name:        "Nodi Shine Dashboard Shiner",
		Description: "Professional dashboard and interior shiner that gives your car's dashboard a brilliant, long-lasting shine. Protects against UV damage and dust accumulation.",
		Price:       decimal.NewFromInt(900),
		Category:    model.CategoryShiner,
		StockCount:  50,
		ImageURL:    "/products/nodi-shine-dashboard.png",
		Images: []string{
			"/products/nodi-shine-dashboard.png",
			"/products/nodi-shine-dashboard-2.jpg",
			"/products/nodi-shine-dashboard-3.png",
			"/products/nodi-shine-dashboard-4.jpg",
		},
		Rating:  4.8,
		Reviews: 124,
	},
	{
		ID:            uuid.MustParse("550e8400-e29b-41d4-a716-446655440004"),
		ShortID:       "4",
		Name:          "Star Gold Complete Car Care Kit",
		Description:   "Complete professional car care package including Dashboard & Vinyl Leather Shiner, Body Glass Cleaner, and Stain Remover. Everything you need for comprehensive car detailing.",
		Price:         decimal.NewFromInt(2499),
		OriginalPrice: decimalPtr(2750),
		Category:      model.CategoryCombo,
		StockCount:    25,
		ImageURL:      "/products/combo5.png",
		Images: []string{
			"/products/combo5.png",
			"/products/combo3.jpg",
			"/products/star-gold-combo.jpg",
			"/products/star-gold-combo-2.jpg",
		},
		Rating:  4.9,
		Reviews: 67,
		IsCombo: true,
	},
}

func init() {
	for i := range products {
		products[i] = complete(products[i])
	}
}

func decimalPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// complete fills the fields the product detail view always expects.
func complete(p model.Product) model.Product {
	if p.Slug == "" {
		p.Slug = slug.Make(p.Name)
	}
	if len(p.Images) == 0 {
		p.Images = []string{p.ImageURL, p.ImageURL, p.ImageURL, p.ImageURL}
	}
	if len(p.Features) == 0 {
		p.Features = append([]string(nil), defaultFeatures...)
	}
	if len(p.Specifications) == 0 {
		p.Specifications = make(map[string]string, len(defaultSpecifications))
		for k, v := range defaultSpecifications {
			p.Specifications[k] = v
		}
	}
	if p.StockCount == 0 {
		p.StockCount = defaultStock
	}
	return p
}

// All returns copies of every product in catalog order.
func All() []model.Product {
	out := make([]model.Product, len(products))
	copy(out, products)
	return out
}

func Count() int { return len(products) }

// Lookup resolves a product reference: full id, short id, slug, then any id
// containing ref.
func Lookup(ref string) (model.Product, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Product{}, false
	}
	for _, p := range products {
		if p.ID.String() == ref {
			return p, true
		}
	}
	for _, p := range products {
		if p.ShortID == ref {
			return p, true
		}
	}
	for _, p := range products {
		if p.Slug == ref {
			return p, true
		}
	}
	for _, p := range products {
		if strings.Contains(p.ID.String(), ref) {
			return p, true
		}
	}
	return model.Product{}, false
}
