package analytics

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/flicky/carcare-storefront/internal/model"
)

const (
	DashboardTopN = 4
	AnalyticsTopN = 8
)

const unknownProduct = "Unknown Product"

type ProductSales struct {
	Name     string
	Quantity int
	Revenue  decimal.Decimal
}

// TopProducts groups line items by product name (not id) and ranks them by
// revenue, highest first. n <= 0 returns every product.
func TopProducts(orders []model.Order, n int) []ProductSales {
	byName := make(map[string]*ProductSales)
	for _, o := range orders {
		for _, item := range o.Items {
			name := strings.TrimSpace(item.ProductName)
			if name == "" {
				name = unknownProduct
			}
			ps, ok := byName[name]
			if !ok {
				ps = &ProductSales{Name: name, Revenue: decimal.Zero}
				byName[name] = ps
			}
			ps.Quantity += item.Quantity
			ps.Revenue = ps.Revenue.Add(item.TotalPrice)
		}
	}

	out := make([]ProductSales, 0, len(byName))
	for _, ps := range byName {
		out = append(out, *ps)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

type CategoryShare struct {
	Name  string
	Units int
}

var categoryOrder = []string{"Shiner", "Coating", "Clean", "Combo"}

// InferCategory guesses a bucket from the product name. Returns "" when no
// keyword matches.
func InferCategory(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "shine"):
		return "Shiner"
	case strings.Contains(n, "coat"):
		return "Coating"
	case strings.Contains(n, "clean"):
		return "Clean"
	case strings.Contains(n, "combo"), strings.Contains(n, "ultimate"):
		return "Combo"
	}
	return ""
}

// CategoryBreakdown sums units per inferred category, dropping empty buckets.
func CategoryBreakdown(sales []ProductSales) []CategoryShare {
	units := make(map[string]int, len(categoryOrder))
	for _, s := range sales {
		if c := InferCategory(s.Name); c != "" {
			units[c] += s.Quantity
		}
	}
	var out []CategoryShare
	for _, c := range categoryOrder {
		if units[c] > 0 {
			out = append(out, CategoryShare{Name: c, Units: units[c]})
		}
	}
	return out
}
