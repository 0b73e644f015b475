package aggregate

import (
	"sort"
	"strings"

	"labonita/compras/internal/cellparse"
	"labonita/compras/internal/models"

	"github.com/shopspring/decimal"
)

// ProductRollup sums quantity and spend per product.
type ProductRollup struct {
	Product  string
	Quantity decimal.Decimal
	Total    decimal.Decimal
}

// ProductDateRollup sums quantity and spend per canonical day and product.
type ProductDateRollup struct {
	Day      string
	Product  string
	Quantity decimal.Decimal
	Total    decimal.Decimal
}

// ProductDateSupplierRollup additionally splits by supplier and carries the
// group's weighted average unit cost.
type ProductDateSupplierRollup struct {
	Day             string
	Product         string
	Supplier        string
	Quantity        decimal.Decimal
	Total           decimal.Decimal
	WeightedAverage decimal.Decimal
}

// SupplierSummary is the per-supplier rollup table of the dashboard:
// purchase count, total spend and outstanding balance.
type SupplierSummary struct {
	Supplier  string
	Purchases int
	Total     decimal.Decimal
	Pending   decimal.Decimal
}

const keySep = "||"

// GroupByProduct rolls the records up per product, in first-encounter order.
func GroupByProduct(records []models.PurchaseRecord) []ProductRollup {
	groups := make(map[string]*ProductRollup)
	var order []string

	for _, rec := range records {
		g, seen := groups[rec.Product]
		if !seen {
			g = &ProductRollup{Product: rec.Product, Quantity: decimal.Zero, Total: decimal.Zero}
			groups[rec.Product] = g
			order = append(order, rec.Product)
		}
		g.Quantity = g.Quantity.Add(rec.Quantity)
		g.Total = g.Total.Add(rec.Total)
	}

	out := make([]ProductRollup, 0, len(order))
	for _, k := range order {
		out = append(out, *groups[k])
	}
	return out
}

// GroupByProductDate rolls the records up per canonical day and product.
// The group key is built from the canonical day string so two encodings of
// the same calendar day always land in the same group.
func GroupByProductDate(records []models.PurchaseRecord) []ProductDateRollup {
	groups := make(map[string]*ProductDateRollup)
	var order []string

	for _, rec := range records {
		day := cellparse.CanonicalDay(rec.PurchaseDate)
		key := strings.Join([]string{day, rec.Product}, keySep)

		g, seen := groups[key]
		if !seen {
			g = &ProductDateRollup{Day: day, Product: rec.Product, Quantity: decimal.Zero, Total: decimal.Zero}
			groups[key] = g
			order = append(order, key)
		}
		g.Quantity = g.Quantity.Add(rec.Quantity)
		g.Total = g.Total.Add(rec.Total)
	}

	out := make([]ProductDateRollup, 0, len(order))
	for _, k := range order {
		out = append(out, *groups[k])
	}
	return out
}

// GroupByProductDateSupplier rolls the records up per canonical day, product
// and supplier, including each group's weighted average unit cost.
func GroupByProductDateSupplier(records []models.PurchaseRecord) []ProductDateSupplierRollup {
	groups := make(map[string]*ProductDateSupplierRollup)
	var order []string

	for _, rec := range records {
		day := cellparse.CanonicalDay(rec.PurchaseDate)
		key := strings.Join([]string{day, rec.Product, rec.Supplier}, keySep)

		g, seen := groups[key]
		if !seen {
			g = &ProductDateSupplierRollup{
				Day:      day,
				Product:  rec.Product,
				Supplier: rec.Supplier,
				Quantity: decimal.Zero,
				Total:    decimal.Zero,
			}
			groups[key] = g
			order = append(order, key)
		}
		g.Quantity = g.Quantity.Add(rec.Quantity)
		g.Total = g.Total.Add(rec.Total)
	}

	out := make([]ProductDateSupplierRollup, 0, len(order))
	for _, k := range order {
		g := groups[k]
		if g.Quantity.IsZero() {
			g.WeightedAverage = decimal.Zero
		} else {
			g.WeightedAverage = g.Total.Div(g.Quantity)
		}
		out = append(out, *g)
	}
	return out
}

// SummarizeSuppliers rolls the filtered records up per supplier and sorts by
// total spend descending, stable on first encounter.
func SummarizeSuppliers(records []models.PurchaseRecord) []SupplierSummary {
	groups := make(map[string]*SupplierSummary)
	var order []string

	for _, rec := range records {
		g, seen := groups[rec.Supplier]
		if !seen {
			g = &SupplierSummary{Supplier: rec.Supplier, Total: decimal.Zero, Pending: decimal.Zero}
			groups[rec.Supplier] = g
			order = append(order, rec.Supplier)
		}
		g.Purchases++
		g.Total = g.Total.Add(rec.Total)
		if rec.IsPending() {
			g.Pending = g.Pending.Add(rec.Total)
		}
	}

	out := make([]SupplierSummary, 0, len(order))
	for _, k := range order {
		out = append(out, *groups[k])
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}
