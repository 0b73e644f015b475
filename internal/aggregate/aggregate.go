// Package aggregate computes the derived figures the dashboard shows:
// KPI totals, weighted average unit costs, best-supplier rankings, price
// history and grouped rollups. Every function is pure over the record slice
// it is given; callers pass an already-filtered set unless an operation
// documents otherwise.
package aggregate

import (
	"labonita/compras/internal/models"

	"github.com/shopspring/decimal"
)

// Summary is the KPI block at the top of the dashboard.
type Summary struct {
	// TotalSpend is the sum of record totals.
	TotalSpend decimal.Decimal
	// PurchaseCount is the number of records.
	PurchaseCount int
	// PendingBalance is the sum of totals still owed to suppliers.
	PendingBalance decimal.Decimal
	// TopProduct is the product with the highest summed quantity; empty when
	// there are no records. Ties resolve to the product encountered first.
	TopProduct string
	// TopQuantity is the summed quantity of TopProduct.
	TopQuantity decimal.Decimal
}

// Summarize computes the KPI block over a filtered record set.
func Summarize(records []models.PurchaseRecord) Summary {
	s := Summary{
		TotalSpend:     decimal.Zero,
		PendingBalance: decimal.Zero,
		TopQuantity:    decimal.Zero,
	}

	quantityByProduct := make(map[string]decimal.Decimal)
	var productOrder []string

	for _, rec := range records {
		s.TotalSpend = s.TotalSpend.Add(rec.Total)
		s.PurchaseCount++
		if rec.IsPending() {
			s.PendingBalance = s.PendingBalance.Add(rec.Total)
		}

		if _, seen := quantityByProduct[rec.Product]; !seen {
			productOrder = append(productOrder, rec.Product)
		}
		quantityByProduct[rec.Product] = quantityByProduct[rec.Product].Add(rec.Quantity)
	}

	// Scan in first-encounter order so the tie-break is stable instead of
	// depending on map iteration order.
	for _, product := range productOrder {
		qty := quantityByProduct[product]
		if s.TopProduct == "" || qty.GreaterThan(s.TopQuantity) {
			s.TopProduct = product
			s.TopQuantity = qty
		}
	}

	return s
}

// WeightedAverageUnitCost returns total spend divided by total quantity over
// the given records. This is deliberately not the arithmetic mean of unit
// costs: a large cheap purchase must pull the average down more than a small
// one. Zero total quantity yields zero, never a division artifact.
func WeightedAverageUnitCost(records []models.PurchaseRecord) decimal.Decimal {
	quantity := decimal.Zero
	total := decimal.Zero

	for _, rec := range records {
		quantity = quantity.Add(rec.Quantity)
		total = total.Add(rec.Total)
	}

	if quantity.IsZero() {
		return decimal.Zero
	}
	return total.Div(quantity)
}

// SupplierRanking is one supplier's aggregated standing for a product.
type SupplierRanking struct {
	Supplier        string
	Quantity        decimal.Decimal
	Total           decimal.Decimal
	WeightedAverage decimal.Decimal
}

// BestSupplier ranks the suppliers of one product by weighted average unit
// cost and returns the cheapest. It deliberately operates on the full
// unfiltered snapshot: the question it answers is "who sells this product
// cheapest across all history", independent of the table's active date or
// supplier filter. Cancelled records are always excluded, and a supplier with
// zero aggregated quantity is disqualified rather than winning on a division
// artifact. Ties resolve to the supplier encountered first.
//
// The boolean is false when the product has no rankable suppliers.
func BestSupplier(all []models.PurchaseRecord, product string) (SupplierRanking, bool) {
	sums := make(map[string]*SupplierRanking)
	var order []string

	for _, rec := range all {
		if rec.IsCancelled() || rec.Product != product {
			continue
		}
		r, seen := sums[rec.Supplier]
		if !seen {
			r = &SupplierRanking{
				Supplier: rec.Supplier,
				Quantity: decimal.Zero,
				Total:    decimal.Zero,
			}
			sums[rec.Supplier] = r
			order = append(order, rec.Supplier)
		}
		r.Quantity = r.Quantity.Add(rec.Quantity)
		r.Total = r.Total.Add(rec.Total)
	}

	var best SupplierRanking
	found := false

	for _, supplier := range order {
		r := sums[supplier]
		if r.Quantity.IsZero() {
			continue
		}
		r.WeightedAverage = r.Total.Div(r.Quantity)

		if !found || r.WeightedAverage.LessThan(best.WeightedAverage) {
			best = *r
			found = true
		}
	}

	return best, found
}
