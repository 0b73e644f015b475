package aggregate

import (
	"sort"

	"labonita/compras/internal/models"
)

// Products returns the sorted distinct product labels in the records.
// Cancelled records are included so edit forms can still autocomplete them.
func Products(records []models.PurchaseRecord) []string {
	return distinct(records, func(r models.PurchaseRecord) string { return r.Product })
}

// Suppliers returns the sorted distinct supplier labels in the records.
func Suppliers(records []models.PurchaseRecord) []string {
	return distinct(records, func(r models.PurchaseRecord) string { return r.Supplier })
}

// SuppliersOf returns the sorted distinct suppliers observed for one product.
func SuppliersOf(records []models.PurchaseRecord, product string) []string {
	var scoped []models.PurchaseRecord
	for _, rec := range records {
		if rec.Product == product {
			scoped = append(scoped, rec)
		}
	}
	return Suppliers(scoped)
}

func distinct(records []models.PurchaseRecord, labelOf func(models.PurchaseRecord) string) []string {
	seen := make(map[string]struct{})
	var labels []string
	for _, rec := range records {
		label := labelOf(rec)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
