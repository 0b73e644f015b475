// Package filter applies compound criteria to a record snapshot.
// Apply is pure and reentrant: it never mutates its input and preserves the
// input order, so repeated calls with identical criteria yield identical
// output.
package filter

import (
	"strings"

	"labonita/compras/internal/models"
)

// Apply returns the records satisfying every active predicate of the
// criteria. Predicates are independent, so evaluation short-circuits on the
// first failure.
func Apply(records []models.PurchaseRecord, criteria models.FilterCriteria) []models.PurchaseRecord {
	out := make([]models.PurchaseRecord, 0, len(records))
	for _, rec := range records {
		if Matches(rec, criteria) {
			out = append(out, rec)
		}
	}
	return out
}

// Matches reports whether one record satisfies the criteria.
func Matches(rec models.PurchaseRecord, criteria models.FilterCriteria) bool {
	if !criteria.IncludeCancelled && rec.IsCancelled() {
		return false
	}

	if !matchesSearch(rec, criteria.SearchText) {
		return false
	}

	if !matchesDateRange(rec, criteria) {
		return false
	}

	if criteria.WantsSupplier() && rec.Supplier != criteria.Supplier {
		return false
	}
	if criteria.WantsProduct() && rec.Product != criteria.Product {
		return false
	}
	if criteria.WantsPayment() && string(rec.Payment) != criteria.Payment {
		return false
	}

	return true
}

// matchesSearch checks the case-insensitive substring search over the
// supplier and product labels.
func matchesSearch(rec models.PurchaseRecord, searchText string) bool {
	needle := strings.ToLower(strings.TrimSpace(searchText))
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(rec.Supplier), needle) ||
		strings.Contains(strings.ToLower(rec.Product), needle)
}

// matchesDateRange checks the inclusive day bounds. A record without a date
// cannot satisfy an active bound; with both bounds unset every record passes.
func matchesDateRange(rec models.PurchaseRecord, criteria models.FilterCriteria) bool {
	fromSet := !criteria.DateFrom.IsZero()
	toSet := !criteria.DateTo.IsZero()

	if !fromSet && !toSet {
		return true
	}
	if !rec.HasDate() {
		return false
	}

	if fromSet && rec.PurchaseDate.Before(criteria.DateFrom) {
		return false
	}
	if toSet && rec.PurchaseDate.After(criteria.DateTo) {
		return false
	}
	return true
}
