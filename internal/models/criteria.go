package models

import "time"

// SelectAll is the sentinel meaning "no constraint" for the exact-match
// supplier, product and payment filters. The value matches the option the
// dashboard selectors emit.
const SelectAll = "__TODOS__"

// FilterCriteria is the compound filter applied to a record snapshot.
// A fresh value is built per query; the zero value selects all non-cancelled
// records.
type FilterCriteria struct {
	// SearchText is matched case-insensitively as a substring of the
	// supplier or product label. Empty means no text constraint.
	SearchText string

	// DateFrom and DateTo are inclusive day bounds. A zero time leaves the
	// bound open. Records without a purchase date fail any active bound.
	DateFrom time.Time
	DateTo   time.Time

	// Supplier, Product and Payment are exact-match constraints.
	// Empty or SelectAll means unconstrained.
	Supplier string
	Product  string
	Payment  string

	// IncludeCancelled keeps soft-deleted records in the result.
	// The default view hides them.
	IncludeCancelled bool
}

// WantsSupplier reports whether the supplier constraint is active.
func (c FilterCriteria) WantsSupplier() bool {
	return c.Supplier != "" && c.Supplier != SelectAll
}

// WantsProduct reports whether the product constraint is active.
func (c FilterCriteria) WantsProduct() bool {
	return c.Product != "" && c.Product != SelectAll
}

// WantsPayment reports whether the payment constraint is active.
func (c FilterCriteria) WantsPayment() bool {
	return c.Payment != "" && c.Payment != SelectAll
}
