// Package models provides the data structures used throughout the application.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a purchase record. Records are never
// physically removed; a cancelled purchase stays in the source sheet with
// StatusCancelled so history is preserved.
type Status string

// PaymentState tracks whether a purchase has been settled with the supplier.
type PaymentState string

const (
	StatusActive    Status = "ACTIVO"
	StatusCancelled Status = "CANCELADO"

	PaymentPaid    PaymentState = "PAGADO"
	PaymentPending PaymentState = "PENDIENTE"
)

// PurchaseRecord is the canonical, normalized form of one purchase row.
// Instances are built in bulk by the row normalizer on each load and are not
// mutated afterwards; an edit is a replace-at-source followed by a reload.
type PurchaseRecord struct {
	ID           string          `json:"id"`
	Supplier     string          `json:"supplier"`
	Product      string          `json:"product"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Total        decimal.Decimal `json:"total"`
	PurchaseDate time.Time       `json:"purchase_date"`
	Note         string          `json:"note"`
	Status       Status          `json:"status"`
	Payment      PaymentState    `json:"payment"`
}

// HasDate reports whether the record carries a usable purchase date.
// Records without one are retained but excluded from date-range filters and
// sort last in time-ordered views.
func (r PurchaseRecord) HasDate() bool {
	return !r.PurchaseDate.IsZero()
}

// IsCancelled reports whether the record was soft-deleted.
func (r PurchaseRecord) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// IsPending reports whether the purchase is still owed to the supplier.
func (r PurchaseRecord) IsPending() bool {
	return r.Payment == PaymentPending
}
