package aggregate

import (
	"testing"
	"time"

	"labonita/compras/internal/filter"
	"labonita/compras/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func purchase(supplier, product string, qty, cost, total string, date time.Time) models.PurchaseRecord {
	return models.PurchaseRecord{
		ID:           supplier + "-" + product + "-" + date.Format("2006-01-02"),
		Supplier:     supplier,
		Product:      product,
		Quantity:     decimal.RequireFromString(qty),
		UnitCost:     decimal.RequireFromString(cost),
		Total:        decimal.RequireFromString(total),
		PurchaseDate: date,
		Status:       models.StatusActive,
		Payment:      models.PaymentPending,
	}
}

func TestWeightedAverageUnitCost(t *testing.T) {
	records := []models.PurchaseRecord{
		purchase("A", "Harina", "2", "10", "20", day(2026, time.January, 1)),
		purchase("A", "Harina", "3", "15", "45", day(2026, time.January, 2)),
	}

	avg := WeightedAverageUnitCost(records)

	// 65/5 = 13, not the simple mean (10+15)/2 = 12.5.
	assert.True(t, decimal.RequireFromString("13").Equal(avg),
		"expected 13 but got %s", avg.String())
}

func TestWeightedAverageZeroQuantity(t *testing.T) {
	records := []models.PurchaseRecord{
		purchase("A", "Harina", "0", "10", "0", day(2026, time.January, 1)),
	}
	assert.True(t, WeightedAverageUnitCost(records).IsZero(), "never NaN or infinity")
	assert.True(t, WeightedAverageUnitCost(nil).IsZero())
}

func TestSummarize(t *testing.T) {
	records := []models.PurchaseRecord{
		purchase("A", "Harina", "2", "10", "20", day(2026, time.January, 1)),
		purchase("B", "Azúcar", "5", "4", "20", day(2026, time.January, 2)),
		purchase("A", "Harina", "1", "11", "11", day(2026, time.January, 3)),
	}
	records[1].Payment = models.PaymentPaid

	s := Summarize(records)

	assert.Equal(t, 3, s.PurchaseCount)
	assert.True(t, decimal.RequireFromString("51").Equal(s.TotalSpend))
	assert.True(t, decimal.RequireFromString("31").Equal(s.PendingBalance))
	assert.Equal(t, "Azúcar", s.TopProduct)
	assert.True(t, decimal.RequireFromString("5").Equal(s.TopQuantity))
}

func TestSummarizeTopProductTieBreak(t *testing.T) {
	records := []models.PurchaseRecord{
		purchase("A", "Harina", "3", "10", "30", day(2026, time.January, 1)),
		purchase("B", "Azúcar", "3", "4", "12", day(2026, time.January, 2)),
	}

	s := Summarize(records)
	assert.Equal(t, "Harina", s.TopProduct, "ties resolve to the first-encountered product")
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.PurchaseCount)
	assert.True(t, s.TotalSpend.IsZero())
	assert.Equal(t, "", s.TopProduct)
}

func TestBestSupplier(t *testing.T) {
	records := []models.PurchaseRecord{
		purchase("A", "Widget", "10", "10", "100", day(2026, time.January, 1)),
		purchase("B", "Widget", "5", "8", "40", day(2026, time.January, 2)),
	}

	best, ok := BestSupplier(records, "Widget")
	require.True(t, ok)
	assert.Equal(t, "B", best.Supplier)
	assert.True(t, decimal.RequireFromString("8").Equal(best.WeightedAverage))
}

func TestBestSupplierDisqualifiesZeroQuantity(t *testing.T) {
	records := []models.PurchaseRecord{
		purchase("Ghost", "Widget", "0", "0", "50", day(2026, time.January, 1)),
		purchase("Real", "Widget", "5", "9", "45", day(2026, time.January, 2)),
	}

	best, ok := BestSupplier(records, "Widget")
	require.True(t, ok)
	assert.Equal(t, "Real", best.Supplier,
		"a zero-quantity supplier must never win on a division artifact")
}

func TestBestSupplierIgnoresCancelledAndOtherProducts(t *testing.T) {
	cheapButCancelled := purchase("C", "Widget", "10", "1", "10", day(2026, time.January, 1))
	cheapButCancelled.Status = models.StatusCancelled

	records := []models.PurchaseRecord{
		cheapButCancelled,
		purchase("A", "Widget", "2", "10", "20", day(2026, time.January, 2)),
		purchase("B", "Gadget", "2", "1", "2", day(2026, time.January, 3)),
	}

	best, ok := BestSupplier(records, "Widget")
	require.True(t, ok)
	assert.Equal(t, "A", best.Supplier)

	_, ok = BestSupplier(records, "Nonexistent")
	assert.False(t, ok)
}

func TestEndToEndScenario(t *testing.T) {
	cancelled := purchase("SupplierX", "Widget", "1", "10", "10", day(2026, time.January, 3))
	cancelled.Status = models.StatusCancelled

	all := []models.PurchaseRecord{
		purchase("SupplierX", "Widget", "1", "10", "10", day(2026, time.January, 1)),
		purchase("SupplierY", "Widget", "1", "8", "8", day(2026, time.January, 2)),
		cancelled,
	}

	filtered := filter.Apply(all, models.FilterCriteria{})
	s := Summarize(filtered)

	assert.Equal(t, 2, s.PurchaseCount)
	assert.True(t, decimal.RequireFromString("18").Equal(s.TotalSpend),
		"expected 18 but got %s", s.TotalSpend.String())

	best, ok := BestSupplier(all, "Widget")
	require.True(t, ok)
	assert.Equal(t, "SupplierY", best.Supplier)
	assert.True(t, decimal.RequireFromString("8").Equal(best.WeightedAverage))
}
