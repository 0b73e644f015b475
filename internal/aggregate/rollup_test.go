package aggregate

import (
	"testing"
	"time"

	"labonita/compras/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rollupFixture() []models.PurchaseRecord {
	paid := purchase("Dulces SA", "Azúcar", "1", "25", "25", day(2026, time.January, 12))
	paid.Payment = models.PaymentPaid

	return []models.PurchaseRecord{
		purchase("Molinos", "Harina", "2", "10", "20", day(2026, time.January, 10)),
		purchase("Molinos", "Harina", "3", "12", "36", day(2026, time.January, 10)),
		paid,
		purchase("Dulces SA", "Harina", "1", "11", "11", day(2026, time.January, 12)),
	}
}

func TestGroupByProduct(t *testing.T) {
	groups := GroupByProduct(rollupFixture())
	require.Len(t, groups, 2)

	assert.Equal(t, "Harina", groups[0].Product, "groups keep first-encounter order")
	assert.True(t, decimal.RequireFromString("6").Equal(groups[0].Quantity))
	assert.True(t, decimal.RequireFromString("67").Equal(groups[0].Total))

	assert.Equal(t, "Azúcar", groups[1].Product)
	assert.True(t, decimal.RequireFromString("25").Equal(groups[1].Total))
}

func TestGroupByProductDate(t *testing.T) {
	groups := GroupByProductDate(rollupFixture())
	require.Len(t, groups, 3)

	assert.Equal(t, "2026-01-10", groups[0].Day)
	assert.Equal(t, "Harina", groups[0].Product)
	assert.True(t, decimal.RequireFromString("56").Equal(groups[0].Total),
		"same-day same-product rows collapse into one group")
}

func TestGroupByProductDateSupplierWeightedAverage(t *testing.T) {
	groups := GroupByProductDateSupplier(rollupFixture())
	require.Len(t, groups, 3)

	molinos := groups[0]
	assert.Equal(t, "Molinos", molinos.Supplier)
	assert.True(t, decimal.RequireFromString("5").Equal(molinos.Quantity))
	// 56/5 = 11.2, the group's own weighted average.
	assert.True(t, decimal.RequireFromString("11.2").Equal(molinos.WeightedAverage),
		"expected 11.2 but got %s", molinos.WeightedAverage.String())
}

func TestGroupingPreservesTotals(t *testing.T) {
	records := rollupFixture()

	var recordSum decimal.Decimal
	for _, r := range records {
		recordSum = recordSum.Add(r.Total)
	}

	var productSum, dateSum, supplierSum decimal.Decimal
	for _, g := range GroupByProduct(records) {
		productSum = productSum.Add(g.Total)
	}
	for _, g := range GroupByProductDate(records) {
		dateSum = dateSum.Add(g.Total)
	}
	for _, g := range GroupByProductDateSupplier(records) {
		supplierSum = supplierSum.Add(g.Total)
	}

	assert.True(t, recordSum.Equal(productSum))
	assert.True(t, recordSum.Equal(dateSum))
	assert.True(t, recordSum.Equal(supplierSum))
}

func TestSummarizeSuppliers(t *testing.T) {
	summaries := SummarizeSuppliers(rollupFixture())
	require.Len(t, summaries, 2)

	assert.Equal(t, "Molinos", summaries[0].Supplier, "sorted by total spend descending")
	assert.Equal(t, 2, summaries[0].Purchases)
	assert.True(t, decimal.RequireFromString("56").Equal(summaries[0].Total))
	assert.True(t, decimal.RequireFromString("56").Equal(summaries[0].Pending))

	assert.Equal(t, "Dulces SA", summaries[1].Supplier)
	assert.True(t, decimal.RequireFromString("36").Equal(summaries[1].Total))
	assert.True(t, decimal.RequireFromString("11").Equal(summaries[1].Pending),
		"paid purchases stay out of the outstanding balance")
}

func TestCatalogs(t *testing.T) {
	records := rollupFixture()

	assert.Equal(t, []string{"Azúcar", "Harina"}, Products(records))
	assert.Equal(t, []string{"Dulces SA", "Molinos"}, Suppliers(records))
	assert.Equal(t, []string{"Dulces SA", "Molinos"}, SuppliersOf(records, "Harina"))
	assert.Equal(t, []string{"Dulces SA"}, SuppliersOf(records, "Azúcar"))
	assert.Nil(t, SuppliersOf(records, "Café"))
}
