package aggregate

import (
	"sort"

	"labonita/compras/internal/cellparse"
	"labonita/compras/internal/models"

	"github.com/shopspring/decimal"
)

// PricePoint is one observation in a product's unit-cost history.
type PricePoint struct {
	Day      string
	UnitCost decimal.Decimal
}

// Trend classifies the move between the two latest price points.
type Trend string

const (
	TrendIncrease Trend = "increase"
	TrendDecrease Trend = "decrease"
	TrendNoChange Trend = "no-change"
)

// Variation is the narrative summary shown next to the price chart.
type Variation struct {
	// Latest is the most recent unit cost in the series.
	Latest decimal.Decimal
	// Mean is the simple arithmetic mean of the series. The chart narrative
	// uses the simple mean on purpose; weighted averages belong to the
	// supplier rankings.
	Mean decimal.Decimal
	// Delta is the signed difference between the latest and second-latest
	// points. Only meaningful when HasDelta is true.
	Delta    decimal.Decimal
	Trend    Trend
	HasDelta bool
}

// PriceHistory returns the chronologically ascending unit-cost series for a
// product, optionally scoped to one supplier (models.SelectAll or the empty
// string means all suppliers). Like BestSupplier it reads the full snapshot,
// ignoring the table's active filter; cancelled records are excluded.
// Records without a date keep their snapshot position at the start of the
// series.
func PriceHistory(all []models.PurchaseRecord, product, supplier string) []PricePoint {
	var matched []models.PurchaseRecord
	for _, rec := range all {
		if rec.IsCancelled() || rec.Product != product {
			continue
		}
		if supplier != "" && supplier != models.SelectAll && rec.Supplier != supplier {
			continue
		}
		matched = append(matched, rec)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch {
		case !a.HasDate() && b.HasDate():
			return true
		case a.HasDate() && !b.HasDate():
			return false
		default:
			return a.PurchaseDate.Before(b.PurchaseDate)
		}
	})

	points := make([]PricePoint, 0, len(matched))
	for _, rec := range matched {
		points = append(points, PricePoint{
			Day:      cellparse.CanonicalDay(rec.PurchaseDate),
			UnitCost: rec.UnitCost,
		})
	}
	return points
}

// Variate summarizes an ascending price series. The boolean is false for an
// empty series. The trend boundary is exact: a zero delta is no-change, with
// no epsilon tolerance.
func Variate(series []PricePoint) (Variation, bool) {
	if len(series) == 0 {
		return Variation{}, false
	}

	sum := decimal.Zero
	for _, p := range series {
		sum = sum.Add(p.UnitCost)
	}

	v := Variation{
		Latest: series[len(series)-1].UnitCost,
		Mean:   sum.Div(decimal.NewFromInt(int64(len(series)))),
	}

	if len(series) >= 2 {
		v.Delta = v.Latest.Sub(series[len(series)-2].UnitCost)
		v.HasDelta = true
		switch {
		case v.Delta.IsPositive():
			v.Trend = TrendIncrease
		case v.Delta.IsNegative():
			v.Trend = TrendDecrease
		default:
			v.Trend = TrendNoChange
		}
	}

	return v, true
}
