// Package report shapes filtered and aggregated purchase data into the flat
// tabular sheets handed to the spreadsheet writers. It owns column order and
// sort order only; all sums come from the aggregate package, never from a
// second computation here.
package report

import (
	"sort"

	"labonita/compras/internal/aggregate"
	"labonita/compras/internal/cellparse"
	"labonita/compras/internal/models"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Sheet is one named tabular sheet of the export workbook.
type Sheet struct {
	Name    string
	Columns []string
	Rows    [][]interface{}
}

// Sheet names of the export workbook.
const (
	SheetPurchases           = "Compras"
	SheetProductDate         = "Fecha+Producto"
	SheetProductDateSupplier = "Fecha+Prod+Prov"
)

// Project builds the export workbook from an already-filtered record set:
// the detail sheet in fixed column order plus the two rollup sheets, each
// sorted by its full composite key so output order is deterministic
// regardless of input order.
func Project(filtered []models.PurchaseRecord) []Sheet {
	sheets := []Sheet{
		detailSheet(filtered),
		productDateSheet(aggregate.GroupByProductDate(filtered)),
		productDateSupplierSheet(aggregate.GroupByProductDateSupplier(filtered)),
	}

	log.WithFields(logrus.Fields{
		"records": len(filtered),
		"sheets":  len(sheets),
	}).Debug("Projected report sheets")
	return sheets
}

func detailSheet(records []models.PurchaseRecord) Sheet {
	sheet := Sheet{
		Name: SheetPurchases,
		Columns: []string{
			"ID", "Proveedor", "Producto", "Cantidad", "Costo",
			"Total", "Fecha", "Notas", "Estatus", "Pago",
		},
	}

	for _, rec := range records {
		sheet.Rows = append(sheet.Rows, []interface{}{
			rec.ID,
			rec.Supplier,
			rec.Product,
			rec.Quantity.InexactFloat64(),
			rec.UnitCost.Round(2).InexactFloat64(),
			rec.Total.Round(2).InexactFloat64(),
			cellparse.CanonicalDay(rec.PurchaseDate),
			rec.Note,
			string(rec.Status),
			string(rec.Payment),
		})
	}
	return sheet
}

func productDateSheet(rollups []aggregate.ProductDateRollup) Sheet {
	sort.SliceStable(rollups, func(i, j int) bool {
		a, b := rollups[i], rollups[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		return a.Product < b.Product
	})

	sheet := Sheet{
		Name:    SheetProductDate,
		Columns: []string{"Fecha", "Producto", "CantidadTotal", "TotalGastado"},
	}
	for _, g := range rollups {
		sheet.Rows = append(sheet.Rows, []interface{}{
			g.Day,
			g.Product,
			g.Quantity.InexactFloat64(),
			g.Total.Round(2).InexactFloat64(),
		})
	}
	return sheet
}

func productDateSupplierSheet(rollups []aggregate.ProductDateSupplierRollup) Sheet {
	sort.SliceStable(rollups, func(i, j int) bool {
		a, b := rollups[i], rollups[j]
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.Product != b.Product {
			return a.Product < b.Product
		}
		return a.Supplier < b.Supplier
	})

	sheet := Sheet{
		Name: SheetProductDateSupplier,
		Columns: []string{
			"Fecha", "Producto", "Proveedor",
			"CantidadTotal", "TotalGastado", "CostoPromedio",
		},
	}
	for _, g := range rollups {
		sheet.Rows = append(sheet.Rows, []interface{}{
			g.Day,
			g.Product,
			g.Supplier,
			g.Quantity.InexactFloat64(),
			g.Total.Round(2).InexactFloat64(),
			g.WeightedAverage.Round(2).InexactFloat64(),
		})
	}
	return sheet
}
