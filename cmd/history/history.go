// Package history handles the price-history command
package history

import (
	"context"
	"fmt"

	"labonita/compras/cmd/root"
	"labonita/compras/internal/aggregate"
	"labonita/compras/internal/models"

	"github.com/spf13/cobra"
)

var (
	product  string
	supplier string
)

// Cmd represents the history command
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "Show the price history and best supplier for a product",
	Long: `History prints the chronological unit-cost series for one product,
the variation narrative (latest cost, mean, last move) and, in the
all-suppliers view, the supplier with the lowest weighted average cost.`,
	Run: historyFunc,
}

func init() {
	Cmd.Flags().StringVarP(&product, "product", "p", "", "Product to analyze (required)")
	Cmd.Flags().StringVarP(&supplier, "supplier", "s", models.SelectAll, "Restrict the series to one supplier")
	if err := Cmd.MarkFlagRequired("product"); err != nil {
		panic(err)
	}
}

func historyFunc(cmd *cobra.Command, args []string) {
	svc := root.NewService()

	if err := svc.Load(context.Background()); err != nil {
		root.Log.Fatalf("Error loading records: %v", err)
	}

	analysis := svc.Analyze(product, supplier)

	if !analysis.HasSeries {
		fmt.Println("Sin datos para este filtro.")
		return
	}

	for _, point := range analysis.Series {
		day := point.Day
		if day == "" {
			day = "sin fecha"
		}
		fmt.Printf("%s  $%s\n", day, point.UnitCost.StringFixed(2))
	}

	v := analysis.Variation
	fmt.Printf("\nÚltimo costo: $%s • Promedio: $%s\n", v.Latest.StringFixed(2), v.Mean.StringFixed(2))
	if v.HasDelta {
		switch v.Trend {
		case aggregate.TrendIncrease:
			fmt.Printf("Subió $%s respecto a la compra anterior\n", v.Delta.StringFixed(2))
		case aggregate.TrendDecrease:
			fmt.Printf("Bajó $%s respecto a la compra anterior\n", v.Delta.Abs().StringFixed(2))
		default:
			fmt.Println("Sin cambio respecto a la compra anterior")
		}
	}

	if analysis.HasBest {
		fmt.Printf("\nMejor proveedor para %q: %s (promedio ponderado $%s)\n",
			product, analysis.Best.Supplier, analysis.Best.WeightedAverage.StringFixed(2))
	}
}
