// Package load handles the load-and-summarize command
package load

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"labonita/compras/cmd/root"
	"labonita/compras/internal/cellparse"

	"github.com/spf13/cobra"
)

// Cmd represents the load command
var Cmd = &cobra.Command{
	Use:   "load",
	Short: "Load purchase records and print the dashboard view",
	Long: `Load fetches one batch of purchase records, applies the active
filters and prints the KPI summary, the supplier rollup and the filtered
table.`,
	Run: loadFunc,
}

func loadFunc(cmd *cobra.Command, args []string) {
	svc := root.NewService()

	if err := svc.Load(context.Background()); err != nil {
		root.Log.Fatalf("Error loading records: %v", err)
	}

	view := svc.View(root.BuildCriteria())

	fmt.Printf("Total invertido:  $%s\n", view.Summary.TotalSpend.StringFixed(2))
	fmt.Printf("Compras:          %d\n", view.Summary.PurchaseCount)
	fmt.Printf("Saldo pendiente:  $%s\n", view.Summary.PendingBalance.StringFixed(2))
	if view.Summary.TopProduct != "" {
		fmt.Printf("Producto top:     %s (%s)\n", view.Summary.TopProduct, view.Summary.TopQuantity.String())
	}

	if len(view.Suppliers) > 0 {
		fmt.Println("\nProveedores:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "Proveedor\tCompras\tTotal\tPendiente")
		for _, s := range view.Suppliers {
			fmt.Fprintf(w, "%s\t%d\t$%s\t$%s\n",
				s.Supplier, s.Purchases, s.Total.StringFixed(2), s.Pending.StringFixed(2))
		}
		if err := w.Flush(); err != nil {
			root.Log.Warnf("Failed to flush table: %v", err)
		}
	}

	fmt.Println("\nRegistros:")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Proveedor\tProducto\tCantidad\tCosto\tTotal\tFecha\tEstatus\tPago")
	for _, rec := range view.Records {
		fmt.Fprintf(w, "%s\t%s\t%s\t$%s\t$%s\t%s\t%s\t%s\n",
			rec.Supplier, rec.Product, rec.Quantity.String(),
			rec.UnitCost.StringFixed(2), rec.Total.StringFixed(2),
			cellparse.CanonicalDay(rec.PurchaseDate), rec.Status, rec.Payment)
	}
	if err := w.Flush(); err != nil {
		root.Log.Warnf("Failed to flush table: %v", err)
	}
}
