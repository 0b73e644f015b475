// Package export handles the report-export command
package export

import (
	"context"
	"path/filepath"

	"labonita/compras/cmd/root"
	"labonita/compras/internal/report"

	"github.com/spf13/cobra"
)

var (
	outFile string
	withCSV bool
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered records as a multi-sheet XLSX report",
	Long: `Export loads one batch of purchase records, applies the active
filters and writes the three-sheet workbook (detail, by product and day,
by product, day and supplier). With --csv the detail sheet is also written
as a CSV file next to the workbook.`,
	Run: exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&outFile, "out", "o", "", "Output XLSX path (default <report dir>/Compras_LaBonita.xlsx)")
	Cmd.Flags().BoolVar(&withCSV, "csv", false, "Also write the detail sheet as CSV")
}

func exportFunc(cmd *cobra.Command, args []string) {
	svc := root.NewService()

	if err := svc.Load(context.Background()); err != nil {
		root.Log.Fatalf("Error loading records: %v", err)
	}

	criteria := root.BuildCriteria()
	sheets := svc.Sheets(criteria)

	path := outFile
	if path == "" {
		path = filepath.Join(root.Cfg.Report.OutputDir, "Compras_LaBonita.xlsx")
	}

	if err := report.WriteXLSX(sheets, path); err != nil {
		root.Log.Fatalf("Error writing report: %v", err)
	}
	root.Log.Infof("Report written to %s", path)

	if withCSV {
		csvPath := path[:len(path)-len(filepath.Ext(path))] + ".csv"
		view := svc.View(criteria)
		if err := report.WriteDetailCSV(view.Records, csvPath); err != nil {
			root.Log.Fatalf("Error writing detail CSV: %v", err)
		}
		root.Log.Infof("Detail CSV written to %s", csvPath)
	}
}
