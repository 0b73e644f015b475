package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"labonita/compras/internal/cellparse"
	"labonita/compras/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
)

// Delimiter is the CSV output delimiter, configurable for spreadsheet
// locales that expect ";".
var Delimiter rune = ','

// SetDelimiter sets the delimiter for CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// detailRow is the gocsv row shape of the detail export. Headers match the
// detail sheet of the workbook.
type detailRow struct {
	ID       string `csv:"ID"`
	Supplier string `csv:"Proveedor"`
	Product  string `csv:"Producto"`
	Quantity string `csv:"Cantidad"`
	UnitCost string `csv:"Costo"`
	Total    string `csv:"Total"`
	Date     string `csv:"Fecha"`
	Note     string `csv:"Notas"`
	Status   string `csv:"Estatus"`
	Payment  string `csv:"Pago"`
}

// WriteDetailCSV writes the filtered detail records to a CSV file in the
// fixed export column order.
func WriteDetailCSV(records []models.PurchaseRecord, path string) error {
	if records == nil {
		return fmt.Errorf("cannot write nil records to CSV")
	}

	log.WithFields(logrus.Fields{
		"file":  path,
		"count": len(records),
	}).Info("Writing detail records to CSV file")

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	rows := make([]detailRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, detailRow{
			ID:       rec.ID,
			Supplier: rec.Supplier,
			Product:  rec.Product,
			Quantity: rec.Quantity.String(),
			UnitCost: rec.UnitCost.StringFixed(2),
			Total:    rec.Total.StringFixed(2),
			Date:     cellparse.CanonicalDay(rec.PurchaseDate),
			Note:     rec.Note,
			Status:   string(rec.Status),
			Payment:  string(rec.Payment),
		})
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	return nil
}
