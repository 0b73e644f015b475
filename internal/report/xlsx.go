package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes the projected sheets to a multi-sheet XLSX workbook.
func WriteXLSX(sheets []Sheet, path string) error {
	if len(sheets) == 0 {
		return fmt.Errorf("cannot write a workbook with no sheets")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("error creating report directory: %w", err)
		}
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close workbook")
		}
	}()

	for _, sheet := range sheets {
		if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("error creating sheet %s: %w", sheet.Name, err)
		}

		header := make([]interface{}, len(sheet.Columns))
		for i, col := range sheet.Columns {
			header[i] = col
		}
		if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
			return fmt.Errorf("error writing header of sheet %s: %w", sheet.Name, err)
		}

		for i, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return fmt.Errorf("error addressing row %d of sheet %s: %w", i+2, sheet.Name, err)
			}
			if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
				return fmt.Errorf("error writing row %d of sheet %s: %w", i+2, sheet.Name, err)
			}
		}
	}

	// Drop the implicit default sheet so the workbook starts on the detail sheet.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		log.WithError(err).Debug("Default sheet not removed")
	}
	if idx, err := f.GetSheetIndex(sheets[0].Name); err == nil {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("error saving workbook: %w", err)
	}

	log.WithFields(logrus.Fields{
		"file":   path,
		"sheets": len(sheets),
	}).Info("Wrote XLSX report")
	return nil
}
