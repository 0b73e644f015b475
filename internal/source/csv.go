package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"labonita/compras/internal/engineerror"
	"labonita/compras/internal/normalize"
)

// ParseCSVTable reads delimited text into a raw table, first row as headers.
// It uses a real CSV tokenizer: quoted fields, doubled embedded quotes and
// newlines inside quoted fields are all honored. Rows may vary in width;
// short rows are padded later by the normalizer, never rejected here.
func ParseCSVTable(r io.Reader, delimiter rune) (normalize.RawTable, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	var table normalize.RawTable
	first := true

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return normalize.RawTable{}, &engineerror.TableError{
				Shape:  "csv",
				Reason: err.Error(),
			}
		}

		if first {
			table.Headers = record
			first = false
			continue
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

// FileSource serves record batches from a local CSV export. It satisfies
// the same contract as HTTPSource so the pipeline is indifferent to where
// rows come from.
type FileSource struct {
	Path      string
	Delimiter rune
}

// FetchTable reads the file. The context is accepted for contract symmetry;
// local reads do not observe cancellation.
func (s *FileSource) FetchTable(_ context.Context) (normalize.RawTable, error) {
	delim := s.Delimiter
	if delim == 0 {
		delim = ','
	}
	return ReadCSVFile(s.Path, delim)
}

// ReadCSVFile reads a local CSV export into a raw table.
func ReadCSVFile(path string, delimiter rune) (normalize.RawTable, error) {
	log.WithField("file", path).Info("Reading CSV source file")

	file, err := os.Open(path)
	if err != nil {
		return normalize.RawTable{}, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	table, err := ParseCSVTable(file, delimiter)
	if err != nil {
		return normalize.RawTable{}, err
	}

	log.WithField("rows", len(table.Rows)).Info("Read CSV source file")
	return table, nil
}
