// Package source contains the ingress adapters that reduce every supported
// record-source shape (JSON 2D arrays, JSON row objects, delimited text) to
// the one raw-table shape the normalizer consumes.
package source

import (
	"encoding/json"
	"sort"
	"strconv"

	"labonita/compras/internal/engineerror"
	"labonita/compras/internal/normalize"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// ParseJSONTable decodes a JSON payload into a raw table. Two shapes are
// accepted: a 2D array whose first row is the header row (the deployed
// web-app endpoint emits this), and an array of keyed row objects (the JSON
// proxy variant). Anything else is a TableError.
func ParseJSONTable(data []byte) (normalize.RawTable, error) {
	var cells [][]json.RawMessage
	if err := json.Unmarshal(data, &cells); err == nil {
		return tableFromCells(cells), nil
	}

	var objects []map[string]json.RawMessage
	if err := json.Unmarshal(data, &objects); err == nil {
		return tableFromObjects(objects), nil
	}

	return normalize.RawTable{}, &engineerror.TableError{
		Shape:  "json",
		Reason: "payload is neither a 2D cell array nor an array of row objects",
	}
}

func tableFromCells(cells [][]json.RawMessage) normalize.RawTable {
	var table normalize.RawTable
	for i, row := range cells {
		stringRow := make([]string, len(row))
		for j, cell := range row {
			stringRow[j] = cellString(cell)
		}
		if i == 0 {
			table.Headers = stringRow
			continue
		}
		table.Rows = append(table.Rows, stringRow)
	}
	return table
}

// tableFromObjects flattens keyed rows into positional ones. Go maps have no
// iteration order, so headers are the sorted key set of the first row; every
// row is then projected onto that fixed order.
func tableFromObjects(objects []map[string]json.RawMessage) normalize.RawTable {
	var table normalize.RawTable
	if len(objects) == 0 {
		return table
	}

	for key := range objects[0] {
		table.Headers = append(table.Headers, key)
	}
	sort.Strings(table.Headers)

	for _, obj := range objects {
		row := make([]string, len(table.Headers))
		for i, key := range table.Headers {
			if cell, ok := obj[key]; ok {
				row[i] = cellString(cell)
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// cellString renders one JSON cell the way the sheet displayed it: strings
// as-is, numbers without exponent formatting, null as empty.
func cellString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b)
	}

	return string(raw)
}
