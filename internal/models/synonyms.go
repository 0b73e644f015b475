package models

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SynonymTable is the keyword table used to normalize free-text status and
// payment labels. Upstream spelling is inconsistent ("Cancelado", "ANULADA",
// "Recibido", "pagado ok"), so matching is by case-insensitive substring
// against these keywords rather than exact equality. The table is
// configuration: the embedded defaults can be overridden from a YAML file.
type SynonymTable struct {
	// Cancelled lists keywords that mark a record as soft-deleted.
	// Anything else, including an empty cell, normalizes to active.
	Cancelled []string `yaml:"cancelled"`

	// Paid lists keywords that mark a purchase as settled.
	// Anything else, including an empty cell, normalizes to pending.
	Paid []string `yaml:"paid"`
}

// DefaultSynonyms returns the built-in keyword table covering the label
// variants observed across the source sheets.
func DefaultSynonyms() *SynonymTable {
	return &SynonymTable{
		Cancelled: []string{"CANCEL", "ANULAD"},
		Paid:      []string{"PAGAD", "PAID"},
	}
}

// LoadSynonyms reads a synonym table from a YAML file. A missing file is not
// an error; the defaults are returned so the engine always has a policy.
func LoadSynonyms(path string) (*SynonymTable, error) {
	if path == "" {
		return DefaultSynonyms(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSynonyms(), nil
		}
		return nil, fmt.Errorf("error reading synonyms file: %w", err)
	}

	table := DefaultSynonyms()
	if err := yaml.Unmarshal(data, table); err != nil {
		return nil, fmt.Errorf("error parsing synonyms file %s: %w", path, err)
	}
	return table, nil
}

// NormalizeStatus maps a raw status cell onto the canonical Status values.
// Absent or unrecognized labels default to active.
func (t *SynonymTable) NormalizeStatus(raw string) Status {
	if containsAny(raw, t.Cancelled) {
		return StatusCancelled
	}
	return StatusActive
}

// NormalizePayment maps a raw payment cell onto the canonical PaymentState
// values. Absent or unrecognized labels default to pending.
func (t *SynonymTable) NormalizePayment(raw string) PaymentState {
	if containsAny(raw, t.Paid) {
		return PaymentPaid
	}
	return PaymentPending
}

func containsAny(raw string, keywords []string) bool {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	if upper == "" {
		return false
	}
	for _, kw := range keywords {
		if kw != "" && strings.Contains(upper, strings.ToUpper(kw)) {
			return true
		}
	}
	return false
}
