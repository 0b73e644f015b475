package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStatus(t *testing.T) {
	table := DefaultSynonyms()

	tests := []struct {
		name     string
		raw      string
		expected Status
	}{
		{"Empty defaults to active", "", StatusActive},
		{"Cancelado", "Cancelado", StatusCancelled},
		{"Uppercase cancelled", "CANCELADO", StatusCancelled},
		{"Anulada variant", "anulada", StatusCancelled},
		{"Embedded keyword", "compra cancelada por error", StatusCancelled},
		{"Recibido is active", "Recibido", StatusActive},
		{"Activo", "ACTIVO", StatusActive},
		{"Unknown label", "quién sabe", StatusActive},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, table.NormalizeStatus(tc.raw))
		})
	}
}

func TestNormalizePayment(t *testing.T) {
	table := DefaultSynonyms()

	tests := []struct {
		name     string
		raw      string
		expected PaymentState
	}{
		{"Empty defaults to pending", "", PaymentPending},
		{"Pagado", "Pagado", PaymentPaid},
		{"English paid", "paid", PaymentPaid},
		{"Pagada variant", "PAGADA", PaymentPaid},
		{"Pendiente", "Pendiente", PaymentPending},
		{"Unknown label", "luego", PaymentPending},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, table.NormalizePayment(tc.raw))
		})
	}
}

func TestLoadSynonymsMissingFileUsesDefaults(t *testing.T) {
	table, err := LoadSynonyms(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSynonyms().Cancelled, table.Cancelled)
}

func TestLoadSynonymsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synonyms.yaml")
	content := "cancelled:\n  - BORRAD\npaid:\n  - LIQUIDAD\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	table, err := LoadSynonyms(path)
	require.NoError(t, err)

	assert.Equal(t, StatusCancelled, table.NormalizeStatus("borrada"))
	assert.Equal(t, StatusActive, table.NormalizeStatus("cancelado"),
		"overriding the table replaces the defaults")
	assert.Equal(t, PaymentPaid, table.NormalizePayment("Liquidado"))
}
