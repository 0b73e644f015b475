package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"labonita/compras/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDetailCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compras.csv")
	require.NoError(t, WriteDetailCSV(fixture(), path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID,Proveedor,Producto,Cantidad,Costo,Total,Fecha,Notas,Estatus,Pago", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "c,Molinos,Harina,2,10.00,20.00,2026-01-12")
	assert.Contains(t, lines[1], "ACTIVO,PENDIENTE")
}

func TestWriteDetailCSVCustomDelimiter(t *testing.T) {
	old := Delimiter
	SetDelimiter(';')
	defer SetDelimiter(old)

	path := filepath.Join(t.TempDir(), "compras.csv")
	require.NoError(t, WriteDetailCSV([]models.PurchaseRecord{
		purchase("a", "Molinos", "Harina", "1", "10", "10", time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)),
	}, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "ID;Proveedor;Producto")
}

func TestWriteDetailCSVNilRecords(t *testing.T) {
	err := WriteDetailCSV(nil, filepath.Join(t.TempDir(), "out.csv"))
	assert.Error(t, err)
}
