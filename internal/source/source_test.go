package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"labonita/compras/internal/engineerror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONTableCellArray(t *testing.T) {
	payload := `[
		["Proveedor", "Producto", "Cantidad", "Costo"],
		["Molinos", "Harina", 2, 10.5],
		["Dulces SA", "Azúcar", null, true]
	]`

	table, err := ParseJSONTable([]byte(payload))
	require.NoError(t, err)

	assert.Equal(t, []string{"Proveedor", "Producto", "Cantidad", "Costo"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Molinos", "Harina", "2", "10.5"}, table.Rows[0])
	assert.Equal(t, []string{"Dulces SA", "Azúcar", "", "true"}, table.Rows[1])
}

func TestParseJSONTableRowObjects(t *testing.T) {
	payload := `[
		{"proveedor": "Molinos", "producto": "Harina", "cantidad": 2},
		{"proveedor": "Dulces SA", "producto": "Azúcar", "cantidad": 1}
	]`

	table, err := ParseJSONTable([]byte(payload))
	require.NoError(t, err)

	// Headers are the sorted key set of the first object.
	assert.Equal(t, []string{"cantidad", "producto", "proveedor"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"2", "Harina", "Molinos"}, table.Rows[0])
}

func TestParseJSONTableRejectsOtherShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"Scalar", `42`},
		{"Object", `{"ok": true}`},
		{"Malformed", `[["a",`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseJSONTable([]byte(tc.payload))
			require.Error(t, err)
			var tableErr *engineerror.TableError
			assert.ErrorAs(t, err, &tableErr)
		})
	}
}

func TestParseCSVTable(t *testing.T) {
	raw := "Proveedor,Producto,Notas\n" +
		"Molinos,Harina,\"entrega el\nlunes\"\n" +
		"\"Dulces, SA\",Azúcar,\"dijo \"\"urgente\"\"\"\n" +
		"Solo proveedor\n"

	table, err := ParseCSVTable(strings.NewReader(raw), ',')
	require.NoError(t, err)

	assert.Equal(t, []string{"Proveedor", "Producto", "Notas"}, table.Headers)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, "entrega el\nlunes", table.Rows[0][2], "quoted embedded newline survives")
	assert.Equal(t, "Dulces, SA", table.Rows[1][0], "quoted delimiter survives")
	assert.Equal(t, `dijo "urgente"`, table.Rows[1][2], "doubled quotes unescape")
	assert.Equal(t, []string{"Solo proveedor"}, table.Rows[2], "short rows are kept, not rejected")
}

func TestParseCSVTableSemicolon(t *testing.T) {
	table, err := ParseCSVTable(strings.NewReader("a;b\n1;2\n"), ';')
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, table.Headers)
	assert.Equal(t, []string{"1", "2"}, table.Rows[0])
}

func TestHTTPSourceJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[["Proveedor","Producto"],["Molinos","Harina"]]`))
	}))
	defer srv.Close()

	table, err := NewHTTPSource(srv.URL, time.Second).FetchTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Proveedor", "Producto"}, table.Headers)
	require.Len(t, table.Rows, 1)
}

func TestHTTPSourceCSVContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		_, _ = w.Write([]byte("Proveedor,Producto\nMolinos,Harina\n"))
	}))
	defer srv.Close()

	table, err := NewHTTPSource(srv.URL, time.Second).FetchTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Proveedor", "Producto"}, table.Headers)
}

func TestHTTPSourceErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, time.Second).FetchTable(context.Background())
	require.Error(t, err)
	var srcErr *engineerror.SourceError
	assert.ErrorAs(t, err, &srcErr)
	assert.Equal(t, srv.URL, srcErr.Endpoint)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(path, []byte("Proveedor,Producto\nMolinos,Harina\n"), 0600))

	src := &FileSource{Path: path}
	table, err := src.FetchTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Proveedor", "Producto"}, table.Headers)

	missing := &FileSource{Path: filepath.Join(dir, "missing.csv")}
	_, err = missing.FetchTable(context.Background())
	assert.Error(t, err)
}
