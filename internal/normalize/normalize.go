// Package normalize maps raw spreadsheet rows onto the canonical
// PurchaseRecord model. Column order is discovered from header text or taken
// from the fixed sheet contract; no positional access leaks past this package.
package normalize

import (
	"strconv"
	"strings"

	"labonita/compras/internal/cellparse"
	"labonita/compras/internal/models"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// RawTable is the shape every ingress adapter reduces its source to:
// an ordered list of indexable string rows plus the header row they follow.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// ColumnRole names the meaning of one source column.
type ColumnRole int

const (
	RoleID ColumnRole = iota
	RoleSupplier
	RoleProduct
	RoleQuantity
	RoleUnitCost
	RoleTotal
	RoleDate
	RoleNote
	RoleStatus
	RolePayment
	// RoleRegistered is the row's registration timestamp, used as the
	// fallback date source and as ID synthesis material.
	RoleRegistered
)

// RoleMap maps column roles to zero-based column indexes. A missing role
// means the source has no such column.
type RoleMap map[ColumnRole]int

// headerKeywords drives role discovery. Header text varies between sheet
// variants ("Costo unitario" vs "Costo"), so matching is by case-insensitive
// substring, first match wins per role.
var headerKeywords = []struct {
	role    ColumnRole
	keyword string
}{
	{RoleSupplier, "proveedor"},
	{RoleProduct, "producto"},
	{RoleQuantity, "cantidad"},
	{RoleUnitCost, "costo"},
	{RoleTotal, "total"},
	{RoleDate, "fecha"},
	{RoleNote, "nota"},
	{RoleStatus, "estatus"},
	{RolePayment, "pago"},
	{RoleRegistered, "marca"},
	{RoleRegistered, "timestamp"},
}

// FixedRoles returns the role map for the canonical 10-column sheet layout:
// ID, Proveedor, Producto, Cantidad, Costo, Total, Fecha, Notas, Estatus, Pago.
func FixedRoles() RoleMap {
	return RoleMap{
		RoleID:       0,
		RoleSupplier: 1,
		RoleProduct:  2,
		RoleQuantity: 3,
		RoleUnitCost: 4,
		RoleTotal:    5,
		RoleDate:     6,
		RoleNote:     7,
		RoleStatus:   8,
		RolePayment:  9,
	}
}

// DiscoverRoles builds a role map from a header row. "Total" is matched
// before "costo" would see it, and the ID column only matches an exact "id"
// header because "cantidad" contains "id" as a substring.
func DiscoverRoles(headers []string) RoleMap {
	roles := make(RoleMap)

	for idx, header := range headers {
		h := strings.ToLower(strings.TrimSpace(header))
		if h == "" {
			continue
		}

		if h == "id" {
			if _, taken := roles[RoleID]; !taken {
				roles[RoleID] = idx
			}
			continue
		}

		for _, entry := range headerKeywords {
			if _, taken := roles[entry.role]; taken {
				continue
			}
			if strings.Contains(h, entry.keyword) {
				roles[entry.role] = idx
				break
			}
		}
	}

	// "Costo total" style headers would claim the cost role for the total
	// column; prefer the distinct total column when both resolved to one index.
	if ci, ok := roles[RoleUnitCost]; ok {
		if ti, ok2 := roles[RoleTotal]; ok2 && ci == ti {
			delete(roles, RoleTotal)
		}
	}

	return roles
}

// Normalizer turns raw rows into purchase records using one fixed
// categorical-synonym policy.
type Normalizer struct {
	synonyms *models.SynonymTable
}

// NewNormalizer creates a Normalizer. A nil table selects the defaults.
func NewNormalizer(synonyms *models.SynonymTable) *Normalizer {
	if synonyms == nil {
		synonyms = models.DefaultSynonyms()
	}
	return &Normalizer{synonyms: synonyms}
}

// Row normalizes one raw row. It returns nil when the row is rejected, which
// happens exactly when both supplier and product are empty after trimming.
// ordinal is the row's position within the load and feeds ID synthesis.
func (n *Normalizer) Row(row []string, roles RoleMap, ordinal int) *models.PurchaseRecord {
	supplier := cellparse.TrimmedLabel(cellAt(row, roles, RoleSupplier))
	product := cellparse.TrimmedLabel(cellAt(row, roles, RoleProduct))

	if supplier == "" && product == "" {
		return nil
	}

	quantity := cellparse.ParseAmount(cellAt(row, roles, RoleQuantity))
	unitCost := cellparse.ParseAmount(cellAt(row, roles, RoleUnitCost))

	// Use the provided total when it is present and numeric; otherwise derive
	// it. A provided-vs-derived mismatch is never silently replaced.
	total, ok := cellparse.ParseAmountChecked(cellAt(row, roles, RoleTotal))
	if !ok {
		total = quantity.Mul(unitCost)
	}

	registered := cellAt(row, roles, RoleRegistered)

	// Explicit purchase-date column first, registration timestamp second.
	date, hasDate := cellparse.ParseDateFlexible(cellAt(row, roles, RoleDate))
	if !hasDate {
		date, _ = cellparse.ParseDateFlexible(registered)
	}

	id := cellparse.TrimmedLabel(cellAt(row, roles, RoleID))
	if id == "" {
		id = synthesizeID(registered, supplier, product, ordinal)
	}

	return &models.PurchaseRecord{
		ID:           id,
		Supplier:     supplier,
		Product:      product,
		Quantity:     quantity,
		UnitCost:     unitCost,
		Total:        total,
		PurchaseDate: date,
		Note:         cellparse.TrimmedLabel(cellAt(row, roles, RoleNote)),
		Status:       n.synonyms.NormalizeStatus(cellAt(row, roles, RoleStatus)),
		Payment:      n.synonyms.NormalizePayment(cellAt(row, roles, RolePayment)),
	}
}

// Table normalizes a whole raw table, discovering roles from its header row.
// Rejected rows are dropped; the returned records keep source order.
func (n *Normalizer) Table(table RawTable) []models.PurchaseRecord {
	roles := DiscoverRoles(table.Headers)
	if len(roles) == 0 {
		// Headerless exports follow the fixed sheet layout.
		roles = FixedRoles()
	}
	return n.rows(table.Rows, roles)
}

// TableFixed normalizes rows against the fixed 10-column contract,
// ignoring any header text.
func (n *Normalizer) TableFixed(rows [][]string) []models.PurchaseRecord {
	return n.rows(rows, FixedRoles())
}

func (n *Normalizer) rows(rows [][]string, roles RoleMap) []models.PurchaseRecord {
	records := make([]models.PurchaseRecord, 0, len(rows))
	rejected := 0

	for ordinal, row := range rows {
		rec := n.Row(row, roles, ordinal)
		if rec == nil {
			rejected++
			continue
		}
		records = append(records, *rec)
	}

	log.WithFields(logrus.Fields{
		"rows":     len(rows),
		"records":  len(records),
		"rejected": rejected,
	}).Debug("Normalized raw table")

	return records
}

// synthesizeID builds a deterministic identifier for sources without an ID
// column. The ordinal guarantees uniqueness within one load even for fully
// duplicate rows, and repeated loads of the same sheet yield the same IDs.
func synthesizeID(registered, supplier, product string, ordinal int) string {
	return strings.Join([]string{
		cellparse.TrimmedLabel(registered),
		supplier,
		product,
		strconv.Itoa(ordinal),
	}, "|")
}

// cellAt returns the raw cell for a role, or the empty string when the role
// is unmapped or the row is short. Malformed rows pad rather than fail.
func cellAt(row []string, roles RoleMap, role ColumnRole) string {
	idx, ok := roles[role]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
