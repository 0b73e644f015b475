// Package writeback builds and sends the structured payloads for the three
// write operations the record source understands: create, update-by-id and
// soft-delete. The engine never applies a write to its own snapshot; callers
// reload after the transport confirms.
package writeback

import (
	"encoding/json"
	"net/url"

	"labonita/compras/internal/cellparse"
	"labonita/compras/internal/models"

	"github.com/google/uuid"
)

// Action is the operation verb of the wire contract.
type Action string

const (
	// ActionCreate appends a new row at the source.
	ActionCreate Action = "agregar"
	// ActionUpdate replaces the row matching the payload's id. Soft-deletes
	// are updates too: the row is kept with a cancelled status so history
	// survives.
	ActionUpdate Action = "editar"
)

// Payload is the wire shape of one write. Field names follow the sheet
// endpoint's Spanish contract.
type Payload struct {
	Action   Action `json:"accion"`
	ID       string `json:"id"`
	Supplier string `json:"proveedor"`
	Product  string `json:"producto"`
	Quantity string `json:"cantidad"`
	UnitCost string `json:"costo"`
	Total    string `json:"total"`
	Date     string `json:"fecha"`
	Note     string `json:"notas"`
	Status   string `json:"estatus"`
	Payment  string `json:"pago"`
}

// NewCreate builds the payload appending a record. A fresh id is issued when
// the record carries none.
func NewCreate(rec models.PurchaseRecord) Payload {
	p := fromRecord(rec)
	p.Action = ActionCreate
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return p
}

// NewUpdate builds the payload replacing the record with rec's id.
func NewUpdate(rec models.PurchaseRecord) Payload {
	p := fromRecord(rec)
	p.Action = ActionUpdate
	return p
}

// NewCancel builds the soft-delete payload for a record: an update that
// marks it cancelled and leaves every other field untouched.
func NewCancel(rec models.PurchaseRecord) Payload {
	rec.Status = models.StatusCancelled
	return NewUpdate(rec)
}

func fromRecord(rec models.PurchaseRecord) Payload {
	return Payload{
		ID:       rec.ID,
		Supplier: rec.Supplier,
		Product:  rec.Product,
		Quantity: rec.Quantity.String(),
		UnitCost: rec.UnitCost.String(),
		Total:    rec.Total.String(),
		Date:     cellparse.CanonicalDay(rec.PurchaseDate),
		Note:     rec.Note,
		Status:   string(rec.Status),
		Payment:  string(rec.Payment),
	}
}

// JSONBody renders the payload as a JSON request body.
func (p Payload) JSONBody() ([]byte, error) {
	return json.Marshal(p)
}

// FormBody renders the payload as form values. Some deployments post
// form-encoded bodies because a text/plain-adjacent content type spares the
// browser client a CORS preflight round trip.
func (p Payload) FormBody() url.Values {
	return url.Values{
		"accion":    {string(p.Action)},
		"id":        {p.ID},
		"proveedor": {p.Supplier},
		"producto":  {p.Product},
		"cantidad":  {p.Quantity},
		"costo":     {p.UnitCost},
		"total":     {p.Total},
		"fecha":     {p.Date},
		"notas":     {p.Note},
		"estatus":   {p.Status},
		"pago":      {p.Payment},
	}
}
