// Package record handles the write commands: append a purchase and cancel one.
package record

import (
	"context"
	"fmt"
	"time"

	"labonita/compras/cmd/root"
	"labonita/compras/internal/cellparse"
	"labonita/compras/internal/models"
	"labonita/compras/internal/writeback"

	"github.com/spf13/cobra"
)

var (
	supplier string
	product  string
	quantity string
	cost     string
	total    string
	date     string
	note     string
	paid     bool

	cancelID string
)

// Cmd represents the record command
var Cmd = &cobra.Command{
	Use:   "record",
	Short: "Send write operations to the record source",
	Long: `Record posts write payloads to the source endpoint: "add" appends a
purchase, "cancel" soft-deletes one by id. The engine never applies a
write locally; reload to see the confirmed state.`,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a purchase record at the source",
	Run:   addFunc,
}

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel a purchase record (soft-delete, history survives)",
	Run:   cancelFunc,
}

func init() {
	addCmd.Flags().StringVar(&supplier, "supplier", "", "Supplier label (required)")
	addCmd.Flags().StringVar(&product, "product", "", "Product label (required)")
	addCmd.Flags().StringVar(&quantity, "quantity", "1", "Quantity purchased")
	addCmd.Flags().StringVar(&cost, "cost", "0", "Unit cost")
	addCmd.Flags().StringVar(&total, "total", "", "Total amount (quantity times cost when omitted)")
	addCmd.Flags().StringVar(&date, "date", "", "Purchase day (e.g. 2026-01-15 or 15/01/2026)")
	addCmd.Flags().StringVar(&note, "note", "", "Free-text note")
	addCmd.Flags().BoolVar(&paid, "paid", false, "Mark the purchase as already paid")
	for _, flag := range []string{"supplier", "product"} {
		if err := addCmd.MarkFlagRequired(flag); err != nil {
			panic(err)
		}
	}

	cancelCmd.Flags().StringVar(&cancelID, "id", "", "ID of the record to cancel (required)")
	if err := cancelCmd.MarkFlagRequired("id"); err != nil {
		panic(err)
	}

	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(cancelCmd)
}

func newTransport() *writeback.Transport {
	endpoint := root.Endpoint
	if endpoint == "" {
		endpoint = root.Cfg.Source.Endpoint
	}
	if endpoint == "" {
		root.Log.Fatal("No write endpoint: set --endpoint or source.endpoint in the configuration")
	}

	return writeback.NewTransport(
		endpoint,
		writeback.ParseEncoding(root.Cfg.Source.WriteEncoding),
		time.Duration(root.Cfg.Source.TimeoutSeconds)*time.Second,
	)
}

func addFunc(cmd *cobra.Command, args []string) {
	rec := models.PurchaseRecord{
		Supplier: supplier,
		Product:  product,
		Quantity: cellparse.ParseAmount(quantity),
		UnitCost: cellparse.ParseAmount(cost),
		Note:     note,
		Status:   models.StatusActive,
		Payment:  models.PaymentPending,
	}
	if paid {
		rec.Payment = models.PaymentPaid
	}

	if parsed, ok := cellparse.ParseAmountChecked(total); ok {
		rec.Total = parsed
	} else {
		rec.Total = rec.Quantity.Mul(rec.UnitCost)
	}

	if day, ok := cellparse.ParseDateFlexible(date); ok {
		rec.PurchaseDate = day
	} else if date != "" {
		root.Log.Fatalf("Unparseable --date value %q", date)
	}

	payload := writeback.NewCreate(rec)
	if err := newTransport().Send(context.Background(), payload); err != nil {
		root.Log.Fatalf("Error sending record: %v", err)
	}

	fmt.Printf("Registrado %q de %q (id %s)\n", product, supplier, payload.ID)
}

func cancelFunc(cmd *cobra.Command, args []string) {
	// The cancel payload carries the full row, so load the current snapshot
	// and find the record first. Cancelled rows are included: cancelling an
	// already-cancelled record is a harmless no-op at the source.
	svc := root.NewService()
	if err := svc.Load(context.Background()); err != nil {
		root.Log.Fatalf("Error loading records: %v", err)
	}

	var target *models.PurchaseRecord
	for _, rec := range svc.Store().Snapshot() {
		if rec.ID == cancelID {
			target = &rec
			break
		}
	}
	if target == nil {
		root.Log.Fatalf("No record with id %q", cancelID)
	}

	payload := writeback.NewCancel(*target)
	if err := newTransport().Send(context.Background(), payload); err != nil {
		root.Log.Fatalf("Error cancelling record: %v", err)
	}

	fmt.Printf("Cancelado el registro %s (%s de %s)\n", cancelID, target.Product, target.Supplier)
}
