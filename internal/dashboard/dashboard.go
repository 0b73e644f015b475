// Package dashboard orchestrates the load-and-recompute cycle: fetch a batch
// from the record source, normalize it, swap the store snapshot, then derive
// filtered views, aggregates and report sheets on demand. One cycle runs to
// completion before the next user-triggered action begins.
package dashboard

import (
	"context"

	"labonita/compras/internal/aggregate"
	"labonita/compras/internal/filter"
	"labonita/compras/internal/models"
	"labonita/compras/internal/normalize"
	"labonita/compras/internal/report"
	"labonita/compras/internal/store"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// TableSource is the batch-fetch side of the record source.
type TableSource interface {
	FetchTable(ctx context.Context) (normalize.RawTable, error)
}

// View is the computed model one render pass consumes: the filtered records
// plus every aggregate derived from them. All fields come from the same
// store snapshot, so a view is always self-consistent.
type View struct {
	Records   []models.PurchaseRecord
	Summary   aggregate.Summary
	Suppliers []aggregate.SupplierSummary
}

// ProductAnalysis is the per-product drill-down behind the price chart.
// It reads the full snapshot, not the filtered table view: it answers
// "for this product, across all history" questions.
type ProductAnalysis struct {
	Product   string
	Supplier  string
	Series    []aggregate.PricePoint
	Variation aggregate.Variation
	HasSeries bool
	Best      aggregate.SupplierRanking
	HasBest   bool
}

// Service wires the pipeline together around one record store.
type Service struct {
	source     TableSource
	store      *store.RecordStore
	normalizer *normalize.Normalizer
}

// NewService creates the orchestrator. A nil synonym table selects the
// default keyword policy.
func NewService(src TableSource, synonyms *models.SynonymTable) *Service {
	return &Service{
		source:     src,
		store:      store.NewRecordStore(),
		normalizer: normalize.NewNormalizer(synonyms),
	}
}

// Load runs one fetch-normalize-replace cycle. The load sequence number is
// issued before the fetch so a slow response that arrives after a newer load
// cannot overwrite fresher data. On fetch failure the last-good snapshot is
// retained and the error returned.
func (s *Service) Load(ctx context.Context) error {
	seq := s.store.NextLoadSeq()

	table, err := s.source.FetchTable(ctx)
	if err != nil {
		log.WithError(err).Error("Load failed, keeping last-good snapshot")
		return err
	}

	records := s.normalizer.Table(table)
	if !s.store.ReplaceAll(seq, records) {
		log.WithField("seq", seq).Warn("Load superseded by a newer one")
	}
	return nil
}

// View computes the filtered table view and its aggregates.
func (s *Service) View(criteria models.FilterCriteria) View {
	filtered := filter.Apply(s.store.Snapshot(), criteria)
	return View{
		Records:   filtered,
		Summary:   aggregate.Summarize(filtered),
		Suppliers: aggregate.SummarizeSuppliers(filtered),
	}
}

// Analyze computes the price history, variation narrative and best-supplier
// ranking for one product, optionally scoped to a supplier. The best
// supplier is only ranked in the all-suppliers view, mirroring the chart
// panel.
func (s *Service) Analyze(product, supplier string) ProductAnalysis {
	snapshot := s.store.Snapshot()

	a := ProductAnalysis{Product: product, Supplier: supplier}
	a.Series = aggregate.PriceHistory(snapshot, product, supplier)
	a.Variation, a.HasSeries = aggregate.Variate(a.Series)

	if supplier == "" || supplier == models.SelectAll {
		a.Best, a.HasBest = aggregate.BestSupplier(snapshot, product)
	}
	return a
}

// Sheets projects the filtered records into the export workbook.
func (s *Service) Sheets(criteria models.FilterCriteria) []report.Sheet {
	return report.Project(filter.Apply(s.store.Snapshot(), criteria))
}

// Products lists the distinct product labels of the snapshot.
func (s *Service) Products() []string {
	return aggregate.Products(s.store.Snapshot())
}

// Suppliers lists the distinct supplier labels of the snapshot.
func (s *Service) Suppliers() []string {
	return aggregate.Suppliers(s.store.Snapshot())
}

// SuppliersOf lists the distinct suppliers observed for one product.
func (s *Service) SuppliersOf(product string) []string {
	return aggregate.SuppliersOf(s.store.Snapshot(), product)
}

// Store exposes the underlying record store for tests and embedders.
func (s *Service) Store() *store.RecordStore {
	return s.store
}
