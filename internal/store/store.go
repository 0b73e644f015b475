// Package store holds the current snapshot of normalized purchase records.
// The snapshot is replaced wholesale on each completed load; consumers never
// observe a partially loaded state or a mix of two loads.
package store

import (
	"sort"
	"sync"
	"sync/atomic"

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

// RecordStore is the in-memory system-of-record snapshot. ReplaceAll is the
// only mutation boundary; everything downstream (filter, aggregate, report)
// is a pure function over Snapshot output.
type RecordStore struct {
	mu      sync.RWMutex
	records []models.PurchaseRecord
	applied uint64

	seq atomic.Uint64
}

// NewRecordStore creates an empty store.
func NewRecordStore() *RecordStore {
	return &RecordStore{}
}

// NextLoadSeq issues the sequence number for a load about to start.
// Callers must obtain it before fetching so that a slow fetch finishing after
// a newer one cannot clobber fresher data.
func (s *RecordStore) NextLoadSeq() uint64 {
	return s.seq.Add(1)
}

// ReplaceAll atomically swaps in the records of one completed load and
// re-sorts them into canonical order: purchase date descending, records
// without a date last, ties kept in source order. The stable tie-break is
// load-bearing: latest-vs-previous comparisons assume chronological order
// within a product or supplier subgroup.
//
// It returns false when seq belongs to a load older than one already applied;
// the stale result is discarded and the newer snapshot retained.
func (s *RecordStore) ReplaceAll(seq uint64, records []models.PurchaseRecord) bool {
	sorted := make([]models.PurchaseRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch {
		case a.HasDate() && !b.HasDate():
			return true
		case !a.HasDate() && b.HasDate():
			return false
		default:
			return a.PurchaseDate.After(b.PurchaseDate)
		}
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.applied {
		log.WithFields(logrus.Fields{
			"stale_seq":   seq,
			"applied_seq": s.applied,
		}).Warn("Discarding stale load result")
		return false
	}

	s.records = sorted
	s.applied = seq

	log.WithFields(logrus.Fields{
		"seq":   seq,
		"count": len(sorted),
	}).Info("Record store replaced")
	return true
}

// Snapshot returns a copy of the current records in canonical order.
// The copy keeps one render/aggregate/export pass self-consistent even if a
// reload lands midway through it.
func (s *RecordStore) Snapshot() []models.PurchaseRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.PurchaseRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records in the current snapshot.
func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
