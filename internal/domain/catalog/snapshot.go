package catalog

import (
	"fmt"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/product"
)

// Snapshot is an ordered, immutable sequence of records for one catalog kind.
// Row identity is the position in the sequence.
type Snapshot struct {
	kind    Kind
	records []product.Record
}

// NewSnapshot validates the kind and copies the records.
func NewSnapshot(kind Kind, records []product.Record) (Snapshot, error) {
	if !kind.IsValid() {
		return Snapshot{}, fmt.Errorf("unsupported catalog kind: %q", kind)
	}
	return Snapshot{
		kind:    kind,
		records: append([]product.Record(nil), records...),
	}, nil
}

// Kind returns the catalog kind.
func (s *Snapshot) Kind() Kind { return s.kind }

// Len returns the number of rows.
func (s *Snapshot) Len() int { return len(s.records) }

// At returns the record at position i.
func (s *Snapshot) At(i int) *product.Record { return &s.records[i] }

// Records returns a copy of all rows in order.
func (s *Snapshot) Records() []product.Record {
	return append([]product.Record(nil), s.records...)
}
