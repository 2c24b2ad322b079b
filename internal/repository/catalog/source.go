// Package catalog loads catalog snapshots from CSV files, Parquet files and Redis.
package catalog

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain"
	domcat "github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/catalog"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/product"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/usecase/recommend"
)

// Report summarizes one load.
type Report struct {
	Rows    int
	Skipped int
	Errors  int
}

// Mux routes each kind to its own source.
type Mux map[domcat.Kind]recommend.SnapshotSource

// Load delegates to the source registered for kind.
func (m Mux) Load(ctx context.Context, kind domcat.Kind) (domcat.Snapshot, error) {
	src, ok := m[kind]
	if !ok || src == nil {
		return domcat.Snapshot{}, fmt.Errorf("%s: %w", kind, domain.ErrSourceNotConfigured)
	}
	return src.Load(ctx, kind)
}

// builder accumulates valid rows. Invalid rows are counted and logged, never fatal.
type builder struct {
	kind    domcat.Kind
	cols    columns
	policy  PricePolicy
	logger  *zap.Logger
	records []product.Record
	report  Report
}

func newBuilder(kind domcat.Kind, cols columns, policy PricePolicy, logger *zap.Logger) *builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &builder{kind: kind, cols: cols, policy: policy, logger: logger}
}

// add converts one source row. line is reported in logs only.
func (b *builder) add(line int, get func(i int) cell) {
	f, err := b.cols.fields(get, b.policy)
	if err == nil {
		var rec product.Record
		rec, err = product.New(strconv.Itoa(len(b.records)), f)
		if err == nil {
			b.records = append(b.records, rec)
			b.report.Rows++
			return
		}
	}
	b.report.Errors++
	b.logger.Warn("catalog row rejected",
		zap.String("catalog", string(b.kind)),
		zap.Int("line", line),
		zap.Error(err),
	)
}

func (b *builder) skip() { b.report.Skipped++ }

func (b *builder) snapshot() (domcat.Snapshot, Report, error) {
	snap, err := domcat.NewSnapshot(b.kind, b.records)
	if err != nil {
		return domcat.Snapshot{}, b.report, err
	}
	b.logger.Info("catalog loaded",
		zap.String("catalog", string(b.kind)),
		zap.Int("rows", b.report.Rows),
		zap.Int("skipped", b.report.Skipped),
		zap.Int("errors", b.report.Errors),
	)
	return snap, b.report, nil
}

func pathFor(paths map[domcat.Kind]string, kind domcat.Kind) (string, error) {
	p, ok := paths[kind]
	if !ok || p == "" {
		return "", fmt.Errorf("%s: %w", kind, domain.ErrSourceNotConfigured)
	}
	return p, nil
}

func copyPaths(paths map[domcat.Kind]string) map[domcat.Kind]string {
	out := make(map[domcat.Kind]string, len(paths))
	for k, v := range paths {
		out[k] = v
	}
	return out
}
