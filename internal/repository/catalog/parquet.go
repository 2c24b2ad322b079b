package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
	"go.uber.org/zap"

	domcat "github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/catalog"
)

const parquetBatch = 512

// ParquetSource reads one Parquet file per catalog kind. Columns use the
// same names as the CSV layout and are all optional except the name.
type ParquetSource struct {
	paths  map[domcat.Kind]string
	policy PricePolicy
	logger *zap.Logger
}

// NewParquet creates a Parquet source.
func NewParquet(paths map[domcat.Kind]string, policy PricePolicy, logger *zap.Logger) *ParquetSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ParquetSource{
		paths:  copyPaths(paths),
		policy: policy,
		logger: logger.With(zap.String("component", "catalog-parquet")),
	}
}

// Load reads the file configured for kind.
func (s *ParquetSource) Load(ctx context.Context, kind domcat.Kind) (domcat.Snapshot, error) {
	path, err := pathFor(s.paths, kind)
	if err != nil {
		return domcat.Snapshot{}, err
	}
	snap, _, err := ReadParquetFile(ctx, path, kind, s.policy, s.logger)
	return snap, err
}

// parquetHandle keeps the OS file open for as long as the parquet view lives.
type parquetHandle struct {
	pf   *parquet.File
	file *os.File
}

func (h *parquetHandle) Close() error { return h.file.Close() }

func openParquet(path string) (*parquetHandle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("parquet open %s: %w", path, err)
	}
	return &parquetHandle{pf: pf, file: f}, nil
}

// ReadParquetFile reads every row group of a Parquet file into a snapshot.
func ReadParquetFile(
	ctx context.Context, path string, kind domcat.Kind, policy PricePolicy, logger *zap.Logger,
) (domcat.Snapshot, Report, error) {
	h, err := openParquet(path)
	if err != nil {
		return domcat.Snapshot{}, Report{}, err
	}
	defer h.Close()

	leaves := h.pf.Schema().Columns()
	header := make([]string, len(leaves))
	for i, p := range leaves {
		if len(p) > 0 {
			header[i] = p[0]
		}
	}
	cols, err := resolveColumns(kind, header)
	if err != nil {
		return domcat.Snapshot{}, Report{}, fmt.Errorf("%s: %w", path, err)
	}
	b := newBuilder(kind, cols, policy, logger)

	line := 0
	for _, rg := range h.pf.RowGroups() {
		if err := readRowGroup(ctx, rg, len(header), b, &line); err != nil {
			return domcat.Snapshot{}, b.report, fmt.Errorf("%s: %w", path, err)
		}
	}
	return b.snapshot()
}

func readRowGroup(ctx context.Context, rg parquet.RowGroup, width int, b *builder, line *int) error {
	rows := parquet.NewRowGroupReader(rg)
	defer rows.Close()

	buf := make([]parquet.Row, parquetBatch)
	cells := make([]cell, width)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, readErr := rows.ReadRows(buf)
		for i := 0; i < n; i++ {
			*line++
			for c := range cells {
				cells[c] = cell{}
			}
			empty := true
			for _, v := range buf[i] {
				col := v.Column()
				if col < 0 || col >= width || v.IsNull() {
					continue
				}
				cells[col] = valueCell(v)
				if cells[col].numeric || cells[col].s != "" {
					empty = false
				}
			}
			if empty {
				b.skip()
				continue
			}
			b.add(*line, func(c int) cell { return cells[c] })
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return fmt.Errorf("read rows: %w", readErr)
		}
	}
}

func valueCell(v parquet.Value) cell {
	switch v.Kind() {
	case parquet.Double:
		return numCell(v.Double())
	case parquet.Float:
		return numCell(float64(v.Float()))
	case parquet.Int32:
		return numCell(float64(v.Int32()))
	case parquet.Int64:
		return numCell(float64(v.Int64()))
	default:
		return textCell(v.String())
	}
}
