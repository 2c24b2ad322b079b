package catalog

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	domcat "github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/catalog"
)

const bom = "\ufeff"

// CSVSource reads one CSV file per catalog kind.
type CSVSource struct {
	paths  map[domcat.Kind]string
	policy PricePolicy
	logger *zap.Logger
}

// NewCSV creates a CSV source.
func NewCSV(paths map[domcat.Kind]string, policy PricePolicy, logger *zap.Logger) *CSVSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVSource{
		paths:  copyPaths(paths),
		policy: policy,
		logger: logger.With(zap.String("component", "catalog-csv")),
	}
}

// Load reads the file configured for kind.
func (s *CSVSource) Load(ctx context.Context, kind domcat.Kind) (domcat.Snapshot, error) {
	path, err := pathFor(s.paths, kind)
	if err != nil {
		return domcat.Snapshot{}, err
	}
	snap, _, err := ReadCSVFile(ctx, path, kind, s.policy, s.logger)
	return snap, err
}

// ReadCSVFile opens path and reads it with ReadCSV.
func ReadCSVFile(
	ctx context.Context, path string, kind domcat.Kind, policy PricePolicy, logger *zap.Logger,
) (domcat.Snapshot, Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return domcat.Snapshot{}, Report{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	snap, rep, err := ReadCSV(ctx, f, kind, policy, logger)
	if err != nil {
		return domcat.Snapshot{}, rep, fmt.Errorf("read %s: %w", path, err)
	}
	return snap, rep, nil
}

// ReadCSV reads a headed CSV stream. A leading UTF-8 BOM is ignored and rows
// whose cells are all blank are skipped.
func ReadCSV(
	ctx context.Context, r io.Reader, kind domcat.Kind, policy PricePolicy, logger *zap.Logger,
) (domcat.Snapshot, Report, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(bom)); err == nil && string(head) == bom {
		_, _ = br.Discard(len(bom))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return domcat.Snapshot{}, Report{}, errors.New("missing header row")
	}
	if err != nil {
		return domcat.Snapshot{}, Report{}, fmt.Errorf("read header: %w", err)
	}
	header = append([]string(nil), header...)

	cols, err := resolveColumns(kind, header)
	if err != nil {
		return domcat.Snapshot{}, Report{}, err
	}
	b := newBuilder(kind, cols, policy, logger)

	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return domcat.Snapshot{}, b.report, err
		}
		rec, err := cr.Read()
		line++
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				b.report.Errors++
				b.logger.Warn("catalog row unparsable",
					zap.String("catalog", string(kind)), zap.Int("line", line), zap.Error(err))
				continue
			}
			return domcat.Snapshot{}, b.report, fmt.Errorf("read line %d: %w", line, err)
		}
		if blank(rec) {
			b.skip()
			continue
		}
		b.add(line, func(i int) cell {
			if i >= len(rec) {
				return cell{}
			}
			return textCell(rec[i])
		})
	}

	return b.snapshot()
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
