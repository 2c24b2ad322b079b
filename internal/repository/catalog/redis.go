package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/db"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain"
	domcat "github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/catalog"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/product"
)

const redisBatch = 500

// store is the consumer interface for catalog rows.
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Manifest describes the rows of one imported catalog.
type Manifest struct {
	Rows       int       `json:"rows"`
	ImportedAt time.Time `json:"imported_at"`
}

// RedisRepo stores catalogs as one hash per row plus a JSON manifest.
// Rows are written before the manifest so readers never see a manifest
// pointing at missing rows.
type RedisRepo struct {
	store  store
	prefix string
	logger *zap.Logger
	now    func() time.Time
}

// NewRedis creates a Redis-backed catalog repository.
func NewRedis(s store, keyPrefix string, logger *zap.Logger) *RedisRepo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisRepo{
		store:  s,
		prefix: keyPrefix,
		logger: logger.With(zap.String("component", "catalog-redis")),
		now:    time.Now,
	}
}

func (r *RedisRepo) manifestKey(kind domcat.Kind) string {
	return r.prefix + "catalog:" + string(kind) + ":manifest"
}

func (r *RedisRepo) rowKey(kind domcat.Kind, i int) string {
	return fmt.Sprintf("%scatalog:%s:row:%06d", r.prefix, kind, i)
}

func (r *RedisRepo) rowPattern(kind domcat.Kind) string {
	return r.prefix + "catalog:" + string(kind) + ":row:*"
}

// Imported reports whether a manifest exists for kind.
func (r *RedisRepo) Imported(ctx context.Context, kind domcat.Kind) (bool, error) {
	ok, err := r.store.Exists(ctx, r.manifestKey(kind))
	if err != nil {
		return false, fmt.Errorf("check manifest: %w", err)
	}
	return ok, nil
}

// Manifest returns the manifest of an imported catalog.
func (r *RedisRepo) Manifest(ctx context.Context, kind domcat.Kind) (Manifest, error) {
	data, err := r.store.Get(ctx, r.manifestKey(kind))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return Manifest{}, fmt.Errorf("%s catalog not imported: %w", kind, domain.ErrNotFound)
		}
		return Manifest{}, fmt.Errorf("get manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}
	if m.Rows < 0 {
		return Manifest{}, fmt.Errorf("decode manifest: negative row count %d", m.Rows)
	}
	return m, nil
}

// Load reads the rows listed by the manifest in order.
func (r *RedisRepo) Load(ctx context.Context, kind domcat.Kind) (domcat.Snapshot, error) {
	m, err := r.Manifest(ctx, kind)
	if err != nil {
		return domcat.Snapshot{}, err
	}

	records := make([]product.Record, 0, m.Rows)
	rejected := 0
	for start := 0; start < m.Rows; start += redisBatch {
		end := min(start+redisBatch, m.Rows)
		keys := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			keys = append(keys, r.rowKey(kind, i))
		}

		hashes, err := r.store.HGetAllMulti(ctx, keys)
		if err != nil {
			return domcat.Snapshot{}, fmt.Errorf("load rows %d-%d: %w", start, end-1, err)
		}
		for i, h := range hashes {
			rec, err := hashToRecord(h)
			if err != nil {
				rejected++
				r.logger.Warn("catalog row rejected",
					zap.String("catalog", string(kind)),
					zap.String("key", keys[i]),
					zap.Error(err),
				)
				continue
			}
			records = append(records, rec)
		}
	}

	r.logger.Info("catalog loaded",
		zap.String("catalog", string(kind)),
		zap.Int("rows", len(records)),
		zap.Int("errors", rejected),
		zap.Time("imported_at", m.ImportedAt),
	)
	return domcat.NewSnapshot(kind, records)
}

// Save replaces the stored catalog with snap and removes rows past its end.
func (r *RedisRepo) Save(ctx context.Context, snap domcat.Snapshot) error {
	kind := snap.Kind()
	n := snap.Len()

	for start := 0; start < n; start += redisBatch {
		end := min(start+redisBatch, n)
		items := make([]db.HashSetItem, 0, end-start)
		for i := start; i < end; i++ {
			items = append(items, db.HashSetItem{Key: r.rowKey(kind, i), Fields: recordToHash(snap.At(i))})
		}
		if err := r.store.HSetMulti(ctx, items); err != nil {
			return fmt.Errorf("write rows %d-%d: %w", start, end-1, err)
		}
	}

	data, err := json.Marshal(Manifest{Rows: n, ImportedAt: r.now().UTC()})
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := r.store.Set(ctx, r.manifestKey(kind), data); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	stale, err := r.staleRows(ctx, kind, n)
	if err != nil {
		return err
	}
	for start := 0; start < len(stale); start += redisBatch {
		end := min(start+redisBatch, len(stale))
		if err := r.store.Del(ctx, stale[start:end]...); err != nil {
			return fmt.Errorf("delete stale rows: %w", err)
		}
	}

	r.logger.Info("catalog saved",
		zap.String("catalog", string(kind)),
		zap.Int("rows", n),
		zap.Int("stale_deleted", len(stale)),
	)
	return nil
}

func (r *RedisRepo) staleRows(ctx context.Context, kind domcat.Kind, n int) ([]string, error) {
	keys, err := r.store.Scan(ctx, r.rowPattern(kind))
	if err != nil {
		return nil, fmt.Errorf("scan rows: %w", err)
	}
	marker := "catalog:" + string(kind) + ":row:"
	var stale []string
	for _, k := range keys {
		idx := strings.LastIndex(k, marker)
		if idx < 0 {
			continue
		}
		i, err := strconv.Atoi(k[idx+len(marker):])
		if err != nil || i >= n {
			stale = append(stale, k)
		}
	}
	return stale, nil
}

const (
	hashName       = "name"
	hashBrand      = "brand"
	hashPrice      = "price"
	hashRating     = "rating"
	hashProductURL = "product_url"
	hashImageURL   = "image_url"
	hashID         = "id"
	hashTagPrefix  = "tag:"
	hashTextPrefix = "text:"
)

// recordToHash converts a record to a flat map for HSET.
func recordToHash(rec *product.Record) map[string]string {
	m := make(map[string]string, 7+len(rec.Tags())+len(rec.Texts()))
	m[hashName] = rec.Name()
	m[hashBrand] = rec.Brand()
	m[hashPrice] = strconv.FormatFloat(rec.Price(), 'f', -1, 64)
	m[hashRating] = strconv.FormatFloat(rec.Rating(), 'f', -1, 64)
	m[hashProductURL] = rec.ProductURL()
	m[hashImageURL] = rec.ImageURL()
	m[hashID] = rec.ID()
	for k, v := range rec.Tags() {
		m[hashTagPrefix+k] = v
	}
	for k, v := range rec.Texts() {
		m[hashTextPrefix+k] = v
	}
	return m
}

// hashToRecord parses a row hash. A missing hash comes back empty and fails on the name.
func hashToRecord(m map[string]string) (product.Record, error) {
	f := product.Fields{
		Name:       m[hashName],
		Brand:      m[hashBrand],
		ProductURL: m[hashProductURL],
		ImageURL:   m[hashImageURL],
		Tags:       map[string]string{},
		Texts:      map[string]string{},
	}
	var err error
	if f.Price, err = parseStored(m[hashPrice]); err != nil {
		return product.Record{}, fmt.Errorf("price: %w", err)
	}
	if f.Rating, err = parseStored(m[hashRating]); err != nil {
		return product.Record{}, fmt.Errorf("rating: %w", err)
	}
	for k, v := range m {
		switch {
		case strings.HasPrefix(k, hashTagPrefix):
			f.Tags[strings.TrimPrefix(k, hashTagPrefix)] = v
		case strings.HasPrefix(k, hashTextPrefix):
			f.Texts[strings.TrimPrefix(k, hashTextPrefix)] = v
		}
	}
	return product.New(m[hashID], f)
}

func parseStored(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
