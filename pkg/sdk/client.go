package beauty

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/db"
	dbRedis "github.com/Tejass087/Skin-Care-Reccomadation/internal/db/redis"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain"
	domcat "github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/catalog"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/product"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/query"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/ranking"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/skin"
	catalogrepo "github.com/Tejass087/Skin-Care-Reccomadation/internal/repository/catalog"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/repository/curated"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/usecase/analysis"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/usecase/matcher"
	recommenduc "github.com/Tejass087/Skin-Care-Reccomadation/internal/usecase/recommend"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "beauty:"
)

// Internal interfaces for substitution in tests.
type recommendUseCase interface {
	Reload(ctx context.Context, kind domcat.Kind) error
	Recommend(ctx context.Context, kind domcat.Kind, raw query.Raw) (ranking.Result, error)
	Status() []recommenduc.Status
}

type matchUseCase interface {
	Match(metrics skin.Metrics) skin.Bundle
}

// Client is the recommender SDK entry point. It is safe for concurrent use.
type Client struct {
	store     db.Store
	recommend recommendUseCase
	matcher   matchUseCase
	memory    *memorySource
	obs       *observer
}

// New builds a Client and loads every configured catalog.
// The provided context bounds the store readiness check and the initial load.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{keyPrefix: defaultKeyPrefix}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	table, err := curated.Load(cfg.curatedPath)
	if err != nil {
		return nil, fmt.Errorf("beauty: %w", err)
	}

	var store db.Store
	if len(cfg.addrs) > 0 {
		store, err = openStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	c, err := wireClient(store, cfg, obs, matcher.New(table, nil))
	if err != nil {
		c.Close()
		return nil, err
	}

	for _, kind := range c.Catalogs() {
		if err := c.Reload(ctx, kind.Catalog); err != nil {
			c.Close()
			return nil, err
		}
	}
	return c, nil
}

func openStore(ctx context.Context, cfg *clientConfig) (db.Store, error) {
	// Valkey speaks the Redis protocol; rueidis serves both drivers.
	switch cfg.driver {
	case "redis", "valkey":
	default:
		return nil, fmt.Errorf("beauty: unknown driver %q", cfg.driver)
	}

	s, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("beauty: create %s store: %w", cfg.driver, err)
	}
	if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		s.Close()
		return nil, fmt.Errorf("beauty: database not ready: %w", err)
	}
	return s, nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer, m matchUseCase) (*Client, error) {
	policy := catalogrepo.PriceCents
	if cfg.wholePrices {
		policy = catalogrepo.PriceWhole
	}

	c := &Client{store: store, matcher: m, memory: newMemorySource(), obs: obs}

	for kind := range cfg.catalogs {
		if _, err := toKind(kind); err != nil {
			return c, fmt.Errorf("beauty: %w", err)
		}
	}

	var engines []*recommenduc.Engine
	sources := make(map[domcat.Kind]recommenduc.SnapshotSource, len(cfg.catalogs))
	for _, kind := range domcat.Kinds() {
		cc, ok := cfg.catalogs[Catalog(kind)]
		if !ok {
			continue
		}
		profile, err := domcat.DefaultProfile(kind)
		if err != nil {
			return c, err
		}
		engines = append(engines, recommenduc.NewEngine(profile.WithTopK(cfg.similarityTopK, cfg.filterTopK), nil))

		switch cc.origin {
		case originMemory:
			c.memory.set(kind, cc.products)
			sources[kind] = c.memory
		case originFile:
			src, err := fileSource(kind, cc.path, policy)
			if err != nil {
				return c, err
			}
			sources[kind] = src
		case originStore:
			if store == nil {
				return c, fmt.Errorf("beauty: %s catalog is stored but no database is configured (use WithValkey or WithRedis)", kind)
			}
			sources[kind] = catalogrepo.NewRedis(store, cfg.keyPrefix, nil)
		}
	}

	svc := recommenduc.New(zap.NewNop(), engines...)
	for kind, src := range sources {
		svc.WithSource(kind, src)
	}
	c.recommend = svc
	return c, nil
}

func fileSource(kind domcat.Kind, path string, policy catalogrepo.PricePolicy) (recommenduc.SnapshotSource, error) {
	paths := map[domcat.Kind]string{kind: path}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return catalogrepo.NewCSV(paths, policy, nil), nil
	case ".parquet":
		return catalogrepo.NewParquet(paths, policy, nil), nil
	default:
		return nil, fmt.Errorf("beauty: %s catalog: unsupported file type %q", kind, ext)
	}
}

// Close releases the catalog store connection, if any.
func (c *Client) Close() {
	if c != nil && c.store != nil {
		c.store.Close()
	}
}

// Recommend ranks a catalog. With q.Text set, filtered products are ordered by
// similarity to the text, otherwise by rating.
func (c *Client) Recommend(ctx context.Context, catalog Catalog, q Query) (_ Result, err error) {
	start := time.Now()
	defer func() { c.obs.observe("recommend", catalog, start, err) }()

	kind, err := toKind(catalog)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownCatalog, catalog)
	}
	res, err := c.recommend.Recommend(ctx, kind, toRaw(&q))
	if err != nil {
		return Result{}, err
	}
	return fromResult(&res), nil
}

// Reload reads a catalog from its source again and swaps it in.
// On failure the previous catalog keeps serving.
func (c *Client) Reload(ctx context.Context, catalog Catalog) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("reload", catalog, start, err) }()

	kind, err := toKind(catalog)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownCatalog, catalog)
	}
	if err := c.recommend.Reload(ctx, kind); err != nil {
		return err
	}
	if st, ok := c.status(catalog); ok {
		c.obs.prepared(catalog, st.Rows)
	}
	return nil
}

// Replace swaps the products of a catalog configured with WithCatalog.
func (c *Client) Replace(ctx context.Context, catalog Catalog, products ...Product) error {
	kind, err := toKind(catalog)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownCatalog, catalog)
	}
	prev, ok := c.memory.swap(kind, products)
	if !ok {
		return fmt.Errorf("%w: %s catalog is not served from memory", ErrSourceNotConfigured, catalog)
	}
	if err := c.Reload(ctx, catalog); err != nil {
		c.memory.set(kind, prev)
		return err
	}
	return nil
}

// Catalogs returns the readiness of every configured catalog.
func (c *Client) Catalogs() []CatalogStatus {
	sts := c.recommend.Status()
	out := make([]CatalogStatus, 0, len(sts))
	for i := range sts {
		out = append(out, fromStatus(&sts[i]))
	}
	return out
}

func (c *Client) status(catalog Catalog) (CatalogStatus, bool) {
	for _, st := range c.Catalogs() {
		if st.Catalog == catalog {
			return st, true
		}
	}
	return CatalogStatus{}, false
}

// Match returns the curated bundle for a skin profile.
func (c *Client) Match(_ context.Context, p SkinProfile) (_ Bundle, err error) {
	start := time.Now()
	defer func() { c.obs.observe("match", "", start, err) }()

	metrics, err := skin.NewMetrics(p.Type, p.Tone, p.Acne)
	if err != nil {
		return Bundle{}, err
	}
	return c.matcher.Match(metrics), nil
}

// Analyze classifies skin from sampled pixels and picks the curated bundle.
// No pixels yields ErrInvalidRequest.
func (c *Client) Analyze(_ context.Context, pixels []Pixel) (_ Analysis, err error) {
	start := time.Now()
	defer func() { c.obs.observe("analyze", "", start, err) }()

	if len(pixels) == 0 {
		return Analysis{}, fmt.Errorf("%w: no skin pixels", ErrInvalidRequest)
	}
	metrics, err := analysis.Analyze(pixels)
	if err != nil {
		return Analysis{}, err
	}
	return Analysis{
		Type:            string(metrics.Type()),
		Tone:            string(metrics.Tone()),
		ToneDescription: metrics.ToneDescription(),
		Acne:            string(metrics.Acne()),
		Raw:             metrics.Raw(),
		Recommendations: c.matcher.Match(metrics),
	}, nil
}

// memorySource serves catalogs handed to the client as products.
type memorySource struct {
	mu       sync.RWMutex
	products map[domcat.Kind][]Product
}

func newMemorySource() *memorySource {
	return &memorySource{products: make(map[domcat.Kind][]Product)}
}

func (m *memorySource) set(kind domcat.Kind, products []Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[kind] = append([]Product(nil), products...)
}

// swap replaces the products of a kind already served from memory.
func (m *memorySource) swap(kind domcat.Kind, products []Product) ([]Product, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, ok := m.products[kind]
	if !ok {
		return nil, false
	}
	m.products[kind] = append([]Product(nil), products...)
	return prev, true
}

func (m *memorySource) Load(_ context.Context, kind domcat.Kind) (domcat.Snapshot, error) {
	m.mu.RLock()
	products, ok := m.products[kind]
	m.mu.RUnlock()
	if !ok {
		return domcat.Snapshot{}, fmt.Errorf("%w: %q", domain.ErrSourceNotConfigured, kind)
	}

	records := make([]product.Record, 0, len(products))
	var errs []error
	for i := range products {
		rec, err := toRecord(&products[i])
		if err != nil {
			errs = append(errs, fmt.Errorf("product %d: %w", i, err))
			continue
		}
		records = append(records, rec)
	}
	if len(errs) > 0 {
		return domcat.Snapshot{}, fmt.Errorf("%w: %w", ErrInvalidRequest, errors.Join(errs...))
	}
	return domcat.NewSnapshot(kind, records)
}
