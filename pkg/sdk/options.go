package beauty

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type catalogOrigin int

const (
	originMemory catalogOrigin = iota
	originFile
	originStore
)

type catalogConfig struct {
	origin   catalogOrigin
	products []Product
	path     string
}

type clientConfig struct {
	catalogs map[Catalog]catalogConfig

	driver    string // "valkey" or "redis"
	addrs     []string
	password  string
	keyPrefix string

	similarityTopK int
	filterTopK     int
	wholePrices    bool
	curatedPath    string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

func (c *clientConfig) setCatalog(kind Catalog, cc catalogConfig) {
	if c.catalogs == nil {
		c.catalogs = make(map[Catalog]catalogConfig)
	}
	c.catalogs[kind] = cc
}

// WithCatalog serves a catalog from the given products.
// Replace swaps them later without recreating the client.
func WithCatalog(kind Catalog, products ...Product) Option {
	return optionFunc(func(c *clientConfig) {
		c.setCatalog(kind, catalogConfig{
			origin:   originMemory,
			products: append([]Product(nil), products...),
		})
	})
}

// WithCatalogFile serves a catalog from a CSV or Parquet file, chosen by the
// file extension. Reload reads the file again.
func WithCatalogFile(kind Catalog, path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.setCatalog(kind, catalogConfig{origin: originFile, path: path})
	})
}

// WithStoredCatalog serves a catalog from the catalog store.
// Requires WithRedis or WithValkey.
func WithStoredCatalog(kind Catalog) Option {
	return optionFunc(func(c *clientConfig) {
		c.setCatalog(kind, catalogConfig{origin: originStore})
	})
}

// WithValkey connects the client to a Valkey catalog store.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis connects the client to a Redis catalog store.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix sets the catalog store key prefix. Default: "beauty:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithTopK overrides the result sizes of every catalog.
// Non-positive values keep the defaults: 5 with free text, 10 without.
func WithTopK(similarity, filter int) Option {
	return optionFunc(func(c *clientConfig) {
		c.similarityTopK = similarity
		c.filterTopK = filter
	})
}

// WithWholePrices reads all-digit file prices as whole units instead of cents.
func WithWholePrices() Option {
	return optionFunc(func(c *clientConfig) {
		c.wholePrices = true
	})
}

// WithCuratedTable loads the matcher table from a YAML file instead of the
// embedded one.
func WithCuratedTable(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.curatedPath = path
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts, durations and
// catalog sizes) on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
