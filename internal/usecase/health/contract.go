package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogChecker reports whether every catalog engine has been prepared.
type CatalogChecker interface {
	Ready(ctx context.Context) error
}
