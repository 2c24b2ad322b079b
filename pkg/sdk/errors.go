package beauty

import "github.com/Tejass087/Skin-Care-Reccomadation/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound            = domain.ErrNotFound
	ErrEmptyCorpus         = domain.ErrEmptyCorpus
	ErrNotPrepared         = domain.ErrNotPrepared
	ErrUnknownCatalog      = domain.ErrUnknownCatalog
	ErrInvalidSkinMetrics  = domain.ErrInvalidSkinMetrics
	ErrInvalidRequest      = domain.ErrInvalidRequest
	ErrSourceNotConfigured = domain.ErrSourceNotConfigured
)
