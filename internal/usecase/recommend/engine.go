package recommend

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/catalog"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/query"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/ranking"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/facet"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/similarity"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/textvec"
)

// state is everything a prepare call produces. Never mutated after publication.
type state struct {
	snapshot   catalog.Snapshot
	space      *textvec.Space
	vectors    []textvec.Vector
	preparedAt time.Time
}

// Status describes an engine's readiness.
type Status struct {
	Kind       catalog.Kind
	Prepared   bool
	Rows       int
	Vocabulary int
	PreparedAt time.Time
}

// Engine ranks one catalog kind: facet filter, then similarity or rating order.
// Prepare takes the write lock, recommendations share the read lock.
type Engine struct {
	profile catalog.Profile
	logger  *zap.Logger

	prepareMu sync.Mutex
	mu        sync.RWMutex
	state     *state
	now       func() time.Time
}

// NewEngine creates an unprepared engine for the profile.
func NewEngine(profile catalog.Profile, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		profile: profile,
		logger:  logger.With(zap.String("component", "engine"), zap.String("catalog", string(profile.Kind()))),
		now:     time.Now,
	}
}

// Kind returns the catalog kind served by the engine.
func (e *Engine) Kind() catalog.Kind { return e.profile.Kind() }

// Profile returns the engine's catalog profile.
func (e *Engine) Profile() catalog.Profile { return e.profile }

// Prepare replaces the snapshot and re-fits the vector space.
// On failure the previously prepared state, if any, stays in place.
func (e *Engine) Prepare(s catalog.Snapshot) error {
	if s.Kind() != e.profile.Kind() {
		return fmt.Errorf("%w: engine %q got snapshot %q", domain.ErrCatalogMismatch, e.profile.Kind(), s.Kind())
	}

	e.prepareMu.Lock()
	defer e.prepareMu.Unlock()

	corpus := make([]string, s.Len())
	for i := range corpus {
		corpus[i] = e.profile.Document(s.At(i))
	}

	space, vectors, err := textvec.FitTransform(corpus)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCorpus) {
			return &domain.EmptyCorpusError{Catalog: string(e.profile.Kind())}
		}
		return fmt.Errorf("fit vectorizer: %w", err)
	}

	next := &state{snapshot: s, space: space, vectors: vectors, preparedAt: e.now()}

	e.mu.Lock()
	e.state = next
	e.mu.Unlock()

	return nil
}

// Recommend filters the snapshot by the query facets and ranks the candidates.
// Free text selects the similarity path, otherwise rows are ordered by rating.
func (e *Engine) Recommend(q query.Query) (ranking.Result, error) {
	e.mu.RLock()
	st := e.state
	e.mu.RUnlock()

	if st == nil {
		return ranking.Result{}, &domain.NotPreparedError{Catalog: string(e.profile.Kind())}
	}

	path := ranking.PathFilter
	if q.HasText() {
		path = ranking.PathSimilarity
	}

	filtered := facet.Filter(&st.snapshot, e.profile, q.Facets())
	if len(filtered.Positions) == 0 {
		return ranking.New(e.profile.Kind(), path, nil, 0, filtered.Ignored), nil
	}

	var hits []ranking.Hit
	if path == ranking.PathSimilarity {
		hits = e.bySimilarity(st, filtered.Positions, q.Text())
	} else {
		hits = e.byRating(st, filtered.Positions)
	}

	e.logger.Debug("recommendation ranked",
		zap.String("path", string(path)),
		zap.Int("candidates", len(filtered.Positions)),
		zap.Int("returned", len(hits)),
	)
	return ranking.New(e.profile.Kind(), path, hits, len(filtered.Positions), filtered.Ignored), nil
}

// Status reports readiness without blocking on a running prepare.
func (e *Engine) Status() Status {
	e.mu.RLock()
	st := e.state
	e.mu.RUnlock()

	if st == nil {
		return Status{Kind: e.profile.Kind()}
	}
	return Status{
		Kind:       e.profile.Kind(),
		Prepared:   true,
		Rows:       st.snapshot.Len(),
		Vocabulary: st.space.Size(),
		PreparedAt: st.preparedAt,
	}
}

// bySimilarity scores only the filtered rows against the query text.
func (e *Engine) bySimilarity(st *state, positions []int, text string) []ranking.Hit {
	qv := st.space.Transform(text)
	candidates := make([]textvec.Vector, len(positions))
	for i, pos := range positions {
		candidates[i] = st.vectors[pos]
	}

	top := similarity.TopK(similarity.Score(qv, candidates), e.profile.SimilarityTopK())
	hits := make([]ranking.Hit, len(top))
	for i, s := range top {
		pos := positions[s.Index]
		hits[i] = ranking.Hit{Position: pos, Score: s.Score, Record: *st.snapshot.At(pos)}
	}
	return hits
}

// byRating orders the filtered rows by rating, descending and stable.
func (e *Engine) byRating(st *state, positions []int) []ranking.Hit {
	ordered := append([]int(nil), positions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return st.snapshot.At(ordered[i]).Rating() > st.snapshot.At(ordered[j]).Rating()
	})
	if k := e.profile.FilterTopK(); len(ordered) > k {
		ordered = ordered[:k]
	}

	hits := make([]ranking.Hit, len(ordered))
	for i, pos := range ordered {
		r := st.snapshot.At(pos)
		hits[i] = ranking.Hit{Position: pos, Score: r.Rating(), Record: *r}
	}
	return hits
}
