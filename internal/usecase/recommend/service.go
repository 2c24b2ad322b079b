package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/catalog"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/query"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/ranking"
)

// Service routes requests to the engine of each catalog kind and reloads them from their sources.
type Service struct {
	engines  map[catalog.Kind]*Engine
	order    []catalog.Kind
	sources  map[catalog.Kind]SnapshotSource
	recorder Recorder
	logger   *zap.Logger
}

// New creates a Service over the given engines. Later engines replace earlier ones of the same kind.
func New(logger *zap.Logger, engines ...*Engine) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		engines:  make(map[catalog.Kind]*Engine, len(engines)),
		sources:  make(map[catalog.Kind]SnapshotSource),
		recorder: nopRecorder{},
		logger:   logger.With(zap.String("component", "recommend")),
	}
	for _, e := range engines {
		if _, ok := s.engines[e.Kind()]; !ok {
			s.order = append(s.order, e.Kind())
		}
		s.engines[e.Kind()] = e
	}
	return s
}

// WithSource sets the snapshot source used by Reload for a kind.
func (s *Service) WithSource(kind catalog.Kind, src SnapshotSource) *Service {
	s.sources[kind] = src
	return s
}

// WithRecorder sets the metrics recorder.
func (s *Service) WithRecorder(r Recorder) *Service {
	if r != nil {
		s.recorder = r
	}
	return s
}

// Kinds returns the registered catalog kinds in registration order.
func (s *Service) Kinds() []catalog.Kind {
	return append([]catalog.Kind(nil), s.order...)
}

// Prepare hands a snapshot to the engine of its kind.
func (s *Service) Prepare(_ context.Context, snap catalog.Snapshot) error {
	e, err := s.engine(snap.Kind())
	if err != nil {
		return err
	}

	start := time.Now()
	err = e.Prepare(snap)
	st := e.Status()
	s.recorder.ObservePrepare(string(snap.Kind()), snap.Len(), st.Vocabulary, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("prepare %s: %w", snap.Kind(), err)
	}

	s.logger.Info("catalog prepared",
		zap.String("catalog", string(snap.Kind())),
		zap.Int("rows", st.Rows),
		zap.Int("vocabulary", st.Vocabulary),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// Reload loads a fresh snapshot from the kind's source and prepares it.
func (s *Service) Reload(ctx context.Context, kind catalog.Kind) error {
	if _, err := s.engine(kind); err != nil {
		return err
	}
	src, ok := s.sources[kind]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrSourceNotConfigured, kind)
	}

	snap, err := src.Load(ctx, kind)
	if err != nil {
		return fmt.Errorf("load %s snapshot: %w", kind, err)
	}
	return s.Prepare(ctx, snap)
}

// ReloadAll reloads every kind with a configured source. Failures are joined;
// kinds that fail keep their previous state.
func (s *Service) ReloadAll(ctx context.Context) error {
	var errs []error
	for _, kind := range s.order {
		if _, ok := s.sources[kind]; !ok {
			continue
		}
		if err := s.Reload(ctx, kind); err != nil {
			s.logger.Error("catalog reload failed", zap.String("catalog", string(kind)), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Recommend parses raw request values and ranks the kind's catalog.
// Malformed numeric constraints are dropped and reported in the result.
func (s *Service) Recommend(ctx context.Context, kind catalog.Kind, raw query.Raw) (ranking.Result, error) {
	q, errs := query.Parse(raw)

	var dropped []ranking.Ignored
	for _, err := range errs {
		var ice *domain.InvalidConstraintError
		if !errors.As(err, &ice) {
			continue
		}
		s.logger.Warn("constraint ignored",
			zap.String("catalog", string(kind)),
			zap.String("field", ice.Field),
			zap.String("value", ice.Value),
			zap.String("reason", ice.Reason),
		)
		dropped = append(dropped, ranking.Ignored{Field: ice.Field, Value: ice.Value, Reason: ice.Reason})
	}

	res, err := s.RecommendQuery(ctx, kind, q)
	if err != nil {
		return ranking.Result{}, err
	}
	for _, ig := range dropped {
		s.recorder.ObserveIgnoredConstraint(string(kind), ig.Field)
	}
	return res.WithIgnored(dropped...), nil
}

// RecommendQuery ranks the kind's catalog for an already parsed query.
func (s *Service) RecommendQuery(_ context.Context, kind catalog.Kind, q query.Query) (ranking.Result, error) {
	e, err := s.engine(kind)
	if err != nil {
		return ranking.Result{}, err
	}

	start := time.Now()
	res, err := e.Recommend(q)
	if err != nil {
		return ranking.Result{}, fmt.Errorf("recommend %s: %w", kind, err)
	}

	s.recorder.ObserveRecommendation(string(kind), string(res.Path()), res.Candidates(), res.Len(), time.Since(start))
	for _, ig := range res.Ignored() {
		s.logger.Debug("facet not declared by catalog",
			zap.String("catalog", string(kind)), zap.String("field", ig.Field))
		s.recorder.ObserveIgnoredConstraint(string(kind), ig.Field)
	}
	return res, nil
}

// Status returns the readiness of every engine in registration order.
func (s *Service) Status() []Status {
	out := make([]Status, 0, len(s.order))
	for _, kind := range s.order {
		out = append(out, s.engines[kind].Status())
	}
	return out
}

// Ready returns an error naming the first engine that was never prepared.
func (s *Service) Ready(_ context.Context) error {
	for _, st := range s.Status() {
		if !st.Prepared {
			return &domain.NotPreparedError{Catalog: string(st.Kind)}
		}
	}
	return nil
}

func (s *Service) engine(kind catalog.Kind) (*Engine, error) {
	e, ok := s.engines[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCatalog, kind)
	}
	return e, nil
}
