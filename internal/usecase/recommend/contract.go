package recommend

import (
	"context"
	"time"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/catalog"
)

// SnapshotSource loads the current catalog snapshot for a kind.
type SnapshotSource interface {
	Load(ctx context.Context, kind catalog.Kind) (catalog.Snapshot, error)
}

// Recorder observes engine activity.
type Recorder interface {
	ObservePrepare(kind string, rows, vocabulary int, d time.Duration, err error)
	ObserveRecommendation(kind, path string, candidates, returned int, d time.Duration)
	ObserveIgnoredConstraint(kind, field string)
}

type nopRecorder struct{}

func (nopRecorder) ObservePrepare(string, int, int, time.Duration, error)       {}
func (nopRecorder) ObserveRecommendation(string, string, int, int, time.Duration) {}
func (nopRecorder) ObserveIgnoredConstraint(string, string)                     {}
