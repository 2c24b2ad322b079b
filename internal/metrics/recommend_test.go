package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_ObservePrepare(t *testing.T) {
	var r Recorder

	r.ObservePrepare("skincare", 120, 800, 50*time.Millisecond, nil)
	if v := testutil.ToFloat64(CatalogRows.WithLabelValues("skincare")); v != 120 {
		t.Errorf("catalog_rows = %v", v)
	}
	if v := testutil.ToFloat64(CatalogVocabulary.WithLabelValues("skincare")); v != 800 {
		t.Errorf("catalog_vocabulary_terms = %v", v)
	}

	r.ObservePrepare("skincare", 0, 0, time.Millisecond, errors.New("empty corpus"))
	if v := testutil.ToFloat64(CatalogRows.WithLabelValues("skincare")); v != 120 {
		t.Errorf("failed prepare must keep gauges, got %v", v)
	}
	if v := testutil.ToFloat64(PrepareTotal.WithLabelValues("skincare", "error")); v != 1 {
		t.Errorf("prepare errors = %v", v)
	}
}

func TestRecorder_ObserveRecommendation(t *testing.T) {
	var r Recorder
	before := testutil.ToFloat64(EmptyRecommendationsTotal.WithLabelValues("makeup", "filter"))

	r.ObserveRecommendation("makeup", "filter", 10, 0, time.Millisecond)
	r.ObserveRecommendation("makeup", "filter", 10, 4, time.Millisecond)

	if v := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("makeup", "filter")); v < 2 {
		t.Errorf("recommendations_total = %v", v)
	}
	if v := testutil.ToFloat64(EmptyRecommendationsTotal.WithLabelValues("makeup", "filter")); v != before+1 {
		t.Errorf("recommendations_empty_total = %v, want %v", v, before+1)
	}
}

func TestRecorder_ObserveIgnoredConstraint(t *testing.T) {
	Recorder{}.ObserveIgnoredConstraint("cosmetic", "max_price")
	if v := testutil.ToFloat64(IgnoredConstraintsTotal.WithLabelValues("cosmetic", "max_price")); v < 1 {
		t.Errorf("ignored_constraints_total = %v", v)
	}
}

func TestRegisterTwice(t *testing.T) {
	RegisterRecommendMetrics()
	RegisterRecommendMetrics()
	RegisterDeliveryMetrics()
	RegisterDeliveryMetrics()
}
