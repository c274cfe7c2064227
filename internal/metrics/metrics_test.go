package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordQuery(t *testing.T) {
	before := testutil.ToFloat64(Queries.WithLabelValues("ok"))
	RecordQuery("", 10*time.Millisecond)
	if got := testutil.ToFloat64(Queries.WithLabelValues("ok")); got != before+1 {
		t.Errorf("ok queries = %v, want %v", got, before+1)
	}

	before = testutil.ToFloat64(Queries.WithLabelValues("no_candidates"))
	RecordQuery("no_candidates", time.Millisecond)
	if got := testutil.ToFloat64(Queries.WithLabelValues("no_candidates")); got != before+1 {
		t.Errorf("no_candidates queries = %v, want %v", got, before+1)
	}
}

func TestRecordStrategy(t *testing.T) {
	tests := []struct {
		name   string
		found  int
		err    error
		result string
	}{
		{"hit", 5, nil, "hit"},
		{"empty", 0, nil, "empty"},
		{"error", 0, errors.New("boom"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := StrategyRuns.WithLabelValues("test", tt.result)
			before := testutil.ToFloat64(c)
			RecordStrategy("test", tt.found, tt.err)
			if got := testutil.ToFloat64(c); got != before+1 {
				t.Errorf("%s count = %v, want %v", tt.result, got, before+1)
			}
		})
	}
}

func TestRecordAPIRequest(t *testing.T) {
	c := APIRequests.WithLabelValues("GET", "/api/recommend", "200")
	before := testutil.ToFloat64(c)
	RecordAPIRequest("GET", "/api/recommend", 200, 5*time.Millisecond)
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("api requests = %v, want %v", got, before+1)
	}
}
