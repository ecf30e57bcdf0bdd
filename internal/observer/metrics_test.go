package observer

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIncDispatch_CountsTargetsOnlyOnSuccess(t *testing.T) {
	InitMetrics(true)

	before := testutil.ToFloat64(DispatchTargetsTotal.WithLabelValues("stale"))
	IncDispatch("stale", "success", 3)
	IncDispatch("stale", "empty_targets", 0)

	assert.Equal(t, before+3, testutil.ToFloat64(DispatchTargetsTotal.WithLabelValues("stale")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(DispatchesTotal.WithLabelValues("stale", "empty_targets")), 1.0)
}

func TestMetricsDisabled(t *testing.T) {
	InitMetrics(false)
	defer InitMetrics(true)

	before := testutil.ToFloat64(ContactLookupsTotal.WithLabelValues("resolved"))
	IncContactLookup("resolved")
	ObserveDbOperationDuration("count", "appointment", time.Millisecond, errors.New("x"))
	assert.Equal(t, before, testutil.ToFloat64(ContactLookupsTotal.WithLabelValues("resolved")))
}

func TestFetchCycleLabels(t *testing.T) {
	InitMetrics(true)
	before := testutil.ToFloat64(FetchCyclesTotal.WithLabelValues("unknown", "success"))
	IncFetchCycle("", "success")
	assert.Equal(t, before+1, testutil.ToFloat64(FetchCyclesTotal.WithLabelValues("unknown", "success")))
}
