package worker

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRun(t *testing.T) {
	m := NewMetrics()

	m.RecordRun("sent", 1.2)
	m.RecordRun("empty", 0.3)
	m.RecordRun("failure", 0.1)
	m.RecordRun("sent", 2.0)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.SendRunsTotal.WithLabelValues("sent")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SendRunsTotal.WithLabelValues("empty")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SendRunsTotal.WithLabelValues("failure")))
	assert.NotZero(t, testutil.ToFloat64(m.LastSuccessTimestamp))
}
