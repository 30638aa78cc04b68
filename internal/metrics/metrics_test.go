package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textsum/internal/summarizer"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := NewPrometheusRecorder("test", reg)
	require.NoError(t, err)

	r.ObserveSummary(time.Millisecond, 10, 3, nil)
	r.ObserveSummary(time.Millisecond, 4, 2, nil)
	r.ObserveSummary(time.Microsecond, 0, 0, &summarizer.InvalidRangeError{Percent: 5})
	r.ObserveSummary(time.Microsecond, 0, 0, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(r.documents))
	assert.Equal(t, 14.0, testutil.ToFloat64(r.sentencesIn))
	assert.Equal(t, 5.0, testutil.ToFloat64(r.sentencesSelected))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.errors.WithLabelValues("invalid_range")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.errors.WithLabelValues("other")))
}

func TestPrometheusRecorder_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusRecorder("dup", reg)
	require.NoError(t, err)

	_, err = NewPrometheusRecorder("dup", reg)
	assert.Error(t, err)
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *PrometheusRecorder
	assert.NotPanics(t, func() { r.ObserveSummary(time.Second, 1, 1, nil) })
	assert.NotPanics(t, func() { Nop().ObserveSummary(time.Second, 1, 1, nil) })
}
