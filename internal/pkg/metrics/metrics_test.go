package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	t.Parallel()

	m := New(prometheus.NewRegistry(), "tarot")

	m.IncUpdate("message")
	m.IncUpdate("message")
	m.IncDraw("reversed", true)
	m.IncDraw("upright", false)
	m.ObserveAdvisor("ok", 120*time.Millisecond)
	m.IncBroadcast("blocked")
	m.IncError("advisor")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Updates.WithLabelValues("message")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Draws.WithLabelValues("reversed", "premium")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Draws.WithLabelValues("upright", "free")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AdvisorRequests.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Broadcast.WithLabelValues("blocked")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Errors.WithLabelValues("advisor")))
}

func TestMetrics_NilSafe(t *testing.T) {
	t.Parallel()

	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncUpdate("message")
		m.IncDraw("upright", false)
		m.ObserveAdvisor("error", time.Second)
		m.IncBroadcast("sent")
		m.IncError("x")
	})
}
