package production

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/comalice/composex"
)

// MetricsListener counts delivered state changes per subject.
type MetricsListener struct {
	id      string
	subject string
	changes *prometheus.CounterVec
}

// NewMetricsListener creates a counting listener for the named subject.
func NewMetricsListener(id, subject string) *MetricsListener {
	return &MetricsListener{
		id:      id,
		subject: subject,
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "composex_state_changes_total",
			Help: "Number of state change notifications delivered.",
		}, []string{"subject"}),
	}
}

func (m *MetricsListener) ID() string { return m.id }

func (m *MetricsListener) OnChange(ctx context.Context, state any) error {
	m.changes.WithLabelValues(m.subject).Inc()
	return nil
}

// Collector exposes the underlying metric for registry registration.
func (m *MetricsListener) Collector() prometheus.Collector { return m.changes }

var _ composex.Listener = (*MetricsListener)(nil)
