package zfsengine

import (
	"github.com/prometheus/client_golang/prometheus"
)

// WithMetrics counts every primitive call (and the failed ones) done through inner
func WithMetrics(inner Engine, reg prometheus.Registerer) Engine {
	m := &metricsEngine{
		inner: inner,
		// using (totalOperations, failures) instead of (successes, failures)
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flocker_engine_operations_total",
			Help: "Storage engine primitives invoked",
		}, []string{"op"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flocker_engine_operation_failures_total",
			Help: "Storage engine primitives that failed",
		}, []string{"op"}),
	}

	reg.MustRegister(m.operations)
	reg.MustRegister(m.failures)

	return m
}

type metricsEngine struct {
	inner      Engine
	operations *prometheus.CounterVec
	failures   *prometheus.CounterVec
}

func (m *metricsEngine) Create(dataset string) error {
	return m.observe("create", m.inner.Create(dataset))
}

func (m *metricsEngine) Snapshot(dataset string, tag string) error {
	return m.observe("snapshot", m.inner.Snapshot(dataset, tag))
}

func (m *metricsEngine) Clone(snapshot string, newDataset string) error {
	return m.observe("clone", m.inner.Clone(snapshot, newDataset))
}

func (m *metricsEngine) ListChildren(mountRoot string) ([]string, error) {
	children, err := m.inner.ListChildren(mountRoot)
	return children, m.observe("list", err)
}

func (m *metricsEngine) observe(op string, err error) error {
	m.operations.WithLabelValues(op).Inc()

	if err != nil {
		m.failures.WithLabelValues(op).Inc()
	}

	return err
}
