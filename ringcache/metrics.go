package ringcache

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	kindRing       = "ring"
	kindCommitment = "commitment"
)

type metrics struct {
	lookups       *prometheus.CounterVec
	verifications *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ringvrf",
			Subsystem: "ringcache",
			Name:      "lookups_total",
			Help:      "Total number of cache lookups by kind and result.",
		}, []string{"kind", "result"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ringvrf",
			Subsystem: "ringcache",
			Name:      "verifications_total",
			Help:      "Total number of signature verifications by result.",
		}, []string{"result"}),
	}

	if reg == nil {
		return m, nil
	}

	var err error
	if m.lookups, err = register(reg, m.lookups); err != nil {
		return nil, err
	}
	if m.verifications, err = register(reg, m.verifications); err != nil {
		return nil, err
	}
	return m, nil
}

// register registers c, returning the existing collector if an identical one is already registered.
func register(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("ringcache: registering metrics: %w", err)
	}
	return c, nil
}

func (m *metrics) hit(kind string) {
	m.lookups.WithLabelValues(kind, "hit").Inc()
}

func (m *metrics) miss(kind string) {
	m.lookups.WithLabelValues(kind, "miss").Inc()
}

func (m *metrics) verified(valid bool) {
	result := "invalid"
	if valid {
		result = "valid"
	}
	m.verifications.WithLabelValues(result).Inc()
}
