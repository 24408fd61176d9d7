// Package metrics implements the engine metrics port on top of prometheus
// counters, plus a no-op implementation for tests.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"go.trai.ch/weft/internal/core/ports"
)

// Prometheus counts engine activity into a prometheus registry.
type Prometheus struct {
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter
	computes     prometheus.Counter
	plugsDirtied prometheus.Counter
	loads        prometheus.Counter
}

var _ ports.Metrics = (*Prometheus)(nil)

// NewPrometheus creates the counters and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	m := &Prometheus{
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weft",
			Name:      "cache_hits_total",
			Help:      "Computation cache hits.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weft",
			Name:      "cache_misses_total",
			Help:      "Computation cache misses.",
		}),
		computes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weft",
			Name:      "computes_total",
			Help:      "Node compute invocations.",
		}),
		plugsDirtied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weft",
			Name:      "plugs_dirtied_total",
			Help:      "Plugs visited by dirty propagation.",
		}),
		loads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weft",
			Name:      "reference_loads_total",
			Help:      "Reference definition (re)loads.",
		}),
	}
	for _, c := range []prometheus.Collector{
		m.cacheHits, m.cacheMisses, m.computes, m.plugsDirtied, m.loads,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Prometheus) CacheHit()          { m.cacheHits.Inc() }
func (m *Prometheus) CacheMiss()         { m.cacheMisses.Inc() }
func (m *Prometheus) Compute()           { m.computes.Inc() }
func (m *Prometheus) PlugsDirtied(n int) { m.plugsDirtied.Add(float64(n)) }
func (m *Prometheus) ReferenceLoaded()   { m.loads.Inc() }

// Noop discards all counts.
type Noop struct{}

var _ ports.Metrics = Noop{}

func (Noop) CacheHit()        {}
func (Noop) CacheMiss()       {}
func (Noop) Compute()         {}
func (Noop) PlugsDirtied(int) {}
func (Noop) ReferenceLoaded() {}
