package wqmetrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kart-io/workqueue"
)

// Prometheus reports gauge values through one prometheus.Gauge per
// reported name, registered lazily on first use so a single
// Prometheus sink can back several differently-named queue gauges
// without the caller pre-declaring every name.
type Prometheus struct {
	registerer prometheus.Registerer
	namespace  string

	mu     sync.Mutex
	gauges map[string]prometheus.Gauge
}

// NewPrometheus returns a Metrics sink that registers one
// prometheus.Gauge per distinct gauge name against reg, under namespace.
func NewPrometheus(reg prometheus.Registerer, namespace string) *Prometheus {
	return &Prometheus{
		registerer: reg,
		namespace:  namespace,
		gauges:     make(map[string]prometheus.Gauge),
	}
}

func (p *Prometheus) Gauge(name string, value float64) {
	g := p.gaugeFor(name)
	if g != nil {
		g.Set(value)
	}
}

func (p *Prometheus) gaugeFor(name string) prometheus.Gauge {
	p.mu.Lock()
	defer p.mu.Unlock()

	if g, ok := p.gauges[name]; ok {
		return g
	}

	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: p.namespace,
		Name:      name,
		Help:      "workqueue gauge " + name,
	})
	if err := p.registerer.Register(g); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			g = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil
		}
	}
	p.gauges[name] = g
	return g
}

var _ workqueue.Metrics = (*Prometheus)(nil)
