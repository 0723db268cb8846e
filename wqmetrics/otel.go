package wqmetrics

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/metric"

	"github.com/kart-io/workqueue"
)

// OTel reports gauge values through an OpenTelemetry meter, using an
// Int64ObservableGauge-free approach: each distinct name gets a
// Float64Gauge (synchronous instrument, added in the metric API's 1.x
// series) that Gauge() sets directly, mirroring the instrument-per-name
// pattern notifyhub's observability.TelemetryProvider uses for its own
// counters and histograms.
type OTel struct {
	meter metric.Meter

	mu     sync.Mutex
	gauges map[string]metric.Float64Gauge
}

// NewOTel returns a Metrics sink backed by meter.
func NewOTel(meter metric.Meter) *OTel {
	return &OTel{meter: meter, gauges: make(map[string]metric.Float64Gauge)}
}

func (o *OTel) Gauge(name string, value float64) {
	g := o.gaugeFor(name)
	if g != nil {
		g.Record(context.Background(), value)
	}
}

func (o *OTel) gaugeFor(name string) metric.Float64Gauge {
	o.mu.Lock()
	defer o.mu.Unlock()

	if g, ok := o.gauges[name]; ok {
		return g
	}

	g, err := o.meter.Float64Gauge(name, metric.WithDescription("workqueue gauge "+name))
	if err != nil {
		return nil
	}
	o.gauges[name] = g
	return g
}

var _ workqueue.Metrics = (*OTel)(nil)
