// Package wqmetrics provides workqueue.Metrics sinks for real metrics
// backends, grounded on notifyhub's observability.TelemetryProvider
// (OTel) and the project's general use of
// github.com/prometheus/client_golang for exposition.
package wqmetrics

import "github.com/kart-io/workqueue"

// Noop discards every gauge report. Equivalent to leaving
// workqueue.WithMetrics unset, but useful when a caller wants an
// explicit, swappable sink.
type Noop struct{}

func (Noop) Gauge(string, float64) {}

var _ workqueue.Metrics = Noop{}
