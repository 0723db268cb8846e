package wqmetrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink := NewPrometheus(reg, "workqueue")

	sink.Gauge("ready_count", 3)
	sink.Gauge("ready_count", 5) // same name reuses the registered gauge

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)

	var m *dto.Metric
	for _, fam := range families {
		if fam.GetName() == "workqueue_ready_count" {
			m = fam.Metric[0]
		}
	}
	require.NotNil(t, m)
	assert.Equal(t, 5.0, m.GetGauge().GetValue())
}

func TestPrometheusUnknownNameSkipsRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink := NewPrometheus(reg, "workqueue")

	assert.NotPanics(t, func() { sink.Gauge("", 1) })
}
