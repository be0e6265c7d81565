package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestReservationCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg, "table-booking")

	m.ReservationCreated("table")
	m.ReservationCreated("table")
	m.ReservationConflict("create")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReservationsCreated.WithLabelValues("table-booking", "table")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReservationConflicts.WithLabelValues("table-booking", "create")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ReservationCreated("auto")
		m.ReservationConflict("reassign")
	})
	assert.Equal(t, "", m.ServiceName())
}
