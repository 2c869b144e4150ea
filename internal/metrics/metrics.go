// internal/metrics/metrics.go
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aniefioke/intellectual-property/internal/marketplace"
)

type Metrics struct {
	OperationsTotal   *prometheus.CounterVec
	RoyaltyPaidTotal  prometheus.Counter
	TechnologiesTotal prometheus.Gauge
	ActiveContracts   prometheus.Gauge
}

func New() *Metrics {
	return &Metrics{
		OperationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "qtip_marketplace_operations_total",
			Help: "Total ledger operations by operation name and outcome",
		}, []string{"operation", "outcome"}),
		RoyaltyPaidTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "qtip_marketplace_royalty_paid_total",
			Help: "Cumulative royalty amount settled, in smallest currency units",
		}),
		TechnologiesTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "qtip_marketplace_technologies_total",
			Help: "Number of registered technologies",
		}),
		ActiveContracts: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "qtip_marketplace_active_contracts",
			Help: "Current number of active license contracts",
		}),
	}
}

// ObserveOperation counts one ledger call, labeled by its failure kind or
// "ok".
func (m *Metrics) ObserveOperation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		var mpErr *marketplace.Error
		if errors.As(err, &mpErr) {
			outcome = string(mpErr.Kind)
		} else {
			outcome = "error"
		}
	}
	m.OperationsTotal.WithLabelValues(operation, outcome).Inc()
}

// ObserveRoyalty adds a settled royalty amount.
func (m *Metrics) ObserveRoyalty(amount uint64) {
	m.RoyaltyPaidTotal.Add(float64(amount))
}

// UpdateAggregates refreshes the gauges from the ledger's read-only metrics.
func (m *Metrics) UpdateAggregates(agg marketplace.Metrics) {
	m.TechnologiesTotal.Set(float64(agg.TotalTechnologies))
	m.ActiveContracts.Set(float64(agg.ActiveContracts))
}
