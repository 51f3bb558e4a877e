package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/LeonardoBeccarini/evap_project/internal/model/entities"
)

// Metrics exposes the current derived tuple and a pass counter on /metrics.
type Metrics struct {
	delta        prometheus.Gauge
	evapRate     prometheus.Gauge
	latentEnergy prometheus.Gauge
	enginePower  prometheus.Gauge
	passes       prometheus.Counter
	badPayloads  prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		delta: f.NewGauge(prometheus.GaugeOpts{
			Name: "evap_delta_kpa_per_kelvin",
			Help: "Slope of the saturation vapor pressure curve.",
		}),
		evapRate: f.NewGauge(prometheus.GaugeOpts{
			Name: "evap_rate_mm_per_day",
			Help: "Evaporation rate of the water surface.",
		}),
		latentEnergy: f.NewGauge(prometheus.GaugeOpts{
			Name: "evap_latent_energy_watts_per_m2",
			Help: "Total latent heat flux carried by the evaporation rate.",
		}),
		enginePower: f.NewGauge(prometheus.GaugeOpts{
			Name: "evap_engine_power_watts_per_m2",
			Help: "Maximum theoretical power density of the evaporation engine.",
		}),
		passes: f.NewCounter(prometheus.CounterOpts{
			Name: "evap_recompute_passes_total",
			Help: "Completed recomputation passes.",
		}),
		badPayloads: f.NewCounter(prometheus.CounterOpts{
			Name: "evap_bad_payloads_total",
			Help: "Parameter updates dropped because the payload did not parse.",
		}),
	}
}

// Observe records one completed pass. Non-finite values still go to the
// gauges: Prometheus represents NaN/Inf natively and the dashboards treat
// them as "no valid estimate".
func (m *Metrics) Observe(d entities.DerivedQuantities) {
	if m == nil {
		return
	}
	m.delta.Set(d.Delta)
	m.evapRate.Set(d.EvaporationRate)
	m.latentEnergy.Set(d.LatentEnergy)
	m.enginePower.Set(d.EnginePower)
	m.passes.Inc()
}

// MarkBadPayload conta un payload scartato.
func (m *Metrics) MarkBadPayload() {
	if m != nil {
		m.badPayloads.Inc()
	}
}
