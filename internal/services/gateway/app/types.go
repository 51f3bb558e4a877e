package app

import (
	"github.com/LeonardoBeccarini/evap_project/internal/model/entities"
)

// ---------- Upstream payloads ----------

// EngineSnapshot è la risposta di GET /state dell'engine.
type EngineSnapshot struct {
	State   entities.EnvState          `json:"state"`
	Method  string                     `json:"method"`
	Derived entities.DerivedQuantities `json:"derived"`
}

// HistoryPoint is one row of the recorder's /derived/latest answer.
type HistoryPoint struct {
	Time   string  `json:"time"` // RFC3339
	Source string  `json:"source"`
	Method string  `json:"method"`
	Power  float64 `json:"engine_power_w_m2"`
}

// AnalyticsStats mirrors the analytics-service /analytics/stats payload.
type AnalyticsStats struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Method    string  `json:"method"`
	Stats     struct {
		Mean         float64 `json:"mean"`
		Min          float64 `json:"min"`
		Max          float64 `json:"max"`
		Median       float64 `json:"median"`
		TotalEnergyJ float64 `json:"total_energy_j_m2"`
		Samples      int     `json:"samples"`
	} `json:"stats"`
}

// ---------- DTO verso la dashboard ----------

type DashboardData struct {
	Snapshot EngineSnapshot       `json:"snapshot"`
	Charts   []entities.ChartSpec `json:"charts"`
	History  []HistoryPoint       `json:"history"`
	Stats    AnalyticsStats       `json:"stats"`
}

// BuildCharts maps the derived tuple onto the three dashboard gauges.
func BuildCharts(d entities.DerivedQuantities) []entities.ChartSpec {
	return []entities.ChartSpec{
		{Title: "Evaporation rate", Units: "mm/day", AxisMax: 50, Color: "#1f77b4", Value: d.EvaporationRate},
		{Title: "Latent energy flux", Units: "W/m²", AxisMax: 1500, Color: "#ff7f0e", Value: d.LatentEnergy},
		{Title: "Engine power", Units: "W/m²", AxisMax: 150, Color: "#2ca02c", Value: d.EnginePower},
	}
}
