package analytics

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/LeonardoBeccarini/evap_project/internal/thermo"
)

// Sample is one weather row with the full derived chain attached.
type Sample struct {
	Time        time.Time `json:"time"`
	AirTempK    float64   `json:"air_temp_k"`
	RelHumidity float64   `json:"rel_humidity"`
	WindSpeed   float64   `json:"wind_speed_mps"`
	Irradiance  float64   `json:"irradiance_w_m2"`

	Delta    float64 `json:"delta_kpa_k"`
	EvapRate float64 `json:"evap_mm_day"`
	Power    float64 `json:"power_w_m2"`
	EnergyKJ float64 `json:"energy_kj_m2"` // energy of the hour
}

// Config of the batch computation.
type Config struct {
	Method         thermo.Method
	WetRelHumidity float64 // default 0.99, come nell'analisi storica
}

// Compute runs the calculator chain over every row of the dataset.
// Rows with degenerate humidity produce non-finite power values; they are
// kept in the series and skipped by the statistics below.
func Compute(ds *Dataset, cfg Config) []Sample {
	m := cfg.Method
	if !m.Valid() {
		m = thermo.DefaultMethod
	}
	wet := cfg.WetRelHumidity
	if wet == 0 {
		wet = 0.99
	}

	out := make([]Sample, 0, len(ds.Rows))
	for _, r := range ds.Rows {
		delta := thermo.Slope(r.AirTempK, thermo.SlopeConfig{Method: m})
		evap := thermo.EvaporationRate(thermo.EvaporationInput{
			NetRadiation: r.Irradiance,
			Delta:        delta,
			WindSpeed:    r.WindSpeed,
			MeanTemp:     r.AirTempK,
			RelHumidity:  r.RelHumidity,
			Method:       m,
		})
		power := thermo.PowerPerArea(thermo.PowerInput{
			EvapRate:       evap,
			AirTemp:        r.AirTempK,
			WetRelHumidity: wet,
			AirRelHumidity: r.RelHumidity,
		})
		out = append(out, Sample{
			Time:        r.Time,
			AirTempK:    r.AirTempK,
			RelHumidity: r.RelHumidity,
			WindSpeed:   r.WindSpeed,
			Irradiance:  r.Irradiance,
			Delta:       delta,
			EvapRate:    evap,
			Power:       power,
			EnergyKJ:    thermo.EnergyPerArea(power),
		})
	}
	return out
}

// Stats riassume la serie di potenza per la dashboard.
type Stats struct {
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	// TotalEnergyJ is the integral of power over the series (J/m2),
	// each sample counting for one hour.
	TotalEnergyJ float64 `json:"total_energy_j_m2"`
	Samples      int     `json:"samples"`
}

// Summarize computes power statistics over the finite samples.
func Summarize(samples []Sample) Stats {
	powers := make([]float64, 0, len(samples))
	total := 0.0
	for _, s := range samples {
		if math.IsNaN(s.Power) || math.IsInf(s.Power, 0) {
			continue // nessuna stima valida per questa ora
		}
		powers = append(powers, s.Power)
		total += s.Power * 3600
	}
	if len(powers) == 0 {
		return Stats{}
	}
	sort.Float64s(powers)
	return Stats{
		Mean:         stat.Mean(powers, nil),
		Min:          powers[0],
		Max:          powers[len(powers)-1],
		Median:       stat.Quantile(0.5, stat.Empirical, powers, nil),
		TotalEnergyJ: total,
		Samples:      len(powers),
	}
}

// PowerPoint è un punto della serie smussata.
type PowerPoint struct {
	Time  time.Time `json:"time"`
	Power float64   `json:"power_w_m2"`
}

// RollingMean smooths the power series with a trailing time window
// (one week in the historical analysis). Non-finite samples are excluded
// from every window.
func RollingMean(samples []Sample, window time.Duration) []PowerPoint {
	out := make([]PowerPoint, 0, len(samples))
	start := 0
	sum, n := 0.0, 0
	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

	for i, s := range samples {
		if finite(s.Power) {
			sum += s.Power
			n++
		}
		for samples[start].Time.Before(s.Time.Add(-window)) {
			if finite(samples[start].Power) {
				sum -= samples[start].Power
				n--
			}
			start++
		}
		if n == 0 {
			continue
		}
		out = append(out, PowerPoint{Time: samples[i].Time, Power: sum / float64(n)})
	}
	return out
}
