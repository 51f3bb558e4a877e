package messages

import (
	"time"

	"github.com/LeonardoBeccarini/evap_project/internal/model/entities"
)

// ParamUpdateEvent carries one slider-style parameter change, in the units
// the sliders use (°C, %, W/m2, m/s). Published on param/update/{source}.
type ParamUpdateEvent struct {
	Source         string    `json:"source"`
	Irradiance     float64   `json:"irradiance_w_m2"`
	AirTempC       float64   `json:"air_temp_c"`
	WindSpeed      float64   `json:"wind_speed_mps"`
	RelHumidityPct float64   `json:"rel_humidity_pct"`
	Method         string    `json:"method,omitempty"` // vapor pressure method tag
	Timestamp      time.Time `json:"timestamp"`
}

// EnvState converts the slider units to the core units (K, fraction).
func (p ParamUpdateEvent) EnvState() entities.EnvState {
	return entities.EnvState{
		Irradiance:  p.Irradiance,
		AirTempK:    p.AirTempC + 273.15,
		WindSpeed:   p.WindSpeed,
		RelHumidity: p.RelHumidityPct / 100,
	}
}
