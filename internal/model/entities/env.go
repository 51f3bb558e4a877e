package entities

// EnvState is one immutable snapshot of the environmental inputs, already
// converted to the units of the numeric core. A fresh value is produced on
// every parameter update; it is never mutated after construction.
type EnvState struct {
	Irradiance  float64 `json:"irradiance_w_m2"`  // net solar irradiance, >= 0
	AirTempK    float64 `json:"air_temp_k"`       // absolute air temperature, > 0
	WindSpeed   float64 `json:"wind_speed_mps"`   // >= 0
	RelHumidity float64 `json:"rel_humidity"`     // fraction in [0,1]
}
