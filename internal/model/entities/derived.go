package entities

// DerivedQuantities is the tuple recomputed from one EnvState. Fully
// determined by the inputs plus the vapor pressure method; it has no
// independent mutation.
type DerivedQuantities struct {
	Delta           float64 `json:"delta_kpa_k"`       // slope of the saturation curve (kPa/K)
	EvaporationRate float64 `json:"evap_mm_day"`       // mm/day
	LatentEnergy    float64 `json:"latent_w_m2"`       // total latent heat flux (W/m2)
	EnginePower     float64 `json:"engine_power_w_m2"` // max theoretical engine power (W/m2)
}
