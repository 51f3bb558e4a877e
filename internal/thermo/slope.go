package thermo

// SlopeConfig overrides the constants of the vapor-pressure-curve slope.
// Zero fields take the documented defaults, so the zero value is usable.
type SlopeConfig struct {
	VaporPressure    float64 // e_s (kPa); 0 means "compute from Method"
	LatentHeat       float64 // L_v (MJ Mg^-1); default LatentHeatVaporization
	VaporGasConstant float64 // R_v (J kg^-1 K^-1); default WaterVaporGasConstant
	Method           Method  // default MethodBuck
}

// Slope computes Delta = de_s/dT (kPa K^-1) via de_s/dT = L_v*e_s/(R_v*T^2).
// L_v is converted from MJ/Mg to J/kg to match the units of R_v. Delta > 0
// whenever e_s > 0 and T != 0; T = 0 yields +Inf, not an error.
func Slope(tKelvin float64, cfg SlopeConfig) float64 {
	lv := cfg.LatentHeat
	if lv == 0 {
		lv = LatentHeatVaporization
	}
	rv := cfg.VaporGasConstant
	if rv == 0 {
		rv = WaterVaporGasConstant
	}
	es := cfg.VaporPressure
	if es == 0 {
		es = SaturationVaporPressure(tKelvin, cfg.Method)
	}
	return (lv * 1000 * es) / (rv * tKelvin * tKelvin)
}
