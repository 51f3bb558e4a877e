package thermo

import "math"

// PowerInput carries the inputs of the humidity-gradient power equation.
// Constant fields left at zero take the documented defaults.
type PowerInput struct {
	EvapRate       float64 // E (mm day^-1)
	AirTemp        float64 // T_air (K)
	WetRelHumidity float64 // RH in the saturated zone above the water (0.95-1.0)
	AirRelHumidity float64 // ambient RH, fraction

	Conversion  float64 // c_t; default EvapConversionConstant
	GasConstant float64 // R; default IdealGasConstant
}

// PowerPerArea computes the maximum theoretical power density (W m^-2) of an
// evaporation-driven engine: P = c_t * E * R * T_air * ln(RH_wet/RH_air),
// an entropy-of-mixing term scaled by the evaporative mass flux.
// AirRelHumidity = 0 gives +Inf, a non-positive humidity ratio gives NaN;
// both propagate as non-finite results, never as a panic. Callers must treat
// non-finite output as "no valid power estimate".
func PowerPerArea(in PowerInput) float64 {
	ct := in.Conversion
	if ct == 0 {
		ct = EvapConversionConstant
	}
	r := in.GasConstant
	if r == 0 {
		r = IdealGasConstant
	}
	return ct * in.EvapRate * r * in.AirTemp * math.Log(in.WetRelHumidity/in.AirRelHumidity)
}

// LatentEnergyFlux converts an evaporation rate (mm day^-1) into the total
// latent heat flux it carries (W m^-2): E * L_v[J/kg] / 86400 s.
func LatentEnergyFlux(evapRate float64) float64 {
	return evapRate * LatentHeatVaporization * 1000 / 86400
}

// EnergyPerArea converts an hourly mean power density (W m^-2) into the
// energy density of that hour (kJ m^-2).
func EnergyPerArea(power float64) float64 {
	return power * 3600 / 1000
}
