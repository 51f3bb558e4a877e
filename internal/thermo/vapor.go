package thermo

import "math"

// SaturationVaporPressure computes e_s (kPa) at tKelvin with the given method.
// Unknown or empty methods fall back to Buck. The function performs no input
// validation: out-of-domain temperatures propagate as NaN/Inf per IEEE-754
// (e.g. Antoine at T = 39.724 K divides by zero and returns +Inf).
func SaturationVaporPressure(tKelvin float64, m Method) float64 {
	switch m {
	case MethodMagnus:
		return magnus(tKelvin)
	case MethodTetens:
		return tetens(tKelvin)
	case MethodAntoine:
		return antoine(tKelvin)
	case MethodGoffGratch:
		return goffGratch(tKelvin)
	default:
		return buck(tKelvin)
	}
}

// buck: Arden Buck (1981), formulated over liquid water. Result in kPa (hPa/10).
func buck(tKelvin float64) float64 {
	tc := tKelvin - ZeroCelsiusK
	return 6.1121 * math.Exp((18.678-tc/234.5)*tc/(257.14+tc)) / 10
}

// magnus: Magnus-Tetens as used by WMO.
func magnus(tKelvin float64) float64 {
	tc := tKelvin - ZeroCelsiusK
	return 6.112 * math.Exp(17.67*tc/(tc+243.5)) / 10
}

// tetens: Tetens (1930).
func tetens(tKelvin float64) float64 {
	tc := tKelvin - ZeroCelsiusK
	return 6.1078 * math.Exp(17.27*tc/(tc+237.3)) / 10
}

// antoine: Antoine with the water coefficients for mmHg, converted to kPa.
func antoine(tKelvin float64) float64 {
	return math.Pow(10, 8.07131-1730.63/(tKelvin-39.724)) * 0.133322
}

// goffGratch: Goff-Gratch (1946) over liquid water, referenced to the steam
// point. Five log10 terms, exponentiated; hPa divided by 10 to get kPa.
func goffGratch(tKelvin float64) float64 {
	r := SteamPointK / tKelvin
	log10e := -7.90298*(r-1) +
		5.02808*math.Log10(r) -
		1.3816e-7*(math.Pow(10, 11.344*(1-tKelvin/SteamPointK))-1) +
		8.1328e-3*(math.Pow(10, -3.49149*(r-1))-1) +
		math.Log10(1013.246)
	return math.Pow(10, log10e) / 10
}

// ClausiusClapeyron estimates e_s (kPa) from the Clausius-Clapeyron relation
// referenced to the boiling point. Kept as a rough cross-check of the
// empirical formulas; it is deliberately not part of the Method enum.
func ClausiusClapeyron(tKelvin float64) float64 {
	hVap := MolarEnthalpyVaporization * 1000 // kJ/mol -> J/mol
	lnRatio := -(hVap / IdealGasConstant) * (1/tKelvin - 1/WaterBoilingPointK)
	return StandardPressure * math.Exp(lnRatio)
}
