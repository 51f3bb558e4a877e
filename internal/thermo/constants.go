package thermo

// Constants of the psychrometric energy-balance equation.
const (
	// ConversionConstant is c_t (W m day MJ^-1 mm^-1).
	ConversionConstant = 0.01157
	// LatentHeatVaporization is L_v for water (MJ Mg^-1).
	LatentHeatVaporization = 2448.0
	// WaterDensity is rho_w (Mg m^-3).
	WaterDensity = 1.0
	// PsychrometricConstant is gamma (kPa K^-1).
	PsychrometricConstant = 0.067
)

// Constants of the power-per-area equation.
const (
	// EvapConversionConstant is c_t (mol day mm^-1 m^-2 s^-1).
	EvapConversionConstant = 6.42465e-4
	// IdealGasConstant is R (J mol^-1 K^-1).
	IdealGasConstant = 8.31446261815324
)

// Other physical constants.
const (
	// WaterVaporGasConstant is R_v (J kg^-1 K^-1).
	WaterVaporGasConstant = 461.5
	// ZeroCelsiusK converts between Celsius and Kelvin.
	ZeroCelsiusK = 273.15
	// SteamPointK is the steam-point reference of the Goff-Gratch formula.
	SteamPointK = 373.16
)

// Constants of the Clausius-Clapeyron estimate.
const (
	// MolarEnthalpyVaporization is H_vap for water (kJ mol^-1).
	MolarEnthalpyVaporization = 40.66
	// WaterBoilingPointK is the reference boiling temperature (K).
	WaterBoilingPointK = 373.15
	// StandardPressure is the reference pressure at boiling (kPa).
	StandardPressure = 101.325
)
