package thermo

// EvaporationInput carries the inputs of the psychrometric combination
// equation. Constant fields left at zero take the documented defaults;
// the data fields (NetRadiation, Delta, WindSpeed, MeanTemp, RelHumidity)
// are used as given, without validation. RelHumidity is a fraction in [0,1];
// values outside that range are the caller's responsibility.
type EvaporationInput struct {
	NetRadiation float64 // R_n (W m^-2)
	Delta        float64 // slope of the saturation curve (kPa K^-1)
	WindSpeed    float64 // u_a (m s^-1)
	MeanTemp     float64 // T_mean (K)
	RelHumidity  float64 // fraction [0,1]

	Conversion    float64 // c_t; default ConversionConstant
	LatentHeat    float64 // L_v; default LatentHeatVaporization
	WaterDensity  float64 // rho_w; default WaterDensity
	Psychrometric float64 // gamma; default PsychrometricConstant
	Method        Method  // default MethodBuck
}

// EvaporationRate computes E_pr (mm day^-1) for a free water surface with a
// Penman-type combination equation: a radiation term and an aerodynamic term
// weighted by Delta against the psychrometric constant. Pure function of its
// inputs; non-finite values propagate silently.
func EvaporationRate(in EvaporationInput) float64 {
	ct := in.Conversion
	if ct == 0 {
		ct = ConversionConstant
	}
	lv := in.LatentHeat
	if lv == 0 {
		lv = LatentHeatVaporization
	}
	rhow := in.WaterDensity
	if rhow == 0 {
		rhow = WaterDensity
	}
	gamma := in.Psychrometric
	if gamma == 0 {
		gamma = PsychrometricConstant
	}

	// vapor pressure deficit D_a = (1 - RH) * e*(T)
	eStar := SaturationVaporPressure(in.MeanTemp, in.Method)
	da := (1 - in.RelHumidity) * eStar

	num := in.Delta*in.NetRadiation + 2.6*ct*lv*rhow*gamma*(1+0.54*in.WindSpeed)*da
	den := ct * lv * rhow * (in.Delta + gamma)
	return num / den
}
