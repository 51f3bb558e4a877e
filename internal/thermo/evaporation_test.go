package thermo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func referenceInput() EvaporationInput {
	// 500 W/m2, 20 °C, 4 m/s, RH 5%
	return EvaporationInput{
		NetRadiation: 500,
		Delta:        Slope(293.15, SlopeConfig{}),
		WindSpeed:    4,
		MeanTemp:     293.15,
		RelHumidity:  0.05,
	}
}

func Test_EvaporationRate_Reference(t *testing.T) {
	got := EvaporationRate(referenceInput())
	assert.True(t, got > 0 && !math.IsInf(got, 0) && !math.IsNaN(got))
	assert.InDelta(t, 17.84, got, 0.05)
}

func Test_EvaporationRate_Idempotent(t *testing.T) {
	in := referenceInput()
	assert.Equal(t, EvaporationRate(in), EvaporationRate(in))
}

// Higher humidity shrinks the vapor pressure deficit and with it the
// aerodynamic term.
func Test_EvaporationRate_HumidityDampens(t *testing.T) {
	dry := referenceInput()
	wet := dry
	wet.RelHumidity = 0.95
	assert.Greater(t, EvaporationRate(dry), EvaporationRate(wet))
}

func Test_EvaporationRate_WindIncreases(t *testing.T) {
	calm := referenceInput()
	calm.WindSpeed = 0
	windy := calm
	windy.WindSpeed = 10
	assert.Greater(t, EvaporationRate(windy), EvaporationRate(calm))
}

// Swapping the vapor pressure method changes the output only through the
// e* substitution inside the deficit term.
func Test_EvaporationRate_MethodSubstitution(t *testing.T) {
	buck := referenceInput()
	antoine := buck
	antoine.Method = MethodAntoine
	eb := EvaporationRate(buck)
	ea := EvaporationRate(antoine)
	assert.NotEqual(t, eb, ea)

	// reconstruct the Antoine value from the Buck one by swapping deficits
	ct, lv, rhow, gamma := ConversionConstant, LatentHeatVaporization, WaterDensity, PsychrometricConstant
	den := ct * lv * rhow * (buck.Delta + gamma)
	aero := 2.6 * ct * lv * rhow * gamma * (1 + 0.54*buck.WindSpeed) * (1 - buck.RelHumidity)
	want := eb + aero*(SaturationVaporPressure(293.15, MethodAntoine)-SaturationVaporPressure(293.15, MethodBuck))/den
	assert.InDelta(t, want, ea, 1e-9)
}
