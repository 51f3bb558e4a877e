package store

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeonardoBeccarini/evap_project/internal/model/entities"
	"github.com/LeonardoBeccarini/evap_project/internal/thermo"
)

func Test_NewParameterStore_Seeds(t *testing.T) {
	s := NewParameterStore(Config{})
	st, m, d := s.Snapshot()

	assert.Equal(t, thermo.MethodBuck, m)
	assert.Equal(t, 500.0, st.Irradiance)
	assert.InDelta(t, 293.15, st.AirTempK, 1e-12)
	assert.Equal(t, 4.0, st.WindSpeed)
	assert.Equal(t, 0.05, st.RelHumidity)

	// initial tuple already computed: the 20 °C reference scenario
	assert.InDelta(t, 0.1443, d.Delta, 0.001)
	assert.InDelta(t, 17.84, d.EvaporationRate, 0.05)
	assert.InDelta(t, d.EvaporationRate*2448*1000/86400, d.LatentEnergy, 1e-9)
	assert.InDelta(t, 83.0, d.EnginePower, 0.5)
}

func Test_Update_RecomputesWholeTuple(t *testing.T) {
	s := NewParameterStore(Config{})
	st := entities.EnvState{Irradiance: 800, AirTempK: 303.15, WindSpeed: 2, RelHumidity: 0.30}
	d := s.Update(st)

	delta := thermo.Slope(st.AirTempK, thermo.SlopeConfig{})
	evap := thermo.EvaporationRate(thermo.EvaporationInput{
		NetRadiation: st.Irradiance, Delta: delta, WindSpeed: st.WindSpeed,
		MeanTemp: st.AirTempK, RelHumidity: st.RelHumidity,
	})
	assert.Equal(t, delta, d.Delta)
	assert.Equal(t, evap, d.EvaporationRate)
	assert.Equal(t, thermo.LatentEnergyFlux(evap), d.LatentEnergy)

	// snapshot agrees with the returned tuple
	_, _, snap := s.Snapshot()
	assert.Equal(t, d, snap)
}

func Test_Update_Deterministic(t *testing.T) {
	s := NewParameterStore(Config{})
	st := entities.EnvState{Irradiance: 650, AirTempK: 288.15, WindSpeed: 6, RelHumidity: 0.5}
	first := s.Update(st)
	second := s.Update(st)
	assert.Equal(t, first, second)
}

func Test_SetMethod_SubstitutionOnly(t *testing.T) {
	s := NewParameterStore(Config{})
	_, _, buck := s.Snapshot()
	tetens := s.SetMethod(thermo.MethodTetens)

	assert.NotEqual(t, buck.EvaporationRate, tetens.EvaporationRate)
	assert.NotEqual(t, buck.EnginePower, tetens.EnginePower)
	// Delta scales exactly with the e_s substitution
	ratio := thermo.SaturationVaporPressure(293.15, thermo.MethodTetens) /
		thermo.SaturationVaporPressure(293.15, thermo.MethodBuck)
	assert.InDelta(t, ratio, tetens.Delta/buck.Delta, 1e-12)

	// invalid method falls back to the default
	d := s.SetMethod(thermo.Method("nope"))
	_, m, _ := s.Snapshot()
	assert.Equal(t, thermo.DefaultMethod, m)
	assert.InDelta(t, buck.Delta, d.Delta, 1e-12)
}

func Test_Subscribe_OnePassPerUpdate(t *testing.T) {
	s := NewParameterStore(Config{})
	var calls int
	var last entities.DerivedQuantities
	s.Subscribe(func(_ entities.EnvState, _ thermo.Method, d entities.DerivedQuantities) {
		calls++
		last = d
	})

	d1 := s.Update(entities.EnvState{Irradiance: 100, AirTempK: 280.15, WindSpeed: 1, RelHumidity: 0.8})
	require.Equal(t, 1, calls)
	assert.Equal(t, d1, last)

	d2 := s.SetMethod(thermo.MethodMagnus)
	require.Equal(t, 2, calls)
	assert.Equal(t, d2, last)
}

// Degenerate inputs flow through as non-finite values, the store never
// rejects or panics.
func Test_Update_DegenerateInputs(t *testing.T) {
	s := NewParameterStore(Config{})
	d := s.Update(entities.EnvState{Irradiance: 500, AirTempK: 293.15, WindSpeed: 4, RelHumidity: 0})
	assert.True(t, math.IsInf(d.EnginePower, 1))
	assert.False(t, math.IsNaN(d.EvaporationRate))
}

func Test_Config_WetRelHumidity(t *testing.T) {
	low := NewParameterStore(Config{WetRelHumidity: 0.95})
	high := NewParameterStore(Config{WetRelHumidity: 1.0})
	_, _, dl := low.Snapshot()
	_, _, dh := high.Snapshot()
	// larger humidity gradient, larger power; everything else identical
	assert.Greater(t, dh.EnginePower, dl.EnginePower)
	assert.Equal(t, dl.EvaporationRate, dh.EvaporationRate)
}
