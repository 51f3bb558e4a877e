package analytics

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeonardoBeccarini/evap_project/internal/thermo"
)

const fixtureCSV = `latitude,longitude,elevation,utc_offset_seconds,timezone,timezone_abbreviation
40.738136,-74.04254,8.0,0,GMT,GMT

time,temperature_2m (°C),relative_humidity_2m (%),wind_speed_10m (km/h),terrestrial_radiation (W/m²)
1700000000,20.0,5,14.4,500
1700003600,21.0,40,10.0,420
1700007200,19.5,0,12.0,380
`

func loadFixture(t *testing.T) *Dataset {
	t.Helper()
	ds, err := LoadWeatherCSV(strings.NewReader(fixtureCSV))
	require.NoError(t, err)
	return ds
}

func Test_LoadWeatherCSV_Preamble(t *testing.T) {
	ds := loadFixture(t)
	assert.InDelta(t, 40.738136, ds.Latitude, 1e-9)
	assert.InDelta(t, -74.04254, ds.Longitude, 1e-9)
	require.Len(t, ds.Rows, 3)
}

func Test_LoadWeatherCSV_UnitConversions(t *testing.T) {
	ds := loadFixture(t)
	r := ds.Rows[0]
	assert.True(t, r.Time.Equal(time.Unix(1700000000, 0).UTC()))
	assert.InDelta(t, 293.15, r.AirTempK, 1e-9)
	assert.InDelta(t, 0.05, r.RelHumidity, 1e-9)
	assert.InDelta(t, 4.0, r.WindSpeed, 1e-9) // 14.4 km/h
	assert.InDelta(t, 500.0, r.Irradiance, 1e-9)
}

func Test_LoadWeatherCSV_MissingColumn(t *testing.T) {
	bad := `latitude,longitude
1,2

time,temperature_2m (°C)
1700000000,20
`
	_, err := LoadWeatherCSV(strings.NewReader(bad))
	assert.Error(t, err)
}

func Test_Compute_MatchesCalculatorChain(t *testing.T) {
	ds := loadFixture(t)
	samples := Compute(ds, Config{Method: thermo.MethodBuck, WetRelHumidity: 0.975})
	require.Len(t, samples, 3)

	s := samples[0]
	assert.InDelta(t, 0.1443, s.Delta, 5e-4)
	assert.InDelta(t, 17.84, s.EvapRate, 0.05)
	assert.InDelta(t, 83.0, s.Power, 0.5)
	assert.InDelta(t, s.Power*3600/1000, s.EnergyKJ, 1e-9)
}

func Test_Compute_DegenerateHumidity(t *testing.T) {
	ds := loadFixture(t)
	samples := Compute(ds, Config{Method: thermo.MethodBuck})
	// terza riga: RH 0% -> rapporto di umidità divergente
	assert.True(t, math.IsInf(samples[2].Power, 1))
}

func Test_Summarize_SkipsNonFinite(t *testing.T) {
	ds := loadFixture(t)
	samples := Compute(ds, Config{Method: thermo.MethodBuck, WetRelHumidity: 0.975})
	st := Summarize(samples)

	assert.Equal(t, 2, st.Samples)
	assert.True(t, st.Min <= st.Mean && st.Mean <= st.Max)
	expected := (samples[0].Power + samples[1].Power) * 3600
	assert.InDelta(t, expected, st.TotalEnergyJ, 1e-6)
}

func Test_Summarize_Empty(t *testing.T) {
	st := Summarize(nil)
	assert.Equal(t, 0, st.Samples)
	assert.Equal(t, 0.0, st.TotalEnergyJ)
}

func Test_RollingMean_TrailingWindow(t *testing.T) {
	base := time.Unix(1700000000, 0).UTC()
	samples := []Sample{
		{Time: base, Power: 10},
		{Time: base.Add(1 * time.Hour), Power: 20},
		{Time: base.Add(2 * time.Hour), Power: 30},
	}
	pts := RollingMean(samples, time.Hour)
	require.Len(t, pts, 3)
	assert.InDelta(t, 10.0, pts[0].Power, 1e-9)
	assert.InDelta(t, 15.0, pts[1].Power, 1e-9) // finestra: {10,20}
	assert.InDelta(t, 25.0, pts[2].Power, 1e-9) // finestra: {20,30}
}

func Test_RollingMean_SkipsNonFinite(t *testing.T) {
	base := time.Unix(1700000000, 0).UTC()
	samples := []Sample{
		{Time: base, Power: 10},
		{Time: base.Add(1 * time.Hour), Power: math.Inf(1)},
		{Time: base.Add(2 * time.Hour), Power: 30},
	}
	pts := RollingMean(samples, 10*time.Hour)
	require.Len(t, pts, 3)
	assert.InDelta(t, 20.0, pts[2].Power, 1e-9) // media di {10,30}
}
