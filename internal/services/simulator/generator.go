package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/LeonardoBeccarini/evap_project/internal/model"
)

// ====== Tunables ======
const (
	// slider ranges (stessi limiti della UI)
	minIrradiance, maxIrradiance = 0.0, 1000.0 // W/m2
	minAirTempC, maxAirTempC     = -10.0, 45.0 // °C
	minWindSpeed, maxWindSpeed   = 0.0, 15.0   // m/s
	minRelHumPct, maxRelHumPct   = 1.0, 100.0  // %

	// ampiezza massima del passo di random walk, per tick
	stepIrradiance = 25.0
	stepAirTempC   = 0.4
	stepWindSpeed  = 0.5
	stepRelHumPct  = 2.0

	// defaultSeed*: valori iniziali se Open-Meteo non è disponibile.
	defaultSeedIrradiance = 500.0
	defaultSeedAirTempC   = 20.0
	defaultSeedWindSpeed  = 4.0
	defaultSeedRelHumPct  = 5.0

	// openMeteoURL: fetch singola all'avvio; NON chiamare ad ogni tick.
	openMeteoURL = "https://api.open-meteo.com/v1/forecast?latitude=%f&longitude=%f&current=temperature_2m,relative_humidity_2m,wind_speed_10m,shortwave_radiation&wind_speed_unit=ms"
)

// ParamGenerator keeps the current slider values and walks them randomly in
// time, mimicking a user dragging the controls. At most ONE optional fetch
// to Open-Meteo at startup seeds the walk with real weather.
type ParamGenerator struct {
	mu         sync.Mutex
	seeded     bool
	irradiance float64
	airTempC   float64
	windSpeed  float64
	relHumPct  float64
	rng        *rand.Rand
	httpClient *http.Client
}

func NewParamGenerator(seed int64) *ParamGenerator {
	return &ParamGenerator{
		rng:        rand.New(rand.NewSource(seed)),
		httpClient: &http.Client{Timeout: 8 * time.Second},
	}
}

type openMeteoResp struct {
	Current struct {
		Temperature        float64 `json:"temperature_2m"`
		RelativeHumidity   float64 `json:"relative_humidity_2m"`
		WindSpeed          float64 `json:"wind_speed_10m"`
		ShortwaveRadiation float64 `json:"shortwave_radiation"`
	} `json:"current"`
}

// SeedFromOpenMeteo --> singola fetch all'avvio. Se fallisce, usa i default.
func (g *ParamGenerator) SeedFromOpenMeteo(ctx context.Context, lat, lon float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.seeded {
		return
	}

	g.irradiance = defaultSeedIrradiance
	g.airTempC = defaultSeedAirTempC
	g.windSpeed = defaultSeedWindSpeed
	g.relHumPct = defaultSeedRelHumPct

	if lat != 0 || lon != 0 {
		if cur, err := g.fetchCurrentWeather(ctx, lat, lon); err == nil {
			g.irradiance = clamp(cur.Current.ShortwaveRadiation, minIrradiance, maxIrradiance)
			g.airTempC = clamp(cur.Current.Temperature, minAirTempC, maxAirTempC)
			g.windSpeed = clamp(cur.Current.WindSpeed, minWindSpeed, maxWindSpeed)
			g.relHumPct = clamp(cur.Current.RelativeHumidity, minRelHumPct, maxRelHumPct)
		}
	}
	g.seeded = true
}

// Next advances the random walk by one step and returns the corresponding
// parameter update event.
func (g *ParamGenerator) Next(source, method string) model.ParamUpdateEvent {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.seeded {
		// seed di default al primo uso se SeedFromOpenMeteo non è stato chiamato
		g.irradiance = defaultSeedIrradiance
		g.airTempC = defaultSeedAirTempC
		g.windSpeed = defaultSeedWindSpeed
		g.relHumPct = defaultSeedRelHumPct
		g.seeded = true
	}

	g.irradiance = clamp(g.irradiance+g.step(stepIrradiance), minIrradiance, maxIrradiance)
	g.airTempC = clamp(g.airTempC+g.step(stepAirTempC), minAirTempC, maxAirTempC)
	g.windSpeed = clamp(g.windSpeed+g.step(stepWindSpeed), minWindSpeed, maxWindSpeed)
	g.relHumPct = clamp(g.relHumPct+g.step(stepRelHumPct), minRelHumPct, maxRelHumPct)

	return model.ParamUpdateEvent{
		Source:         source,
		Irradiance:     g.irradiance,
		AirTempC:       g.airTempC,
		WindSpeed:      g.windSpeed,
		RelHumidityPct: g.relHumPct,
		Method:         method,
		Timestamp:      time.Now().UTC(),
	}
}

// ===== Helpers =====

func (g *ParamGenerator) step(max float64) float64 {
	return (g.rng.Float64()*2 - 1) * max
}

func (g *ParamGenerator) fetchCurrentWeather(ctx context.Context, lat, lon float64) (*openMeteoResp, error) {
	url := fmt.Sprintf(openMeteoURL, lat, lon)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "evap-param-simulator/1.0")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("open-meteo HTTP %d: %s", resp.StatusCode, string(b))
	}

	var out openMeteoResp
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
