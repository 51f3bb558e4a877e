package store

import (
	"sync"

	"github.com/LeonardoBeccarini/evap_project/internal/model/entities"
	"github.com/LeonardoBeccarini/evap_project/internal/thermo"
)

// Default seeds: the values the UI sliders start from.
const (
	defaultIrradiance  = 500.0  // W/m2
	defaultAirTempC    = 20.0   // °C
	defaultWindSpeed   = 4.0    // m/s
	defaultRelHumidity = 0.05   // fraction (5%)
	defaultWetRelHum   = 0.975  // saturated zone above the water surface
)

// Config of the store. Zero fields take the documented defaults.
type Config struct {
	WetRelHumidity float64       // RH of the wet zone in the power equation
	Method         thermo.Method // initial vapor pressure method
}

// Subscriber is invoked after every completed recomputation pass, with the
// snapshot that produced the tuple. Callbacks run synchronously on the
// updating goroutine, after the store state is already consistent.
type Subscriber func(entities.EnvState, thermo.Method, entities.DerivedQuantities)

// ParameterStore owns the current environmental inputs and the selected
// vapor pressure method, and recomputes the full derived tuple on every
// change. Recomputation is synchronous and atomic from the consumer's
// perspective: observers only ever see the last full tuple.
type ParameterStore struct {
	mu      sync.Mutex
	state   entities.EnvState
	method  thermo.Method
	derived entities.DerivedQuantities
	wetRH   float64
	subs    []Subscriber
}

// NewParameterStore seeds the store with the default slider values and
// computes the initial tuple.
func NewParameterStore(cfg Config) *ParameterStore {
	wet := cfg.WetRelHumidity
	if wet == 0 {
		wet = defaultWetRelHum
	}
	m := cfg.Method
	if !m.Valid() {
		m = thermo.DefaultMethod
	}
	s := &ParameterStore{
		state: entities.EnvState{
			Irradiance:  defaultIrradiance,
			AirTempK:    defaultAirTempC + thermo.ZeroCelsiusK,
			WindSpeed:   defaultWindSpeed,
			RelHumidity: defaultRelHumidity,
		},
		method: m,
		wetRH:  wet,
	}
	s.derived = s.compute(s.state, s.method)
	return s
}

// Update replaces the inputs and recomputes the tuple in fixed order
// (e_s -> Delta -> evaporation -> latent/power). Returns the new tuple.
func (s *ParameterStore) Update(st entities.EnvState) entities.DerivedQuantities {
	s.mu.Lock()
	m := s.method
	s.mu.Unlock()
	return s.Apply(st, m)
}

// SetMethod switches the vapor pressure formula and recomputes with the
// current inputs unchanged.
func (s *ParameterStore) SetMethod(m thermo.Method) entities.DerivedQuantities {
	s.mu.Lock()
	st := s.state
	s.mu.Unlock()
	return s.Apply(st, m)
}

// Apply sets inputs and method together and runs exactly ONE recomputation
// pass; subscribers observe one consistent tuple per incoming event.
func (s *ParameterStore) Apply(st entities.EnvState, m thermo.Method) entities.DerivedQuantities {
	if !m.Valid() {
		m = thermo.DefaultMethod
	}
	s.mu.Lock()
	s.state = st
	s.method = m
	s.derived = s.compute(st, m)
	d, subs := s.derived, s.subs
	s.mu.Unlock()

	for _, fn := range subs {
		fn(st, m, d)
	}
	return d
}

// Snapshot returns the last computed state without recomputing.
func (s *ParameterStore) Snapshot() (entities.EnvState, thermo.Method, entities.DerivedQuantities) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.method, s.derived
}

// Subscribe registers a callback for future recomputation passes.
func (s *ParameterStore) Subscribe(fn Subscriber) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// compute runs the calculator chain. No validation: degenerate inputs yield
// non-finite numbers that flow through to the consumers untouched.
func (s *ParameterStore) compute(st entities.EnvState, m thermo.Method) entities.DerivedQuantities {
	delta := thermo.Slope(st.AirTempK, thermo.SlopeConfig{Method: m})
	evap := thermo.EvaporationRate(thermo.EvaporationInput{
		NetRadiation: st.Irradiance,
		Delta:        delta,
		WindSpeed:    st.WindSpeed,
		MeanTemp:     st.AirTempK,
		RelHumidity:  st.RelHumidity,
		Method:       m,
	})
	power := thermo.PowerPerArea(thermo.PowerInput{
		EvapRate:       evap,
		AirTemp:        st.AirTempK,
		WetRelHumidity: s.wetRH,
		AirRelHumidity: st.RelHumidity,
	})
	return entities.DerivedQuantities{
		Delta:           delta,
		EvaporationRate: evap,
		LatentEnergy:    thermo.LatentEnergyFlux(evap),
		EnginePower:     power,
	}
}
