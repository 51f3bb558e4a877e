package recorder

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/LeonardoBeccarini/evap_project/internal/model"
)

// Measurement name of the derived tuple series.
const Measurement = "derived_quantities"

// Writer incapsula WriteAPI e traccia l'ultimo errore di scrittura per
// /healthz e /readyz.
type Writer struct {
	api     api.WriteAPI
	mu      sync.RWMutex
	lastErr time.Time
	count   int64
}

// NewWriter inizializza il writer e attiva il listener degli errori asincroni
// di Influx.
func NewWriter(w api.WriteAPI) *Writer {
	ww := &Writer{
		api:     w,
		lastErr: time.Now().Add(-24 * time.Hour), // di default "lontano nel tempo"
	}
	go func() {
		for err := range w.Errors() {
			if err != nil {
				ww.mu.Lock()
				ww.lastErr = time.Now()
				ww.mu.Unlock()
				log.Printf("influx write error: %v", err)
			}
		}
	}()
	return ww
}

// LastErrorAge ritorna da quanto tempo non si verificano errori di scrittura.
func (w *Writer) LastErrorAge() time.Duration {
	if w == nil {
		return 99999 * time.Hour
	}
	w.mu.RLock()
	t := w.lastErr
	w.mu.RUnlock()
	return time.Since(t)
}

// MarkIngest incrementa il contatore dei punti scritti.
func (w *Writer) MarkIngest() {
	if w == nil {
		return
	}
	w.mu.Lock()
	w.count++
	w.mu.Unlock()
}

// Count legge il contatore dei punti scritti.
func (w *Writer) Count() int64 {
	if w == nil {
		return 0
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.count
}

// MQTTHandler decodes derived events and hands them to a sink (Influx).
type MQTTHandler struct{ sink func(model.DerivedQuantitiesEvent) }

func NewMQTTHandler(sink func(model.DerivedQuantitiesEvent)) *MQTTHandler {
	return &MQTTHandler{sink: sink}
}

func (h *MQTTHandler) Handle(_ string, m mqtt.Message) error {
	if !strings.HasPrefix(m.Topic(), "derived/quantities/") {
		return nil // ignora altri topic
	}
	var evt model.DerivedQuantitiesEvent
	if err := json.Unmarshal(m.Payload(), &evt); err != nil {
		return err
	}
	if strings.TrimSpace(evt.Source) == "" {
		// fallback: source dal topic "derived/quantities/{source}"
		evt.Source = strings.TrimPrefix(m.Topic(), "derived/quantities/")
	}
	if evt.Source == "" {
		return errors.New("derived event: missing source")
	}
	if h.sink != nil {
		h.sink(evt)
	}
	return nil
}

// DerivedToPoint normalizza un DerivedQuantitiesEvent in un *write.Point.
// Tags: source e method; fields: la tupla derivata più gli input che l'hanno
// prodotta, così una singola serie basta per ricostruire il passaggio.
func DerivedToPoint(evt model.DerivedQuantitiesEvent) *write.Point {
	tags := map[string]string{
		"source": evt.Source,
		"method": evt.Method,
	}
	fields := map[string]interface{}{
		"delta_kpa_k":       evt.Derived.Delta,
		"evap_mm_day":       evt.Derived.EvaporationRate,
		"latent_w_m2":       evt.Derived.LatentEnergy,
		"engine_power_w_m2": evt.Derived.EnginePower,
		"irradiance_w_m2":   evt.State.Irradiance,
		"air_temp_k":        evt.State.AirTempK,
		"wind_speed_mps":    evt.State.WindSpeed,
		"rel_humidity":      evt.State.RelHumidity,
	}
	t := evt.Timestamp
	if t.IsZero() {
		t = time.Now()
	}
	return influxdb2.NewPoint(Measurement, tags, fields, t)
}
