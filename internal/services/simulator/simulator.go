package simulator

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/LeonardoBeccarini/evap_project/pkg/mqttbus"
)

// ParamSimulator publishes parameter updates at a fixed cadence, standing in
// for the sliders of the interactive front-end.
type ParamSimulator struct {
	source    string
	method    string
	generator *ParamGenerator
	publisher mqttbus.IPublisher
}

func NewParamSimulator(publisher mqttbus.IPublisher, gen *ParamGenerator, source, method string) *ParamSimulator {
	return &ParamSimulator{
		source:    source,
		method:    method,
		generator: gen,
		publisher: publisher,
	}
}

// Start pubblica un update ad ogni intervallo finché il contesto non chiude.
func (s *ParamSimulator) Start(ctx context.Context, interval time.Duration) {
	for {
		select {
		case <-ctx.Done():
			s.publisher.Close()
			return
		case <-time.After(interval):
			evt := s.generator.Next(s.source, s.method)
			log.Printf("simulator: pub irr=%.0fW/m2 T=%.1fC wind=%.1fm/s rh=%.0f%% method=%s",
				evt.Irradiance, evt.AirTempC, evt.WindSpeed, evt.RelHumidityPct, evt.Method)
			payload, _ := json.Marshal(evt)
			if err := s.publisher.PublishMessage(string(payload)); err != nil {
				log.Printf("simulator: publish error: %v", err)
			}
		}
	}
}
