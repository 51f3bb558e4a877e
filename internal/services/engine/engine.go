package engine

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/LeonardoBeccarini/evap_project/internal/model"
	"github.com/LeonardoBeccarini/evap_project/internal/store"
	"github.com/LeonardoBeccarini/evap_project/internal/thermo"
	"github.com/LeonardoBeccarini/evap_project/pkg/dedup"
	"github.com/LeonardoBeccarini/evap_project/pkg/mqttbus"
)

const defaultDerivedTopicTmpl = "derived/quantities/{source}"

// Engine consumes parameter updates, drives the reactive store and
// republishes the derived tuple for chart consumers and the recorder.
// One incoming update, one synchronous recomputation pass, one event out.
type Engine struct {
	consumer  mqttbus.IConsumer
	publisher mqttbus.IPublisher
	store     *store.ParameterStore

	derivedTopicTmpl string
	metrics          *Metrics

	// deduper per scartare redelivery QoS1 (hash payload)
	deduper *dedup.Deduper
}

func NewEngine(c mqttbus.IConsumer, p mqttbus.IPublisher, st *store.ParameterStore,
	derivedTopicTmpl string, metrics *Metrics) *Engine {
	if strings.TrimSpace(derivedTopicTmpl) == "" {
		derivedTopicTmpl = defaultDerivedTopicTmpl
	}
	e := &Engine{
		consumer:         c,
		publisher:        p,
		store:            st,
		derivedTopicTmpl: derivedTopicTmpl,
		metrics:          metrics,
		deduper:          dedup.New(10*time.Minute, 20000),
	}
	c.SetHandler(e.handleParamUpdate)
	return e
}

func (e *Engine) Start(ctx context.Context) {
	go e.consumer.ConsumeMessage(ctx)
	<-ctx.Done()
}

// handleParamUpdate è il punto di ingresso reattivo: ogni evento slider
// produce esattamente un passaggio completo di ricalcolo.
func (e *Engine) handleParamUpdate(_ string, msg mqtt.Message) error {
	if e.deduper != nil && !e.deduper.ShouldProcessPayload(msg.Payload()) {
		return nil
	}

	var evt model.ParamUpdateEvent
	if err := json.Unmarshal(msg.Payload(), &evt); err != nil {
		log.Printf("engine: bad payload: %v", err)
		e.metrics.MarkBadPayload()
		return nil // non bloccare lo stream
	}

	method, err := thermo.ParseMethod(evt.Method)
	if err != nil {
		// tag sconosciuto: tieni il metodo corrente, il resto dell'update vale
		log.Printf("engine: %v (keeping current method)", err)
		_, method, _ = e.store.Snapshot()
	}

	derived := e.store.Apply(evt.EnvState(), method)
	e.metrics.Observe(derived)

	log.Printf("engine: pass source=%s method=%s delta=%.4f evap=%.2fmm/d latent=%.1fW/m2 power=%.1fW/m2",
		evt.Source, method, derived.Delta, derived.EvaporationRate, derived.LatentEnergy, derived.EnginePower)

	return e.publishDerived(evt.Source, method, evt.EnvState(), derived)
}

func (e *Engine) publishDerived(source string, m thermo.Method,
	st model.EnvState, d model.DerivedQuantities) error {
	out := model.DerivedQuantitiesEvent{
		Ticket:    uuid.New().String(),
		Source:    source,
		Method:    string(m),
		State:     st,
		Derived:   d,
		Timestamp: time.Now().UTC(),
	}
	b, _ := json.Marshal(out)
	topic := strings.NewReplacer("{source}", source).Replace(e.derivedTopicTmpl)

	// derived events a QoS=1: il recorder non deve perderli
	if err := e.publisher.PublishToQos(topic, 1, false, string(b)); err != nil {
		log.Printf("engine: publish derived error: %v", err)
		return err
	}
	return nil
}
