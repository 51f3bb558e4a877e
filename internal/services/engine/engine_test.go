package engine

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeonardoBeccarini/evap_project/internal/model"
	"github.com/LeonardoBeccarini/evap_project/internal/store"
	"github.com/LeonardoBeccarini/evap_project/internal/thermo"
)

// ---- fakes ----

type fakeMessage struct{ payload []byte }

func (f fakeMessage) Duplicate() bool   { return false }
func (f fakeMessage) Qos() byte         { return 0 }
func (f fakeMessage) Retained() bool    { return false }
func (f fakeMessage) Topic() string     { return "param/update/test" }
func (f fakeMessage) MessageID() uint16 { return 0 }
func (f fakeMessage) Payload() []byte   { return f.payload }
func (f fakeMessage) Ack()              {}

type published struct {
	topic   string
	qos     byte
	message string
}

type fakePublisher struct{ sent []published }

func (f *fakePublisher) PublishMessage(message string) error {
	return f.PublishToQos("", 0, false, message)
}
func (f *fakePublisher) PublishToQos(topic string, qos byte, _ bool, message string) error {
	f.sent = append(f.sent, published{topic, qos, message})
	return nil
}
func (f *fakePublisher) Close() {}

type fakeConsumer struct {
	handler func(topic string, message mqtt.Message) error
}

func (f *fakeConsumer) ConsumeMessage(ctx context.Context) { <-ctx.Done() }
func (f *fakeConsumer) SetHandler(h func(topic string, message mqtt.Message) error) {
	f.handler = h
}

func newTestEngine(t *testing.T) (*Engine, *fakePublisher, *store.ParameterStore) {
	t.Helper()
	pub := &fakePublisher{}
	st := store.NewParameterStore(store.Config{})
	e := NewEngine(&fakeConsumer{}, pub, st, "", NewMetrics(prometheus.NewRegistry()))
	return e, pub, st
}

func paramPayload(t *testing.T, evt model.ParamUpdateEvent) []byte {
	t.Helper()
	b, err := json.Marshal(evt)
	require.NoError(t, err)
	return b
}

// ---- tests ----

func Test_HandleParamUpdate_PublishesDerived(t *testing.T) {
	e, pub, _ := newTestEngine(t)

	evt := model.ParamUpdateEvent{
		Source: "sim1", Irradiance: 500, AirTempC: 20, WindSpeed: 4,
		RelHumidityPct: 5, Method: "buck", Timestamp: time.Now().UTC(),
	}
	require.NoError(t, e.handleParamUpdate("", fakeMessage{paramPayload(t, evt)}))
	require.Len(t, pub.sent, 1)

	assert.Equal(t, "derived/quantities/sim1", pub.sent[0].topic)
	assert.Equal(t, byte(1), pub.sent[0].qos)

	var out model.DerivedQuantitiesEvent
	require.NoError(t, json.Unmarshal([]byte(pub.sent[0].message), &out))
	assert.NotEmpty(t, out.Ticket)
	assert.Equal(t, "buck", out.Method)
	assert.InDelta(t, 0.1443, out.Derived.Delta, 0.001)
	assert.InDelta(t, 17.84, out.Derived.EvaporationRate, 0.05)
	assert.InDelta(t, 83.0, out.Derived.EnginePower, 0.5)
}

func Test_HandleParamUpdate_DedupsRedelivery(t *testing.T) {
	e, pub, _ := newTestEngine(t)

	evt := model.ParamUpdateEvent{Source: "sim1", Irradiance: 300, AirTempC: 15,
		WindSpeed: 2, RelHumidityPct: 40, Timestamp: time.Unix(1700000000, 0).UTC()}
	payload := paramPayload(t, evt)

	require.NoError(t, e.handleParamUpdate("", fakeMessage{payload}))
	require.NoError(t, e.handleParamUpdate("", fakeMessage{payload})) // QoS1 redelivery
	assert.Len(t, pub.sent, 1)
}

func Test_HandleParamUpdate_BadPayload(t *testing.T) {
	e, pub, _ := newTestEngine(t)
	// non deve bloccare lo stream: errore loggato, nessun publish
	assert.NoError(t, e.handleParamUpdate("", fakeMessage{[]byte("{not json")}))
	assert.Empty(t, pub.sent)
}

func Test_HandleParamUpdate_UnknownMethodKeepsCurrent(t *testing.T) {
	e, pub, st := newTestEngine(t)

	evt := model.ParamUpdateEvent{Source: "sim1", Irradiance: 500, AirTempC: 20,
		WindSpeed: 4, RelHumidityPct: 5, Method: "wexler", Timestamp: time.Now().UTC()}
	require.NoError(t, e.handleParamUpdate("", fakeMessage{paramPayload(t, evt)}))

	_, m, _ := st.Snapshot()
	assert.Equal(t, thermo.MethodBuck, m)
	require.Len(t, pub.sent, 1)

	var out model.DerivedQuantitiesEvent
	require.NoError(t, json.Unmarshal([]byte(pub.sent[0].message), &out))
	assert.Equal(t, "buck", out.Method)
}

func Test_HandleParamUpdate_MethodSwitch(t *testing.T) {
	e, pub, st := newTestEngine(t)

	evt := model.ParamUpdateEvent{Source: "sim1", Irradiance: 500, AirTempC: 20,
		WindSpeed: 4, RelHumidityPct: 5, Method: "goff-gratch", Timestamp: time.Now().UTC()}
	require.NoError(t, e.handleParamUpdate("", fakeMessage{paramPayload(t, evt)}))

	_, m, _ := st.Snapshot()
	assert.Equal(t, thermo.MethodGoffGratch, m)
	require.Len(t, pub.sent, 1)
}
