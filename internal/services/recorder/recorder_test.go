package recorder

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeonardoBeccarini/evap_project/internal/model"
	"github.com/LeonardoBeccarini/evap_project/internal/model/entities"
)

type fakeMessage struct {
	topic   string
	payload []byte
}

func (f fakeMessage) Duplicate() bool   { return false }
func (f fakeMessage) Qos() byte         { return 1 }
func (f fakeMessage) Retained() bool    { return false }
func (f fakeMessage) Topic() string     { return f.topic }
func (f fakeMessage) MessageID() uint16 { return 0 }
func (f fakeMessage) Payload() []byte   { return f.payload }
func (f fakeMessage) Ack()              {}

func sampleEvent() model.DerivedQuantitiesEvent {
	return model.DerivedQuantitiesEvent{
		Ticket: "t-1",
		Source: "sim1",
		Method: "buck",
		State:  entities.EnvState{Irradiance: 500, AirTempK: 293.15, WindSpeed: 4, RelHumidity: 0.05},
		Derived: entities.DerivedQuantities{
			Delta: 0.1443, EvaporationRate: 17.84, LatentEnergy: 505.5, EnginePower: 83.0,
		},
		Timestamp: time.Unix(1700000000, 0).UTC(),
	}
}

func Test_MQTTHandler_Handle(t *testing.T) {
	var got *model.DerivedQuantitiesEvent
	h := NewMQTTHandler(func(evt model.DerivedQuantitiesEvent) { got = &evt })

	b, err := json.Marshal(sampleEvent())
	require.NoError(t, err)

	require.NoError(t, h.Handle("", fakeMessage{"derived/quantities/sim1", b}))
	require.NotNil(t, got)
	assert.Equal(t, "sim1", got.Source)
	assert.InDelta(t, 83.0, got.Derived.EnginePower, 1e-9)
}

func Test_MQTTHandler_IgnoresOtherTopics(t *testing.T) {
	called := false
	h := NewMQTTHandler(func(model.DerivedQuantitiesEvent) { called = true })
	b, _ := json.Marshal(sampleEvent())
	require.NoError(t, h.Handle("", fakeMessage{"param/update/sim1", b}))
	assert.False(t, called)
}

func Test_MQTTHandler_SourceFromTopic(t *testing.T) {
	evt := sampleEvent()
	evt.Source = ""
	b, _ := json.Marshal(evt)

	var got *model.DerivedQuantitiesEvent
	h := NewMQTTHandler(func(e model.DerivedQuantitiesEvent) { got = &e })
	require.NoError(t, h.Handle("", fakeMessage{"derived/quantities/sim7", b}))
	require.NotNil(t, got)
	assert.Equal(t, "sim7", got.Source)
}

func Test_MQTTHandler_BadPayload(t *testing.T) {
	h := NewMQTTHandler(func(model.DerivedQuantitiesEvent) {})
	err := h.Handle("", fakeMessage{"derived/quantities/sim1", []byte("{oops")})
	assert.Error(t, err)
}

func Test_DerivedToPoint(t *testing.T) {
	evt := sampleEvent()
	p := DerivedToPoint(evt)

	assert.Equal(t, Measurement, p.Name())
	assert.True(t, p.Time().Equal(evt.Timestamp))

	fields := map[string]interface{}{}
	for _, f := range p.FieldList() {
		fields[f.Key] = f.Value
	}
	assert.Equal(t, 83.0, fields["engine_power_w_m2"])
	assert.Equal(t, 17.84, fields["evap_mm_day"])
	assert.Equal(t, 500.0, fields["irradiance_w_m2"])

	tags := map[string]string{}
	for _, tg := range p.TagList() {
		tags[tg.Key] = tg.Value
	}
	assert.Equal(t, "sim1", tags["source"])
	assert.Equal(t, "buck", tags["method"])
}
