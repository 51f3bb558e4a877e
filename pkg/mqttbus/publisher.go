package mqttbus

import (
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// IPublisher is the publishing side used by the services.
type IPublisher interface {
	PublishMessage(message string) error
	PublishToQos(topic string, qos byte, retained bool, message string) error
	Close()
}

// Publisher binds the shared MQTT client to a default topic.
type Publisher struct {
	client mqtt.Client
	topic  string
}

// NewPublisher creates a Publisher over the shared client.
func NewPublisher(client mqtt.Client, topic string) *Publisher {
	return &Publisher{client: client, topic: topic}
}

// PublishMessage publishes to the default topic at QoS 0 (at most once).
func (p *Publisher) PublishMessage(message string) error {
	return p.PublishToQos(p.topic, 0, false, message)
}

// PublishToQos publishes to an explicit topic with an explicit QoS; used for
// derived-quantities events which travel at QoS 1.
func (p *Publisher) PublishToQos(topic string, qos byte, retained bool, message string) error {
	token := p.client.Publish(topic, qos, retained, message)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to publish message: %w", token.Error())
	}
	return nil
}

// Close gracefully disconnects the underlying client.
func (p *Publisher) Close() {
	if p.client.IsConnected() {
		p.client.Disconnect(250)
		log.Println("mqttbus: publisher disconnected")
	}
}
