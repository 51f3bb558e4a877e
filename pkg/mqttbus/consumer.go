package mqttbus

import (
	"context"
	"log"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// IConsumer is the consuming side used by the services.
type IConsumer interface {
	ConsumeMessage(ctx context.Context)
	SetHandler(handler func(topic string, message mqtt.Message) error)
}

// Consumer subscribes to a single topic filter and dispatches messages to
// the configured handler.
type Consumer struct {
	client  mqtt.Client
	handler func(topic string, message mqtt.Message) error
	topic   string
}

func NewConsumer(client mqtt.Client, topic string, handler func(topic string, message mqtt.Message) error) *Consumer {
	return &Consumer{client: client, topic: topic, handler: handler}
}

func (c *Consumer) SetHandler(handler func(topic string, message mqtt.Message) error) {
	c.handler = handler
}

// qosFor: derived-quantities events must not be lost by the recorder, so
// they travel at QoS 1; raw parameter updates are fine at QoS 0 (the next
// slider move supersedes the last one anyway).
func qosFor(topic string) byte {
	if strings.HasPrefix(strings.TrimSpace(topic), "derived/quantities") {
		return 1
	}
	return 0
}

// ConsumeMessage subscribes and blocks until the context is cancelled.
func (c *Consumer) ConsumeMessage(ctx context.Context) {
	token := c.client.Subscribe(
		c.topic,
		qosFor(c.topic),
		func(_ mqtt.Client, message mqtt.Message) {
			if c.handler == nil {
				log.Printf("mqttbus: no handler set for topic %s", c.topic)
				return
			}
			if err := c.handler(c.topic, message); err != nil {
				log.Printf("mqttbus: error handling message on %s: %v", c.topic, err)
			}
		},
	)
	if token.Wait() && token.Error() != nil {
		log.Printf("mqttbus: error subscribing to %s: %v", c.topic, token.Error())
		return
	}
	log.Printf("mqttbus: subscribed to %s", c.topic)

	<-ctx.Done()

	unsubToken := c.client.Unsubscribe(c.topic)
	unsubToken.Wait()
}

// MultiConsumer subscribes to several topic filters with one shared handler.
type MultiConsumer struct {
	client  mqtt.Client
	topics  []string
	handler func(topic string, message mqtt.Message) error
}

func NewMultiConsumer(client mqtt.Client, topics []string, handler func(topic string, message mqtt.Message) error) *MultiConsumer {
	return &MultiConsumer{client: client, topics: topics, handler: handler}
}

func (m *MultiConsumer) SetHandler(handler func(topic string, message mqtt.Message) error) {
	m.handler = handler
}

func (m *MultiConsumer) ConsumeMessage(ctx context.Context) {
	for _, topic := range m.topics {
		topic := topic // shadow for closure safety
		token := m.client.Subscribe(
			topic,
			qosFor(topic),
			func(_ mqtt.Client, msg mqtt.Message) {
				if m.handler == nil {
					log.Printf("mqttbus: no handler set for topic %s", topic)
					return
				}
				if err := m.handler(topic, msg); err != nil {
					log.Printf("mqttbus: error handling message on %s: %v", topic, err)
				}
			},
		)
		token.Wait()
		if token.Error() != nil {
			log.Printf("mqttbus: error subscribing to %s: %v", topic, token.Error())
		} else {
			log.Printf("mqttbus: subscribed to %s", topic)
		}
	}

	<-ctx.Done()

	for _, topic := range m.topics {
		m.client.Unsubscribe(topic)
	}
}
