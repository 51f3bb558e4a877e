package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"

	"github.com/LeonardoBeccarini/evap_project/internal/model"
	"github.com/LeonardoBeccarini/evap_project/internal/services/recorder"
	"github.com/LeonardoBeccarini/evap_project/pkg/dedup"
	"github.com/LeonardoBeccarini/evap_project/pkg/mqttbus"
)

func envStr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
func envInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func main() {
	// === Config ===
	cfg := struct {
		MQTT mqttbus.MQTTConfig

		InfluxURL    string
		InfluxToken  string
		InfluxOrg    string
		InfluxBucket string

		Topics        string // filtri separati da virgola
		BatchSize     int
		FlushInterval time.Duration

		HTTPPort      int
		ShutdownGrace time.Duration
	}{
		MQTT: mqttbus.MQTTConfig{
			Host:     envStr("MQTT_HOST", "localhost"),
			Port:     envInt("MQTT_PORT", 1883),
			User:     envStr("MQTT_USER", "guest"),
			Password: envStr("MQTT_PASSWORD", "guest"),
			ClientID: envStr("HOSTNAME", "recorder-service"),
		},

		InfluxURL:    envStr("INFLUX_URL", "http://localhost:8086"),
		InfluxToken:  os.Getenv("INFLUX_TOKEN"),
		InfluxOrg:    envStr("INFLUX_ORG", "evap"),
		InfluxBucket: envStr("INFLUX_BUCKET", "derived"),

		Topics:        envStr("DERIVED_SUB_TOPICS", "derived/quantities/#"),
		BatchSize:     envInt("WRITE_BATCH_SIZE", 10),
		FlushInterval: time.Duration(envInt("WRITE_FLUSH_INTERVAL_MS", 200)) * time.Millisecond,

		HTTPPort:      envInt("HTTP_PORT", 8080),
		ShutdownGrace: 5 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === InfluxDB ===
	opts := influxdb2.DefaultOptions().
		SetBatchSize(uint(cfg.BatchSize)).
		SetFlushInterval(uint(cfg.FlushInterval.Milliseconds()))
	influx := influxdb2.NewClientWithOptions(cfg.InfluxURL, cfg.InfluxToken, opts)
	defer influx.Close()
	writeAPI := influx.WriteAPI(cfg.InfluxOrg, cfg.InfluxBucket)
	writer := recorder.NewWriter(writeAPI)

	// === MQTT ===
	mqttClient, err := mqttbus.NewConn(&cfg.MQTT, ctx)
	if err != nil {
		log.Fatalf("mqtt connection error: %v", err)
	}
	defer mqttbus.CloseConn(mqttClient)

	// === HTTP ===
	mux := http.NewServeMux()
	mux.Handle("/healthz", recorder.NewHealthHandler(mqttClient, influx, writer))
	mux.Handle("/readyz", recorder.NewReadyHandler(mqttClient, influx, writer, 2*time.Second))
	mux.Handle("/derived/latest", recorder.NewDerivedLatestHandler(influx, cfg.InfluxOrg, cfg.InfluxBucket))

	hs := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.HTTPPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("recorder-svc: HTTP listening on :%d", cfg.HTTPPort)
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	// === Consumer ===
	h := recorder.NewMQTTHandler(func(evt model.DerivedQuantitiesEvent) {
		writeAPI.WritePoint(recorder.DerivedToPoint(evt))
		writer.MarkIngest()
	})

	// deduper per scartare redelivery QoS1 (hash payload)
	d := dedup.New(10*time.Minute, 20000)

	var topics []string
	for _, t := range strings.Split(cfg.Topics, ",") {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	consumer := mqttbus.NewMultiConsumer(mqttClient, topics, func(topic string, m mqtt.Message) error {
		if !d.ShouldProcessPayload(m.Payload()) {
			return nil
		}
		return h.Handle(topic, m)
	})
	go consumer.ConsumeMessage(ctx)

	// === Wait for signal ===
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	log.Printf("recorder-svc: shutting down...")

	shCtx, shCancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer shCancel()
	_ = hs.Shutdown(shCtx)

	// consenti flush
	time.Sleep(cfg.FlushInterval + 100*time.Millisecond)
}
