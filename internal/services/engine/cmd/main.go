package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/LeonardoBeccarini/evap_project/internal/services/engine"
	"github.com/LeonardoBeccarini/evap_project/internal/store"
	"github.com/LeonardoBeccarini/evap_project/internal/thermo"
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
func envFloat(key string, def float64) float64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64); err == nil {
			return f
		}
	}
	return def
}

func main() {
	// === Config ===
	cfg := struct {
		MQTT mqttbus.MQTTConfig

		ParamTopic       string
		DerivedTopicTmpl string
		WetRelHumidity   float64
		Method           string

		HTTPPort int
	}{
		MQTT: mqttbus.MQTTConfig{
			Host:     envStr("MQTT_HOST", "localhost"),
			Port:     envInt("MQTT_PORT", 1883),
			User:     envStr("MQTT_USER", "guest"),
			Password: envStr("MQTT_PASSWORD", "guest"),
			ClientID: envStr("HOSTNAME", "engine-service"),
		},
		ParamTopic:       envStr("PARAM_SUB_TOPIC", "param/update/#"),
		DerivedTopicTmpl: envStr("DERIVED_TOPIC_TMPL", "derived/quantities/{source}"),
		WetRelHumidity:   envFloat("WET_REL_HUMIDITY", 0.975),
		Method:           envStr("VAPOR_METHOD", "buck"),

		HTTPPort: envInt("HTTP_PORT", 8080),
	}

	method, err := thermo.ParseMethod(cfg.Method)
	if err != nil {
		log.Fatalf("engine-svc: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === MQTT ===
	mqttClient, err := mqttbus.NewConn(&cfg.MQTT, ctx)
	if err != nil {
		log.Fatalf("mqtt connection error: %v", err)
	}
	defer mqttbus.CloseConn(mqttClient)

	consumer := mqttbus.NewConsumer(mqttClient, cfg.ParamTopic, nil)
	publisher := mqttbus.NewPublisher(mqttClient, "")

	// === Store + metrics ===
	st := store.NewParameterStore(store.Config{
		WetRelHumidity: cfg.WetRelHumidity,
		Method:         method,
	})
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := engine.NewMetrics(reg)

	eng := engine.NewEngine(consumer, publisher, st, cfg.DerivedTopicTmpl, metrics)

	// === HTTP ===
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if !mqttClient.IsConnectionOpen() {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/state", func(w http.ResponseWriter, _ *http.Request) {
		env, m, d := st.Snapshot()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			State   any    `json:"state"`
			Method  string `json:"method"`
			Derived any    `json:"derived"`
		}{env, string(m), d})
	})

	hs := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.HTTPPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("engine-svc: HTTP listening on :%d", cfg.HTTPPort)
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	go eng.Start(ctx)

	// === Wait for signal ===
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	log.Printf("engine-svc: shutting down...")

	shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shCancel()
	_ = hs.Shutdown(shCtx)
}
