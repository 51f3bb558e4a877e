package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/LeonardoBeccarini/evap_project/internal/services/simulator"
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

func main() {
	// define flags
	source := flag.String("source", "sim1", "unique source identifier")
	clientID := flag.String("client-id", "paramSimulator1", "MQTT client ID")
	interval := flag.Duration("interval", 5*time.Second, "publish interval")
	lat := flag.Float64("lat", 40.7128, "latitude for the Open-Meteo seed")
	lon := flag.Float64("lon", -74.0060, "longitude for the Open-Meteo seed")
	method := flag.String("method", "buck", "vapor pressure method tag")
	rngSeed := flag.Int64("seed", time.Now().UnixNano(), "random walk seed")
	flag.Parse()

	m, err := thermo.ParseMethod(*method)
	if err != nil {
		log.Fatalf("simulator: %v", err)
	}

	cfg := &mqttbus.MQTTConfig{
		Host:     envStr("MQTT_HOST", "localhost"),
		Port:     envInt("MQTT_PORT", 1883),
		User:     envStr("MQTT_USER", "guest"),
		Password: envStr("MQTT_PASSWORD", "guest"),
		ClientID: *clientID,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := mqttbus.NewConn(cfg, ctx)
	if err != nil {
		log.Fatal(err)
	}

	publisher := mqttbus.NewPublisher(client, "param/update/"+*source)
	generator := simulator.NewParamGenerator(*rngSeed)

	// seed singolo da Open-Meteo (best effort)
	seedCtx, seedCancel := context.WithTimeout(ctx, 10*time.Second)
	generator.SeedFromOpenMeteo(seedCtx, *lat, *lon)
	seedCancel()

	sim := simulator.NewParamSimulator(publisher, generator, *source, string(m))
	sim.Start(ctx, *interval)
}
