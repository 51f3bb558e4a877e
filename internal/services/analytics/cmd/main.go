package main

import (
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/LeonardoBeccarini/evap_project/internal/services/analytics"
	"github.com/LeonardoBeccarini/evap_project/internal/thermo"
)

func main() {
	var (
		csvPath = flag.String("csv", "data/weather.csv", "percorso dell'export Open-Meteo")
		method  = flag.String("method", string(thermo.DefaultMethod), "saturation vapor pressure formula")
		wetRH   = flag.Float64("wet-rh", 0.99, "relative humidity at the wet surface")
		port    = flag.Int("port", 8080, "HTTP port")
	)
	flag.Parse()

	m, err := thermo.ParseMethod(*method)
	if err != nil {
		log.Fatalf("analytics-svc: %v", err)
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("analytics-svc: open csv: %v", err)
	}
	ds, err := analytics.LoadWeatherCSV(f)
	_ = f.Close()
	if err != nil {
		log.Fatalf("analytics-svc: parse csv: %v", err)
	}
	log.Printf("analytics-svc: loaded %d rows for (%.4f, %.4f)", len(ds.Rows), ds.Latitude, ds.Longitude)

	samples := analytics.Compute(ds, analytics.Config{Method: m, WetRelHumidity: *wetRH})
	stats := analytics.Summarize(samples)
	log.Printf("analytics-svc: mean power %.2f W/m2, total energy %.3e J/m2 over %d samples",
		stats.Mean, stats.TotalEnergyJ, stats.Samples)

	svc := &analytics.Service{Dataset: ds, Samples: samples, Method: string(m)}

	mux := http.NewServeMux()
	mux.Handle("/analytics/stats", analytics.NewStatsHandler(svc))
	mux.Handle("/healthz", analytics.NewHealthHandler(svc))

	hs := &http.Server{
		Addr:              ":" + strconv.Itoa(*port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("analytics-svc: HTTP listening on :%d", *port)
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	log.Printf("analytics-svc: shutting down...")
}
