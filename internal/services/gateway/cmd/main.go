package main

import (
	"log"
	"net/http"

	"github.com/LeonardoBeccarini/evap_project/internal/services/gateway/app"
)

func main() {
	cfg := loadConfig()

	gw := app.NewGateway(app.Config{
		EngineBaseURL:    cfg.EngineURL,
		RecorderBaseURL:  cfg.RecorderURL,
		AnalyticsBaseURL: cfg.AnalyticsURL,
		HTTPTimeout:      cfg.timeout(),
		BreakerFailures:  cfg.CBFails,
		BreakerOpenFor:   cfg.openFor(),
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/dashboard/data", gw.HandleDashboard)
	mux.HandleFunc("/healthz", gw.HandleHealthz)

	addr := ":" + cfg.Port
	log.Printf("gateway listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
