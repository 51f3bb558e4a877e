package app

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

func (g *Gateway) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), g.cfg.HTTPTimeout)
	defer cancel()

	type res struct {
		key string
		err error
	}
	ch := make(chan res, 3)

	var (
		snap    EngineSnapshot
		history []HistoryPoint
		stats   AnalyticsStats
	)

	// Fetch in parallelo; ogni upstream ha breaker e cache propri,
	// quindi un fallimento non tocca gli altri riquadri.
	go func() { ch <- res{"engine", g.engine.GetJSON(ctx, &snap)} }()
	go func() { ch <- res{"recorder", g.recorder.GetJSON(ctx, &history)} }()
	go func() { ch <- res{"analytics", g.analytics.GetJSON(ctx, &stats)} }()

	for i := 0; i < 3; i++ {
		if rv := <-ch; rv.err != nil {
			g.cfg.Logger.Printf("gateway: upstream %s: %v", rv.key, rv.err)
		}
	}

	data := DashboardData{
		Snapshot: snap,
		Charts:   BuildCharts(snap.Derived),
		History:  history,
		Stats:    stats,
	}
	if data.History == nil {
		data.History = []HistoryPoint{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)

	g.cfg.Logger.Printf("GET /dashboard/data [%dms] cb[engine]=%v cb[rec]=%v cb[an]=%v history=%d",
		time.Since(start).Milliseconds(), g.engine.State(), g.recorder.State(), g.analytics.State(), len(data.History))
}

func (g *Gateway) HandleHealthz(w http.ResponseWriter, _ *http.Request) {
	type status struct {
		Engine    string `json:"engine_breaker"`
		Recorder  string `json:"recorder_breaker"`
		Analytics string `json:"analytics_breaker"`
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(status{
		Engine:    g.engine.State().String(),
		Recorder:  g.recorder.State().String(),
		Analytics: g.analytics.State().String(),
	})
}
