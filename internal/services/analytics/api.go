package analytics

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// StatsResponse is the payload of /analytics/stats.
type StatsResponse struct {
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	Method    string       `json:"method"`
	Stats     Stats        `json:"stats"`
	Rolling   []PowerPoint `json:"rolling,omitempty"`
}

// Service holds the dataset computed at startup; the handlers only read it.
type Service struct {
	Dataset *Dataset
	Samples []Sample
	Method  string
}

// NewStatsHandler serves summary statistics of the engine power series.
// Query params: rolling=1 adds the smoothed series, window_h the trailing
// window in hours (default 168, one week).
func NewStatsHandler(s *Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		resp := StatsResponse{
			Latitude:  s.Dataset.Latitude,
			Longitude: s.Dataset.Longitude,
			Method:    s.Method,
			Stats:     Summarize(s.Samples),
		}

		if strings.TrimSpace(r.URL.Query().Get("rolling")) == "1" {
			hours := 168
			if v, err := strconv.Atoi(r.URL.Query().Get("window_h")); err == nil && v > 0 {
				hours = v
			}
			resp.Rolling = RollingMean(s.Samples, time.Duration(hours)*time.Hour)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})
}

// NewHealthHandler: 200 finché il dataset è caricato.
func NewHealthHandler(s *Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		type status struct {
			Status  string `json:"status"`
			Samples int    `json:"samples"`
		}
		st := status{Status: "ok", Samples: len(s.Samples)}
		if len(s.Samples) == 0 {
			st.Status = "degraded"
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(st)
	})
}
