package recorder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
)

// DerivedSample è il payload esposto al gateway.
type DerivedSample struct {
	Source string  `json:"source,omitempty"`
	Method string  `json:"method,omitempty"`
	Power  float64 `json:"engine_power_w_m2"`
	Time   string  `json:"time"` // RFC3339
}

type queryParams struct {
	Minutes   int
	Limit     int
	TimeoutMS int
}

func parseQuery(r *http.Request, defMin, defLim, defTOms int) queryParams {
	q := r.URL.Query()
	get := func(k string, def, min, max int) int {
		if v := strings.TrimSpace(q.Get(k)); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				if n < min {
					return min
				}
				if max > 0 && n > max {
					return max
				}
				return n
			}
		}
		return def
	}
	return queryParams{
		Minutes:   get("minutes", defMin, 1, 7*24*60),
		Limit:     get("limit", defLim, 1, 500),
		TimeoutMS: get("timeout_ms", defTOms, 200, 5000),
	}
}

func buildFlux(bucket string, minutes, limit int) string {
	return fmt.Sprintf(`
from(bucket: %q)
  |> range(start: -%dm)
  |> filter(fn: (r) => r._measurement == %q)
  |> filter(fn: (r) => r._field == "engine_power_w_m2")
  |> keep(columns: ["_time","_value","source","method"])
  |> sort(columns: ["_time"], desc: true)
  |> limit(n:%d)
`, bucket, minutes, Measurement, limit)
}

func runLatest(w http.ResponseWriter, r *http.Request, influx influxdb2.Client, org, bucket string, defMin, defLim int) {
	p := parseQuery(r, defMin, defLim, 2000)

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(p.TimeoutMS)*time.Millisecond)
	defer cancel()

	api := influx.QueryAPI(org)
	res, err := api.Query(ctx, buildFlux(bucket, p.Minutes, p.Limit))
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Error", "influx-query-error")
		_, _ = w.Write([]byte("[]"))
		return
	}
	defer func() { _ = res.Close() }()

	out := make([]DerivedSample, 0, p.Limit)
	for res.Next() {
		rec := res.Record()

		var power float64
		switch v := rec.Value().(type) {
		case float64:
			power = v
		case int64:
			power = float64(v)
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				power = f
			}
		}

		sample := DerivedSample{
			Power: power,
			Time:  rec.Time().UTC().Format(time.RFC3339),
		}
		if v := rec.ValueByKey("source"); v != nil {
			if s, ok := v.(string); ok {
				sample.Source = s
			}
		}
		if v := rec.ValueByKey("method"); v != nil {
			if s, ok := v.(string); ok {
				sample.Method = s
			}
		}
		out = append(out, sample)
	}
	if res.Err() != nil {
		w.Header().Set("X-Error", "influx-iter-error")
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

// NewDerivedLatestHandler serve
// GET /derived/latest?limit=20[&minutes=1440].
func NewDerivedLatestHandler(influx influxdb2.Client, org, bucket string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		runLatest(w, r, influx, org, bucket, 1440, 20)
	})
}
