package app

import (
	"log"
	"time"
)

type Config struct {
	EngineBaseURL    string
	RecorderBaseURL  string
	AnalyticsBaseURL string

	EnginePath    string // default /state
	RecorderPath  string // default /derived/latest
	AnalyticsPath string // default /analytics/stats

	HTTPTimeout time.Duration

	BreakerFailures int
	BreakerOpenFor  time.Duration

	Logger *log.Logger
}

type Gateway struct {
	cfg       Config
	engine    *Upstream
	recorder  *Upstream
	analytics *Upstream
}

func NewGateway(cfg Config) *Gateway {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.EnginePath == "" {
		cfg.EnginePath = "/state"
	}
	if cfg.RecorderPath == "" {
		cfg.RecorderPath = "/derived/latest"
	}
	if cfg.AnalyticsPath == "" {
		cfg.AnalyticsPath = "/analytics/stats"
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 3 * time.Second
	}

	// Un breaker per ciascun upstream
	e := NewUpstream("engine", cfg.EngineBaseURL, cfg.EnginePath, cfg.HTTPTimeout, cfg.BreakerFailures, cfg.BreakerOpenFor)
	r := NewUpstream("recorder", cfg.RecorderBaseURL, cfg.RecorderPath, cfg.HTTPTimeout, cfg.BreakerFailures, cfg.BreakerOpenFor)
	a := NewUpstream("analytics", cfg.AnalyticsBaseURL, cfg.AnalyticsPath, cfg.HTTPTimeout, cfg.BreakerFailures, cfg.BreakerOpenFor)

	return &Gateway{cfg: cfg, engine: e, recorder: r, analytics: a}
}
