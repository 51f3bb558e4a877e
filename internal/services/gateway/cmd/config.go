package main

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port      string
	TimeoutMs int

	EngineURL    string // es. http://engine-service:8080
	RecorderURL  string // es. http://recorder-service:8080
	AnalyticsURL string // es. http://analytics-service:8080

	CBFails  int
	CBOpenMs int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func loadConfig() Config {
	return Config{
		Port:      getenv("PORT", "5009"),
		TimeoutMs: getenvInt("TIMEOUT_MS", 3000),

		EngineURL:    getenv("ENGINE_URL", "http://engine-service:8080"),
		RecorderURL:  getenv("RECORDER_URL", "http://recorder-service:8080"),
		AnalyticsURL: getenv("ANALYTICS_URL", "http://analytics-service:8080"),

		CBFails:  getenvInt("CB_FAILS", 3),
		CBOpenMs: getenvInt("CB_OPEN_MS", 10000),
	}
}

func (c Config) timeout() time.Duration { return time.Duration(c.TimeoutMs) * time.Millisecond }
func (c Config) openFor() time.Duration { return time.Duration(c.CBOpenMs) * time.Millisecond }
