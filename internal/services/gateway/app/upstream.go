package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"
)

// Upstream incapsula chiamate HTTP con Circuit Breaker e cache last-good:
// quando il breaker è aperto (o l'upstream fallisce) si serve l'ultima
// risposta valida invece di bucare la dashboard.
type Upstream struct {
	name    string
	base    string
	path    string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker

	mu       sync.Mutex
	lastGood []byte
}

// NewUpstream costruisce un client verso un servizio a monte.
func NewUpstream(name, base, path string, timeout time.Duration, fails int, openFor time.Duration) *Upstream {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	path = "/" + strings.TrimLeft(strings.TrimSpace(path), "/")
	if fails < 1 {
		fails = 3
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: openFor,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= uint32(fails)
		},
	})
	return &Upstream{
		name:    name,
		base:    base,
		path:    path,
		client:  &http.Client{Timeout: timeout},
		breaker: cb,
	}
}

// GetJSON esegue la GET (sotto breaker) e decodifica JSON in out.
// In caso di errore prova la cache last-good; se anche quella manca
// ritorna l'errore e lascia out invariato.
func (u *Upstream) GetJSON(ctx context.Context, out any) error {
	if u == nil || u.base == "" {
		return nil // upstream opzionale non configurato
	}

	res, err := u.breaker.Execute(func() (any, error) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u.base+u.path, nil)
		resp, err := u.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s request error: %w", u.name, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("%s upstream status %d", u.name, resp.StatusCode)
		}
		b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		if err != nil {
			return nil, fmt.Errorf("%s read error: %w", u.name, err)
		}
		return b, nil
	})

	var body []byte
	if err == nil {
		body = res.([]byte)
		u.mu.Lock()
		u.lastGood = body
		u.mu.Unlock()
	} else {
		u.mu.Lock()
		body = u.lastGood
		u.mu.Unlock()
		if body == nil {
			return err
		}
	}

	if derr := json.Unmarshal(body, out); derr != nil {
		return fmt.Errorf("%s decode error: %w", u.name, derr)
	}
	return nil
}

// State espone lo stato del breaker per health/log.
func (u *Upstream) State() gobreaker.State { return u.breaker.State() }
