package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Deduper remembers recently seen ids for a TTL, bounded by a soft cap.
// Used to drop QoS1 redeliveries, which carry a byte-identical payload.
type Deduper struct {
	mu   sync.Mutex
	ttl  time.Duration
	max  int
	seen map[string]time.Time
}

func New(ttl time.Duration, max int) *Deduper {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if max <= 0 {
		max = 10000
	}
	return &Deduper{ttl: ttl, max: max, seen: make(map[string]time.Time, max)}
}

// ShouldProcess reports whether id was not seen within the TTL, recording it
// as seen. The empty id is always processed.
func (d *Deduper) ShouldProcess(id string) bool {
	if id == "" {
		return true
	}
	now := time.Now()
	d.mu.Lock()
	defer d.mu.Unlock()
	if exp, ok := d.seen[id]; ok && now.Before(exp) {
		return false
	}
	d.seen[id] = now.Add(d.ttl)
	if len(d.seen) > d.max {
		// sweep scaduti finché non rientriamo nel cap
		for k, v := range d.seen {
			if now.After(v) {
				delete(d.seen, k)
			}
			if len(d.seen) <= d.max {
				break
			}
		}
	}
	return true
}

// ShouldProcessPayload hashes a raw payload and dedups on the digest;
// convenience for MQTT handlers.
func (d *Deduper) ShouldProcessPayload(payload []byte) bool {
	h := sha256.Sum256(payload)
	return d.ShouldProcess(hex.EncodeToString(h[:]))
}
