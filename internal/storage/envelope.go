package storage

import (
	"encoding/json"
	"fmt"
	"time"
)

// Envelope wraps every persisted payload with the metadata the load path
// checks before the payload is ever handed back: a write timestamp for
// logical TTL expiry, a schema version, and an optional integrity checksum.
type Envelope struct {
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	Version   string          `json:"version"`
	Checksum  string          `json:"checksum,omitempty"`
}

// Expired reports whether the envelope is older than ttl at the given time.
// A zero ttl means the entry never expires.
func (e Envelope) Expired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(e.Timestamp) > ttl
}

// checksum is a djb2 rolling hash over the payload bytes. This is integrity
// detection against torn or tampered writes, not a security measure.
func checksum(data []byte) string {
	var h uint32 = 5381
	for _, b := range data {
		h = h*33 + uint32(b)
	}
	return fmt.Sprintf("%08x", h)
}
