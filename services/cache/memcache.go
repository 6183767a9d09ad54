package cache

import (
	"fmt"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// Memoised outcomes expire after a day so removed pages get re-probed
const outcomeTTL = 24 * time.Hour

// MemcacheProbeCache implements ProbeCache on a memcache server
type MemcacheProbeCache struct {
	client *memcache.Client
}

// NewMemcacheProbeCache creates a probe cache backed by the memcache
// server at serverAddr
func NewMemcacheProbeCache(serverAddr string) *MemcacheProbeCache {
	return &MemcacheProbeCache{
		client: memcache.New(serverAddr),
	}
}

// GetOutcome returns the memoised outcome for a page id. Any memcache
// error, including a plain miss, reads as unknown.
func (m *MemcacheProbeCache) GetOutcome(id int) Outcome {
	item, err := m.client.Get(probeKey(id))
	if err != nil {
		return OutcomeUnknown
	}
	return decodeOutcome(item.Value)
}

// SetOutcome memoises a definitive outcome for a page id
func (m *MemcacheProbeCache) SetOutcome(id int, exists bool) error {
	return m.client.Set(&memcache.Item{
		Key:        probeKey(id),
		Value:      encodeOutcome(exists),
		Expiration: int32(outcomeTTL.Seconds()),
	})
}

// probeKey derives the cache key from a page id, zero-padded to match
// the candidate URL scheme
func probeKey(id int) string {
	return fmt.Sprintf("probe:%04d", id)
}

func encodeOutcome(exists bool) []byte {
	if exists {
		return []byte("1")
	}
	return []byte("0")
}

func decodeOutcome(value []byte) Outcome {
	if string(value) == "1" {
		return OutcomeExists
	}
	return OutcomeAbsent
}
