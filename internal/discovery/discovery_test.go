package discovery

import (
	"context"
	"testing"
	"time"

	"hsakai921/clinicharvester/config"
	"hsakai921/clinicharvester/internal/fetcher"
	"hsakai921/clinicharvester/services/cache"

	"github.com/stretchr/testify/assert"
)

// MockProber implements fetcher.Prober with a fixed URL->result mapping
type MockProber struct {
	results map[string]fetcher.ProbeResult
	probed  []string
}

func (m *MockProber) Probe(ctx context.Context, url string) fetcher.ProbeResult {
	m.probed = append(m.probed, url)
	if result, ok := m.results[url]; ok {
		return result
	}
	return fetcher.ProbeAbsent
}

// MockProbeCache implements a simple in-memory probe cache for testing
type MockProbeCache struct {
	outcomes map[int]cache.Outcome
}

func NewMockProbeCache() *MockProbeCache {
	return &MockProbeCache{outcomes: make(map[int]cache.Outcome)}
}

func (m *MockProbeCache) GetOutcome(id int) cache.Outcome {
	return m.outcomes[id]
}

func (m *MockProbeCache) SetOutcome(id int, exists bool) error {
	if exists {
		m.outcomes[id] = cache.OutcomeExists
	} else {
		m.outcomes[id] = cache.OutcomeAbsent
	}
	return nil
}

func testConfig(endID int) *config.Config {
	return &config.Config{
		TargetBaseURL: "https://clinic-navi.example.com/clinics/area_",
		EndID:         endID,
		ProbeDelay:    time.Millisecond,
	}
}

func newTestDiscoverer(cfg *config.Config, prober fetcher.Prober, cacheSvc *MockProbeCache) *Discoverer {
	var d *Discoverer
	if cacheSvc != nil {
		d = New(cfg, prober, cacheSvc)
	} else {
		d = New(cfg, prober, nil)
	}
	d.sleep = func(time.Duration) {}
	return d
}

func TestParseTargetURLs(t *testing.T) {
	urls := ParseTargetURLs("https://a.example.com, https://b.example.com\nhttps://a.example.com")
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, urls)

	assert.Empty(t, ParseTargetURLs("  ,, \n "))
}

func TestResolveExplicitList(t *testing.T) {
	cfg := testConfig(9999)
	cfg.TargetURLs = "https://a.example.com https://b.example.com"

	prober := &MockProber{}
	urls, err := newTestDiscoverer(cfg, prober, nil).Resolve(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, urls)
	assert.Empty(t, prober.probed, "explicit list must not trigger probes")
}

func TestAutoDiscovery(t *testing.T) {
	cfg := testConfig(3)
	prober := &MockProber{
		results: map[string]fetcher.ProbeResult{
			"https://clinic-navi.example.com/clinics/area_0002/": fetcher.ProbeExists,
		},
	}

	urls, err := newTestDiscoverer(cfg, prober, nil).Resolve(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"https://clinic-navi.example.com/clinics/area_0002/"}, urls)
	assert.Len(t, prober.probed, 3)
}

func TestAutoDiscoveryEmptyListIsFatal(t *testing.T) {
	cfg := testConfig(2)
	prober := &MockProber{}

	_, err := newTestDiscoverer(cfg, prober, nil).Resolve(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no target URLs resolved")
}

func TestAutoDiscoveryUsesCache(t *testing.T) {
	cfg := testConfig(2)
	cacheSvc := NewMockProbeCache()
	cacheSvc.SetOutcome(1, true)
	cacheSvc.SetOutcome(2, false)

	prober := &MockProber{}
	urls, err := newTestDiscoverer(cfg, prober, cacheSvc).Resolve(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"https://clinic-navi.example.com/clinics/area_0001/"}, urls)
	assert.Empty(t, prober.probed, "cached outcomes must short-circuit probing")
}

func TestAutoDiscoveryCachesDefinitiveOutcomesOnly(t *testing.T) {
	cfg := testConfig(3)
	cacheSvc := NewMockProbeCache()
	prober := &MockProber{
		results: map[string]fetcher.ProbeResult{
			"https://clinic-navi.example.com/clinics/area_0001/": fetcher.ProbeExists,
			"https://clinic-navi.example.com/clinics/area_0002/": fetcher.ProbeIndeterminate,
		},
	}

	_, err := newTestDiscoverer(cfg, prober, cacheSvc).Resolve(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, cache.OutcomeExists, cacheSvc.GetOutcome(1))
	assert.Equal(t, cache.OutcomeUnknown, cacheSvc.GetOutcome(2), "indeterminate outcomes must not be cached")
	assert.Equal(t, cache.OutcomeAbsent, cacheSvc.GetOutcome(3))
}
