package fetcher

import (
	"context"
	"net/http"
	"time"

	"hsakai921/clinicharvester/pkg/errors"
)

// ProbeResult is the outcome of an existence probe
type ProbeResult int

const (
	// ProbeAbsent means the page responded with a non-success status
	ProbeAbsent ProbeResult = iota
	// ProbeExists means the page responded successfully
	ProbeExists
	// ProbeIndeterminate means the probe itself failed; callers treat this
	// as absent but the outcome stays distinguishable
	ProbeIndeterminate
)

// String returns a human-readable name for the probe result
func (r ProbeResult) String() string {
	switch r {
	case ProbeExists:
		return "exists"
	case ProbeAbsent:
		return "absent"
	default:
		return "indeterminate"
	}
}

var (
	probeClient    = &http.Client{Timeout: 5 * time.Second}
	probeGetClient = &http.Client{Timeout: 10 * time.Second}
)

// Prober checks whether candidate pages exist
type Prober interface {
	Probe(ctx context.Context, url string) ProbeResult
}

// Probe issues a lightweight HEAD request against url. Servers that reject
// HEAD outright (403/405) get a full GET so bot-blocking is not mistaken
// for true absence. Probe never returns an error.
func (f *Fetcher) Probe(ctx context.Context, url string) ProbeResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return ProbeIndeterminate
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := probeClient.Do(req)
	if err != nil {
		f.log.Debug().Err(errors.NewProbe(url, "probe request failed", err)).Msg("Probe indeterminate")
		return ProbeIndeterminate
	}
	resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return ProbeExists
	}

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusMethodNotAllowed {
		return f.probeWithGet(ctx, url)
	}

	return ProbeAbsent
}

func (f *Fetcher) probeWithGet(ctx context.Context, url string) ProbeResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ProbeIndeterminate
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := probeGetClient.Do(req)
	if err != nil {
		f.log.Debug().Err(errors.NewProbe(url, "probe fallback request failed", err)).Msg("Probe indeterminate")
		return ProbeIndeterminate
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return ProbeExists
	}
	return ProbeAbsent
}
