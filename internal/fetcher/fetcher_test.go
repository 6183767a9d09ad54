package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hsakai921/clinicharvester/pkg/retry"

	"github.com/stretchr/testify/assert"
)

func newTestFetcher() *Fetcher {
	f := New(5 * time.Second)
	f.policy = retry.Policy{MaxAttempts: 3, Backoff: retry.LinearBackoff(time.Millisecond)}
	return f
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>渋谷クリニック</body></html>"))
	}))
	defer server.Close()

	body, err := newTestFetcher().Fetch(context.Background(), server.URL)
	assert.NoError(t, err)
	assert.Contains(t, body, "渋谷クリニック")
}

func TestFetchRecoversWithinRetryBudget(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("<html><body>ok on third</body></html>"))
	}))
	defer server.Close()

	body, err := newTestFetcher().Fetch(context.Background(), server.URL)
	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Contains(t, body, "ok on third")
}

func TestFetchExhaustsRetryBudget(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestFetcher().Fetch(context.Background(), server.URL)
	assert.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.Contains(t, err.Error(), "unexpected status code: 503")
}

func TestProbe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/exists":
			w.WriteHeader(http.StatusOK)
		case "/blocked":
			// HEAD rejected, GET allowed: bot-blocking, not absence
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			w.Write([]byte("<html></html>"))
		case "/gone":
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	f := newTestFetcher()
	ctx := context.Background()

	assert.Equal(t, ProbeExists, f.Probe(ctx, server.URL+"/exists"))
	assert.Equal(t, ProbeExists, f.Probe(ctx, server.URL+"/blocked"))
	assert.Equal(t, ProbeAbsent, f.Probe(ctx, server.URL+"/gone"))
}

func TestProbeIndeterminateOnTransportError(t *testing.T) {
	f := newTestFetcher()
	result := f.Probe(context.Background(), "http://127.0.0.1:1/unreachable")
	assert.Equal(t, ProbeIndeterminate, result)
}

func TestProbeResultString(t *testing.T) {
	assert.Equal(t, "exists", ProbeExists.String())
	assert.Equal(t, "absent", ProbeAbsent.String())
	assert.Equal(t, "indeterminate", ProbeIndeterminate.String())
}
