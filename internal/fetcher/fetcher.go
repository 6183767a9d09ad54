package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"hsakai921/clinicharvester/logger"
	"hsakai921/clinicharvester/pkg/errors"
	"hsakai921/clinicharvester/pkg/retry"

	"golang.org/x/net/html/charset"
)

// UserAgent identifies the harvester on every outgoing request
const UserAgent = "Mozilla/5.0 (compatible; ScraperBot/1.0; +https://github.com/hsakai921/clinicharvester)"

// Fetcher retrieves listing pages with a bounded retry budget
type Fetcher struct {
	client *http.Client
	policy retry.Policy
	log    *logger.Logger
}

// New creates a fetcher with the given per-request timeout.
// Retries: 3 attempts with linearly increasing backoff (2s, 4s).
func New(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		policy: retry.Policy{
			MaxAttempts: 3,
			Backoff:     retry.LinearBackoff(2 * time.Second),
		},
		log: logger.ForComponent("fetcher"),
	}
}

// Fetch performs an HTTP GET and returns the page body as UTF-8 text.
// Transport errors and non-2xx statuses consume retry attempts; once the
// budget is exhausted the last error is returned wrapped as a fetch error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	var body string

	err := f.policy.Do(ctx, func() error {
		html, err := f.fetchOnce(ctx, url)
		if err != nil {
			f.log.Warn().Str("url", url).Err(err).Msg("Fetch attempt failed")
			return err
		}
		body = html
		return nil
	})
	if err != nil {
		return "", errors.NewFetch(url, "retry budget exhausted", err)
	}

	return body, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch %s unexpected status code: %d", url, resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	// Determine the encoding from Content-Type header and body content
	encoding, name, _ := charset.DetermineEncoding(bodyBytes, resp.Header.Get("Content-Type"))
	if name == "utf-8" || name == "UTF-8" {
		return string(bodyBytes), nil
	}

	// Convert to UTF-8 if necessary
	utf8Reader := encoding.NewDecoder().Reader(bytes.NewReader(bodyBytes))
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, utf8Reader); err != nil {
		return "", fmt.Errorf("failed to read converted UTF-8 body: %w", err)
	}

	return buf.String(), nil
}
