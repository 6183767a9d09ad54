package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hsakai921/clinicharvester/config"
	"hsakai921/clinicharvester/internal/fetcher"
	"hsakai921/clinicharvester/logger"
	"hsakai921/clinicharvester/pkg/errors"
	"hsakai921/clinicharvester/services/cache"
)

// Discoverer resolves the list of target URLs for a run. An explicit
// TARGET_URLS list wins; otherwise candidate pages are probed by id.
type Discoverer struct {
	cfg      *config.Config
	prober   fetcher.Prober
	cacheSvc cache.ProbeCache
	sleep    func(time.Duration)
	log      *logger.Logger
}

// New creates a discoverer. cacheSvc may be nil, in which case every
// candidate is probed.
func New(cfg *config.Config, prober fetcher.Prober, cacheSvc cache.ProbeCache) *Discoverer {
	return &Discoverer{
		cfg:      cfg,
		prober:   prober,
		cacheSvc: cacheSvc,
		sleep:    time.Sleep,
		log:      logger.ForComponent("discovery"),
	}
}

// Resolve returns the target URL list for this run. An empty result is a
// fatal configuration error.
func (d *Discoverer) Resolve(ctx context.Context) ([]string, error) {
	var urls []string
	if strings.TrimSpace(d.cfg.TargetURLs) != "" {
		urls = ParseTargetURLs(d.cfg.TargetURLs)
		d.log.Info().Int("count", len(urls)).Msg("Using explicit target URL list")
	} else {
		var err error
		urls, err = d.autoDiscover(ctx)
		if err != nil {
			return nil, err
		}
	}

	if len(urls) == 0 {
		return nil, errors.NewConfiguration("no target URLs resolved", nil)
	}
	return urls, nil
}

// ParseTargetURLs tokenizes a delimited URL string on whitespace and commas,
// deduplicating while preserving first-seen order
func ParseTargetURLs(raw string) []string {
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	seen := make(map[string]bool, len(tokens))
	var urls []string
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		urls = append(urls, token)
	}
	return urls
}

// autoDiscover probes candidate pages for ids 1..EndID, keeping those that
// respond successfully. A fixed delay between probes keeps load on the
// origin bounded.
func (d *Discoverer) autoDiscover(ctx context.Context) ([]string, error) {
	d.log.Info().Int("end_id", d.cfg.EndID).Msg("Auto-discovering target pages")

	var urls []string
	for id := 1; id <= d.cfg.EndID; id++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidate := d.candidateURL(id)
		result, cached := d.probeCached(ctx, id, candidate)

		if result == fetcher.ProbeExists {
			d.log.Info().Str("url", candidate).Msg("[OK] page exists")
			urls = append(urls, candidate)
		} else {
			d.log.Debug().
				Str("url", candidate).
				Str("result", result.String()).
				Msg("[NG] page skipped")
		}

		if !cached {
			d.sleep(d.cfg.ProbeDelay)
		}
	}

	d.log.Info().Int("count", len(urls)).Msg("Auto-discovery finished")
	return urls, nil
}

func (d *Discoverer) candidateURL(id int) string {
	return fmt.Sprintf("%s%04d/", d.cfg.TargetBaseURL, id)
}

// probeCached consults the cache before probing. Only definitive outcomes
// are cached; indeterminate probes are retried next run.
func (d *Discoverer) probeCached(ctx context.Context, id int, url string) (fetcher.ProbeResult, bool) {
	if d.cacheSvc != nil {
		switch d.cacheSvc.GetOutcome(id) {
		case cache.OutcomeExists:
			return fetcher.ProbeExists, true
		case cache.OutcomeAbsent:
			return fetcher.ProbeAbsent, true
		}
	}

	result := d.prober.Probe(ctx, url)

	if d.cacheSvc != nil && result != fetcher.ProbeIndeterminate {
		if err := d.cacheSvc.SetOutcome(id, result == fetcher.ProbeExists); err != nil {
			d.log.Debug().Err(err).Int("id", id).Msg("Failed to cache probe outcome")
		}
	}

	return result, false
}
