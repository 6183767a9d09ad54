package ingest

import (
	"context"
	"encoding/json"
	"time"

	"hsakai921/clinicharvester/config"
	"hsakai921/clinicharvester/helpers"
	"hsakai921/clinicharvester/internal/extractor"
	"hsakai921/clinicharvester/logger"
	"hsakai921/clinicharvester/services/export"
	"hsakai921/clinicharvester/services/publisher"
	"hsakai921/clinicharvester/services/store"
)

// PageFetcher retrieves one listing page as UTF-8 HTML
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// URLResolver produces the target URL list for a run
type URLResolver interface {
	Resolve(ctx context.Context) ([]string, error)
}

// Ingester runs one crawl-and-ingest batch: resolve targets, bootstrap the
// schema, fetch and extract every page sequentially, then bulk-append the
// accumulated rows
type Ingester struct {
	cfg       *config.Config
	resolver  URLResolver
	fetcher   PageFetcher
	store     store.Store
	publisher publisher.Publisher
	log       *logger.Logger
}

// New creates an ingester. pub may be nil when no side sink is configured.
func New(cfg *config.Config, resolver URLResolver, f PageFetcher, st store.Store, pub publisher.Publisher) *Ingester {
	return &Ingester{
		cfg:       cfg,
		resolver:  resolver,
		fetcher:   f,
		store:     st,
		publisher: pub,
		log:       logger.ForComponent("ingest"),
	}
}

// Run executes the batch. Fetch and persistence failures are fatal; the
// accumulated in-memory rows of an aborted run are not persisted.
func (ing *Ingester) Run(ctx context.Context) error {
	urls, err := ing.resolver.Resolve(ctx)
	if err != nil {
		return err
	}

	if err := ing.store.CreateSchema(ctx); err != nil {
		return err
	}

	scrapedAt := time.Now().UTC().Truncate(time.Second)

	var (
		allCards   []extractor.Card
		clinicRows []store.ClinicRow
		menuRows   []store.MenuRow
		hoursRows  []store.HoursRow
	)

	for _, url := range urls {
		ing.log.Info().Str("url", url).Msg("[Fetch] page")

		html, err := ing.fetcher.Fetch(ctx, url)
		if err != nil {
			return err
		}

		cards, err := extractor.Parse(html, url)
		if err != nil {
			return err
		}
		allCards = append(allCards, cards...)

		for _, card := range cards {
			clinicID := helpers.ExtractClinicID(card.ClinicURL)
			clinicRows = append(clinicRows, buildClinicRow(card, clinicID, scrapedAt))

			for _, menu := range card.Menus {
				menuRows = append(menuRows, buildMenuRow(menu, clinicID))
			}
			for _, h := range card.Hours {
				hoursRows = append(hoursRows, store.HoursRow{
					ClinicID:  clinicID,
					Day:       h.Day,
					OpenTime:  h.Open,
					CloseTime: h.Close,
					Raw:       h.Raw,
				})
			}
		}
	}

	// Tables are written independently; a later failure leaves earlier
	// tables persisted
	if err := ing.store.InsertClinics(ctx, clinicRows); err != nil {
		return err
	}
	if err := ing.store.InsertMenus(ctx, menuRows); err != nil {
		return err
	}
	if err := ing.store.InsertHours(ctx, hoursRows); err != nil {
		return err
	}

	ing.publishCards(allCards)
	ing.exportSnapshots(allCards, clinicRows)

	ing.log.Info().
		Int("pages", len(urls)).
		Int("clinics", len(clinicRows)).
		Int("menus", len(menuRows)).
		Int("hours", len(hoursRows)).
		Msg("[DONE] ingestion complete")

	return nil
}

func buildClinicRow(card extractor.Card, clinicID string, scrapedAt time.Time) store.ClinicRow {
	return store.ClinicRow{
		ClinicID:  clinicID,
		Name:      card.Name,
		Rating:    card.Rating,
		Reviews:   card.Reviews,
		ClinicURL: card.ClinicURL,
		SourceURL: card.SourceURL,
		ScrapedAt: scrapedAt,
		Status:    "ok",
	}
}

func buildMenuRow(menu extractor.Menu, clinicID string) store.MenuRow {
	return store.MenuRow{
		ClinicID: clinicID,
		Title:    menu.Title,
		PriceJPY: menu.PriceJPY,
		PriceRaw: menu.PriceRaw,
		URL:      menu.URL,
		Pickup:   menu.Pickup,
		Category: menu.Category,
		ImageURL: menu.ImageURL,
	}
}

// publishCards pushes each card to the configured side sink. Side-sink
// failures never abort the run.
func (ing *Ingester) publishCards(cards []extractor.Card) {
	if ing.publisher == nil {
		return
	}

	for _, card := range cards {
		data, err := json.Marshal(card)
		if err != nil {
			ing.log.Error().Err(err).Msg("Failed to marshal card for publishing")
			continue
		}

		key := helpers.ExtractClinicID(card.ClinicURL)
		if key == "" {
			key = card.SourceURL
		}
		if err := ing.publisher.Publish(key, data); err != nil {
			ing.log.Error().Err(err).Str("clinic", card.Name).Msg("Failed to publish card")
		}
	}
}

func (ing *Ingester) exportSnapshots(cards []extractor.Card, rows []store.ClinicRow) {
	if ing.cfg.OutputDir == "" {
		return
	}
	if err := export.WriteSnapshots(ing.cfg.OutputDir, cards, rows); err != nil {
		ing.log.Error().Err(err).Msg("Failed to write snapshots")
	}
}
