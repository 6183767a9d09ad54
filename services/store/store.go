package store

import (
	"context"
	"time"
)

// ClinicRow is one appended clinics record
type ClinicRow struct {
	ClinicID  string
	Name      string
	Rating    *float64
	Reviews   *int
	ClinicURL string
	SourceURL string
	ScrapedAt time.Time
	Status    string
}

// MenuRow is one appended menus record, keyed to a clinic by identifier
type MenuRow struct {
	ClinicID string
	Title    string
	PriceJPY *int
	PriceRaw string
	URL      string
	Pickup   bool
	Category string
	ImageURL string
}

// HoursRow is one appended hours record
type HoursRow struct {
	ClinicID  string
	Day       string
	OpenTime  string
	CloseTime string
	Raw       string
}

// Store persists scraped rows into the destination tables
type Store interface {
	// CreateSchema idempotently creates the destination tables
	CreateSchema(ctx context.Context) error

	// InsertClinics bulk-appends clinic rows; no-op on empty input
	InsertClinics(ctx context.Context, rows []ClinicRow) error

	// InsertMenus bulk-appends menu rows; no-op on empty input
	InsertMenus(ctx context.Context, rows []MenuRow) error

	// InsertHours bulk-appends hours rows; no-op on empty input
	InsertHours(ctx context.Context, rows []HoursRow) error

	// Close closes the underlying connection pool
	Close() error
}
