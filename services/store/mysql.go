package store

import (
	"context"
	"database/sql"
	"strings"

	"hsakai921/clinicharvester/logger"
	"hsakai921/clinicharvester/pkg/errors"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLStore implements Store on a MySQL connection pool
type MySQLStore struct {
	db  *sql.DB
	log *logger.Logger
}

// Open connects to MySQL and verifies the connection with a ping
func Open(dsn string) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, errors.NewPersistence("", "failed to open database", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.NewPersistence("", "database ping failed", err)
	}

	return &MySQLStore{
		db:  db,
		log: logger.ForComponent("store"),
	}, nil
}

// Close closes the connection pool
func (s *MySQLStore) Close() error {
	return s.db.Close()
}

// CreateSchema creates the three destination tables if absent, in one
// transaction. Safe to call on every run.
func (s *MySQLStore) CreateSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewPersistence("", "failed to begin schema transaction", err)
	}

	for _, ddl := range schemaStatements {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			tx.Rollback()
			return errors.NewPersistence("", "failed to create schema", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewPersistence("", "failed to commit schema", err)
	}

	s.log.Info().Msg("[DB] schema ready")
	return nil
}

// InsertClinics bulk-appends clinic rows in a single transaction
func (s *MySQLStore) InsertClinics(ctx context.Context, rows []ClinicRow) error {
	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO clinics (clinic_id, name, rating, reviews, clinic_url, source_url, scraped_at, status) VALUES " +
		placeholders(len(rows), 8)

	args := make([]interface{}, 0, len(rows)*8)
	for _, r := range rows {
		args = append(args, r.ClinicID, r.Name, r.Rating, r.Reviews,
			r.ClinicURL, r.SourceURL, r.ScrapedAt, r.Status)
	}

	if err := s.bulkInsert(ctx, "clinics", query, args); err != nil {
		return err
	}
	s.log.Info().Int("rows", len(rows)).Msg("[DB] clinics inserted")
	return nil
}

// InsertMenus bulk-appends menu rows in a single transaction
func (s *MySQLStore) InsertMenus(ctx context.Context, rows []MenuRow) error {
	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO menus (clinic_id, title, price_jpy, price_raw, url, pickup_flag, category_raw, image_url) VALUES " +
		placeholders(len(rows), 8)

	args := make([]interface{}, 0, len(rows)*8)
	for _, r := range rows {
		args = append(args, r.ClinicID, r.Title, r.PriceJPY, r.PriceRaw,
			r.URL, r.Pickup, r.Category, r.ImageURL)
	}

	if err := s.bulkInsert(ctx, "menus", query, args); err != nil {
		return err
	}
	s.log.Info().Int("rows", len(rows)).Msg("[DB] menus inserted")
	return nil
}

// InsertHours bulk-appends hours rows in a single transaction
func (s *MySQLStore) InsertHours(ctx context.Context, rows []HoursRow) error {
	if len(rows) == 0 {
		return nil
	}

	query := "INSERT INTO hours (clinic_id, day, open_time, close_time, raw_text) VALUES " +
		placeholders(len(rows), 5)

	args := make([]interface{}, 0, len(rows)*5)
	for _, r := range rows {
		args = append(args, r.ClinicID, r.Day, r.OpenTime, r.CloseTime, r.Raw)
	}

	if err := s.bulkInsert(ctx, "hours", query, args); err != nil {
		return err
	}
	s.log.Info().Int("rows", len(rows)).Msg("[DB] hours inserted")
	return nil
}

// bulkInsert runs one multi-row insert inside its own transaction, so a
// batch is all-or-nothing per table
func (s *MySQLStore) bulkInsert(ctx context.Context, table, query string, args []interface{}) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewPersistence(table, "failed to begin transaction", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		tx.Rollback()
		return errors.NewPersistence(table, "bulk insert failed", err)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewPersistence(table, "commit failed", err)
	}
	return nil
}

// placeholders builds "(?,?,...),(?,?,...)" for a multi-row insert
func placeholders(rows, cols int) string {
	row := "(" + strings.TrimSuffix(strings.Repeat("?,", cols), ",") + ")"
	return strings.TrimSuffix(strings.Repeat(row+",", rows), ",")
}
