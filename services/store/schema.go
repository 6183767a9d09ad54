package store

// Destination tables are append-only; rows are never updated or deleted.
// Statements use IF NOT EXISTS so bootstrap is safe on every run.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS clinics (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		clinic_id VARCHAR(16) NOT NULL,
		name TEXT NOT NULL,
		rating DOUBLE NULL,
		reviews INT NULL,
		clinic_url TEXT NOT NULL,
		source_url TEXT NOT NULL,
		scraped_at DATETIME NOT NULL,
		status VARCHAR(16) NOT NULL
	) CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS menus (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		clinic_id VARCHAR(16) NOT NULL,
		title TEXT NOT NULL,
		price_jpy INT NULL,
		price_raw TEXT NOT NULL,
		url TEXT NOT NULL,
		pickup_flag BOOLEAN NOT NULL DEFAULT FALSE,
		category_raw TEXT NOT NULL,
		image_url TEXT NOT NULL
	) CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS hours (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		clinic_id VARCHAR(16) NOT NULL,
		day VARCHAR(8) NOT NULL,
		open_time VARCHAR(8) NOT NULL,
		close_time VARCHAR(8) NOT NULL,
		raw_text TEXT NOT NULL
	) CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci`,
}
