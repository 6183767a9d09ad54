package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Database configuration
	DBUser string
	DBPass string
	DBName string
	DBHost string
	DBPort int

	// Crawl targets
	TargetURLs    string
	TargetBaseURL string
	EndID         int

	// Optional services
	MemcacheAddr string
	RedisAddr    string
	RedisDB      int
	RedisStream  string
	OutputDir    string

	// Fetcher configuration
	FetchTimeout time.Duration
	ProbeDelay   time.Duration

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "3307"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	endID, err := strconv.Atoi(getEnv("END_ID", "9999"))
	if err != nil {
		// Flagged by Validate; kept here so loading itself never fails
		endID = -1
	}

	return &Config{
		DBUser:        os.Getenv("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"),
		DBName:        os.Getenv("DB_NAME"),
		DBHost:        getEnv("DB_HOST", "127.0.0.1"),
		DBPort:        dbPort,
		TargetURLs:    os.Getenv("TARGET_URLS"),
		TargetBaseURL: getEnv("TARGET_BASE_URL", "https://clinic-navi.example.com/clinics/area_"),
		EndID:         endID,
		MemcacheAddr:  os.Getenv("MEMCACHE_ADDR"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisDB:       redisDB,
		RedisStream:   getEnv("REDIS_STREAM", "clinics"),
		OutputDir:     os.Getenv("OUTPUT_DIR"),
		FetchTimeout:  30 * time.Second,
		ProbeDelay:    50 * time.Millisecond,
		Environment:   getEnv("HARVESTER_ENVIRONMENT", "development"),
	}
}

// Validate checks that all required configuration values are present
func (c *Config) Validate() error {
	if c.DBUser == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if c.DBPass == "" {
		return fmt.Errorf("DB_PASS is required")
	}
	if c.DBName == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.EndID < 0 {
		return fmt.Errorf("END_ID must be a non-negative number")
	}
	return nil
}

// DSN builds the MySQL connection string for the destination database
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_unicode_ci&parseTime=true",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
