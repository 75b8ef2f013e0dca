package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	defaultImportBatchSize  = 50
	defaultImportBatchDelay = 2000 // milliseconds
	defaultImportMaxBatches = 40
)

type Config struct {
	// HTTP
	Port           string
	AllowedOrigins []string

	// database path
	DatabasePath string

	// client build artifact the SSR pipeline splices into
	ShellPath string

	// canonical base URL used by SEO metadata and the sitemap
	SiteBaseURL string

	// admin auth
	JWTSecret     string
	AdminUsername string
	AdminPassword string // only used when seeding a missing admin account

	// external collaborators
	WikidataEndpoint  string
	WikipediaEndpoint string
	HTTPUserAgent     string

	// bulk import pacing
	ImportBatchSize  int
	ImportBatchDelay time.Duration
	ImportMaxBatches int
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	dbPath := getEnvOrDefault("DATABASE_PATH", "nasiloldu.db")

	shellPath := getEnvOrDefault("SHELL_PATH", filepath.Join("client", "dist", "index.html"))
	absShellPath, err := filepath.Abs(shellPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for shell '%s': %w", shellPath, err)
	}

	cfg := Config{
		Port:              getEnvOrDefault("PORT", "8080"),
		AllowedOrigins:    []string{getEnvOrDefault("ALLOWED_ORIGIN", "http://localhost:5173")},
		DatabasePath:      dbPath,
		ShellPath:         absShellPath,
		SiteBaseURL:       getEnvOrDefault("SITE_BASE_URL", "https://nasiloldu.net"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminUsername:     getEnvOrDefault("ADMIN_USERNAME", "admin"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		WikidataEndpoint:  getEnvOrDefault("WIKIDATA_ENDPOINT", "https://query.wikidata.org/sparql"),
		WikipediaEndpoint: getEnvOrDefault("WIKIPEDIA_ENDPOINT", "https://%s.wikipedia.org/api/rest_v1"),
		HTTPUserAgent:     getEnvOrDefault("HTTP_USER_AGENT", "nasiloldu-backend/1.0 (https://nasiloldu.net; iletisim@nasiloldu.net)"),
		ImportBatchSize:   getEnvIntOrDefault("IMPORT_BATCH_SIZE", defaultImportBatchSize),
		ImportBatchDelay:  time.Duration(getEnvIntOrDefault("IMPORT_BATCH_DELAY_MS", defaultImportBatchDelay)) * time.Millisecond,
		ImportMaxBatches:  getEnvIntOrDefault("IMPORT_MAX_BATCHES", defaultImportMaxBatches),
	}

	return cfg, nil
}
