// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Image store backend names accepted by IMAGE_STORE.
const (
	ImageStoreDir   = "dir"
	ImageStoreMinio = "minio"
)

// defaultMaxUploadBytes caps image uploads at 10 MiB unless overridden.
const defaultMaxUploadBytes = 10 << 20

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxUploadBytes caps the size of incoming request bodies, which in
	// practice means image uploads. Defaults to 10 MiB.
	MaxUploadBytes int64

	// ImageStore selects where attachment bytes live: "dir" (flat local
	// directory, the default) or "minio" (S3-compatible object store).
	ImageStore string

	// UploadDir is the directory used by the "dir" image store.
	// Defaults to "uploads"; created at startup if missing.
	UploadDir string

	// Minio* configure the "minio" image store. Endpoint, access key, and
	// secret key are required when IMAGE_STORE=minio.
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		ImageStore:  getEnv("IMAGE_STORE", ImageStoreDir),
		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
		MinioBucket: getEnv("MINIO_BUCKET", "travel-images"),
	}

	maxUpload, err := strconv.ParseInt(getEnv("MAX_UPLOAD_BYTES", strconv.Itoa(defaultMaxUploadBytes)), 10, 64)
	if err != nil || maxUpload <= 0 {
		return Config{}, fmt.Errorf("MAX_UPLOAD_BYTES must be a positive integer")
	}
	cfg.MaxUploadBytes = maxUpload

	cfg.MinioUseSSL, _ = strconv.ParseBool(os.Getenv("MINIO_USE_SSL"))

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	switch cfg.ImageStore {
	case ImageStoreDir:
		// nothing more to check
	case ImageStoreMinio:
		cfg.MinioEndpoint = os.Getenv("MINIO_ENDPOINT")
		cfg.MinioAccessKey = os.Getenv("MINIO_ACCESS_KEY")
		cfg.MinioSecretKey = os.Getenv("MINIO_SECRET_KEY")
		if cfg.MinioEndpoint == "" {
			missing = append(missing, "MINIO_ENDPOINT")
		}
		if cfg.MinioAccessKey == "" {
			missing = append(missing, "MINIO_ACCESS_KEY")
		}
		if cfg.MinioSecretKey == "" {
			missing = append(missing, "MINIO_SECRET_KEY")
		}
	default:
		return Config{}, fmt.Errorf("IMAGE_STORE must be %q or %q, got %q", ImageStoreDir, ImageStoreMinio, cfg.ImageStore)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
