package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates runtime configuration for the Atlas data-management API.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Auth    AuthConfig
	Metrics MetricsConfig
	Catalog CatalogConfig
}

// ServerConfig parameterizes the HTTP server.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Address returns the listen address in host:port form.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StorageConfig carries S3 connection and bucket information.
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Region          string
	UseSSL          bool
	// Anonymous skips request signing for public buckets.
	Anonymous bool
}

// AuthConfig groups authentication-related settings.
type AuthConfig struct {
	TokenSecret string
	TokenTTL    time.Duration
}

// MetricsConfig groups observability settings.
type MetricsConfig struct {
	PrometheusPath string
}

// CatalogConfig describes the catalog tree to assemble and where to publish it.
type CatalogConfig struct {
	// Datasets maps a theme catalog ID to a storage location. A location
	// ending in "/" is enumerated as a prefix; otherwise it names a single
	// object.
	Datasets      []Dataset
	PublishPrefix string
}

// Dataset is one storage location attached to a theme catalog.
type Dataset struct {
	Theme string
	Path  string
}

// Load reads configuration values from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host:         getString("ATLAS_API_HOST", "0.0.0.0"),
			Port:         getInt("ATLAS_API_PORT", 8080),
			ReadTimeout:  getDuration("ATLAS_API_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDuration("ATLAS_API_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDuration("ATLAS_API_IDLE_TIMEOUT", 60*time.Second),
		},
		Storage: StorageConfig{
			Endpoint:        getString("ATLAS_S3_ENDPOINT", "s3.amazonaws.com"),
			AccessKeyID:     getString("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getString("AWS_SECRET_ACCESS_KEY", ""),
			Bucket:          getString("ATLAS_S3_BUCKET", "digital-atlas"),
			Region:          getString("ATLAS_S3_REGION", "us-east-1"),
			UseSSL:          getBool("ATLAS_S3_USE_SSL", true),
		},
		Auth: AuthConfig{
			TokenSecret: getString("ATLAS_API_TOKEN_SECRET", "change-me-to-a-32-byte-secret"),
			TokenTTL:    getDuration("ATLAS_API_TOKEN_TTL", 24*time.Hour),
		},
		Metrics: MetricsConfig{
			PrometheusPath: getString("ATLAS_METRICS_PATH", "/metrics"),
		},
		Catalog: CatalogConfig{
			PublishPrefix: getString("ATLAS_CATALOG_PREFIX", "stac/dev_stac/"),
		},
	}

	// Public buckets are readable without credentials.
	cfg.Storage.Anonymous = cfg.Storage.AccessKeyID == "" || cfg.Storage.SecretAccessKey == ""

	datasets, err := parseDatasets(getString("ATLAS_CATALOG_DATASETS", ""))
	if err != nil {
		return Config{}, err
	}
	cfg.Catalog.Datasets = datasets

	return cfg, nil
}

// parseDatasets decodes a comma-separated list of theme=path entries.
func parseDatasets(raw string) ([]Dataset, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var datasets []Dataset
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		theme, path, ok := strings.Cut(entry, "=")
		if !ok || theme == "" || path == "" {
			return nil, fmt.Errorf("invalid dataset entry %q, want theme=path", entry)
		}
		datasets = append(datasets, Dataset{Theme: theme, Path: path})
	}
	return datasets, nil
}

func getString(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.ToLower(strings.TrimSpace(val))
		switch val {
		case "1", "true", "t", "yes", "y":
			return true
		case "0", "false", "f", "no", "n":
			return false
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}
