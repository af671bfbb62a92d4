package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadAppliesDefaults(t *testing.T) {
	os.Unsetenv("ATLAS_S3_BUCKET")
	os.Unsetenv("AWS_ACCESS_KEY_ID")
	os.Unsetenv("AWS_SECRET_ACCESS_KEY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Storage.Bucket != "digital-atlas" {
		t.Fatalf("unexpected default bucket: %q", cfg.Storage.Bucket)
	}
	if !cfg.Storage.Anonymous {
		t.Fatalf("expected anonymous access without credentials")
	}
	if cfg.Server.Address() != "0.0.0.0:8080" {
		t.Fatalf("unexpected default address: %q", cfg.Server.Address())
	}
	if cfg.Metrics.PrometheusPath != "/metrics" {
		t.Fatalf("unexpected metrics path: %q", cfg.Metrics.PrometheusPath)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("ATLAS_API_PORT", "9090")
	t.Setenv("ATLAS_API_READ_TIMEOUT", "5s")
	t.Setenv("AWS_ACCESS_KEY_ID", "key")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("ATLAS_S3_USE_SSL", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Fatalf("unexpected port: %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Fatalf("unexpected read timeout: %v", cfg.Server.ReadTimeout)
	}
	if cfg.Storage.Anonymous {
		t.Fatalf("expected signed access with credentials present")
	}
	if cfg.Storage.UseSSL {
		t.Fatalf("expected SSL disabled")
	}
}

func TestParseDatasets(t *testing.T) {
	datasets, err := parseDatasets("impacts=s3://digital-atlas/impacts/crops/, climate=climate/rainfall.parquet")
	if err != nil {
		t.Fatalf("parseDatasets returned error: %v", err)
	}
	if len(datasets) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(datasets))
	}
	if datasets[0].Theme != "impacts" || datasets[0].Path != "s3://digital-atlas/impacts/crops/" {
		t.Fatalf("unexpected first dataset: %+v", datasets[0])
	}
	if datasets[1].Theme != "climate" || datasets[1].Path != "climate/rainfall.parquet" {
		t.Fatalf("unexpected second dataset: %+v", datasets[1])
	}
}

func TestParseDatasetsRejectsMalformedEntries(t *testing.T) {
	if _, err := parseDatasets("impacts"); err == nil {
		t.Fatalf("expected error for entry without path")
	}
	if _, err := parseDatasets("=path"); err == nil {
		t.Fatalf("expected error for entry without theme")
	}
}

func TestParseDatasetsEmpty(t *testing.T) {
	datasets, err := parseDatasets("  ")
	if err != nil {
		t.Fatalf("parseDatasets returned error: %v", err)
	}
	if datasets != nil {
		t.Fatalf("expected nil datasets for empty input")
	}
}
