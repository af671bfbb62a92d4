package atlas

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AdaptationAtlas/data-management/internal/config"
	"github.com/AdaptationAtlas/data-management/internal/storage"
	"github.com/gin-gonic/gin"
)

func newTestRouter(service *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), service)
	return r
}

func TestDescribeEndpointReturnsAssets(t *testing.T) {
	store := newFakeStore()
	store.listings["site"] = []storage.Object{
		{Bucket: store.bucket, Path: "site/boundary.geojson", SizeBytes: 120, LastModified: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	router := newTestRouter(NewService(store, config.CatalogConfig{}, nil))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/locations/describe",
		strings.NewReader(`{"path": "site", "recursive": true}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d (%s)", rec.Code, rec.Body.String())
	}

	var desc Description
	if err := json.Unmarshal(rec.Body.Bytes(), &desc); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(desc.Assets) != 1 {
		t.Fatalf("expected 1 asset, got %d", len(desc.Assets))
	}
	if desc.Assets[0].MediaType != "application/geo+json" {
		t.Fatalf("unexpected media type: %q", desc.Assets[0].MediaType)
	}
	if desc.Geo != nil {
		t.Fatalf("expected no geo metadata in response")
	}
}

func TestDescribeEndpointNotFound(t *testing.T) {
	router := newTestRouter(NewService(newFakeStore(), config.CatalogConfig{}, nil))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/locations/describe",
		strings.NewReader(`{"path": "missing/", "recursive": true}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDescribeEndpointMalformedGeoMetadata(t *testing.T) {
	store := newFakeStore()
	seedDataset(t, store, "impacts/crops", `{"version": broken`)
	router := newTestRouter(NewService(store, config.CatalogConfig{}, nil))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/locations/describe",
		strings.NewReader(`{"path": "impacts/crops/", "recursive": true}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestBuildEndpointBuildsAndPublishes(t *testing.T) {
	store := newFakeStore()
	seedDataset(t, store, "impacts/crops", validGeo)
	cfg := config.CatalogConfig{
		Datasets:      []config.Dataset{{Theme: "impacts", Path: "impacts/crops/"}},
		PublishPrefix: "stac/dev_stac/",
	}
	router := newTestRouter(NewService(store, cfg, nil))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/catalog/build",
		strings.NewReader(`{"publish": true}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d (%s)", rec.Code, rec.Body.String())
	}
	if len(store.uploads) == 0 {
		t.Fatalf("expected catalog files uploaded")
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["id"] != "adaptation-atlas" || resp["published"] != true {
		t.Fatalf("unexpected response: %v", resp)
	}
}
