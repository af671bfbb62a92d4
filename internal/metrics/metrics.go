package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ExtractionsTotal counts parquet footer reads.
	ExtractionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "atlas_geo_extractions_total",
		Help: "Number of geoparquet metadata extractions performed.",
	})

	// AssetsBuiltTotal counts asset descriptors produced.
	AssetsBuiltTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "atlas_assets_built_total",
		Help: "Number of asset descriptors built from storage listings.",
	})

	// AssetsSkippedTotal counts objects dropped for missing or unrecognized
	// extensions.
	AssetsSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "atlas_assets_skipped_total",
		Help: "Number of listed objects skipped as unrepresentable assets.",
	})

	// CatalogBuildsTotal counts full catalog-tree assemblies.
	CatalogBuildsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "atlas_catalog_builds_total",
		Help: "Number of catalog tree builds completed.",
	})
)

// Register attaches the Prometheus metrics endpoint to the router.
func Register(router *gin.Engine, path string) {
	router.GET(path, gin.WrapH(promhttp.Handler()))
}
