// Package catalog turns storage listings into catalog-ready asset
// descriptors and assembles them into a tree of named catalog nodes.
package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/AdaptationAtlas/data-management/internal/storage"
)

// mediaTypes is the closed set of recognized asset extensions. The asset
// contract depends on exactly these formats; lookups are case-sensitive.
var mediaTypes = map[string]string{
	"geojson": "application/geo+json",
	"parquet": "application/vnd.apache.parquet",
	"gpkg":    "application/geopackage+sqlite3",
	"shp":     "application/vnd.shp",
	"csv":     "text/plain",
	"json":    "application/json",
	"txt":     "text/plain",
	"html":    "text/html",
	"md":      "text/markdown",
}

// MediaType resolves a file extension to its media type.
func MediaType(ext string) (string, bool) {
	mtype, ok := mediaTypes[ext]
	return mtype, ok
}

// Asset is the unit handed to catalog assembly: one recognized file,
// described uniformly.
type Asset struct {
	Key              string `json:"-"`
	Href             string `json:"href"`
	AlternateURI     string `json:"alternate_uri"`
	MediaType        string `json:"media_type"`
	SizeBytes        int64  `json:"size_bytes"`
	LastModified     string `json:"last_modified"`
	GeoParquetSchema string `json:"geoparquet,omitempty"`
}

// BuildAssets derives one Asset per recognized object, preserving input
// order. Objects without an extension or with an unrecognized extension are
// skipped; a skip never fails the batch. The gpqSchema tag, when non-empty,
// is attached to parquet assets only.
func BuildAssets(objects []storage.Object, gpqSchema string) []Asset {
	assets := make([]Asset, 0, len(objects))
	for _, obj := range objects {
		asset, ok := buildAsset(obj, gpqSchema)
		if !ok {
			continue
		}
		assets = append(assets, asset)
	}
	return assets
}

func buildAsset(obj storage.Object, gpqSchema string) (Asset, bool) {
	filename := obj.Path
	if idx := strings.LastIndex(filename, "/"); idx >= 0 {
		filename = filename[idx+1:]
	}

	dot := strings.LastIndex(filename, ".")
	if dot < 0 {
		return Asset{}, false
	}
	name, ext := filename[:dot], filename[dot+1:]

	mtype, ok := mediaTypes[ext]
	if !ok {
		return Asset{}, false
	}

	// Some listings duplicate the bucket as the leading key segment.
	hrefKey := strings.TrimPrefix(obj.Path, obj.Bucket+"/")

	asset := Asset{
		Key:          name + "_" + ext,
		Href:         fmt.Sprintf("https://%s.s3.amazonaws.com/%s", obj.Bucket, hrefKey),
		AlternateURI: fmt.Sprintf("s3://%s/%s", obj.Bucket, strings.TrimPrefix(obj.Path, "/")),
		MediaType:    mtype,
		SizeBytes:    obj.SizeBytes,
		LastModified: FormatTime(obj.LastModified),
	}
	if ext == "parquet" && gpqSchema != "" {
		asset.GeoParquetSchema = gpqSchema
	}

	return asset, true
}

// FormatTime renders a timestamp as RFC 3339 at second precision, UTC, with
// a literal Z suffix.
func FormatTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

// NowRFC3339 is the current UTC time in the catalog's timestamp format.
func NowRFC3339() string {
	return FormatTime(time.Now())
}
