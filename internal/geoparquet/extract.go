// Package geoparquet recovers structural and geospatial metadata from the
// footer of a parquet file without reading any row data. GeoParquet files
// carry a JSON document under the reserved "geo" key of the footer's
// key/value metadata block; plain parquet files simply lack it.
package geoparquet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
)

// MetadataKey is the reserved key/value metadata entry GeoParquet writes.
const MetadataKey = "geo"

// Metadata describes one columnar file. Structural fields (Columns,
// ColumnTypes, NumRows) are always populated; geometry fields are zero when
// the file carries no geospatial metadata. CRS is nil only when the file
// declares no geometry at all — a declared geometry without a CRS gets the
// WGS84 default.
type Metadata struct {
	SchemaVersion  string    `json:"schema_version,omitempty"`
	GeometryColumn string    `json:"geometry_column,omitempty"`
	BBox           []float64 `json:"bbox,omitempty"`
	CRS            *CRS      `json:"crs,omitempty"`
	EPSG           int       `json:"epsg,omitempty"`
	Columns        []string  `json:"columns"`
	ColumnTypes    []string  `json:"column_types"`
	NumRows        int64     `json:"num_rows"`
}

// geoDocument is the embedded "geo" JSON block.
type geoDocument struct {
	Version       string               `json:"version"`
	PrimaryColumn string               `json:"primary_column"`
	Columns       map[string]geoColumn `json:"columns"`
}

type geoColumn struct {
	BBox []float64       `json:"bbox"`
	CRS  json.RawMessage `json:"crs"`
}

// Extract reads footer-only metadata from a parquet file. The read is O(1)
// in file size: only the footer is fetched, so r may be a ranged reader over
// a remote object. Files without geospatial metadata yield a structural-only
// result and a nil error; an unparsable "geo" block is a hard failure.
func Extract(r io.ReaderAt, size int64) (Metadata, error) {
	f, err := parquet.OpenFile(r, size,
		parquet.SkipPageIndex(true),
		parquet.SkipBloomFilters(true),
	)
	if err != nil {
		return Metadata{}, fmt.Errorf("open parquet file: %w", err)
	}

	meta := Metadata{NumRows: f.NumRows()}
	for _, field := range f.Schema().Fields() {
		meta.Columns = append(meta.Columns, field.Name())
		meta.ColumnTypes = append(meta.ColumnTypes, fieldTypeName(field))
	}

	raw, ok := f.Lookup(MetadataKey)
	if !ok {
		return meta, nil
	}

	var geo geoDocument
	if err := json.Unmarshal([]byte(raw), &geo); err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}

	meta.GeometryColumn = geo.PrimaryColumn
	if geo.Version != "" {
		meta.SchemaVersion = "v" + geo.Version
	}

	crs := WGS84()
	if col, ok := geo.Columns[geo.PrimaryColumn]; ok {
		meta.BBox = col.BBox
		if isJSONObject(col.CRS) {
			parsed := &CRS{}
			if err := json.Unmarshal(col.CRS, parsed); err != nil {
				return Metadata{}, fmt.Errorf("%w: crs: %v", ErrMalformedMetadata, err)
			}
			crs = parsed
		}
	}
	meta.CRS = crs
	if code, ok := crs.EPSG(); ok {
		meta.EPSG = code
	}

	return meta, nil
}

// ExtractFile is Extract over a local file path.
func ExtractFile(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Metadata{}, fmt.Errorf("stat %q: %w", path, err)
	}

	return Extract(f, info.Size())
}

func fieldTypeName(field parquet.Field) string {
	if !field.Leaf() {
		return "group"
	}
	return field.Type().String()
}

// isJSONObject reports whether the raw value is a structured CRS definition.
// String or missing values fall back to the WGS84 default.
func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
