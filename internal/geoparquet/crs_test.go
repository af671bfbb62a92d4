package geoparquet

import (
	"encoding/json"
	"testing"
)

func TestCodeUnmarshalNumberAndString(t *testing.T) {
	var numeric Code
	if err := json.Unmarshal([]byte(`4326`), &numeric); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if n, ok := numeric.Int(); !ok || n != 4326 {
		t.Fatalf("expected 4326, got %v (%v)", n, ok)
	}

	var str Code
	if err := json.Unmarshal([]byte(`"CRS84"`), &str); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if _, ok := str.Int(); ok {
		t.Fatalf("expected non-numeric code")
	}
	if str.String() != "CRS84" {
		t.Fatalf("unexpected code string: %q", str.String())
	}
}

func TestCodeMarshalRoundTrip(t *testing.T) {
	out, err := json.Marshal(NewCode(32736))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "32736" {
		t.Fatalf("expected numeric rendering, got %s", out)
	}
}

func TestEPSGResolution(t *testing.T) {
	if code, ok := WGS84().EPSG(); !ok || code != 4326 {
		t.Fatalf("WGS84 should resolve to 4326, got %d (%v)", code, ok)
	}

	nonRegistry := &CRS{Name: "local grid"}
	if _, ok := nonRegistry.EPSG(); ok {
		t.Fatalf("CRS without an id must not resolve")
	}

	other := &CRS{ID: &CRSID{Authority: "ESRI", Code: NewCode(54009)}}
	if _, ok := other.EPSG(); ok {
		t.Fatalf("non-EPSG authority must not resolve")
	}

	lower := &CRS{ID: &CRSID{Authority: "epsg", Code: NewCode(3857)}}
	if code, ok := lower.EPSG(); !ok || code != 3857 {
		t.Fatalf("authority match should be case-insensitive, got %d (%v)", code, ok)
	}
}
