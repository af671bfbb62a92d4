package geoparquet

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

const epsgAuthority = "EPSG"

// CRS is a coordinate reference system in PROJJSON form, reduced to the
// fields the catalog needs. Non-registry definitions keep their name but
// resolve to no EPSG code.
type CRS struct {
	Type string `json:"type,omitempty"`
	Name string `json:"name,omitempty"`
	ID   *CRSID `json:"id,omitempty"`
}

// CRSID identifies a CRS within an authority's registry.
type CRSID struct {
	Authority string `json:"authority"`
	Code      Code   `json:"code"`
}

// WGS84 is the default reference system when a file declares geometry but
// omits a CRS.
func WGS84() *CRS {
	return &CRS{
		Type: "GeographicCRS",
		Name: "WGS 84",
		ID:   &CRSID{Authority: epsgAuthority, Code: NewCode(4326)},
	}
}

// EPSG resolves the CRS to its EPSG registry code. The second return is
// false for definitions outside the EPSG registry.
func (c *CRS) EPSG() (int, bool) {
	if c == nil || c.ID == nil || !strings.EqualFold(c.ID.Authority, epsgAuthority) {
		return 0, false
	}
	return c.ID.Code.Int()
}

// Code is a registry code. PROJJSON allows both numeric and string codes, so
// the raw token is kept and coerced on demand.
type Code struct {
	raw string
}

// NewCode builds a numeric registry code.
func NewCode(code int) Code {
	return Code{raw: strconv.Itoa(code)}
}

// Int returns the code as an integer when it is numeric.
func (c Code) Int() (int, bool) {
	n, err := strconv.Atoi(c.raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c Code) String() string {
	return c.raw
}

// UnmarshalJSON accepts either a JSON number or a JSON string token.
func (c *Code) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		c.raw = s
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	c.raw = n.String()
	return nil
}

// MarshalJSON renders numeric codes as numbers and anything else as strings.
func (c Code) MarshalJSON() ([]byte, error) {
	if _, ok := c.Int(); ok {
		return []byte(c.raw), nil
	}
	return json.Marshal(c.raw)
}
