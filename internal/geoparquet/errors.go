package geoparquet

import "errors"

// ErrMalformedMetadata signals that the embedded "geo" metadata block exists
// but cannot be parsed. The file is treated as corrupt for geospatial
// purposes; a file without the block is not an error.
var ErrMalformedMetadata = errors.New("malformed geo metadata")
