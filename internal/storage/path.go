package storage

import "strings"

const schemeSeparator = "://"

// CleanPath reduces a storage path to its bucket-relative form. Paths of the
// form scheme://bucket/rest/of/path lose the scheme and the bucket segment;
// paths without a scheme separator are returned unchanged. A scheme-prefixed
// path with nothing after the bucket yields "", meaning "no object key".
func CleanPath(path string) string {
	idx := strings.Index(path, schemeSeparator)
	if idx < 0 {
		return path
	}

	rest := path[idx+len(schemeSeparator):]
	_, key, ok := strings.Cut(rest, "/")
	if !ok {
		return ""
	}
	return key
}
