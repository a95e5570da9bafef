package filesystem

import (
	"net/url"
	"strings"
)

// ResolvePath converts a document URI to a local path.
// Handles file:// URIs and bare paths.
func ResolvePath(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		if u, err := url.Parse(uri); err == nil && u.Path != "" {
			return u.Path
		}
		return strings.TrimPrefix(uri, "file://")
	}
	return uri
}

// IsLocal reports whether uri refers to the local filesystem.
func IsLocal(uri string) bool {
	if strings.HasPrefix(uri, "file://") {
		return true
	}
	return !strings.Contains(uri, "://")
}
