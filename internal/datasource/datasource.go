// Package datasource abstracts where a cleaned extract's bytes come from.
// The common case is a local file, but inputs may also be fetched over HTTP
// when the cleaning pipeline publishes extracts behind a URL.
package datasource

import (
	"context"
	"io"
	"strings"

	"salesdw/internal/datasource/file"
	"salesdw/internal/datasource/httpds"
)

// Source yields the bytes of one input extract.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// ForPath selects a Source for an input path: http(s) URLs are fetched with
// retry and backoff, anything else opens the local filesystem.
func ForPath(path string) Source {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return httpds.NewSource(path, httpds.Config{})
	}
	return file.NewLocal(path)
}
