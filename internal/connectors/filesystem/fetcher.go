package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/custodia-labs/acronyms/internal/core/domain"
	"github.com/custodia-labs/acronyms/internal/core/ports/driven"
)

// DefaultMaxFileSize is the largest file the fetcher reads (100 MiB).
const DefaultMaxFileSize = 100 << 20

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

// Fetcher reads documents from the local filesystem.
type Fetcher struct {
	maxSize int64
}

// NewFetcher creates a local file fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{maxSize: DefaultMaxFileSize}
}

// Fetch reads the file behind a path or file:// URI.
func (f *Fetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !IsLocal(uri) {
		return nil, fmt.Errorf("%w: not a local uri: %s", domain.ErrUnsupportedType, uri)
	}

	path := ResolvePath(uri)
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}
	if info.Size() > f.maxSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", domain.ErrInvalidInput, path, f.maxSize)
	}

	return io.ReadAll(io.LimitReader(file, f.maxSize))
}
