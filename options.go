package gitodb

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/aweris/gitodb/internal/compression"
	"github.com/aweris/gitodb/internal/store"
)

// OpenOptions configures a database.
type OpenOptions struct {
	Fs               afero.Fs
	Logger           *zap.Logger
	CacheSize        int
	CompressionLevel int
	Concurrency      int
}

// OpenOption is a functional option for configuring Open and Init.
type OpenOption func(*OpenOptions)

func defaultOptions() *OpenOptions {
	return &OpenOptions{
		Fs:               afero.NewOsFs(),
		Logger:           zap.NewNop(),
		CacheSize:        store.DefaultCacheSize,
		CompressionLevel: compression.DefaultLevel,
		Concurrency:      store.DefaultConcurrency,
	}
}

// WithFs sets the filesystem the repository lives on.
func WithFs(fsys afero.Fs) OpenOption {
	return func(o *OpenOptions) {
		if fsys != nil {
			o.Fs = fsys
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) OpenOption {
	return func(o *OpenOptions) {
		if log != nil {
			o.Logger = log
		}
	}
}

// WithCacheSize sets how many decoded objects are kept in memory.
// Zero disables the cache. Objects larger than store.MaxCachedObjectSize
// are never cached.
func WithCacheSize(n int) OpenOption {
	return func(o *OpenOptions) { o.CacheSize = n }
}

// WithCompressionLevel sets the zlib level for new objects.
func WithCompressionLevel(level int) OpenOption {
	return func(o *OpenOptions) { o.CompressionLevel = level }
}

// WithConcurrency sets the number of parallel operations for batch calls
// and verification.
func WithConcurrency(n int) OpenOption {
	return func(o *OpenOptions) {
		if n > 0 {
			o.Concurrency = n
		}
	}
}
