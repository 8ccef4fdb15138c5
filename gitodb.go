package gitodb

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/aweris/gitodb/internal/repo"
	"github.com/aweris/gitodb/internal/store"
)

// DB is a loose object database rooted at a repository directory.
type DB struct {
	*store.LocalStore

	fs afero.Fs
}

// Open opens the repository at dir (for example ".git"), which must have
// been created by Init.
func Open(dir string, opts ...OpenOption) (*DB, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	dir = expandPath(dir)
	if err := repo.Check(options.Fs, dir); err != nil {
		return nil, err
	}

	s, err := store.NewLocalStore(dir, store.Config{
		Fs:               options.Fs,
		CacheSize:        options.CacheSize,
		CompressionLevel: &options.CompressionLevel,
		Concurrency:      options.Concurrency,
		Logger:           options.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &DB{
		LocalStore: s,
		fs:         options.Fs,
	}, nil
}

// Init creates the repository layout at dir and opens it.
func Init(dir string, opts ...OpenOption) (*DB, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	dir = expandPath(dir)
	if err := repo.Init(options.Fs, dir); err != nil {
		return nil, err
	}
	options.Logger.Info("initialized repository", zap.String("dir", dir))

	return Open(dir, opts...)
}

// StoreBlob reads r to the end and stores it as a blob.
func (db *DB) StoreBlob(ctx context.Context, r io.Reader) (ID, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return ID{}, fmt.Errorf("read content: %w", err)
	}
	return db.Put(ctx, TypeBlob, content)
}

// StoreFile stores the content of the file at path as a blob.
func (db *DB) StoreFile(ctx context.Context, path string) (ID, error) {
	content, err := afero.ReadFile(db.fs, path)
	if err != nil {
		return ID{}, fmt.Errorf("read %s: %w", path, err)
	}
	return db.Put(ctx, TypeBlob, content)
}

// ReadObject resolves a full or abbreviated hex identifier and returns the
// raw content of the object.
func (db *DB) ReadObject(ctx context.Context, rev string) ([]byte, error) {
	id, err := db.Resolve(ctx, rev)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := db.PrettyPrint(ctx, &buf, id); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
