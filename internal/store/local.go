package store

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/aweris/gitodb/internal/compression"
	"github.com/aweris/gitodb/internal/object"
)

const (
	// DefaultCacheSize is the number of decoded objects kept in memory.
	DefaultCacheSize = 256
	// DefaultConcurrency bounds batch operations and verification.
	DefaultConcurrency = 8
	// MaxCachedObjectSize is the largest content Get keeps in the cache.
	// The cache bounds entries, not bytes, so bigger objects are always
	// read from disk.
	MaxCachedObjectSize = 1 << 20

	dirPerm    fs.FileMode = 0o755
	objectPerm fs.FileMode = 0o444
)

// Config configures a LocalStore. Zero values select defaults, except
// CacheSize where zero disables caching; use DefaultCacheSize explicitly.
type Config struct {
	Fs        afero.Fs
	CacheSize int
	// CompressionLevel is the zlib level for new objects. Nil selects
	// compression.DefaultLevel; zlib's level 0 stores uncompressed.
	CompressionLevel *int
	Concurrency      int
	Logger           *zap.Logger
}

// LocalStore implements Store on top of an afero filesystem.
//
// Storage layout:
//
//	root/
//	  objects/
//	    ab/cd123...  (zlib("<type> <size>\x00<content>"))
//
// Objects are written to a temporary sibling and renamed into place, so a
// reader never observes a partially written object.
type LocalStore struct {
	fs          afero.Fs
	root        string
	cache       Cache
	compressor  *compression.Compressor
	concurrency int
	log         *zap.Logger
}

var _ Store = (*LocalStore)(nil)

// NewLocalStore returns a store rooted at root, the repository directory
// holding "objects". The directory layout itself is created by repo.Init.
func NewLocalStore(root string, cfg Config) (*LocalStore, error) {
	fsys := cfg.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	level := compression.DefaultLevel
	if cfg.CompressionLevel != nil {
		level = *cfg.CompressionLevel
	}

	compressor, err := compression.NewCompressor(level)
	if err != nil {
		return nil, fmt.Errorf("failed to create compressor: %w", err)
	}

	cache, err := NewLRUCache(cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	return &LocalStore{
		fs:          fsys,
		root:        root,
		cache:       cache,
		compressor:  compressor,
		concurrency: concurrency,
		log:         log.With(zap.String("root", root)),
	}, nil
}

// CompressionLevel returns the zlib level used for new objects.
func (s *LocalStore) CompressionLevel() int {
	return s.compressor.Level()
}

// Root returns the repository directory the store was opened on.
func (s *LocalStore) Root() string {
	return s.root
}

// Put stores an object and returns its identifier. Storing an object that
// already exists is a no-op.
func (s *LocalStore) Put(ctx context.Context, t object.Type, content []byte) (object.ID, error) {
	if err := ctx.Err(); err != nil {
		return object.ZeroID, err
	}

	// 1. Frame and hash
	frame, err := object.Encode(t, content)
	if err != nil {
		return object.ZeroID, err
	}
	id := object.Sum(frame)

	// 2. Check if already exists
	path := s.objectPath(id)
	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return object.ZeroID, fmt.Errorf("%w: stat object %s: %w", ErrStorageIO, id, err)
	}
	if exists {
		s.log.Debug("object already stored", zap.Stringer("id", id))
		return id, nil
	}

	compressed, err := s.compressor.Compress(frame)
	if err != nil {
		return object.ZeroID, fmt.Errorf("failed to compress object %s: %w", id, err)
	}

	// 3. Write to disk
	if err := s.fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return object.ZeroID, fmt.Errorf("%w: create directory for %s: %w", ErrStorageIO, id, err)
	}
	if err := s.writeObject(path, compressed); err != nil {
		return object.ZeroID, fmt.Errorf("%w: write object %s: %w", ErrStorageIO, id, err)
	}

	s.log.Debug("object stored",
		zap.Stringer("id", id),
		zap.Stringer("type", t),
		zap.Int("size", len(content)),
		zap.Int("compressed", len(compressed)))

	return id, nil
}

// writeObject writes data next to path and renames it into place.
func (s *LocalStore) writeObject(path string, data []byte) error {
	tmp, err := afero.TempFile(s.fs, filepath.Dir(path), filepath.Base(path)+tmpSuffix+"*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	_, err = tmp.Write(data)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = s.fs.Chmod(tmpPath, objectPerm)
	}
	if err == nil {
		err = s.fs.Rename(tmpPath, path)
	}
	if err != nil {
		_ = s.fs.Remove(tmpPath)
		return err
	}
	return nil
}

// Get retrieves an object by identifier. The decompressed frame must hash
// back to id.
func (s *LocalStore) Get(ctx context.Context, id object.ID) (object.Object, error) {
	if err := ctx.Err(); err != nil {
		return object.Object{}, err
	}

	// 1. Check memory cache
	if obj, ok := s.cache.Get(id); ok {
		obj.Content = bytes.Clone(obj.Content)
		return obj, nil
	}

	// 2. Read from disk
	obj, err := s.readObject(id)
	if err != nil {
		return object.Object{}, err
	}

	// 3. Cache and return
	if len(obj.Content) <= MaxCachedObjectSize {
		s.cache.Add(id, obj)
	}
	obj.Content = bytes.Clone(obj.Content)
	return obj, nil
}

func (s *LocalStore) readObject(id object.ID) (object.Object, error) {
	compressed, err := afero.ReadFile(s.fs, s.objectPath(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return object.Object{}, fmt.Errorf("%w: %s", ErrObjectNotFound, id)
		}
		return object.Object{}, fmt.Errorf("%w: read object %s: %w", ErrStorageIO, id, err)
	}

	frame, err := s.compressor.Decompress(compressed)
	if err != nil {
		return object.Object{}, fmt.Errorf("%w: %s: %w", ErrCorruptObject, id, err)
	}

	if actual := object.Sum(frame); actual != id {
		return object.Object{}, fmt.Errorf("%w: %s: content hashes to %s", ErrCorruptObject, id, actual)
	}

	obj, err := object.Decode(frame)
	if err != nil {
		return object.Object{}, fmt.Errorf("object %s: %w", id, err)
	}
	return obj, nil
}

// Header decompresses only as much of the object as needed to parse its
// header. Unlike Get it does not verify the identifier.
func (s *LocalStore) Header(ctx context.Context, id object.ID) (object.Type, int64, error) {
	if err := ctx.Err(); err != nil {
		return object.TypeInvalid, 0, err
	}

	if obj, ok := s.cache.Get(id); ok {
		return obj.Type, obj.Size, nil
	}

	f, err := s.fs.Open(s.objectPath(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return object.TypeInvalid, 0, fmt.Errorf("%w: %s", ErrObjectNotFound, id)
		}
		return object.TypeInvalid, 0, fmt.Errorf("%w: open object %s: %w", ErrStorageIO, id, err)
	}
	defer f.Close()

	zr, err := s.compressor.NewReader(f)
	if err != nil {
		return object.TypeInvalid, 0, fmt.Errorf("%w: %s: %w", ErrCorruptObject, id, err)
	}
	defer zr.Close()

	t, size, err := object.ReadHeader(bufio.NewReader(zr))
	if err != nil {
		return object.TypeInvalid, 0, fmt.Errorf("object %s: %w", id, err)
	}
	return t, size, nil
}

// Has checks if an object exists.
func (s *LocalStore) Has(ctx context.Context, id object.ID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	// Check cache first
	if s.cache.Has(id) {
		return true, nil
	}

	ok, err := afero.Exists(s.fs, s.objectPath(id))
	if err != nil {
		return false, fmt.Errorf("%w: stat object %s: %w", ErrStorageIO, id, err)
	}
	return ok, nil
}

// PrettyPrint writes the content of a blob to w, byte for byte.
func (s *LocalStore) PrettyPrint(ctx context.Context, w io.Writer, id object.ID) error {
	obj, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	switch obj.Type {
	case object.TypeBlob:
		_, err = w.Write(obj.Content)
		return err
	default:
		return fmt.Errorf("%w: cannot pretty-print %s object %s", ErrMalformedObject, obj.Type, id)
	}
}

// PutMulti stores multiple objects in parallel. The returned identifiers
// follow the order of contents.
func (s *LocalStore) PutMulti(ctx context.Context, t object.Type, contents [][]byte) ([]object.ID, error) {
	ids := make([]object.ID, len(contents))

	p := pool.New().WithMaxGoroutines(s.concurrency).WithContext(ctx).WithCancelOnError()
	for i, content := range contents {
		p.Go(func(ctx context.Context) error {
			id, err := s.Put(ctx, t, content)
			if err != nil {
				return err
			}
			ids[i] = id
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return ids, nil
}

// GetMulti retrieves multiple objects in parallel.
func (s *LocalStore) GetMulti(ctx context.Context, ids []object.ID) (map[object.ID]object.Object, error) {
	var mu sync.Mutex
	result := make(map[object.ID]object.Object, len(ids))

	p := pool.New().WithMaxGoroutines(s.concurrency).WithContext(ctx).WithCancelOnError()
	for _, id := range ids {
		p.Go(func(ctx context.Context) error {
			obj, err := s.Get(ctx, id)
			if err != nil {
				return err
			}
			mu.Lock()
			result[id] = obj
			mu.Unlock()
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// Evict removes an object from cache.
func (s *LocalStore) Evict(id object.ID) {
	s.cache.Remove(id)
}

// Clear clears the cache.
func (s *LocalStore) Clear() {
	s.cache.Clear()
}

// objectPath returns the filesystem path for an object.
// Git-style sharding: objects/ab/cd123...
func (s *LocalStore) objectPath(id object.ID) string {
	return filepath.Join(s.objectsDir(), id.Dir(), id.File())
}

func (s *LocalStore) objectsDir() string {
	return filepath.Join(s.root, "objects")
}
