package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/aweris/gitodb/internal/object"
)

// MinPrefixLen is the shortest abbreviation Resolve accepts.
const MinPrefixLen = 4

// tmpSuffix marks in-flight writes; see writeObject.
const tmpSuffix = ".tmp-"

// Objects enumerates stored objects in identifier order. Temporary files
// and anything else that is not named like an object are skipped.
func (s *LocalStore) Objects(ctx context.Context) iter.Seq2[object.ID, error] {
	return func(yield func(object.ID, error) bool) {
		dirs, err := afero.ReadDir(s.fs, s.objectsDir())
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return
			}
			yield(object.ZeroID, fmt.Errorf("%w: list objects: %w", ErrStorageIO, err))
			return
		}

		for _, dir := range dirs {
			if !dir.IsDir() || !isFanoutDir(dir.Name()) {
				continue
			}
			if err := ctx.Err(); err != nil {
				yield(object.ZeroID, err)
				return
			}

			for id, err := range s.objectsIn(dir.Name(), "") {
				if !yield(id, err) || err != nil {
					return
				}
			}
		}
	}
}

// objectsIn enumerates the objects of one fan-out directory whose file
// names start with prefix.
func (s *LocalStore) objectsIn(dir, prefix string) iter.Seq2[object.ID, error] {
	return func(yield func(object.ID, error) bool) {
		entries, err := afero.ReadDir(s.fs, filepath.Join(s.objectsDir(), dir))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return
			}
			yield(object.ZeroID, fmt.Errorf("%w: list objects/%s: %w", ErrStorageIO, dir, err))
			return
		}

		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || len(name) != object.HexSize-2 || !strings.HasPrefix(name, prefix) {
				continue
			}
			id, err := object.ParseID(dir + name)
			if err != nil || id.File() != name {
				// Not an object name (or not lower case).
				continue
			}
			if !yield(id, nil) {
				return
			}
		}
	}
}

// Resolve expands a hex abbreviation of at least MinPrefixLen characters
// into the single stored identifier it denotes. A full identifier is
// returned as is, whether or not it is stored.
func (s *LocalStore) Resolve(ctx context.Context, prefix string) (object.ID, error) {
	if err := ctx.Err(); err != nil {
		return object.ZeroID, err
	}

	if len(prefix) == object.HexSize {
		return object.ParseID(prefix)
	}
	if len(prefix) < MinPrefixLen || len(prefix) > object.HexSize || !object.IsHex(prefix) {
		return object.ZeroID, fmt.Errorf("%w: %q", ErrInvalidID, prefix)
	}

	prefix = strings.ToLower(prefix)

	var (
		found   object.ID
		matches int
	)
	for id, err := range s.objectsIn(prefix[:2], prefix[2:]) {
		if err != nil {
			return object.ZeroID, err
		}
		found = id
		matches++
		if matches > 1 {
			return object.ZeroID, fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
		}
	}
	if matches == 0 {
		return object.ZeroID, fmt.Errorf("%w: %s", ErrObjectNotFound, prefix)
	}
	return found, nil
}

func isFanoutDir(name string) bool {
	return len(name) == 2 && object.IsHex(name) && strings.ToLower(name) == name
}
