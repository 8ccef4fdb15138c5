// Package repo creates and recognizes the on-disk repository layout that
// the object store lives in.
package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// DefaultDir is the repository directory relative to a work tree.
	DefaultDir = ".git"
	// DefaultBranch is the branch HEAD points at after Init.
	DefaultBranch = "main"

	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644
)

var (
	ErrAlreadyInitialized = errors.New("gitodb: repository already initialized")
	ErrNotRepository      = errors.New("gitodb: not a repository")
)

// Layout names the parts of a repository directory.
type Layout struct {
	Root string
}

func (l Layout) Objects() string { return filepath.Join(l.Root, "objects") }
func (l Layout) Refs() string    { return filepath.Join(l.Root, "refs") }
func (l Layout) Head() string    { return filepath.Join(l.Root, "HEAD") }

// HeadRef is the content of a freshly initialized HEAD file.
func HeadRef(branch string) string {
	return "ref: refs/heads/" + branch + "\n"
}

// Init creates objects/, refs/ and a HEAD pointing at DefaultBranch under
// dir. It refuses to touch a directory that already holds a repository.
func Init(fsys afero.Fs, dir string) error {
	l := Layout{Root: dir}

	ok, err := IsRepository(fsys, dir)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("%w: %s", ErrAlreadyInitialized, dir)
	}

	for _, d := range []string{l.Objects(), l.Refs()} {
		if err := fsys.MkdirAll(d, dirPerm); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", d, err)
		}
	}

	if err := afero.WriteFile(fsys, l.Head(), []byte(HeadRef(DefaultBranch)), filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", l.Head(), err)
	}
	return nil
}

// IsRepository reports whether dir has an objects directory.
func IsRepository(fsys afero.Fs, dir string) (bool, error) {
	ok, err := afero.DirExists(fsys, Layout{Root: dir}.Objects())
	if err != nil {
		return false, fmt.Errorf("failed to inspect %s: %w", dir, err)
	}
	return ok, nil
}

// Check returns ErrNotRepository unless dir is a repository.
func Check(fsys afero.Fs, dir string) error {
	ok, err := IsRepository(fsys, dir)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotRepository, dir)
	}
	return nil
}
