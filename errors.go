package gitodb

import (
	"github.com/aweris/gitodb/internal/repo"
	"github.com/aweris/gitodb/internal/store"
)

var (
	ErrObjectNotFound  = store.ErrObjectNotFound
	ErrCorruptObject   = store.ErrCorruptObject
	ErrMalformedObject = store.ErrMalformedObject
	ErrStorageIO       = store.ErrStorageIO
	ErrInvalidID       = store.ErrInvalidID
	ErrAmbiguousID     = store.ErrAmbiguousID

	ErrNotRepository      = repo.ErrNotRepository
	ErrAlreadyInitialized = repo.ErrAlreadyInitialized
)
