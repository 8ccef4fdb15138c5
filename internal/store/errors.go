package store

import (
	"errors"

	"github.com/aweris/gitodb/internal/object"
)

var (
	ErrObjectNotFound = errors.New("gitodb: object not found")
	ErrAmbiguousID    = errors.New("gitodb: ambiguous object id")
	// ErrStorageIO wraps filesystem failures that say nothing about the
	// object itself: permissions, full disks and the like.
	ErrStorageIO = errors.New("gitodb: storage i/o error")

	ErrCorruptObject   = object.ErrCorruptObject
	ErrMalformedObject = object.ErrMalformedObject
	ErrInvalidID       = object.ErrInvalidID
)
