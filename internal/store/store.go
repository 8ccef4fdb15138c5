// Package store implements the loose object database.
//
// Objects are framed by package object, compressed with zlib and written
// once under a path derived from their identifier:
//
//	root/
//	  objects/
//	    95/d09f2b10159347eece71399a7e2e907ea3df4f
//
// Existing objects are never rewritten or removed.
package store

import (
	"context"
	"io"
	"iter"

	"github.com/aweris/gitodb/internal/object"
)

// Store handles local object storage.
type Store interface {
	// Put frames content as an object of type t, stores it unless it is
	// already present and returns its identifier.
	Put(ctx context.Context, t object.Type, content []byte) (object.ID, error)

	// Get reads, decompresses and verifies an object.
	Get(ctx context.Context, id object.ID) (object.Object, error)

	// Header returns an object's type and size without reading its content.
	Header(ctx context.Context, id object.ID) (object.Type, int64, error)

	// Has checks if an object exists.
	Has(ctx context.Context, id object.ID) (bool, error)

	// PrettyPrint writes the human readable form of an object to w.
	PrettyPrint(ctx context.Context, w io.Writer, id object.ID) error

	// PutMulti stores several objects of the same type (batch operation).
	PutMulti(ctx context.Context, t object.Type, contents [][]byte) ([]object.ID, error)

	// GetMulti retrieves multiple objects (batch operation).
	GetMulti(ctx context.Context, ids []object.ID) (map[object.ID]object.Object, error)

	// Resolve expands an abbreviated hex identifier.
	Resolve(ctx context.Context, prefix string) (object.ID, error)

	// Objects enumerates every stored object in identifier order.
	Objects(ctx context.Context) iter.Seq2[object.ID, error]

	// Verify re-reads every object and reports the ones that fail.
	Verify(ctx context.Context) (*VerifyReport, error)

	// Evict removes an object from cache (not from disk).
	Evict(id object.ID)

	// Clear clears the in-memory cache.
	Clear()
}
