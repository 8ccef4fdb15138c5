package gitodb

import (
	"github.com/aweris/gitodb/internal/object"
	"github.com/aweris/gitodb/internal/store"
)

// Store is the object storage interface.
// Re-exported from internal/store for convenience.
type Store = store.Store

type (
	ID           = object.ID
	Type         = object.Type
	Object       = object.Object
	VerifyReport = store.VerifyReport
	Problem      = store.Problem
)

const TypeBlob = object.TypeBlob

// ParseID parses a full 40 character hex identifier.
func ParseID(s string) (ID, error) {
	return object.ParseID(s)
}

// ParseType parses an object type name such as "blob".
func ParseType(name string) (Type, error) {
	return object.ParseType(name)
}

// HashObject returns the identifier content would be stored under.
func HashObject(t Type, content []byte) (ID, error) {
	return object.HashObject(t, content)
}
