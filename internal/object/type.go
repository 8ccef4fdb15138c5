package object

import "fmt"

// Type identifies the kind of an object. Only blobs exist today; trees and
// commits extend this set together with String and ParseType.
type Type uint8

const (
	TypeInvalid Type = iota
	TypeBlob
)

var typeNames = map[Type]string{
	TypeBlob: "blob",
}

// String returns the name written into the object header.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// Valid reports whether t is a known object type.
func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// ParseType maps a header token back to its Type.
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return TypeInvalid, fmt.Errorf("%w: unknown object type %q", ErrMalformedObject, name)
}

func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown object type %d", ErrMalformedObject, uint8(t))
	}
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
