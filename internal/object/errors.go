package object

import "errors"

var (
	// ErrMalformedObject is returned when a frame header cannot be split into
	// a known type and a valid size.
	ErrMalformedObject = errors.New("gitodb: malformed object")
	// ErrCorruptObject is returned when a frame has no header terminator or
	// its content does not hash to the identifier it was stored under.
	ErrCorruptObject = errors.New("gitodb: corrupt object")
	// ErrInvalidID is returned for strings that are not object identifiers.
	ErrInvalidID = errors.New("gitodb: invalid object id")
)
