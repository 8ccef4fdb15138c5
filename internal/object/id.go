package object

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
)

// IDSize is the length of an object identifier in bytes.
const IDSize = sha1.Size

// HexSize is the length of an identifier rendered as hex.
const HexSize = IDSize * 2

// ID is the SHA-1 digest of an object's framed representation.
type ID [IDSize]byte

// ZeroID is never produced by Sum for real content.
var ZeroID ID

// Sum computes the identifier of a framed buffer (header included).
func Sum(frame []byte) ID {
	return ID(sha1.Sum(frame))
}

// HashObject frames content as an object of type t and returns its ID
// without storing anything.
func HashObject(t Type, content []byte) (ID, error) {
	frame, err := Encode(t, content)
	if err != nil {
		return ZeroID, err
	}
	return Sum(frame), nil
}

// ParseID parses a full 40 character hex identifier. Upper case digits
// are accepted and normalized.
func ParseID(s string) (ID, error) {
	var id ID
	if len(s) != HexSize {
		return id, fmt.Errorf("%w: %q: want %d hex characters, got %d", ErrInvalidID, s, HexSize, len(s))
	}
	if _, err := hex.Decode(id[:], []byte(strings.ToLower(s))); err != nil {
		return id, fmt.Errorf("%w: %q: %v", ErrInvalidID, s, err)
	}
	return id, nil
}

// IsHex reports whether s consists only of hex digits.
func IsHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// Dir returns the two character fan-out directory name.
func (id ID) Dir() string {
	return id.String()[:2]
}

// File returns the remaining 38 characters used as the file name.
func (id ID) File() string {
	return id.String()[2:]
}

func (id ID) IsZero() bool {
	return id == ZeroID
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := ParseID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
