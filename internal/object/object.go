// Package object implements the loose object format: a typed payload framed
// as "<type> <size>\x00<content>" and identified by the SHA-1 of that frame.
package object

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxHeaderLen bounds the header scan of a stream that never yields NUL.
// "blob " plus the widest int64 fits comfortably.
const maxHeaderLen = 64

// Object is a decoded object. Content is never interpreted.
type Object struct {
	Type    Type
	Size    int64
	Content []byte
}

// ID returns the identifier of the object.
func (o Object) ID() (ID, error) {
	return HashObject(o.Type, o.Content)
}

// Header returns the frame header without the trailing NUL.
func Header(t Type, size int64) (string, error) {
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown object type %d", ErrMalformedObject, uint8(t))
	}
	return t.String() + " " + strconv.FormatInt(size, 10), nil
}

// Encode frames content as an object of type t.
func Encode(t Type, content []byte) ([]byte, error) {
	hdr, err := Header(t, int64(len(content)))
	if err != nil {
		return nil, err
	}
	frame := make([]byte, 0, len(hdr)+1+len(content))
	frame = append(frame, hdr...)
	frame = append(frame, 0)
	frame = append(frame, content...)
	return frame, nil
}

// Decode parses a frame produced by Encode. Only the first NUL ends the
// header, so content may contain NUL bytes. The returned content aliases
// frame.
func Decode(frame []byte) (Object, error) {
	idx := bytes.IndexByte(frame, 0)
	if idx == -1 {
		return Object{}, fmt.Errorf("%w: missing header terminator", ErrCorruptObject)
	}

	t, size, err := parseHeader(string(frame[:idx]))
	if err != nil {
		return Object{}, err
	}

	content := frame[idx+1:]
	if size != int64(len(content)) {
		return Object{}, fmt.Errorf("%w: header declares %d bytes, content has %d", ErrMalformedObject, size, len(content))
	}

	return Object{Type: t, Size: size, Content: content}, nil
}

// ReadHeader consumes a frame header from r up to and including the NUL
// terminator, leaving r positioned at the first content byte.
func ReadHeader(r io.ByteReader) (Type, int64, error) {
	var hdr strings.Builder
	for hdr.Len() <= maxHeaderLen {
		c, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return TypeInvalid, 0, fmt.Errorf("%w: missing header terminator", ErrCorruptObject)
			}
			return TypeInvalid, 0, fmt.Errorf("%w: %v", ErrCorruptObject, err)
		}
		if c == 0 {
			return parseHeader(hdr.String())
		}
		hdr.WriteByte(c)
	}
	return TypeInvalid, 0, fmt.Errorf("%w: header longer than %d bytes", ErrCorruptObject, maxHeaderLen)
}

// parseHeader splits "<type> <size>" on the first whitespace run. The size
// must be a plain non-negative decimal; garbled sizes are rejected rather
// than defaulted.
func parseHeader(hdr string) (Type, int64, error) {
	fields := strings.Fields(hdr)
	if len(fields) == 0 {
		return TypeInvalid, 0, fmt.Errorf("%w: empty header", ErrMalformedObject)
	}

	t, err := ParseType(fields[0])
	if err != nil {
		return TypeInvalid, 0, err
	}

	if len(fields) != 2 {
		return TypeInvalid, 0, fmt.Errorf("%w: header %q: want \"<type> <size>\"", ErrMalformedObject, hdr)
	}

	size, err := parseSize(fields[1])
	if err != nil {
		return TypeInvalid, 0, err
	}
	return t, size, nil
}

func parseSize(tok string) (int64, error) {
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return 0, fmt.Errorf("%w: invalid size %q", ErrMalformedObject, tok)
		}
	}
	size, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid size %q: %v", ErrMalformedObject, tok, err)
	}
	return size, nil
}
