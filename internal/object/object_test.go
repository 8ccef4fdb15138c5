package object

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	frame, err := Encode(TypeBlob, []byte("hello world"))
	require.NoError(t, err)
	require.Equal(t, []byte("blob 11\x00hello world"), frame)

	frame, err = Encode(TypeBlob, nil)
	require.NoError(t, err)
	require.Equal(t, []byte("blob 0\x00"), frame)

	_, err = Encode(TypeInvalid, []byte("x"))
	require.ErrorIs(t, err, ErrMalformedObject)
}

func TestDecode(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, content := range [][]byte{
			{},
			[]byte("hello world"),
			[]byte("a\x00b\x00\x00"),
			{0, 0, 0},
			{0xff, 0xfe, 0x80, 0x00, 0xc3},
		} {
			frame, err := Encode(TypeBlob, content)
			require.NoError(t, err)

			obj, err := Decode(frame)
			require.NoError(t, err)
			require.Equal(t, TypeBlob, obj.Type)
			require.Equal(t, int64(len(content)), obj.Size)
			require.Equal(t, content, obj.Content)

			id, err := obj.ID()
			require.NoError(t, err)
			require.Equal(t, Sum(frame), id)
		}
	})

	t.Run("tabs and repeated spaces", func(t *testing.T) {
		obj, err := Decode([]byte("blob  \t3\x00abc"))
		require.NoError(t, err)
		require.Equal(t, []byte("abc"), obj.Content)
	})

	for name, tc := range map[string]struct {
		frame string
		err   error
	}{
		"no terminator":  {"blob 3abc", ErrCorruptObject},
		"empty":          {"", ErrCorruptObject},
		"unknown type":   {"tree 3\x00abc", ErrMalformedObject},
		"empty header":   {"\x00abc", ErrMalformedObject},
		"missing size":   {"blob\x00abc", ErrMalformedObject},
		"garbled size":   {"blob x3\x00abc", ErrMalformedObject},
		"signed size":    {"blob +3\x00abc", ErrMalformedObject},
		"negative size":  {"blob -3\x00abc", ErrMalformedObject},
		"extra token":    {"blob 3 4\x00abc", ErrMalformedObject},
		"size mismatch":  {"blob 4\x00abc", ErrMalformedObject},
		"size overflow":  {"blob 99999999999999999999\x00abc", ErrMalformedObject},
		"uppercase type": {"BLOB 3\x00abc", ErrMalformedObject},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(tc.frame))
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestReadHeader(t *testing.T) {
	r := bufio.NewReader(bytes.NewReader([]byte("blob 5\x00ab\x00cd")))
	typ, size, err := ReadHeader(r)
	require.NoError(t, err)
	require.Equal(t, TypeBlob, typ)
	require.Equal(t, int64(5), size)

	rest, err := r.Peek(5)
	require.NoError(t, err)
	require.Equal(t, []byte("ab\x00cd"), rest)

	_, _, err = ReadHeader(bufio.NewReader(bytes.NewReader([]byte("blob 5"))))
	require.ErrorIs(t, err, ErrCorruptObject)

	_, _, err = ReadHeader(bufio.NewReader(bytes.NewReader(bytes.Repeat([]byte("a"), 200))))
	require.ErrorIs(t, err, ErrCorruptObject)

	_, _, err = ReadHeader(bufio.NewReader(bytes.NewReader([]byte("commit 1\x00x"))))
	require.ErrorIs(t, err, ErrMalformedObject)
}

func TestType(t *testing.T) {
	require.Equal(t, "blob", TypeBlob.String())
	require.True(t, TypeBlob.Valid())
	require.False(t, TypeInvalid.Valid())

	typ, err := ParseType("blob")
	require.NoError(t, err)
	require.Equal(t, TypeBlob, typ)

	_, err = ParseType("Blob")
	require.ErrorIs(t, err, ErrMalformedObject)

	var parsed Type
	require.NoError(t, parsed.UnmarshalText([]byte("blob")))
	require.Equal(t, TypeBlob, parsed)

	_, err = TypeInvalid.MarshalText()
	require.ErrorIs(t, err, ErrMalformedObject)
}
