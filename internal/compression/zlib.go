package compression

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"
)

// DefaultLevel selects the codec's default speed/size tradeoff.
const DefaultLevel = zlib.DefaultCompression

// ErrCorruptStream is returned when input is not a complete zlib stream.
var ErrCorruptStream = errors.New("gitodb: corrupt zlib stream")

// Compressor produces and consumes RFC 1950 zlib streams, the encoding of
// loose objects on disk. It is safe for concurrent use.
type Compressor struct {
	level   int
	writers sync.Pool
}

func NewCompressor(level int) (*Compressor, error) {
	if level < zlib.HuffmanOnly || level > zlib.BestCompression {
		return nil, fmt.Errorf("invalid compression level %d", level)
	}

	c := &Compressor{level: level}
	c.writers.New = func() any {
		// Level was validated above.
		w, _ := zlib.NewWriterLevel(nil, c.level)
		return w
	}
	return c, nil
}

func (c *Compressor) Level() int {
	return c.level
}

func (c *Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.CompressTo(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CompressTo writes the compressed form of data to w.
func (c *Compressor) CompressTo(w io.Writer, data []byte) error {
	zw := c.writers.Get().(*zlib.Writer)
	defer c.writers.Put(zw)

	zw.Reset(w)
	if _, err := zw.Write(data); err != nil {
		return fmt.Errorf("compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compress: %w", err)
	}
	return nil
}

func (c *Compressor) Decompress(data []byte) ([]byte, error) {
	r, err := c.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// NewReader returns a streaming decompressor over r. Read errors other than
// io.EOF are reported as ErrCorruptStream.
func (c *Compressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, corrupt(err)
	}
	return &reader{zr: zr}, nil
}

type reader struct {
	zr io.ReadCloser
}

func (r *reader) Read(p []byte) (int, error) {
	n, err := r.zr.Read(p)
	if err != nil && err != io.EOF {
		return n, corrupt(err)
	}
	return n, err
}

func (r *reader) Close() error {
	return r.zr.Close()
}

func corrupt(err error) error {
	if errors.Is(err, ErrCorruptStream) {
		return err
	}
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("%w: %w", ErrCorruptStream, err)
}
