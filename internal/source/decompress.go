package source

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// newDecoder picks a decompressor from the file extension. It returns nil
// (and no error) for paths that are not compressed.
func newDecoder(path string, r io.Reader) (io.ReadCloser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return newGzip(r)
	case ".zst", ".zstd":
		return newZstd(r)
	default:
		return nil, nil
	}
}

// zstdMaxHeader is the longest zstd frame header: magic, descriptor,
// window, dictionary id and content size.
const zstdMaxHeader = 18

// sniffDecoder inspects the first bytes of r and wraps it in a
// decompressor when a gzip or zstd header is found. Streams shorter than a
// header are returned unchanged. When the magic matches but the header is
// bad, the error comes back with a reader that still yields every byte of
// r, so the caller can fall back to the raw stream.
func sniffDecoder(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(zstdMagic)) //nolint:errcheck // short input is simply not compressed

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		rec := &recordingReader{r: br}
		zr, err := newGzip(rec)
		if err != nil {
			return io.MultiReader(bytes.NewReader(rec.buf.Bytes()), br), err
		}
		rec.stop()
		return zr, nil
	case bytes.HasPrefix(head, zstdMagic):
		// The zstd reader parses lazily, so check the frame header while it
		// is still only peeked.
		hdr, _ := br.Peek(zstdMaxHeader) //nolint:errcheck // a short header fails Decode
		var h zstd.Header
		if err := h.Decode(hdr); err != nil {
			return br, fmt.Errorf("zstd: %w", err)
		}
		return newZstd(br)
	default:
		return br, nil
	}
}

// recordingReader keeps a copy of everything read through it until stop
// is called. It implements io.ByteReader so the gzip reader consumes
// exactly the header bytes and nothing more.
type recordingReader struct {
	r       *bufio.Reader
	buf     bytes.Buffer
	stopped bool
}

func (rr *recordingReader) Read(p []byte) (int, error) {
	n, err := rr.r.Read(p)
	if !rr.stopped {
		rr.buf.Write(p[:n])
	}
	return n, err
}

func (rr *recordingReader) ReadByte() (byte, error) {
	b, err := rr.r.ReadByte()
	if err == nil && !rr.stopped {
		rr.buf.WriteByte(b)
	}
	return b, err
}

func (rr *recordingReader) stop() {
	rr.stopped = true
	rr.buf = bytes.Buffer{}
}

func newGzip(r io.Reader) (io.ReadCloser, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	return zr, nil
}

func newZstd(r io.Reader) (io.ReadCloser, error) {
	zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	return zr.IOReadCloser(), nil
}
