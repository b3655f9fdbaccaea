// Package zwrap takes a reader and optionally wraps it, so upon
// calling Close, the decompressor will be closed, followed by the
// underlying stream. It knows gzip and zstd by their magic bytes.
// Unlike the old version, we do not try gzip and seek back on
// failure. Peeking at the magic works for streams which cannot seek,
// like an http body.

package zwrap

import (
	"bufio"
	"compress/gzip"
	"io"

	"github.com/klauspost/compress/zstd"
)

var (
	gzMagic   = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Reader is what we return. Read comes from the decompressed view,
// Close closes the decompressor and then the backing stream.
type Reader struct {
	backing io.ReadCloser
	r       io.Reader
	gz      *gzip.Reader
	zs      *zstd.Decoder
}

func (zr *Reader) Read(p []byte) (int, error) { return zr.r.Read(p) }

func (zr *Reader) Close() error {
	var err error
	if zr.gz != nil {
		err = zr.gz.Close()
	}
	if zr.zs != nil {
		zr.zs.Close() // does not return an error
	}
	if e := zr.backing.Close(); err == nil {
		err = e
	}
	return err
}

func hasMagic(b, magic []byte) bool {
	if len(b) < len(magic) {
		return false
	}
	for i := range magic {
		if b[i] != magic[i] {
			return false
		}
	}
	return true
}

// WrapMaybe peeks at the start of the stream and decides whether it
// needs decompressing. A stream too short to hold any magic bytes is
// passed through as it is, errors and all.
func WrapMaybe(fp io.ReadCloser) (*Reader, error) {
	br := bufio.NewReader(fp)
	magic, _ := br.Peek(4) // short read just means a tiny file
	zr := &Reader{backing: fp, r: br}
	switch {
	case hasMagic(magic, gzMagic):
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		zr.gz, zr.r = gz, gz
	case hasMagic(magic, zstdMagic):
		zs, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		zr.zs, zr.r = zs, zs.IOReadCloser()
	}
	return zr, nil
}

// Writer wraps an output stream in gzip and closes both ends.
type Writer struct {
	backing io.WriteCloser
	gz      *gzip.Writer
}

func (zw *Writer) Write(p []byte) (int, error) {
	if zw.gz != nil {
		return zw.gz.Write(p)
	}
	return zw.backing.Write(p)
}

func (zw *Writer) Close() error {
	var err error
	if zw.gz != nil {
		err = zw.gz.Close()
	}
	if e := zw.backing.Close(); err == nil {
		err = e
	}
	return err
}

// WrapWriter returns a Writer which compresses with gzip if gz is
// set and otherwise just passes bytes through.
func WrapWriter(fp io.WriteCloser, gz bool) *Writer {
	zw := &Writer{backing: fp}
	if gz {
		zw.gz = gzip.NewWriter(fp)
	}
	return zw
}
