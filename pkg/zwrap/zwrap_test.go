package zwrap_test

import (
	"bytes"
	"compress/gzip"
	"io"
	"testing"

	"github.com/klauspost/compress/zstd"

	. "github.com/andrew-torda/mmtf/pkg/zwrap"
)

const payload = "not very compressible, but it does not matter"

type buffCloser struct{ *bytes.Reader }

func (buffCloser) Close() error { return nil }

func roundTrip(t *testing.T, raw []byte) string {
	t.Helper()
	zr, err := WrapMaybe(buffCloser{bytes.NewReader(raw)})
	if err != nil {
		t.Fatal("wrapping:", err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal("reading:", err)
	}
	return string(out)
}

func TestPlain(t *testing.T) {
	if got := roundTrip(t, []byte(payload)); got != payload {
		t.Error("plain stream mangled:", got)
	}
}

func TestGzip(t *testing.T) {
	var b bytes.Buffer
	gz := gzip.NewWriter(&b)
	gz.Write([]byte(payload))
	gz.Close()
	if got := roundTrip(t, b.Bytes()); got != payload {
		t.Error("gzip stream mangled:", got)
	}
}

func TestZstd(t *testing.T) {
	var b bytes.Buffer
	zw, err := zstd.NewWriter(&b)
	if err != nil {
		t.Fatal(err)
	}
	zw.Write([]byte(payload))
	zw.Close()
	if got := roundTrip(t, b.Bytes()); got != payload {
		t.Error("zstd stream mangled:", got)
	}
}

// TestTiny makes sure a stream shorter than any magic bytes just
// passes through.
func TestTiny(t *testing.T) {
	if got := roundTrip(t, []byte("x")); got != "x" {
		t.Error("tiny stream mangled:", got)
	}
}

type closableBuf struct{ bytes.Buffer }

func (*closableBuf) Close() error { return nil }

func TestWriter(t *testing.T) {
	var b closableBuf
	zw := WrapWriter(&b, true)
	if _, err := zw.Write([]byte(payload)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if got := roundTrip(t, b.Bytes()); got != payload {
		t.Error("gzip writer output did not read back:", got)
	}
}
