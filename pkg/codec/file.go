// Reading and writing whole files. Reads go through mmap when the
// operating system lets us, which saves a copy on the big
// structures. A pipe or some such makes mmap fail, so there is a
// streaming fallback.

package codec

import (
	"bytes"
	"io"
	"os"

	"github.com/andrew-torda/mmtf/pkg/dict"
	"github.com/andrew-torda/mmtf/pkg/zwrap"
	"github.com/edsrzf/mmap-go"
)

// ReadFile reads one dictionary from a file. Gzip and zstd
// compressed files are recognised and unwrapped.
func ReadFile(fname string) (*dict.Dict, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	if mm, e2 := mmap.Map(fp, mmap.RDONLY, 0); e2 == nil {
		defer mm.Unmap()
		return readFrom(io.NopCloser(bytes.NewReader(mm)))
	}
	return readFrom(io.NopCloser(fp))
}

func readFrom(rc io.ReadCloser) (*dict.Dict, error) {
	rdr, err := zwrap.WrapMaybe(rc)
	if err != nil {
		return nil, err
	}
	defer rdr.Close()
	return Decode(rdr)
}

// WriteFile writes a dictionary to a file, with gzip if gz is set.
func WriteFile(fname string, d *dict.Dict, gz bool) error {
	fp, err := os.Create(fname)
	if err != nil {
		return err
	}
	zw := zwrap.WrapWriter(fp, gz)
	if err := Encode(d, zw); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}
