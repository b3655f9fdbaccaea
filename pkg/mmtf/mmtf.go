// The file-level entry points. These just glue pkg/codec and the
// transforms together for the common case.

package mmtf

import (
	"github.com/andrew-torda/mmtf/pkg/codec"
	"github.com/andrew-torda/mmtf/pkg/dict"
	"github.com/andrew-torda/mmtf/pkg/structure"
)

// Read reads one structure from a file. Compressed files are
// handled. A nil opts keeps all atoms.
func Read(fname string, opts *DecodeOpts) (*structure.Structure, error) {
	d, err := codec.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return Decode(d, opts)
}

// Write writes a structure to a file, gzipped if gz is set. Atoms
// must pass every selector in sels; none means write everything.
func Write(fname string, s *structure.Structure, gz bool,
	sels ...structure.Selector) error {
	d, err := Encode(s, sels, nil)
	if err != nil {
		return err
	}
	return codec.WriteFile(fname, d, gz)
}

// ReadDict and WriteDict are for callers who want the columnar view
// without the hierarchy.
func ReadDict(fname string) (*dict.Dict, error) { return codec.ReadFile(fname) }

func WriteDict(fname string, d *dict.Dict, gz bool) error {
	return codec.WriteFile(fname, d, gz)
}
