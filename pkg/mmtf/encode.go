// Encoding: hierarchy to columnar dictionary. The arrays grow by
// appending during one ordered walk and the dictionary is assembled
// at the end, after which it is never touched again.

package mmtf

import (
	"github.com/andrew-torda/mmtf/pkg/cmmn"
	"github.com/andrew-torda/mmtf/pkg/dict"
	"github.com/andrew-torda/mmtf/pkg/structure"
)

const (
	mmtfVersion  = "1.0.0"
	mmtfProducer = "github.com/andrew-torda/mmtf"
)

// EncodeOpts holds the encoding choices.
type EncodeOpts struct {
	// ExpandDisordered writes every alternate location copy of
	// disordered atoms and residues, instead of the representative.
	ExpandDisordered bool
}

// nullIf is blankIf's inverse: the hierarchy's blank becomes the
// file's null sentinel.
func nullIf(b byte) byte {
	if b == cmmn.BlankChar {
		return cmmn.AbsentChar
	}
	return b
}

type encoder struct {
	sels   []structure.Selector
	expand bool
	tt     templateTable
	sp     splitter

	chainsPerModel []int32
	groupsPerChain []int32
	chainIds       []string
	chainNames     []string
	entities       []dict.Entity

	groupTypes []int32
	groupIds   []int32
	insCodes   []byte
	secStruct  []int32
	seqIdx     []int32

	atomIds []int32
	altLocs []byte
	bFac    []float32
	occ     []float32
	x, y, z []float32
}

// Encode flattens a hierarchy into a columnar dictionary. Atoms must
// pass every selector in sels to be written. On error the partly
// built dictionary is discarded.
func Encode(s *structure.Structure, sels []structure.Selector,
	opts *EncodeOpts) (*dict.Dict, error) {
	if opts == nil {
		opts = &EncodeOpts{}
	}
	enc := &encoder{sels: sels, expand: opts.ExpandDisordered,
		tt: newTemplateTable()}

	for _, m := range s.Models {
		chainsBefore := len(enc.chainIds)
		for _, c := range m.Chains {
			for _, r := range residuesOf(c, enc.expand) {
				if err := enc.residue(c, r); err != nil {
					return nil, err
				}
			}
		}
		enc.sp.closeOut(enc)
		enc.chainsPerModel = append(enc.chainsPerModel,
			int32(len(enc.chainIds)-chainsBefore))
	}
	return enc.dict(s.Name), nil
}

// residuesOf gives the residues to write for a chain. Without
// expansion, later copies of a disordered residue position are
// dropped and only the representative goes out.
func residuesOf(c *structure.Chain, expand bool) []*structure.Residue {
	if expand {
		return c.Residues
	}
	out := make([]*structure.Residue, 0, len(c.Residues))
	var prev *structure.Residue
	for _, r := range c.Residues {
		if prev != nil && prev.Num == r.Num && prev.InsCode == r.InsCode {
			continue
		}
		out = append(out, r)
		prev = r
	}
	return out
}

// atomsOf gives the atoms to write for a residue, selector-filtered,
// with alternate locations included when expanding.
func (enc *encoder) atomsOf(r *structure.Residue) []*structure.Atom {
	out := make([]*structure.Atom, 0, len(r.Atoms))
	for _, a := range r.Atoms {
		if structure.Selected(a, enc.sels) {
			out = append(out, a)
		}
		if !enc.expand {
			continue
		}
		for _, alt := range a.Alts {
			if structure.Selected(alt, enc.sels) {
				out = append(out, alt)
			}
		}
	}
	return out
}

// residue writes one residue: maybe a record boundary first, then
// the per-group entries, then the per-atom entries.
func (enc *encoder) residue(c *structure.Chain, r *structure.Residue) error {
	if enc.sp.boundary(r) {
		enc.sp.closeOut(enc)
		enc.sp.start(enc, c, r)
	}

	atoms := enc.atomsOf(r)
	ti, err := enc.tt.resolve(r, atoms)
	if err != nil {
		return err
	}
	enc.groupTypes = append(enc.groupTypes, ti)
	enc.groupIds = append(enc.groupIds, int32(r.Num))
	enc.insCodes = append(enc.insCodes, nullIf(r.InsCode))
	enc.secStruct = append(enc.secStruct, -1) // not assigned here
	if r.Het {
		enc.seqIdx = append(enc.seqIdx, -1)
	} else {
		enc.seqIdx = append(enc.seqIdx, int32(len(enc.sp.seq)))
		enc.sp.seq = append(enc.sp.seq, r.OneLetter())
	}
	enc.sp.groups++

	for _, a := range atoms {
		enc.atomIds = append(enc.atomIds, int32(a.Serial))
		enc.altLocs = append(enc.altLocs, nullIf(a.AltLoc))
		enc.bFac = append(enc.bFac, float32(a.TempFac))
		enc.occ = append(enc.occ, float32(a.Occupancy))
		enc.x = append(enc.x, float32(a.Coords[0]))
		enc.y = append(enc.y, float32(a.Coords[1]))
		enc.z = append(enc.z, float32(a.Coords[2]))
	}

	enc.sp.prevHet, enc.sp.prevName = r.Het, r.Name
	return nil
}

// dict packs the accumulated arrays into the dictionary. Field order
// here fixes the order in the file.
func (enc *encoder) dict(name string) *dict.Dict {
	d := dict.New()
	d.Set(dict.FldMmtfVersion, dict.Str(mmtfVersion))
	d.Set(dict.FldMmtfProducer, dict.Str(mmtfProducer))
	d.Set(dict.FldStructureId, dict.Str(name))
	d.Set(dict.FldNumModels, dict.Int(int64(len(enc.chainsPerModel))))
	d.Set(dict.FldNumChains, dict.Int(int64(len(enc.chainIds))))
	d.Set(dict.FldNumGroups, dict.Int(int64(len(enc.groupTypes))))
	d.Set(dict.FldNumAtoms, dict.Int(int64(len(enc.atomIds))))
	d.Set(dict.FldChainsPerModel, dict.Ints(enc.chainsPerModel))
	d.Set(dict.FldGroupsPerChain, dict.Ints(enc.groupsPerChain))
	d.Set(dict.FldChainIdList, dict.Strs(enc.chainIds))
	d.Set(dict.FldChainNameList, dict.Strs(enc.chainNames))
	d.Set(dict.FldEntityList, dict.Entities(enc.entities))
	d.Set(dict.FldGroupList, dict.Groups(enc.tt.list))
	d.Set(dict.FldGroupTypeList, dict.Ints(enc.groupTypes))
	d.Set(dict.FldGroupIdList, dict.Ints(enc.groupIds))
	d.Set(dict.FldInsCodeList, dict.Chars(enc.insCodes))
	d.Set(dict.FldSecStructList, dict.Ints(enc.secStruct))
	d.Set(dict.FldSeqIndexList, dict.Ints(enc.seqIdx))
	d.Set(dict.FldAtomIdList, dict.Ints(enc.atomIds))
	d.Set(dict.FldAltLocList, dict.Chars(enc.altLocs))
	d.Set(dict.FldBFactorList, dict.Floats(enc.bFac))
	d.Set(dict.FldOccupancyList, dict.Floats(enc.occ))
	d.Set(dict.FldXCoordList, dict.Floats(enc.x))
	d.Set(dict.FldYCoordList, dict.Floats(enc.y))
	d.Set(dict.FldZCoordList, dict.Floats(enc.z))
	return d
}
