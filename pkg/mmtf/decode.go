// Decoding: columnar dictionary to hierarchy. One pass, four
// cursors. Array lengths are checked once against the scalar counts
// before the walk, so the walk itself does not have to look.

package mmtf

import (
	"github.com/andrew-torda/mmtf/pkg/cmmn"
	"github.com/andrew-torda/mmtf/pkg/dict"
	"github.com/andrew-torda/mmtf/pkg/structure"
)

// DecodeOpts says which atoms to keep. The zero value keeps nothing,
// so use DfltDecodeOpts unless you mean it.
type DecodeOpts struct {
	RemoveDisorder bool // keep only the representative alt locations
	ReadStdAtoms   bool // keep polymer atoms
	ReadHetAtoms   bool // keep hetero atoms (waters, ligands, ions)
}

// DfltDecodeOpts keeps everything.
func DfltDecodeOpts() *DecodeOpts {
	return &DecodeOpts{ReadStdAtoms: true, ReadHetAtoms: true}
}

// blankIf turns the file's null sentinel into the blank the
// hierarchy uses for an absent alt-loc or insertion code.
func blankIf(b byte) byte {
	if b == cmmn.AbsentChar {
		return cmmn.BlankChar
	}
	return b
}

// decIn is every dictionary field the decoder consumes, fetched and
// length-checked up front.
type decIn struct {
	name           string
	numModels      int
	numChains      int
	numGroups      int
	numAtoms       int
	chainsPerModel []int32
	groupsPerChain []int32
	chainIds       []string
	entities       []dict.Entity
	groups         []dict.GroupType
	groupTypes     []int32
	groupIds       []int32
	insCodes       []byte
	atomIds        []int32
	altLocs        []byte
	bFac, occ      []float32
	x, y, z        []float32
}

func gather(d *dict.Dict) (*decIn, error) {
	var in decIn
	var err error
	if in.name, err = d.Str(dict.FldStructureId); err != nil {
		return nil, err
	}
	counts := []struct {
		fld string
		dst *int
	}{
		{dict.FldNumModels, &in.numModels},
		{dict.FldNumChains, &in.numChains},
		{dict.FldNumGroups, &in.numGroups},
		{dict.FldNumAtoms, &in.numAtoms},
	}
	for _, c := range counts {
		n, err := d.Int(c.fld)
		if err != nil {
			return nil, err
		}
		*c.dst = int(n)
	}
	intFlds := []struct {
		fld string
		dst *[]int32
		n   int
	}{
		{dict.FldChainsPerModel, &in.chainsPerModel, in.numModels},
		{dict.FldGroupsPerChain, &in.groupsPerChain, in.numChains},
		{dict.FldGroupTypeList, &in.groupTypes, in.numGroups},
		{dict.FldGroupIdList, &in.groupIds, in.numGroups},
		{dict.FldAtomIdList, &in.atomIds, in.numAtoms},
	}
	for _, f := range intFlds {
		if *f.dst, err = d.Ints(f.fld); err != nil {
			return nil, err
		}
		if len(*f.dst) != f.n {
			return nil, &dict.LengthError{Field: f.fld, Want: f.n, Got: len(*f.dst)}
		}
	}
	fltFlds := []struct {
		fld string
		dst *[]float32
	}{
		{dict.FldBFactorList, &in.bFac},
		{dict.FldOccupancyList, &in.occ},
		{dict.FldXCoordList, &in.x},
		{dict.FldYCoordList, &in.y},
		{dict.FldZCoordList, &in.z},
	}
	for _, f := range fltFlds {
		if *f.dst, err = d.Floats(f.fld); err != nil {
			return nil, err
		}
		if len(*f.dst) != in.numAtoms {
			return nil, &dict.LengthError{Field: f.fld, Want: in.numAtoms, Got: len(*f.dst)}
		}
	}
	if in.insCodes, err = d.Chars(dict.FldInsCodeList); err != nil {
		return nil, err
	}
	if len(in.insCodes) != in.numGroups {
		return nil, &dict.LengthError{Field: dict.FldInsCodeList,
			Want: in.numGroups, Got: len(in.insCodes)}
	}
	if in.altLocs, err = d.Chars(dict.FldAltLocList); err != nil {
		return nil, err
	}
	if len(in.altLocs) != in.numAtoms {
		return nil, &dict.LengthError{Field: dict.FldAltLocList,
			Want: in.numAtoms, Got: len(in.altLocs)}
	}
	if in.chainIds, err = d.Strs(dict.FldChainIdList); err != nil {
		return nil, err
	}
	if len(in.chainIds) != in.numChains {
		return nil, &dict.LengthError{Field: dict.FldChainIdList,
			Want: in.numChains, Got: len(in.chainIds)}
	}
	if in.entities, err = d.Entities(dict.FldEntityList); err != nil {
		return nil, err
	}
	if in.groups, err = d.Groups(dict.FldGroupList); err != nil {
		return nil, err
	}
	return &in, nil
}

// hetChains works out which chains are hetero. Everything is hetero
// until a polymer entity claims it.
func hetChains(in *decIn) ([]bool, error) {
	het := make([]bool, in.numChains)
	for i := range het {
		het[i] = true
	}
	for _, e := range in.entities {
		if e.Type != dict.EntPolymer {
			continue
		}
		for _, ci := range e.ChainIndices {
			if ci < 0 || int(ci) >= in.numChains {
				return nil, &dict.IndexError{Field: dict.FldEntityList,
					Index: int(ci), Len: in.numChains}
			}
			het[ci] = false
		}
	}
	return het, nil
}

// Decode builds a hierarchy from a columnar dictionary. On any error
// the partial hierarchy is garbage and must be discarded.
func Decode(d *dict.Dict, opts *DecodeOpts) (*structure.Structure, error) {
	if opts == nil {
		opts = DfltDecodeOpts()
	}
	in, err := gather(d)
	if err != nil {
		return nil, err
	}
	het, err := hetChains(in)
	if err != nil {
		return nil, err
	}

	bld := structure.NewBuilder(in.name)
	chain, group, atom := 0, 0, 0
	for m := 0; m < in.numModels; m++ {
		bld.BeginModel(m + 1)
		for c := int32(0); c < in.chainsPerModel[m]; c++ {
			if chain >= in.numChains {
				return nil, &dict.LengthError{Field: dict.FldChainsPerModel,
					Want: in.numChains, Got: chain + 1}
			}
			chainId := in.chainIds[chain]
			chainHet := het[chain]
			for g := int32(0); g < in.groupsPerChain[chain]; g++ {
				if group >= in.numGroups {
					return nil, &dict.LengthError{Field: dict.FldGroupsPerChain,
						Want: in.numGroups, Got: group + 1}
				}
				t := int(in.groupTypes[group])
				if t < 0 || t >= len(in.groups) {
					return nil, &dict.IndexError{Field: dict.FldGroupTypeList,
						Index: t, Len: len(in.groups)}
				}
				tmpl := &in.groups[t]
				if len(tmpl.Elements) != tmpl.NAtom() ||
					len(tmpl.Charges) != tmpl.NAtom() {
					return nil, &dict.LengthError{Field: dict.FldGroupList,
						Want: tmpl.NAtom(), Got: len(tmpl.Elements)}
				}
				if atom, err = decGroup(bld, in, opts, tmpl,
					chainId, chainHet, group, atom); err != nil {
					return nil, err
				}
				group++
			}
			chain++
		}
	}
	if atom != in.numAtoms {
		return nil, &dict.LengthError{Field: dict.FldNumAtoms,
			Want: in.numAtoms, Got: atom}
	}

	s := bld.Structure()
	if opts.RemoveDisorder {
		s.RemoveDisorder()
	}
	return s, nil
}

// decGroup consumes one group's worth of the per-atom arrays and
// returns the advanced atom cursor.
func decGroup(bld *structure.Builder, in *decIn, opts *DecodeOpts,
	tmpl *dict.GroupType, chainId string, het bool, group, atom int) (int, error) {
	resNum := int(in.groupIds[group])
	insCode := blankIf(in.insCodes[group])
	for i, atName := range tmpl.AtomNames {
		if atom >= in.numAtoms {
			return 0, &dict.LengthError{Field: dict.FldAtomIdList,
				Want: in.numAtoms, Got: atom + 1}
		}
		keep := (het && opts.ReadHetAtoms) || (!het && opts.ReadStdAtoms)
		if keep {
			bld.AddAtom(structure.AtomRec{
				Het:      het,
				Serial:   int(in.atomIds[atom]),
				AtomName: atName,
				AltLoc:   blankIf(in.altLocs[atom]),
				ResName:  tmpl.Name,
				ChainID:  chainId,
				ResNum:   resNum,
				InsCode:  insCode,
				Coords: [3]float64{float64(in.x[atom]),
					float64(in.y[atom]), float64(in.z[atom])},
				Occupancy: float64(in.occ[atom]),
				TempFac:   float64(in.bFac[atom]),
				Element:   tmpl.Elements[i],
				Charge:    renderCharge(tmpl.Charges[i]),
			})
		}
		atom++
	}
	return atom, nil
}
