package mmtf_test

import (
	"errors"
	"testing"

	"github.com/andrew-torda/mmtf/pkg/dict"
	"github.com/andrew-torda/mmtf/pkg/mmtf"
	"github.com/andrew-torda/mmtf/pkg/structure"
	"github.com/google/go-cmp/cmp"
)

// protWater is the workhorse fixture: a two residue peptide, two
// waters and a sodium ion, each kind in its own chain so the
// dictionary decodes back to the same shape it was encoded from.
// Coordinates and B-factors are picked to survive the file divisors.
func protWater() *structure.Structure {
	bld := structure.NewBuilder("1TST")
	serial := 0
	add := func(het bool, name, elem, res, chain string, num int, charge string) {
		serial++
		x := float64(serial) + 0.125
		bld.AddAtom(structure.AtomRec{
			Het: het, Serial: serial, AtomName: name, AltLoc: ' ',
			ResName: res, ChainID: chain, ResNum: num, InsCode: ' ',
			Coords:    [3]float64{x, x + 0.25, x - 0.5},
			Occupancy: 1, TempFac: 10.5, Element: elem, Charge: charge,
		})
	}
	for _, n := range []string{"N", "CA", "C", "O", "CB"} {
		e := n[:1]
		add(false, n, e, "ALA", "A", 1, "0")
	}
	for _, n := range []string{"N", "CA", "C", "O"} {
		add(false, n, n[:1], "GLY", "A", 2, "0")
	}
	add(true, "O", "O", "HOH", "B", 101, "0")
	add(true, "O", "O", "HOH", "B", 102, "0")
	add(true, "NA", "NA", "NA", "C", 201, "+1")
	return bld.Structure()
}

func TestRoundTrip(t *testing.T) {
	want := protWater()
	d, err := mmtf.Encode(want, nil, nil)
	if err != nil {
		t.Fatal("encoding:", err)
	}
	got, err := mmtf.Decode(d, nil)
	if err != nil {
		t.Fatal("decoding:", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Error("round trip changed the structure:\n", diff)
	}
}

func TestSplitting(t *testing.T) {
	d, err := mmtf.Encode(protWater(), nil, nil)
	if err != nil {
		t.Fatal("encoding:", err)
	}
	ids, _ := d.Strs(dict.FldChainIdList)
	if diff := cmp.Diff([]string{"A", "B", "C"}, ids); diff != "" {
		t.Error("chain ids:\n", diff)
	}
	gpc, _ := d.Ints(dict.FldGroupsPerChain)
	if diff := cmp.Diff([]int32{2, 2, 1}, gpc); diff != "" {
		t.Error("groups per chain:\n", diff)
	}
	cpm, _ := d.Ints(dict.FldChainsPerModel)
	if diff := cmp.Diff([]int32{3}, cpm); diff != "" {
		t.Error("chains per model:\n", diff)
	}
	ents, _ := d.Entities(dict.FldEntityList)
	if len(ents) != 3 {
		t.Fatal("want 3 entities, got", len(ents))
	}
	if ents[0].Type != dict.EntPolymer || ents[0].Sequence != "AG" {
		t.Error("polymer entity wrong:", ents[0])
	}
	for _, e := range ents[1:] {
		if e.Type != dict.EntNonPolymer || e.Sequence != "" {
			t.Error("hetero entity wrong:", e)
		}
	}
	seqNdx, _ := d.Ints(dict.FldSeqIndexList)
	if diff := cmp.Diff([]int32{0, 1, -1, -1, -1}, seqNdx); diff != "" {
		t.Error("sequence indices:\n", diff)
	}
}

// A run of same-named waters is one chain record, but the following
// differently named ligand starts a new one.
func TestHeteroMerge(t *testing.T) {
	bld := structure.NewBuilder("het")
	recs := []struct {
		name string
		num  int
	}{
		{"HOH", 1}, {"HOH", 2}, {"GOL", 3},
	}
	for i, r := range recs {
		bld.AddAtom(structure.AtomRec{Het: true, Serial: i + 1,
			AtomName: "O", AltLoc: ' ', ResName: r.name, ChainID: "W",
			ResNum: r.num, InsCode: ' ', Occupancy: 1, Element: "O",
			Charge: "0"})
	}
	d, err := mmtf.Encode(bld.Structure(), nil, nil)
	if err != nil {
		t.Fatal("encoding:", err)
	}
	if n, _ := d.Int(dict.FldNumChains); n != 2 {
		t.Error("want 2 chain records, got", n)
	}
	gpc, _ := d.Ints(dict.FldGroupsPerChain)
	if diff := cmp.Diff([]int32{2, 1}, gpc); diff != "" {
		t.Error("groups per chain:\n", diff)
	}
}

// Residues with the same name and atom set share a template. A
// residue missing an atom needs its own.
func TestTemplateSharing(t *testing.T) {
	bld := structure.NewBuilder("tmpl")
	serial := 0
	ala := func(num int, names []string) {
		for _, n := range names {
			serial++
			bld.AddAtom(structure.AtomRec{Serial: serial, AtomName: n,
				AltLoc: ' ', ResName: "ALA", ChainID: "A", ResNum: num,
				InsCode: ' ', Occupancy: 1, Element: n[:1], Charge: "0"})
		}
	}
	full := []string{"N", "CA", "C", "O", "CB"}
	ala(1, full)
	ala(2, full)
	ala(3, []string{"N", "CA", "C", "O"}) // clipped side chain
	d, err := mmtf.Encode(bld.Structure(), nil, nil)
	if err != nil {
		t.Fatal("encoding:", err)
	}
	groups, _ := d.Groups(dict.FldGroupList)
	if len(groups) != 2 {
		t.Error("want 2 templates, got", len(groups))
	}
	types, _ := d.Ints(dict.FldGroupTypeList)
	if diff := cmp.Diff([]int32{0, 0, 1}, types); diff != "" {
		t.Error("group types:\n", diff)
	}
}

// Blank alt-locs and insertion codes go to the file as nulls and come
// back as blanks. Real codes pass through untouched.
func TestSentinels(t *testing.T) {
	bld := structure.NewBuilder("sent")
	bld.AddAtom(structure.AtomRec{Serial: 1, AtomName: "CA", AltLoc: ' ',
		ResName: "GLY", ChainID: "A", ResNum: 1, InsCode: ' ',
		Occupancy: 1, Element: "C", Charge: "0"})
	bld.AddAtom(structure.AtomRec{Serial: 2, AtomName: "CA", AltLoc: ' ',
		ResName: "GLY", ChainID: "A", ResNum: 2, InsCode: 'B',
		Occupancy: 1, Element: "C", Charge: "0"})
	d, err := mmtf.Encode(bld.Structure(), nil, nil)
	if err != nil {
		t.Fatal("encoding:", err)
	}
	ins, _ := d.Chars(dict.FldInsCodeList)
	if diff := cmp.Diff([]byte{0, 'B'}, ins); diff != "" {
		t.Error("insertion codes in dictionary:\n", diff)
	}
	alts, _ := d.Chars(dict.FldAltLocList)
	if diff := cmp.Diff([]byte{0, 0}, alts); diff != "" {
		t.Error("alt locs in dictionary:\n", diff)
	}
	s, err := mmtf.Decode(d, nil)
	if err != nil {
		t.Fatal("decoding:", err)
	}
	res := s.Models[0].Chains[0].Residues
	if res[0].InsCode != ' ' || res[1].InsCode != 'B' {
		t.Error("insertion codes after decode:",
			res[0].InsCode, res[1].InsCode)
	}
	if res[0].Atoms[0].AltLoc != ' ' {
		t.Error("alt loc after decode:", res[0].Atoms[0].AltLoc)
	}
}

func disorderedSer() *structure.Structure {
	bld := structure.NewBuilder("alt")
	for i, alt := range []byte{'A', 'B'} {
		bld.AddAtom(structure.AtomRec{Serial: i + 1, AtomName: "CA",
			AltLoc: alt, ResName: "SER", ChainID: "A", ResNum: 1,
			InsCode: ' ', Occupancy: 0.5, Element: "C", Charge: "0"})
	}
	return bld.Structure()
}

func TestExpandDisordered(t *testing.T) {
	s := disorderedSer()
	d, err := mmtf.Encode(s, nil, nil)
	if err != nil {
		t.Fatal("encoding:", err)
	}
	if n, _ := d.Int(dict.FldNumAtoms); n != 1 {
		t.Error("representative only: want 1 atom, got", n)
	}
	d, err = mmtf.Encode(s, nil, &mmtf.EncodeOpts{ExpandDisordered: true})
	if err != nil {
		t.Fatal("encoding expanded:", err)
	}
	if n, _ := d.Int(dict.FldNumAtoms); n != 2 {
		t.Error("expanded: want 2 atoms, got", n)
	}
	alts, _ := d.Chars(dict.FldAltLocList)
	if diff := cmp.Diff([]byte{'A', 'B'}, alts); diff != "" {
		t.Error("expanded alt locs:\n", diff)
	}

	got, err := mmtf.Decode(d, nil)
	if err != nil {
		t.Fatal("decoding expanded:", err)
	}
	ca := got.Models[0].Chains[0].Residues[0].Atoms[0]
	if len(ca.Alts) != 1 || ca.Alts[0].AltLoc != 'B' {
		t.Error("alternates not relinked on decode")
	}

	opts := mmtf.DfltDecodeOpts()
	opts.RemoveDisorder = true
	got, err = mmtf.Decode(d, opts)
	if err != nil {
		t.Fatal("decoding without disorder:", err)
	}
	ca = got.Models[0].Chains[0].Residues[0].Atoms[0]
	if len(ca.Alts) != 0 {
		t.Error("disorder kept despite RemoveDisorder")
	}
}

func TestDecodeFilters(t *testing.T) {
	d, err := mmtf.Encode(protWater(), nil, nil)
	if err != nil {
		t.Fatal("encoding:", err)
	}
	var filterTests = []struct {
		std, het      bool
		nchain, natom int
	}{
		{true, true, 3, 12},
		{true, false, 1, 9},
		{false, true, 2, 3},
	}
	for _, x := range filterTests {
		s, err := mmtf.Decode(d, &mmtf.DecodeOpts{
			ReadStdAtoms: x.std, ReadHetAtoms: x.het})
		if err != nil {
			t.Fatal("decoding:", err)
		}
		if s.NChain() != x.nchain || s.NAtom() != x.natom {
			t.Error("filter std", x.std, "het", x.het, "gave",
				s.NChain(), "chains", s.NAtom(), "atoms, want",
				x.nchain, x.natom)
		}
	}
}

func TestEncodeSelector(t *testing.T) {
	d, err := mmtf.Encode(protWater(), []structure.Selector{structure.CalphaSel}, nil)
	if err != nil {
		t.Fatal("encoding:", err)
	}
	if n, _ := d.Int(dict.FldNumAtoms); n != 2 {
		t.Error("want the 2 c-alphas, got", n)
	}
	if n, _ := d.Int(dict.FldNumGroups); n != 5 {
		t.Error("filtering atoms should not drop groups, got", n)
	}
	groups, _ := d.Groups(dict.FldGroupList)
	for _, g := range groups {
		switch g.Name {
		case "ALA", "GLY":
			if len(g.AtomNames) != 1 || g.AtomNames[0] != "CA" {
				t.Error(g.Name, "template holds more than the c-alpha:",
					g.AtomNames)
			}
		default: // the hetero groups lose all their atoms
			if len(g.AtomNames) != 0 {
				t.Error(g.Name, "template should be empty:", g.AtomNames)
			}
		}
	}
}

// alaDict is a dictionary written out longhand, the way another
// program might produce it.
func alaDict() *dict.Dict {
	d := dict.New()
	d.Set(dict.FldStructureId, dict.Str("1ALA"))
	d.Set(dict.FldNumModels, dict.Int(1))
	d.Set(dict.FldNumChains, dict.Int(1))
	d.Set(dict.FldNumGroups, dict.Int(1))
	d.Set(dict.FldNumAtoms, dict.Int(3))
	d.Set(dict.FldChainsPerModel, dict.Ints([]int32{1}))
	d.Set(dict.FldGroupsPerChain, dict.Ints([]int32{1}))
	d.Set(dict.FldChainIdList, dict.Strs([]string{"A"}))
	d.Set(dict.FldEntityList, dict.Entities([]dict.Entity{
		{ChainIndices: []int32{0}, Sequence: "A", Type: dict.EntPolymer},
	}))
	d.Set(dict.FldGroupList, dict.Groups([]dict.GroupType{{
		Name:      "ALA",
		AtomNames: []string{"N", "CA", "C"},
		Elements:  []string{"N", "C", "C"},
		Charges:   []int32{0, 0, 0},
	}}))
	d.Set(dict.FldGroupTypeList, dict.Ints([]int32{0}))
	d.Set(dict.FldGroupIdList, dict.Ints([]int32{10}))
	d.Set(dict.FldInsCodeList, dict.Chars([]byte{0}))
	d.Set(dict.FldAtomIdList, dict.Ints([]int32{1, 2, 3}))
	d.Set(dict.FldAltLocList, dict.Chars([]byte{0, 0, 0}))
	d.Set(dict.FldBFactorList, dict.Floats([]float32{10, 11, 12}))
	d.Set(dict.FldOccupancyList, dict.Floats([]float32{1, 1, 1}))
	d.Set(dict.FldXCoordList, dict.Floats([]float32{1, 2, 3}))
	d.Set(dict.FldYCoordList, dict.Floats([]float32{4, 5, 6}))
	d.Set(dict.FldZCoordList, dict.Floats([]float32{7, 8, 9}))
	return d
}

func TestDecodeByHand(t *testing.T) {
	s, err := mmtf.Decode(alaDict(), nil)
	if err != nil {
		t.Fatal("decoding:", err)
	}
	if s.Name != "1ALA" {
		t.Error("name:", s.Name)
	}
	if s.NModel() != 1 || s.NChain() != 1 || s.NResidue() != 1 || s.NAtom() != 3 {
		t.Fatal("counts:", s.NModel(), s.NChain(), s.NResidue(), s.NAtom())
	}
	r := s.Models[0].Chains[0].Residues[0]
	if r.Name != "ALA" || r.Num != 10 || r.InsCode != ' ' || r.Het {
		t.Error("residue:", r)
	}
	a := r.Atoms[1]
	if a.Name != "CA" || a.Serial != 2 || a.Element != "C" ||
		a.Charge != "0" || a.AltLoc != ' ' {
		t.Error("atom:", a)
	}
	want := [3]float64{2, 5, 8}
	if a.Coords != want {
		t.Error("coords:", a.Coords)
	}
	if a.TempFac != 11 || a.Occupancy != 1 {
		t.Error("b-factor or occupancy:", a.TempFac, a.Occupancy)
	}
}

func TestDecodeErrors(t *testing.T) {
	d := alaDict()
	d.Set(dict.FldGroupTypeList, dict.Ints([]int32{5}))
	var ie *dict.IndexError
	if _, err := mmtf.Decode(d, nil); !errors.As(err, &ie) {
		t.Error("dangling template reference, got", err)
	}

	d = alaDict()
	d.Set(dict.FldAtomIdList, dict.Ints([]int32{1, 2}))
	var le *dict.LengthError
	if _, err := mmtf.Decode(d, nil); !errors.As(err, &le) {
		t.Error("short atom list, got", err)
	}

	d = dict.New()
	d.Set(dict.FldStructureId, dict.Str("x"))
	var me *dict.MissingFieldError
	if _, err := mmtf.Decode(d, nil); !errors.As(err, &me) {
		t.Error("empty dictionary, got", err)
	}
}

func TestReadWrite(t *testing.T) {
	want := protWater()
	for _, gz := range []bool{false, true} {
		fname := t.TempDir() + "/s.mmtf"
		if err := mmtf.Write(fname, want, gz); err != nil {
			t.Fatal("writing gz", gz, err)
		}
		got, err := mmtf.Read(fname, nil)
		if err != nil {
			t.Fatal("reading gz", gz, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Error("file round trip gz", gz, "changed the structure:\n", diff)
		}
	}
}
