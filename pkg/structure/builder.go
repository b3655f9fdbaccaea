// The builder works in two phases. The first phase appends atom
// records without checking any ordering or duplicate invariants, so
// a decoder can push records as fast as it reads them. Structure()
// then does one fixup pass: sorting, linking alternate locations,
// flagging disordered residues. Nothing half-built ever escapes, so
// the unchecked appends stay private to this type.

package structure

import (
	"sort"
)

// AtomRec is the flat record an atom arrives as. This is the
// ingestion contract between a file reader and the hierarchy.
type AtomRec struct {
	Het       bool
	Serial    int
	AtomName  string
	AltLoc    byte // blank when absent
	ResName   string
	ChainID   string
	ResNum    int
	InsCode   byte // blank when absent
	Coords    [3]float64
	Occupancy float64
	TempFac   float64
	Element   string
	Charge    string
}

type Builder struct {
	s        *Structure
	curModel *Model
	chains   map[string]*Chain // chains of the current model, by id
	curChain *Chain
	curRes   *Residue
}

func NewBuilder(name string) *Builder {
	return &Builder{s: &Structure{Name: name}}
}

// BeginModel opens a model. Every AddAtom call goes to the most
// recently opened model.
func (b *Builder) BeginModel(num int) {
	b.curModel = &Model{Num: num}
	b.s.Models = append(b.s.Models, b.curModel)
	b.chains = make(map[string]*Chain)
	b.curChain = nil
	b.curRes = nil
}

// AddAtom appends one atom record. Consecutive records for the same
// residue land in the same Residue; a chain id seen before in this
// model reopens that chain. No validation happens here.
func (b *Builder) AddAtom(rec AtomRec) {
	if b.curModel == nil {
		b.BeginModel(1)
	}
	if b.curChain == nil || b.curChain.ID != rec.ChainID {
		if c, ok := b.chains[rec.ChainID]; ok {
			b.curChain = c
		} else {
			b.curChain = &Chain{ID: rec.ChainID}
			b.chains[rec.ChainID] = b.curChain
			b.curModel.Chains = append(b.curModel.Chains, b.curChain)
		}
		b.curRes = nil
	}
	if b.curRes == nil || b.curRes.Name != rec.ResName ||
		b.curRes.Num != rec.ResNum || b.curRes.InsCode != rec.InsCode {
		b.curRes = &Residue{
			Name:    rec.ResName,
			Num:     rec.ResNum,
			InsCode: rec.InsCode,
			Het:     rec.Het,
		}
		b.curChain.Residues = append(b.curChain.Residues, b.curRes)
	}
	b.curRes.Atoms = append(b.curRes.Atoms, &Atom{
		Serial:    rec.Serial,
		Name:      rec.AtomName,
		AltLoc:    rec.AltLoc,
		Coords:    rec.Coords,
		Occupancy: rec.Occupancy,
		TempFac:   rec.TempFac,
		Element:   rec.Element,
		Charge:    rec.Charge,
		Het:       rec.Het,
	})
}

// Structure finishes the build. After this the builder should be
// thrown away.
func (b *Builder) Structure() *Structure {
	s := b.s
	sort.SliceStable(s.Models, func(i, j int) bool {
		return s.Models[i].Num < s.Models[j].Num
	})
	for _, m := range s.Models {
		sort.SliceStable(m.Chains, func(i, j int) bool {
			return chainLess(m.Chains[i].ID, m.Chains[j].ID)
		})
		for _, c := range m.Chains {
			finishChain(c)
		}
	}
	b.s = nil
	return s
}

// chainLess orders chain ids the way structure files expect: shorter
// ids first, then byte order, so "A" < "Z" < "AA".
func chainLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func finishChain(c *Chain) {
	sort.SliceStable(c.Residues, func(i, j int) bool {
		ri, rj := c.Residues[i], c.Residues[j]
		if ri.Num != rj.Num {
			return ri.Num < rj.Num
		}
		if ri.InsCode != rj.InsCode {
			return ri.InsCode < rj.InsCode
		}
		return ri.Name < rj.Name
	})
	for i, r := range c.Residues {
		if i > 0 && samePos(c.Residues[i-1], r) {
			c.Residues[i-1].Disordered = true
			r.Disordered = true
		}
		finishResidue(r)
	}
}

func samePos(a, b *Residue) bool {
	return a.Num == b.Num && a.InsCode == b.InsCode
}

// finishResidue sorts atoms by serial and folds alternate locations
// of the same atom name into the first copy.
func finishResidue(r *Residue) {
	sort.SliceStable(r.Atoms, func(i, j int) bool {
		return r.Atoms[i].Serial < r.Atoms[j].Serial
	})
	byName := make(map[string]*Atom, len(r.Atoms))
	kept := r.Atoms[:0]
	for _, a := range r.Atoms {
		if first, ok := byName[a.Name]; ok && a.AltLoc != first.AltLoc {
			first.Alts = append(first.Alts, a)
			continue
		}
		byName[a.Name] = a
		kept = append(kept, a)
	}
	r.Atoms = kept
	for _, a := range r.Atoms {
		sort.SliceStable(a.Alts, func(i, j int) bool {
			return a.Alts[i].AltLoc < a.Alts[j].AltLoc
		})
	}
}
