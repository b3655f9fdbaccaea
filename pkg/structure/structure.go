// 18 Mar 2024

// Package structure is the hierarchical model of a macromolecule.
// A Structure owns models, a model owns chains, a chain owns
// residues, a residue owns atoms. Ownership only points down the
// tree. The flat, columnar view lives in pkg/dict and the two are
// converted by pkg/mmtf.
package structure

// Atom is one observed atom. If the atom is disordered, the copy
// held in the residue is the representative one and the other
// locations hang off Alts, sorted by alt-loc code.
type Atom struct {
	Serial    int
	Name      string  // "CA", "OXT", ...
	AltLoc    byte    // blank when there is only one location
	Coords    [3]float64
	Occupancy float64
	TempFac   float64
	Element   string
	Charge    string // rendered, "+2", "0", "-1"
	Het       bool   // copied from the owning residue for the selectors
	Alts      []*Atom
}

// Residue is one residue or other monomer unit. Its key within a
// chain is name + number + insertion code. Disordered is set when
// another residue in the chain shares number and insertion code, the
// point-mutation kind of disorder.
type Residue struct {
	Name       string
	Num        int
	InsCode    byte // blank when absent
	Het        bool
	Disordered bool
	Atoms      []*Atom
}

type Chain struct {
	ID       string
	Residues []*Residue
}

type Model struct {
	Num    int
	Chains []*Chain
}

type Structure struct {
	Name   string
	Models []*Model
}

// Chain looks a chain up by id. nil if there is no such chain.
func (m *Model) Chain(id string) *Chain {
	for _, c := range m.Chains {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (s *Structure) NModel() int { return len(s.Models) }

func (s *Structure) NChain() (n int) {
	for _, m := range s.Models {
		n += len(m.Chains)
	}
	return
}

func (s *Structure) NResidue() (n int) {
	for _, m := range s.Models {
		for _, c := range m.Chains {
			n += len(c.Residues)
		}
	}
	return
}

// NAtom counts atoms. Alternate locations are not counted, only the
// representative copy of each atom.
func (s *Structure) NAtom() (n int) {
	for _, m := range s.Models {
		for _, c := range m.Chains {
			for _, r := range c.Residues {
				n += len(r.Atoms)
			}
		}
	}
	return
}

// Disordered says whether any atom in the residue has alternate
// locations, or the residue itself is one of several at a position.
func (r *Residue) IsDisordered() bool {
	if r.Disordered {
		return true
	}
	for _, a := range r.Atoms {
		if len(a.Alts) > 0 {
			return true
		}
	}
	return false
}

// RemoveDisorder throws away everything except the representative
// copies: alternate atom locations are dropped and residues which
// were not first at their position are deleted.
func (s *Structure) RemoveDisorder() {
	for _, m := range s.Models {
		for _, c := range m.Chains {
			kept := c.Residues[:0]
			var prev *Residue
			for _, r := range c.Residues {
				if prev != nil && prev.Num == r.Num && prev.InsCode == r.InsCode {
					continue // a later copy of a disordered residue
				}
				for _, a := range r.Atoms {
					a.Alts = nil
				}
				r.Disordered = false
				kept = append(kept, r)
				prev = r
			}
			c.Residues = kept
		}
	}
}
