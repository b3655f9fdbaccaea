// Selectors pick atoms out of a hierarchy. The encoder takes a slice
// of them and an atom must pass every one.

package structure

type Selector func(*Atom) bool

// CalphaSel keeps the polymer backbone alpha carbons.
func CalphaSel(a *Atom) bool { return a.Name == "CA" && !a.Het }

// HeavySel drops hydrogen and deuterium.
func HeavySel(a *Atom) bool { return a.Element != "H" && a.Element != "D" }

// StdSel keeps atoms of polymer residues.
func StdSel(a *Atom) bool { return !a.Het }

// HetSel keeps hetero atoms, the complement of StdSel.
func HetSel(a *Atom) bool { return a.Het }

// Selected says whether an atom passes every selector in sels. An
// empty slice passes everything.
func Selected(a *Atom, sels []Selector) bool {
	for _, sel := range sels {
		if !sel(a) {
			return false
		}
	}
	return true
}
