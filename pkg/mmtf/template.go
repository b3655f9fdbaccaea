// The group template table. Two residues share a template exactly
// when their name and their ordered atom name list match. Lookup is
// hashed on the compound key; a linear scan would do the same job in
// O(n) per residue, which hurts on a ribosome.

package mmtf

import (
	"strings"

	"github.com/andrew-torda/mmtf/pkg/dict"
	"github.com/andrew-torda/mmtf/pkg/structure"
)

type templateTable struct {
	ndx  map[string]int32
	list []dict.GroupType
}

func newTemplateTable() templateTable {
	return templateTable{ndx: make(map[string]int32)}
}

// resolve finds or creates the template for a residue with the given
// atoms (already filtered by the encoder's selectors). The template
// is built from exactly those atoms, so a selector that hides atoms
// at creation time bakes the reduced atom list into the template.
func (tt *templateTable) resolve(r *structure.Residue,
	atoms []*structure.Atom) (int32, error) {
	var sb strings.Builder
	sb.WriteString(r.Name)
	for _, a := range atoms {
		sb.WriteByte(0)
		sb.WriteString(a.Name)
	}
	key := sb.String()
	if i, ok := tt.ndx[key]; ok {
		return i, nil
	}

	g := dict.GroupType{Name: r.Name}
	for _, a := range atoms {
		c, err := parseCharge(a.Charge)
		if err != nil {
			return 0, err
		}
		g.AtomNames = append(g.AtomNames, a.Name)
		g.Elements = append(g.Elements, a.Element)
		g.Charges = append(g.Charges, c)
	}
	i := int32(len(tt.list))
	tt.list = append(tt.list, g)
	tt.ndx[key] = i
	return i, nil
}
