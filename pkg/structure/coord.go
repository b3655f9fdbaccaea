// Getting coordinates out as a matrix, for callers who want to do
// superpositions or other numeric work on a selection.

package structure

import (
	"github.com/andrew-torda/matrix"
)

// CoordMatrix returns an n x 3 matrix of the coordinates of atoms
// which pass sels, over all models, in hierarchy order. Alternate
// locations are not included.
func (s *Structure) CoordMatrix(sels ...Selector) *matrix.FMatrix2d {
	n := 0
	for _, m := range s.Models {
		for _, c := range m.Chains {
			for _, r := range c.Residues {
				for _, a := range r.Atoms {
					if Selected(a, sels) {
						n++
					}
				}
			}
		}
	}
	mat := matrix.NewFMatrix2d(n, 3)
	i := 0
	for _, m := range s.Models {
		for _, c := range m.Chains {
			for _, r := range c.Residues {
				for _, a := range r.Atoms {
					if !Selected(a, sels) {
						continue
					}
					mat.Mat[i][0] = float32(a.Coords[0])
					mat.Mat[i][1] = float32(a.Coords[1])
					mat.Mat[i][2] = float32(a.Coords[2])
					i++
				}
			}
		}
	}
	return mat
}
