// One-letter sequences from residue chemistry. Only the mapping
// lives here. Which residues contribute to which entity sequence is
// the encoder's business.

package structure

// threeToOne maps the standard residue names plus the usual suspects
// that turn up in real files. Anything else is 'X'.
var threeToOne = map[string]byte{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLN": 'Q', "GLU": 'E', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
	"MSE": 'M', // selenomethionine is almost always methionine to us
	"SEC": 'U', "PYL": 'O',
	"ASX": 'B', "GLX": 'Z', "XLE": 'J',
	"UNK": 'X',
}

// OneLetter gives the amino acid code for a residue name, 'X' for
// anything it does not know.
func OneLetter(resName string) byte {
	if c, ok := threeToOne[resName]; ok {
		return c
	}
	return 'X'
}

// OneLetter on a residue.
func (r *Residue) OneLetter() byte { return OneLetter(r.Name) }

// Sequence builds the one-letter sequence of a chain's polymer part.
// Hetero residues do not appear.
func (c *Chain) Sequence() string {
	seq := make([]byte, 0, len(c.Residues))
	for _, r := range c.Residues {
		if !r.Het {
			seq = append(seq, r.OneLetter())
		}
	}
	return string(seq)
}
