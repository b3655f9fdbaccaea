// The entity/chain splitter. The encoder feeds it residues in
// order; it decides when a new chain and entity record begin. It is
// a two state machine: no open record, or an open record carrying
// the accumulated group count and sequence. The entity is created
// with an empty sequence and patched when its record closes.

package mmtf

import (
	"github.com/andrew-torda/mmtf/pkg/dict"
	"github.com/andrew-torda/mmtf/pkg/structure"
)

type splitter struct {
	open     bool
	prevHet  bool
	prevName string
	groups   int32  // groups accumulated in the open record
	seq      []byte // polymer sequence accumulated in the open record
	entNdx   int    // which entity gets the sequence on close
}

// boundary says whether r starts a new chain/entity record. A run of
// polymer residues always merges; hetero residues merge only while
// the name stays the same, so a string of waters is one record but a
// water followed by a ligand is two.
func (sp *splitter) boundary(r *structure.Residue) bool {
	if !sp.open {
		return true
	}
	if r.Het != sp.prevHet {
		return true
	}
	return sp.prevHet && r.Name != sp.prevName
}

// start opens a record: generate a chain id, remember the source
// chain's id, and create the entity pointing back at this chain.
func (sp *splitter) start(enc *encoder, c *structure.Chain, r *structure.Residue) {
	n := len(enc.chainIds) + 1
	enc.chainIds = append(enc.chainIds, chainIDFor(n))
	enc.chainNames = append(enc.chainNames, c.ID)
	typ := dict.EntPolymer
	if r.Het {
		typ = dict.EntNonPolymer
	}
	enc.entities = append(enc.entities, dict.Entity{
		ChainIndices: []int32{int32(n - 1)},
		Type:         typ,
	})
	sp.open = true
	sp.entNdx = len(enc.entities) - 1
	sp.groups = 0
	sp.seq = sp.seq[:0]
}

// closeOut pushes the pending counts and sequence. Harmless when no
// record is open, which makes an empty model cheap to finish.
func (sp *splitter) closeOut(enc *encoder) {
	if !sp.open {
		return
	}
	enc.groupsPerChain = append(enc.groupsPerChain, sp.groups)
	enc.entities[sp.entNdx].Sequence = string(sp.seq)
	sp.open = false
}

// chainIDFor maps the 1-based running chain index to a letter,
// 1 -> "A" up to 26 -> "Z". Past that the offset walks out of the
// alphabet; structures with more than 26 chain records will get odd
// ids rather than an error.
func chainIDFor(i int) string {
	return string([]byte{byte('A' + i - 1)})
}
