// 2 Apr 2024

/*
Package mmtf converts between the flat, columnar dictionary stored in
an mmtf file and the hierarchy in pkg/structure. The columnar side is
a set of parallel arrays: one entry per atom for coordinates and
friends, one per residue (group) for numbering, and count arrays
saying how many chains each model has and how many groups each chain
has. There are no parent pointers. Position is everything, so both
directions walk with a set of cursors which only ever move forward.

Decode reads the counts and the group templates and hands atom
records to a structure builder. Encode walks a hierarchy, splits it
into chain and entity records, deduplicates residue templates and
fills the arrays.

The byte level codec lives in pkg/codec. Read and Write here glue
the two together for the common case of a file on disk.
*/
package mmtf
