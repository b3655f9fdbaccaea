// 14 Mar 2024

// Package dict holds the columnar dictionary that an mmtf file
// decodes to. It is a mapping from field name to a value, where a
// value may be a scalar, an array of scalars or an array of records
// (group templates or entities).
// Values are dynamically typed in the file, but we do not want
// reflection or interface{} spread through the decoder. There is one
// closed value type with a kind tag and typed accessors which fail
// loudly if you ask for the wrong kind.
package dict

// Kind says what a Value is holding.
type Kind uint8

const (
	KindNone Kind = iota
	KindInt
	KindFloat
	KindStr
	KindInts
	KindFloats
	KindStrs
	KindChars
	KindGroups
	KindEntities
)

var kindNames = map[Kind]string{
	KindNone:     "none",
	KindInt:      "int",
	KindFloat:    "float",
	KindStr:      "string",
	KindInts:     "int array",
	KindFloats:   "float array",
	KindStrs:     "string array",
	KindChars:    "char array",
	KindGroups:   "group array",
	KindEntities: "entity array",
}

func (k Kind) String() string { return kindNames[k] }

// A GroupType is one deduplicated residue template. Every residue of
// the same name with the same ordered atom list points at one of
// these via groupTypeList.
type GroupType struct {
	Name       string   // residue name, "ALA", "HOH", ...
	AtomNames  []string // ordered, defines this group's atom count
	Elements   []string // parallel to AtomNames
	Charges    []int32  // formal charges, parallel to AtomNames
	BondAtoms  []int32  // flattened index pairs within the group
	BondOrders []int32
}

// NAtom is the number of atoms a group of this type occupies in the
// per-atom arrays.
func (g *GroupType) NAtom() int { return len(g.AtomNames) }

// An Entity groups chain records which are the same molecular
// component. Chain indices are 0-based into the per-chain arrays.
type Entity struct {
	ChainIndices []int32
	Description  string
	Sequence     string
	Type         string // "polymer" or "non-polymer"
}

const (
	EntPolymer    = "polymer"
	EntNonPolymer = "non-polymer"
)

// Value is the closed variant. Only one member is ever set, named by
// kind. We burn a little space per value for the sake of not chasing
// interface types around.
type Value struct {
	kind     Kind
	i        int64
	f        float64
	s        string
	ints     []int32
	floats   []float32
	strs     []string
	chars    []byte
	groups   []GroupType
	entities []Entity
}

func Int(i int64) Value          { return Value{kind: KindInt, i: i} }
func Float(f float64) Value      { return Value{kind: KindFloat, f: f} }
func Str(s string) Value         { return Value{kind: KindStr, s: s} }
func Ints(v []int32) Value       { return Value{kind: KindInts, ints: v} }
func Floats(v []float32) Value   { return Value{kind: KindFloats, floats: v} }
func Strs(v []string) Value      { return Value{kind: KindStrs, strs: v} }
func Chars(v []byte) Value       { return Value{kind: KindChars, chars: v} }
func Groups(v []GroupType) Value { return Value{kind: KindGroups, groups: v} }
func Entities(v []Entity) Value  { return Value{kind: KindEntities, entities: v} }

func (v Value) Kind() Kind { return v.kind }

// Len is the element count for array kinds, 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindInts:
		return len(v.ints)
	case KindFloats:
		return len(v.floats)
	case KindStrs:
		return len(v.strs)
	case KindChars:
		return len(v.chars)
	case KindGroups:
		return len(v.groups)
	case KindEntities:
		return len(v.entities)
	}
	return 0
}

// The As... accessors work on a bare Value, for code which walks a
// dictionary generically. They fail the same way the Dict accessors
// do, with a kind mismatch error.

func (v Value) want(k Kind) error {
	if v.kind != k {
		return &MissingFieldError{Want: k, Got: v.kind}
	}
	return nil
}

func (v Value) AsInt() (int64, error)        { return v.i, v.want(KindInt) }
func (v Value) AsFloat() (float64, error)    { return v.f, v.want(KindFloat) }
func (v Value) AsStr() (string, error)       { return v.s, v.want(KindStr) }
func (v Value) AsInts() ([]int32, error)     { return v.ints, v.want(KindInts) }
func (v Value) AsFloats() ([]float32, error) { return v.floats, v.want(KindFloats) }
func (v Value) AsStrs() ([]string, error)    { return v.strs, v.want(KindStrs) }
func (v Value) AsChars() ([]byte, error)     { return v.chars, v.want(KindChars) }
func (v Value) AsGroups() ([]GroupType, error) {
	return v.groups, v.want(KindGroups)
}
func (v Value) AsEntities() ([]Entity, error) {
	return v.entities, v.want(KindEntities)
}

// Dict is the dictionary itself. It remembers insertion order so a
// file written from it has its fields in a stable order, which makes
// byte-level comparisons possible.
type Dict struct {
	m     map[string]Value
	order []string
}

func New() *Dict {
	return &Dict{m: make(map[string]Value)}
}

// Set stores a value under a field name. Setting a name twice keeps
// its first position in the order.
func (d *Dict) Set(key string, v Value) {
	if _, ok := d.m[key]; !ok {
		d.order = append(d.order, key)
	}
	d.m[key] = v
}

func (d *Dict) Has(key string) bool { _, ok := d.m[key]; return ok }

// Keys returns field names in insertion order.
func (d *Dict) Keys() []string { return d.order }

func (d *Dict) Get(key string) (Value, bool) { v, ok := d.m[key]; return v, ok }

// get is the common path for the typed accessors below.
func (d *Dict) get(key string, want Kind) (Value, error) {
	v, ok := d.m[key]
	if !ok {
		return Value{}, &MissingFieldError{Field: key, Want: want}
	}
	if v.kind != want {
		return Value{}, &MissingFieldError{Field: key, Want: want, Got: v.kind}
	}
	return v, nil
}

func (d *Dict) Int(key string) (int64, error) {
	v, err := d.get(key, KindInt)
	return v.i, err
}

func (d *Dict) Float(key string) (float64, error) {
	v, err := d.get(key, KindFloat)
	return v.f, err
}

func (d *Dict) Str(key string) (string, error) {
	v, err := d.get(key, KindStr)
	return v.s, err
}

func (d *Dict) Ints(key string) ([]int32, error) {
	v, err := d.get(key, KindInts)
	return v.ints, err
}

func (d *Dict) Floats(key string) ([]float32, error) {
	v, err := d.get(key, KindFloats)
	return v.floats, err
}

func (d *Dict) Strs(key string) ([]string, error) {
	v, err := d.get(key, KindStrs)
	return v.strs, err
}

func (d *Dict) Chars(key string) ([]byte, error) {
	v, err := d.get(key, KindChars)
	return v.chars, err
}

func (d *Dict) Groups(key string) ([]GroupType, error) {
	v, err := d.get(key, KindGroups)
	return v.groups, err
}

func (d *Dict) Entities(key string) ([]Entity, error) {
	v, err := d.get(key, KindEntities)
	return v.entities, err
}
