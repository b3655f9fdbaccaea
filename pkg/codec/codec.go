// Package codec turns a columnar dictionary into bytes and back.
// The container is a MessagePack map. Typed arrays are packed with
// the binary strategies in binary.go; group templates and entities
// travel as plain msgpack arrays of maps; scalars as themselves.
// The transform in pkg/mmtf never sees any of this, it only ever
// holds a dict.Dict.
package codec

import (
	"fmt"
	"io"

	"github.com/andrew-torda/mmtf/pkg/dict"
	"github.com/vmihailenco/msgpack/v5"
)

// fieldStrat says how each known array field is packed. Divisors
// follow the format's habit: coordinates keep three decimals,
// B-factors and occupancies two.
var fieldStrat = map[string]struct{ strat, param int32 }{
	dict.FldXCoordList:    {stratDeltaRec, 1000},
	dict.FldYCoordList:    {stratDeltaRec, 1000},
	dict.FldZCoordList:    {stratDeltaRec, 1000},
	dict.FldBFactorList:   {stratDeltaRec, 100},
	dict.FldOccupancyList: {stratRunFloat, 100},
	dict.FldAtomIdList:    {stratDeltaRun, 0},
	dict.FldGroupIdList:   {stratDeltaRun, 0},
	dict.FldSeqIndexList:  {stratDeltaRun, 0},
	dict.FldGroupTypeList: {stratInt32, 0},
	dict.FldSecStructList: {stratInt8, 0},
	dict.FldInsCodeList:   {stratRunChar, 0},
	dict.FldAltLocList:    {stratRunChar, 0},
	dict.FldChainIdList:   {stratFixedStr, 4},
	dict.FldChainNameList: {stratFixedStr, 4},
}

// stratFor picks a strategy for a field. Unknown fields get the
// plainest strategy their kind allows.
func stratFor(key string, v dict.Value) (int32, int32) {
	if fs, ok := fieldStrat[key]; ok {
		return fs.strat, fs.param
	}
	switch v.Kind() {
	case dict.KindInts:
		return stratInt32, 0
	case dict.KindFloats:
		return stratFloat32, 0
	case dict.KindChars:
		return stratRunChar, 0
	default: // KindStrs
		w := int32(1)
		if s, err := v.AsStrs(); err == nil {
			for _, str := range s {
				if int32(len(str)) > w {
					w = int32(len(str))
				}
			}
		}
		return stratFixedStr, w
	}
}

// Encode writes the dictionary to w. Fields go out in the order they
// were set, so encoding is reproducible byte for byte.
func Encode(d *dict.Dict, w io.Writer) error {
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true) // group and entity maps come out stable
	keys := d.Keys()
	if err := enc.EncodeMapLen(len(keys)); err != nil {
		return err
	}
	for _, key := range keys {
		if err := enc.EncodeString(key); err != nil {
			return err
		}
		v, _ := d.Get(key)
		if err := encodeValue(enc, key, v); err != nil {
			return fmt.Errorf("field %s: %w", key, err)
		}
	}
	return nil
}

func encodeValue(enc *msgpack.Encoder, key string, v dict.Value) error {
	switch v.Kind() {
	case dict.KindInt:
		i, _ := v.AsInt()
		return enc.EncodeInt(i)
	case dict.KindFloat:
		f, _ := v.AsFloat()
		return enc.EncodeFloat64(f)
	case dict.KindStr:
		s, _ := v.AsStr()
		return enc.EncodeString(s)
	case dict.KindGroups:
		groups, _ := v.AsGroups()
		return enc.Encode(groupsToMsgpack(groups))
	case dict.KindEntities:
		entities, _ := v.AsEntities()
		return enc.Encode(entitiesToMsgpack(entities))
	default:
		strat, param := stratFor(key, v)
		b, err := encArray(v, strat, param)
		if err != nil {
			return err
		}
		return enc.EncodeBytes(b)
	}
}

func groupsToMsgpack(groups []dict.GroupType) []map[string]interface{} {
	out := make([]map[string]interface{}, len(groups))
	for i, g := range groups {
		out[i] = map[string]interface{}{
			"groupName":        g.Name,
			"atomNameList":     g.AtomNames,
			"elementList":      g.Elements,
			"formalChargeList": g.Charges,
			"bondAtomList":     g.BondAtoms,
			"bondOrderList":    g.BondOrders,
		}
	}
	return out
}

func entitiesToMsgpack(entities []dict.Entity) []map[string]interface{} {
	out := make([]map[string]interface{}, len(entities))
	for i, e := range entities {
		out[i] = map[string]interface{}{
			"chainIndexList": e.ChainIndices,
			"description":    e.Description,
			"sequence":       e.Sequence,
			"type":           e.Type,
		}
	}
	return out
}

// Decode reads one dictionary from r. Malformed input is fatal; no
// partial dictionary comes back.
func Decode(r io.Reader) (*dict.Dict, error) {
	dec := msgpack.NewDecoder(r)
	n, err := dec.DecodeMapLen()
	if err != nil {
		return nil, fmt.Errorf("reading dictionary: %w", err)
	}
	d := dict.New()
	for i := 0; i < n; i++ {
		key, err := dec.DecodeString()
		if err != nil {
			return nil, fmt.Errorf("reading field name: %w", err)
		}
		raw, err := dec.DecodeInterface()
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		v, err := decodeValue(key, raw)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		d.Set(key, v)
	}
	return d, nil
}

func decodeValue(key string, raw interface{}) (dict.Value, error) {
	switch x := raw.(type) {
	case []byte:
		return decArray(x)
	case string:
		return dict.Str(x), nil
	case float32:
		return dict.Float(float64(x)), nil
	case float64:
		return dict.Float(x), nil
	case []interface{}:
		switch key {
		case dict.FldGroupList:
			return groupsFromMsgpack(x)
		case dict.FldEntityList:
			return entitiesFromMsgpack(x)
		}
		// a bare msgpack int array; some writers skip the binary
		// strategies for small count fields
		ints, err := toInts(x)
		if err != nil {
			return dict.Value{}, err
		}
		return dict.Ints(ints), nil
	default:
		if i, ok := toInt(raw); ok {
			return dict.Int(i), nil
		}
	}
	return dict.Value{}, fmt.Errorf("cannot use value of type %T", raw)
}

func toInt(raw interface{}) (int64, bool) {
	switch x := raw.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return int64(x), true
	}
	return 0, false
}

func toStr(raw interface{}) (string, bool) {
	s, ok := raw.(string)
	return s, ok
}

func toInts(raw []interface{}) ([]int32, error) {
	out := make([]int32, len(raw))
	for i, x := range raw {
		n, ok := toInt(x)
		if !ok {
			return nil, fmt.Errorf("element %d is %T, not an int", i, x)
		}
		out[i] = int32(n)
	}
	return out, nil
}

func toStrs(raw []interface{}) ([]string, error) {
	out := make([]string, len(raw))
	for i, x := range raw {
		s, ok := toStr(x)
		if !ok {
			return nil, fmt.Errorf("element %d is %T, not a string", i, x)
		}
		out[i] = s
	}
	return out, nil
}

func groupsFromMsgpack(raw []interface{}) (dict.Value, error) {
	groups := make([]dict.GroupType, len(raw))
	for i, x := range raw {
		m, ok := x.(map[string]interface{})
		if !ok {
			return dict.Value{}, fmt.Errorf("group %d is %T, not a map", i, x)
		}
		g := &groups[i]
		var err error
		if g.Name, ok = toStr(m["groupName"]); !ok {
			return dict.Value{}, fmt.Errorf("group %d has no name", i)
		}
		if g.AtomNames, err = fieldStrs(m, "atomNameList"); err != nil {
			return dict.Value{}, fmt.Errorf("group %d: %w", i, err)
		}
		if g.Elements, err = fieldStrs(m, "elementList"); err != nil {
			return dict.Value{}, fmt.Errorf("group %d: %w", i, err)
		}
		if g.Charges, err = fieldInts(m, "formalChargeList"); err != nil {
			return dict.Value{}, fmt.Errorf("group %d: %w", i, err)
		}
		if g.BondAtoms, err = fieldInts(m, "bondAtomList"); err != nil {
			return dict.Value{}, fmt.Errorf("group %d: %w", i, err)
		}
		if g.BondOrders, err = fieldInts(m, "bondOrderList"); err != nil {
			return dict.Value{}, fmt.Errorf("group %d: %w", i, err)
		}
	}
	return dict.Groups(groups), nil
}

func entitiesFromMsgpack(raw []interface{}) (dict.Value, error) {
	entities := make([]dict.Entity, len(raw))
	for i, x := range raw {
		m, ok := x.(map[string]interface{})
		if !ok {
			return dict.Value{}, fmt.Errorf("entity %d is %T, not a map", i, x)
		}
		e := &entities[i]
		var err error
		if e.ChainIndices, err = fieldInts(m, "chainIndexList"); err != nil {
			return dict.Value{}, fmt.Errorf("entity %d: %w", i, err)
		}
		e.Description, _ = toStr(m["description"])
		e.Sequence, _ = toStr(m["sequence"])
		if e.Type, ok = toStr(m["type"]); !ok {
			return dict.Value{}, fmt.Errorf("entity %d has no type", i)
		}
	}
	return dict.Entities(entities), nil
}

// fieldStrs and fieldInts read optional list members of a msgpack
// map. A missing member is an empty list, not an error.
func fieldStrs(m map[string]interface{}, key string) ([]string, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, nil
	}
	arr, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s is %T, not a list", key, raw)
	}
	return toStrs(arr)
}

func fieldInts(m map[string]interface{}, key string) ([]int32, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, nil
	}
	arr, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s is %T, not a list", key, raw)
	}
	return toInts(arr)
}
