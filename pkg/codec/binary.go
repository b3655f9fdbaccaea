// 25 Mar 2024

// The binary array strategies. Each typed array travels as a 12 byte
// header (strategy id, element count, parameter, all big-endian
// int32) followed by the packed payload. The strategies compose the
// usual columnar tricks: run-length, delta, recursive indexing into
// int16, and fixed-point floats.

package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/andrew-torda/mmtf/pkg/dict"
)

const (
	stratFloat32   int32 = 1  // raw float32
	stratInt8      int32 = 2  // raw int8
	stratInt32     int32 = 4  // raw int32
	stratFixedStr  int32 = 5  // fixed width strings, param = width
	stratRunChar   int32 = 6  // run-length encoded chars
	stratDeltaRun  int32 = 8  // delta then run-length, int32
	stratRunFloat  int32 = 9  // run-length fixed-point floats, param = divisor
	stratDeltaRec  int32 = 10 // delta, recursive index to int16, param = divisor
	hdrLen               = 12
)

func putHeader(strat, count, param int32, payload []byte) []byte {
	b := make([]byte, hdrLen, hdrLen+len(payload))
	binary.BigEndian.PutUint32(b[0:], uint32(strat))
	binary.BigEndian.PutUint32(b[4:], uint32(count))
	binary.BigEndian.PutUint32(b[8:], uint32(param))
	return append(b, payload...)
}

func header(b []byte) (strat, count, param int32, payload []byte, err error) {
	if len(b) < hdrLen {
		return 0, 0, 0, nil, fmt.Errorf("array header truncated, %d bytes", len(b))
	}
	strat = int32(binary.BigEndian.Uint32(b[0:]))
	count = int32(binary.BigEndian.Uint32(b[4:]))
	param = int32(binary.BigEndian.Uint32(b[8:]))
	return strat, count, param, b[hdrLen:], nil
}

// run-length: value, count, value, count ...
func runLenEnc(v []int32) []int32 {
	var out []int32
	for i := 0; i < len(v); {
		j := i
		for j < len(v) && v[j] == v[i] {
			j++
		}
		out = append(out, v[i], int32(j-i))
		i = j
	}
	return out
}

func runLenDec(pairs []int32, n int32) ([]int32, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("odd number of run-length entries")
	}
	out := make([]int32, 0, n)
	for i := 0; i < len(pairs); i += 2 {
		if pairs[i+1] < 0 {
			return nil, fmt.Errorf("negative run length %d", pairs[i+1])
		}
		for k := int32(0); k < pairs[i+1]; k++ {
			out = append(out, pairs[i])
		}
	}
	if int32(len(out)) != n {
		return nil, fmt.Errorf("run-length gave %d values, want %d", len(out), n)
	}
	return out, nil
}

func deltaEnc(v []int32) []int32 {
	out := make([]int32, len(v))
	var prev int32
	for i, x := range v {
		out[i] = x - prev
		prev = x
	}
	return out
}

func deltaDec(v []int32) []int32 {
	out := make([]int32, len(v))
	var sum int32
	for i, d := range v {
		sum += d
		out[i] = sum
	}
	return out
}

// recursive indexing: values that do not fit in an int16 become a
// run of extreme values summing to the original.
func recIdxEnc(v []int32) []int16 {
	var out []int16
	for _, x := range v {
		for x >= math.MaxInt16 {
			out = append(out, math.MaxInt16)
			x -= math.MaxInt16
		}
		for x <= math.MinInt16 {
			out = append(out, math.MinInt16)
			x -= math.MinInt16
		}
		out = append(out, int16(x))
	}
	return out
}

func recIdxDec(w []int16, n int32) ([]int32, error) {
	out := make([]int32, 0, n)
	var sum int32
	for i, x := range w {
		sum += int32(x)
		if x != math.MaxInt16 && x != math.MinInt16 {
			out = append(out, sum)
			sum = 0
		} else if i == len(w)-1 {
			return nil, fmt.Errorf("recursive index stream ends mid-value")
		}
	}
	if int32(len(out)) != n {
		return nil, fmt.Errorf("recursive index gave %d values, want %d", len(out), n)
	}
	return out, nil
}

func packInt32(v []int32) []byte {
	b := make([]byte, 4*len(v))
	for i, x := range v {
		binary.BigEndian.PutUint32(b[4*i:], uint32(x))
	}
	return b
}

func unpackInt32(b []byte) ([]int32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("int32 payload of %d bytes", len(b))
	}
	v := make([]int32, len(b)/4)
	for i := range v {
		v[i] = int32(binary.BigEndian.Uint32(b[4*i:]))
	}
	return v, nil
}

func packInt16(v []int16) []byte {
	b := make([]byte, 2*len(v))
	for i, x := range v {
		binary.BigEndian.PutUint16(b[2*i:], uint16(x))
	}
	return b
}

func unpackInt16(b []byte) ([]int16, error) {
	if len(b)%2 != 0 {
		return nil, fmt.Errorf("int16 payload of %d bytes", len(b))
	}
	v := make([]int16, len(b)/2)
	for i := range v {
		v[i] = int16(binary.BigEndian.Uint16(b[2*i:]))
	}
	return v, nil
}

func scale(v []float32, div int32) []int32 {
	out := make([]int32, len(v))
	for i, x := range v {
		out[i] = int32(math.Round(float64(x) * float64(div)))
	}
	return out
}

func unscale(v []int32, div int32) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x) / float32(div)
	}
	return out
}

// encArray packs one dictionary value with the given strategy.
func encArray(v dict.Value, strat, param int32) ([]byte, error) {
	switch strat {
	case stratFloat32:
		f, err := v.AsFloats()
		if err != nil {
			return nil, err
		}
		b := make([]byte, 4*len(f))
		for i, x := range f {
			binary.BigEndian.PutUint32(b[4*i:], math.Float32bits(x))
		}
		return putHeader(strat, int32(len(f)), 0, b), nil
	case stratInt8:
		n, err := v.AsInts()
		if err != nil {
			return nil, err
		}
		b := make([]byte, len(n))
		for i, x := range n {
			b[i] = byte(int8(x))
		}
		return putHeader(strat, int32(len(n)), 0, b), nil
	case stratInt32:
		n, err := v.AsInts()
		if err != nil {
			return nil, err
		}
		return putHeader(strat, int32(len(n)), 0, packInt32(n)), nil
	case stratFixedStr:
		s, err := v.AsStrs()
		if err != nil {
			return nil, err
		}
		w := param
		b := make([]byte, 0, int(w)*len(s))
		for _, str := range s {
			if int32(len(str)) > w {
				return nil, fmt.Errorf("string %q wider than %d", str, w)
			}
			cell := make([]byte, w)
			copy(cell, str)
			b = append(b, cell...)
		}
		return putHeader(strat, int32(len(s)), w, b), nil
	case stratRunChar:
		c, err := v.AsChars()
		if err != nil {
			return nil, err
		}
		asInt := make([]int32, len(c))
		for i, x := range c {
			asInt[i] = int32(x)
		}
		return putHeader(strat, int32(len(c)), 0, packInt32(runLenEnc(asInt))), nil
	case stratDeltaRun:
		n, err := v.AsInts()
		if err != nil {
			return nil, err
		}
		return putHeader(strat, int32(len(n)), 0,
			packInt32(runLenEnc(deltaEnc(n)))), nil
	case stratRunFloat:
		f, err := v.AsFloats()
		if err != nil {
			return nil, err
		}
		return putHeader(strat, int32(len(f)), param,
			packInt32(runLenEnc(scale(f, param)))), nil
	case stratDeltaRec:
		f, err := v.AsFloats()
		if err != nil {
			return nil, err
		}
		return putHeader(strat, int32(len(f)), param,
			packInt16(recIdxEnc(deltaEnc(scale(f, param))))), nil
	}
	return nil, fmt.Errorf("no such array strategy %d", strat)
}

// decArray unpacks one binary field. The header says everything, so
// no name lookup is needed on this side.
func decArray(b []byte) (dict.Value, error) {
	strat, count, param, payload, err := header(b)
	if err != nil {
		return dict.Value{}, err
	}
	switch strat {
	case stratFloat32:
		if int32(len(payload)) != 4*count {
			return dict.Value{}, fmt.Errorf("float32 payload %d bytes for %d values",
				len(payload), count)
		}
		f := make([]float32, count)
		for i := range f {
			f[i] = math.Float32frombits(binary.BigEndian.Uint32(payload[4*i:]))
		}
		return dict.Floats(f), nil
	case stratInt8:
		if int32(len(payload)) != count {
			return dict.Value{}, fmt.Errorf("int8 payload %d bytes for %d values",
				len(payload), count)
		}
		n := make([]int32, count)
		for i := range n {
			n[i] = int32(int8(payload[i]))
		}
		return dict.Ints(n), nil
	case stratInt32:
		n, err := unpackInt32(payload)
		if err != nil || int32(len(n)) != count {
			return dict.Value{}, fmt.Errorf("int32 array of %d, want %d", len(n), count)
		}
		return dict.Ints(n), nil
	case stratFixedStr:
		if param <= 0 || int32(len(payload)) != count*param {
			return dict.Value{}, fmt.Errorf("fixed strings, %d bytes for %d x %d",
				len(payload), count, param)
		}
		s := make([]string, count)
		for i := int32(0); i < count; i++ {
			cell := payload[i*param : (i+1)*param]
			end := len(cell)
			for end > 0 && cell[end-1] == 0 {
				end--
			}
			s[i] = string(cell[:end])
		}
		return dict.Strs(s), nil
	case stratRunChar:
		pairs, err := unpackInt32(payload)
		if err != nil {
			return dict.Value{}, err
		}
		n, err := runLenDec(pairs, count)
		if err != nil {
			return dict.Value{}, err
		}
		c := make([]byte, count)
		for i, x := range n {
			c[i] = byte(x)
		}
		return dict.Chars(c), nil
	case stratDeltaRun:
		pairs, err := unpackInt32(payload)
		if err != nil {
			return dict.Value{}, err
		}
		n, err := runLenDec(pairs, count)
		if err != nil {
			return dict.Value{}, err
		}
		return dict.Ints(deltaDec(n)), nil
	case stratRunFloat:
		pairs, err := unpackInt32(payload)
		if err != nil {
			return dict.Value{}, err
		}
		n, err := runLenDec(pairs, count)
		if err != nil {
			return dict.Value{}, err
		}
		if param == 0 {
			return dict.Value{}, fmt.Errorf("fixed-point array with zero divisor")
		}
		return dict.Floats(unscale(n, param)), nil
	case stratDeltaRec:
		w, err := unpackInt16(payload)
		if err != nil {
			return dict.Value{}, err
		}
		n, err := recIdxDec(w, count)
		if err != nil {
			return dict.Value{}, err
		}
		if param == 0 {
			return dict.Value{}, fmt.Errorf("fixed-point array with zero divisor")
		}
		return dict.Floats(unscale(deltaDec(n), param)), nil
	}
	return dict.Value{}, fmt.Errorf("no such array strategy %d", strat)
}

