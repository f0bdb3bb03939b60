package codec

import "strconv"

// Int64 parses decimal text, the representation Redis itself uses for
// numbers (SET 42 and INCR both leave "42" in the store). Decoding
// non-numeric bytes fails with the strconv parse error.
type Int64 struct{}

func (Int64) Encode(v int64) ([]byte, error) {
	return strconv.AppendInt(nil, v, 10), nil
}

func (Int64) Decode(b []byte) (int64, error) {
	return strconv.ParseInt(string(b), 10, 64)
}

// Float64 is the floating-point counterpart of Int64.
type Float64 struct{}

func (Float64) Encode(v float64) ([]byte, error) {
	return strconv.AppendFloat(nil, v, 'g', -1, 64), nil
}

func (Float64) Decode(b []byte) (float64, error) {
	return strconv.ParseFloat(string(b), 64)
}
