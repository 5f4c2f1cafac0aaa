package codec

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/unkn0wn-root/jsonval"
)

// Msgpack is a Codec that transcodes value trees using vmihailenco/msgpack/v5.
// The zero value is ready to use.
//
// MessagePack has no arbitrary-precision numbers, so this codec is lossy at
// the edges: integers beyond int64 are encoded as their decimal text and come
// back as strings, and decimals are encoded as float64 and come back with
// binary-float precision. Use JSON or CBOR when exactness matters.
type Msgpack struct{}

var _ Codec = Msgpack{}

func (Msgpack) Encode(v *jsonval.Value) ([]byte, error) {
	x, err := toMsgpack(v)
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(x)
}

func (Msgpack) Decode(b []byte) (*jsonval.Value, error) {
	var x any
	if err := msgpack.Unmarshal(b, &x); err != nil {
		return nil, err
	}
	return jsonval.FromInterface(x)
}

func toMsgpack(v *jsonval.Value) (any, error) {
	switch v.Type() {
	case jsonval.KindNull:
		return nil, nil
	case jsonval.KindBool:
		b, err := v.Bool()
		return b, err
	case jsonval.KindString:
		s, err := v.Text()
		return s, err
	case jsonval.KindNumber:
		switch v.NumberKind() {
		case jsonval.NumberBigInt:
			s, err := v.Text()
			return s, err
		case jsonval.NumberDecimal:
			d, err := v.Decimal()
			if err != nil {
				return nil, err
			}
			return d.InexactFloat64(), nil
		default:
			i, err := v.Int64()
			return i, err
		}
	case jsonval.KindArray:
		vals, err := v.Values()
		if err != nil {
			return nil, err
		}
		out := make([]any, len(vals))
		for i, e := range vals {
			if out[i], err = toMsgpack(e); err != nil {
				return nil, err
			}
		}
		return out, nil
	default:
		keys, err := v.Keys()
		if err != nil {
			return nil, err
		}
		vals, err := v.Values()
		if err != nil {
			return nil, err
		}
		out := make(map[string]any, len(keys))
		for i, k := range keys {
			if out[k], err = toMsgpack(vals[i]); err != nil {
				return nil, err
			}
		}
		return out, nil
	}
}
