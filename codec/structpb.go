package codec

import (
	"math/big"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/unkn0wn-root/jsonval"
)

// Structpb is a Codec that transcodes value trees through the
// google.protobuf.Value well-known type, for interop with systems speaking
// protobuf Struct. The zero value is ready to use.
//
// protobuf Value carries all numbers as float64, so anything outside exact
// float64 range loses precision and every number decodes as a decimal. Use
// JSON or CBOR when exactness matters.
type Structpb struct{}

var _ Codec = Structpb{}

func (Structpb) Encode(v *jsonval.Value) ([]byte, error) {
	x, err := toPlain(v)
	if err != nil {
		return nil, err
	}
	pv, err := structpb.NewValue(x)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(pv)
}

func (Structpb) Decode(b []byte) (*jsonval.Value, error) {
	pv := &structpb.Value{}
	if err := proto.Unmarshal(b, pv); err != nil {
		return nil, err
	}
	return jsonval.FromInterface(pv.AsInterface())
}

// toPlain lowers the tree to structpb.NewValue input types, pushing all
// numbers through float64.
func toPlain(v *jsonval.Value) (any, error) {
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
			i, err := v.BigInt()
			if err != nil {
				return nil, err
			}
			f, _ := new(big.Float).SetInt(i).Float64()
			return f, nil
		case jsonval.NumberDecimal:
			d, err := v.Decimal()
			if err != nil {
				return nil, err
			}
			return d.InexactFloat64(), nil
		default:
			i, err := v.Int64()
			if err != nil {
				return nil, err
			}
			return float64(i), nil
		}
	case jsonval.KindArray:
		vals, err := v.Values()
		if err != nil {
			return nil, err
		}
		out := make([]any, len(vals))
		for i, e := range vals {
			if out[i], err = toPlain(e); err != nil {
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
			if out[k], err = toPlain(vals[i]); err != nil {
				return nil, err
			}
		}
		return out, nil
	}
}
