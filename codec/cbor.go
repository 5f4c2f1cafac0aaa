package codec

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/shopspring/decimal"

	"github.com/unkn0wn-root/jsonval"
)

// CBOR is a Codec that transcodes value trees using fxamacker/cbor.
// The zero value is NOT ready to use. Construct with NewCBOR or MustCBOR.
//
// Numeric fidelity is preserved: integers beyond int64 become CBOR bignums
// (RFC 8949 tags 2/3) and decimals become decimal fractions (tag 4), so a
// round trip reproduces the exact payload. Use deterministic=true for
// canonical encoding (RFC 8949 Core Deterministic) when you need
// byte-for-byte stable outputs.
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Codec = CBOR{}

// NewCBOR constructs a CBOR codec.
//   - Deterministic is true, uses CoreDetEncOptions (RFC 8949).
//   - Otherwise uses PreferredUnsortedEncOptions (smaller/faster defaults).
func NewCBOR(deterministic bool) (CBOR, error) {
	var eo cbor.EncOptions
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	} else {
		eo = cbor.PreferredUnsortedEncOptions()
	}
	em, err := eo.EncMode()
	if err != nil {
		return CBOR{}, err
	}
	do := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}
	dm, err := do.DecMode()
	if err != nil {
		return CBOR{}, err
	}
	return CBOR{enc: em, dec: dm}, nil
}

// MustCBOR is like NewCBOR but panics on error.
// Should not use for prod just handy for package-level variables in tests.
func MustCBOR(deterministic bool) CBOR {
	c, err := NewCBOR(deterministic)
	if err != nil {
		panic(err)
	}
	return c
}

func (c CBOR) Encode(v *jsonval.Value) ([]byte, error) {
	x, err := toCBOR(v)
	if err != nil {
		return nil, err
	}
	return c.enc.Marshal(x)
}

func (c CBOR) Decode(b []byte) (*jsonval.Value, error) {
	var x any
	if err := c.dec.Unmarshal(b, &x); err != nil {
		return nil, err
	}
	return fromCBOR(x)
}

func toCBOR(v *jsonval.Value) (any, error) {
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
			return i, err
		case jsonval.NumberDecimal:
			d, err := v.Decimal()
			if err != nil {
				return nil, err
			}
			// RFC 8949 decimal fraction: [exponent, mantissa]
			return cbor.Tag{
				Number:  4,
				Content: []any{int64(d.Exponent()), d.Coefficient()},
			}, nil
		default:
			i, err := v.Int64()
			return i, err
		}
	default:
		vals, err := v.Values()
		if err != nil {
			return nil, err
		}
		if v.Type() == jsonval.KindArray {
			out := make([]any, len(vals))
			for i, e := range vals {
				if out[i], err = toCBOR(e); err != nil {
					return nil, err
				}
			}
			return out, nil
		}
		keys, err := v.Keys()
		if err != nil {
			return nil, err
		}
		out := make(map[string]any, len(keys))
		for i, k := range keys {
			if out[k], err = toCBOR(vals[i]); err != nil {
				return nil, err
			}
		}
		return out, nil
	}
}

func fromCBOR(x any) (*jsonval.Value, error) {
	switch t := x.(type) {
	case cbor.Tag:
		if t.Number == 4 {
			return decimalFraction(t.Content)
		}
		// unknown tag: transcode its content
		return fromCBOR(t.Content)
	case []any:
		out := make([]*jsonval.Value, len(t))
		for i, e := range t {
			v, err := fromCBOR(e)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return jsonval.Array(out...), nil
	case map[string]any:
		out := make(map[string]*jsonval.Value, len(t))
		for k, e := range t {
			v, err := fromCBOR(e)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return jsonval.Object(out), nil
	case map[any]any:
		out := make(map[string]*jsonval.Value, len(t))
		for k, e := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("codec: cbor map key %v is not a string", k)
			}
			v, err := fromCBOR(e)
			if err != nil {
				return nil, err
			}
			out[ks] = v
		}
		return jsonval.Object(out), nil
	default:
		return jsonval.FromInterface(x)
	}
}

// decimalFraction rebuilds a decimal from a tag-4 [exponent, mantissa] pair.
func decimalFraction(content any) (*jsonval.Value, error) {
	pair, ok := content.([]any)
	if !ok || len(pair) != 2 {
		return nil, fmt.Errorf("codec: malformed cbor decimal fraction: %v", content)
	}
	exp, err := asInt64(pair[0])
	if err != nil {
		return nil, fmt.Errorf("codec: decimal fraction exponent: %w", err)
	}
	mant, err := asBigInt(pair[1])
	if err != nil {
		return nil, fmt.Errorf("codec: decimal fraction mantissa: %w", err)
	}
	return jsonval.Decimal(decimal.NewFromBigInt(mant, int32(exp))), nil
}

func asInt64(x any) (int64, error) {
	switch t := x.(type) {
	case int64:
		return t, nil
	case uint64:
		return int64(t), nil
	default:
		return 0, fmt.Errorf("unexpected integer type %T", x)
	}
}

func asBigInt(x any) (*big.Int, error) {
	switch t := x.(type) {
	case int64:
		return big.NewInt(t), nil
	case uint64:
		return new(big.Int).SetUint64(t), nil
	case big.Int:
		return &t, nil
	case *big.Int:
		return t, nil
	default:
		return nil, fmt.Errorf("unexpected integer type %T", x)
	}
}
