package jsonval

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// Interface returns the value as native Go data, preserving exactness:
// nil, bool, string, int8/int16/int32/int64 by storage width, *big.Int,
// decimal.Decimal, []any and map[string]any. Returned containers and big
// integers are fresh copies.
func (v *Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.boo
	case KindString:
		return v.str
	case KindNumber:
		switch v.num.kind {
		case numInt8:
			return int8(v.num.i)
		case numInt16:
			return int16(v.num.i)
		case numInt32:
			return int32(v.num.i)
		case numInt64:
			return v.num.i
		case numBig:
			return new(big.Int).Set(v.num.big)
		default:
			return v.num.dec
		}
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}
		return out
	default:
		out := make(map[string]any, len(v.obj))
		for k, e := range v.obj {
			out[k] = e.Interface()
		}
		return out
	}
}

// FromInterface builds a value tree from native Go data. It accepts the types
// Interface produces plus the usual decoder output shapes: all signed and
// unsigned integer widths, float32/float64 (stored as exact decimals of their
// shortest representation), big.Int by value or pointer, []*Value and
// map[string]*Value. Anything else is an error.
func FromInterface(x any) (*Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return fromUint64(uint64(t)), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		return fromUint64(t), nil
	case float32:
		return Decimal(decimal.NewFromFloat32(t)), nil
	case float64:
		return Float(t), nil
	case big.Int:
		return BigInt(&t), nil
	case *big.Int:
		return BigInt(t), nil
	case decimal.Decimal:
		return Decimal(t), nil
	case []*Value:
		return Array(t...), nil
	case map[string]*Value:
		return Object(t), nil
	case []any:
		arr := make([]*Value, len(t))
		for i, e := range t {
			v, err := FromInterface(e)
			if err != nil {
				return nil, err
			}
			arr[i] = v
		}
		return &Value{kind: KindArray, arr: arr}, nil
	case map[string]any:
		obj := make(map[string]*Value, len(t))
		for k, e := range t {
			v, err := FromInterface(e)
			if err != nil {
				return nil, err
			}
			obj[k] = v
		}
		return &Value{kind: KindObject, obj: obj}, nil
	default:
		return nil, fmt.Errorf("jsonval: cannot represent %T as a JSON value", x)
	}
}

func fromUint64(u uint64) *Value {
	if u <= math.MaxInt64 {
		return Int(int64(u))
	}
	return BigInt(new(big.Int).SetUint64(u))
}
