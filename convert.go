package jsonval

import (
	"errors"
	"math/big"
	"strconv"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// The conversion facility is a closed coercion matrix keyed on (source kind,
// target). Each target is one method; unsupported pairs fail with a
// ConvertError of kind ConvertTypeMismatch. A null source short-circuits to
// the target's zero value with a nil error - callers that must distinguish
// null from zero check IsNull first.
//
// Numeric sources narrow to fixed widths by two's-complement truncation;
// string sources are parsed strictly and fail on overflow or garbage.

// Bool converts to a boolean. Strings must be exactly "true" or "false";
// numbers map zero to false and anything else to true.
func (v *Value) Bool() (bool, error) {
	switch v.kind {
	case KindNull:
		return false, nil
	case KindBool:
		return v.boo, nil
	case KindString:
		switch v.str {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return false, &ConvertError{Kind: ConvertBadFormat, From: v.kind, Target: "bool"}
		}
	case KindNumber:
		return !v.num.isZero(), nil
	default:
		return false, &ConvertError{Kind: ConvertTypeMismatch, From: v.kind, Target: "bool"}
	}
}

// Int8 converts to an 8-bit signed integer.
func (v *Value) Int8() (int8, error) {
	i, err := v.intN(8, "int8")
	return int8(i), err
}

// Int16 converts to a 16-bit signed integer.
func (v *Value) Int16() (int16, error) {
	i, err := v.intN(16, "int16")
	return int16(i), err
}

// Int32 converts to a 32-bit signed integer.
func (v *Value) Int32() (int32, error) {
	i, err := v.intN(32, "int32")
	return int32(i), err
}

// Int64 converts to a 64-bit signed integer.
func (v *Value) Int64() (int64, error) {
	return v.intN(64, "int64")
}

func (v *Value) intN(bits uint, target string) (int64, error) {
	switch v.kind {
	case KindNull:
		return 0, nil
	case KindNumber:
		return v.num.truncInt64(bits), nil
	case KindBool:
		if v.boo {
			return 1, nil
		}
		return 0, nil
	case KindString:
		i, err := strconv.ParseInt(v.str, 10, int(bits))
		if err != nil {
			kind := ConvertBadFormat
			if errors.Is(err, strconv.ErrRange) {
				kind = ConvertOverflow
			}
			return 0, &ConvertError{Kind: kind, From: v.kind, Target: target, Cause: err}
		}
		return i, nil
	default:
		return 0, &ConvertError{Kind: ConvertTypeMismatch, From: v.kind, Target: target}
	}
}

// BigInt converts to an arbitrary-precision integer. Decimal sources keep
// their integral part, truncated toward zero. A null source yields nil.
func (v *Value) BigInt() (*big.Int, error) {
	switch v.kind {
	case KindNull:
		return nil, nil
	case KindNumber:
		return v.num.bigInt(), nil
	case KindBool:
		if v.boo {
			return big.NewInt(1), nil
		}
		return big.NewInt(0), nil
	case KindString:
		i, ok := new(big.Int).SetString(v.str, 10)
		if !ok {
			return nil, &ConvertError{Kind: ConvertBadFormat, From: v.kind, Target: "bigint"}
		}
		return i, nil
	default:
		return nil, &ConvertError{Kind: ConvertTypeMismatch, From: v.kind, Target: "bigint"}
	}
}

// Decimal converts to an arbitrary-precision decimal. Every numeric source
// widens exactly; this is also the generic untyped-number target.
func (v *Value) Decimal() (decimal.Decimal, error) {
	switch v.kind {
	case KindNull:
		return decimal.Decimal{}, nil
	case KindNumber:
		return v.num.decimal(), nil
	case KindBool:
		if v.boo {
			return decimal.NewFromInt(1), nil
		}
		return decimal.NewFromInt(0), nil
	case KindString:
		d, err := decimal.NewFromString(v.str)
		if err != nil {
			return decimal.Decimal{}, &ConvertError{Kind: ConvertBadFormat, From: v.kind, Target: "decimal", Cause: err}
		}
		return d, nil
	default:
		return decimal.Decimal{}, &ConvertError{Kind: ConvertTypeMismatch, From: v.kind, Target: "decimal"}
	}
}

// Char converts to a single character: the first rune of a string, or 't'/'f'
// for booleans. Numbers have no character form.
func (v *Value) Char() (rune, error) {
	switch v.kind {
	case KindNull:
		return 0, nil
	case KindString:
		if v.str == "" {
			return 0, &ConvertError{Kind: ConvertBadFormat, From: v.kind, Target: "char"}
		}
		c, _ := utf8.DecodeRuneInString(v.str)
		return c, nil
	case KindBool:
		if v.boo {
			return 't', nil
		}
		return 'f', nil
	default:
		return 0, &ConvertError{Kind: ConvertTypeMismatch, From: v.kind, Target: "char"}
	}
}

// Text converts to a string: identity for strings, the canonical decimal text
// for numbers, "true"/"false" for booleans.
func (v *Value) Text() (string, error) {
	switch v.kind {
	case KindNull:
		return "", nil
	case KindString:
		return v.str, nil
	case KindNumber:
		return v.num.text(), nil
	case KindBool:
		if v.boo {
			return "true", nil
		}
		return "false", nil
	default:
		return "", &ConvertError{Kind: ConvertTypeMismatch, From: v.kind, Target: "string"}
	}
}

// Slice converts a structural node element-wise using conv, in Values order.
// The result length equals the source element count. Scalar sources fail with
// ConvertTypeMismatch.
func Slice[T any](v *Value, conv func(*Value) (T, error)) ([]T, error) {
	vals, err := v.Values()
	if err != nil {
		return nil, &ConvertError{Kind: ConvertTypeMismatch, From: v.kind, Target: "array"}
	}
	out := make([]T, len(vals))
	for i, e := range vals {
		out[i], err = conv(e)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Strings converts a structural node to []string element-wise.
func Strings(v *Value) ([]string, error) { return Slice(v, (*Value).Text) }

// Int64s converts a structural node to []int64 element-wise.
func Int64s(v *Value) ([]int64, error) { return Slice(v, (*Value).Int64) }

// Bools converts a structural node to []bool element-wise.
func Bools(v *Value) ([]bool, error) { return Slice(v, (*Value).Bool) }

// Decimals converts a structural node to []decimal.Decimal element-wise.
func Decimals(v *Value) ([]decimal.Decimal, error) { return Slice(v, (*Value).Decimal) }
