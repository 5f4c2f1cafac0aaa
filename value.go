package jsonval

import (
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind classifies a JSON value.
type Kind int

const (
	KindNull Kind = iota // zero Value is null
	KindBool
	KindString
	KindNumber
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is an immutable JSON value. Exactly one representation is populated,
// selected by kind. Array and Object exclusively own their children; the
// constructors copy caller-supplied containers so no outside mutation can
// reach a built tree.
type Value struct {
	kind Kind
	num  number
	str  string
	boo  bool
	arr  []*Value
	obj  map[string]*Value
}

var nullValue = &Value{kind: KindNull}

// Null returns the JSON null value.
func Null() *Value { return nullValue }

// Bool returns a JSON boolean value.
func Bool(b bool) *Value { return &Value{kind: KindBool, boo: b} }

// String returns a JSON string value.
func String(s string) *Value { return &Value{kind: KindString, str: s} }

// Int returns a JSON number holding i at the smallest signed width that fits.
func Int(i int64) *Value { return &Value{kind: KindNumber, num: narrowInt64(i)} }

// BigInt returns a JSON number holding i exactly. Values that fit a fixed
// width are narrowed; i is copied.
func BigInt(i *big.Int) *Value { return &Value{kind: KindNumber, num: narrowBig(i)} }

// Decimal returns a JSON number holding d exactly as an arbitrary-precision
// decimal.
func Decimal(d decimal.Decimal) *Value {
	return &Value{kind: KindNumber, num: number{kind: numDecimal, dec: d}}
}

// Float returns a JSON number holding the shortest decimal that converts back
// to f. Useful when embedding host floats; parsed numbers never take this path.
func Float(f float64) *Value { return Decimal(decimal.NewFromFloat(f)) }

// Array returns a JSON array of the given elements. The slice is copied; nil
// elements become JSON nulls.
func Array(elems ...*Value) *Value {
	arr := make([]*Value, len(elems))
	for i, e := range elems {
		if e == nil {
			e = nullValue
		}
		arr[i] = e
	}
	return &Value{kind: KindArray, arr: arr}
}

// Object returns a JSON object with the given members. The map is copied; nil
// members become JSON nulls.
func Object(members map[string]*Value) *Value {
	obj := make(map[string]*Value, len(members))
	for k, v := range members {
		if v == nil {
			v = nullValue
		}
		obj[k] = v
	}
	return &Value{kind: KindObject, obj: obj}
}

// Type reports the kind of this value.
func (v *Value) Type() Kind { return v.kind }

// IsNull reports whether this value is JSON null.
func (v *Value) IsNull() bool { return v.kind == KindNull }

// NumberKind reports the storage width of a number value, or NumberNone for
// any other kind.
func (v *Value) NumberKind() NumberKind {
	if v.kind != KindNumber {
		return NumberNone
	}
	return v.num.numberKind()
}

// Get resolves a path of keys and indices starting at this value. Object
// segments are string keys; array segments are parsed as non-negative decimal
// indices. An empty path returns the value itself.
func (v *Value) Get(path ...string) (*Value, error) {
	cur := v
	for _, seg := range path {
		switch cur.kind {
		case KindObject:
			next, ok := cur.obj[seg]
			if !ok {
				return nil, &LookupError{Kind: LookupKeyNotFound, Segment: seg, Have: KindObject}
			}
			cur = next
		case KindArray:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 {
				return nil, &LookupError{Kind: LookupIndexOutOfRange, Segment: seg, Have: KindArray}
			}
			if idx >= len(cur.arr) {
				return nil, &LookupError{Kind: LookupIndexOutOfRange, Segment: seg, Have: KindArray}
			}
			cur = cur.arr[idx]
		default:
			return nil, &LookupError{Kind: LookupTypeMismatch, Segment: seg, Have: cur.kind}
		}
	}
	return cur, nil
}

// Keys returns the key set of an object, or the index strings "0".."n-1" of an
// array. Object keys are returned sorted so that Keys and Values pair up
// deterministically; the order carries no meaning and need not match input
// order.
func (v *Value) Keys() ([]string, error) {
	switch v.kind {
	case KindObject:
		return v.sortedKeys(), nil
	case KindArray:
		keys := make([]string, len(v.arr))
		for i := range v.arr {
			keys[i] = strconv.Itoa(i)
		}
		return keys, nil
	default:
		return nil, &LookupError{Kind: LookupTypeMismatch, Have: v.kind}
	}
}

// Values returns the member values of an object (paired with Keys order) or
// the elements of an array in original order.
func (v *Value) Values() ([]*Value, error) {
	switch v.kind {
	case KindObject:
		keys := v.sortedKeys()
		vals := make([]*Value, len(keys))
		for i, k := range keys {
			vals[i] = v.obj[k]
		}
		return vals, nil
	case KindArray:
		vals := make([]*Value, len(v.arr))
		copy(vals, v.arr)
		return vals, nil
	default:
		return nil, &LookupError{Kind: LookupTypeMismatch, Have: v.kind}
	}
}

// Len returns the member count of an object or element count of an array.
func (v *Value) Len() (int, error) {
	switch v.kind {
	case KindObject:
		return len(v.obj), nil
	case KindArray:
		return len(v.arr), nil
	default:
		return 0, &LookupError{Kind: LookupTypeMismatch, Have: v.kind}
	}
}

// String returns the compact JSON text of this value. Unlike Writer.Write it
// accepts scalar nodes, so it is usable on any node of a tree.
func (v *Value) String() string {
	var b strings.Builder
	w := NewWriter(&b)
	w.writeValue(v, 0, "", "", "")
	return b.String()
}

// Equal reports structural equality: same kind, same members under key-set
// pairing for objects, same element sequence for arrays. Numbers compare by
// numeric value, not storage width, so a reparsed tree compares equal to its
// source even where writing normalized an exponent form.
func Equal(a, b *Value) bool {
	if a == nil {
		a = nullValue
	}
	if b == nil {
		b = nullValue
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.boo == b.boo
	case KindString:
		return a.str == b.str
	case KindNumber:
		return a.num.decimal().Equal(b.num.decimal())
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.obj) != len(b.obj) {
			return false
		}
		for k, av := range a.obj {
			bv, ok := b.obj[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (v *Value) sortedKeys() []string {
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
