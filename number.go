package jsonval

import (
	"math"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
)

// NumberKind identifies the storage representation of a number value.
type NumberKind int

const (
	NumberNone NumberKind = iota
	NumberInt8
	NumberInt16
	NumberInt32
	NumberInt64
	NumberBigInt
	NumberDecimal
)

func (k NumberKind) String() string {
	switch k {
	case NumberInt8:
		return "int8"
	case NumberInt16:
		return "int16"
	case NumberInt32:
		return "int32"
	case NumberInt64:
		return "int64"
	case NumberBigInt:
		return "bigint"
	case NumberDecimal:
		return "decimal"
	default:
		return "none"
	}
}

type numKind uint8

const (
	numInt8 numKind = iota
	numInt16
	numInt32
	numInt64
	numBig
	numDecimal
)

// number is the exact payload of a KindNumber value. Fixed widths use i,
// arbitrary-precision integers use big, decimals use dec.
type number struct {
	kind numKind
	i    int64
	big  *big.Int
	dec  decimal.Decimal
}

// narrowInt64 stores i at the smallest signed width that represents it
// exactly.
func narrowInt64(i int64) number {
	switch {
	case i >= math.MinInt8 && i <= math.MaxInt8:
		return number{kind: numInt8, i: i}
	case i >= math.MinInt16 && i <= math.MaxInt16:
		return number{kind: numInt16, i: i}
	case i >= math.MinInt32 && i <= math.MaxInt32:
		return number{kind: numInt32, i: i}
	default:
		return number{kind: numInt64, i: i}
	}
}

// narrowBig narrows like narrowInt64 but admits values beyond int64. The
// input is copied when kept arbitrary-precision.
func narrowBig(b *big.Int) number {
	if b.IsInt64() {
		return narrowInt64(b.Int64())
	}
	return number{kind: numBig, big: new(big.Int).Set(b)}
}

func (n number) numberKind() NumberKind {
	switch n.kind {
	case numInt8:
		return NumberInt8
	case numInt16:
		return NumberInt16
	case numInt32:
		return NumberInt32
	case numInt64:
		return NumberInt64
	case numBig:
		return NumberBigInt
	default:
		return NumberDecimal
	}
}

// text returns the canonical base-10 form of the exact payload. This is what
// the serializer emits; no reformatting or rounding happens here.
func (n number) text() string {
	switch n.kind {
	case numBig:
		return n.big.String()
	case numDecimal:
		return n.dec.String()
	default:
		return strconv.FormatInt(n.i, 10)
	}
}

// decimal widens any payload exactly into an arbitrary-precision decimal.
func (n number) decimal() decimal.Decimal {
	switch n.kind {
	case numBig:
		return decimal.NewFromBigInt(n.big, 0)
	case numDecimal:
		return n.dec
	default:
		return decimal.NewFromInt(n.i)
	}
}

// bigInt returns the integral part of the payload, truncating decimals toward
// zero. The result is never shared with internal state.
func (n number) bigInt() *big.Int {
	switch n.kind {
	case numBig:
		return new(big.Int).Set(n.big)
	case numDecimal:
		return n.dec.BigInt()
	default:
		return big.NewInt(n.i)
	}
}

func (n number) isZero() bool {
	switch n.kind {
	case numBig:
		return n.big.Sign() == 0
	case numDecimal:
		return n.dec.IsZero()
	default:
		return n.i == 0
	}
}

// truncInt64 reduces the integral part to the given bit width by
// two's-complement truncation, the conversion matrix behavior for numeric
// sources.
func (n number) truncInt64(bits uint) int64 {
	if n.kind != numBig && n.kind != numDecimal {
		return truncBits(big.NewInt(n.i), bits)
	}
	return truncBits(n.bigInt(), bits)
}

// truncBits interprets the low `bits` bits of b as a signed integer. big.Int
// bitwise ops act on an infinite two's-complement form, so And with a mask
// yields b mod 2^bits even for negative b.
func truncBits(b *big.Int, bits uint) int64 {
	mask := new(big.Int).Lsh(big.NewInt(1), bits)
	mask.Sub(mask, big.NewInt(1))
	r := new(big.Int).And(b, mask)
	half := new(big.Int).Lsh(big.NewInt(1), bits-1)
	if r.Cmp(half) >= 0 {
		r.Sub(r, new(big.Int).Lsh(big.NewInt(1), bits))
	}
	return r.Int64()
}
