package codec

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/unkn0wn-root/jsonval"
)

const sampleDoc = `{"b":true,"n":null,"s":"a\nb","nums":[127,32768,1.5],"o":{"k":"v"}}`

func mustParse(t *testing.T, s string) *jsonval.Value {
	t.Helper()
	v, err := jsonval.Parse(s)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return v
}

func roundTrip(t *testing.T, c Codec, v *jsonval.Value) *jsonval.Value {
	t.Helper()
	b, err := c.Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := c.Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return got
}

func TestJSONRoundTrip(t *testing.T) {
	v := mustParse(t, sampleDoc)
	got := roundTrip(t, JSON{}, v)
	if !jsonval.Equal(v, got) {
		t.Fatalf("JSON round trip changed the tree")
	}
}

func TestCBORRoundTripExact(t *testing.T) {
	c := MustCBOR(true)
	v := mustParse(t, `{"big":99999999999999999999,"dec":1.5,"tiny":-0.001,"i":[127,32768],"s":"x"}`)
	got := roundTrip(t, c, v)
	if !jsonval.Equal(v, got) {
		t.Fatalf("CBOR round trip changed the tree:\n in: %s\nout: %s", v, got)
	}

	// decimals survive as decimals, not floats
	dec, err := got.Get("dec")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if dec.NumberKind() != jsonval.NumberDecimal {
		t.Fatalf("dec came back as %v", dec.NumberKind())
	}
	big, err := got.Get("big")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if big.NumberKind() != jsonval.NumberBigInt {
		t.Fatalf("big came back as %v", big.NumberKind())
	}
}

func TestCBORDeterministic(t *testing.T) {
	c := MustCBOR(true)
	v := mustParse(t, sampleDoc)
	a, err := c.Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	b, err := c.Encode(v)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(a) != string(b) {
		t.Fatalf("deterministic encoding differs between runs")
	}
}

func TestMsgpackRoundTrip(t *testing.T) {
	v := mustParse(t, `{"b":false,"i":[1,-300],"s":"x","n":null}`)
	got := roundTrip(t, Msgpack{}, v)
	if !jsonval.Equal(v, got) {
		t.Fatalf("msgpack round trip changed the tree:\n in: %s\nout: %s", v, got)
	}
}

func TestMsgpackLossyCaveats(t *testing.T) {
	// integers beyond int64 come back as strings
	v := mustParse(t, `[99999999999999999999]`)
	got := roundTrip(t, Msgpack{}, v)
	e, err := got.Get("0")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if e.Type() != jsonval.KindString {
		t.Fatalf("oversized integer came back as %v", e.Type())
	}
	s, err := e.Text()
	if err != nil || s != "99999999999999999999" {
		t.Fatalf("text %q, %v", s, err)
	}

	// decimals come back numerically equal for float-exact values
	d := roundTrip(t, Msgpack{}, mustParse(t, `[1.5]`))
	e, err = d.Get("0")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	dec, err := e.Decimal()
	if err != nil || !dec.Equal(decimal.RequireFromString("1.5")) {
		t.Fatalf("decimal %s, %v", dec, err)
	}
}

func TestStructpbRoundTrip(t *testing.T) {
	v := mustParse(t, `{"b":true,"s":"x","n":null,"arr":[1,2.5],"o":{"k":"v"}}`)
	got := roundTrip(t, Structpb{}, v)

	// all numbers pass through float64; compare numerically
	if !jsonval.Equal(v, got) {
		t.Fatalf("structpb round trip changed the tree:\n in: %s\nout: %s", v, got)
	}
}

func TestStructpbArrayRoot(t *testing.T) {
	v := mustParse(t, `[1,"two",null]`)
	got := roundTrip(t, Structpb{}, v)
	if !jsonval.Equal(v, got) {
		t.Fatalf("array root changed:\n in: %s\nout: %s", v, got)
	}
}

func TestLimitRejectsOversizedPayloads(t *testing.T) {
	inner := JSON{}
	big := mustParse(t, `["`+"x"+`"]`)
	payload, err := inner.Encode(big)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	c := Limit{Inner: inner, MaxDecode: len(payload) - 1}
	if _, err := c.Decode(payload); err == nil || !strings.Contains(err.Error(), "too large") {
		t.Fatalf("want size error, got %v", err)
	}

	// disabled when MaxDecode <= 0
	c = Limit{Inner: inner}
	if _, err := c.Decode(payload); err != nil {
		t.Fatalf("unlimited decode: %v", err)
	}

	// Encode is forwarded untouched
	c = Limit{Inner: inner, MaxDecode: 1}
	if b, err := c.Encode(big); err != nil || string(b) != string(payload) {
		t.Fatalf("Encode forwarding: %q, %v", b, err)
	}
}
