package jsonval

import (
	"errors"
	"strings"
	"testing"
)

func mustCompact(t *testing.T, v *Value) string {
	t.Helper()
	s, err := Compact(v)
	if err != nil {
		t.Fatalf("Compact: %v", err)
	}
	return s
}

func TestRoundTrip(t *testing.T) {
	docs := []string{
		`{}`,
		`[]`,
		employeesDoc,
		`{"b":true,"n":null,"s":"a\nb","x":[127,128,32768,2147483648,99999999999999999999]}`,
		`[1.5,1e10,-2.5e-3,0.1,1.50]`,
		`{"nested":{"deep":[[{"k":[null]}]]}}`,
	}
	for _, doc := range docs {
		v := mustParse(t, doc)
		out := mustCompact(t, v)
		again, err := Parse(out)
		if err != nil {
			t.Fatalf("reparse of %q: %v", out, err)
		}
		if !Equal(v, again) {
			t.Fatalf("round trip of %q changed the tree: %q", doc, out)
		}
		// idempotent compact write
		if out2 := mustCompact(t, again); out2 != out {
			t.Fatalf("compact write not idempotent: %q vs %q", out, out2)
		}
	}
}

func TestEscapeFidelity(t *testing.T) {
	v := mustParse(t, "[\"a\\nb\"]")
	got, err := mustGet(t, v, "0").Text()
	if err != nil || got != "a\nb" {
		t.Fatalf("parsed %q, %v", got, err)
	}
	if out := mustCompact(t, v); out != `["a\nb"]` {
		t.Fatalf("written form %q, want %q", out, `["a\nb"]`)
	}

	ctrl := Array(String("\x01"))
	if out := mustCompact(t, ctrl); out != "[\"\\u0001\"]" {
		t.Fatalf("control escape %q", out)
	}
	slash := Array(String(`a/b`), String(`q"w`), String(`x\y`))
	if out := mustCompact(t, slash); out != `["a\/b","q\"w","x\\y"]` {
		t.Fatalf("named escapes %q", out)
	}
}

func TestFormatting(t *testing.T) {
	v := mustParse(t, `{"a":1,"b":[true]}`)
	got, err := Format(v, "\n", "  ", " ")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	want := "{\n  \"a\": 1,\n  \"b\": [\n    true\n  ]\n}"
	if got != want {
		t.Fatalf("formatted output:\n%s\nwant:\n%s", got, want)
	}

	// all-empty formatting strings produce compact output
	if got := mustCompact(t, v); got != `{"a":1,"b":[true]}` {
		t.Fatalf("compact %q", got)
	}
}

func TestWriteRejectsScalarRoot(t *testing.T) {
	for _, v := range []*Value{String("x"), Int(1), Bool(true), Null()} {
		var b strings.Builder
		if err := NewWriter(&b).Write(v, "", "", ""); !errors.Is(err, ErrRootNotStructure) {
			t.Fatalf("%s root: got %v", v.Type(), err)
		}
	}
}

func TestValueStringOnScalars(t *testing.T) {
	cases := []struct {
		v    *Value
		want string
	}{
		{String("a"), `"a"`},
		{Int(5), "5"},
		{Bool(false), "false"},
		{Null(), "null"},
		{Array(Int(1), Null()), "[1,null]"},
	}
	for _, tc := range cases {
		if got := tc.v.String(); got != tc.want {
			t.Fatalf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestNumberTextIsExact(t *testing.T) {
	cases := []struct{ in, out string }{
		{"[1.50]", "[1.50]"},
		{"[99999999999999999999]", "[99999999999999999999]"},
		{"[-0.001]", "[-0.001]"},
		{"[1e10]", "[10000000000]"}, // exponent normalized, value exact
	}
	for _, tc := range cases {
		if got := mustCompact(t, mustParse(t, tc.in)); got != tc.out {
			t.Fatalf("%s written as %s, want %s", tc.in, got, tc.out)
		}
	}
}

func TestWriterSurfacesIOErrors(t *testing.T) {
	errSink := errors.New("sink closed")
	w := NewWriter(failWriter{err: errSink})
	if err := w.Write(mustParse(t, `{"a":1}`), "", "", ""); !errors.Is(err, errSink) {
		t.Fatalf("got %v", err)
	}
}

type failWriter struct{ err error }

func (f failWriter) Write([]byte) (int, error) { return 0, f.err }
