package jsonval

import (
	"errors"
	"testing"
)

const employeesDoc = `{"employees":[{"name":"Mary"},{"name":"Paul"}]}`

func TestPathLookup(t *testing.T) {
	v := mustParse(t, employeesDoc)

	name, err := mustGet(t, v, "employees", "0", "name").Text()
	if err != nil || name != "Mary" {
		t.Fatalf("name=%q err=%v, want Mary", name, err)
	}

	// empty path returns the node itself
	self := mustGet(t, v)
	if self != v {
		t.Fatalf("empty path returned a different node")
	}
}

func TestPathLookupFailures(t *testing.T) {
	v := mustParse(t, employeesDoc)

	cases := []struct {
		path []string
		want LookupKind
	}{
		{[]string{"employees", "5"}, LookupIndexOutOfRange},
		{[]string{"employees", "-1"}, LookupIndexOutOfRange},
		{[]string{"employees", "zero"}, LookupIndexOutOfRange},
		{[]string{"missing"}, LookupKeyNotFound},
		{[]string{"employees", "0", "name", "x"}, LookupTypeMismatch},
	}
	for _, tc := range cases {
		_, err := v.Get(tc.path...)
		var le *LookupError
		if !errors.As(err, &le) || le.Kind != tc.want {
			t.Fatalf("Get(%v): got %v, want lookup kind %d", tc.path, err, tc.want)
		}
	}
}

func TestKeysAndValues(t *testing.T) {
	v := mustParse(t, `{"b":2,"a":1,"c":3}`)
	keys, err := v.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Fatalf("keys=%v", keys)
	}
	vals, err := v.Values()
	if err != nil {
		t.Fatalf("Values: %v", err)
	}
	// Values pairs with Keys order
	for i, k := range keys {
		got, err := vals[i].Int64()
		if err != nil {
			t.Fatalf("Int64: %v", err)
		}
		want := map[string]int64{"a": 1, "b": 2, "c": 3}[k]
		if got != want {
			t.Fatalf("value under %q = %d, want %d", k, got, want)
		}
	}

	arr := mustParse(t, `[10,20]`)
	keys, err = arr.Keys()
	if err != nil || len(keys) != 2 || keys[0] != "0" || keys[1] != "1" {
		t.Fatalf("array keys=%v err=%v", keys, err)
	}

	var le *LookupError
	if _, err := String("x").Keys(); !errors.As(err, &le) || le.Kind != LookupTypeMismatch {
		t.Fatalf("scalar Keys: %v", err)
	}
	if _, err := Int(1).Values(); !errors.As(err, &le) || le.Kind != LookupTypeMismatch {
		t.Fatalf("scalar Values: %v", err)
	}
}

func TestConstructorsCopyInputs(t *testing.T) {
	members := map[string]*Value{"a": Int(1)}
	obj := Object(members)
	members["b"] = Int(2)
	if n, _ := obj.Len(); n != 1 {
		t.Fatalf("Object shares caller map; len=%d", n)
	}

	elems := []*Value{Int(1), Int(2)}
	arr := Array(elems...)
	elems[0] = Int(9)
	if got, _ := mustGet(t, arr, "0").Int64(); got != 1 {
		t.Fatalf("Array shares caller slice; got %d", got)
	}
}

func TestEqual(t *testing.T) {
	a := mustParse(t, `{"x":[1,2.5,"s",null,true]}`)
	b := mustParse(t, `{"x":[1,2.5,"s",null,true]}`)
	if !Equal(a, b) {
		t.Fatalf("identical docs not equal")
	}
	c := mustParse(t, `{"x":[1,2.5,"s",null,false]}`)
	if Equal(a, c) {
		t.Fatalf("different docs equal")
	}
	// numbers compare numerically across storage widths
	if !Equal(Int(10000000000), mustGet(t, mustParse(t, "[1e10]"), "0")) {
		t.Fatalf("1e10 != 10000000000")
	}
}

func TestZeroAndNullValue(t *testing.T) {
	if Null().Type() != KindNull || !Null().IsNull() {
		t.Fatalf("Null() kind")
	}
	var zero Value
	if zero.Type() != KindNull {
		t.Fatalf("zero Value kind %v, want null", zero.Type())
	}
}
