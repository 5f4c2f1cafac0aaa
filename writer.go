package jsonval

import (
	"io"
	"strings"
)

// Writer serializes value trees to an output stream. Not safe for concurrent
// use; write errors stick until the next Write call.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter returns a Writer emitting to w.
func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

// Write serializes v. lineBreak is emitted before each member at its indent,
// indent is repeated per nesting level, and pad separates ':' from an object
// member value. All-empty strings produce compact output. The root must be an
// object or array; scalars are rejected with ErrRootNotStructure.
func (w *Writer) Write(v *Value, lineBreak, indent, pad string) error {
	if v.kind != KindObject && v.kind != KindArray {
		return ErrRootNotStructure
	}
	w.err = nil
	w.writeValue(v, 0, lineBreak, indent, pad)
	return w.err
}

// Format serializes v to a string with the given formatting strings.
func Format(v *Value, lineBreak, indent, pad string) (string, error) {
	var b strings.Builder
	if err := NewWriter(&b).Write(v, lineBreak, indent, pad); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Compact serializes v with no interstitial whitespace. This is the
// zero-argument write convenience and the form Parse round-trips.
func Compact(v *Value) (string, error) {
	return Format(v, "", "", "")
}

func (w *Writer) writeValue(v *Value, level int, lineBreak, indent, pad string) {
	switch v.kind {
	case KindObject:
		keys := v.sortedKeys()
		w.emit("{")
		for i, k := range keys {
			w.indentation(level+1, lineBreak, indent)
			w.emit(`"`)
			w.emit(escape(k))
			w.emit(`":`)
			w.emit(pad)
			w.writeValue(v.obj[k], level+1, lineBreak, indent, pad)
			if i < len(keys)-1 {
				w.emit(",")
			}
		}
		w.indentation(level, lineBreak, indent)
		w.emit("}")
	case KindArray:
		w.emit("[")
		for i, e := range v.arr {
			w.indentation(level+1, lineBreak, indent)
			w.writeValue(e, level+1, lineBreak, indent, pad)
			if i < len(v.arr)-1 {
				w.emit(",")
			}
		}
		w.indentation(level, lineBreak, indent)
		w.emit("]")
	case KindString:
		w.emit(`"`)
		w.emit(escape(v.str))
		w.emit(`"`)
	case KindNumber:
		w.emit(v.num.text())
	case KindBool:
		if v.boo {
			w.emit("true")
		} else {
			w.emit("false")
		}
	case KindNull:
		w.emit("null")
	}
}

func (w *Writer) indentation(level int, lineBreak, indent string) {
	if lineBreak == "" && indent == "" {
		return
	}
	w.emit(lineBreak)
	for i := 0; i < level; i++ {
		w.emit(indent)
	}
}

func (w *Writer) emit(s string) {
	if w.err != nil || s == "" {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

const hexdigits = "0123456789abcdef"

// escape applies JSON output escaping: controls below U+0020 as \u00XX, the
// named escapes for quote, backslash, slash and the five control shorthands,
// everything else passed through.
func escape(s string) string {
	if !needsEscape(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, c := range s {
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '/':
			b.WriteString(`\/`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 {
				b.WriteString(`\u00`)
				b.WriteByte(hexdigits[c>>4])
				b.WriteByte(hexdigits[c&0xf])
			} else {
				b.WriteRune(c)
			}
		}
	}
	return b.String()
}

func needsEscape(s string) bool {
	for _, c := range s {
		if c < 0x20 || c == '"' || c == '\\' || c == '/' {
			return true
		}
	}
	return false
}
