package jsonval

import (
	"bytes"
	"io"
	"math/big"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/unkn0wn-root/jsonval/internal/scan"
)

// ReaderOptions tune parsing. The zero value is ready to use.
type ReaderOptions struct {
	// Logger receives parse diagnostics (duplicate keys, depth aborts).
	// nil disables logging.
	Logger Logger
	// MaxDepth bounds object/array nesting. 0 => DefaultMaxDepth,
	// negative => unlimited.
	MaxDepth int
}

// Reader parses JSON documents from a character stream. A Reader stops after
// the root structure of each document, so several documents can be read
// back-to-back from one stream. Not safe for concurrent use.
type Reader struct {
	sc       *scan.Scanner
	log      Logger
	maxDepth int
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader, opts ReaderOptions) *Reader {
	log := opts.Logger
	if log == nil {
		log = NopLogger{}
	}
	return &Reader{
		sc:       scan.New(r),
		log:      log,
		maxDepth: coalesce(opts.MaxDepth, DefaultMaxDepth),
	}
}

// Parse parses a single JSON document from s with default options.
func Parse(s string) (*Value, error) {
	return NewReader(strings.NewReader(s), ReaderOptions{}).Read()
}

// ParseBytes parses a single JSON document from b with default options.
func ParseBytes(b []byte) (*Value, error) {
	return NewReader(bytes.NewReader(b), ReaderOptions{}).Read()
}

// Read parses the next document. The root must be an object or array; a bare
// scalar at the document root is a parse error. Input past the root structure
// is left unread.
func (r *Reader) Read() (*Value, error) {
	r.sc.SkipSpace()
	c, ok := r.sc.Peek()
	if !ok || (c != '{' && c != '[') {
		return nil, r.fail("'{' or '['")
	}
	if c == '{' {
		return r.readObject(1)
	}
	return r.readArray(1)
}

// fail builds a ParseError at the current position, or surfaces a pending I/O
// failure unchanged.
func (r *Reader) fail(expected string) error {
	if err := r.sc.Err(); err != nil {
		return err
	}
	c, ok := r.sc.Peek()
	return &ParseError{
		Expected: expected,
		Actual:   c,
		EOF:      !ok,
		Row:      r.sc.Row(),
		Col:      r.sc.Col(),
	}
}

// check consumes the expected rune or fails.
func (r *Reader) check(want rune) error {
	if c, ok := r.sc.Peek(); !ok || c != want {
		return r.fail("'" + string(want) + "'")
	}
	r.sc.Pop()
	return nil
}

func (r *Reader) readValue(depth int) (*Value, error) {
	r.sc.SkipSpace()
	c, ok := r.sc.Peek()
	if !ok {
		return nil, r.fail("a value")
	}
	switch {
	case c == '{':
		return r.readObject(depth + 1)
	case c == '[':
		return r.readArray(depth + 1)
	case c == '"':
		s, err := r.readStringLiteral()
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case c == 't':
		return r.readKeyword("true", Bool(true))
	case c == 'f':
		return r.readKeyword("false", Bool(false))
	case c == 'n':
		return r.readKeyword("null", Null())
	case c == '-' || (c >= '0' && c <= '9'):
		return r.readNumber()
	default:
		return nil, r.fail(`'{', '[', '"', 't', 'f', 'n', '-' or a digit`)
	}
}

func (r *Reader) readObject(depth int) (*Value, error) {
	if r.maxDepth > 0 && depth > r.maxDepth {
		r.log.Warn("nesting depth limit hit", Fields{"max_depth": r.maxDepth, "row": r.sc.Row(), "col": r.sc.Col()})
		return nil, ErrDepthExceeded
	}
	if err := r.check('{'); err != nil {
		return nil, err
	}
	obj := make(map[string]*Value)
	r.sc.SkipSpace()
	if c, ok := r.sc.Peek(); ok && c == '}' {
		r.sc.Pop()
		return &Value{kind: KindObject, obj: obj}, nil
	}
	for {
		key, err := r.readStringLiteral()
		if err != nil {
			return nil, err
		}
		r.sc.SkipSpace()
		if err := r.check(':'); err != nil {
			return nil, err
		}
		val, err := r.readValue(depth)
		if err != nil {
			return nil, err
		}
		r.sc.SkipSpace()
		if _, dup := obj[key]; dup {
			// last write wins
			r.log.Debug("duplicate object key", Fields{"key": key, "row": r.sc.Row(), "col": r.sc.Col()})
		}
		obj[key] = val
		c, ok := r.sc.Peek()
		switch {
		case ok && c == ',':
			r.sc.Pop()
		case ok && c == '}':
			r.sc.Pop()
			return &Value{kind: KindObject, obj: obj}, nil
		default:
			return nil, r.fail("',' or '}'")
		}
	}
}

func (r *Reader) readArray(depth int) (*Value, error) {
	if r.maxDepth > 0 && depth > r.maxDepth {
		r.log.Warn("nesting depth limit hit", Fields{"max_depth": r.maxDepth, "row": r.sc.Row(), "col": r.sc.Col()})
		return nil, ErrDepthExceeded
	}
	if err := r.check('['); err != nil {
		return nil, err
	}
	var arr []*Value
	r.sc.SkipSpace()
	if c, ok := r.sc.Peek(); ok && c == ']' {
		r.sc.Pop()
		return &Value{kind: KindArray, arr: arr}, nil
	}
	for {
		val, err := r.readValue(depth)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
		r.sc.SkipSpace()
		c, ok := r.sc.Peek()
		switch {
		case ok && c == ',':
			r.sc.Pop()
		case ok && c == ']':
			r.sc.Pop()
			return &Value{kind: KindArray, arr: arr}, nil
		default:
			return nil, r.fail("',' or ']'")
		}
	}
}

func (r *Reader) readStringLiteral() (string, error) {
	r.sc.SkipSpace()
	if err := r.check('"'); err != nil {
		return "", err
	}
	var b strings.Builder
	for {
		c, ok := r.sc.Peek()
		if !ok {
			return "", r.fail(`'"'`)
		}
		switch c {
		case '"':
			r.sc.Pop()
			return b.String(), nil
		case '\\':
			r.sc.Pop()
			if err := r.readEscape(&b); err != nil {
				return "", err
			}
		default:
			r.sc.Pop()
			b.WriteRune(c)
		}
	}
}

// readEscape consumes one escape body (the backslash is already consumed) and
// appends the decoded text. A \uXXXX high surrogate joins with an immediately
// following \uXXXX low surrogate into one code point; Go strings are UTF-8,
// so an unpaired surrogate unit becomes U+FFFD.
func (r *Reader) readEscape(b *strings.Builder) error {
	c, ok := r.sc.Peek()
	if !ok {
		return r.fail("an escape character")
	}
	switch c {
	case '"', '\\', '/':
		r.sc.Pop()
		b.WriteRune(c)
	case 'b':
		r.sc.Pop()
		b.WriteByte('\b')
	case 'f':
		r.sc.Pop()
		b.WriteByte('\f')
	case 'n':
		r.sc.Pop()
		b.WriteByte('\n')
	case 'r':
		r.sc.Pop()
		b.WriteByte('\r')
	case 't':
		r.sc.Pop()
		b.WriteByte('\t')
	case 'u':
		r.sc.Pop()
		u1, err := r.readHex4()
		if err != nil {
			return err
		}
		if !utf16.IsSurrogate(u1) {
			b.WriteRune(u1)
			return nil
		}
		if c, ok := r.sc.Peek(); ok && c == '\\' {
			r.sc.Pop()
			if c2, ok2 := r.sc.Peek(); ok2 && c2 == 'u' {
				r.sc.Pop()
				u2, err := r.readHex4()
				if err != nil {
					return err
				}
				if joined := utf16.DecodeRune(u1, u2); joined != utf8.RuneError {
					b.WriteRune(joined)
					return nil
				}
				b.WriteRune(utf8.RuneError)
				b.WriteRune(u2) // WriteRune maps a lone surrogate to U+FFFD itself
				return nil
			}
			// backslash starts some other escape; the surrogate stays lone
			b.WriteRune(utf8.RuneError)
			return r.readEscape(b)
		}
		b.WriteRune(utf8.RuneError)
	default:
		return r.fail(`'"', '\', '/', 'b', 'f', 'n', 'r', 't' or 'u'`)
	}
	return nil
}

// readHex4 consumes four hex digits and combines them big-endian into one
// UTF-16 code unit.
func (r *Reader) readHex4() (rune, error) {
	var u rune
	for i := 0; i < 4; i++ {
		c, ok := r.sc.Peek()
		if !ok {
			return 0, r.fail("a hexadecimal digit")
		}
		d, valid := hexDigit(c)
		if !valid {
			return 0, r.fail("a hexadecimal digit")
		}
		r.sc.Pop()
		u = u<<4 | rune(d)
	}
	return u, nil
}

func hexDigit(c rune) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

// readNumber greedily consumes sign, digits, fraction and exponent. Each
// digit run must be non-empty, so a lone '-' or a trailing '.' is rejected
// where it stands.
func (r *Reader) readNumber() (*Value, error) {
	var b strings.Builder
	whole := true
	if c, ok := r.sc.Peek(); ok && c == '-' {
		r.sc.Pop()
		b.WriteByte('-')
	}
	if err := r.readDigits(&b); err != nil {
		return nil, err
	}
	if c, ok := r.sc.Peek(); ok && c == '.' {
		r.sc.Pop()
		b.WriteByte('.')
		whole = false
		if err := r.readDigits(&b); err != nil {
			return nil, err
		}
	}
	if c, ok := r.sc.Peek(); ok && (c == 'e' || c == 'E') {
		r.sc.Pop()
		b.WriteRune(c)
		whole = false
		if c, ok := r.sc.Peek(); ok && (c == '-' || c == '+') {
			r.sc.Pop()
			b.WriteRune(c)
		}
		if err := r.readDigits(&b); err != nil {
			return nil, err
		}
	}
	text := b.String()
	if whole {
		i, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return nil, r.fail("a digit")
		}
		return &Value{kind: KindNumber, num: narrowBig(i)}, nil
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return nil, r.fail("a digit")
	}
	return Decimal(d), nil
}

func (r *Reader) readDigits(b *strings.Builder) error {
	n := 0
	for {
		c, ok := r.sc.Peek()
		if !ok || c < '0' || c > '9' {
			break
		}
		r.sc.Pop()
		b.WriteRune(c)
		n++
	}
	if n == 0 {
		return r.fail("a digit")
	}
	return nil
}

// readKeyword matches lit character-by-character and yields v.
func (r *Reader) readKeyword(lit string, v *Value) (*Value, error) {
	for _, c := range lit {
		if err := r.check(c); err != nil {
			return nil, err
		}
	}
	return v, nil
}
