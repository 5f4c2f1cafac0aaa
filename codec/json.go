package codec

import "github.com/unkn0wn-root/jsonval"

// JSON is the identity codec: compact JSON text via this library's own
// writer and parser. Lossless, including numeric widths.
type JSON struct{}

func (JSON) Encode(v *jsonval.Value) ([]byte, error) {
	s, err := jsonval.Compact(v)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (JSON) Decode(b []byte) (*jsonval.Value, error) {
	return jsonval.ParseBytes(b)
}
