// Package codec transcodes jsonval value trees to and from other wire
// formats. JSON is lossless; see each codec for its fidelity caveats.
package codec

import "github.com/unkn0wn-root/jsonval"

// Codec encodes/decodes a value tree to []byte in some wire format.
type Codec interface {
	Encode(*jsonval.Value) ([]byte, error)
	Decode([]byte) (*jsonval.Value, error)
}
