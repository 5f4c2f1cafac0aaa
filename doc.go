// Package jsonval is a self-contained JSON value library: it parses JSON text
// into an immutable in-memory value tree, serializes the tree back to text with
// configurable formatting, and projects nodes into a closed set of Go types
// with exact numeric handling.
//
// Components:
//   - Value: tagged union over the six JSON kinds. Integers are stored at the
//     smallest signed width that fits (int8..int64, then big.Int); fractional
//     or exponent numbers are stored as arbitrary-precision decimals, never as
//     binary floats. No number is rounded during parsing.
//   - Reader: character-level recursive-descent parser with one-rune lookahead
//     and row/column tracking for diagnostics. The document root must be an
//     object or array.
//   - Writer: recursive emitter with caller-supplied line break, indent unit
//     and key padding strings. All-empty strings produce compact output.
//   - Conversions: a fixed method set (Bool, Int8..Int64, BigInt, Decimal,
//     Char, Text) plus generic element-wise slice helpers.
//
// Transcoding to other wire formats (CBOR, MessagePack, protobuf Struct) lives
// in the codec subpackage. Logging adapters for zap, logrus and slog live
// under log/.
//
// A Value is immutable after construction and safe for concurrent readers.
// The only mutable state is local to one in-progress parse or write.
package jsonval
