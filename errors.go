package jsonval

import (
	"errors"
	"fmt"
)

// ErrRootNotStructure is returned by Writer.Write when asked to serialize a
// scalar document root. Mirrors the parser's strict-document rule.
var ErrRootNotStructure = errors.New("jsonval: root value must be an object or array")

// ErrDepthExceeded is returned by the parser when nesting exceeds the
// configured MaxDepth.
var ErrDepthExceeded = errors.New("jsonval: maximum nesting depth exceeded")

// ParseError reports the first grammar violation encountered by the parser.
// There is no recovery; parsing aborts where the error points. Underlying I/O
// failures are never wrapped into a ParseError and propagate as-is.
type ParseError struct {
	Expected string // description of the expected character set
	Actual   rune   // the offending character; meaningless when EOF is set
	EOF      bool   // input ended where a character was expected
	Row, Col int    // position of the offending character, both 1-based
}

func (e *ParseError) Error() string {
	if e.EOF {
		return fmt.Sprintf("jsonval: parse error at row %d, col %d: expected %s, got end of input",
			e.Row, e.Col, e.Expected)
	}
	return fmt.Sprintf("jsonval: parse error at row %d, col %d: expected %s, got %q",
		e.Row, e.Col, e.Expected, e.Actual)
}

// LookupKind discriminates path navigation failures.
type LookupKind int

const (
	LookupKeyNotFound LookupKind = iota + 1
	LookupIndexOutOfRange
	LookupTypeMismatch
)

// LookupError reports a path segment that could not be resolved against the
// node it was applied to.
type LookupError struct {
	Kind    LookupKind
	Segment string // the offending segment; empty for whole-node operations
	Have    Kind   // kind of the node the operation was applied to
}

func (e *LookupError) Error() string {
	switch e.Kind {
	case LookupKeyNotFound:
		return fmt.Sprintf("jsonval: key %q not found in object", e.Segment)
	case LookupIndexOutOfRange:
		return fmt.Sprintf("jsonval: index %q out of range for array", e.Segment)
	case LookupTypeMismatch:
		if e.Segment != "" {
			return fmt.Sprintf("jsonval: cannot resolve segment %q against %s node", e.Segment, e.Have)
		}
		return fmt.Sprintf("jsonval: %s node has no children", e.Have)
	default:
		return "jsonval: lookup error"
	}
}

// ConvertKind discriminates conversion failures.
type ConvertKind int

const (
	ConvertTypeMismatch ConvertKind = iota + 1
	ConvertOverflow
	ConvertBadFormat
)

// ConvertError reports a (source kind, target) pair outside the coercion
// matrix, or a text form that the target cannot represent.
type ConvertError struct {
	Kind   ConvertKind
	From   Kind   // source value kind
	Target string // requested target, e.g. "int16", "bool", "array"
	Cause  error  // underlying parse error for text sources, may be nil
}

func (e *ConvertError) Error() string {
	switch e.Kind {
	case ConvertTypeMismatch:
		return fmt.Sprintf("jsonval: cannot convert %s value to %s", e.From, e.Target)
	case ConvertOverflow:
		return fmt.Sprintf("jsonval: %s value overflows %s", e.From, e.Target)
	case ConvertBadFormat:
		if e.Cause != nil {
			return fmt.Sprintf("jsonval: %s value is not a valid %s: %v", e.From, e.Target, e.Cause)
		}
		return fmt.Sprintf("jsonval: %s value is not a valid %s", e.From, e.Target)
	default:
		return "jsonval: conversion error"
	}
}

func (e *ConvertError) Unwrap() error { return e.Cause }
