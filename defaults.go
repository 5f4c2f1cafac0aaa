package jsonval

// DefaultMaxDepth bounds nesting when ReaderOptions.MaxDepth is zero. Deep
// enough for any sane document while keeping hostile input from exhausting
// the stack.
const DefaultMaxDepth = 10000

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
