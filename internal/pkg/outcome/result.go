// Package outcome holds closed tagged unions used by handlers to report
// their results. A carrier holds exactly one variant and the only way to
// read it is through Match, which requires a callback for every variant.
package outcome

type variant uint8

const (
	variantNone variant = iota
	variantValue
	variantError
	variantWarning
)

// Result carries either a value or an error.
type Result[V, E any] struct {
	tag   variant
	value V
	err   E
}

// Ok builds a Result holding a value.
func Ok[V, E any](v V) Result[V, E] {
	return Result[V, E]{tag: variantValue, value: v}
}

// Err builds a Result holding an error.
func Err[V, E any](e E) Result[V, E] {
	return Result[V, E]{tag: variantError, err: e}
}

// Match dispatches to the callback of the populated variant.
// It panics on a zero Result, which can only be produced by bypassing Ok/Err.
func Match[V, E, R any](r Result[V, E], onValue func(V) R, onError func(E) R) R {
	switch r.tag {
	case variantValue:
		return onValue(r.value)
	case variantError:
		return onError(r.err)
	}
	panic("outcome: Match on an uninitialized Result")
}
