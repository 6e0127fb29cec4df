package outcome

// ResultWithWarning carries a value, an error or a warning.
type ResultWithWarning[V, E, W any] struct {
	tag     variant
	value   V
	err     E
	warning W
}

// Value builds a ResultWithWarning holding a value.
func Value[V, E, W any](v V) ResultWithWarning[V, E, W] {
	return ResultWithWarning[V, E, W]{tag: variantValue, value: v}
}

// Error builds a ResultWithWarning holding an error.
func Error[V, E, W any](e E) ResultWithWarning[V, E, W] {
	return ResultWithWarning[V, E, W]{tag: variantError, err: e}
}

// Warning builds a ResultWithWarning holding a warning.
func Warning[V, E, W any](w W) ResultWithWarning[V, E, W] {
	return ResultWithWarning[V, E, W]{tag: variantWarning, warning: w}
}

// MatchWarning dispatches to the callback of the populated variant.
func MatchWarning[V, E, W, R any](
	r ResultWithWarning[V, E, W],
	onValue func(V) R,
	onError func(E) R,
	onWarning func(W) R,
) R {
	switch r.tag {
	case variantValue:
		return onValue(r.value)
	case variantError:
		return onError(r.err)
	case variantWarning:
		return onWarning(r.warning)
	}
	panic("outcome: MatchWarning on an uninitialized ResultWithWarning")
}
