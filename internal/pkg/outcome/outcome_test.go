package outcome

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch_DispatchesValue(t *testing.T) {
	r := Ok[int, error](42)

	got := Match(r,
		func(v int) string { return "value" },
		func(err error) string { return "error" },
	)

	assert.Equal(t, "value", got)
}

func TestMatch_DispatchesError(t *testing.T) {
	r := Err[int](errors.New("boom"))

	var seen error
	got := Match(r,
		func(v int) int { return v },
		func(err error) int { seen = err; return -1 },
	)

	assert.Equal(t, -1, got)
	assert.EqualError(t, seen, "boom")
}

func TestMatch_ZeroValuePanics(t *testing.T) {
	var r Result[int, error]

	assert.Panics(t, func() {
		Match(r, func(int) bool { return true }, func(error) bool { return false })
	})
}

func TestMatchWarning_EachVariant(t *testing.T) {
	project := func(r ResultWithWarning[string, int, bool]) string {
		return MatchWarning(r,
			func(v string) string { return "value:" + v },
			func(int) string { return "error" },
			func(bool) string { return "warning" },
		)
	}

	assert.Equal(t, "value:x", project(Value[string, int, bool]("x")))
	assert.Equal(t, "error", project(Error[string, int, bool](7)))
	assert.Equal(t, "warning", project(Warning[string, int](true)))
}

func TestMatchWarning_OnlyPopulatedCallbackRuns(t *testing.T) {
	calls := 0
	r := Warning[string, error]("missing")

	MatchWarning(r,
		func(string) struct{} { calls += 100; return struct{}{} },
		func(error) struct{} { calls += 10; return struct{}{} },
		func(string) struct{} { calls++; return struct{}{} },
	)

	assert.Equal(t, 1, calls)
}
