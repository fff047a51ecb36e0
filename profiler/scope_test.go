package profiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/scopetab/profiler"
)

func TestNow_Monotonic(t *testing.T) {
	t.Parallel()

	prev := profiler.Now()
	for range 1000 {
		cur := profiler.Now()
		assert.GreaterOrEqual(t, cur, prev)

		prev = cur
	}
}

func TestBegin(t *testing.T) {
	t.Parallel()

	before := profiler.Now()
	s := profiler.Begin("region")
	after := profiler.Now()

	assert.Equal(t, "region", s.Name)
	assert.GreaterOrEqual(t, s.Start, before)
	assert.LessOrEqual(t, s.Start, after)
	assert.Zero(t, s.End)
}
