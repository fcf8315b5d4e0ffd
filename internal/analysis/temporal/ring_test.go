package temporal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formsense/motion-backend-go/internal/analysis/temporal"
)

func TestRing_FillsToCapacity(t *testing.T) {
	r := temporal.NewRing[int](3)
	r.Push(1)
	r.Push(2)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []int{1, 2}, r.Values())
}

func TestRing_EvictsOldestFirst(t *testing.T) {
	r := temporal.NewRing[int](60)
	for i := 0; i < 70; i++ {
		r.Push(i)
	}

	require.Equal(t, 60, r.Len())

	values := r.Values()
	// the ten oldest entries are gone; order stays oldest-first
	assert.Equal(t, 10, values[0])
	assert.Equal(t, 69, values[len(values)-1])
	for i := 1; i < len(values); i++ {
		assert.Equal(t, values[i-1]+1, values[i])
	}
}

func TestRing_Clear(t *testing.T) {
	r := temporal.NewRing[int](4)
	r.Push(1)
	r.Push(2)
	r.Clear()

	assert.Zero(t, r.Len())
	assert.Empty(t, r.Values())

	r.Push(7)
	assert.Equal(t, []int{7}, r.Values())
}
