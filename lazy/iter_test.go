package lazy_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghaida/delayed/lazy"
)

// TestPull_ForcesOnFirstNext verifies obtaining a pull iterator does not
// force the handle; the first next call does, exactly once.
func TestPull_ForcesOnFirstNext(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	v := lazy.New(func() []int {
		calls.Add(1)
		return []int{1, 2, 3}
	})

	next, stop := lazy.Pull(v)
	defer stop()

	// Iterator creation is inert.
	assert.Equal(t, int32(0), calls.Load())
	assert.False(t, v.Forced())

	first, ok := next()
	require.True(t, ok)
	assert.Equal(t, 1, first)
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, v.Forced())

	second, ok := next()
	require.True(t, ok)
	assert.Equal(t, 2, second)
	assert.Equal(t, int32(1), calls.Load())
}

// TestSeq_RangesOverForcedSlice verifies the full sequence comes out in
// order and the producer still runs once.
func TestSeq_RangesOverForcedSlice(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	v := lazy.New(func() []string {
		calls.Add(1)
		return []string{"a", "b"}
	})

	var got []string
	for s := range lazy.Seq(v) {
		got = append(got, s)
	}

	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, int32(1), calls.Load())
}

// TestSeq_EarlyBreak verifies a consumer can stop mid-sequence.
func TestSeq_EarlyBreak(t *testing.T) {
	t.Parallel()

	v := lazy.New(func() []int { return []int{1, 2, 3} })

	var got []int
	for n := range lazy.Seq(v) {
		got = append(got, n)
		if len(got) == 2 {
			break
		}
	}

	assert.Equal(t, []int{1, 2}, got)
}
