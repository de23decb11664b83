package lazy_test

import (
	"errors"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sghaida/delayed/lazy"
)

// TestMap_DefersSourceAndTransform verifies neither the source producer nor
// the transform runs until the derived handle is forced.
func TestMap_DefersSourceAndTransform(t *testing.T) {
	t.Parallel()

	var produced, transformed atomic.Int32

	source := lazy.New(func() int {
		produced.Add(1)
		return 21
	})
	derived := lazy.Map(source, func(n int) string {
		transformed.Add(1)
		return strconv.Itoa(n * 2)
	})

	assert.Equal(t, int32(0), produced.Load())
	assert.Equal(t, int32(0), transformed.Load())
	assert.False(t, source.Forced())

	assert.Equal(t, "42", derived.MustForce())
	assert.True(t, source.Forced())
	assert.Equal(t, int32(1), produced.Load())
	assert.Equal(t, int32(1), transformed.Load())

	// Source is shared: forcing it again reuses the cache.
	got, err := source.Force()
	require.NoError(t, err)
	assert.Equal(t, 21, got)
	assert.Equal(t, int32(1), produced.Load())
}

// TestMap_PropagatesSourceFailure verifies a failing source surfaces through
// the derived handle and is not cached on either side.
func TestMap_PropagatesSourceFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	source := lazy.NewErr(func() (int, error) { return 0, boom })
	derived := lazy.Map(source, func(n int) int { return n + 1 })

	_, err := derived.Force()
	require.ErrorIs(t, err, boom)
	assert.False(t, source.Forced())
	assert.False(t, derived.Forced())
}

// TestMapErr_TransformFailure verifies a failing transform surfaces on the
// derived handle while the source stays cached.
func TestMapErr_TransformFailure(t *testing.T) {
	t.Parallel()

	bad := errors.New("bad transform")
	source := lazy.New(func() int { return 1 })
	derived := lazy.MapErr(source, func(int) (int, error) { return 0, bad })

	_, err := derived.Force()
	require.ErrorIs(t, err, bad)
	assert.True(t, source.Forced())
	assert.False(t, derived.Forced())
}
