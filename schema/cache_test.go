package schema

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_BuildsOnce(t *testing.T) {
	c := NewCache()
	var builds atomic.Int32

	build := func() (*Schema, error) {
		builds.Add(1)
		return &Schema{Kind: String}, nil
	}

	first, err := c.Resolve("pkg.Func", build)
	require.NoError(t, err)
	second, err := c.Resolve("pkg.Func", build)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), builds.Load())
}

func TestCache_ConcurrentFirstTouch(t *testing.T) {
	c := NewCache()
	var builds atomic.Int32

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Resolve("hot", func() (*Schema, error) {
				builds.Add(1)
				return &Schema{Kind: Int}, nil
			})
			if err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load(), "concurrent first use must compile once")
}

func TestCache_BuildErrorNotCached(t *testing.T) {
	c := NewCache()
	boom := errors.New("no schema")

	_, err := c.Resolve("k", func() (*Schema, error) { return nil, boom })
	require.ErrorIs(t, err, boom)

	s, err := c.Resolve("k", func() (*Schema, error) { return &Schema{Kind: Bool}, nil })
	require.NoError(t, err)
	assert.Equal(t, Bool, s.Kind)
}

func TestCache_PutAndGet(t *testing.T) {
	c := NewCache()
	explicit := &Schema{Kind: Object}
	c.Put("k", explicit)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Same(t, explicit, got)

	_, ok = c.Get("absent")
	assert.False(t, ok)
}
