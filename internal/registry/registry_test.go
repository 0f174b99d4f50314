package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("a", 1)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = r.Register("a", 2)
	require.NoError(t, err)
	assert.False(t, isNew)

	v, ok := r.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, err = r.Register("", 3)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestRegistry_ConcurrentRegister(t *testing.T) {
	r := NewRegistry[int]()
	var wg sync.WaitGroup
	var mu sync.Mutex
	fresh := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			isNew, err := r.Register("x", i)
			assert.NoError(t, err)
			if isNew {
				mu.Lock()
				fresh++
				mu.Unlock()
			}
			_, ok := r.Get("x")
			assert.True(t, ok)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, fresh)

	_, ok := r.Get("missing")
	assert.False(t, ok)
}
