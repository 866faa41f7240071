package cache_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heaplab/heapcore/internal/block"
	"github.com/heaplab/heapcore/internal/cache"
	"github.com/heaplab/heapcore/internal/slab"
)

func TestGetRefillsFromSlab(t *testing.T) {
	backing := slab.New(block.OSChunkSource{}, 32, 4096)
	tc := cache.New(backing)

	h, err := tc.Get()
	require.NoError(t, err)
	require.Equal(t, uintptr(32), h.Size)
	require.False(t, h.Free)
}

func TestPutThenGetReusesBlock(t *testing.T) {
	backing := slab.New(block.OSChunkSource{}, 32, 4096)
	tc := cache.New(backing)

	h1, err := tc.Get()
	require.NoError(t, err)
	addr := h1.Addr()

	tc.Put(h1)
	require.True(t, h1.Free)

	h2, err := tc.Get()
	require.NoError(t, err)
	require.Equal(t, addr, h2.Addr())
}

func TestReleaseThreadCacheDrainsToSlab(t *testing.T) {
	backing := slab.New(block.OSChunkSource{}, 32, 4096)
	tc := cache.New(backing)

	h, err := tc.Get()
	require.NoError(t, err)
	tc.Put(h)

	tc.ReleaseThreadCache()
	_, free := backing.Stats()
	require.Greater(t, free, 0)
}
