package pool_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heaplab/heapcore/internal/block"
)

// S1: split-and-coalesce.
func TestScenarioSplitAndCoalesce(t *testing.T) {
	p := newTestPool(t)

	p.BeginScope()
	p1, err := p.Allocate(800, block.BestFit)
	require.NoError(t, err)
	p2, err := p.Allocate(800, block.BestFit)
	require.NoError(t, err)

	p.Deallocate(p1)
	p.Deallocate(p2)
	p.EndScope() // nothing left tracked; both already freed directly

	ptr, err := p.Allocate(1600, block.BestFit)
	require.NoError(t, err)
	require.GreaterOrEqual(t, p.UsableSize(ptr), uintptr(1600))
}

// S2: fixed-size reuse.
func TestScenarioFixedSizeReuse(t *testing.T) {
	p := newTestPool(t)

	p1, err := p.Allocate(24, block.BestFit)
	require.NoError(t, err)
	p.Deallocate(p1)

	p2, err := p.Allocate(24, block.BestFit)
	require.NoError(t, err)
	require.Equal(t, p1, p2)
}

// S3: segregated promotion.
func TestScenarioSegregatedPromotion(t *testing.T) {
	p := newTestPool(t)

	ptr, err := p.Allocate(300, block.BestFit)
	require.NoError(t, err)
	h := block.FromPayload(ptr)
	require.Equal(t, block.Segregated, h.Strategy)
	require.Equal(t, uintptr(512), h.Size)
}

// S4: aligned allocation.
func TestScenarioAlignedAllocation(t *testing.T) {
	p := newTestPool(t)

	ptr, err := p.AllocateAligned(100, 64)
	require.NoError(t, err)
	require.Zero(t, uintptr(ptr)%64)
	p.DeallocateAligned(ptr)
}

// S5: scope bulk free.
func TestScenarioScopeBulkFree(t *testing.T) {
	p := newTestPool(t)
	before := p.Stats().LiveBytes

	p.BeginScope()
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		size := 16 + rng.Intn(512-16)
		_, err := p.Allocate(size, block.BestFit)
		require.NoError(t, err)
	}
	p.EndScope()

	require.Equal(t, before, p.Stats().LiveBytes)

	ptr, err := p.Allocate(512, block.BestFit)
	require.NoError(t, err)
	require.NotNil(t, ptr)
}

// Explicit pool/segregated/fixed-size routing bypasses reclassification.
func TestExplicitStrategyBypassesReclassification(t *testing.T) {
	p := newTestPool(t)

	ptr, err := p.Allocate(20, block.PoolBased)
	require.NoError(t, err)
	h := block.FromPayload(ptr)
	require.Equal(t, block.PoolBased, h.Strategy)
}

func TestSegregatedAboveLargestClassFallsThroughToBestFit(t *testing.T) {
	p := newTestPool(t)

	ptr, err := p.Allocate(5000, block.Segregated)
	require.NoError(t, err)
	h := block.FromPayload(ptr)
	require.Equal(t, block.BestFit, h.Strategy)
}

func TestFixedSizeAboveLargestSlabRoutesToBestFit(t *testing.T) {
	p := newTestPool(t)

	ptr, err := p.Allocate(1000, block.FixedSize)
	require.NoError(t, err)
	h := block.FromPayload(ptr)
	require.Equal(t, block.BestFit, h.Strategy)
}
