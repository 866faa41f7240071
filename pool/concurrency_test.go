package pool_test

import (
	"math/rand"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/heaplab/heapcore/internal/block"
	"github.com/heaplab/heapcore/pool"
)

// rlSmallWorkload replays the rl_small preset: small payloads (16-256
// bytes), roughly balanced alloc/free traffic, capped live-set so a
// thread doesn't monotonically grow the heap across 200k ops.
func rlSmallWorkload(t *testing.T, p *pool.Pool, seed int64, ops int) (allocs, frees int64) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	const maxLive = 256

	live := make([]unsafe.Pointer, 0, maxLive)
	for i := 0; i < ops; i++ {
		doAlloc := len(live) == 0 || (len(live) < maxLive && rng.Intn(100) < 60)
		if doAlloc {
			size := 16 + rng.Intn(256-16)
			ptr, err := p.Allocate(size, block.BestFit)
			require.NoError(t, err)
			require.NotNil(t, ptr)
			live = append(live, ptr)
			allocs++
			continue
		}

		idx := rng.Intn(len(live))
		ptr := live[idx]
		live[idx] = live[len(live)-1]
		live = live[:len(live)-1]
		p.Deallocate(ptr)
		frees++
	}

	for _, ptr := range live {
		p.Deallocate(ptr)
		frees++
	}
	return allocs, frees
}

func TestConcurrentSharedModeWorkload(t *testing.T) {
	const threads = 8
	const opsPerThread = 200_000

	p := newTestPool(t, pool.WithMode(pool.Shared), pool.WithChunkSize(1<<22))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var totalAllocs, totalFrees int64

	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			a, f := rlSmallWorkload(t, p, seed, opsPerThread)
			mu.Lock()
			totalAllocs += a
			totalFrees += f
			mu.Unlock()
		}(int64(1000 + i))
	}
	wg.Wait()

	require.Equal(t, totalAllocs, totalFrees)

	snap := p.Stats()
	require.Equal(t, totalAllocs, snap.TotalAllocations)
	require.Equal(t, totalFrees, snap.TotalDeallocations)
	require.Zero(t, snap.LiveAllocations)
	require.Zero(t, snap.LiveBytes)
}
