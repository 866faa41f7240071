package pool

import (
	"github.com/heaplab/heapcore/internal/bestfit"
	"github.com/heaplab/heapcore/internal/block"
	"github.com/heaplab/heapcore/poolutil"
)

// Reset clears every index, the scope stack, the segregated lists, and
// the thread-cache magazines, then reinitializes every chunk to a
// single free BestFit block and reindexes it. Stats counters persist,
// since they are process-wide reporting state rather than pool content.
func (p *Pool) Reset() {
	unlock := p.lock()
	defer unlock()

	if p.opts.Logger != nil {
		snap := p.stats.Snapshot()
		if snap.LiveAllocations > 0 {
			p.opts.Logger.Warn("pool reset with live allocations outstanding",
				"liveAllocations", snap.LiveAllocations, "liveBytes", snap.LiveBytes)
		}
	}

	p.index = bestfit.New()
	p.segregated.Clear()
	p.scopes.Reset()

	for _, chunk := range p.chunks {
		addr := chunk.Reinit(block.BestFit)
		p.index.Insert(block.AtAddr(addr))
	}

	// Drain every magazine before the backing slabs reinitialize their
	// address slots; a stale magazine still holding an address a slab
	// is about to re-Init would otherwise let two callers receive the
	// same bytes (one via the rebuilt slab free chain, one via the
	// magazine).
	for _, c := range p.caches {
		c.ReleaseThreadCache()
	}
	for _, s := range p.slabs {
		s.Reset()
	}

	poolutil.DebugValidate(p.index)
	poolutil.DebugValidate(p.segregated)
}
