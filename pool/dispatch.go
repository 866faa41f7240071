package pool

import "github.com/heaplab/heapcore/internal/block"

// route is the resolved destination for one allocation request: which
// strategy, and (when relevant) which concrete slab or segregated class
// within it. block.Strategy alone can't carry this because it doesn't
// encode which of the three slab sizes or eight segregated classes.
type route struct {
	strategy block.Strategy
	slabIdx  int
	classIdx int
}

// dispatch is the strategy dispatcher: it resolves a requested strategy
// and size to a concrete route. size is already the 16-byte-aligned
// size.
func (p *Pool) dispatch(size uintptr, requested block.Strategy) route {
	switch requested {
	case block.BestFit:
		if idx, ok := p.slabIndexFor(size); ok {
			return route{strategy: block.FixedSize, slabIdx: idx}
		}
		if size <= 512 {
			if ci, ok := p.segregated.ClassIndex(size); ok {
				return route{strategy: block.Segregated, classIdx: ci}
			}
		}
		return route{strategy: block.BestFit}

	case block.PoolBased:
		return route{strategy: block.PoolBased}

	case block.Segregated:
		if ci, ok := p.segregated.ClassIndex(size); ok {
			return route{strategy: block.Segregated, classIdx: ci}
		}
		return route{strategy: block.BestFit}

	case block.FixedSize:
		if idx, ok := p.slabIndexFor(size); ok {
			return route{strategy: block.FixedSize, slabIdx: idx}
		}
		return route{strategy: block.BestFit}

	default:
		return route{strategy: block.BestFit}
	}
}

// slabIndexFor returns the smallest configured slab size able to hold
// size, and false if size exceeds the largest slab.
func (p *Pool) slabIndexFor(size uintptr) (int, bool) {
	for i, s := range p.opts.SlabSizes {
		if size <= s {
			return i, true
		}
	}
	return 0, false
}
