package pool

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// CheckCorruption validates the BestFit size index (which also walks
// the address-ordered free list it wraps) and the segregated class
// lists, returning the first invariant violation found. It is a full
// structural scan, same cost as the debug-build validation performed
// after every mutating call; safe to run from any build, intended for
// periodic diagnostics or an explicit leak/corruption sweep rather than
// the hot path. If a Logger was supplied via WithLogger, a violation is
// also logged there.
func (p *Pool) CheckCorruption() error {
	unlock := p.rlock()
	err := p.index.Validate()
	if err == nil {
		err = p.segregated.Validate()
	}
	unlock()

	if err != nil && p.opts.Logger != nil {
		p.opts.Logger.Error("heap corruption detected", "error", err)
	}
	return err
}

// DumpJSON streams a diagnostic snapshot of the pool (allocation
// counters plus chunk/slab occupancy) through jwriter, for leak and
// fragmentation reporting. Intended for diagnostics and tests, never
// the hot path.
func (p *Pool) DumpJSON() ([]byte, error) {
	unlock := p.rlock()
	snap := p.stats.Snapshot()
	chunkCount := len(p.chunks)
	freeEntries := p.index.Len()
	unlock()

	w := jwriter.NewWriter()
	obj := w.Object()
	statsObj := obj.Name("Stats").Object()
	snap.WriteJSON(&statsObj)
	statsObj.End()

	obj.Name("Chunks").Int(chunkCount)
	obj.Name("FreeBestFitEntries").Int(freeEntries)

	slabs := obj.Name("Slabs").Array()
	for i, s := range p.slabs {
		chunks, free := s.Stats()
		entry := slabs.Object()
		entry.Name("BlockSize").Int(int(p.opts.SlabSizes[i]))
		entry.Name("Chunks").Int(chunks)
		entry.Name("FreeBlocks").Int(free)
		entry.End()
	}
	slabs.End()

	obj.End()
	return w.Bytes(), w.Error()
}
