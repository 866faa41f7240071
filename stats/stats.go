// Package stats implements AllocationStats: process-wide counters of
// allocation activity, readable as a point-in-time snapshot.
//
// Go has no stable per-goroutine storage to hang a thread-local counter
// off, so this is built the idiomatic Go way instead: one cache-line-
// sized counter per shard, shard chosen by the caller-supplied hint (a
// running goroutine ID is not exposed), each updated with sync/atomic
// and summed only when a Snapshot is requested. This keeps every
// hot-path update independent, contention-free cache lines.
package stats

import "sync/atomic"

const shardCount = 16

type shard struct {
	allocations   int64
	deallocations int64
	bytesAlloc    int64
	bytesFreed    int64
	_             [4]int64 // pad to keep shards on separate cache lines
}

// Counters is a set of sharded, atomically updated allocation counters.
type Counters struct {
	shards [shardCount]shard
}

// Snapshot is a point-in-time read of a Counters.
type Snapshot struct {
	TotalAllocations   int64
	TotalDeallocations int64
	BytesAllocated     int64
	BytesDeallocated   int64
	LiveAllocations    int64
	LiveBytes          int64
}

// RecordAlloc records one allocation of n bytes against shard hint%shardCount.
func (c *Counters) RecordAlloc(hint uint32, n uintptr) {
	s := &c.shards[hint%shardCount]
	atomic.AddInt64(&s.allocations, 1)
	atomic.AddInt64(&s.bytesAlloc, int64(n))
}

// RecordFree records one deallocation of n bytes against shard
// hint%shardCount.
func (c *Counters) RecordFree(hint uint32, n uintptr) {
	s := &c.shards[hint%shardCount]
	atomic.AddInt64(&s.deallocations, 1)
	atomic.AddInt64(&s.bytesFreed, int64(n))
}

// Snapshot sums every shard into a single consistent-enough read. It is
// not a linearizable snapshot (shards are read independently), matching
// the original's own tolerance for a merge race during print_stats.
func (c *Counters) Snapshot() Snapshot {
	var snap Snapshot
	for i := range c.shards {
		s := &c.shards[i]
		snap.TotalAllocations += atomic.LoadInt64(&s.allocations)
		snap.TotalDeallocations += atomic.LoadInt64(&s.deallocations)
		snap.BytesAllocated += atomic.LoadInt64(&s.bytesAlloc)
		snap.BytesDeallocated += atomic.LoadInt64(&s.bytesFreed)
	}
	snap.LiveAllocations = snap.TotalAllocations - snap.TotalDeallocations
	snap.LiveBytes = snap.BytesAllocated - snap.BytesDeallocated
	return snap
}

// Clear resets every shard to zero.
func (c *Counters) Clear() {
	for i := range c.shards {
		s := &c.shards[i]
		atomic.StoreInt64(&s.allocations, 0)
		atomic.StoreInt64(&s.deallocations, 0)
		atomic.StoreInt64(&s.bytesAlloc, 0)
		atomic.StoreInt64(&s.bytesFreed, 0)
	}
}
