package poolutil

// Statistics is a plain aggregate of allocator counters with Add/Clear
// merge helpers. Pool.Stats does not return it; a Pool reports through
// stats.Snapshot.
type Statistics struct {
	AllocationCount   int64
	DeallocationCount int64
	BytesAllocated    int64
}

// Add folds other's counters into s.
func (s *Statistics) Add(other Statistics) {
	s.AllocationCount += other.AllocationCount
	s.DeallocationCount += other.DeallocationCount
	s.BytesAllocated += other.BytesAllocated
}

// Clear zeroes every counter.
func (s *Statistics) Clear() {
	s.AllocationCount = 0
	s.DeallocationCount = 0
	s.BytesAllocated = 0
}
