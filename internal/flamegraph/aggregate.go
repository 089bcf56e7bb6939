package flamegraph

// FrameCount maps resolved frame names to their total sample weight. It
// remembers first-insertion order so that downstream ranking can break ties
// deterministically without inventing a secondary sort key.
type FrameCount struct {
	counts map[string]int64
	order  []string
}

// NewFrameCount returns an empty FrameCount.
func NewFrameCount() *FrameCount {
	return &FrameCount{counts: make(map[string]int64)}
}

// Add accumulates weight for a frame name.
func (fc *FrameCount) Add(name string, weight int64) {
	if _, seen := fc.counts[name]; !seen {
		fc.order = append(fc.order, name)
	}
	fc.counts[name] += weight
}

// Get returns the accumulated weight for a frame name.
func (fc *FrameCount) Get(name string) int64 {
	return fc.counts[name]
}

// Len returns the number of distinct frames.
func (fc *FrameCount) Len() int {
	return len(fc.counts)
}

// Total returns the sum of all frame weights.
func (fc *FrameCount) Total() int64 {
	var total int64
	for _, v := range fc.counts {
		total += v
	}
	return total
}

// Frames returns the frame names in first-insertion order.
func (fc *FrameCount) Frames() []string {
	out := make([]string, len(fc.order))
	copy(out, fc.order)
	return out
}

// Aggregate resolves every reference against the pool and sums weights per
// frame name. References whose key falls outside the pool are dropped
// silently: the source format may contain stray or placeholder keys, and an
// out-of-range key must never corrupt the in-bounds aggregation. The result
// is a pure summation and does not depend on reference order.
func Aggregate(pool Pool, refs []FrameRef) *FrameCount {
	fc := NewFrameCount()
	for _, ref := range refs {
		name, ok := pool.Lookup(ref.Key)
		if !ok {
			continue
		}
		fc.Add(name, ref.Weight)
	}
	return fc
}
