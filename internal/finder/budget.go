package finder

import "sync/atomic"

// Budget is the run-wide email-discovery budget: a monotonically increasing
// counter checked before each unit of work. Atomic so a future parallel
// enumerator needs no changes.
type Budget struct {
	target int64
	count  atomic.Int64
}

// NewBudget returns a budget that is reached at target emails.
func NewBudget(target int) *Budget {
	return &Budget{target: int64(target)}
}

// Add records n newly discovered emails.
func (b *Budget) Add(n int) {
	b.count.Add(int64(n))
}

// Count returns the emails discovered so far.
func (b *Budget) Count() int {
	return int(b.count.Load())
}

// Reached reports whether enumeration should halt.
func (b *Budget) Reached() bool {
	return b.count.Load() >= b.target
}
