// Package coordinator implements the server-side state of the distributed
// search: the duplicate-tolerant work queue, the monotonic partition
// generator, the append-only result sink, and the Problem object that ties
// them together behind a single lock.
package coordinator

import (
	"container/heap"
	"time"
)

// pendingItem is one dispatchable entry in the queue: a partition value
// tagged with its last enqueue time. A sequence number breaks timestamp ties
// so the ordering stays strictly first-in-first-out.
type pendingItem struct {
	value      uint32
	enqueuedAt time.Time
	seq        uint64
}

type pendingHeap []pendingItem

func (h pendingHeap) Len() int { return len(h) }
func (h pendingHeap) Less(i, j int) bool {
	if h[i].enqueuedAt.Equal(h[j].enqueuedAt) {
		return h[i].seq < h[j].seq
	}
	return h[i].enqueuedAt.Before(h[j].enqueuedAt)
}
func (h pendingHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *pendingHeap) Push(x any) { *h = append(*h, x.(pendingItem)) }
func (h *pendingHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// WorkQueue tracks partitions that have been dispatched but not yet confirmed
// complete, ordered oldest-first by last dispatch time, plus the set of
// confirmed-complete partitions.
//
// Next deliberately re-enqueues the entry it hands out instead of leasing it:
// the same partition may be dispatched to several workers concurrently, and
// the first completion wins. This FIFO round-robin redistribution recovers
// from lost workers with no heartbeat or timeout machinery, at the cost of
// duplicate computation.
//
// WorkQueue is not safe for concurrent use; the owning Problem serializes
// access under its lock.
type WorkQueue struct {
	pending   pendingHeap
	completed map[uint32]struct{}
	// occupancy counts heap entries per value; distinct tracks the values
	// with at least one entry that are not yet complete, so Stats stays O(1)
	// under the coordinator lock.
	occupancy map[uint32]int
	distinct  int
	seq       uint64
	now       func() time.Time
}

// NewWorkQueue creates an empty work queue.
func NewWorkQueue() *WorkQueue {
	return &WorkQueue{
		completed: make(map[uint32]struct{}),
		occupancy: make(map[uint32]int),
		now:       time.Now,
	}
}

// Add inserts a partition tagged with the current time at the back of the
// pending ordering.
func (q *WorkQueue) Add(a uint32) {
	q.seq++
	heap.Push(&q.pending, pendingItem{value: a, enqueuedAt: q.now(), seq: q.seq})
	q.occupancy[a]++
	if q.occupancy[a] == 1 {
		if _, done := q.completed[a]; !done {
			q.distinct++
		}
	}
}

// drop records the removal of one heap entry for the value.
func (q *WorkQueue) drop(a uint32) {
	q.occupancy[a]--
	if q.occupancy[a] == 0 {
		delete(q.occupancy, a)
		if _, done := q.completed[a]; !done {
			q.distinct--
		}
	}
}

// Next returns the oldest pending partition that is not yet complete,
// re-enqueuing it with a fresh timestamp so it rotates to the back of the
// ordering. Entries whose value has meanwhile completed are discarded.
// The second return value is false when no incomplete partition remains.
func (q *WorkQueue) Next() (uint32, bool) {
	for q.pending.Len() > 0 {
		item := heap.Pop(&q.pending).(pendingItem)
		q.drop(item.value)
		if _, done := q.completed[item.value]; done {
			continue
		}
		q.Add(item.value)
		return item.value, true
	}
	return 0, false
}

// Complete marks a partition as confirmed complete. It is idempotent: the
// return value reports whether this completion was a duplicate, which the
// caller uses to suppress double-persistence of results.
func (q *WorkQueue) Complete(a uint32) (duplicate bool) {
	if _, done := q.completed[a]; done {
		return true
	}
	q.completed[a] = struct{}{}
	if q.occupancy[a] > 0 {
		q.distinct--
	}
	return false
}

// Stats returns the number of completed partitions and the number of
// distinct partitions still pending completion. Both counts are maintained
// incrementally; the call does not touch the heap.
func (q *WorkQueue) Stats() (completed, pending int) {
	return len(q.completed), q.distinct
}
