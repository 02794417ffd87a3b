// Package merge interleaves independently sequenced record columns into a
// single cursor ordered by sequence number.
package merge

import (
	"container/heap"
	"iter"
)

// linearLimit is the largest stream count searched linearly for the
// minimum; more streams use a heap.
const linearLimit = 4

// Stream is one sorted sequence column tagged with what it holds.
type Stream[T any] struct {
	Tag T
	Seq []uint32
}

// Item names one row of one stream.
type Item[T any] struct {
	Tag T
	Row int
}

// Cursor yields every row of every stream exactly once in non-decreasing
// sequence order. Equal sequence numbers are yielded in stream order. A
// Cursor is single use.
type Cursor[T any] struct {
	streams []Stream[T]
	pos     []int
	h       *streamHeap
	total   int
}

// New returns a cursor over streams. Each Seq column must be sorted
// ascending; unsorted input still visits every row once but in an
// unspecified order.
func New[T any](streams ...Stream[T]) *Cursor[T] {
	c := &Cursor[T]{
		streams: streams,
		pos:     make([]int, len(streams)),
	}
	for _, s := range streams {
		c.total += len(s.Seq)
	}
	if len(streams) > linearLimit {
		h := &streamHeap{}
		for i, s := range streams {
			if len(s.Seq) > 0 {
				h.entries = append(h.entries, heapEntry{seq: s.Seq[0], stream: i})
			}
		}
		heap.Init(h)
		c.h = h
	}
	return c
}

// Len returns the total number of rows over all streams.
func (c *Cursor[T]) Len() int {
	return c.total
}

// Next returns the next item, or false once every row was visited.
func (c *Cursor[T]) Next() (Item[T], bool) {
	if c.h != nil {
		return c.nextHeap()
	}
	best := -1
	var bestSeq uint32
	for i, s := range c.streams {
		p := c.pos[i]
		if p >= len(s.Seq) {
			continue
		}
		if best < 0 || s.Seq[p] < bestSeq {
			best, bestSeq = i, s.Seq[p]
		}
	}
	if best < 0 {
		return Item[T]{}, false
	}
	return c.take(best), true
}

func (c *Cursor[T]) nextHeap() (Item[T], bool) {
	if c.h.Len() == 0 {
		return Item[T]{}, false
	}
	top := c.h.entries[0].stream
	it := c.take(top)
	if p := c.pos[top]; p < len(c.streams[top].Seq) {
		c.h.entries[0].seq = c.streams[top].Seq[p]
		heap.Fix(c.h, 0)
	} else {
		heap.Pop(c.h)
	}
	return it, true
}

func (c *Cursor[T]) take(stream int) Item[T] {
	it := Item[T]{Tag: c.streams[stream].Tag, Row: c.pos[stream]}
	c.pos[stream]++
	return it
}

// All returns the remaining items as an iterator.
func (c *Cursor[T]) All() iter.Seq[Item[T]] {
	return func(yield func(Item[T]) bool) {
		for {
			it, ok := c.Next()
			if !ok || !yield(it) {
				return
			}
		}
	}
}

type heapEntry struct {
	seq    uint32
	stream int
}

type streamHeap struct {
	entries []heapEntry
}

func (h *streamHeap) Len() int { return len(h.entries) }

func (h *streamHeap) Less(i, j int) bool {
	a, b := h.entries[i], h.entries[j]
	if a.seq != b.seq {
		return a.seq < b.seq
	}
	return a.stream < b.stream
}

func (h *streamHeap) Swap(i, j int) { h.entries[i], h.entries[j] = h.entries[j], h.entries[i] }

func (h *streamHeap) Push(x any) { h.entries = append(h.entries, x.(heapEntry)) }

func (h *streamHeap) Pop() any {
	n := len(h.entries)
	e := h.entries[n-1]
	h.entries = h.entries[:n-1]
	return e
}
