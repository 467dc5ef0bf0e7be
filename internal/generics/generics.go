// Package generics implements generic data structure functions missing from the stdlib.
package generics

// SliceMap executes the given function sequentially for every element on in, and returns a mapped slice.
func SliceMap[In, Out any](in []In, fn func(e In) Out) (out []Out) {
	out = make([]Out, len(in))
	for ii, e := range in {
		out[ii] = fn(e)
	}
	return
}

// Queue implements a first-in-first-out queue. The zero value is an empty queue ready to use.
//
// Popped elements are zeroed, so the queue doesn't hold references to them, and the
// underlying slice is compacted once more than half of it is consumed.
type Queue[T any] struct {
	items []T
	head  int
}

// minCompaction is the minimum number of popped elements before the queue is compacted.
const minCompaction = 1024

// Push appends an element at the end of the queue.
func (q *Queue[T]) Push(elements ...T) {
	q.items = append(q.items, elements...)
}

// Pop removes and returns the element at the front of the queue. It returns false if the queue is empty.
func (q *Queue[T]) Pop() (element T, ok bool) {
	if q.head >= len(q.items) {
		return
	}
	var zero T
	element = q.items[q.head]
	q.items[q.head] = zero
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head >= minCompaction && 2*q.head >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return element, true
}

// Len returns the number of elements in the queue.
func (q *Queue[T]) Len() int {
	return len(q.items) - q.head
}
