package util

import (
	"golang.org/x/exp/constraints"
)

//*******************************************
// binary-heap priority queue
//*******************************************

type pq_item[T any, P constraints.Ordered] struct {
	item     T
	priority P
}

// Min-heap over a generic priority.
//
// Used where the monotonicity requirements of the bucket queue do not
// hold (arbitrary priorities, no decrease-key).
type PriorityQueue[T any, P constraints.Ordered] struct {
	items []pq_item[T, P]
}

func NewPriorityQueue[T any, P constraints.Ordered](cap int) PriorityQueue[T, P] {
	return PriorityQueue[T, P]{
		items: make([]pq_item[T, P], 0, cap),
	}
}

func (self *PriorityQueue[T, P]) Enqueue(item T, priority P) {
	self.items = append(self.items, pq_item[T, P]{item, priority})
	index := len(self.items) - 1
	for index > 0 {
		parent := (index - 1) / 2
		if self.items[parent].priority <= self.items[index].priority {
			break
		}
		self.items[parent], self.items[index] = self.items[index], self.items[parent]
		index = parent
	}
}

func (self *PriorityQueue[T, P]) Dequeue() (T, bool) {
	var item T
	if len(self.items) == 0 {
		return item, false
	}
	item = self.items[0].item
	last := len(self.items) - 1
	self.items[0] = self.items[last]
	self.items = self.items[:last]
	index := 0
	for {
		left := 2*index + 1
		right := 2*index + 2
		smallest := index
		if left < len(self.items) && self.items[left].priority < self.items[smallest].priority {
			smallest = left
		}
		if right < len(self.items) && self.items[right].priority < self.items[smallest].priority {
			smallest = right
		}
		if smallest == index {
			break
		}
		self.items[smallest], self.items[index] = self.items[index], self.items[smallest]
		index = smallest
	}
	return item, true
}

func (self *PriorityQueue[T, P]) Length() int {
	return len(self.items)
}
func (self *PriorityQueue[T, P]) Clear() {
	self.items = self.items[:0]
}
