package routing

import (
	"github.com/ttpr0/go-expansion/structs"
	. "github.com/ttpr0/go-expansion/util"
)

//*******************************************
// double-bucket queue
//*******************************************

// DoubleBucketQueue is a monotone bucket priority queue over label
// indices. Sort costs are read through the key accessor so that labels
// updated in place are always bucketed by their current cost.
//
// The main buckets are int(range/bucket_size)+1 buckets starting at
// mincost; costs at or past their end go to an overflow bucket that is
// re-bucketed lazily once the main range is exhausted.
type DoubleBucketQueue struct {
	buckets     []List[uint32]
	overflow    List[uint32]
	key         func(uint32) float32
	mincost     float32
	maxcost     float32
	bucket_size float32
	current     int
	count       int
}

func NewDoubleBucketQueue(mincost, cost_range, bucket_size float32, key func(uint32) float32) *DoubleBucketQueue {
	if bucket_size <= 0 {
		panic("bucket queue: bucket size must be positive")
	}
	bucket_count := int(cost_range/bucket_size) + 1
	buckets := make([]List[uint32], bucket_count)
	for i := range buckets {
		buckets[i] = NewList[uint32](0)
	}
	return &DoubleBucketQueue{
		buckets:     buckets,
		overflow:    NewList[uint32](0),
		key:         key,
		mincost:     mincost,
		maxcost:     mincost + float32(bucket_count)*bucket_size,
		bucket_size: bucket_size,
	}
}

func (self *DoubleBucketQueue) bucket_of(cost float32) int {
	bucket := int((cost - self.mincost) / self.bucket_size)
	// keep monotonicity for keys below the cursor
	if bucket < self.current {
		bucket = self.current
	}
	return bucket
}

// Adds a label index using the cost returned by the key accessor.
func (self *DoubleBucketQueue) Add(index uint32) {
	cost := self.key(index)
	if cost >= self.maxcost {
		self.overflow.Add(index)
	} else {
		bucket := self.bucket_of(cost)
		self.buckets[bucket].Add(index)
	}
	self.count += 1
}

// Removes and returns a minimum-cost label index, INVALID_LABEL when
// the queue is empty.
func (self *DoubleBucketQueue) Pop() uint32 {
	for {
		for self.current < len(self.buckets) {
			bucket := &self.buckets[self.current]
			if bucket.Length() > 0 {
				index := (*bucket)[0]
				*bucket = (*bucket)[1:]
				self.count -= 1
				return index
			}
			self.current += 1
		}
		if self.overflow.Length() == 0 {
			return structs.INVALID_LABEL
		}
		self.rebucket_overflow()
	}
}

// Moves the overflow contents into the main buckets, rebasing the
// bucket range at the smallest overflow cost.
func (self *DoubleBucketQueue) rebucket_overflow() {
	min := self.key(self.overflow[0])
	for _, index := range self.overflow[1:] {
		cost := self.key(index)
		if cost < min {
			min = cost
		}
	}
	cost_range := self.maxcost - self.mincost
	self.mincost = min
	self.maxcost = min + cost_range
	self.current = 0

	pending := self.overflow
	self.overflow = NewList[uint32](0)
	for _, index := range pending {
		cost := self.key(index)
		if cost >= self.maxcost {
			self.overflow.Add(index)
		} else {
			bucket := self.bucket_of(cost)
			self.buckets[bucket].Add(index)
		}
	}
}

// Moves a label index to the bucket of new_cost. The current key of
// the label must not be smaller than new_cost.
func (self *DoubleBucketQueue) Decrease(index uint32, new_cost float32) {
	old_cost := self.key(index)
	if new_cost > old_cost {
		panic("bucket queue: decrease-key to a larger cost")
	}
	if old_cost >= self.maxcost {
		if new_cost >= self.maxcost {
			return
		}
		self.remove_from(&self.overflow, index)
	} else {
		old_bucket := self.bucket_of(old_cost)
		new_bucket := self.bucket_of(new_cost)
		if old_bucket == new_bucket {
			return
		}
		self.remove_from(&self.buckets[old_bucket], index)
	}
	bucket := self.bucket_of(new_cost)
	self.buckets[bucket].Add(index)
}

func (self *DoubleBucketQueue) remove_from(bucket *List[uint32], index uint32) {
	for i, item := range *bucket {
		if item == index {
			*bucket = append((*bucket)[:i], (*bucket)[i+1:]...)
			return
		}
	}
	panic("bucket queue: label not found in its bucket")
}

func (self *DoubleBucketQueue) Size() int {
	return self.count
}
