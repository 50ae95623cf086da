package routing

import (
	"testing"

	"github.com/ttpr0/go-expansion/structs"
)

func TestBucketQueueOrdering(t *testing.T) {
	keys := []float32{5, 1, 3, 2, 4, 0}
	queue := NewDoubleBucketQueue(0, 10, 1, func(i uint32) float32 { return keys[i] })
	for i := range keys {
		queue.Add(uint32(i))
	}

	want := []uint32{5, 1, 3, 2, 4, 0}
	for _, expect := range want {
		got := queue.Pop()
		if got != expect {
			t.Errorf("queue.Pop() = %v; want %v", got, expect)
		}
	}
	if got := queue.Pop(); got != structs.INVALID_LABEL {
		t.Errorf("queue.Pop() on empty = %v; want INVALID_LABEL", got)
	}
}

func TestBucketQueueFIFOWithinBucket(t *testing.T) {
	keys := []float32{1.2, 1.7, 1.5}
	queue := NewDoubleBucketQueue(0, 10, 1, func(i uint32) float32 { return keys[i] })
	queue.Add(0)
	queue.Add(1)
	queue.Add(2)

	// same bucket, insertion order preserved
	for _, expect := range []uint32{0, 1, 2} {
		if got := queue.Pop(); got != expect {
			t.Errorf("queue.Pop() = %v; want %v", got, expect)
		}
	}
}

func TestBucketQueueOverflow(t *testing.T) {
	keys := []float32{0.5, 25, 70, 26}
	queue := NewDoubleBucketQueue(0, 10, 1, func(i uint32) float32 { return keys[i] })
	for i := range keys {
		queue.Add(uint32(i))
	}

	want := []uint32{0, 1, 3, 2}
	for _, expect := range want {
		got := queue.Pop()
		if got != expect {
			t.Errorf("queue.Pop() = %v; want %v", got, expect)
		}
	}
}

func TestBucketQueueDecrease(t *testing.T) {
	keys := []float32{4, 7, 9}
	queue := NewDoubleBucketQueue(0, 10, 1, func(i uint32) float32 { return keys[i] })
	for i := range keys {
		queue.Add(uint32(i))
	}

	// move label 2 below label 1
	queue.Decrease(2, 5)
	keys[2] = 5

	want := []uint32{0, 2, 1}
	for _, expect := range want {
		got := queue.Pop()
		if got != expect {
			t.Errorf("queue.Pop() = %v; want %v", got, expect)
		}
	}
}

func TestBucketQueueDecreaseFromOverflow(t *testing.T) {
	keys := []float32{1, 50}
	queue := NewDoubleBucketQueue(0, 10, 1, func(i uint32) float32 { return keys[i] })
	queue.Add(0)
	queue.Add(1)

	queue.Decrease(1, 3)
	keys[1] = 3

	if got := queue.Pop(); got != 0 {
		t.Errorf("queue.Pop() = %v; want 0", got)
	}
	if got := queue.Pop(); got != 1 {
		t.Errorf("queue.Pop() = %v; want 1", got)
	}
}

func TestBucketQueueDecreasePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Decrease to a larger key did not panic")
		}
	}()
	keys := []float32{4}
	queue := NewDoubleBucketQueue(0, 10, 1, func(i uint32) float32 { return keys[i] })
	queue.Add(0)
	queue.Decrease(0, 8)
}
