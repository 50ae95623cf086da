package util

import (
	"testing"
)

func TestListAndArray(t *testing.T) {
	list := NewList[int32](2)
	list.Add(3)
	list.Add(5)
	list.Add(8)
	if list.Length() != 3 || list.Get(1) != 5 || list.Last() != 8 {
		t.Errorf("list = %v; want [3 5 8]", list)
	}
	list.Set(1, 6)
	if list[1] != 6 {
		t.Errorf("list.Set failed: %v", list)
	}

	arr := NewArray[bool](4)
	if arr.Length() != 4 || arr[0] != false {
		t.Errorf("arr = %v; want 4 false values", arr)
	}
}

func TestDict(t *testing.T) {
	dict := NewDict[string, int](4)
	dict.Set("a", 1)
	dict["b"] = 2
	if !dict.ContainsKey("a") || dict.Get("b") != 2 || dict.Length() != 2 {
		t.Errorf("dict = %v; want {a:1 b:2}", dict)
	}
	dict.Delete("a")
	if dict.ContainsKey("a") {
		t.Errorf("dict.Delete failed")
	}
}

func TestOptional(t *testing.T) {
	some := Some(7)
	if !some.HasValue() || some.Value != 7 {
		t.Errorf("Some(7) = %v", some)
	}
	none := None[int]()
	if none.HasValue() {
		t.Errorf("None().HasValue() = true; want false")
	}
}

func TestQueue(t *testing.T) {
	queue := NewQueue[int]()
	queue.Push(1)
	queue.Push(2)
	queue.Push(3)
	if queue.Size() != 3 {
		t.Errorf("queue.Size() = %v; want 3", queue.Size())
	}
	for want := 1; want <= 3; want++ {
		got, ok := queue.Pop()
		if !ok || got != want {
			t.Errorf("queue.Pop() = %v %v; want %v", got, ok, want)
		}
	}
	if _, ok := queue.Pop(); ok {
		t.Errorf("queue.Pop() on empty = ok; want false")
	}
}

func TestFlags(t *testing.T) {
	flags := NewFlags[int32](5, -1)
	if *flags.Get(2) != -1 {
		t.Errorf("flags default = %v; want -1", *flags.Get(2))
	}
	*flags.Get(2) = 42
	if *flags.Get(2) != 42 {
		t.Errorf("flags after write = %v; want 42", *flags.Get(2))
	}
	flags.Reset()
	if *flags.Get(2) != -1 {
		t.Errorf("flags after Reset = %v; want -1", *flags.Get(2))
	}
}

func TestPriorityQueue(t *testing.T) {
	heap := NewPriorityQueue[string, int](4)
	heap.Enqueue("c", 3)
	heap.Enqueue("a", 1)
	heap.Enqueue("d", 4)
	heap.Enqueue("b", 2)

	for _, want := range []string{"a", "b", "c", "d"} {
		got, ok := heap.Dequeue()
		if !ok || got != want {
			t.Errorf("heap.Dequeue() = %v %v; want %v", got, ok, want)
		}
	}
	if _, ok := heap.Dequeue(); ok {
		t.Errorf("heap.Dequeue() on empty = ok; want false")
	}
}

func TestMatrix(t *testing.T) {
	m := NewMatrix[int](2, 3)
	m.Set(1, 2, 9)
	if m.Get(1, 2) != 9 || m.Get(0, 0) != 0 {
		t.Errorf("matrix = %v", m)
	}
	if m.Rows() != 2 || m.Cols() != 3 {
		t.Errorf("matrix dims = %v x %v; want 2 x 3", m.Rows(), m.Cols())
	}
}
