package kernel

import "testing"

func newTestTable(n int) []BCP {
	table := make([]BCP, n)
	for i := range table {
		table[i].reset(i)
	}
	return table
}

func TestListFIFOOrder(t *testing.T) {
	table := newTestTable(4)
	l := newList()

	l.InsertTail(table, 2)
	l.InsertTail(table, 0)
	l.InsertTail(table, 3)

	var got []int
	for !l.Empty() {
		got = append(got, l.RemoveHead(table))
	}

	want := []int{2, 0, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if !l.Empty() {
		t.Error("list should be empty after draining every element")
	}
}

func TestListRemoveElemHead(t *testing.T) {
	table := newTestTable(3)
	l := newList()
	l.InsertTail(table, 0)
	l.InsertTail(table, 1)
	l.InsertTail(table, 2)

	l.RemoveElem(table, 0)

	if got := l.RemoveHead(table); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
	if got := l.RemoveHead(table); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
}

func TestListRemoveElemMiddle(t *testing.T) {
	table := newTestTable(3)
	l := newList()
	l.InsertTail(table, 0)
	l.InsertTail(table, 1)
	l.InsertTail(table, 2)

	l.RemoveElem(table, 1)

	if got := l.RemoveHead(table); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
	if got := l.RemoveHead(table); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
	if !l.Empty() {
		t.Error("expected list to be empty after draining")
	}
}

func TestListRemoveElemTail(t *testing.T) {
	table := newTestTable(3)
	l := newList()
	l.InsertTail(table, 0)
	l.InsertTail(table, 1)
	l.InsertTail(table, 2)

	l.RemoveElem(table, 2)
	l.InsertTail(table, 2)

	got := []int{l.RemoveHead(table), l.RemoveHead(table), l.RemoveHead(table)}
	want := []int{0, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestListRemoveElemNotPresentIsNoOp(t *testing.T) {
	table := newTestTable(3)
	l := newList()
	l.InsertTail(table, 0)

	l.RemoveElem(table, 2)

	if got := l.RemoveHead(table); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
	if !l.Empty() {
		t.Error("expected list to be empty")
	}
}

func TestListRemoveHeadOnEmptyReturnsNegativeOne(t *testing.T) {
	l := newList()
	table := newTestTable(1)
	if got := l.RemoveHead(table); got != -1 {
		t.Fatalf("got %d, want -1", got)
	}
}
