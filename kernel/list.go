package kernel

// List is an intrusive singly-linked list of BCPs, threaded through each
// BCP's own next field in a shared process table. The list does not own
// the BCPs it links; the table does (§3: "the list does not own the
// BCP; the table does").
type List struct {
	head, tail int
}

func newList() List { return List{head: -1, tail: -1} }

// Empty reports whether the list has no members.
func (l *List) Empty() bool { return l.head == -1 }

// InsertTail appends the BCP at idx to the end of the list.
func (l *List) InsertTail(table []BCP, idx int) {
	table[idx].next = -1
	if l.tail == -1 {
		l.head = idx
		l.tail = idx
		return
	}
	table[l.tail].next = idx
	l.tail = idx
}

// RemoveHead unlinks and returns the head of the list, or -1 if empty.
// The removed BCP's next is left undefined (§4.1).
func (l *List) RemoveHead(table []BCP) int {
	if l.head == -1 {
		return -1
	}
	idx := l.head
	l.head = table[idx].next
	if l.head == -1 {
		l.tail = -1
	}
	return idx
}

// RemoveElem unlinks idx from the list. It is a no-op if idx is not on
// the list (§4.1: "caller responsibility to ensure it is").
func (l *List) RemoveElem(table []BCP, idx int) {
	if l.head == -1 {
		return
	}
	if l.head == idx {
		l.head = table[idx].next
		if l.head == -1 {
			l.tail = -1
		}
		return
	}
	prev := l.head
	for table[prev].next != -1 {
		cur := table[prev].next
		if cur == idx {
			table[prev].next = table[idx].next
			if l.tail == idx {
				l.tail = prev
			}
			return
		}
		prev = cur
	}
}
