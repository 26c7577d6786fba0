// Package list implements a doubly-linked list with O(1) delete-by-node and
// a single-position move-forward operation, used by the frost package for
// the task sequence and channel bind lists. Nodes have stable pointer
// identity, matching the task ref / bind-list-entry contract described by
// the scheduler.
package list

// Node is an element of a List. Its address is stable for as long as it
// remains linked, and is the identity callers are expected to retain (e.g.
// Task.ref).
type Node[T any] struct {
	Value T
	prev  *Node[T]
	next  *Node[T]
	list  *List[T]
}

// Next returns the following node, or nil at the tail.
func (n *Node[T]) Next() *Node[T] { return n.next }

// List is a doubly-linked list of Node[T].
type List[T any] struct {
	head *Node[T]
	tail *Node[T]
	size int
}

// New constructs an empty List.
func New[T any]() *List[T] {
	return &List[T]{}
}

// Len returns the number of elements currently linked.
func (l *List[T]) Len() int { return l.size }

// Front returns the head node, or nil if the list is empty.
func (l *List[T]) Front() *Node[T] { return l.head }

// PushBack appends v as a new tail node and returns it.
func (l *List[T]) PushBack(v T) *Node[T] {
	n := &Node[T]{Value: v, list: l}
	if l.tail == nil {
		l.head = n
		l.tail = n
	} else {
		n.prev = l.tail
		l.tail.next = n
		l.tail = n
	}
	l.size++
	return n
}

// Remove unlinks n from the list in O(1). Safe to call with a nil node (a
// no-op) so callers don't need to guard every delete.
func (l *List[T]) Remove(n *Node[T]) {
	if n == nil || n.list != l {
		return
	}
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev = nil
	n.next = nil
	n.list = nil
	l.size--
}

// MoveForward swaps n with its immediate predecessor, advancing it one
// position towards the head. A no-op if n is already at the head or is nil.
func (l *List[T]) MoveForward(n *Node[T]) {
	if n == nil || n.prev == nil {
		return
	}
	p := n.prev
	pp := p.prev
	nn := n.next

	if pp != nil {
		pp.next = n
	} else {
		l.head = n
	}
	n.prev = pp

	n.next = p
	p.prev = n

	p.next = nn
	if nn != nil {
		nn.prev = p
	} else {
		l.tail = p
	}
}

// Find returns the first node satisfying match, or nil.
func (l *List[T]) Find(match func(T) bool) *Node[T] {
	for n := l.head; n != nil; n = n.next {
		if match(n.Value) {
			return n
		}
	}
	return nil
}
