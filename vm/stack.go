package vm

import "fmt"

// ---------------------------------------------------------------------------
// Stack contract
// ---------------------------------------------------------------------------

// Stack is the minimal ordered-container contract the Calculator is written
// against. Push appends a new top; Pop removes and returns the most recently
// pushed value still present, failing with ErrEmptyStack on an empty stack;
// Len reports the current count. Any implementation satisfying this contract
// is interchangeable.
type Stack interface {
	Push(v Value) error
	Pop() (Value, error)
	Len() int
}

// ---------------------------------------------------------------------------
// SliceStack: mutable, slice-backed
// ---------------------------------------------------------------------------

// SliceStack is the default mutable stack over a single growable slice.
// Not safe for concurrent use.
type SliceStack struct {
	items []Value
}

// NewSliceStack creates an empty mutable stack.
func NewSliceStack() *SliceStack {
	return &SliceStack{}
}

func (s *SliceStack) Push(v Value) error {
	s.items = append(s.items, v)
	return nil
}

func (s *SliceStack) Pop() (Value, error) {
	if len(s.items) == 0 {
		return Value{}, ErrEmptyStack
	}
	top := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return top, nil
}

func (s *SliceStack) Len() int {
	return len(s.items)
}

// ---------------------------------------------------------------------------
// ChainStack: persistent, structurally shared
// ---------------------------------------------------------------------------

// chainNode is one immutable cell of a persistent stack. Nodes are never
// mutated after construction, so any number of stacks may share a tail.
type chainNode struct {
	value Value
	prev  *chainNode
}

// ChainStack is a persistent stack: Push allocates a fresh head node over
// the existing chain, and Pop moves the logical head back without touching
// any node. Clone is O(1) and yields an independent stack sharing the same
// tail; operations on one clone never affect another.
type ChainStack struct {
	head *chainNode
	size int
}

// NewChainStack creates an empty persistent stack.
func NewChainStack() *ChainStack {
	return &ChainStack{}
}

func (s *ChainStack) Push(v Value) error {
	s.head = &chainNode{value: v, prev: s.head}
	s.size++
	return nil
}

func (s *ChainStack) Pop() (Value, error) {
	if s.head == nil {
		return Value{}, ErrEmptyStack
	}
	top := s.head.value
	s.head = s.head.prev
	s.size--
	return top, nil
}

func (s *ChainStack) Len() int {
	return s.size
}

// Clone returns an independent handle over the same chain. The clone and
// the receiver may diverge freely; shared tail nodes are read-only.
func (s *ChainStack) Clone() *ChainStack {
	return &ChainStack{head: s.head, size: s.size}
}

// ---------------------------------------------------------------------------
// CheckedStack: numeric type-checking decorator
// ---------------------------------------------------------------------------

// CheckedStack wraps an inner Stack and rejects non-numeric pushes with
// ErrInvalidOperand. Composing it over a ChainStack gives an immutable
// numeric stack; over a SliceStack, a mutable one. Composition replaces
// the mixin-style inheritance this design descends from.
type CheckedStack struct {
	inner Stack
}

// NewCheckedStack wraps inner with numeric operand validation. A nil inner
// defaults to a fresh SliceStack.
func NewCheckedStack(inner Stack) *CheckedStack {
	if inner == nil {
		inner = NewSliceStack()
	}
	return &CheckedStack{inner: inner}
}

func (s *CheckedStack) Push(v Value) error {
	if !v.IsNumber() {
		return fmt.Errorf("%w: %s value %s", ErrInvalidOperand, v.Kind(), v)
	}
	return s.inner.Push(v)
}

func (s *CheckedStack) Pop() (Value, error) {
	return s.inner.Pop()
}

func (s *CheckedStack) Len() int {
	return s.inner.Len()
}
