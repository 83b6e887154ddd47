// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsontext

// DefaultStackCapacity is the initial capacity of a TypeStack.
const DefaultStackCapacity = 128

// TypeStack is a stack of open nesting scopes.
//
// Entries are BeginObject or BeginArray for open scopes,
// or String while an object member awaits its value.
// The zero value is an empty stack ready for use.
type TypeStack struct {
	items []Type
}

// NewTypeStack returns an empty stack with room for capacity entries.
// A non-positive capacity selects DefaultStackCapacity.
func NewTypeStack(capacity int) *TypeStack {
	if capacity <= 0 {
		capacity = DefaultStackCapacity
	}
	return &TypeStack{items: make([]Type, 0, capacity)}
}

// Len reports the number of entries.
func (s *TypeStack) Len() int { return len(s.items) }

// Push adds t to the top, doubling the capacity when full.
func (s *TypeStack) Push(t Type) {
	if len(s.items) == cap(s.items) {
		n := 2 * cap(s.items)
		if n == 0 {
			n = DefaultStackCapacity
		}
		items := make([]Type, len(s.items), n)
		copy(items, s.items)
		s.items = items
	}
	s.items = append(s.items, t)
}

// Pop removes and returns the top entry.
// Popping an empty stack is a no-op that reports false.
func (s *TypeStack) Pop() (Type, bool) {
	if len(s.items) == 0 {
		return Undefined, false
	}
	t := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return t, true
}

// Peek returns the top entry, or Undefined if the stack is empty.
func (s *TypeStack) Peek() Type {
	if len(s.items) == 0 {
		return Undefined
	}
	return s.items[len(s.items)-1]
}

// At returns the i-th entry counted from the bottom,
// or Undefined if i is out of range.
func (s *TypeStack) At(i int) Type {
	if uint(i) >= uint(len(s.items)) {
		return Undefined
	}
	return s.items[i]
}

// Reset empties the stack, retaining its storage.
func (s *TypeStack) Reset() {
	s.items = s.items[:0]
}
