// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsontext

import "testing"

func TestTypeStack(t *testing.T) {
	s := NewTypeStack(2)
	if s.Len() != 0 || s.Peek() != Undefined {
		t.Fatalf("new stack: Len = %d, Peek = %v", s.Len(), s.Peek())
	}
	if got, ok := s.Pop(); ok || got != Undefined {
		t.Errorf("Pop on empty stack = (%v, %v), want (Undefined, false)", got, ok)
	}

	want := []Type{BeginObject, String, BeginArray, BeginArray, BeginObject}
	for _, typ := range want {
		s.Push(typ)
	}
	if s.Len() != len(want) {
		t.Fatalf("Len = %d, want %d", s.Len(), len(want))
	}
	if c := cap(s.items); c != 8 {
		t.Errorf("capacity after growth = %d, want 8", c)
	}
	for i, typ := range want {
		if got := s.At(i); got != typ {
			t.Errorf("At(%d) = %v, want %v", i, got, typ)
		}
	}
	if got := s.At(-1); got != Undefined {
		t.Errorf("At(-1) = %v, want Undefined", got)
	}
	if got := s.At(len(want)); got != Undefined {
		t.Errorf("At(%d) = %v, want Undefined", len(want), got)
	}
	for i := len(want) - 1; i >= 0; i-- {
		if got := s.Peek(); got != want[i] {
			t.Errorf("Peek = %v, want %v", got, want[i])
		}
		if got, ok := s.Pop(); !ok || got != want[i] {
			t.Errorf("Pop = (%v, %v), want (%v, true)", got, ok, want[i])
		}
	}

	s.Push(BeginArray)
	s.Reset()
	if s.Len() != 0 || cap(s.items) != 8 {
		t.Errorf("after Reset: Len = %d, cap = %d, want 0, 8", s.Len(), cap(s.items))
	}

	var zero TypeStack
	zero.Push(String)
	if zero.Peek() != String || cap(zero.items) != DefaultStackCapacity {
		t.Errorf("zero stack: Peek = %v, cap = %d", zero.Peek(), cap(zero.items))
	}
	if NewTypeStack(0).items == nil || cap(NewTypeStack(-1).items) != DefaultStackCapacity {
		t.Errorf("non-positive capacity does not select the default")
	}
}
