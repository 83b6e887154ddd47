// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsontext

// scopeStack tracks the objects and arrays a Writer has open
// so that each call can be checked before any output is produced.
//
// The bottom entry is a virtual root that is never popped.
// A standard document's root holds exactly one value, so it is kept
// as an array. A simplified document's root is undecided until its first
// element: a key makes it a braceless object, while a value makes it
// a single-value root like the standard one.
// Call init before use.
type scopeStack []scopeEntry

// init initializes the stack with its root scope.
func (m *scopeStack) init(simplified bool) {
	root := scopeTypeArray
	if simplified {
		root = scopeRootUndecided
	}
	*m = append((*m)[:0], root)
}

// depth counts the root as 1.
func (m scopeStack) depth() int {
	return len(m)
}

func (m scopeStack) last() *scopeEntry {
	return &m[len(m)-1]
}

// checkValue reports whether a value may be written next.
func (m scopeStack) checkValue() error {
	switch e := m.last(); {
	case *e == scopeRootUndecided:
		return nil
	case e.needKey():
		return ErrMissingKey
	case len(m) == 1 && e.isArray() && e.length() > 0:
		return ErrRootClosed
	default:
		return nil
	}
}

// checkKey reports whether an object key may be written next.
func (m scopeStack) checkKey() error {
	switch e := m.last(); {
	case len(m) == 1 && e.isArray() && e.length() > 0:
		return ErrRootClosed
	case !e.isObject():
		return ErrKeyOutsideObject
	case e.needValue():
		return ErrMissingValue
	default:
		return nil
	}
}

// checkEndObject reports whether the innermost object may be closed.
func (m scopeStack) checkEndObject() error {
	switch e := m.last(); {
	case !e.isObject() || len(m) == 1: // the simplified root has no closing brace
		return ErrMismatchScope
	case e.needValue():
		return ErrMissingValue
	default:
		return nil
	}
}

// checkEndArray reports whether the innermost array may be closed.
func (m scopeStack) checkEndArray() error {
	switch e := m.last(); {
	case !e.isArray() || len(m) == 1: // forbid popping the virtual root
		return ErrMismatchScope
	default:
		return nil
	}
}

// complete reports whether the written text is a whole document.
func (m scopeStack) complete() bool {
	switch e := m.last(); {
	case len(m) > 1:
		return false
	case e.isArray():
		return e.length() == 1
	default:
		return !e.needValue()
	}
}

// settleRoot turns an undecided root into a single-value root.
// It must be called before counting a value.
func (m scopeStack) settleRoot() {
	if e := m.last(); *e == scopeRootUndecided {
		*e = scopeTypeArray
	}
}

func (m *scopeStack) push(e scopeEntry) {
	*m = append(*m, e)
}

func (m *scopeStack) pop() {
	*m = (*m)[:len(*m)-1]
}

// scopeEntry packs the kind of an open scope into its top bit,
// whether it is an undecided simplified root into the next bit,
// and the number of elements written into it into the rest.
// Keys and values of an object count separately, so an object
// awaits a value exactly when its count is odd.
type scopeEntry uint64

const (
	scopeTypeMask   scopeEntry = 1 << 63
	scopeTypeObject scopeEntry = 1 << 63
	scopeTypeArray  scopeEntry = 0

	scopeUndecided     scopeEntry = 1 << 62
	scopeRootUndecided scopeEntry = scopeTypeObject | scopeUndecided

	scopeCountMask  scopeEntry = scopeUndecided - 1
	scopeCountOdd   scopeEntry = 1
	scopeCountEven  scopeEntry = 0
	scopeParityMask scopeEntry = 1
)

func (e scopeEntry) length() int {
	return int(e & scopeCountMask)
}

func (e scopeEntry) isObject() bool { return e&scopeTypeMask == scopeTypeObject }
func (e scopeEntry) isArray() bool { return e&scopeTypeMask == scopeTypeArray }

func (e scopeEntry) needKey() bool {
	return e&(scopeTypeMask|scopeParityMask) == scopeTypeObject|scopeCountEven
}

func (e scopeEntry) needValue() bool {
	return e&(scopeTypeMask|scopeParityMask) == scopeTypeObject|scopeCountOdd
}

// increment counts one more element. The count cannot overflow in practice.
func (e *scopeEntry) increment() { (*e)++ }
