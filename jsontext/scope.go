// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsontext

// Scope is an object or array opened on a Writer.
// Close writes the matching end token, so a scope may be closed with defer:
//
//	s, err := w.BeginObjectScope("point")
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//	jsontext.WriteKeyValue(w, "x", 1)
type Scope struct {
	w      *Writer
	array  bool
	id     uint64 // the writer's identity for the object or array
	closed bool
}

// BeginObjectScope opens an object, as the value of key if one is given.
func (w *Writer) BeginObjectScope(key ...string) (*Scope, error) {
	return w.beginScopeOf(false, key)
}

// BeginArrayScope opens an array, as the value of key if one is given.
func (w *Writer) BeginArrayScope(key ...string) (*Scope, error) {
	return w.beginScopeOf(true, key)
}

func (w *Writer) beginScopeOf(array bool, key []string) (*Scope, error) {
	var err error
	switch {
	case len(key) > 1:
		panic("jsontext: at most one key may be given to a scope")
	case len(key) == 1 && array:
		err = w.WriteBeginArrayKey(key[0])
	case len(key) == 1:
		err = w.WriteBeginObjectKey(key[0])
	case array:
		err = w.WriteBeginArray()
	default:
		err = w.WriteBeginObject()
	}
	if err != nil {
		return nil, err
	}
	return &Scope{w: w, array: array, id: w.innermostID()}, nil
}

// Close writes the end token of the scope.
// Only the first call has an effect.
//
// Scopes opened within s must be closed first;
// otherwise Close reports ErrMismatchScope and s remains open.
// Close also reports ErrMismatchScope if the object or array
// was already ended by a direct call to the writer.
func (s *Scope) Close() error {
	if s == nil || s.closed {
		return nil
	}
	if s.w.innermostID() != s.id {
		return s.w.misuse("Close", ErrMismatchScope)
	}
	var err error
	if s.array {
		err = s.w.WriteEndArray()
	} else {
		err = s.w.WriteEndObject()
	}
	if err == nil {
		s.closed = true
	}
	return err
}

// WithObject opens an object, calls fn to fill it, and closes it,
// even if fn returns an error or panics.
func (w *Writer) WithObject(fn func(*Writer) error) error {
	return w.with(false, nil, fn)
}

// WithArray is like WithObject for arrays.
func (w *Writer) WithArray(fn func(*Writer) error) error {
	return w.with(true, nil, fn)
}

// WithObjectKey is like WithObject but opens the object as the value of key.
func (w *Writer) WithObjectKey(key string, fn func(*Writer) error) error {
	return w.with(false, []string{key}, fn)
}

// WithArrayKey is like WithArray but opens the array as the value of key.
func (w *Writer) WithArrayKey(key string, fn func(*Writer) error) error {
	return w.with(true, []string{key}, fn)
}

func (w *Writer) with(array bool, key []string, fn func(*Writer) error) (err error) {
	s, err := w.beginScopeOf(array, key)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(w)
}
