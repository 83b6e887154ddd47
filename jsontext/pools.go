// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsontext

import (
	"sync"

	"github.com/go-json-experiment/jsonstream/internal/bufpools"
)

// TODO(https://go.dev/issue/47657): Use sync.PoolOf.

var (
	// The stack of a pooled validator is kept across uses,
	// unless it grew beyond maxPooledStack.
	validatorPool = &sync.Pool{New: func() any { return new(Validator) }}

	// This does not own the writer's buffer, which is returned to bufpools
	// separately so that buffers are shared by writers of every size.
	writerPool = &sync.Pool{New: func() any { return new(Writer) }}
)

// maxPooledStack is the largest nesting stack retained by validatorPool.
const maxPooledStack = 64 << 10

// GetValidator returns a reset validator from the pool.
// Return it with PutValidator when done.
func GetValidator(mode Mode, opts ...ValidatorOption) *Validator {
	v := validatorPool.Get().(*Validator)
	v.released = false
	v.s.init(mode, opts...)
	return v
}

// PutValidator returns v to the pool.
// The validator must not be used afterwards.
func PutValidator(v *Validator) {
	if v == nil {
		return
	}
	if cap(v.s.stack.items) > maxPooledStack {
		v.s.stack = TypeStack{}
	}
	v.s.Reset()
	v.released = true
	validatorPool.Put(v)
}

// GetWriter returns an empty writer from the pool.
// Return it with PutWriter when done.
func GetWriter(opts Options) *Writer {
	w := writerPool.Get().(*Writer)
	w.init(bufpools.Get(0), opts)
	return w
}

// PutWriter returns w and its buffer to the pools.
// Neither the writer nor any slice obtained from Bytes may be used afterwards.
func PutWriter(w *Writer) {
	if w == nil {
		return
	}
	w.Release()
	writerPool.Put(w)
}
