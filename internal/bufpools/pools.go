// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bufpools implements size-classed pools of byte slices
// used as the backing storage of JSON writers.
package bufpools

import (
	"math/bits"
	"sync"
)

const (
	minShift = 8  // smallest pooled class holds 256 bytes
	maxShift = 24 // buffers above 16MiB are left to the garbage collector
	numPools = maxShift - minShift + 1
)

// TODO(https://go.dev/issue/47657): Use sync.PoolOf.
// A []byte cannot be put into a sync.Pool without allocating
// its slice header, so headers are cached in a pool of their own.
var headerPool = sync.Pool{New: func() any { return new([]byte) }}

// pools[i] holds buffers with a capacity in [1<<(minShift+i) : 2<<(minShift+i)).
var pools [numPools]sync.Pool

// class returns the index of the pool serving a request for n bytes,
// rounding up so that any buffer in that pool holds at least n bytes.
func class(n int) int {
	if n <= 1<<minShift {
		return 0
	}
	return bits.Len(uint(n-1)) - minShift
}

// Get returns an empty slice with a capacity of at least n bytes.
// The unused capacity is not guaranteed to be zeroed.
func Get(n int) []byte {
	i := class(n)
	if i >= numPools {
		return make([]byte, 0, n)
	}
	if p, _ := pools[i].Get().(*[]byte); p != nil {
		b := (*p)[:0]
		*p = nil
		headerPool.Put(p)
		return b
	}
	return make([]byte, 0, 1<<(minShift+i))
}

// Put returns b to the pools.
// The caller relinquishes ownership of b.
// Buffers too small or too large to be worth retaining are dropped.
func Put(b []byte) {
	c := cap(b)
	if c < 1<<minShift || c > 1<<maxShift {
		return
	}
	// A buffer is filed under the largest class it can fully serve.
	i := bits.Len(uint(c)) - 1 - minShift
	p := headerPool.Get().(*[]byte)
	*p = b[:0]
	pools[i].Put(p)
}
