package digits

import (
	"sync"
	"sync/atomic"
)

// sharedBuffer is an out-of-line word sequence owned collectively by every
// Store that references it. refs is the number of such stores.
type sharedBuffer struct {
	words []uint32
	refs  atomic.Int32
}

// bufferPool holds buffers whose reference count dropped to zero.
// The pool holds *sharedBuffer to avoid allocation when converting to interface{}.
var bufferPool sync.Pool

// newBuffer returns a buffer of n words with a reference count of one.
// The contents may not be zero.
func newBuffer(n int) *sharedBuffer {
	var b *sharedBuffer
	if v := bufferPool.Get(); v != nil {
		b = v.(*sharedBuffer)
	}
	if b == nil {
		b = new(sharedBuffer)
	}
	b.words = makeWords(b.words, n)
	b.refs.Store(1)
	return b
}

// makeWords returns a slice of length n, reusing z if it is large enough.
func makeWords(z []uint32, n int) []uint32 {
	if n <= cap(z) {
		return z[:n] // reuse z
	}
	// Stores that leave the inline array usually keep growing.
	const e = 4 // extra capacity
	return make([]uint32, n, n+e)
}

// unique reports whether exactly one store references b.
func (b *sharedBuffer) unique() bool {
	return b.refs.Load() == 1
}

func (b *sharedBuffer) acquire() {
	b.refs.Add(1)
}

// release drops one reference. The buffer is recycled when the last
// reference goes away; release reports whether that happened.
func (b *sharedBuffer) release() bool {
	switch n := b.refs.Add(-1); {
	case n == 0:
		b.words = b.words[:0]
		bufferPool.Put(b)
		return true
	case n < 0:
		panic("digits: shared buffer released more times than acquired")
	}
	return false
}

// clone returns a private copy of b with a reference count of one.
func (b *sharedBuffer) clone() *sharedBuffer {
	c := newBuffer(len(b.words))
	copy(c.words, b.words)
	return c
}
