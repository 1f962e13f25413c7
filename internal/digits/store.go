// Package digits implements the limb storage behind bigint.Int.
//
// A Store is a variable-length sequence of 32-bit words with value semantics.
// Short sequences live in an inline array inside the Store itself; longer ones
// live in a reference-counted buffer that copies of the Store share until one
// of them writes to it (copy-on-write).
//
// Copying a Store must go through [Store.Clone] or [Store.Assign] so that the
// reference count stays accurate. A plain Go assignment aliases the buffer
// without counting it, which is only safe when neither side is mutated again.
//
// Reading the same Store from several goroutines is safe. Mutating a Store,
// or cloning it while another goroutine mutates it, requires external
// synchronization.
package digits

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// InlineWords is the number of words a Store keeps without a heap buffer.
// Four words cover every value below 2^128.
const InlineWords = 4

// Store is a sequence of uint32 words, least significant first.
// The zero value is an empty Store, ready to use.
type Store struct {
	// buf is non-nil exactly when the Store is in heap mode.
	buf *sharedBuffer

	// n and inline are used only in inline mode.
	n      int
	inline [InlineWords]uint32
}

// FromWord returns a Store holding the single word w.
func FromWord(w uint32) Store {
	s := Store{n: 1}
	s.inline[0] = w
	return s
}

// Make returns a Store of n zero words.
func Make(n int) Store {
	if n < 0 {
		panic("digits: negative Store length")
	}
	if n <= InlineWords {
		return Store{n: n}
	}
	b := newBuffer(n)
	clear(b.words)
	return Store{buf: b}
}

// FromWords returns a Store holding a copy of ws.
func FromWords(ws []uint32) Store {
	s := Make(len(ws))
	if s.buf != nil {
		copy(s.buf.words, ws)
	} else {
		copy(s.inline[:], ws)
	}
	return s
}

// Len returns the number of words in s.
func (s *Store) Len() int {
	if s.buf != nil {
		return len(s.buf.words)
	}
	return s.n
}

// Inline reports whether s keeps its words in the inline array.
func (s *Store) Inline() bool {
	return s.buf == nil
}

// Shared reports whether s currently shares its buffer with another Store.
func (s *Store) Shared() bool {
	return s.buf != nil && !s.buf.unique()
}

// At returns the i-th word. It never copies a shared buffer.
func (s *Store) At(i int) uint32 {
	if s.buf != nil {
		return s.buf.words[i]
	}
	if i < 0 || i >= s.n {
		panic(fmt.Sprintf("digits: index %d out of range [0:%d]", i, s.n))
	}
	return s.inline[i]
}

// Last returns the most significant word.
func (s *Store) Last() uint32 {
	return s.At(s.Len() - 1)
}

// Set stores w at index i.
func (s *Store) Set(i int, w uint32) {
	if s.buf != nil {
		s.unshare()
		s.buf.words[i] = w
		return
	}
	if i < 0 || i >= s.n {
		panic(fmt.Sprintf("digits: index %d out of range [0:%d]", i, s.n))
	}
	s.inline[i] = w
}

// Append adds w after the most significant word.
func (s *Store) Append(w uint32) {
	if s.buf == nil {
		if s.n < InlineWords {
			s.inline[s.n] = w
			s.n++
			return
		}
		s.promote(s.n + 1)
		s.buf.words[InlineWords] = w
		return
	}
	s.unshare()
	s.buf.words = append(s.buf.words, w)
}

// Pop removes the most significant word.
func (s *Store) Pop() {
	if s.buf == nil {
		if s.n == 0 {
			panic("digits: Pop of empty Store")
		}
		s.n--
		s.inline[s.n] = 0
		return
	}
	if len(s.buf.words) == 0 {
		panic("digits: Pop of empty Store")
	}
	s.unshare()
	s.buf.words = s.buf.words[:len(s.buf.words)-1]
}

// Resize changes the length of s to n, filling new words with zeros.
func (s *Store) Resize(n int) {
	if n < 0 {
		panic("digits: negative Store length")
	}
	if s.buf == nil {
		if n > InlineWords {
			s.promote(n)
			return
		}
		if n < s.n {
			clear(s.inline[n:s.n])
		}
		s.n = n
		return
	}
	s.unshare()
	old := len(s.buf.words)
	if n <= cap(s.buf.words) {
		s.buf.words = s.buf.words[:n]
		if n > old {
			clear(s.buf.words[old:])
		}
		return
	}
	w := makeWords(nil, n)
	copy(w, s.buf.words)
	clear(w[old:])
	s.buf.words = w
}

// Reverse reverses the order of the words in s.
func (s *Store) Reverse() {
	if s.buf == nil {
		slices.Reverse(s.inline[:s.n])
		return
	}
	s.unshare()
	slices.Reverse(s.buf.words)
}

// Clone returns a copy of s. A heap buffer is shared, not copied, until one
// of the two Stores writes to it.
func (s *Store) Clone() Store {
	if s.buf != nil {
		s.buf.acquire()
		return Store{buf: s.buf}
	}
	return Store{n: s.n, inline: s.inline}
}

// Assign makes s a copy of src, releasing whatever s held before.
func (s *Store) Assign(src *Store) {
	if s == src || (s.buf != nil && s.buf == src.buf) {
		return
	}
	c := src.Clone()
	s.Release()
	*s = c
}

// Release drops the share s holds on its buffer and leaves s empty.
// A buffer is recycled once no Store references it.
func (s *Store) Release() {
	if s.buf != nil {
		s.buf.release()
	}
	*s = Store{}
}

// Equal reports whether s and o hold the same words in the same order.
func (s *Store) Equal(o *Store) bool {
	n := s.Len()
	if n != o.Len() {
		return false
	}
	if s.buf != nil && s.buf == o.buf {
		return true
	}
	for i := 0; i < n; i++ {
		if s.At(i) != o.At(i) {
			return false
		}
	}
	return true
}

// Words returns a copy of the words in s.
func (s *Store) Words() []uint32 {
	w := make([]uint32, s.Len())
	if s.buf != nil {
		copy(w, s.buf.words)
	} else {
		copy(w, s.inline[:s.n])
	}
	return w
}

func (s *Store) String() string {
	return fmt.Sprint(s.Words())
}

// promote moves the inline words into a fresh buffer of n words.
func (s *Store) promote(n int) {
	b := newBuffer(n)
	copy(b.words, s.inline[:s.n])
	clear(b.words[s.n:])
	if ce := Logger().Check(zap.DebugLevel, "store promoted to shared buffer"); ce != nil {
		ce.Write(zap.Int("words", n))
	}
	*s = Store{buf: b}
}

// unshare gives s a private buffer before a write. A buffer already owned
// by s alone is kept as is.
func (s *Store) unshare() {
	if s.buf.unique() {
		return
	}
	// Copy before dropping our share: once released, another holder may
	// recycle the buffer.
	b := s.buf.clone()
	refs := s.buf.refs.Load()
	s.buf.release()
	s.buf = b
	if ce := Logger().Check(zap.DebugLevel, "store unshared buffer"); ce != nil {
		ce.Write(zap.Int("words", len(b.words)), zap.Int32("refs", refs))
	}
}
