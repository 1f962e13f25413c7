package digits

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// heapStore returns a Store in heap mode holding ws.
func heapStore(ws ...uint32) Store {
	s := Make(InlineWords + 1)
	s.Resize(0)
	for _, w := range ws {
		s.Append(w)
	}
	return s
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })
	return logs
}

func TestStore_ZeroValue(t *testing.T) {
	var s Store
	assert.Equal(t, 0, s.Len())
	assert.True(t, s.Inline())
	assert.False(t, s.Shared())
	assert.Empty(t, s.Words())
}

func TestFromWord(t *testing.T) {
	s := FromWord(42)
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Inline())
	assert.Equal(t, uint32(42), s.At(0))
	assert.Equal(t, uint32(42), s.Last())
}

func TestMake(t *testing.T) {
	tests := []struct {
		n      int
		inline bool
	}{
		{0, true},
		{1, true},
		{InlineWords, true},
		{InlineWords + 1, false},
		{100, false},
	}
	for _, tt := range tests {
		s := Make(tt.n)
		assert.Equal(t, tt.n, s.Len(), "Make(%d).Len()", tt.n)
		assert.Equal(t, tt.inline, s.Inline(), "Make(%d).Inline()", tt.n)
		assert.Equal(t, make([]uint32, tt.n), s.Words(), "Make(%d).Words()", tt.n)
	}
}

func TestMake_RecycledBufferIsZeroed(t *testing.T) {
	s := FromWords([]uint32{1, 2, 3, 4, 5, 6, 7, 8})
	s.Release()
	for i := 0; i < 10; i++ {
		z := Make(8)
		require.Equal(t, make([]uint32, 8), z.Words())
		z.Release()
	}
}

func TestFromWords(t *testing.T) {
	for _, ws := range [][]uint32{
		{},
		{1},
		{1, 2, 3, 4},
		{1, 2, 3, 4, 5},
		{9, 8, 7, 6, 5, 4, 3, 2, 1},
	} {
		s := FromWords(ws)
		if diff := cmp.Diff(ws, s.Words()); diff != "" {
			t.Errorf("FromWords(%v) mismatch (-want +got):\n%s", ws, diff)
		}
		assert.Equal(t, len(ws) <= InlineWords, s.Inline())
	}
}

func TestStore_Append(t *testing.T) {
	var s Store
	want := []uint32{}
	for i := uint32(1); i <= 2*InlineWords; i++ {
		s.Append(i)
		want = append(want, i)
		assert.Equal(t, len(want) <= InlineWords, s.Inline(), "after %d appends", i)
		if diff := cmp.Diff(want, s.Words()); diff != "" {
			t.Fatalf("Append(%d) mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestStore_Append_Promotion(t *testing.T) {
	logs := observeLogs(t)
	var s Store
	for i := 0; i < InlineWords; i++ {
		s.Append(uint32(i))
	}
	assert.Zero(t, logs.FilterMessage("store promoted to shared buffer").Len())
	s.Append(InlineWords)
	assert.Equal(t, 1, logs.FilterMessage("store promoted to shared buffer").Len())
	assert.False(t, s.Inline())
}

func TestStore_Pop(t *testing.T) {
	t.Run("inline", func(t *testing.T) {
		s := FromWords([]uint32{1, 2, 3})
		s.Pop()
		assert.Equal(t, []uint32{1, 2}, s.Words())
		s.Append(7)
		assert.Equal(t, []uint32{1, 2, 7}, s.Words())
	})

	t.Run("heap", func(t *testing.T) {
		s := heapStore(1, 2, 3, 4, 5, 6)
		s.Pop()
		s.Pop()
		assert.Equal(t, []uint32{1, 2, 3, 4}, s.Words())
		assert.False(t, s.Inline())
	})

	t.Run("empty", func(t *testing.T) {
		var s Store
		assert.Panics(t, func() { s.Pop() })
		h := heapStore()
		assert.Panics(t, func() { h.Pop() })
	})
}

func TestStore_Resize(t *testing.T) {
	s := FromWords([]uint32{1, 2, 3})
	s.Resize(1)
	assert.Equal(t, []uint32{1}, s.Words())
	s.Resize(3)
	assert.Equal(t, []uint32{1, 0, 0}, s.Words())
	s.Resize(7)
	assert.False(t, s.Inline())
	assert.Equal(t, []uint32{1, 0, 0, 0, 0, 0, 0}, s.Words())
	s.Set(6, 9)
	s.Resize(5)
	s.Resize(7)
	assert.Equal(t, []uint32{1, 0, 0, 0, 0, 0, 0}, s.Words())
	s.Resize(100)
	assert.Equal(t, 100, s.Len())
	assert.Equal(t, uint32(0), s.Last())
	assert.Panics(t, func() { s.Resize(-1) })
}

func TestStore_Reverse(t *testing.T) {
	tests := [][]uint32{
		{},
		{1},
		{1, 2},
		{1, 2, 3, 4},
		{1, 2, 3, 4, 5},
		{1, 2, 3, 4, 5, 6, 7, 8, 9},
	}
	for _, ws := range tests {
		s := FromWords(ws)
		s.Reverse()
		want := make([]uint32, len(ws))
		for i, w := range ws {
			want[len(ws)-1-i] = w
		}
		if diff := cmp.Diff(want, s.Words()); diff != "" {
			t.Errorf("Reverse(%v) mismatch (-want +got):\n%s", ws, diff)
		}
	}
}

func TestStore_At(t *testing.T) {
	s := FromWords([]uint32{5, 6})
	assert.Equal(t, uint32(6), s.At(1))
	assert.Panics(t, func() { s.At(2) })
	assert.Panics(t, func() { s.At(-1) })
	assert.Panics(t, func() { s.Set(2, 0) })
	h := heapStore(1, 2, 3, 4, 5)
	assert.Panics(t, func() { h.At(5) })
}

func TestStore_Clone(t *testing.T) {
	t.Run("inline", func(t *testing.T) {
		a := FromWords([]uint32{1, 2})
		b := a.Clone()
		b.Set(0, 100)
		b.Append(3)
		assert.Equal(t, []uint32{1, 2}, a.Words())
		assert.Equal(t, []uint32{100, 2, 3}, b.Words())
	})

	t.Run("heap shares until written", func(t *testing.T) {
		a := heapStore(1, 2, 3, 4, 5, 6)
		b := a.Clone()
		assert.True(t, a.Shared())
		assert.True(t, b.Shared())
		assert.Same(t, a.buf, b.buf)

		b.Set(0, 100)
		assert.False(t, a.Shared())
		assert.False(t, b.Shared())
		assert.NotSame(t, a.buf, b.buf)
		assert.Equal(t, []uint32{1, 2, 3, 4, 5, 6}, a.Words())
		assert.Equal(t, []uint32{100, 2, 3, 4, 5, 6}, b.Words())
	})

	t.Run("every mutation unshares", func(t *testing.T) {
		mutations := map[string]func(s *Store){
			"set":     func(s *Store) { s.Set(1, 0) },
			"append":  func(s *Store) { s.Append(0) },
			"pop":     func(s *Store) { s.Pop() },
			"resize":  func(s *Store) { s.Resize(2) },
			"reverse": func(s *Store) { s.Reverse() },
		}
		for name, mutate := range mutations {
			a := heapStore(1, 2, 3, 4, 5, 6)
			b := a.Clone()
			mutate(&b)
			assert.Equal(t, []uint32{1, 2, 3, 4, 5, 6}, a.Words(), name)
			assert.False(t, a.Shared(), name)
		}
	})

	t.Run("chain of writes clones once", func(t *testing.T) {
		logs := observeLogs(t)
		a := heapStore(1, 2, 3, 4, 5, 6)
		b := a.Clone()
		for i := 0; i < 6; i++ {
			b.Set(i, uint32(10*i))
		}
		b.Append(60)
		b.Reverse()
		assert.Equal(t, 1, logs.FilterMessage("store unshared buffer").Len())
		assert.Equal(t, []uint32{60, 50, 40, 30, 20, 10, 0}, b.Words())
	})

	t.Run("unique owner writes in place", func(t *testing.T) {
		a := heapStore(1, 2, 3, 4, 5, 6)
		buf := a.buf
		a.Set(0, 7)
		assert.Same(t, buf, a.buf)
	})
}

func TestStore_Assign(t *testing.T) {
	t.Run("self", func(t *testing.T) {
		a := heapStore(1, 2, 3, 4, 5, 6)
		a.Assign(&a)
		assert.Equal(t, []uint32{1, 2, 3, 4, 5, 6}, a.Words())
		assert.Equal(t, int32(1), a.buf.refs.Load())
	})

	t.Run("same buffer", func(t *testing.T) {
		a := heapStore(1, 2, 3, 4, 5, 6)
		b := a.Clone()
		b.Assign(&a)
		assert.Equal(t, int32(2), a.buf.refs.Load())
	})

	t.Run("releases previous", func(t *testing.T) {
		a := heapStore(1, 2, 3, 4, 5, 6)
		b := a.Clone()
		c := FromWords([]uint32{9})
		b.Assign(&c)
		assert.False(t, a.Shared())
		assert.Equal(t, []uint32{9}, b.Words())
		assert.True(t, b.Inline())
	})

	t.Run("aliases heap source", func(t *testing.T) {
		a := heapStore(1, 2, 3, 4, 5, 6)
		var b Store
		b.Assign(&a)
		assert.Same(t, a.buf, b.buf)
		assert.Equal(t, int32(2), a.buf.refs.Load())
	})
}

func TestStore_Release(t *testing.T) {
	a := heapStore(1, 2, 3, 4, 5, 6)
	b := a.Clone()
	c := a.Clone()
	assert.Equal(t, int32(3), a.buf.refs.Load())
	b.Release()
	assert.Equal(t, int32(2), a.buf.refs.Load())
	assert.Equal(t, 0, b.Len())
	assert.True(t, b.Inline())
	c.Release()
	assert.False(t, a.Shared())
	assert.Equal(t, []uint32{1, 2, 3, 4, 5, 6}, a.Words())
}

func TestSharedBuffer_ReleaseTooOften(t *testing.T) {
	b := newBuffer(1)
	b.refs.Store(0)
	assert.Panics(t, func() { b.release() })
}

func TestStore_Equal(t *testing.T) {
	tests := []struct {
		x, y Store
		want bool
	}{
		{Store{}, Store{}, true},
		{FromWord(0), Store{}, false},
		{FromWords([]uint32{1, 2}), FromWords([]uint32{1, 2}), true},
		{FromWords([]uint32{1, 2}), FromWords([]uint32{2, 1}), false},
		{FromWords([]uint32{1, 2}), heapStore(1, 2), true},
		{heapStore(1, 2, 3, 4, 5), heapStore(1, 2, 3, 4, 5), true},
		{heapStore(1, 2, 3, 4, 5), heapStore(1, 2, 3, 4, 6), false},
		{heapStore(1, 2, 3, 4, 5), heapStore(1, 2, 3, 4), false},
	}
	for _, tt := range tests {
		got := tt.x.Equal(&tt.y)
		assert.Equal(t, tt.want, got, "%v.Equal(%v)", &tt.x, &tt.y)
		got = tt.y.Equal(&tt.x)
		assert.Equal(t, tt.want, got, "%v.Equal(%v)", &tt.y, &tt.x)
	}
}

// model applies op to both s and ref and keeps them in lockstep.
func model(t *testing.T, s *Store, ref []uint32, op byte, w uint32) []uint32 {
	t.Helper()
	switch op % 5 {
	case 0:
		s.Append(w)
		ref = append(ref, w)
	case 1:
		if len(ref) == 0 {
			return ref
		}
		s.Pop()
		ref = ref[:len(ref)-1]
	case 2:
		s.Reverse()
		for i, j := 0, len(ref)-1; i < j; i, j = i+1, j-1 {
			ref[i], ref[j] = ref[j], ref[i]
		}
	case 3:
		if len(ref) == 0 {
			return ref
		}
		i := int(w) % len(ref)
		s.Set(i, w)
		ref[i] = w
	case 4:
		n := int(w % 12)
		s.Resize(n)
		for len(ref) < n {
			ref = append(ref, 0)
		}
		ref = ref[:n]
	}
	return ref
}

func TestStore_Model(t *testing.T) {
	rnd := rand.New(rand.NewSource(318))
	for round := 0; round < 200; round++ {
		var s Store
		var ref []uint32
		var snapshots []Store
		var wants [][]uint32
		for step := 0; step < 50; step++ {
			ref = model(t, &s, ref, byte(rnd.Intn(5)), rnd.Uint32())
			if diff := cmp.Diff(ref, s.Words(), cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("round %d step %d mismatch (-want +got):\n%s", round, step, diff)
			}
			if rnd.Intn(4) == 0 {
				snapshots = append(snapshots, s.Clone())
				wants = append(wants, append([]uint32(nil), ref...))
			}
		}
		for i := range snapshots {
			assert.Equal(t, len(wants[i]), snapshots[i].Len())
			for j, w := range wants[i] {
				require.Equal(t, w, snapshots[i].At(j), "round %d snapshot %d word %d", round, i, j)
			}
			snapshots[i].Release()
		}
		s.Release()
	}
}
