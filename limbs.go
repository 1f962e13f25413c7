package bigint

import (
	"math"
	"math/bits"

	"github.com/DK318/bigint/internal/digits"
)

// A magnitude is a digits.Store read as an unsigned integer in base 2^32,
// least significant limb first:
//
//	x = x[n-1]*2^(32*(n-1)) + ... + x[1]*2^32 + x[0]
//
// A magnitude is normalized if it has no leading zero limbs, except for 0
// itself, which is the single limb [0]. The empty Store also denotes 0.
// During arithmetic operations denormalized values may occur but are always
// normalized before a result leaves this file.

// word returns the i-th limb of x, or 0 past the end of x.
func word(x *digits.Store, i int) uint32 {
	if i < x.Len() {
		return x.At(i)
	}
	return 0
}

// size returns the number of limbs of x, counting the empty Store as [0].
func size(x *digits.Store) int {
	if n := x.Len(); n > 0 {
		return n
	}
	return 1
}

// norm strips redundant most significant zero limbs from z.
func norm(z *digits.Store) {
	if z.Len() == 0 {
		z.Append(0)
		return
	}
	for z.Len() > 1 && z.Last() == 0 {
		z.Pop()
	}
}

// isZeroAbs reports whether the normalized magnitude x is 0.
func isZeroAbs(x *digits.Store) bool {
	switch x.Len() {
	case 0:
		return true
	case 1:
		return x.At(0) == 0
	}
	return false
}

// cmpAbs compares normalized magnitudes and returns:
//
//	-1 if |x| < |y|
//	 0 if |x| == |y|
//	+1 if |x| > |y|
func cmpAbs(x, y *digits.Store) int {
	m, n := size(x), size(y)
	switch {
	case m < n:
		return -1
	case m > n:
		return 1
	}
	for i := m - 1; i >= 0; i-- {
		xi, yi := word(x, i), word(y, i)
		switch {
		case xi < yi:
			return -1
		case xi > yi:
			return 1
		}
	}
	return 0
}

// addAbs returns |x| + |y|.
func addAbs(x, y *digits.Store) digits.Store {
	n := max(size(x), size(y))
	z := digits.Make(n)
	var carry uint64
	for i := 0; i < n; i++ {
		s := uint64(word(x, i)) + uint64(word(y, i)) + carry
		z.Set(i, uint32(s))
		carry = s >> 32
	}
	if carry != 0 {
		z.Append(uint32(carry))
	}
	norm(&z)
	return z
}

// subAbs returns |x| - |y|. It requires |x| >= |y|.
func subAbs(x, y *digits.Store) digits.Store {
	n := size(x)
	z := digits.Make(n)
	var borrow uint32
	for i := 0; i < n; i++ {
		var d uint32
		d, borrow = bits.Sub32(word(x, i), word(y, i), borrow)
		z.Set(i, d)
	}
	if borrow != 0 {
		panic("bigint: subAbs underflow") // unexpected by design
	}
	norm(&z)
	return z
}

// mulAbs returns |x| * |y| using the schoolbook method.
func mulAbs(x, y *digits.Store) digits.Store {
	m, n := size(x), size(y)
	z := digits.Make(m + n)
	for i := 0; i < m; i++ {
		xi := uint64(word(x, i))
		if xi == 0 {
			continue
		}
		var carry uint64
		for j := 0; j < n; j++ {
			t := uint64(z.At(i+j)) + xi*uint64(word(y, j)) + carry
			z.Set(i+j, uint32(t))
			carry = t >> 32
		}
		z.Set(i+n, uint32(carry))
	}
	norm(&z)
	return z
}

// mulWord returns |x| * y with one extra most significant limb that holds
// the carry, possibly 0. The result is not normalized.
func mulWord(x *digits.Store, y uint32) digits.Store {
	n := size(x)
	z := digits.Make(n + 1)
	var carry uint64
	for i := 0; i < n; i++ {
		t := uint64(word(x, i))*uint64(y) + carry
		z.Set(i, uint32(t))
		carry = t >> 32
	}
	z.Set(n, uint32(carry))
	return z
}

// mulAddWord sets z to z * y + r in place.
func mulAddWord(z *digits.Store, y, r uint32) {
	carry := uint64(r)
	for i := 0; i < z.Len(); i++ {
		t := uint64(z.At(i))*uint64(y) + carry
		z.Set(i, uint32(t))
		carry = t >> 32
	}
	if carry != 0 {
		z.Append(uint32(carry))
	}
}

// incAbs adds 1 to z in place, growing z by one limb on overflow.
func incAbs(z *digits.Store) {
	for i := 0; i < z.Len(); i++ {
		w := z.At(i) + 1
		z.Set(i, w)
		if w != 0 {
			return
		}
	}
	z.Append(1)
}

// complementAbs flips every bit of z in place.
func complementAbs(z *digits.Store) {
	for i := 0; i < z.Len(); i++ {
		z.Set(i, ^z.At(i))
	}
}

// shortDiv returns q = |x| / y and r = |x| mod y for a single-limb divisor.
// Quotient limbs are produced most significant first and reversed at the end.
func shortDiv(x *digits.Store, y uint32) (q digits.Store, r uint32) {
	if y == 0 {
		panic("bigint: division by zero") // unexpected by design
	}
	var rem uint64
	for i := size(x) - 1; i >= 0; i-- {
		cur := rem<<32 | uint64(word(x, i))
		q.Append(uint32(cur / uint64(y)))
		rem = cur % uint64(y)
	}
	q.Reverse()
	norm(&q)
	return q, uint32(rem)
}

// quoAbs returns |x| / |y|, truncated. It requires y != 0.
func quoAbs(x, y *digits.Store) digits.Store {
	if cmpAbs(x, y) < 0 {
		return digits.FromWord(0)
	}
	if size(y) == 1 {
		q, _ := shortDiv(x, word(y, 0))
		return q
	}
	return divKnuth(x, y)
}

// divKnuth returns |u| / |v| for |u| >= |v| and a divisor of at least two
// limbs, following Knuth's Algorithm D (TAOCP vol. 2, 4.3.1).
func divKnuth(u, v *digits.Store) digits.Store {
	m := size(v)

	// Scale both operands so that the top limb of the divisor has its
	// high bit set. The scaled dividend keeps an extra top limb.
	shift := uint(bits.LeadingZeros32(word(v, m-1)))
	factor := uint32(1) << shift
	un := mulWord(u, factor)
	vn := mulWord(v, factor)
	vn.Pop() // the carry limb of a normalized divisor is 0
	defer un.Release()
	defer vn.Release()

	n := un.Len() - m
	q := digits.Make(n)
	vtop := uint64(vn.At(m - 1))
	for j := n - 1; j >= 0; j-- {
		// Estimate the quotient digit from the top two limbs of the
		// window un[j:j+m+1]. The estimate is never too small and at
		// most 2 too large.
		top := uint64(un.At(j+m))<<32 | uint64(un.At(j+m-1))
		qhat := top / vtop
		if qhat > math.MaxUint32 {
			qhat = math.MaxUint32
		}
		dq := mulWord(&vn, uint32(qhat))
		for qhat != 0 && windowLess(&un, &dq, j) {
			qhat--
			subFrom(&dq, &vn)
		}
		subWindow(&un, &dq, j)
		dq.Release()
		q.Set(j, uint32(qhat))
	}
	norm(&q)
	return q
}

// windowLess reports whether un[j:j+len(dq)] < dq.
func windowLess(un, dq *digits.Store, j int) bool {
	for i := dq.Len() - 1; i >= 0; i-- {
		a, b := un.At(j+i), dq.At(i)
		if a != b {
			return a < b
		}
	}
	return false
}

// subWindow sets un[j:j+len(dq)] -= dq. The window must not be smaller than dq.
func subWindow(un, dq *digits.Store, j int) {
	var borrow uint32
	for i := 0; i < dq.Len(); i++ {
		var d uint32
		d, borrow = bits.Sub32(un.At(j+i), dq.At(i), borrow)
		un.Set(j+i, d)
	}
	if borrow != 0 {
		panic("bigint: negative division window") // unexpected by design
	}
}

// subFrom sets z -= y in place, keeping the length of z. It requires z >= y.
func subFrom(z, y *digits.Store) {
	var borrow uint32
	for i := 0; i < z.Len(); i++ {
		var d uint32
		d, borrow = bits.Sub32(z.At(i), word(y, i), borrow)
		z.Set(i, d)
	}
}

// twos returns x as an n-limb two's-complement bit pattern.
// It requires n >= size(x.abs).
func twos(x Int, n int) digits.Store {
	z := x.abs.Clone()
	z.Resize(n)
	if x.neg {
		complementAbs(&z)
		incAbs(&z)
	}
	return z
}
