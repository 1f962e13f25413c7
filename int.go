package bigint

import (
	"math"
	"math/bits"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/DK318/bigint/internal/digits"
)

// Int type is a representation of an arbitrary-precision signed integer.
// The zero value is the numeric value of 0.
//
// Int is a struct with two fields:
//
//   - Sign: a boolean indicating whether the integer is negative.
//   - Magnitude: the absolute value as a sequence of 32-bit limbs,
//     least significant first.
//
// Values are immutable: every operation returns a new Int and leaves its
// operands unchanged. Copying an Int is cheap; magnitudes longer than a few
// limbs are shared between copies and never modified in place.
// Operations that need a writable magnitude clone it through the
// copy-on-write protocol of the digits package first.
// Because of that, an Int is safe for concurrent use by multiple goroutines.
type Int struct {
	neg bool         // indicates whether the integer is negative
	abs digits.Store // the magnitude of the integer
}

// MaxLimbs is the maximum number of 32-bit limbs in the magnitude of an Int.
// Operations whose result would be longer fail with [ErrAllocation].
const MaxLimbs = 1 << 26

var (
	// ErrInvalidFormat is returned when text or binary input does not
	// represent an integer.
	ErrInvalidFormat = errors.New("invalid integer format")
	// ErrDivisionByZero is returned by division and remainder with a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrAllocation is returned when a result would exceed [MaxLimbs].
	ErrAllocation = errors.New("allocation failure")
)

var one = NewFromWord(1)

// newInt returns an Int with the normalized magnitude abs.
// Zero is never negative.
func newInt(neg bool, abs digits.Store) Int {
	norm(&abs)
	if isZeroAbs(&abs) {
		neg = false
	}
	return Int{neg: neg, abs: abs}
}

// checkLimbs returns an error if a magnitude of n limbs cannot be allocated.
func checkLimbs(n int) error {
	if n > MaxLimbs {
		return errors.Wrapf(ErrAllocation, "%d limbs requested, maximum is %d", n, MaxLimbs)
	}
	return nil
}

// New returns an integer equal to x.
func New(x int64) Int {
	if x < 0 {
		// -math.MinInt64 overflows, but its two's-complement bit pattern
		// read as uint64 is the correct magnitude.
		return NewFromUint64(uint64(-x)).Neg()
	}
	return NewFromUint64(uint64(x))
}

// NewFromUint64 returns an integer equal to x.
func NewFromUint64(x uint64) Int {
	if x <= math.MaxUint32 {
		return NewFromWord(uint32(x))
	}
	return Int{abs: digits.FromWords([]uint32{uint32(x), uint32(x >> 32)})}
}

// NewFromWord returns an integer equal to w.
func NewFromWord(w uint32) Int {
	return Int{abs: digits.FromWord(w)}
}

// NewFromBits returns an integer with the given sign and magnitude.
// The magnitude is a little-endian sequence of 32-bit limbs and is copied.
// Also see method [Int.Bits].
func NewFromBits(neg bool, limbs []uint32) (Int, error) {
	if err := checkLimbs(len(limbs)); err != nil {
		return Int{}, err
	}
	return newInt(neg, digits.FromWords(limbs)), nil
}

// Bits returns a copy of the magnitude of x as little-endian 32-bit limbs.
// The magnitude of 0 is a single zero limb.
func (x Int) Bits() []uint32 {
	if x.abs.Len() == 0 {
		return []uint32{0}
	}
	return x.abs.Words()
}

// BitLen returns the length of the absolute value of x in bits.
// The bit length of 0 is 0.
func (x Int) BitLen() int {
	n := size(&x.abs)
	top := word(&x.abs, n-1)
	if n == 1 && top == 0 {
		return 0
	}
	return (n-1)*32 + bits.Len32(top)
}

// Int64 returns x as an int64.
// If x cannot be represented in an int64, the result is (0, false).
func (x Int) Int64() (int64, bool) {
	u, ok := x.absUint64()
	if !ok {
		return 0, false
	}
	if x.neg {
		if u > 1<<63 {
			return 0, false
		}
		return -int64(u), true
	}
	if u > math.MaxInt64 {
		return 0, false
	}
	return int64(u), true
}

// Uint64 returns x as a uint64.
// If x is negative or does not fit in a uint64, the result is (0, false).
func (x Int) Uint64() (uint64, bool) {
	if x.neg {
		return 0, false
	}
	return x.absUint64()
}

func (x Int) absUint64() (uint64, bool) {
	if size(&x.abs) > 2 {
		return 0, false
	}
	return uint64(word(&x.abs, 1))<<32 | uint64(word(&x.abs, 0)), true
}

// Neg returns x with opposite sign.
func (x Int) Neg() Int {
	if x.IsZero() {
		return Int{abs: digits.FromWord(0)}
	}
	return Int{neg: !x.neg, abs: x.abs}
}

// Abs returns the absolute value of x.
func (x Int) Abs() Int {
	return Int{abs: x.abs}
}

// Sign returns:
//
//	-1 if x < 0
//	 0 if x == 0
//	+1 if x > 0
func (x Int) Sign() int {
	switch {
	case x.neg:
		return -1
	case x.IsZero():
		return 0
	}
	return 1
}

// IsPos returns true if x > 0.
func (x Int) IsPos() bool {
	return !x.neg && !x.IsZero()
}

// IsNeg returns true if x < 0.
func (x Int) IsNeg() bool {
	return x.neg
}

// IsZero returns true if x == 0.
func (x Int) IsZero() bool {
	return isZeroAbs(&x.abs)
}

// Add returns the sum x + y.
func (x Int) Add(y Int) Int {
	if x.neg == y.neg {
		return newInt(x.neg, addAbs(&x.abs, &y.abs))
	}
	// Mixed signs: subtract the smaller magnitude from the larger one.
	switch cmpAbs(&x.abs, &y.abs) {
	case 1:
		return newInt(x.neg, subAbs(&x.abs, &y.abs))
	case -1:
		return newInt(y.neg, subAbs(&y.abs, &x.abs))
	}
	return Int{abs: digits.FromWord(0)}
}

// Sub returns the difference x - y.
func (x Int) Sub(y Int) Int {
	return x.Add(y.Neg())
}

// Inc returns x + 1.
func (x Int) Inc() Int {
	return x.Add(one)
}

// Dec returns x - 1.
func (x Int) Dec() Int {
	return x.Sub(one)
}

// Mul returns the product x * y.
//
// Mul returns an error if the product would have more than [MaxLimbs] limbs.
func (x Int) Mul(y Int) (Int, error) {
	if err := checkLimbs(size(&x.abs) + size(&y.abs)); err != nil {
		return Int{}, err
	}
	return newInt(x.neg != y.neg, mulAbs(&x.abs, &y.abs)), nil
}

// Quo returns the quotient x / y truncated towards zero.
//
// Quo returns an error if y is 0.
func (x Int) Quo(y Int) (Int, error) {
	if y.IsZero() {
		logDivisionByZero("Quo", x)
		return Int{}, ErrDivisionByZero
	}
	return newInt(x.neg != y.neg, quoAbs(&x.abs, &y.abs)), nil
}

// Rem returns the remainder x - (x / y) * y.
// The remainder is 0 or has the sign of x, so that
// x == x.Quo(y) * y + x.Rem(y).
//
// Rem returns an error if y is 0.
func (x Int) Rem(y Int) (Int, error) {
	_, r, err := x.QuoRem(y)
	return r, err
}

// QuoRem returns the quotient and remainder of x and y such that
// x = q * y + r, where q is truncated towards zero and r has the sign of x.
//
// QuoRem returns an error if y is 0.
func (x Int) QuoRem(y Int) (q, r Int, err error) {
	q, err = x.Quo(y)
	if err != nil {
		return Int{}, Int{}, err
	}
	p, err := q.Mul(y)
	if err != nil {
		return Int{}, Int{}, err // unexpected by design
	}
	return q, x.Sub(p), nil
}

// Lsh returns x << n, that is x * 2^n.
//
// Lsh returns an error if the result would have more than [MaxLimbs] limbs.
func (x Int) Lsh(n uint) (Int, error) {
	if x.IsZero() {
		return Int{abs: digits.FromWord(0)}, nil
	}
	k, s := n/32, n%32
	if k > MaxLimbs {
		return Int{}, checkLimbs(MaxLimbs + 1)
	}
	if err := checkLimbs(size(&x.abs) + int(k)); err != nil {
		return Int{}, err
	}
	z := mulWord(&x.abs, 1<<s)
	norm(&z)
	// Prepend k zero limbs at the least significant end.
	z.Reverse()
	for i := uint(0); i < k; i++ {
		z.Append(0)
	}
	z.Reverse()
	return newInt(x.neg, z), nil
}

// Rsh returns x >> n, that is x / 2^n rounded towards negative infinity.
// This matches the arithmetic shift of an infinite two's-complement
// representation, so -1 >> n == -1 for every n.
func (x Int) Rsh(n uint) Int {
	k, s := n/32, n%32
	z, r := shortDiv(&x.abs, 1<<s)
	lost := r != 0
	// Drop k limbs at the least significant end.
	z.Reverse()
	for i := uint(0); i < k && z.Len() > 0; i++ {
		lost = lost || z.Last() != 0
		z.Pop()
	}
	z.Reverse()
	q := newInt(x.neg, z)
	if x.neg && lost {
		return q.Dec()
	}
	return q
}

// And returns the bitwise x & y in two's-complement semantics.
func (x Int) And(y Int) Int {
	return bitwise(x, y, func(a, b uint32) uint32 { return a & b })
}

// Or returns the bitwise x | y in two's-complement semantics.
func (x Int) Or(y Int) Int {
	return bitwise(x, y, func(a, b uint32) uint32 { return a | b })
}

// Xor returns the bitwise x ^ y in two's-complement semantics.
func (x Int) Xor(y Int) Int {
	return bitwise(x, y, func(a, b uint32) uint32 { return a ^ b })
}

// Not returns the bitwise complement ^x, which equals -x - 1.
func (x Int) Not() Int {
	return x.Neg().Dec()
}

// bitwise applies op limb by limb to the two's-complement forms of x and y.
// The sign bits, extended to infinity, go through op as well.
func bitwise(x, y Int, op func(a, b uint32) uint32) Int {
	n := max(size(&x.abs), size(&y.abs))
	a := twos(x, n)
	b := twos(y, n)
	defer a.Release()
	defer b.Release()

	z := digits.Make(n)
	for i := 0; i < n; i++ {
		z.Set(i, op(a.At(i), b.At(i)))
	}
	neg := op(signBit(x), signBit(y))&1 != 0
	if neg {
		// Back from two's complement to sign-magnitude.
		complementAbs(&z)
		incAbs(&z)
	}
	return newInt(neg, z)
}

func signBit(x Int) uint32 {
	if x.neg {
		return 1
	}
	return 0
}

// Cmp compares x and y numerically and returns:
//
//	-1 if x < y
//	 0 if x == y
//	+1 if x > y
func (x Int) Cmp(y Int) int {
	// Special case: different signs
	switch {
	case x.neg && !y.neg:
		return -1
	case !x.neg && y.neg:
		return 1
	}
	// General case
	r := cmpAbs(&x.abs, &y.abs)
	if x.neg {
		return -r
	}
	return r
}

// Equal returns true if x == y.
func (x Int) Equal(y Int) bool {
	return x.neg == y.neg && cmpAbs(&x.abs, &y.abs) == 0
}

// Less returns true if x < y.
func (x Int) Less(y Int) bool {
	return x.Cmp(y) < 0
}

// Max returns the maximum of x and y.
func (x Int) Max(y Int) Int {
	if x.Cmp(y) >= 0 {
		return x
	}
	return y
}

// Min returns the minimum of x and y.
func (x Int) Min(y Int) Int {
	if x.Cmp(y) <= 0 {
		return x
	}
	return y
}

func logDivisionByZero(op string, x Int) {
	if ce := Logger().Check(zap.DebugLevel, "division by zero"); ce != nil {
		ce.Write(zap.String("op", op), zap.Stringer("dividend", x))
	}
}
