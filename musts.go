package bigint

import "fmt"

// MustMul is like [Int.Mul] but panics if computing error.
func (x Int) MustMul(y Int) Int {
	z, err := x.Mul(y)
	if err != nil {
		panic(fmt.Sprintf("MustMul(%v) failed: %v", y, err))
	}
	return z
}

// MustQuo is like [Int.Quo] but panics if computing error.
func (x Int) MustQuo(y Int) Int {
	z, err := x.Quo(y)
	if err != nil {
		panic(fmt.Sprintf("MustQuo(%v) failed: %v", y, err))
	}
	return z
}

// MustRem is like [Int.Rem] but panics if computing error.
func (x Int) MustRem(y Int) Int {
	z, err := x.Rem(y)
	if err != nil {
		panic(fmt.Sprintf("MustRem(%v) failed: %v", y, err))
	}
	return z
}

// MustQuoRem is like [Int.QuoRem] but panics if computing error.
func (x Int) MustQuoRem(y Int) (Int, Int) {
	q, r, err := x.QuoRem(y)
	if err != nil {
		panic(fmt.Sprintf("MustQuoRem(%v) failed: %v", y, err))
	}
	return q, r
}

// MustLsh is like [Int.Lsh] but panics if computing error.
func (x Int) MustLsh(n uint) Int {
	z, err := x.Lsh(n)
	if err != nil {
		panic(fmt.Sprintf("MustLsh(%v) failed: %v", n, err))
	}
	return z
}

// MustNewFromBits is like [NewFromBits] but panics if the magnitude is too long.
func MustNewFromBits(neg bool, limbs []uint32) Int {
	x, err := NewFromBits(neg, limbs)
	if err != nil {
		panic(fmt.Sprintf("MustNewFromBits(%v) failed: %v", len(limbs), err))
	}
	return x
}

// MustParse is like [Parse] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding integers.
func MustParse(s string) Int {
	x, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", s, err))
	}
	return x
}
