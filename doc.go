/*
Package bigint implements immutable arbitrary-precision signed integers.
It is designed for workloads where most values are small but some grow
without bound, so short numbers should not touch the heap.

# Representation

[Int] is a struct with two fields:

  - Sign: a boolean indicating whether the integer is negative.
  - Magnitude: an unsigned integer in base 2^32, stored as a sequence of
    32-bit limbs, least significant first.

The numerical value of an integer is calculated as:

  - -Magnitude, if Sign is true.
  - Magnitude, if Sign is false.

Every value has exactly one representation: the magnitude has no leading
zero limbs and 0 is never negative.

# Storage

Magnitudes of up to four limbs (values below 2^128) are kept inline in the
[Int] itself. Longer magnitudes live in a reference-counted buffer that is
shared between copies of an [Int] and copied only when an operation needs to
write to it. Assigning an [Int] is therefore always cheap.

# Conversions

The package provides methods for converting integers:

  - from/to string:
    [Parse], [Int.String], [Int.Format].
  - from/to int64 and uint64:
    [New], [NewFromUint64], [Int.Int64], [Int.Uint64].
  - from/to limbs:
    [NewFromWord], [NewFromBits], [Int.Bits].
  - text, binary and SQL encodings:
    [Int.MarshalText], [Int.MarshalBinary], [Int.Scan], [Int.Value], [NullInt].

# Operations

Arithmetic follows the usual sign-magnitude rules.
[Int.Quo] truncates towards zero and [Int.Rem] takes the sign of the dividend,
like the / and % operators on Go integers.
[Int.Rsh] rounds towards negative infinity, and [Int.And], [Int.Or], [Int.Xor]
and [Int.Not] act on an infinite two's-complement representation,
like the corresponding operators on Go signed integers.

# Errors

Operations that cannot fail return an [Int].
Errors are returned in the following cases:

  - Division by Zero.
    Unlike the standard library, [Int.Quo], [Int.Rem] and [Int.QuoRem]
    do not panic when dividing by 0.
    Instead, they return [ErrDivisionByZero].

  - Invalid Format.
    [Parse], [Int.UnmarshalText] and [Int.UnmarshalBinary] return
    [ErrInvalidFormat] for malformed input.

  - Allocation.
    [Int.Mul], [Int.Lsh], [Parse] and [NewFromBits] return [ErrAllocation]
    if the result would have more than [MaxLimbs] limbs.

Errors wrap the sentinels above and can be tested with [errors.Is].
The Must variants, such as [Int.MustQuo], panic instead.

[errors.Is]: https://pkg.go.dev/errors#Is
*/
package bigint
