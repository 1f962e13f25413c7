package bigint

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/DK318/bigint/internal/digits"
)

const (
	// chunkDigits is the number of decimal digits that fit in one limb.
	chunkDigits = 9
	// chunkBase is 10^chunkDigits.
	chunkBase = 1_000_000_000
)

var pow10 = [chunkDigits + 1]uint32{
	1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000, 100_000_000, 1_000_000_000,
}

// Parse converts a string to an integer.
// The input must be in the following format:
//
//	sign           ::= '+' | '-'
//	digits         ::= { '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9' }
//	numeric-string ::= [sign] digits
//
// Leading zeros are allowed and ignored. "-0" parses as 0.
//
// Parse returns error:
//   - if the string does not represent an integer ([ErrInvalidFormat]).
//   - if the result would have more than [MaxLimbs] limbs ([ErrAllocation]).
func Parse(s string) (Int, error) {
	x, err := parse(s)
	if err != nil {
		if ce := Logger().Check(zap.DebugLevel, "rejected integer"); ce != nil {
			ce.Write(zap.Int("length", len(s)), zap.Error(err))
		}
		return Int{}, err
	}
	return x, nil
}

func parse(s string) (Int, error) {
	var (
		pos   int
		width int
		neg   bool
	)

	width = len(s)

	// Sign
	switch {
	case pos == width:
		// skip
	case s[pos] == '-':
		neg = true
		pos++
	case s[pos] == '+':
		pos++
	}

	if pos == width {
		return Int{}, errors.Wrap(ErrInvalidFormat, "no digits")
	}
	for i := pos; i < width; i++ {
		if s[i] < '0' || s[i] > '9' {
			return Int{}, errors.Wrapf(ErrInvalidFormat, "invalid character %q at position %d", s[i], i)
		}
	}
	if err := checkLimbs((width - pos + chunkDigits - 1) / chunkDigits); err != nil {
		return Int{}, err
	}

	// Digits are consumed in chunks of up to nine, so that each step is
	// z = z*10^k + chunk with a single limb multiplier.
	z := digits.FromWord(0)
	for pos < width {
		k := min(chunkDigits, width-pos)
		var chunk uint32
		for _, c := range []byte(s[pos : pos+k]) {
			chunk = chunk*10 + uint32(c-'0')
		}
		mulAddWord(&z, pow10[k], chunk)
		pos += k
	}
	return newInt(neg, z), nil
}

// String method implements the [fmt.Stringer] interface and returns
// a string representation of the integer.
// The returned string is formatted according to the following formal
// EBNF grammar:
//
//	sign           ::= '-'
//	digits         ::= { '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9' }
//	numeric-string ::= [sign] digits
//
// There are no leading zeros and 0 is never signed.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (x Int) String() string {
	return string(x.appendDigits(nil, x.IsNeg()))
}

// appendDigits appends the decimal digits of |x| to buf, preceded by '-'
// if sign is set.
func (x Int) appendDigits(buf []byte, sign bool) []byte {
	// Chunks of nine digits, least significant first.
	var chunks []uint32
	q := x.abs.Clone()
	for {
		next, r := shortDiv(&q, chunkBase)
		q.Release()
		q = next
		chunks = append(chunks, r)
		if isZeroAbs(&q) {
			break
		}
	}
	q.Release()

	if sign {
		buf = append(buf, '-')
	}
	// The most significant chunk has no leading zeros, the others are padded.
	var tmp [chunkDigits]byte
	for i := len(chunks) - 1; i >= 0; i-- {
		c, top := chunks[i], i == len(chunks)-1
		pos := len(tmp)
		for {
			pos--
			tmp[pos] = byte(c%10) + '0'
			c /= 10
			if pos == 0 || top && c == 0 {
				break
			}
		}
		buf = append(buf, tmp[pos:]...)
	}
	return buf
}

// Format implements [fmt.Formatter] interface.
// The following [verbs] are available:
//
//	%d, %s, %v: -123
//	%q:        "-123"
//
// The following format flags can be used with all verbs: '+', ' ', '0', '-'.
// Width is supported; precision is ignored.
//
// [verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (x Int) Format(state fmt.State, verb rune) {
	// Digits
	digs := x.appendDigits(nil, false)

	// Arithmetic sign
	rsign := 0
	if x.IsNeg() || state.Flag('+') || state.Flag(' ') {
		rsign = 1
	}

	// Quotes
	lquote, tquote := 0, 0
	if verb == 'q' {
		lquote, tquote = 1, 1
	}

	// Padding
	width := lquote + rsign + len(digs) + tquote
	lspaces, tspaces, lzeroes := 0, 0, 0
	if w, ok := state.Width(); ok && w > width {
		switch {
		case state.Flag('-'):
			tspaces = w - width
		case state.Flag('0'):
			lzeroes = w - width
		default:
			lspaces = w - width
		}
		width = w
	}

	// Writing buffer
	buf := make([]byte, 0, width)
	for i := 0; i < lspaces; i++ {
		buf = append(buf, ' ')
	}
	if lquote > 0 {
		buf = append(buf, '"')
	}
	if rsign > 0 {
		switch {
		case x.IsNeg():
			buf = append(buf, '-')
		case state.Flag('+'):
			buf = append(buf, '+')
		default:
			buf = append(buf, ' ')
		}
	}
	for i := 0; i < lzeroes; i++ {
		buf = append(buf, '0')
	}
	buf = append(buf, digs...)
	if tquote > 0 {
		buf = append(buf, '"')
	}
	for i := 0; i < tspaces; i++ {
		buf = append(buf, ' ')
	}

	// Writing result
	switch verb {
	case 'd', 'q', 's', 'v':
		state.Write(buf)
	default:
		state.Write([]byte("%!"))
		state.Write([]byte(string(verb)))
		state.Write([]byte("(bigint.Int="))
		state.Write(buf)
		state.Write([]byte(")"))
	}
}
