package bigint

import (
	"database/sql/driver"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/DK318/bigint/internal/digits"
)

// binaryVersion is stored in the upper seven bits of the first byte
// produced by [Int.MarshalBinary]. The lowest bit holds the sign.
const binaryVersion = 1

// UnmarshalText implements [encoding.TextUnmarshaler] interface.
// Also see method [Parse].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (x *Int) UnmarshalText(text []byte) error {
	var err error
	*x, err = Parse(string(text))
	return err
}

// MarshalText implements [encoding.TextMarshaler] interface.
// Also see method [Int.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (x Int) MarshalText() ([]byte, error) {
	return x.appendDigits(nil, x.IsNeg()), nil
}

// MarshalBinary implements [encoding.BinaryMarshaler] interface.
// The encoding is one header byte holding the format version and the sign,
// followed by the magnitude limbs, most significant first, each as four
// big-endian bytes.
//
// [encoding.BinaryMarshaler]: https://pkg.go.dev/encoding#BinaryMarshaler
func (x Int) MarshalBinary() ([]byte, error) {
	n := size(&x.abs)
	buf := make([]byte, 1, 1+4*n)
	buf[0] = binaryVersion << 1
	if x.IsNeg() {
		buf[0] |= 1
	}
	for i := n - 1; i >= 0; i-- {
		buf = binary.BigEndian.AppendUint32(buf, word(&x.abs, i))
	}
	return buf, nil
}

// UnmarshalBinary implements [encoding.BinaryUnmarshaler] interface.
// Also see method [Int.MarshalBinary].
//
// [encoding.BinaryUnmarshaler]: https://pkg.go.dev/encoding#BinaryUnmarshaler
func (x *Int) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		return errors.Wrap(ErrInvalidFormat, "empty binary encoding")
	}
	if v := data[0] >> 1; v != binaryVersion {
		return errors.Wrapf(ErrInvalidFormat, "binary encoding version %d not supported", v)
	}
	neg := data[0]&1 != 0
	data = data[1:]
	if len(data) == 0 || len(data)%4 != 0 {
		return errors.Wrapf(ErrInvalidFormat, "magnitude of %d bytes is not a whole number of limbs", len(data))
	}
	n := len(data) / 4
	if err := checkLimbs(n); err != nil {
		return err
	}
	z := digits.Make(n)
	for i := 0; i < n; i++ {
		z.Set(n-1-i, binary.BigEndian.Uint32(data[4*i:]))
	}
	*x = newInt(neg, z)
	return nil
}

// Scan implements the [sql.Scanner] interface.
// It accepts decimal text as string or []byte, int64 and uint64.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (x *Int) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*x, err = Parse(value)
	case []byte:
		*x, err = Parse(string(value))
	case int64:
		*x = New(value)
	case uint64:
		*x = NewFromUint64(value)
	default:
		err = errors.Errorf("bigint.Int.Scan(%T) failed: unsupported source type", value)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
// The integer is stored as decimal text.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (x Int) Value() (driver.Value, error) {
	return x.String(), nil
}

// NullInt represents an integer that can be null.
// Its zero value is null.
// NullInt is not thread-safe.
type NullInt struct {
	Int   Int
	Valid bool
}

// Scan implements the [sql.Scanner] interface.
// See also method [Int.Scan].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (n *NullInt) Scan(value any) error {
	if value == nil {
		n.Int = Int{}
		n.Valid = false
		return nil
	}
	err := n.Int.Scan(value)
	if err != nil {
		n.Int = Int{}
		n.Valid = false
		return err
	}
	n.Valid = true
	return nil
}

// Value implements the [driver.Valuer] interface.
// See also method [Int.Value].
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (n NullInt) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Int.Value()
}
