package bytecode

import "errors"

// ErrDivideByZero is returned by the fallible division and modulo ops when
// the divisor is zero.
var ErrDivideByZero = errors.New("divide by zero")

// Value is a 64-bit cell with no intrinsic signedness. Signed and unsigned
// views are exposed as separate accessors, and operators whose semantics
// differ by sign are separate methods.
type Value uint64

// AsUnsigned returns the value's unsigned 64-bit interpretation.
func (v Value) AsUnsigned() uint64 { return uint64(v) }

// AsSigned returns the value's two's-complement signed 64-bit interpretation.
func (v Value) AsSigned() int64 { return int64(v) }

// Bytes returns the big-endian byte representation of the value.
func (v Value) Bytes() [8]byte {
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> uint(8*(7-i)))
	}
	return b
}

// Add, Sub and Mul wrap on 64-bit overflow, matching Go's defined unsigned
// arithmetic semantics.
func (v Value) Add(rhs Value) Value { return v + rhs }
func (v Value) Sub(rhs Value) Value { return v - rhs }
func (v Value) Mul(rhs Value) Value { return v * rhs }

// DivUnsigned performs unsigned integer division; b == 0 is DivideByZero.
func (v Value) DivUnsigned(rhs Value) (Value, error) {
	if rhs == 0 {
		return 0, ErrDivideByZero
	}
	return v / rhs, nil
}

// DivSigned performs signed integer division; b == 0 is DivideByZero.
func (v Value) DivSigned(rhs Value) (Value, error) {
	if rhs == 0 {
		return 0, ErrDivideByZero
	}
	return Value(v.AsSigned() / rhs.AsSigned()), nil
}

// Mod performs unsigned integer remainder; b == 0 is DivideByZero.
func (v Value) Mod(rhs Value) (Value, error) {
	if rhs == 0 {
		return 0, ErrDivideByZero
	}
	return Value(v.AsUnsigned() % rhs.AsUnsigned()), nil
}

func boolValue(b bool) Value {
	if b {
		return 1
	}
	return 0
}

func (v Value) GreaterUnsigned(rhs Value) Value { return boolValue(v > rhs) }
func (v Value) GreaterSigned(rhs Value) Value    { return boolValue(v.AsSigned() > rhs.AsSigned()) }
func (v Value) LessUnsigned(rhs Value) Value     { return boolValue(v < rhs) }
func (v Value) LessSigned(rhs Value) Value       { return boolValue(v.AsSigned() < rhs.AsSigned()) }
func (v Value) GreaterEqUnsigned(rhs Value) Value {
	return boolValue(v >= rhs)
}
func (v Value) GreaterEqSigned(rhs Value) Value {
	return boolValue(v.AsSigned() >= rhs.AsSigned())
}
func (v Value) LessEqUnsigned(rhs Value) Value { return boolValue(v <= rhs) }
func (v Value) LessEqSigned(rhs Value) Value {
	return boolValue(v.AsSigned() <= rhs.AsSigned())
}

// Eq compares all 64 bits bitwise; there is no signed/unsigned distinction.
func (v Value) Eq(rhs Value) Value { return boolValue(v == rhs) }

func (v Value) And(rhs Value) Value { return v & rhs }
func (v Value) Or(rhs Value) Value  { return v | rhs }
func (v Value) Xor(rhs Value) Value { return v ^ rhs }

// Not is logical negation: 1 if the value is zero, else 0.
func (v Value) Not() Value { return boolValue(v == 0) }

// Inv is bitwise NOT across all 64 bits.
func (v Value) Inv() Value { return ^v }
