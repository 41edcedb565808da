package bytecode

import (
	"errors"
	"fmt"
)

// ErrUnrecognizedOpcode is returned when a byte stream's leading byte does
// not match any known opcode tag.
var ErrUnrecognizedOpcode = errors.New("unrecognized opcode")

// ErrIncompleteLiteral is returned when a decode runs out of bytes while
// reading an opcode's inline literal.
var ErrIncompleteLiteral = errors.New("incomplete literal")

// Instruction is a single decoded (opcode, literal) pair. Literal is always
// stored widened to 64 bits, per Opcode's sign/zero-extension rule.
type Instruction struct {
	Op      Opcode
	Literal uint64
}

// String disassembles the instruction. Push opcodes are followed by their
// literal, printed as a signed number for signed pushes and as an unsigned
// number otherwise.
func (i Instruction) String() string {
	if !i.Op.IsPush() {
		return i.Op.String()
	}
	if i.Op.IsSignedPush() {
		return fmt.Sprintf("%s %d", i.Op, int64(i.Literal))
	}
	return fmt.Sprintf("%s %d", i.Op, i.Literal)
}

// Size returns the total byte length of this instruction once encoded:
// one opcode byte plus its literal width.
func (i Instruction) Size() int {
	return 1 + i.Op.LiteralWidth()
}

// Decode reads a single instruction starting at the front of data, returning
// the instruction and the number of bytes consumed.
func Decode(data []byte) (Instruction, int, error) {
	if len(data) == 0 {
		return Instruction{}, 0, ErrUnrecognizedOpcode
	}

	op := Opcode(data[0])
	if !op.Valid() {
		return Instruction{}, 0, fmt.Errorf("%w: 0x%02x", ErrUnrecognizedOpcode, data[0])
	}

	width := op.LiteralWidth()
	if width == 0 {
		return Instruction{Op: op}, 1, nil
	}

	if len(data)-1 < width {
		return Instruction{}, 0, ErrIncompleteLiteral
	}

	raw := data[1 : 1+width]
	var literal uint64
	if op.IsSignedPush() {
		literal = signExtend(raw)
	} else {
		literal = zeroExtend(raw)
	}

	return Instruction{Op: op, Literal: literal}, 1 + width, nil
}

// Encode appends this instruction's byte representation to dst and returns
// the extended slice. Literals wider than the opcode's width are truncated
// to the low width bytes in big-endian order.
func Encode(dst []byte, instr Instruction) []byte {
	dst = append(dst, byte(instr.Op))
	width := instr.Op.LiteralWidth()
	if width == 0 {
		return dst
	}

	for shift := (width - 1) * 8; shift >= 0; shift -= 8 {
		dst = append(dst, byte(instr.Literal>>shift))
	}
	return dst
}

func zeroExtend(raw []byte) uint64 {
	var v uint64
	for _, b := range raw {
		v = v<<8 | uint64(b)
	}
	return v
}

func signExtend(raw []byte) uint64 {
	v := zeroExtend(raw)
	bits := uint(len(raw)) * 8
	signBit := uint64(1) << (bits - 1)
	if v&signBit != 0 {
		v |= ^uint64(0) << bits
	}
	return v
}

// OptimalPush returns the smallest unsigned push instruction whose decoded
// literal equals v.
func OptimalPush(v uint64) Instruction {
	switch {
	case v <= 0xff:
		return Instruction{Op: Push8, Literal: v}
	case v <= 0xffff:
		return Instruction{Op: Push16, Literal: v}
	case v <= 0xffffffff:
		return Instruction{Op: Push32, Literal: v}
	default:
		return Instruction{Op: Push64, Literal: v}
	}
}

// OptimalPushSigned returns the smallest signed push instruction whose
// decoded literal equals v. A value outside the signed-32 range falls back
// to Push64 (bit-identical to an unsigned 64-bit push).
func OptimalPushSigned(v int64) Instruction {
	switch {
	case v >= -128 && v <= 127:
		return Instruction{Op: Push8S, Literal: uint64(v)}
	case v >= -32768 && v <= 32767:
		return Instruction{Op: Push16S, Literal: uint64(v)}
	case v >= -2147483648 && v <= 2147483647:
		return Instruction{Op: Push32S, Literal: uint64(v)}
	default:
		return Instruction{Op: Push64, Literal: uint64(v)}
	}
}
