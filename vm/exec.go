package vm

import (
	"fmt"
	"strconv"
	"strings"

	"hypescript/bytecode"
)

const maxVarReservation = 1 << 24

// execute runs a single decoded instruction. For Jump/JCond it sets the
// program counter itself (including the taken/not-taken advance); for
// Halt it signals termination; every other opcode advances the PC by the
// instruction's encoded size on return.
func (m *Machine) execute(instr bytecode.Instruction, currentPC, size int) (halt bool, err error) {
	switch instr.Op {
	case bytecode.Halt:
		return true, nil

	case bytecode.Jump:
		offset, err := m.popSigned(currentPC, instr)
		if err != nil {
			return false, err
		}
		m.pc = currentPC + size + int(offset)
		return false, nil

	case bytecode.JCond:
		offset, err := m.popSigned(currentPC, instr)
		if err != nil {
			return false, err
		}
		cond, err := m.pop(currentPC, instr)
		if err != nil {
			return false, err
		}
		if cond != 0 {
			m.pc = currentPC + size + int(offset)
		} else {
			m.pc = currentPC + size
		}
		return false, nil

	default:
		if err := m.executeSimple(instr, currentPC); err != nil {
			return false, err
		}
		m.pc = currentPC + size
		return false, nil
	}
}

func (m *Machine) pop(pc int, instr bytecode.Instruction) (bytecode.Value, error) {
	if len(m.stack) == 0 {
		return 0, m.errAt(StackUnderflow, pc, &instr)
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v, nil
}

func (m *Machine) popSigned(pc int, instr bytecode.Instruction) (int64, error) {
	v, err := m.pop(pc, instr)
	if err != nil {
		return 0, err
	}
	return v.AsSigned(), nil
}

func (m *Machine) push(v bytecode.Value) {
	m.stack = append(m.stack, v)
}

func (m *Machine) slotIndex(pc int, instr bytecode.Instruction) (int, error) {
	v, err := m.pop(pc, instr)
	if err != nil {
		return 0, err
	}
	return int(v.AsUnsigned()), nil
}

func (m *Machine) executeSimple(instr bytecode.Instruction, pc int) error {
	switch instr.Op {
	case bytecode.Push8, bytecode.Push16, bytecode.Push32, bytecode.Push64,
		bytecode.Push8S, bytecode.Push16S, bytecode.Push32S:
		m.push(bytecode.Value(instr.Literal))

	case bytecode.Pop:
		if _, err := m.pop(pc, instr); err != nil {
			return err
		}

	case bytecode.Dup0, bytecode.Dup1, bytecode.Dup2, bytecode.Dup3:
		n := dupDepth(instr.Op)
		if len(m.stack) <= n {
			return m.errAt(StackUnderflow, pc, &instr)
		}
		m.push(m.stack[len(m.stack)-1-n])

	case bytecode.Swap:
		if len(m.stack) < 2 {
			return m.errAt(StackUnderflow, pc, &instr)
		}
		top := len(m.stack) - 1
		m.stack[top], m.stack[top-1] = m.stack[top-1], m.stack[top]

	case bytecode.VarSt:
		n, err := m.slotIndex(pc, instr)
		if err != nil {
			return err
		}
		val, err := m.pop(pc, instr)
		if err != nil {
			return err
		}
		if n < 0 || n >= len(m.vars) {
			return m.errAt(OutOfBoundsVariableReference, pc, &instr)
		}
		m.vars[n] = val

	case bytecode.VarLd:
		n, err := m.slotIndex(pc, instr)
		if err != nil {
			return err
		}
		if n < 0 || n >= len(m.vars) {
			return m.errAt(OutOfBoundsVariableReference, pc, &instr)
		}
		m.push(m.vars[n])

	case bytecode.VarRes:
		n, err := m.slotIndex(pc, instr)
		if err != nil {
			return err
		}
		if n < 0 || n > maxVarReservation {
			return m.errAt(AllocationError, pc, &instr)
		}
		m.vars = append(m.vars, make([]bytecode.Value, n)...)

	case bytecode.VarDisc:
		n, err := m.slotIndex(pc, instr)
		if err != nil {
			return err
		}
		if n < 0 || n >= len(m.vars) {
			m.vars = m.vars[:0]
		} else {
			m.vars = m.vars[:len(m.vars)-n]
		}

	case bytecode.NumVars:
		m.push(bytecode.Value(uint64(len(m.vars))))

	case bytecode.Add, bytecode.Sub, bytecode.Mul, bytecode.And, bytecode.Or, bytecode.Xor,
		bytecode.Gt, bytecode.GtS, bytecode.Lt, bytecode.LtS, bytecode.Ge, bytecode.GeS,
		bytecode.Le, bytecode.LeS, bytecode.Eq:
		return m.executeInfallibleBinop(instr, pc)

	case bytecode.Div, bytecode.DivS, bytecode.Mod:
		return m.executeFallibleBinop(instr, pc)

	case bytecode.Not:
		a, err := m.pop(pc, instr)
		if err != nil {
			return err
		}
		m.push(a.Not())

	case bytecode.Inv:
		a, err := m.pop(pc, instr)
		if err != nil {
			return err
		}
		m.push(a.Inv())

	case bytecode.Read, bytecode.ReadS:
		return m.executeRead(instr, pc)

	case bytecode.Print, bytecode.PrintS:
		return m.executePrint(instr, pc)

	default:
		return fmt.Errorf("vm: unhandled opcode %s", instr.Op)
	}
	return nil
}

func dupDepth(op bytecode.Opcode) int {
	switch op {
	case bytecode.Dup0:
		return 0
	case bytecode.Dup1:
		return 1
	case bytecode.Dup2:
		return 2
	default:
		return 3
	}
}

func (m *Machine) executeInfallibleBinop(instr bytecode.Instruction, pc int) error {
	b, err := m.pop(pc, instr)
	if err != nil {
		return err
	}
	a, err := m.pop(pc, instr)
	if err != nil {
		return err
	}

	var result bytecode.Value
	switch instr.Op {
	case bytecode.Add:
		result = a.Add(b)
	case bytecode.Sub:
		result = a.Sub(b)
	case bytecode.Mul:
		result = a.Mul(b)
	case bytecode.And:
		result = a.And(b)
	case bytecode.Or:
		result = a.Or(b)
	case bytecode.Xor:
		result = a.Xor(b)
	case bytecode.Gt:
		result = a.GreaterUnsigned(b)
	case bytecode.GtS:
		result = a.GreaterSigned(b)
	case bytecode.Lt:
		result = a.LessUnsigned(b)
	case bytecode.LtS:
		result = a.LessSigned(b)
	case bytecode.Ge:
		result = a.GreaterEqUnsigned(b)
	case bytecode.GeS:
		result = a.GreaterEqSigned(b)
	case bytecode.Le:
		result = a.LessEqUnsigned(b)
	case bytecode.LeS:
		result = a.LessEqSigned(b)
	case bytecode.Eq:
		result = a.Eq(b)
	}
	m.push(result)
	return nil
}

func (m *Machine) executeFallibleBinop(instr bytecode.Instruction, pc int) error {
	b, err := m.pop(pc, instr)
	if err != nil {
		return err
	}
	a, err := m.pop(pc, instr)
	if err != nil {
		return err
	}

	var result bytecode.Value
	switch instr.Op {
	case bytecode.Div:
		result, err = a.DivUnsigned(b)
	case bytecode.DivS:
		result, err = a.DivSigned(b)
	case bytecode.Mod:
		result, err = a.Mod(b)
	}
	if err != nil {
		return m.errAt(DivideByZero, pc, &instr)
	}
	m.push(result)
	return nil
}

func (m *Machine) executeRead(instr bytecode.Instruction, pc int) error {
	tok, err := m.nextToken()
	if err != nil {
		return m.errAt(kindForReadErr(err), pc, &instr)
	}

	if instr.Op == bytecode.ReadS {
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return m.errAt(ParseError, pc, &instr)
		}
		m.push(bytecode.Value(uint64(v)))
		return nil
	}

	v, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return m.errAt(ParseError, pc, &instr)
	}
	m.push(bytecode.Value(v))
	return nil
}

func kindForReadErr(err error) ErrorKind {
	if err == errNoInputStream {
		return NoInputStream
	}
	return InputError
}

func (m *Machine) executePrint(instr bytecode.Instruction, pc int) error {
	v, err := m.pop(pc, instr)
	if err != nil {
		return err
	}
	if m.output == nil {
		return nil
	}

	var text string
	if instr.Op == bytecode.PrintS {
		text = strconv.FormatInt(v.AsSigned(), 10)
	} else {
		text = strconv.FormatUint(v.AsUnsigned(), 10)
	}

	if _, err := fmt.Fprintln(m.output, text); err != nil {
		return m.errAt(OutputError, pc, &instr)
	}
	return nil
}

var errNoInputStream = fmt.Errorf("no input stream configured")

// nextToken ensures the pending-token buffer is non-empty, reading one
// line from the input stream at a time, splitting on whitespace and
// enqueueing the tokens in reverse so popping the end of the buffer
// yields the first token on the line.
func (m *Machine) nextToken() (string, error) {
	for len(m.pendingTokens) == 0 {
		if m.input == nil {
			return "", errNoInputStream
		}

		line, err := m.input.ReadString('\n')
		if len(line) == 0 && err != nil {
			return "", err
		}

		fields := strings.Fields(line)
		for i := len(fields) - 1; i >= 0; i-- {
			m.pendingTokens = append(m.pendingTokens, fields[i])
		}

		if err != nil && len(fields) == 0 {
			return "", err
		}
	}

	tok := m.pendingTokens[len(m.pendingTokens)-1]
	m.pendingTokens = m.pendingTokens[:len(m.pendingTokens)-1]
	return tok, nil
}
