// Package vm implements the HypeScript stack machine: the fetch-decode-
// execute loop, operand stack and variable slot store, I/O, and tracing.
package vm

import (
	"bufio"
	"io"
	"strings"

	"hypescript/bytecode"
)

// Machine is a single HypeScript VM instance. It exclusively owns its
// operand stack, variable slot array and any configured I/O streams.
type Machine struct {
	program []byte
	pc      int

	stack []bytecode.Value
	vars  []bytecode.Value

	input         *bufio.Reader
	output        io.Writer
	pendingTokens []string

	tracing bool
	trace   []Snapshot
}

// New constructs a machine over an immutable program byte slice.
func New(program []byte) *Machine {
	return &Machine{program: program}
}

// WithInputStream configures the stream that Read/ReadS consume from.
func (m *Machine) WithInputStream(r io.Reader) *Machine {
	m.input = bufio.NewReader(r)
	return m
}

// WithOutputStream configures the stream that Print/PrintS write to.
func (m *Machine) WithOutputStream(w io.Writer) *Machine {
	m.output = w
	return m
}

// WithTrace enables snapshot recording before every executed instruction.
func (m *Machine) WithTrace() *Machine {
	m.tracing = true
	return m
}

// Stack returns a copy of the current operand stack, top-last.
func (m *Machine) Stack() []bytecode.Value {
	return append([]bytecode.Value(nil), m.stack...)
}

// Vars returns a copy of the current variable slot array.
func (m *Machine) Vars() []bytecode.Value {
	return append([]bytecode.Value(nil), m.vars...)
}

// PC returns the current program counter.
func (m *Machine) PC() int { return m.pc }

// Summary is returned by a successful Run, carrying the recorded trace (nil
// unless tracing was enabled).
type Summary struct {
	Trace []Snapshot
}

func (s Summary) String() string {
	var b strings.Builder
	FormatTrace(&b, s.Trace)
	return b.String()
}

// Run drives the machine to completion: decode, optionally snapshot,
// execute, repeat until the program counter reaches the end of the program
// (normal termination) or Halt executes. Any error aborts execution
// immediately.
func (m *Machine) Run() (Summary, error) {
	for {
		if m.pc >= len(m.program) {
			return Summary{Trace: m.trace}, nil
		}

		instr, n, err := bytecode.Decode(m.program[m.pc:])
		if err != nil {
			return Summary{}, m.errAt(IncompleteLiteral, m.pc, nil)
		}

		if m.tracing {
			m.trace = append(m.trace, Snapshot{
				PC:              m.pc,
				NextInstruction: instr,
				Stack:           m.Stack(),
				Vars:            m.Vars(),
			})
		}

		currentPC := m.pc
		halt, err := m.execute(instr, currentPC, n)
		if err != nil {
			return Summary{}, err
		}
		if halt {
			return Summary{Trace: m.trace}, nil
		}
	}
}

func (m *Machine) errAt(kind ErrorKind, pc int, instr *bytecode.Instruction) error {
	return newError(kind, pc, instr, m.trace)
}
