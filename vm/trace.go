package vm

import (
	"fmt"
	"io"
	"strings"

	"hypescript/bytecode"
)

// Snapshot is a record of machine state captured immediately before
// executing an instruction, when tracing is enabled.
type Snapshot struct {
	PC              int
	NextInstruction bytecode.Instruction
	Stack           []bytecode.Value
	Vars            []bytecode.Value
}

func (s Snapshot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "pc %d\n%s\n", s.PC, s.NextInstruction)
	b.WriteString("stack\n")
	FormatStack(&b, s.Stack)
	b.WriteString("vars\n")
	FormatVars(&b, s.Vars)
	return b.String()
}

// FormatStack writes one line per stack entry, top-first, as
// "<index>: <hex>\t\t<unsigned>\t<signed>".
func FormatStack(w io.Writer, stack []bytecode.Value) {
	for i := len(stack) - 1; i >= 0; i-- {
		v := stack[i]
		idx := len(stack) - 1 - i
		fmt.Fprintf(w, " %2d: %x\t\t%d\t%d\n", idx, v.AsUnsigned(), v.AsUnsigned(), v.AsSigned())
	}
}

// FormatVars writes one line per variable slot, in natural (index) order.
func FormatVars(w io.Writer, vars []bytecode.Value) {
	for i, v := range vars {
		fmt.Fprintf(w, " %2d: %x\t\t%d\t%d\n", i, v.AsUnsigned(), v.AsUnsigned(), v.AsSigned())
	}
}

// FormatTrace writes a blank-line-separated concatenation of snapshots.
func FormatTrace(w io.Writer, trace []Snapshot) {
	for i, snap := range trace {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprint(w, snap.String())
	}
}
