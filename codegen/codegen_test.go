package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"hypescript/bytecode"
	"hypescript/parser"
)

func translateSource(t *testing.T, src string) []bytecode.Instruction {
	t.Helper()
	seq, diags := parser.Parse(src)
	require.Empty(t, diags, "parsing failed")
	instrs, err := Translate(seq)
	require.NoError(t, err)
	return instrs
}

func TestPreambleReservesMaxSlots(t *testing.T) {
	instrs := translateSource(t, "a = 5; b = 4 + a; print a; print b;")
	require.GreaterOrEqual(t, len(instrs), 2)
	require.Equal(t, bytecode.OptimalPush(2), instrs[0])
	require.Equal(t, bytecode.Instruction{Op: bytecode.VarRes}, instrs[1])
}

func TestMinimalVarsReservedAcrossSiblingScopes(t *testing.T) {
	// a uses slot 0; b and c each live in their own, non-overlapping block
	// scope and should both reuse slot 1 rather than driving the reserved
	// count up to 3.
	instrs := translateSource(t, "a = 1; { b = 2; } { c = 3; }")
	require.Equal(t, bytecode.OptimalPush(2), instrs[0])
}

func TestUndeclaredVariableOutOfScope(t *testing.T) {
	seq, diags := parser.Parse("a = 4; { b = 3; } a = a + b;")
	require.Empty(t, diags)

	_, err := Translate(seq)
	require.Error(t, err)
	var undeclared *UndeclaredVariableError
	require.ErrorAs(t, err, &undeclared)
	require.Equal(t, "b", undeclared.Name)
}

func TestUndeclaredVariableForwardReference(t *testing.T) {
	seq, diags := parser.Parse("a = b; b = 4;")
	require.Empty(t, diags)

	_, err := Translate(seq)
	require.Error(t, err)
	var undeclared *UndeclaredVariableError
	require.ErrorAs(t, err, &undeclared)
	require.Equal(t, "b", undeclared.Name)
}

func TestAssignmentEmitsValueThenSlotThenStore(t *testing.T) {
	instrs := translateSource(t, "a = 5;")
	// preamble (2) + push(5) + push(slot 0) + VarSt
	require.Len(t, instrs, 5)
	require.Equal(t, bytecode.OptimalPush(5), instrs[2])
	require.Equal(t, bytecode.OptimalPush(0), instrs[3])
	require.Equal(t, bytecode.Instruction{Op: bytecode.VarSt}, instrs[4])
}

func TestNotEqualLowersToEqThenNot(t *testing.T) {
	instrs := translateSource(t, "print 1 != 2;")
	// preamble(2) + push(1) + push(2) + Eq + Not + Print
	require.Equal(t, bytecode.Eq, instrs[4].Op)
	require.Equal(t, bytecode.Not, instrs[5].Op)
	require.Equal(t, bytecode.Print, instrs[6].Op)
}

func TestIfNoElseJumpDistanceMatchesThenBodyLength(t *testing.T) {
	instrs := translateSource(t, "a = 1; if a == 1 { print 2; }")
	// Layout after preamble: <cond> Not <push S> JCond <then...>
	// Find JCond and confirm its preceding push literal equals the
	// encoded length of everything after JCond.
	jcondIdx := -1
	for i, instr := range instrs {
		if instr.Op == bytecode.JCond {
			jcondIdx = i
			break
		}
	}
	require.NotEqual(t, -1, jcondIdx, "expected a JCond instruction")

	thenLen := 0
	for _, instr := range instrs[jcondIdx+1:] {
		thenLen += instr.Size()
	}
	require.Equal(t, int64(thenLen), int64(instrs[jcondIdx-1].Literal))
}

func TestIfElseJumpDistancesMatchBranchLengths(t *testing.T) {
	instrs := translateSource(t, "a = 4; if a < 3 { print 1; } else { print 0; }")

	jcondIdx, jumpIdx := -1, -1
	for i, instr := range instrs {
		switch instr.Op {
		case bytecode.JCond:
			jcondIdx = i
		case bytecode.Jump:
			jumpIdx = i
		}
	}
	require.NotEqual(t, -1, jcondIdx)
	require.NotEqual(t, -1, jumpIdx)

	elseLen := 0
	for _, instr := range instrs[jumpIdx+1:] {
		elseLen += instr.Size()
	}
	require.Equal(t, int64(elseLen), int64(instrs[jumpIdx-1].Literal))

	// The then branch runs from just after JCond through its trailing Jump.
	thenLen := 0
	for _, instr := range instrs[jcondIdx+1 : jumpIdx+1] {
		thenLen += instr.Size()
	}
	require.Equal(t, int64(thenLen), int64(instrs[jcondIdx-1].Literal))
}
