package parser

import (
	"testing"

	"hypescript/ast"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

func TestParseAssignmentAndPrint(t *testing.T) {
	seq, diags := Parse("a = 5; b = 4 + a; print a; print b;")
	assert(t, len(diags) == 0, "unexpected diagnostics: %v", diags)
	assert(t, len(seq) == 4, "expected 4 statements, got %d", len(seq))

	assign, ok := seq[0].(ast.Assign)
	assert(t, ok && assign.Name == "a", "expected assignment to a, got %#v", seq[0])

	lit, ok := assign.Value.(ast.Int)
	assert(t, ok && lit.Value == 5, "expected Int(5), got %#v", assign.Value)
}

func TestParsePrecedence(t *testing.T) {
	seq, diags := Parse("1 + 2 * 3;")
	assert(t, len(diags) == 0, "unexpected diagnostics: %v", diags)
	bin, ok := seq[0].(ast.Binop)
	assert(t, ok && bin.Op == ast.Plus, "expected top-level +, got %#v", seq[0])
	rhs, ok := bin.RHS.(ast.Binop)
	assert(t, ok && rhs.Op == ast.Mul, "expected RHS to be *, got %#v", bin.RHS)
}

func TestParseUnaryBindsTighterThanBinary(t *testing.T) {
	seq, diags := Parse("!a && b;")
	assert(t, len(diags) == 0, "unexpected diagnostics: %v", diags)
	bin, ok := seq[0].(ast.Binop)
	assert(t, ok && bin.Op == ast.LogAnd, "expected &&, got %#v", seq[0])
	_, ok = bin.LHS.(ast.Unop)
	assert(t, ok, "expected LHS to be a unary not, got %#v", bin.LHS)
}

func TestParseIfElse(t *testing.T) {
	seq, diags := Parse("if a < 3 { print 1; } else { print 0; }")
	assert(t, len(diags) == 0, "unexpected diagnostics: %v", diags)
	ifNode, ok := seq[0].(ast.If)
	assert(t, ok, "expected an if node, got %#v", seq[0])
	assert(t, len(ifNode.ThenBody) == 1 && len(ifNode.ElseBody) == 1, "expected 1 stmt per branch")
}

func TestParseElseIfChain(t *testing.T) {
	seq, diags := Parse("if a < 2 { print 2; } else if a < 3 { print 3; }")
	assert(t, len(diags) == 0, "unexpected diagnostics: %v", diags)
	ifNode := seq[0].(ast.If)
	assert(t, len(ifNode.ElseBody) == 1, "expected single nested else-if statement")
	_, ok := ifNode.ElseBody[0].(ast.If)
	assert(t, ok, "expected else body to contain a nested If node")
}

func TestParseBlockAsTailExpression(t *testing.T) {
	seq, diags := Parse("{ a = 7; a + 6 }")
	assert(t, len(diags) == 0, "unexpected diagnostics: %v", diags)
	block, ok := seq[0].(ast.Block)
	assert(t, ok, "expected a block, got %#v", seq[0])
	assert(t, len(block.Seq) == 2, "expected 2 statements in block, got %d", len(block.Seq))
	_, ok = block.Seq[1].(ast.Binop)
	assert(t, ok, "expected tail expression to be a binop, got %#v", block.Seq[1])
}

func TestParseScenario2FromSpec(t *testing.T) {
	src := "a = 1; b = 0; if b == a { print 0; } if a > b { print 2; } print a + b;"
	seq, diags := Parse(src)
	assert(t, len(diags) == 0, "unexpected diagnostics: %v", diags)
	assert(t, len(seq) == 5, "expected 5 top-level statements, got %d", len(seq))
}

func TestParseHexLiteral(t *testing.T) {
	seq, diags := Parse("a = 0x2A;")
	assert(t, len(diags) == 0, "unexpected diagnostics: %v", diags)
	assign := seq[0].(ast.Assign)
	lit := assign.Value.(ast.Int)
	assert(t, lit.Value == 42, "expected 0x2A to parse as 42, got %d", lit.Value)
}
