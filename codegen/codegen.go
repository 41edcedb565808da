// Package codegen translates a type-checked AST into a HypeScript
// instruction list.
package codegen

import (
	"fmt"

	"hypescript/ast"
	"hypescript/bytecode"
)

// UndeclaredVariableError is returned when codegen encounters a read of a
// name not previously written in an enclosing scope.
type UndeclaredVariableError struct {
	Name string
}

func (e *UndeclaredVariableError) Error() string {
	return fmt.Sprintf("undeclared variable `%s`", e.Name)
}

// Translate compiles a top-level statement sequence into a self-contained
// instruction list: a reservation preamble sized to the maximum number of
// simultaneously live variable slots, followed by the translated program.
// No explicit Halt is emitted; execution ends when the program counter
// reaches the end of the stream.
func Translate(seq []ast.Node) ([]bytecode.Instruction, error) {
	ctx := context{}
	body, err := translateSequence(&ctx, seq)
	if err != nil {
		return nil, err
	}

	preamble := []bytecode.Instruction{
		bytecode.OptimalPush(uint64(ctx.maxVars)),
		{Op: bytecode.VarRes},
	}
	return append(preamble, body...), nil
}

func translateSequence(ctx *context, seq []ast.Node) ([]bytecode.Instruction, error) {
	var out []bytecode.Instruction
	for _, stmt := range seq {
		instrs, err := translateOne(ctx, stmt)
		if err != nil {
			return nil, err
		}
		out = append(out, instrs...)
	}
	return out, nil
}

func translateOne(ctx *context, node ast.Node) ([]bytecode.Instruction, error) {
	switch n := node.(type) {
	case ast.Block:
		var instrs []bytecode.Instruction
		err := ctx.inNewScope(func(inner *context) error {
			var innerErr error
			instrs, innerErr = translateSequence(inner, n.Seq)
			return innerErr
		})
		return instrs, err

	case ast.Var:
		idx, ok := ctx.indexOf(n.Name)
		if !ok {
			return nil, &UndeclaredVariableError{Name: n.Name}
		}
		return []bytecode.Instruction{
			bytecode.OptimalPush(uint64(idx)),
			{Op: bytecode.VarLd},
		}, nil

	case ast.Int:
		return []bytecode.Instruction{bytecode.OptimalPush(n.Value)}, nil

	case ast.Bool:
		var v uint64
		if n.Value {
			v = 1
		}
		return []bytecode.Instruction{{Op: bytecode.Push8, Literal: v}}, nil

	case ast.Assign:
		valInstrs, err := translateOne(ctx, n.Value)
		if err != nil {
			return nil, err
		}
		idx := ctx.assignVar(n.Name)
		out := append(valInstrs, bytecode.OptimalPush(uint64(idx)))
		out = append(out, bytecode.Instruction{Op: bytecode.VarSt})
		return out, nil

	case ast.If:
		return translateIf(ctx, n)

	case ast.Binop:
		return translateBinop(ctx, n)

	case ast.Unop:
		return translateUnop(ctx, n)

	case ast.Print:
		valInstrs, err := translateOne(ctx, n.Value)
		if err != nil {
			return nil, err
		}
		return append(valInstrs, bytecode.Instruction{Op: bytecode.Print}), nil

	default:
		return nil, fmt.Errorf("codegen: unhandled ast node %T", node)
	}
}

var binopInstrs = map[ast.BinopSym][]bytecode.Opcode{
	ast.Plus:      {bytecode.Add},
	ast.Minus:     {bytecode.Sub},
	ast.Mul:       {bytecode.Mul},
	ast.Div:       {bytecode.Div},
	ast.Mod:       {bytecode.Mod},
	ast.Greater:   {bytecode.Gt},
	ast.Less:      {bytecode.Lt},
	ast.GreaterEq: {bytecode.Ge},
	ast.LessEq:    {bytecode.Le},
	ast.Eq:        {bytecode.Eq},
	ast.NEq:       {bytecode.Eq, bytecode.Not},
	ast.BitAnd:    {bytecode.And},
	ast.BitOr:     {bytecode.Or},
	ast.BitXor:    {bytecode.Xor},
	ast.LogAnd:    {bytecode.And},
	ast.LogOr:     {bytecode.Or},
}

func translateBinop(ctx *context, n ast.Binop) ([]bytecode.Instruction, error) {
	lhs, err := translateOne(ctx, n.LHS)
	if err != nil {
		return nil, err
	}
	rhs, err := translateOne(ctx, n.RHS)
	if err != nil {
		return nil, err
	}

	ops, ok := binopInstrs[n.Op]
	if !ok {
		return nil, fmt.Errorf("codegen: unhandled binop %v", n.Op)
	}

	out := append(lhs, rhs...)
	for _, op := range ops {
		out = append(out, bytecode.Instruction{Op: op})
	}
	return out, nil
}

func translateUnop(ctx *context, n ast.Unop) ([]bytecode.Instruction, error) {
	operand, err := translateOne(ctx, n.Operand)
	if err != nil {
		return nil, err
	}

	var op bytecode.Opcode
	switch n.Op {
	case ast.BitNot:
		op = bytecode.Inv
	case ast.LogNot:
		op = bytecode.Not
	default:
		return nil, fmt.Errorf("codegen: unhandled unop %v", n.Op)
	}
	return append(operand, bytecode.Instruction{Op: op}), nil
}

// translateIf implements the §4.3.1 if/then/else layout: both branches are
// materialized into separate buffers first so their encoded byte lengths
// can drive the jump-distance pushes, computed in dependency order (the
// else length drives the then-branch's trailing jump; the then length,
// including that trailing jump, drives JCond's skip distance).
func translateIf(ctx *context, n ast.If) ([]bytecode.Instruction, error) {
	condInstrs, err := translateOne(ctx, n.Cond)
	if err != nil {
		return nil, err
	}

	var thenInstrs []bytecode.Instruction
	err = ctx.inNewScope(func(inner *context) error {
		var innerErr error
		thenInstrs, innerErr = translateSequence(inner, n.ThenBody)
		return innerErr
	})
	if err != nil {
		return nil, err
	}

	var elseInstrs []bytecode.Instruction
	if len(n.ElseBody) > 0 {
		err = ctx.inNewScope(func(inner *context) error {
			var innerErr error
			elseInstrs, innerErr = translateSequence(inner, n.ElseBody)
			return innerErr
		})
		if err != nil {
			return nil, err
		}

		elseLen := encodedLen(elseInstrs)
		thenInstrs = append(thenInstrs,
			bytecode.OptimalPushSigned(int64(elseLen)),
			bytecode.Instruction{Op: bytecode.Jump},
		)
	}

	thenLen := encodedLen(thenInstrs)

	out := append([]bytecode.Instruction{}, condInstrs...)
	out = append(out, bytecode.Instruction{Op: bytecode.Not})
	out = append(out, bytecode.OptimalPushSigned(int64(thenLen)))
	out = append(out, bytecode.Instruction{Op: bytecode.JCond})
	out = append(out, thenInstrs...)
	out = append(out, elseInstrs...)
	return out, nil
}

func encodedLen(instrs []bytecode.Instruction) int {
	n := 0
	for _, i := range instrs {
		n += i.Size()
	}
	return n
}
