// Package types implements the HypeScript type checker.
package types

import (
	"fmt"

	"hypescript/ast"
)

// Type is one of the three HypeScript types.
type Type int

const (
	Int Type = iota
	Bool
	Unit
)

func (t Type) String() string {
	switch t {
	case Int:
		return "Int"
	case Bool:
		return "Bool"
	case Unit:
		return "Unit"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Error is the type-checker's error taxonomy, grounded on the original
// language's TypeError variants.
type Error struct {
	Kind string
	msg  string
}

func (e *Error) Error() string { return e.msg }

func newError(kind, format string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

func errNonUnitInSequence(ty Type) error {
	return newError("NonUnitInSequence", "found non-unit term before the end of a sequence (type found: %s)", ty)
}

func errAssignUnitValue(name string) error {
	return newError("AssignUnitValue", "cannot bind variables to values of type Unit (variable name `%s`)", name)
}

func errVariableTypeMismatch(name string, ty, newTy Type) error {
	return newError("VariableTypeMismatch", "cannot re-bind variable `%s` (type %s) to new type %s", name, ty, newTy)
}

func errUndeclaredVariable(name string) error {
	return newError("UndeclaredVariable", "undeclared variable `%s`", name)
}

func errInvalidConditionType(ty Type) error {
	return newError("InvalidConditionType", "invalid type for `if` condition: %s", ty)
}

func errNonUnitBareIfStatement(ty Type) error {
	return newError("NonUnitBareIfStatement", "cannot yield non-unit type from bare `if` statement (found %s)", ty)
}

func errMismatchedIfElseTypes(ifTy, elseTy Type) error {
	return newError("MismatchedIfElseTypes", "all clauses in an `if` statement must be of the same type (found %s and %s)", ifTy, elseTy)
}

func errInvalidOperandType(expected, found Type) error {
	return newError("InvalidOperandType", "expected operand of type %s, found %s", expected, found)
}

func errInvalidPrintValueType(ty Type) error {
	return newError("InvalidPrintValueType", "cannot print value of type %s; printed values must be integers or booleans", ty)
}

type binding struct {
	name string
	ty   Type
}

// context tracks variable bindings currently in scope, in declaration
// order, so lookup resolves to the innermost (rightmost) match.
type context struct {
	vars []binding
}

func (c context) clone() context {
	cp := make([]binding, len(c.vars))
	copy(cp, c.vars)
	return context{vars: cp}
}

func (c context) lookup(name string) (Type, bool) {
	for i := len(c.vars) - 1; i >= 0; i-- {
		if c.vars[i].name == name {
			return c.vars[i].ty, true
		}
	}
	return 0, false
}

func (c *context) bind(name string, ty Type) error {
	if oldTy, ok := c.lookup(name); ok {
		if oldTy != ty {
			return errVariableTypeMismatch(name, oldTy, ty)
		}
		return nil
	}
	c.vars = append(c.vars, binding{name: name, ty: ty})
	return nil
}

// Typecheck type-checks a top-level statement sequence and returns its
// overall type (the type of its trailing expression, or Unit).
func Typecheck(seq []ast.Node) (Type, error) {
	ctx := context{}
	return typecheckSequence(&ctx, seq)
}

func typecheckSequence(ctx *context, seq []ast.Node) (Type, error) {
	prev := Unit
	for _, stmt := range seq {
		if prev != Unit {
			return 0, errNonUnitInSequence(prev)
		}
		ty, err := typecheckOne(ctx, stmt)
		if err != nil {
			return 0, err
		}
		prev = ty
	}
	return prev, nil
}

func typecheckOne(ctx *context, node ast.Node) (Type, error) {
	switch n := node.(type) {
	case ast.Block:
		inner := ctx.clone()
		return typecheckSequence(&inner, n.Seq)

	case ast.Var:
		ty, ok := ctx.lookup(n.Name)
		if !ok {
			return 0, errUndeclaredVariable(n.Name)
		}
		return ty, nil

	case ast.Int:
		return Int, nil

	case ast.Bool:
		return Bool, nil

	case ast.Assign:
		ty, err := typecheckOne(ctx, n.Value)
		if err != nil {
			return 0, err
		}
		if ty == Unit {
			return 0, errAssignUnitValue(n.Name)
		}
		if err := ctx.bind(n.Name, ty); err != nil {
			return 0, err
		}
		return Unit, nil

	case ast.If:
		condTy, err := typecheckOne(ctx, n.Cond)
		if err != nil {
			return 0, err
		}
		if condTy != Bool {
			return 0, errInvalidConditionType(condTy)
		}

		thenScope := ctx.clone()
		bodyTy, err := typecheckSequence(&thenScope, n.ThenBody)
		if err != nil {
			return 0, err
		}

		if len(n.ElseBody) == 0 {
			if bodyTy != Unit {
				return 0, errNonUnitBareIfStatement(bodyTy)
			}
			return Unit, nil
		}

		elseScope := ctx.clone()
		elseTy, err := typecheckSequence(&elseScope, n.ElseBody)
		if err != nil {
			return 0, err
		}
		if bodyTy != elseTy {
			return 0, errMismatchedIfElseTypes(bodyTy, elseTy)
		}
		return bodyTy, nil

	case ast.Binop:
		var operand Type
		var result Type
		switch n.Op {
		case ast.Plus, ast.Minus, ast.Mul, ast.Div, ast.Mod, ast.BitAnd, ast.BitOr, ast.BitXor:
			operand, result = Int, Int
		case ast.Greater, ast.Less, ast.GreaterEq, ast.LessEq, ast.Eq, ast.NEq:
			operand, result = Int, Bool
		case ast.LogAnd, ast.LogOr:
			operand, result = Bool, Bool
		}

		lhsTy, err := typecheckOne(ctx, n.LHS)
		if err != nil {
			return 0, err
		}
		if lhsTy != operand {
			return 0, errInvalidOperandType(operand, lhsTy)
		}

		rhsTy, err := typecheckOne(ctx, n.RHS)
		if err != nil {
			return 0, err
		}
		if rhsTy != operand {
			return 0, errInvalidOperandType(operand, rhsTy)
		}

		return result, nil

	case ast.Unop:
		expected := Int
		if n.Op == ast.LogNot {
			expected = Bool
		}
		foundTy, err := typecheckOne(ctx, n.Operand)
		if err != nil {
			return 0, err
		}
		if foundTy != expected {
			return 0, errInvalidOperandType(expected, foundTy)
		}
		return expected, nil

	case ast.Print:
		valTy, err := typecheckOne(ctx, n.Value)
		if err != nil {
			return 0, err
		}
		if valTy != Int && valTy != Bool {
			return 0, errInvalidPrintValueType(valTy)
		}
		return Unit, nil

	default:
		return 0, fmt.Errorf("types: unhandled ast node %T", node)
	}
}
