package ast

// BinopSym is a binary operator symbol.
type BinopSym int

const (
	Plus BinopSym = iota
	Minus
	Mul
	Div
	Mod
	Greater
	Less
	GreaterEq
	LessEq
	Eq
	NEq
	BitAnd
	BitOr
	BitXor
	LogAnd
	LogOr
)

var binopLexemes = map[BinopSym]string{
	Plus: "+", Minus: "-", Mul: "*", Div: "/", Mod: "%",
	Greater: ">", Less: "<", GreaterEq: ">=", LessEq: "<=",
	Eq: "==", NEq: "!=",
	BitAnd: "&", BitOr: "|", BitXor: "^",
	LogAnd: "&&", LogOr: "||",
}

func (op BinopSym) String() string { return binopLexemes[op] }

// UnopSym is a unary operator symbol.
type UnopSym int

const (
	BitNot UnopSym = iota
	LogNot
)

var unopLexemes = map[UnopSym]string{
	BitNot: "~",
	LogNot: "!",
}

func (op UnopSym) String() string { return unopLexemes[op] }
