package ast

import "testing"

func TestBinopSymLexemes(t *testing.T) {
	cases := map[BinopSym]string{
		Plus: "+", Minus: "-", Mul: "*", Div: "/", Mod: "%",
		Greater: ">", Less: "<", GreaterEq: ">=", LessEq: "<=",
		Eq: "==", NEq: "!=",
		BitAnd: "&", BitOr: "|", BitXor: "^",
		LogAnd: "&&", LogOr: "||",
	}
	for op, want := range cases {
		if got := op.String(); got != want {
			t.Fatalf("BinopSym(%d).String() = %q, want %q", op, got, want)
		}
	}
}

func TestUnopSymLexemes(t *testing.T) {
	if BitNot.String() != "~" {
		t.Fatalf("BitNot.String() = %q, want %q", BitNot.String(), "~")
	}
	if LogNot.String() != "!" {
		t.Fatalf("LogNot.String() = %q, want %q", LogNot.String(), "!")
	}
}
