// Package lexer tokenizes HypeScript source text.
package lexer

import "fmt"

// Kind identifies a token's category.
type Kind int

const (
	EOF Kind = iota
	Ident
	IntLit
	KwIf
	KwElse
	KwPrint
	KwTrue
	KwFalse
	Plus
	Minus
	Star
	Slash
	Percent
	Greater
	Less
	GreaterEq
	LessEq
	EqEq
	NotEq
	Amp
	Pipe
	Caret
	AmpAmp
	PipePipe
	Bang
	Tilde
	Semi
	Assign
	LBrace
	RBrace
	LParen
	RParen
)

var kindNames = map[Kind]string{
	EOF: "EOF", Ident: "identifier", IntLit: "integer literal",
	KwIf: "if", KwElse: "else", KwPrint: "print", KwTrue: "true", KwFalse: "false",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	Greater: ">", Less: "<", GreaterEq: ">=", LessEq: "<=",
	EqEq: "==", NotEq: "!=",
	Amp: "&", Pipe: "|", Caret: "^", AmpAmp: "&&", PipePipe: "||",
	Bang: "!", Tilde: "~",
	Semi: ";", Assign: "=", LBrace: "{", RBrace: "}", LParen: "(", RParen: ")",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a single lexed token with its source span (byte offsets).
type Token struct {
	Kind  Kind
	Text  string
	Start int
	End   int
}

var keywords = map[string]Kind{
	"if": KwIf, "else": KwElse, "print": KwPrint, "true": KwTrue, "false": KwFalse,
}
