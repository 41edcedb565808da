// Package parser implements a recursive-descent parser over the lexer's
// token stream, producing an ast.Node sequence.
package parser

import (
	"fmt"
	"strconv"

	"hypescript/ast"
	"hypescript/lexer"
)

// Diagnostic is a single parse error tagged with its source span.
type Diagnostic struct {
	Message string
	Start   int
	End     int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("parse error at %d-%d: %s", d.Start, d.End, d.Message)
}

type parser struct {
	toks []lexer.Token
	pos  int
	diag []Diagnostic
}

// Parse lexes and parses src into a top-level statement sequence. Parsing
// does not stop at the first error: diagnostics accumulate and parsing
// resynchronizes at the next statement boundary.
func Parse(src string) ([]ast.Node, []Diagnostic) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, []Diagnostic{{Message: err.Error()}}
	}

	p := &parser{toks: toks}
	seq := p.parseSeq(lexer.EOF)
	return seq, p.diag
}

func (p *parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *parser) peekKind() lexer.Kind { return p.toks[p.pos].Kind }

func (p *parser) advance() lexer.Token {
	tk := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tk
}

func (p *parser) expect(k lexer.Kind) (lexer.Token, bool) {
	if p.peekKind() == k {
		return p.advance(), true
	}
	tk := p.cur()
	p.errorf(tk, "expected %s, found %s", k, tk.Kind)
	return tk, false
}

func (p *parser) errorf(tk lexer.Token, format string, args ...any) {
	p.diag = append(p.diag, Diagnostic{
		Message: fmt.Sprintf(format, args...),
		Start:   tk.Start,
		End:     tk.End,
	})
}

// recover skips tokens until a statement boundary (';', '}', or EOF) so
// subsequent statements can still be parsed and reported on.
func (p *parser) recover() {
	for {
		switch p.peekKind() {
		case lexer.Semi:
			p.advance()
			return
		case lexer.RBrace, lexer.EOF:
			return
		default:
			p.advance()
		}
	}
}

func (p *parser) parseSeq(end lexer.Kind) []ast.Node {
	var seq []ast.Node
	for p.peekKind() != end && p.peekKind() != lexer.EOF {
		before := len(p.diag)
		stmt, ok := p.parseStatement()
		if !ok {
			if len(p.diag) == before {
				p.errorf(p.cur(), "unexpected token %s", p.peekKind())
			}
			p.recover()
			continue
		}
		seq = append(seq, stmt)
	}
	return seq
}

func (p *parser) parseStatement() (ast.Node, bool) {
	switch {
	case p.peekKind() == lexer.Ident && p.toks[p.pos+1].Kind == lexer.Assign:
		return p.parseAssignment()
	case p.peekKind() == lexer.KwPrint:
		return p.parsePrint()
	default:
		expr, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if p.peekKind() == lexer.Semi {
			p.advance()
		}
		return expr, true
	}
}

func (p *parser) parseAssignment() (ast.Node, bool) {
	name := p.advance().Text
	p.advance() // '='
	value, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(lexer.Semi); !ok {
		return nil, false
	}
	return ast.Assign{Name: name, Value: value}, true
}

func (p *parser) parsePrint() (ast.Node, bool) {
	p.advance() // 'print'
	value, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(lexer.Semi); !ok {
		return nil, false
	}
	return ast.Print{Value: value}, true
}

func (p *parser) parseExpr() (ast.Node, bool) {
	return p.parseLogWeak()
}

func (p *parser) parseLogWeak() (ast.Node, bool) {
	left, ok := p.parseLogStrong()
	if !ok {
		return nil, false
	}
	for p.peekKind() == lexer.PipePipe {
		p.advance()
		right, ok := p.parseLogStrong()
		if !ok {
			return nil, false
		}
		left = ast.Binop{Op: ast.LogOr, LHS: left, RHS: right}
	}
	return left, true
}

func (p *parser) parseLogStrong() (ast.Node, bool) {
	left, ok := p.parseComp()
	if !ok {
		return nil, false
	}
	for p.peekKind() == lexer.AmpAmp {
		p.advance()
		right, ok := p.parseComp()
		if !ok {
			return nil, false
		}
		left = ast.Binop{Op: ast.LogAnd, LHS: left, RHS: right}
	}
	return left, true
}

var compOps = map[lexer.Kind]ast.BinopSym{
	lexer.Greater: ast.Greater, lexer.Less: ast.Less,
	lexer.GreaterEq: ast.GreaterEq, lexer.LessEq: ast.LessEq,
	lexer.EqEq: ast.Eq, lexer.NotEq: ast.NEq,
}

func (p *parser) parseComp() (ast.Node, bool) {
	left, ok := p.parseArithWeak()
	if !ok {
		return nil, false
	}
	for {
		sym, isComp := compOps[p.peekKind()]
		if !isComp {
			return left, true
		}
		p.advance()
		right, ok := p.parseArithWeak()
		if !ok {
			return nil, false
		}
		left = ast.Binop{Op: sym, LHS: left, RHS: right}
	}
}

func (p *parser) parseArithWeak() (ast.Node, bool) {
	left, ok := p.parseArithMid()
	if !ok {
		return nil, false
	}
	for {
		var sym ast.BinopSym
		switch p.peekKind() {
		case lexer.Plus:
			sym = ast.Plus
		case lexer.Minus:
			sym = ast.Minus
		default:
			return left, true
		}
		p.advance()
		right, ok := p.parseArithMid()
		if !ok {
			return nil, false
		}
		left = ast.Binop{Op: sym, LHS: left, RHS: right}
	}
}

func (p *parser) parseArithMid() (ast.Node, bool) {
	left, ok := p.parseArithStrong()
	if !ok {
		return nil, false
	}
	for {
		var sym ast.BinopSym
		switch p.peekKind() {
		case lexer.Amp:
			sym = ast.BitAnd
		case lexer.Pipe:
			sym = ast.BitOr
		case lexer.Caret:
			sym = ast.BitXor
		default:
			return left, true
		}
		p.advance()
		right, ok := p.parseArithStrong()
		if !ok {
			return nil, false
		}
		left = ast.Binop{Op: sym, LHS: left, RHS: right}
	}
}

func (p *parser) parseArithStrong() (ast.Node, bool) {
	left, ok := p.parseUnary()
	if !ok {
		return nil, false
	}
	for {
		var sym ast.BinopSym
		switch p.peekKind() {
		case lexer.Star:
			sym = ast.Mul
		case lexer.Slash:
			sym = ast.Div
		case lexer.Percent:
			sym = ast.Mod
		default:
			return left, true
		}
		p.advance()
		right, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		left = ast.Binop{Op: sym, LHS: left, RHS: right}
	}
}

func (p *parser) parseUnary() (ast.Node, bool) {
	switch p.peekKind() {
	case lexer.Bang:
		p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return ast.Unop{Op: ast.LogNot, Operand: operand}, true
	case lexer.Tilde:
		p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return ast.Unop{Op: ast.BitNot, Operand: operand}, true
	default:
		return p.parseFactor()
	}
}

func (p *parser) parseFactor() (ast.Node, bool) {
	tk := p.cur()
	switch tk.Kind {
	case lexer.IntLit:
		p.advance()
		v, err := parseIntLiteral(tk.Text)
		if err != nil {
			p.errorf(tk, "malformed integer literal %q: %v", tk.Text, err)
			return nil, false
		}
		return ast.Int{Value: v}, true

	case lexer.KwTrue:
		p.advance()
		return ast.Bool{Value: true}, true

	case lexer.KwFalse:
		p.advance()
		return ast.Bool{Value: false}, true

	case lexer.Ident:
		p.advance()
		return ast.Var{Name: tk.Text}, true

	case lexer.LParen:
		p.advance()
		expr, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(lexer.RParen); !ok {
			return nil, false
		}
		return expr, true

	case lexer.KwIf:
		return p.parseIfChain()

	case lexer.LBrace:
		return p.parseBlock()

	default:
		p.errorf(tk, "unexpected token %s, expected an expression", tk.Kind)
		return nil, false
	}
}

func parseIntLiteral(text string) (uint64, error) {
	if len(text) > 1 && (text[1] == 'x' || text[1] == 'X') {
		return strconv.ParseUint(text[2:], 16, 64)
	}
	return strconv.ParseUint(text, 10, 64)
}

func (p *parser) parseIfChain() (ast.Node, bool) {
	p.advance() // 'if'
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	body, ok := p.parseBlockSeq()
	if !ok {
		return nil, false
	}

	var elseBody []ast.Node
	if p.peekKind() == lexer.KwElse {
		p.advance()
		if p.peekKind() == lexer.KwIf {
			nested, ok := p.parseIfChain()
			if !ok {
				return nil, false
			}
			elseBody = []ast.Node{nested}
		} else {
			eb, ok := p.parseBlockSeq()
			if !ok {
				return nil, false
			}
			elseBody = eb
		}
	}

	return ast.If{Cond: cond, ThenBody: body, ElseBody: elseBody}, true
}

func (p *parser) parseBlock() (ast.Node, bool) {
	seq, ok := p.parseBlockSeq()
	if !ok {
		return nil, false
	}
	return ast.Block{Seq: seq}, true
}

func (p *parser) parseBlockSeq() ([]ast.Node, bool) {
	if _, ok := p.expect(lexer.LBrace); !ok {
		return nil, false
	}
	seq := p.parseSeq(lexer.RBrace)
	if _, ok := p.expect(lexer.RBrace); !ok {
		return nil, false
	}
	return seq, true
}
