package lexer

import "testing"

func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

func kinds(toks []Token) []Kind {
	ks := make([]Kind, len(toks))
	for i, tk := range toks {
		ks[i] = tk.Kind
	}
	return ks
}

func TestLexEmpty(t *testing.T) {
	toks, err := Lex("")
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, len(toks) == 1 && toks[0].Kind == EOF, "expected single EOF token, got %v", toks)
}

func TestLexComments(t *testing.T) {
	toks, err := Lex("a // trailing comment\n/* block */ b")
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, len(kinds(toks)) == 3, "expected 2 idents + EOF, got %v", toks)
	assert(t, toks[0].Text == "a" && toks[1].Text == "b", "got %v", toks)
}

func TestLexUnterminatedComment(t *testing.T) {
	_, err := Lex("/*/")
	assert(t, err != nil, "expected unterminated-comment error for \"/*/\"")
}

func TestLexOperatorDisambiguation(t *testing.T) {
	cases := []struct {
		src  string
		want Kind
	}{
		{">=", GreaterEq}, {">", Greater},
		{"<=", LessEq}, {"<", Less},
		{"&&", AmpAmp}, {"&", Amp},
		{"||", PipePipe}, {"|", Pipe},
		{"!=", NotEq}, {"!", Bang},
		{"==", EqEq}, {"=", Assign},
	}
	for _, c := range cases {
		toks, err := Lex(c.src)
		assert(t, err == nil, "lex %q failed: %v", c.src, err)
		assert(t, toks[0].Kind == c.want, "lex %q: got %v want %v", c.src, toks[0].Kind, c.want)
	}
}

func TestLexKeywordsAndIdents(t *testing.T) {
	toks, err := Lex("if else print true false iffy")
	assert(t, err == nil, "unexpected error: %v", err)
	want := []Kind{KwIf, KwElse, KwPrint, KwTrue, KwFalse, Ident, EOF}
	got := kinds(toks)
	assert(t, len(got) == len(want), "got %v want %v", got, want)
	for i := range want {
		assert(t, got[i] == want[i], "token %d: got %v want %v", i, got[i], want[i])
	}
}

func TestLexIntLiterals(t *testing.T) {
	toks, err := Lex("45 0x2A 0")
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, toks[0].Text == "45" && toks[1].Text == "0x2A" && toks[2].Text == "0", "got %v", toks)
}
