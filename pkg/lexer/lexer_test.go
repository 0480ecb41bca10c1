package lexer

import "testing"

func TestOperators(t *testing.T) {
	input := `+ - * / % = == != < <= > >= && || ! & | ^ ~ << >> <<= >>= += -= *= /= %= &= |= ^= ++ -- -> ... ? :`
	expected := []TokenType{
		TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenPercent,
		TokenAssign, TokenEq, TokenNe, TokenLt, TokenLe, TokenGt, TokenGe,
		TokenAnd, TokenOr, TokenNot, TokenAmpersand, TokenPipe, TokenCaret,
		TokenTilde, TokenShl, TokenShr, TokenShlAssign, TokenShrAssign,
		TokenPlusAssign, TokenMinusAssign, TokenStarAssign, TokenSlashAssign,
		TokenPercentAssign, TokenAndAssign, TokenOrAssign, TokenXorAssign,
		TokenIncrement, TokenDecrement, TokenArrow, TokenEllipsis,
		TokenQuestion, TokenColon,
	}
	toks := Tokenize(input)
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(toks))
	}
	for i, want := range expected {
		if toks[i].Type != want {
			t.Errorf("token %d: expected %s, got %s (%q)", i, want, toks[i].Type, toks[i].Literal)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `int void char _Bool _Static_assert _Thread_local _Alignas _Generic inline restrict`
	expected := []TokenType{
		TokenInt_, TokenVoid, TokenChar, TokenBool, TokenStaticAssert,
		TokenThreadLocal, TokenAlignas, TokenGeneric, TokenInline, TokenRestrict,
	}
	toks := Tokenize(input)
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(toks))
	}
	for i, want := range expected {
		if toks[i].Type != want {
			t.Errorf("token %d: expected %s, got %s", i, want, toks[i].Type)
		}
	}
}

func TestIdentifiers(t *testing.T) {
	toks := Tokenize("main _foo bar42 __func__")
	expected := []struct {
		typ TokenType
		lit string
	}{
		{TokenIdent, "main"},
		{TokenIdent, "_foo"},
		{TokenIdent, "bar42"},
		{TokenFuncName, "__func__"},
	}
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(toks))
	}
	for i, want := range expected {
		if toks[i].Type != want.typ || toks[i].Literal != want.lit {
			t.Errorf("token %d: expected %s %q, got %s %q", i, want.typ, want.lit, toks[i].Type, toks[i].Literal)
		}
	}
}

func TestIntegerConstants(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"42", 42},
		{"0", 0},
		{"0x2a", 42},
		{"0X2A", 42},
		{"052", 42},
		{"10u", 10},
		{"10UL", 10},
		{"'a'", 97},
		{"'\\n'", 10},
		{"'\\0'", 0},
	}
	for _, tc := range tests {
		toks := Tokenize(tc.input)
		if len(toks) != 1 {
			t.Fatalf("%q: expected 1 token, got %d", tc.input, len(toks))
		}
		if toks[0].Type != TokenInt {
			t.Errorf("%q: expected ICONST, got %s", tc.input, toks[0].Type)
		}
		if toks[0].IVal != tc.want {
			t.Errorf("%q: expected value %d, got %d", tc.input, tc.want, toks[0].IVal)
		}
	}
}

func TestFloatConstants(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"3.14", 3.14},
		{"1e3", 1000},
		{"2.5e-1", 0.25},
		{"2.5f", 2.5},
		{".5", 0.5},
	}
	for _, tc := range tests {
		toks := Tokenize(tc.input)
		if len(toks) != 1 {
			t.Fatalf("%q: expected 1 token, got %d", tc.input, len(toks))
		}
		if toks[0].Type != TokenFConst {
			t.Errorf("%q: expected FCONST, got %s", tc.input, toks[0].Type)
		}
		if toks[0].FVal != tc.want {
			t.Errorf("%q: expected value %g, got %g", tc.input, tc.want, toks[0].FVal)
		}
	}
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  string
		enc   Encoding
	}{
		{`"hello"`, "hello", EncNone},
		{`"a\nb"`, "a\nb", EncNone},
		{`"tab\there"`, "tab\there", EncNone},
		{`u8"x"`, "x", EncUTF8},
		{`u"x"`, "x", EncChar16},
		{`U"x"`, "x", EncChar32},
		{`L"wide"`, "wide", EncWide},
	}
	for _, tc := range tests {
		toks := Tokenize(tc.input)
		if len(toks) != 1 {
			t.Fatalf("%q: expected 1 token, got %d", tc.input, len(toks))
		}
		if toks[0].Type != TokenString {
			t.Errorf("%q: expected STRING, got %s", tc.input, toks[0].Type)
		}
		if toks[0].Literal != tc.want {
			t.Errorf("%q: expected contents %q, got %q", tc.input, tc.want, toks[0].Literal)
		}
		if toks[0].Enc != tc.enc {
			t.Errorf("%q: expected encoding %v, got %v", tc.input, tc.enc, toks[0].Enc)
		}
	}
}

func TestComments(t *testing.T) {
	input := `int // line comment
x /* block
comment */ ;`
	expected := []TokenType{TokenInt_, TokenIdent, TokenSemicolon}
	toks := Tokenize(input)
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(toks))
	}
	for i, want := range expected {
		if toks[i].Type != want {
			t.Errorf("token %d: expected %s, got %s", i, want, toks[i].Type)
		}
	}
}

func TestLineAndColumn(t *testing.T) {
	toks := Tokenize("a b\nc")
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(toks))
	}
	checks := []struct {
		line, col int
	}{
		{1, 1}, {1, 3}, {2, 1},
	}
	for i, want := range checks {
		if toks[i].Line != want.line || toks[i].Column != want.col {
			t.Errorf("token %d: expected %d:%d, got %d:%d", i, want.line, want.col, toks[i].Line, toks[i].Column)
		}
	}
}

func TestSmallProgram(t *testing.T) {
	input := `int main(void) { return f(x) + 1; }`
	expected := []TokenType{
		TokenInt_, TokenIdent, TokenLParen, TokenVoid, TokenRParen,
		TokenLBrace, TokenReturn, TokenIdent, TokenLParen, TokenIdent,
		TokenRParen, TokenPlus, TokenInt, TokenSemicolon, TokenRBrace,
	}
	toks := Tokenize(input)
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(toks))
	}
	for i, want := range expected {
		if toks[i].Type != want {
			t.Errorf("token %d: expected %s, got %s", i, want, toks[i].Type)
		}
	}
}

func TestIllegalInput(t *testing.T) {
	toks := Tokenize("a @ b")
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(toks))
	}
	if toks[1].Type != TokenIllegal {
		t.Errorf("expected ILLEGAL for @, got %s", toks[1].Type)
	}
}
