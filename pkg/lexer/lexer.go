package lexer

import (
	"strconv"
	"strings"
	"unicode"
)

// Lexer tokenizes C source code
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // next reading position
	ch      byte // current character
	line    int
	column  int
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Tokenize scans src to completion and returns the full token stream,
// without a trailing EOF token.
func Tokenize(src string) []Token {
	l := New(src)
	var toks []Token
	for {
		tok := l.NextToken()
		if tok.Type == TokenEOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.column++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) peekChar2() byte {
	if l.readPos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.readPos+1]
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()
	l.skipComments()
	l.skipWhitespace()

	tok := Token{Line: l.line, Column: l.column}

	switch l.ch {
	case 0:
		tok.Type = TokenEOF
		tok.Literal = ""
	case '+':
		switch l.peekChar() {
		case '+':
			tok = l.twoCharToken(TokenIncrement, "++")
		case '=':
			tok = l.twoCharToken(TokenPlusAssign, "+=")
		default:
			tok = l.newToken(TokenPlus, l.ch)
		}
	case '-':
		switch l.peekChar() {
		case '>':
			tok = l.twoCharToken(TokenArrow, "->")
		case '-':
			tok = l.twoCharToken(TokenDecrement, "--")
		case '=':
			tok = l.twoCharToken(TokenMinusAssign, "-=")
		default:
			tok = l.newToken(TokenMinus, l.ch)
		}
	case '*':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(TokenStarAssign, "*=")
		} else {
			tok = l.newToken(TokenStar, l.ch)
		}
	case '/':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(TokenSlashAssign, "/=")
		} else {
			tok = l.newToken(TokenSlash, l.ch)
		}
	case '%':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(TokenPercentAssign, "%=")
		} else {
			tok = l.newToken(TokenPercent, l.ch)
		}
	case '=':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(TokenEq, "==")
		} else {
			tok = l.newToken(TokenAssign, l.ch)
		}
	case '!':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(TokenNe, "!=")
		} else {
			tok = l.newToken(TokenNot, l.ch)
		}
	case '<':
		switch l.peekChar() {
		case '=':
			tok = l.twoCharToken(TokenLe, "<=")
		case '<':
			if l.peekChar2() == '=' {
				tok.Type = TokenShlAssign
				tok.Literal = "<<="
				l.readChar()
				l.readChar()
			} else {
				tok = l.twoCharToken(TokenShl, "<<")
			}
		default:
			tok = l.newToken(TokenLt, l.ch)
		}
	case '>':
		switch l.peekChar() {
		case '=':
			tok = l.twoCharToken(TokenGe, ">=")
		case '>':
			if l.peekChar2() == '=' {
				tok.Type = TokenShrAssign
				tok.Literal = ">>="
				l.readChar()
				l.readChar()
			} else {
				tok = l.twoCharToken(TokenShr, ">>")
			}
		default:
			tok = l.newToken(TokenGt, l.ch)
		}
	case '&':
		switch l.peekChar() {
		case '&':
			tok = l.twoCharToken(TokenAnd, "&&")
		case '=':
			tok = l.twoCharToken(TokenAndAssign, "&=")
		default:
			tok = l.newToken(TokenAmpersand, l.ch)
		}
	case '|':
		switch l.peekChar() {
		case '|':
			tok = l.twoCharToken(TokenOr, "||")
		case '=':
			tok = l.twoCharToken(TokenOrAssign, "|=")
		default:
			tok = l.newToken(TokenPipe, l.ch)
		}
	case '^':
		if l.peekChar() == '=' {
			tok = l.twoCharToken(TokenXorAssign, "^=")
		} else {
			tok = l.newToken(TokenCaret, l.ch)
		}
	case '~':
		tok = l.newToken(TokenTilde, l.ch)
	case '(':
		tok = l.newToken(TokenLParen, l.ch)
	case ')':
		tok = l.newToken(TokenRParen, l.ch)
	case '{':
		tok = l.newToken(TokenLBrace, l.ch)
	case '}':
		tok = l.newToken(TokenRBrace, l.ch)
	case '[':
		tok = l.newToken(TokenLBracket, l.ch)
	case ']':
		tok = l.newToken(TokenRBracket, l.ch)
	case ';':
		tok = l.newToken(TokenSemicolon, l.ch)
	case ',':
		tok = l.newToken(TokenComma, l.ch)
	case '?':
		tok = l.newToken(TokenQuestion, l.ch)
	case ':':
		tok = l.newToken(TokenColon, l.ch)
	case '.':
		if l.peekChar() == '.' && l.peekChar2() == '.' {
			tok.Type = TokenEllipsis
			tok.Literal = "..."
			l.readChar()
			l.readChar()
		} else if isDigit(l.peekChar()) {
			return l.readNumber()
		} else {
			tok = l.newToken(TokenDot, l.ch)
		}
	case '"':
		return l.readString(EncNone, tok.Line, tok.Column)
	case '\'':
		return l.readCharConst(tok.Line, tok.Column)
	default:
		if isLetter(l.ch) {
			return l.readIdentOrPrefixedLiteral(tok.Line, tok.Column)
		} else if isDigit(l.ch) {
			return l.readNumber()
		}
		tok = l.newToken(TokenIllegal, l.ch)
	}

	l.readChar()
	return tok
}

func (l *Lexer) newToken(tokenType TokenType, ch byte) Token {
	return Token{Type: tokenType, Literal: string(ch), Line: l.line, Column: l.column}
}

func (l *Lexer) twoCharToken(tokenType TokenType, literal string) Token {
	tok := Token{Type: tokenType, Literal: literal, Line: l.line, Column: l.column}
	l.readChar()
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipComments() {
	for l.ch == '/' {
		if l.peekChar() == '/' {
			// Single-line comment
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			l.skipWhitespace()
		} else if l.peekChar() == '*' {
			// Multi-line comment
			l.readChar() // consume /
			l.readChar() // consume *
			for {
				if l.ch == 0 {
					break
				}
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar() // consume *
					l.readChar() // consume /
					break
				}
				l.readChar()
			}
			l.skipWhitespace()
		} else {
			break
		}
	}
}

// readIdentOrPrefixedLiteral scans an identifier or keyword, recognizing
// string-literal encoding prefixes (u8, u, U, L) when the identifier is
// immediately followed by a double quote.
func (l *Lexer) readIdentOrPrefixedLiteral(line, column int) Token {
	ident := l.readIdentifier()

	if l.ch == '"' {
		switch ident {
		case "u8":
			return l.readString(EncUTF8, line, column)
		case "u":
			return l.readString(EncChar16, line, column)
		case "U":
			return l.readString(EncChar32, line, column)
		case "L":
			return l.readString(EncWide, line, column)
		}
	}
	if l.ch == '\'' && (ident == "u" || ident == "U" || ident == "L") {
		return l.readCharConst(line, column)
	}

	return Token{Type: LookupIdent(ident), Literal: ident, Line: line, Column: column}
}

func (l *Lexer) readIdentifier() string {
	pos := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[pos:l.pos]
}

// readNumber scans an integer or floating constant, including hex and octal
// integers, exponents, and C suffixes (uUlL / fFlL). The suffixes affect
// only the lexeme, not the value.
func (l *Lexer) readNumber() Token {
	tok := Token{Line: l.line, Column: l.column}
	pos := l.pos
	isFloat := false

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
		for isHexDigit(l.ch) {
			l.readChar()
		}
	} else {
		for isDigit(l.ch) {
			l.readChar()
		}
		if l.ch == '.' {
			isFloat = true
			l.readChar()
			for isDigit(l.ch) {
				l.readChar()
			}
		}
		if l.ch == 'e' || l.ch == 'E' {
			isFloat = true
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	digits := l.input[pos:l.pos]

	// Suffixes.
	for l.ch == 'u' || l.ch == 'U' || l.ch == 'l' || l.ch == 'L' || ((l.ch == 'f' || l.ch == 'F') && isFloat) {
		l.readChar()
	}
	tok.Literal = l.input[pos:l.pos]

	if isFloat {
		tok.Type = TokenFConst
		f, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			tok.Type = TokenIllegal
			return tok
		}
		tok.FVal = f
		return tok
	}

	tok.Type = TokenInt
	n, err := strconv.ParseInt(digits, 0, 64)
	if err != nil {
		tok.Type = TokenIllegal
		return tok
	}
	tok.IVal = n
	return tok
}

func (l *Lexer) readString(enc Encoding, line, column int) Token {
	l.readChar() // consume opening quote
	var sb strings.Builder
	for l.ch != '"' && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			sb.WriteByte(unescape(l.ch))
			l.readChar()
			continue
		}
		sb.WriteByte(l.ch)
		l.readChar()
	}
	l.readChar() // consume closing quote
	return Token{Type: TokenString, Literal: sb.String(), Enc: enc, Line: line, Column: column}
}

// readCharConst scans a character constant. Its value is carried as an
// integer constant, matching C's int-typed character literals.
func (l *Lexer) readCharConst(line, column int) Token {
	l.readChar() // consume opening quote
	var val int64
	var sb strings.Builder
	for l.ch != '\'' && l.ch != 0 {
		c := l.ch
		if c == '\\' {
			l.readChar()
			c = unescape(l.ch)
		}
		val = val<<8 | int64(c)
		sb.WriteByte(c)
		l.readChar()
	}
	l.readChar() // consume closing quote
	return Token{Type: TokenInt, Literal: sb.String(), IVal: val, Line: line, Column: column}
}

func unescape(ch byte) byte {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	case 'a':
		return 7
	case 'b':
		return 8
	case 'f':
		return 12
	case 'v':
		return 11
	default:
		return ch
	}
}

func isLetter(ch byte) bool {
	return unicode.IsLetter(rune(ch)) || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}
