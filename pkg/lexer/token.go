package lexer

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenIllegal

	// Literals
	TokenInt      // 42, 0x2a, 'a' (character constants carry their value)
	TokenFConst   // 3.14, 1e9
	TokenString   // "hello"
	TokenIdent    // main, foo, x
	TokenFuncName // __func__

	// Keywords
	TokenInt_         // int
	TokenVoid         // void
	TokenReturn       // return
	TokenIf           // if
	TokenElse         // else
	TokenWhile        // while
	TokenDo           // do
	TokenFor          // for
	TokenBreak        // break
	TokenContinue     // continue
	TokenSwitch       // switch
	TokenCase         // case
	TokenDefault      // default
	TokenGoto         // goto
	TokenTypedef      // typedef
	TokenStruct       // struct
	TokenSizeof       // sizeof
	TokenUnion        // union
	TokenEnum         // enum
	TokenStatic       // static
	TokenExtern       // extern
	TokenAuto         // auto
	TokenRegister     // register
	TokenConst        // const
	TokenVolatile     // volatile
	TokenRestrict     // restrict
	TokenInline       // inline
	TokenChar         // char
	TokenShort        // short
	TokenLong         // long
	TokenFloat        // float
	TokenDouble       // double
	TokenSigned       // signed
	TokenUnsigned     // unsigned
	TokenBool         // _Bool
	TokenComplex      // _Complex
	TokenImaginary    // _Imaginary
	TokenAtomic       // _Atomic
	TokenAlignas      // _Alignas
	TokenAlignof      // _Alignof
	TokenGeneric      // _Generic
	TokenNoreturn     // _Noreturn
	TokenStaticAssert // _Static_assert
	TokenThreadLocal  // _Thread_local

	// Operators
	TokenPlus      // +
	TokenMinus     // -
	TokenStar      // *
	TokenSlash     // /
	TokenPercent   // %
	TokenAssign    // =
	TokenEq        // ==
	TokenNe        // !=
	TokenLt        // <
	TokenLe        // <=
	TokenGt        // >
	TokenGe        // >=
	TokenAnd       // &&
	TokenOr        // ||
	TokenNot       // !
	TokenAmpersand // &
	TokenPipe      // |
	TokenCaret     // ^
	TokenTilde     // ~
	TokenShl       // <<
	TokenShr       // >>
	TokenQuestion  // ?
	TokenColon     // :

	// Compound assignment operators
	TokenPlusAssign    // +=
	TokenMinusAssign   // -=
	TokenStarAssign    // *=
	TokenSlashAssign   // /=
	TokenPercentAssign // %=
	TokenAndAssign     // &=
	TokenOrAssign      // |=
	TokenXorAssign     // ^=
	TokenShlAssign     // <<=
	TokenShrAssign     // >>=

	// Increment/decrement
	TokenIncrement // ++
	TokenDecrement // --

	// Delimiters
	TokenLParen    // (
	TokenRParen    // )
	TokenLBrace    // {
	TokenRBrace    // }
	TokenLBracket  // [
	TokenRBracket  // ]
	TokenSemicolon // ;
	TokenComma     // ,
	TokenDot       // .
	TokenArrow     // ->
	TokenEllipsis  // ...
)

var tokenNames = map[TokenType]string{
	TokenEOF:           "EOF",
	TokenIllegal:       "ILLEGAL",
	TokenInt:           "ICONST",
	TokenFConst:        "FCONST",
	TokenString:        "STRING",
	TokenIdent:         "IDENT",
	TokenFuncName:      "__func__",
	TokenInt_:          "int",
	TokenVoid:          "void",
	TokenReturn:        "return",
	TokenIf:            "if",
	TokenElse:          "else",
	TokenWhile:         "while",
	TokenDo:            "do",
	TokenFor:           "for",
	TokenBreak:         "break",
	TokenContinue:      "continue",
	TokenSwitch:        "switch",
	TokenCase:          "case",
	TokenDefault:       "default",
	TokenGoto:          "goto",
	TokenTypedef:       "typedef",
	TokenStruct:        "struct",
	TokenSizeof:        "sizeof",
	TokenUnion:         "union",
	TokenEnum:          "enum",
	TokenStatic:        "static",
	TokenExtern:        "extern",
	TokenAuto:          "auto",
	TokenRegister:      "register",
	TokenConst:         "const",
	TokenVolatile:      "volatile",
	TokenRestrict:      "restrict",
	TokenInline:        "inline",
	TokenChar:          "char",
	TokenShort:         "short",
	TokenLong:          "long",
	TokenFloat:         "float",
	TokenDouble:        "double",
	TokenSigned:        "signed",
	TokenUnsigned:      "unsigned",
	TokenBool:          "_Bool",
	TokenComplex:       "_Complex",
	TokenImaginary:     "_Imaginary",
	TokenAtomic:        "_Atomic",
	TokenAlignas:       "_Alignas",
	TokenAlignof:       "_Alignof",
	TokenGeneric:       "_Generic",
	TokenNoreturn:      "_Noreturn",
	TokenStaticAssert:  "_Static_assert",
	TokenThreadLocal:   "_Thread_local",
	TokenPlus:          "+",
	TokenMinus:         "-",
	TokenStar:          "*",
	TokenSlash:         "/",
	TokenPercent:       "%",
	TokenAssign:        "=",
	TokenEq:            "==",
	TokenNe:            "!=",
	TokenLt:            "<",
	TokenLe:            "<=",
	TokenGt:            ">",
	TokenGe:            ">=",
	TokenAnd:           "&&",
	TokenOr:            "||",
	TokenNot:           "!",
	TokenAmpersand:     "&",
	TokenPipe:          "|",
	TokenCaret:         "^",
	TokenTilde:         "~",
	TokenShl:           "<<",
	TokenShr:           ">>",
	TokenQuestion:      "?",
	TokenColon:         ":",
	TokenPlusAssign:    "+=",
	TokenMinusAssign:   "-=",
	TokenStarAssign:    "*=",
	TokenSlashAssign:   "/=",
	TokenPercentAssign: "%=",
	TokenAndAssign:     "&=",
	TokenOrAssign:      "|=",
	TokenXorAssign:     "^=",
	TokenShlAssign:     "<<=",
	TokenShrAssign:     ">>=",
	TokenIncrement:     "++",
	TokenDecrement:     "--",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenLBracket:      "[",
	TokenRBracket:      "]",
	TokenSemicolon:     ";",
	TokenComma:         ",",
	TokenDot:           ".",
	TokenArrow:         "->",
	TokenEllipsis:      "...",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Encoding tags a string literal with its encoding prefix.
type Encoding int

const (
	EncNone   Encoding = iota
	EncUTF8            // u8"..."
	EncChar16          // u"..."
	EncChar32          // U"..."
	EncWide            // L"..."
)

var encodingNames = map[Encoding]string{
	EncNone:   "",
	EncUTF8:   "u8",
	EncChar16: "u",
	EncChar32: "U",
	EncWide:   "L",
}

func (e Encoding) String() string {
	return encodingNames[e]
}

// Token represents a lexical token. Integer and character constants carry
// their value in IVal, float constants in FVal. Literal holds the source
// text; for string literals it is the unescaped contents.
type Token struct {
	Type    TokenType
	Literal string
	IVal    int64
	FVal    float64
	Enc     Encoding
	Line    int
	Column  int
}

// keywords maps keyword strings to token types
var keywords = map[string]TokenType{
	"int":            TokenInt_,
	"void":           TokenVoid,
	"return":         TokenReturn,
	"if":             TokenIf,
	"else":           TokenElse,
	"while":          TokenWhile,
	"do":             TokenDo,
	"for":            TokenFor,
	"break":          TokenBreak,
	"continue":       TokenContinue,
	"switch":         TokenSwitch,
	"case":           TokenCase,
	"default":        TokenDefault,
	"goto":           TokenGoto,
	"typedef":        TokenTypedef,
	"struct":         TokenStruct,
	"sizeof":         TokenSizeof,
	"union":          TokenUnion,
	"enum":           TokenEnum,
	"static":         TokenStatic,
	"extern":         TokenExtern,
	"auto":           TokenAuto,
	"register":       TokenRegister,
	"const":          TokenConst,
	"volatile":       TokenVolatile,
	"restrict":       TokenRestrict,
	"inline":         TokenInline,
	"char":           TokenChar,
	"short":          TokenShort,
	"long":           TokenLong,
	"float":          TokenFloat,
	"double":         TokenDouble,
	"signed":         TokenSigned,
	"unsigned":       TokenUnsigned,
	"_Bool":          TokenBool,
	"_Complex":       TokenComplex,
	"_Imaginary":     TokenImaginary,
	"_Atomic":        TokenAtomic,
	"_Alignas":       TokenAlignas,
	"_Alignof":       TokenAlignof,
	"_Generic":       TokenGeneric,
	"_Noreturn":      TokenNoreturn,
	"_Static_assert": TokenStaticAssert,
	"_Thread_local":  TokenThreadLocal,
	"__func__":       TokenFuncName,
}

// LookupIdent returns the token type for an identifier (keyword or IDENT)
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdent
}
