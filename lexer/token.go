package lexer

// TokenKind classifies a lexeme. Reserved words are split into four closed
// categories so that a grammar can match them as classes.
type TokenKind int

const (
	Invalid TokenKind = iota
	Eof

	NumberLiteral
	CharLiteral
	StringLiteral

	Identifier

	Minus // -
	Plus  // +
	Slash // /
	Comma // ,

	Equal       // =
	LessThan    // <
	GreaterThan // >

	Not       // !
	Dot       // .
	Star      // *
	Ampersand // &
	BitwiseOr // |

	Colon     // :
	Semicolon // ;

	LParen   // (
	RParen   // )
	LSquare  // [
	RSquare  // ]
	LBracket // {
	RBracket // }

	LessThanOrEqual    // <=
	GreaterThanOrEqual // >=
	EqualEqual         // ==
	NotEqual           // !=
	Increment          // ++
	Decrement          // --

	Arrow // ->

	LogicalAnd // &&
	LogicalOr  // ||

	BasicType
	IntModifier
	ValueModifier
	Keyword

	// AnyToken is the default expectation for Next; it matches every kind.
	AnyToken
)

func (k TokenKind) String() string {
	switch k {
	case Invalid:
		return "???"
	case Eof:
		return "[EOF]"
	case NumberLiteral:
		return "NumberLiteral"
	case CharLiteral:
		return "CharLiteral"
	case StringLiteral:
		return "StringLiteral"
	case Identifier:
		return "Identifier"
	case Minus:
		return "-"
	case Plus:
		return "+"
	case Slash:
		return "/"
	case Comma:
		return ","
	case Equal:
		return "="
	case LessThan:
		return "<"
	case GreaterThan:
		return ">"
	case Not:
		return "!"
	case Dot:
		return "."
	case Star:
		return "*"
	case Ampersand:
		return "&"
	case BitwiseOr:
		return "|"
	case Colon:
		return ":"
	case Semicolon:
		return ";"
	case LParen:
		return "("
	case RParen:
		return ")"
	case LSquare:
		return "["
	case RSquare:
		return "]"
	case LBracket:
		return "{"
	case RBracket:
		return "}"
	case LessThanOrEqual:
		return "<="
	case GreaterThanOrEqual:
		return ">="
	case EqualEqual:
		return "=="
	case NotEqual:
		return "!="
	case Increment:
		return "++"
	case Decrement:
		return "--"
	case Arrow:
		return "->"
	case LogicalAnd:
		return "&&"
	case LogicalOr:
		return "||"
	case BasicType:
		return "BasicType"
	case IntModifier:
		return "IntModifier"
	case ValueModifier:
		return "ValueModifier"
	case Keyword:
		return "Keyword"
	case AnyToken:
		return "[AnyToken]"
	}
	return "???"
}

var basicTypes = []string{"int", "char", "void", "float", "double", "bool", "auto"}

var intModifiers = []string{"unsigned", "short", "long"}

var valueModifiers = []string{"const", "volatile", "constexpr"}

var keywords = []string{
	"true", "false",
	"if", "else", "switch", "case",
	"for", "while", "do", "continue", "break", "return",
	"struct", "class", "typedef", "namespace", "using",
	"const", "volatile", "auto",
}

func classifyWord(word string) TokenKind {
	switch {
	case contains(basicTypes, word):
		return BasicType
	case contains(intModifiers, word):
		return IntModifier
	case contains(valueModifiers, word):
		return ValueModifier
	case contains(keywords, word):
		return Keyword
	}
	return Identifier
}

func contains(words []string, w string) bool {
	for _, v := range words {
		if v == w {
			return true
		}
	}
	return false
}

// Location is the source span of a token. Lines and columns are 1-based; the
// end column is exclusive. Line holds the full source line the token starts
// on, for diagnostics.
type Location struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	Line      string
}

// Token is a classified slice of the source. The lexeme of a string or char
// literal is its interior, without the quotes.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Loc    Location
}

func (t Token) String() string {
	return "Token(kind: " + t.Kind.String() + ", lexeme: <" + t.Lexeme + ">)"
}
