// Package parse implements the per-family filter expression grammars.
// One entry point exists per expression family (number, date, location);
// each either consumes the entire input or fails with a SyntaxError,
// which the caller converts into a free-text fallback node.
package parse

import "strings"

// TokenType represents the type of lexical token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIllegal

	// Literals
	TokenNumber // 42, -3.5
	TokenString // "quoted" or 'quoted'
	TokenDate   // 2024-01-15
	TokenOffset // -7d, +3m (relative date windows)
	TokenIdent  // keywords and unit words

	// Delimiters
	TokenLBracket // [
	TokenRBracket // ]
	TokenLParen   // (
	TokenRParen   // )
	TokenComma    // ,

	// Comparison operators
	TokenEq  // =
	TokenLt  // <
	TokenGt  // >
	TokenLte // <=
	TokenGte // >=

	// Negation marker ("not" keyword or "!")
	TokenNot
)

// String returns the string representation of the token type.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenIllegal:
		return "ILLEGAL"
	case TokenNumber:
		return "NUMBER"
	case TokenString:
		return "STRING"
	case TokenDate:
		return "DATE"
	case TokenOffset:
		return "OFFSET"
	case TokenIdent:
		return "IDENT"
	case TokenLBracket:
		return "["
	case TokenRBracket:
		return "]"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenComma:
		return ","
	case TokenEq:
		return "="
	case TokenLt:
		return "<"
	case TokenGt:
		return ">"
	case TokenLte:
		return "<="
	case TokenGte:
		return ">="
	case TokenNot:
		return "NOT"
	default:
		return "UNKNOWN"
	}
}

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int // position in input for error reporting
}

// keywords maps keyword strings to their token types. Everything else
// lexes as TokenIdent and the parser decides what it means.
var keywords = map[string]TokenType{
	"not": TokenNot,
}

// LookupKeyword returns the token type for the given identifier.
func LookupKeyword(ident string) TokenType {
	if tok, ok := keywords[strings.ToLower(ident)]; ok {
		return tok
	}
	return TokenIdent
}

// IsComparisonOp returns true if the token type is a comparison operator.
func (t TokenType) IsComparisonOp() bool {
	switch t {
	case TokenEq, TokenLt, TokenGt, TokenLte, TokenGte:
		return true
	}
	return false
}
