package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF || tok.Type == TokenIllegal {
			return tokens
		}
	}
}

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestLexer_Operators(t *testing.T) {
	tests := []struct {
		input string
		want  []TokenType
	}{
		{">30", []TokenType{TokenGt, TokenNumber, TokenEOF}},
		{">=30", []TokenType{TokenGte, TokenNumber, TokenEOF}},
		{"<30", []TokenType{TokenLt, TokenNumber, TokenEOF}},
		{"<=30", []TokenType{TokenLte, TokenNumber, TokenEOF}},
		{"=30", []TokenType{TokenEq, TokenNumber, TokenEOF}},
		{"!30", []TokenType{TokenNot, TokenNumber, TokenEOF}},
		{"not 30", []TokenType{TokenNot, TokenNumber, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenTypes(lexAll(tt.input)))
		})
	}
}

func TestLexer_RangeSyntax(t *testing.T) {
	tokens := lexAll("[0,20],(5,10)")
	want := []TokenType{
		TokenLBracket, TokenNumber, TokenComma, TokenNumber, TokenRBracket,
		TokenComma,
		TokenLParen, TokenNumber, TokenComma, TokenNumber, TokenRParen,
		TokenEOF,
	}
	assert.Equal(t, want, tokenTypes(tokens))
}

func TestLexer_Numbers(t *testing.T) {
	tests := []struct {
		input   string
		literal string
	}{
		{"42", "42"},
		{"3.5", "3.5"},
		{"-5", "-5"},
		{"+5", "+5"},
		{"-3.25", "-3.25"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := lexAll(tt.input)
			require.Len(t, tokens, 2)
			assert.Equal(t, TokenNumber, tokens[0].Type)
			assert.Equal(t, tt.literal, tokens[0].Literal)
		})
	}
}

func TestLexer_ISODate(t *testing.T) {
	tokens := lexAll("2024-01-15")
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenDate, tokens[0].Type)
	assert.Equal(t, "2024-01-15", tokens[0].Literal)
}

func TestLexer_FourDigitNumberIsNotDate(t *testing.T) {
	tokens := lexAll("2024")
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenNumber, tokens[0].Type)
}

func TestLexer_RelativeOffsets(t *testing.T) {
	tests := []struct {
		input   string
		literal string
	}{
		{"-7d", "-7d"},
		{"+3m", "+3m"},
		{"-2W", "-2W"},
		{"+10y", "+10y"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := lexAll(tt.input)
			require.Len(t, tokens, 2)
			assert.Equal(t, TokenOffset, tokens[0].Type)
			assert.Equal(t, tt.literal, tokens[0].Literal)
		})
	}
}

func TestLexer_UnsignedAmountWithUnitIsNotOffset(t *testing.T) {
	// "10km" is a radius (number then ident), not a relative offset.
	tokens := lexAll("10km")
	require.Len(t, tokens, 3)
	assert.Equal(t, TokenNumber, tokens[0].Type)
	assert.Equal(t, "10", tokens[0].Literal)
	assert.Equal(t, TokenIdent, tokens[1].Type)
	assert.Equal(t, "km", tokens[1].Literal)
}

func TestLexer_QuotedStrings(t *testing.T) {
	tests := []struct {
		input   string
		literal string
	}{
		{`"paris"`, "paris"},
		{`'new york'`, "new york"},
		{`""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := lexAll(tt.input)
			require.Len(t, tokens, 2)
			assert.Equal(t, TokenString, tokens[0].Type)
			assert.Equal(t, tt.literal, tokens[0].Literal)
		})
	}
}

func TestLexer_UnterminatedString(t *testing.T) {
	tokens := lexAll(`"paris`)
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenIllegal, tokens[0].Type)
}

func TestLexer_LocationPhrase(t *testing.T) {
	tokens := lexAll("within 10km of 59.33,18.06")
	want := []TokenType{
		TokenIdent, TokenNumber, TokenIdent, TokenIdent,
		TokenNumber, TokenComma, TokenNumber,
		TokenEOF,
	}
	assert.Equal(t, want, tokenTypes(tokens))
	assert.Equal(t, "within", tokens[0].Literal)
	assert.Equal(t, "59.33", tokens[4].Literal)
}

func TestLexer_SkipsWhitespace(t *testing.T) {
	tokens := lexAll("  1 ,\t2 ")
	want := []TokenType{TokenNumber, TokenComma, TokenNumber, TokenEOF}
	assert.Equal(t, want, tokenTypes(tokens))
}

func TestLexer_PositionTracking(t *testing.T) {
	l := NewLexer("1, 22")
	first := l.NextToken()
	comma := l.NextToken()
	second := l.NextToken()

	assert.Equal(t, 0, first.Pos)
	assert.Equal(t, 1, comma.Pos)
	assert.Equal(t, 3, second.Pos)
}
