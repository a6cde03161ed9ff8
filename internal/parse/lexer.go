package parse

// Lexer tokenizes filter expression input.
type Lexer struct {
	input string
	pos   int  // current position in input
	ch    byte // current character under examination
}

// NewLexer creates a new lexer for the input string.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	tok := Token{Pos: l.pos - 1}

	switch l.ch {
	case '[':
		tok.Type = TokenLBracket
		tok.Literal = "["
	case ']':
		tok.Type = TokenRBracket
		tok.Literal = "]"
	case '(':
		tok.Type = TokenLParen
		tok.Literal = "("
	case ')':
		tok.Type = TokenRParen
		tok.Literal = ")"
	case ',':
		tok.Type = TokenComma
		tok.Literal = ","
	case '=':
		tok.Type = TokenEq
		tok.Literal = "="
	case '!':
		tok.Type = TokenNot
		tok.Literal = "!"
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type = TokenLte
			tok.Literal = "<="
		} else {
			tok.Type = TokenLt
			tok.Literal = "<"
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok.Type = TokenGte
			tok.Literal = ">="
		} else {
			tok.Type = TokenGt
			tok.Literal = ">"
		}
	case '"', '\'':
		str, ok := l.readString(l.ch)
		if !ok {
			// Unterminated string is a lexical error.
			tok.Type = TokenIllegal
			tok.Literal = str
			return tok
		}
		tok.Type = TokenString
		tok.Literal = str
		return tok
	case 0:
		tok.Type = TokenEOF
		tok.Literal = ""
		return tok
	case '+', '-':
		if isDigit(l.peekChar()) {
			return l.readNumeric()
		}
		tok.Type = TokenIllegal
		tok.Literal = string(l.ch)
	default:
		if isLetter(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = LookupKeyword(tok.Literal)
			return tok
		} else if isDigit(l.ch) {
			return l.readNumeric()
		}
		tok.Type = TokenIllegal
		tok.Literal = string(l.ch)
	}

	l.readChar()
	return tok
}

// readChar reads the next character and advances position.
func (l *Lexer) readChar() {
	if l.pos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.pos]
	}
	l.pos++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// skipWhitespace advances past whitespace characters.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readIdentifier reads an identifier (letters, digits, underscores).
func (l *Lexer) readIdentifier() string {
	start := l.pos - 1
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start : l.pos-1]
}

// readString reads a quoted string (supports both " and '). The second
// return value is false when the closing quote is missing.
func (l *Lexer) readString(quote byte) (string, bool) {
	l.readChar() // skip opening quote
	start := l.pos - 1
	for l.ch != quote && l.ch != 0 {
		l.readChar()
	}
	str := l.input[start : l.pos-1]
	if l.ch != quote {
		return str, false
	}
	l.readChar() // skip closing quote
	return str, true
}

// readNumeric reads a number, an ISO date (2024-01-15), or a signed
// relative offset (-7d, +3m).
func (l *Lexer) readNumeric() Token {
	start := l.pos - 1
	tok := Token{Pos: start}

	signed := l.ch == '+' || l.ch == '-'
	if signed {
		l.readChar()
	}
	digits := 0
	for isDigit(l.ch) {
		digits++
		l.readChar()
	}

	// ISO date: four digits followed by -dd-dd.
	if !signed && digits == 4 && l.hasDateTail() {
		for i := 0; i < 6; i++ {
			l.readChar()
		}
		tok.Type = TokenDate
		tok.Literal = l.input[start : l.pos-1]
		return tok
	}

	frac := false
	if l.ch == '.' && isDigit(l.peekChar()) {
		frac = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	// Relative offset: signed integer with a unit suffix, e.g. -7d.
	if signed && !frac && isUnitLetter(l.ch) && !isAlnum(l.peekChar()) {
		l.readChar()
		tok.Type = TokenOffset
		tok.Literal = l.input[start : l.pos-1]
		return tok
	}

	tok.Type = TokenNumber
	tok.Literal = l.input[start : l.pos-1]
	return tok
}

// hasDateTail reports whether the input at the current character is the
// -dd-dd remainder of an ISO date.
func (l *Lexer) hasDateTail() bool {
	rest := l.input[l.pos-1:]
	if len(rest) < 6 {
		return false
	}
	return rest[0] == '-' && isDigit(rest[1]) && isDigit(rest[2]) &&
		rest[3] == '-' && isDigit(rest[4]) && isDigit(rest[5])
}

// isLetter returns true if c is a letter or underscore.
func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

// isDigit returns true if c is a digit.
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(c byte) bool {
	return isLetter(c) || isDigit(c)
}

// isUnitLetter returns true for relative-offset unit suffixes.
func isUnitLetter(c byte) bool {
	switch c {
	case 'd', 'D', 'w', 'W', 'm', 'M', 'y', 'Y':
		return true
	}
	return false
}
