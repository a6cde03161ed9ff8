package parse

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"

	"github.com/julianhyde/filtex-sub001/ast"
)

// SyntaxError is the failure signal for input that does not fully match
// a family's grammar. It carries no partial tree; callers are expected
// to fall back to a free-text node.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Pos, e.Msg)
}

func syntaxErrorf(pos int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// ParseNumber parses a NUMBER family expression such as "[0,20],>30".
func ParseNumber(input string) (ast.Node, error) {
	return parseFamily(ast.FamilyNumber, input)
}

// ParseDate parses a DATE family expression such as ">2024-01-01" or "-7d".
func ParseDate(input string) (ast.Node, error) {
	return parseFamily(ast.FamilyDate, input)
}

// ParseLocation parses a LOCATION family expression such as
// "within 10km of 59.33,18.06".
func ParseLocation(input string) (ast.Node, error) {
	return parseFamily(ast.FamilyLocation, input)
}

func parseFamily(family ast.Family, input string) (ast.Node, error) {
	p := newParser(family, input)
	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	// The entire input must be consumed; trailing garbage is an error.
	if p.current.Type != TokenEOF {
		return nil, syntaxErrorf(p.current.Pos, "unexpected token %q", p.current.Literal)
	}
	return node, nil
}

// Parser parses filter expression tokens into an AST.
type Parser struct {
	family  ast.Family
	lexer   *Lexer
	current Token
	peek    Token
}

func newParser(family ast.Family, input string) *Parser {
	p := &Parser{family: family, lexer: NewLexer(input)}
	// Prime the parser with two tokens
	p.nextToken()
	p.nextToken()
	return p
}

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.current = p.peek
	p.peek = p.lexer.NextToken()
}

// parseExpression parses comma-separated predicates into a
// right-leaning OR chain.
// expression = predicate { "," predicate }
func (p *Parser) parseExpression() (ast.Node, error) {
	pred, err := p.parsePredicate()
	if err != nil {
		return nil, err
	}

	if p.current.Type != TokenComma {
		return pred, nil
	}
	p.nextToken() // consume comma

	rest, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Combinator{Op: ast.CombineOr, Left: pred, Right: rest}, nil
}

// parsePredicate parses a single predicate with an optional leading
// negation marker.
// predicate = [ "not" | "!" ] ( range | comparison | family-leaf | value )
func (p *Parser) parsePredicate() (ast.Node, error) {
	is := true
	if p.current.Type == TokenNot {
		is = false
		p.nextToken()
	}

	switch p.current.Type {
	case TokenLBracket, TokenLParen:
		if p.family == ast.FamilyLocation {
			return nil, syntaxErrorf(p.current.Pos, "ranges are not valid for location fields")
		}
		return p.parseRange(is)

	case TokenGt, TokenGte, TokenLt, TokenLte:
		op := compareOp(p.current.Type)
		p.nextToken()
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return &ast.Comparison{Op: op, Values: []ast.Value{v}, Is: is}, nil

	case TokenEq:
		p.nextToken()
		values, err := p.parseValueList()
		if err != nil {
			return nil, err
		}
		return &ast.Comparison{Op: ast.OpEq, Values: values, Is: is}, nil

	case TokenOffset:
		if p.family != ast.FamilyDate {
			return nil, syntaxErrorf(p.current.Pos, "relative offset %q is only valid for date fields", p.current.Literal)
		}
		return p.parseDateWithin(is)

	case TokenIdent:
		if p.family == ast.FamilyLocation {
			switch strings.ToLower(p.current.Literal) {
			case "within":
				return p.parseLocationWithin(is)
			case "box":
				return p.parseLocationBox(is)
			}
		}
		// Date keywords (today etc.) fall through as bare values.
		fallthrough

	default:
		// Bare value means equality.
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return &ast.Comparison{Op: ast.OpEq, Values: []ast.Value{v}, Is: is}, nil
	}
}

// parseRange parses "[low,high]" with bracket/paren choosing per-side
// inclusivity.
func (p *Parser) parseRange(is bool) (ast.Node, error) {
	lowInclusive := p.current.Type == TokenLBracket
	p.nextToken()

	low, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TokenComma {
		return nil, syntaxErrorf(p.current.Pos, "expected ',' in range, got %q", p.current.Literal)
	}
	p.nextToken()
	high, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	var highInclusive bool
	switch p.current.Type {
	case TokenRBracket:
		highInclusive = true
	case TokenRParen:
		highInclusive = false
	default:
		return nil, syntaxErrorf(p.current.Pos, "expected ']' or ')' to close range, got %q", p.current.Literal)
	}
	p.nextToken()

	return &ast.Between{Bounds: bounds(lowInclusive, highInclusive), Low: low, High: high, Is: is}, nil
}

// parseValueList parses the comma-separated list after "=". The list is
// greedy: it keeps consuming ",value" while the token after the comma is
// a plain value; anything else ends the list and the comma reverts to
// the OR separator.
func (p *Parser) parseValueList() ([]ast.Value, error) {
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	values := []ast.Value{v}

	for p.current.Type == TokenComma && p.isValueToken(p.peek) {
		p.nextToken() // consume comma
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// parseValue parses a single literal value for the current family.
func (p *Parser) parseValue() (ast.Value, error) {
	tok := p.current
	switch p.family {
	case ast.FamilyNumber:
		if tok.Type != TokenNumber {
			return ast.Value{}, syntaxErrorf(tok.Pos, "expected number, got %q", tok.Literal)
		}
		n, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return ast.Value{}, syntaxErrorf(tok.Pos, "invalid number %q", tok.Literal)
		}
		p.nextToken()
		return ast.Value{Kind: ast.KindNumber, Raw: tok.Literal, Num: n}, nil

	case ast.FamilyDate:
		switch tok.Type {
		case TokenDate:
			t, err := time.Parse("2006-01-02", tok.Literal)
			if err != nil {
				return ast.Value{}, syntaxErrorf(tok.Pos, "invalid date %q", tok.Literal)
			}
			p.nextToken()
			return ast.DateValue(t, tok.Literal), nil
		case TokenIdent:
			t, ok := namedDay(tok.Literal)
			if !ok {
				return ast.Value{}, syntaxErrorf(tok.Pos, "expected date, got %q", tok.Literal)
			}
			p.nextToken()
			return ast.DateValue(t, strings.ToLower(tok.Literal)), nil
		default:
			return ast.Value{}, syntaxErrorf(tok.Pos, "expected date, got %q", tok.Literal)
		}

	case ast.FamilyLocation:
		if tok.Type != TokenString {
			return ast.Value{}, syntaxErrorf(tok.Pos, "expected quoted place name, got %q", tok.Literal)
		}
		p.nextToken()
		return ast.StringValue(tok.Literal), nil

	default:
		return ast.Value{}, syntaxErrorf(tok.Pos, "no grammar for family %s", p.family)
	}
}

// isValueToken reports whether tok can begin a value for the current
// family. Used for the one-token lookahead that separates "=a,b,c" value
// lists from OR commas.
func (p *Parser) isValueToken(tok Token) bool {
	switch p.family {
	case ast.FamilyNumber:
		return tok.Type == TokenNumber
	case ast.FamilyDate:
		if tok.Type == TokenDate {
			return true
		}
		if tok.Type == TokenIdent {
			_, ok := namedDay(tok.Literal)
			return ok
		}
		return false
	case ast.FamilyLocation:
		return tok.Type == TokenString
	default:
		return false
	}
}

// parseDateWithin parses a signed relative offset like "-7d" or "+3m".
func (p *Parser) parseDateWithin(is bool) (ast.Node, error) {
	lit := p.current.Literal
	pos := p.current.Pos
	past := lit[0] == '-'
	unit, ok := dateUnit(lit[len(lit)-1])
	if !ok {
		return nil, syntaxErrorf(pos, "invalid offset unit in %q", lit)
	}
	amount, err := strconv.Atoi(lit[1 : len(lit)-1])
	if err != nil || amount == 0 {
		return nil, syntaxErrorf(pos, "invalid offset amount in %q", lit)
	}
	p.nextToken()
	return &ast.DateWithin{Amount: amount, Unit: unit, Past: past, Is: is}, nil
}

// parseLocationWithin parses "within <radius><unit> of <lat>,<lon>".
// The coordinate pair has fixed arity, so the comma inside it never
// collides with the OR separator.
func (p *Parser) parseLocationWithin(is bool) (ast.Node, error) {
	p.nextToken() // consume "within"

	radius, err := p.parseFloat("radius")
	if err != nil {
		return nil, err
	}
	unit, err := p.parseDistanceUnit()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TokenIdent || !strings.EqualFold(p.current.Literal, "of") {
		return nil, syntaxErrorf(p.current.Pos, "expected 'of', got %q", p.current.Literal)
	}
	p.nextToken()

	lat, lon, err := p.parseCoordinate()
	if err != nil {
		return nil, err
	}
	return &ast.LocationWithin{
		Center: orb.Point{lon, lat},
		Radius: radius,
		Unit:   unit,
		Is:     is,
	}, nil
}

// parseLocationBox parses "box <lat>,<lon>,<lat>,<lon>" (two corners).
func (p *Parser) parseLocationBox(is bool) (ast.Node, error) {
	p.nextToken() // consume "box"

	lat1, lon1, err := p.parseCoordinate()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TokenComma {
		return nil, syntaxErrorf(p.current.Pos, "expected ',' between box corners, got %q", p.current.Literal)
	}
	p.nextToken()
	lat2, lon2, err := p.parseCoordinate()
	if err != nil {
		return nil, err
	}

	bound := orb.Bound{
		Min: orb.Point{math.Min(lon1, lon2), math.Min(lat1, lat2)},
		Max: orb.Point{math.Max(lon1, lon2), math.Max(lat1, lat2)},
	}
	return &ast.LocationBox{Bound: bound, Is: is}, nil
}

// parseCoordinate parses "<lat>,<lon>".
func (p *Parser) parseCoordinate() (lat, lon float64, err error) {
	lat, err = p.parseFloat("latitude")
	if err != nil {
		return 0, 0, err
	}
	if p.current.Type != TokenComma {
		return 0, 0, syntaxErrorf(p.current.Pos, "expected ',' in coordinate, got %q", p.current.Literal)
	}
	p.nextToken()
	lon, err = p.parseFloat("longitude")
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

func (p *Parser) parseFloat(what string) (float64, error) {
	if p.current.Type != TokenNumber {
		return 0, syntaxErrorf(p.current.Pos, "expected %s, got %q", what, p.current.Literal)
	}
	n, err := strconv.ParseFloat(p.current.Literal, 64)
	if err != nil {
		return 0, syntaxErrorf(p.current.Pos, "invalid %s %q", what, p.current.Literal)
	}
	p.nextToken()
	return n, nil
}

func (p *Parser) parseDistanceUnit() (ast.DistanceUnit, error) {
	if p.current.Type != TokenIdent {
		return 0, syntaxErrorf(p.current.Pos, "expected distance unit, got %q", p.current.Literal)
	}
	var unit ast.DistanceUnit
	switch strings.ToLower(p.current.Literal) {
	case "km":
		unit = ast.DistKilometers
	case "mi":
		unit = ast.DistMiles
	case "m":
		unit = ast.DistMeters
	default:
		return 0, syntaxErrorf(p.current.Pos, "unknown distance unit %q", p.current.Literal)
	}
	p.nextToken()
	return unit, nil
}

// compareOp maps an operator token to its AST operator.
func compareOp(t TokenType) ast.CompareOp {
	switch t {
	case TokenGt:
		return ast.OpGt
	case TokenGte:
		return ast.OpGte
	case TokenLt:
		return ast.OpLt
	case TokenLte:
		return ast.OpLte
	default:
		return ast.OpEq
	}
}

// bounds maps per-side inclusivity to the Bounds kind.
func bounds(lowInclusive, highInclusive bool) ast.Bounds {
	switch {
	case lowInclusive && highInclusive:
		return ast.BoundsIncInc
	case lowInclusive:
		return ast.BoundsIncExc
	case highInclusive:
		return ast.BoundsExcInc
	default:
		return ast.BoundsExcExc
	}
}

// namedDay resolves today/yesterday/tomorrow to midnight UTC.
func namedDay(ident string) (time.Time, bool) {
	day := time.Now().UTC().Truncate(24 * time.Hour)
	switch strings.ToLower(ident) {
	case "today":
		return day, true
	case "yesterday":
		return day.AddDate(0, 0, -1), true
	case "tomorrow":
		return day.AddDate(0, 0, 1), true
	default:
		return time.Time{}, false
	}
}

// dateUnit maps an offset suffix letter to its unit.
func dateUnit(c byte) (ast.DateUnit, bool) {
	switch c {
	case 'd', 'D':
		return ast.UnitDay, true
	case 'w', 'W':
		return ast.UnitWeek, true
	case 'm', 'M':
		return ast.UnitMonth, true
	case 'y', 'Y':
		return ast.UnitYear, true
	default:
		return 0, false
	}
}
