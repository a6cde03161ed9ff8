package filtex

import (
	"strconv"
	"strings"

	"github.com/julianhyde/filtex-sub001/ast"
)

// ResolveFamily maps field metadata to the expression family that picks
// the grammar. Numeric fields are always NUMBER regardless of kind.
func ResolveFamily(isNumericField bool, fieldKind string) ast.Family {
	if isNumericField {
		return ast.FamilyNumber
	}
	if fam := ast.ParseFamily(fieldKind); fam != ast.FamilyUnknown {
		return fam
	}
	return ast.FamilyString
}

// Subtypes enumerates the node kinds a family's grammar can produce.
// Consumers use it to decide which editor affordances to offer.
func Subtypes(family ast.Family) []string {
	switch family {
	case ast.FamilyNumber:
		return []string{"comparison", "between", "combinator", "matches_advanced"}
	case ast.FamilyDate:
		return []string{"comparison", "between", "combinator", "date_within", "matches_advanced"}
	case ast.FamilyLocation:
		return []string{"comparison", "combinator", "location_within", "location_box", "matches_advanced"}
	default:
		return []string{"matches_advanced"}
	}
}

// TokenValue converts a single-predicate tree back into the compact
// filter syntax that would parse to it. Combinator trees span multiple
// UI tokens and report ok=false.
func TokenValue(n ast.Node) (string, bool) {
	switch v := n.(type) {
	case *ast.Comparison:
		var b strings.Builder
		if !v.Is {
			b.WriteString("not ")
		}
		if v.Op != ast.OpEq {
			b.WriteString(v.Op.String())
		}
		for i, val := range v.Values {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(rawValue(val))
		}
		return b.String(), true
	case *ast.Between:
		var b strings.Builder
		if !v.Is {
			b.WriteString("not ")
		}
		if v.Bounds.LowInclusive() {
			b.WriteByte('[')
		} else {
			b.WriteByte('(')
		}
		b.WriteString(rawValue(v.Low))
		b.WriteByte(',')
		b.WriteString(rawValue(v.High))
		if v.Bounds.HighInclusive() {
			b.WriteByte(']')
		} else {
			b.WriteByte(')')
		}
		return b.String(), true
	case *ast.MatchesAdvanced:
		return v.Text, true
	case *ast.DateWithin:
		var b strings.Builder
		if !v.Is {
			b.WriteString("not ")
		}
		if v.Past {
			b.WriteByte('-')
		} else {
			b.WriteByte('+')
		}
		b.WriteString(strconv.Itoa(v.Amount))
		b.WriteString(v.Unit.String())
		return b.String(), true
	case *ast.LocationWithin:
		var b strings.Builder
		if !v.Is {
			b.WriteString("not ")
		}
		b.WriteString("within ")
		b.WriteString(formatFloat(v.Radius))
		b.WriteString(v.Unit.String())
		b.WriteString(" of ")
		b.WriteString(formatFloat(v.Center.Y()))
		b.WriteByte(',')
		b.WriteString(formatFloat(v.Center.X()))
		return b.String(), true
	case *ast.LocationBox:
		var b strings.Builder
		if !v.Is {
			b.WriteString("not ")
		}
		b.WriteString("box ")
		b.WriteString(formatFloat(v.Bound.Min.Y()))
		b.WriteByte(',')
		b.WriteString(formatFloat(v.Bound.Min.X()))
		b.WriteByte(',')
		b.WriteString(formatFloat(v.Bound.Max.Y()))
		b.WriteByte(',')
		b.WriteString(formatFloat(v.Bound.Max.X()))
		return b.String(), true
	default:
		return "", false
	}
}

// rawValue spells a value the way the grammar accepts it: strings are
// quoted, numbers and dates keep their original spelling.
func rawValue(v ast.Value) string {
	if v.Kind == ast.KindString {
		return strconv.Quote(v.Str)
	}
	return v.Raw
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
