package summary

import (
	"fmt"
	"strings"

	"github.com/julianhyde/filtex-sub001/ast"
)

// Render produces the natural-language sentence for a normalized tree.
// When includeLabel is set and fieldLabel is non-empty, the label is
// attached according to the locale's ordering convention. A nil tree
// renders as the empty string.
func Render(n ast.Node, loc Locale, fieldLabel string, includeLabel bool) string {
	if n == nil {
		return ""
	}
	clause := renderNode(n, loc)
	if !includeLabel || fieldLabel == "" {
		return clause
	}
	if loc.phrases.labelFirst {
		return fieldLabel + " " + clause
	}
	return clause + " " + fieldLabel
}

func renderNode(n ast.Node, loc Locale) string {
	p := loc.phrases
	switch v := n.(type) {
	case *ast.Comparison:
		return renderComparison(v, loc)
	case *ast.Between:
		low := formatBound(v.Low, v.Bounds.LowInclusive(), loc)
		high := formatBound(v.High, v.Bounds.HighInclusive(), loc)
		return copula(v.Is, loc) + " " + fmt.Sprintf(p.between, low, high)
	case *ast.Combinator:
		conn := p.or
		if v.Op == ast.CombineAnd {
			conn = p.and
		}
		return renderNode(v.Left, loc) + " " + conn + " " + renderNode(v.Right, loc)
	case *ast.MatchesAdvanced:
		return fmt.Sprintf(p.matches, v.Text)
	case *ast.DateWithin:
		window := p.nextWindow
		if v.Past {
			window = p.lastWindow
		}
		amount := loc.printer.Sprintf("%v", v.Amount)
		return copula(v.Is, loc) + " " + fmt.Sprintf(window, amount, unitWord(v.Amount, v.Unit, loc))
	case *ast.LocationWithin:
		radius := loc.printer.Sprintf("%v", v.Radius)
		lat := loc.printer.Sprintf("%v", v.Center.Y())
		lon := loc.printer.Sprintf("%v", v.Center.X())
		return copula(v.Is, loc) + " " + fmt.Sprintf(p.within, radius, p.distUnits[v.Unit], lat, lon)
	case *ast.LocationBox:
		min, max := v.Bound.Min, v.Bound.Max
		return copula(v.Is, loc) + " " + fmt.Sprintf(p.inBox,
			loc.printer.Sprintf("%v", min.Y()), loc.printer.Sprintf("%v", min.X()),
			loc.printer.Sprintf("%v", max.Y()), loc.printer.Sprintf("%v", max.X()))
	default:
		return ""
	}
}

func renderComparison(c *ast.Comparison, loc Locale) string {
	p := loc.phrases
	var b strings.Builder
	b.WriteString(copula(c.Is, loc))
	switch c.Op {
	case ast.OpGt:
		b.WriteString(" " + p.gt)
	case ast.OpGte:
		b.WriteString(" " + p.gte)
	case ast.OpLt:
		b.WriteString(" " + p.lt)
	case ast.OpLte:
		b.WriteString(" " + p.lte)
	case ast.OpEq:
		if len(c.Values) > 1 {
			b.WriteString(" " + p.anyOf)
		}
	}
	b.WriteString(" " + valueList(c.Values, loc))
	return b.String()
}

func copula(is bool, loc Locale) string {
	if is {
		return loc.phrases.is
	}
	return loc.phrases.isNot
}

// valueList joins values with commas, using the locale's "or" before the
// last element: "1, 2 or 3".
func valueList(values []ast.Value, loc Locale) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatValue(v, loc)
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " " + loc.phrases.or + " " + parts[len(parts)-1]
	}
}

func formatValue(v ast.Value, loc Locale) string {
	p := loc.phrases
	switch v.Kind {
	case ast.KindNumber:
		return loc.printer.Sprintf("%v", v.Num)
	case ast.KindDate:
		if word, ok := p.namedDays[v.Raw]; ok {
			return word
		}
		return v.Date.Format(p.dateLayout)
	default:
		return fmt.Sprintf("“%s”", v.Str)
	}
}

func formatBound(v ast.Value, inclusive bool, loc Locale) string {
	s := formatValue(v, loc)
	if !inclusive {
		s += " (" + loc.phrases.exclusive + ")"
	}
	return s
}

// unitWord picks the singular or plural unit word for an amount.
func unitWord(amount int, unit ast.DateUnit, loc Locale) string {
	words := loc.phrases.dateUnits[unit]
	if amount == 1 {
		return words[0]
	}
	return words[1]
}
