package ast

// Equal reports structural equality of two trees. Node ids do not
// participate: two structurally-identical trees with different ids are
// equal. Value lists compare in order.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch x := a.(type) {
	case *Comparison:
		y, ok := b.(*Comparison)
		return ok && x.Op == y.Op && x.Is == y.Is && valuesEqual(x.Values, y.Values)
	case *Between:
		y, ok := b.(*Between)
		return ok && x.Bounds == y.Bounds && x.Is == y.Is &&
			x.Low.Equal(y.Low) && x.High.Equal(y.High)
	case *Combinator:
		y, ok := b.(*Combinator)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *MatchesAdvanced:
		y, ok := b.(*MatchesAdvanced)
		return ok && x.Text == y.Text
	case *DateWithin:
		y, ok := b.(*DateWithin)
		return ok && x.Amount == y.Amount && x.Unit == y.Unit &&
			x.Past == y.Past && x.Is == y.Is
	case *LocationWithin:
		y, ok := b.(*LocationWithin)
		return ok && x.Center == y.Center && x.Radius == y.Radius &&
			x.Unit == y.Unit && x.Is == y.Is
	case *LocationBox:
		y, ok := b.(*LocationBox)
		return ok && x.Bound == y.Bound && x.Is == y.Is
	default:
		return false
	}
}
