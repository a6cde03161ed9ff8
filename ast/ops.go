package ast

// CompareOp is a comparison operator.
type CompareOp int

const (
	OpEq  CompareOp = iota // =
	OpGt                   // >
	OpGte                  // >=
	OpLt                   // <
	OpLte                  // <=
)

// String returns the operator as it appears in filter syntax.
func (op CompareOp) String() string {
	switch op {
	case OpEq:
		return "="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	default:
		return "?"
	}
}

// CombineOp is a logical combinator operator.
type CombineOp int

const (
	CombineAnd CombineOp = iota
	CombineOr
)

func (op CombineOp) String() string {
	if op == CombineAnd {
		return "AND"
	}
	return "OR"
}

// Bounds selects per-side inclusivity for a Between node. Exactly four
// values exist, mirroring the bracket syntax.
type Bounds int

const (
	BoundsIncInc Bounds = iota // [low,high]
	BoundsIncExc               // [low,high)
	BoundsExcInc               // (low,high]
	BoundsExcExc               // (low,high)
)

// String echoes the bracket pair, e.g. "[)" for BoundsIncExc.
func (b Bounds) String() string {
	switch b {
	case BoundsIncInc:
		return "[]"
	case BoundsIncExc:
		return "[)"
	case BoundsExcInc:
		return "(]"
	case BoundsExcExc:
		return "()"
	default:
		return "??"
	}
}

// LowInclusive reports whether the low bound is inclusive.
func (b Bounds) LowInclusive() bool {
	return b == BoundsIncInc || b == BoundsIncExc
}

// HighInclusive reports whether the high bound is inclusive.
func (b Bounds) HighInclusive() bool {
	return b == BoundsIncInc || b == BoundsExcInc
}

// DateUnit is the unit of a relative date window.
type DateUnit int

const (
	UnitDay DateUnit = iota
	UnitWeek
	UnitMonth
	UnitYear
)

func (u DateUnit) String() string {
	switch u {
	case UnitDay:
		return "d"
	case UnitWeek:
		return "w"
	case UnitMonth:
		return "m"
	case UnitYear:
		return "y"
	default:
		return "?"
	}
}

// DistanceUnit is the unit of a location radius.
type DistanceUnit int

const (
	DistKilometers DistanceUnit = iota
	DistMiles
	DistMeters
)

func (u DistanceUnit) String() string {
	switch u {
	case DistKilometers:
		return "km"
	case DistMiles:
		return "mi"
	case DistMeters:
		return "m"
	default:
		return "?"
	}
}
