// Package ast defines the filter expression tree produced by the grammar
// parsers and consumed by the transform pipeline and summary renderer.
//
// The node set is closed: adding a variant requires touching the parser,
// the transform pipeline, and the renderer, all of which switch
// exhaustively over the types below.
package ast

import "github.com/paulmach/orb"

// Node is the interface for all expression tree nodes.
//
// Nodes are value objects: once built they are not mutated, and a
// transform produces a new tree rather than editing a shared one. The
// ID field is the one exception — it is stamped onto a working tree
// during a single normalization run and carries no semantic meaning.
// Structural equality (Equal) ignores it.
type Node interface {
	node()
}

// Comparison is a single predicate: operator plus an ordered value list.
// A list is only meaningful for OpEq ("equals any of"); the other
// operators carry exactly one value. Is=false negates the predicate
// ("is not").
type Comparison struct {
	ID     int
	Op     CompareOp
	Values []Value
	Is     bool
}

// Between is a range predicate. Bounds selects per-side inclusivity.
// Low <= High is not enforced; the parser accepts user input as given.
type Between struct {
	ID     int
	Bounds Bounds
	Low    Value
	High   Value
	Is     bool
}

// Combinator joins two sub-expressions with AND or OR. Children are
// never nil. Flat lists parse as right-leaning chains: "a,b,c" becomes
// Combinator(OR, a, Combinator(OR, b, c)).
type Combinator struct {
	ID    int
	Op    CombineOp
	Left  Node
	Right Node
}

// MatchesAdvanced is the free-text fallback: input that did not parse,
// kept verbatim. Always a leaf, never produced or consumed by a merge.
type MatchesAdvanced struct {
	ID   int
	Text string
}

// DateWithin is a relative date window such as "-7d" (within the last
// seven days) or "+3m" (within the next three months).
type DateWithin struct {
	ID     int
	Amount int
	Unit   DateUnit
	Past   bool
	Is     bool
}

// LocationWithin matches points within Radius of Center. Center follows
// the orb convention: X is longitude, Y is latitude.
type LocationWithin struct {
	ID     int
	Center orb.Point
	Radius float64
	Unit   DistanceUnit
	Is     bool
}

// LocationBox matches points inside a geographic bounding box.
type LocationBox struct {
	ID    int
	Bound orb.Bound
	Is    bool
}

func (*Comparison) node()      {}
func (*Between) node()         {}
func (*Combinator) node()      {}
func (*MatchesAdvanced) node() {}
func (*DateWithin) node()      {}
func (*LocationWithin) node()  {}
func (*LocationBox) node()     {}
