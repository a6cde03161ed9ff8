// Package codec serializes expression trees with msgpack for transport
// between processes. The envelope is a tagged union keyed by a kind
// string; it is a transport format, not a persisted one, and carries no
// version negotiation.
package codec

import (
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/julianhyde/filtex-sub001/ast"
)

const (
	kindComparison      = "comparison"
	kindBetween         = "between"
	kindCombinator      = "combinator"
	kindMatchesAdvanced = "matches_advanced"
	kindDateWithin      = "date_within"
	kindLocationWithin  = "location_within"
	kindLocationBox     = "location_box"
)

type wireValue struct {
	Kind int       `msgpack:"kind"`
	Raw  string    `msgpack:"raw"`
	Num  float64   `msgpack:"num,omitempty"`
	Str  string    `msgpack:"str,omitempty"`
	Date time.Time `msgpack:"date"`
}

type wireNode struct {
	Kind string `msgpack:"kind"`
	ID   int    `msgpack:"id"`
	Is   bool   `msgpack:"is"`

	Op     string      `msgpack:"op,omitempty"`
	Values []wireValue `msgpack:"values,omitempty"`

	Bounds string     `msgpack:"bounds,omitempty"`
	Low    *wireValue `msgpack:"low,omitempty"`
	High   *wireValue `msgpack:"high,omitempty"`

	Left  *wireNode `msgpack:"left,omitempty"`
	Right *wireNode `msgpack:"right,omitempty"`

	Text string `msgpack:"text,omitempty"`

	Amount int    `msgpack:"amount,omitempty"`
	Unit   string `msgpack:"unit,omitempty"`
	Past   bool   `msgpack:"past,omitempty"`

	Lon    float64 `msgpack:"lon,omitempty"`
	Lat    float64 `msgpack:"lat,omitempty"`
	Radius float64 `msgpack:"radius,omitempty"`
	MinLon float64 `msgpack:"min_lon,omitempty"`
	MinLat float64 `msgpack:"min_lat,omitempty"`
	MaxLon float64 `msgpack:"max_lon,omitempty"`
	MaxLat float64 `msgpack:"max_lat,omitempty"`
}

// Encode serializes a tree. Ids are preserved; a nil tree is an error.
func Encode(n ast.Node) ([]byte, error) {
	w, err := toWire(n)
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(w)
}

// Decode deserializes a tree produced by Encode.
func Decode(data []byte) (ast.Node, error) {
	var w wireNode
	if err := msgpack.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decoding expression: %w", err)
	}
	return fromWire(&w)
}

func toWire(n ast.Node) (*wireNode, error) {
	switch v := n.(type) {
	case *ast.Comparison:
		return &wireNode{
			Kind:   kindComparison,
			ID:     v.ID,
			Is:     v.Is,
			Op:     v.Op.String(),
			Values: toWireValues(v.Values),
		}, nil
	case *ast.Between:
		low := toWireValue(v.Low)
		high := toWireValue(v.High)
		return &wireNode{
			Kind:   kindBetween,
			ID:     v.ID,
			Is:     v.Is,
			Bounds: v.Bounds.String(),
			Low:    &low,
			High:   &high,
		}, nil
	case *ast.Combinator:
		left, err := toWire(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := toWire(v.Right)
		if err != nil {
			return nil, err
		}
		return &wireNode{
			Kind:  kindCombinator,
			ID:    v.ID,
			Op:    combineOpString(v.Op),
			Left:  left,
			Right: right,
		}, nil
	case *ast.MatchesAdvanced:
		return &wireNode{Kind: kindMatchesAdvanced, ID: v.ID, Text: v.Text}, nil
	case *ast.DateWithin:
		return &wireNode{
			Kind:   kindDateWithin,
			ID:     v.ID,
			Is:     v.Is,
			Amount: v.Amount,
			Unit:   v.Unit.String(),
			Past:   v.Past,
		}, nil
	case *ast.LocationWithin:
		return &wireNode{
			Kind:   kindLocationWithin,
			ID:     v.ID,
			Is:     v.Is,
			Lon:    v.Center.X(),
			Lat:    v.Center.Y(),
			Radius: v.Radius,
			Unit:   v.Unit.String(),
		}, nil
	case *ast.LocationBox:
		return &wireNode{
			Kind:   kindLocationBox,
			ID:     v.ID,
			Is:     v.Is,
			MinLon: v.Bound.Min.X(),
			MinLat: v.Bound.Min.Y(),
			MaxLon: v.Bound.Max.X(),
			MaxLat: v.Bound.Max.Y(),
		}, nil
	case nil:
		return nil, fmt.Errorf("cannot encode nil expression")
	default:
		return nil, fmt.Errorf("cannot encode node type %T", n)
	}
}

func fromWire(w *wireNode) (ast.Node, error) {
	if w == nil {
		return nil, fmt.Errorf("missing node")
	}
	switch w.Kind {
	case kindComparison:
		op, err := parseCompareOp(w.Op)
		if err != nil {
			return nil, err
		}
		return &ast.Comparison{ID: w.ID, Op: op, Values: fromWireValues(w.Values), Is: w.Is}, nil
	case kindBetween:
		bounds, err := parseBounds(w.Bounds)
		if err != nil {
			return nil, err
		}
		if w.Low == nil || w.High == nil {
			return nil, fmt.Errorf("between node missing bounds values")
		}
		return &ast.Between{
			ID:     w.ID,
			Bounds: bounds,
			Low:    fromWireValue(*w.Low),
			High:   fromWireValue(*w.High),
			Is:     w.Is,
		}, nil
	case kindCombinator:
		op, err := parseCombineOp(w.Op)
		if err != nil {
			return nil, err
		}
		left, err := fromWire(w.Left)
		if err != nil {
			return nil, err
		}
		right, err := fromWire(w.Right)
		if err != nil {
			return nil, err
		}
		return &ast.Combinator{ID: w.ID, Op: op, Left: left, Right: right}, nil
	case kindMatchesAdvanced:
		return &ast.MatchesAdvanced{ID: w.ID, Text: w.Text}, nil
	case kindDateWithin:
		unit, err := parseDateUnit(w.Unit)
		if err != nil {
			return nil, err
		}
		return &ast.DateWithin{ID: w.ID, Amount: w.Amount, Unit: unit, Past: w.Past, Is: w.Is}, nil
	case kindLocationWithin:
		unit, err := parseDistanceUnit(w.Unit)
		if err != nil {
			return nil, err
		}
		return &ast.LocationWithin{
			ID:     w.ID,
			Center: orb.Point{w.Lon, w.Lat},
			Radius: w.Radius,
			Unit:   unit,
			Is:     w.Is,
		}, nil
	case kindLocationBox:
		return &ast.LocationBox{
			ID: w.ID,
			Bound: orb.Bound{
				Min: orb.Point{w.MinLon, w.MinLat},
				Max: orb.Point{w.MaxLon, w.MaxLat},
			},
			Is: w.Is,
		}, nil
	default:
		return nil, fmt.Errorf("unknown node kind %q", w.Kind)
	}
}

func toWireValues(values []ast.Value) []wireValue {
	out := make([]wireValue, len(values))
	for i, v := range values {
		out[i] = toWireValue(v)
	}
	return out
}

func toWireValue(v ast.Value) wireValue {
	return wireValue{Kind: int(v.Kind), Raw: v.Raw, Num: v.Num, Str: v.Str, Date: v.Date}
}

func fromWireValues(values []wireValue) []ast.Value {
	out := make([]ast.Value, len(values))
	for i, v := range values {
		out[i] = fromWireValue(v)
	}
	return out
}

func fromWireValue(v wireValue) ast.Value {
	return ast.Value{Kind: ast.ValueKind(v.Kind), Raw: v.Raw, Num: v.Num, Str: v.Str, Date: v.Date}
}

func combineOpString(op ast.CombineOp) string {
	if op == ast.CombineAnd {
		return "and"
	}
	return "or"
}

func parseCompareOp(s string) (ast.CompareOp, error) {
	switch s {
	case "=":
		return ast.OpEq, nil
	case ">":
		return ast.OpGt, nil
	case ">=":
		return ast.OpGte, nil
	case "<":
		return ast.OpLt, nil
	case "<=":
		return ast.OpLte, nil
	default:
		return 0, fmt.Errorf("unknown compare operator %q", s)
	}
}

func parseCombineOp(s string) (ast.CombineOp, error) {
	switch s {
	case "and":
		return ast.CombineAnd, nil
	case "or":
		return ast.CombineOr, nil
	default:
		return 0, fmt.Errorf("unknown combine operator %q", s)
	}
}

func parseBounds(s string) (ast.Bounds, error) {
	switch s {
	case "[]":
		return ast.BoundsIncInc, nil
	case "[)":
		return ast.BoundsIncExc, nil
	case "(]":
		return ast.BoundsExcInc, nil
	case "()":
		return ast.BoundsExcExc, nil
	default:
		return 0, fmt.Errorf("unknown bounds %q", s)
	}
}

func parseDateUnit(s string) (ast.DateUnit, error) {
	switch s {
	case "d":
		return ast.UnitDay, nil
	case "w":
		return ast.UnitWeek, nil
	case "m":
		return ast.UnitMonth, nil
	case "y":
		return ast.UnitYear, nil
	default:
		return 0, fmt.Errorf("unknown date unit %q", s)
	}
}

func parseDistanceUnit(s string) (ast.DistanceUnit, error) {
	switch s {
	case "km":
		return ast.DistKilometers, nil
	case "mi":
		return ast.DistMiles, nil
	case "m":
		return ast.DistMeters, nil
	default:
		return 0, fmt.Errorf("unknown distance unit %q", s)
	}
}
