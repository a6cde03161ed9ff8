package ast

import (
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual_IgnoresIDs(t *testing.T) {
	a := &Comparison{ID: 1, Op: OpEq, Values: []Value{NumberValue(30)}, Is: true}
	b := &Comparison{ID: 99, Op: OpEq, Values: []Value{NumberValue(30)}, Is: true}

	assert.True(t, Equal(a, b))
}

func TestEqual_DifferentTypes(t *testing.T) {
	a := &Comparison{Op: OpEq, Values: []Value{NumberValue(30)}, Is: true}
	b := &MatchesAdvanced{Text: "30"}

	assert.False(t, Equal(a, b))
}

func TestEqual_ValueOrderMatters(t *testing.T) {
	a := &Comparison{Op: OpEq, Values: []Value{NumberValue(1), NumberValue(2)}, Is: true}
	b := &Comparison{Op: OpEq, Values: []Value{NumberValue(2), NumberValue(1)}, Is: true}

	assert.False(t, Equal(a, b))
}

func TestEqual_IsFlag(t *testing.T) {
	a := &Comparison{Op: OpEq, Values: []Value{NumberValue(2)}, Is: true}
	b := &Comparison{Op: OpEq, Values: []Value{NumberValue(2)}, Is: false}

	assert.False(t, Equal(a, b))
}

func TestEqual_Combinator(t *testing.T) {
	mk := func(id int) Node {
		return &Combinator{
			ID: id,
			Op: CombineOr,
			Left: &Between{
				Bounds: BoundsIncInc,
				Low:    NumberValue(0),
				High:   NumberValue(20),
				Is:     true,
			},
			Right: &Comparison{Op: OpGt, Values: []Value{NumberValue(30)}, Is: true},
		}
	}

	assert.True(t, Equal(mk(1), mk(2)))
}

func TestEqual_LocationNodes(t *testing.T) {
	a := &LocationWithin{Center: orb.Point{18.06, 59.33}, Radius: 10, Unit: DistKilometers, Is: true}
	b := &LocationWithin{ID: 7, Center: orb.Point{18.06, 59.33}, Radius: 10, Unit: DistKilometers, Is: true}
	c := &LocationWithin{Center: orb.Point{18.06, 59.33}, Radius: 5, Unit: DistKilometers, Is: true}

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}

func TestEqual_Nil(t *testing.T) {
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, &MatchesAdvanced{}))
}

func TestValue_Equal_RawExcluded(t *testing.T) {
	a := Value{Kind: KindNumber, Raw: "30", Num: 30}
	b := Value{Kind: KindNumber, Raw: "30.0", Num: 30}

	assert.True(t, a.Equal(b))
}

func TestValue_Equal_KindMismatch(t *testing.T) {
	a := NumberValue(30)
	b := StringValue("30")

	assert.False(t, a.Equal(b))
}

func TestValue_Equal_Date(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	a := DateValue(day, "2024-01-15")
	b := DateValue(day, "2024-01-15")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(DateValue(day.AddDate(0, 0, 1), "2024-01-16")))
}

func TestWalk_Preorder(t *testing.T) {
	tree := &Combinator{
		Op:   CombineOr,
		Left: &Comparison{Op: OpEq, Values: []Value{NumberValue(1)}, Is: true},
		Right: &Combinator{
			Op:    CombineOr,
			Left:  &Comparison{Op: OpEq, Values: []Value{NumberValue(2)}, Is: true},
			Right: &Comparison{Op: OpEq, Values: []Value{NumberValue(3)}, Is: true},
		},
	}

	var visited []Node
	Walk(tree, func(n Node) bool {
		visited = append(visited, n)
		return true
	})

	require.Len(t, visited, 5)
	assert.Same(t, Node(tree), visited[0])
	assert.Same(t, tree.Left, visited[1])
}

func TestWalk_EarlyStop(t *testing.T) {
	tree := &Combinator{
		Op:    CombineOr,
		Left:  &Comparison{Op: OpEq, Values: []Value{NumberValue(1)}, Is: true},
		Right: &Comparison{Op: OpEq, Values: []Value{NumberValue(2)}, Is: true},
	}

	count := 0
	Walk(tree, func(n Node) bool {
		count++
		return false
	})

	assert.Equal(t, 1, count)
}

func TestCountNegations(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want int
	}{
		{
			name: "no negations",
			node: &Comparison{Op: OpEq, Values: []Value{NumberValue(1)}, Is: true},
			want: 0,
		},
		{
			name: "single negated comparison",
			node: &Comparison{Op: OpEq, Values: []Value{NumberValue(1)}, Is: false},
			want: 1,
		},
		{
			name: "negated between counts",
			node: &Combinator{
				Op:    CombineOr,
				Left:  &Between{Bounds: BoundsIncInc, Low: NumberValue(0), High: NumberValue(9), Is: false},
				Right: &Comparison{Op: OpEq, Values: []Value{NumberValue(1)}, Is: false},
			},
			want: 2,
		},
		{
			name: "negated family leaves do not count",
			node: &Combinator{
				Op:    CombineOr,
				Left:  &DateWithin{Amount: 7, Unit: UnitDay, Past: true, Is: false},
				Right: &Comparison{Op: OpEq, Values: []Value{NumberValue(1)}, Is: false},
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountNegations(tt.node))
		})
	}
}

func TestParseFamily(t *testing.T) {
	assert.Equal(t, FamilyNumber, ParseFamily("number"))
	assert.Equal(t, FamilyNumber, ParseFamily("Numeric"))
	assert.Equal(t, FamilyDate, ParseFamily("datetime"))
	assert.Equal(t, FamilyLocation, ParseFamily("geo"))
	assert.Equal(t, FamilyString, ParseFamily("text"))
	assert.Equal(t, FamilyUnknown, ParseFamily("bogus"))
}
