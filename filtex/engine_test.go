package filtex

import (
	"context"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/julianhyde/filtex-sub001/ast"
)

func TestParse_RoundTripShape(t *testing.T) {
	e := New(0)

	got := e.Parse(ast.FamilyNumber, "[0,20],>30", nil)

	want := &ast.Combinator{
		Op: ast.CombineOr,
		Left: &ast.Between{
			Bounds: ast.BoundsIncInc,
			Low:    ast.NumberValue(0),
			High:   ast.NumberValue(20),
			Is:     true,
		},
		Right: &ast.Comparison{Op: ast.OpGt, Values: []ast.Value{ast.NumberValue(30)}, Is: true},
	}
	require.True(t, ast.Equal(want, got), "got %#v", got)
}

func TestParse_MergesEqualities(t *testing.T) {
	e := New(0)

	got := e.Parse(ast.FamilyNumber, "1,2,3", nil)
	want := &ast.Comparison{
		Op:     ast.OpEq,
		Values: []ast.Value{ast.NumberValue(1), ast.NumberValue(2), ast.NumberValue(3)},
		Is:     true,
	}
	require.True(t, ast.Equal(want, got))
}

func TestParse_SyntaxErrorBecomesFallback(t *testing.T) {
	e := New(0)

	got := e.Parse(ast.FamilyNumber, "not a filter###", nil)
	require.Equal(t, &ast.MatchesAdvanced{ID: 1, Text: "not a filter###"}, got)
}

func TestParse_FallbackReusesPreviousAdvanced(t *testing.T) {
	e := New(0)
	prev := &ast.MatchesAdvanced{ID: 7, Text: "kept text"}

	got := e.Parse(ast.FamilyNumber, "still not a filter", prev)
	require.Equal(t, &ast.MatchesAdvanced{ID: 7, Text: "kept text"}, got)
}

func TestParse_StringFamilyAlwaysFallsBack(t *testing.T) {
	e := New(0)

	got := e.Parse(ast.FamilyString, "30", nil)
	require.Equal(t, &ast.MatchesAdvanced{ID: 1, Text: "30"}, got)
}

func TestParse_UnknownFamilyFallsBack(t *testing.T) {
	e := New(0)

	got := e.Parse(ast.FamilyUnknown, "anything", nil)
	require.IsType(t, &ast.MatchesAdvanced{}, got)
}

func TestParse_Total_Rapid(t *testing.T) {
	e := New(0)
	families := []ast.Family{ast.FamilyNumber, ast.FamilyDate, ast.FamilyLocation, ast.FamilyString}

	rapid.Check(t, func(t *rapid.T) {
		family := rapid.SampledFrom(families).Draw(t, "family")
		text := rapid.String().Draw(t, "text")

		got := e.Parse(family, text, nil)
		if got == nil {
			t.Fatalf("Parse returned nil for %s %q", family, text)
		}
	})
}

func TestNormalize_ExternalTreeError(t *testing.T) {
	e := New(0)
	bad := &ast.Combinator{Op: ast.CombineOr, Left: nil, Right: nil}

	_, err := e.Normalize(ast.FamilyNumber, bad)
	require.Error(t, err)
}

func TestSummarize_Basic(t *testing.T) {
	e := New(0)

	got := e.Summarize(context.Background(), ast.FamilyNumber, "[0,20],>30", SummaryOptions{
		Locale:       "en",
		FieldLabel:   "Price",
		IncludeLabel: true,
	})
	assert.Equal(t, "Price is between 0 and 20 or is greater than 30", got)
}

func TestSummarize_FallbackText(t *testing.T) {
	e := New(0)

	got := e.Summarize(context.Background(), ast.FamilyNumber, "free text here", SummaryOptions{Locale: "en"})
	assert.Equal(t, "matches “free text here”", got)
}

func TestSummarize_UnknownLocaleNeverFails(t *testing.T) {
	e := New(0)

	got := e.Summarize(context.Background(), ast.FamilyNumber, ">30", SummaryOptions{Locale: "zz-ZZ"})
	assert.Equal(t, "is greater than 30", got)
}

func TestSummarize_Deterministic(t *testing.T) {
	e := New(time.Minute)
	opts := SummaryOptions{Locale: "de", FieldLabel: "Preis", IncludeLabel: true}

	first := e.Summarize(context.Background(), ast.FamilyNumber, "1,2,3", opts)
	second := e.Summarize(context.Background(), ast.FamilyNumber, "1,2,3", opts)

	assert.Equal(t, first, second)
	assert.Equal(t, "Preis ist einer von 1, 2 oder 3", first)
}

func TestSummarize_CacheKeySeparatesOptions(t *testing.T) {
	e := New(time.Minute)
	ctx := context.Background()

	withLabel := e.Summarize(ctx, ast.FamilyNumber, ">30", SummaryOptions{Locale: "en", FieldLabel: "Price", IncludeLabel: true})
	without := e.Summarize(ctx, ast.FamilyNumber, ">30", SummaryOptions{Locale: "en", FieldLabel: "Price", IncludeLabel: false})

	assert.NotEqual(t, withLabel, without)
}

func TestSummarizeTree(t *testing.T) {
	e := New(0)
	node := &ast.DateWithin{Amount: 7, Unit: ast.UnitDay, Past: true, Is: true}

	got := e.SummarizeTree(node, SummaryOptions{Locale: "fr"})
	assert.Equal(t, "est au cours des 7 derniers jours", got)
}

func TestResolveFamily(t *testing.T) {
	assert.Equal(t, ast.FamilyNumber, ResolveFamily(true, "string"))
	assert.Equal(t, ast.FamilyDate, ResolveFamily(false, "date"))
	assert.Equal(t, ast.FamilyLocation, ResolveFamily(false, "geo"))
	assert.Equal(t, ast.FamilyString, ResolveFamily(false, "unknown kind"))
}

func TestSubtypes(t *testing.T) {
	assert.Contains(t, Subtypes(ast.FamilyNumber), "between")
	assert.Contains(t, Subtypes(ast.FamilyDate), "date_within")
	assert.Contains(t, Subtypes(ast.FamilyLocation), "location_box")
	assert.NotContains(t, Subtypes(ast.FamilyLocation), "between")
	assert.Equal(t, []string{"matches_advanced"}, Subtypes(ast.FamilyString))
}

func TestTokenValue_RoundTrip(t *testing.T) {
	e := New(0)

	// token -> tree -> token survives for single-predicate inputs.
	inputs := []struct {
		family ast.Family
		text   string
	}{
		{ast.FamilyNumber, ">30"},
		{ast.FamilyNumber, "not 5"},
		{ast.FamilyNumber, "1,2,3"},
		{ast.FamilyNumber, "[0,20)"},
		{ast.FamilyDate, "-7d"},
	}

	for _, tt := range inputs {
		t.Run(tt.text, func(t *testing.T) {
			node := e.Parse(tt.family, tt.text, nil)
			token, ok := TokenValue(node)
			require.True(t, ok)

			again := e.Parse(tt.family, token, nil)
			assert.True(t, ast.Equal(node, again), "token %q reparsed to %#v", token, again)
		})
	}
}

func TestTokenValue_CombinatorNotATokenValue(t *testing.T) {
	e := New(0)
	node := e.Parse(ast.FamilyNumber, "[0,20],>30", nil)

	_, ok := TokenValue(node)
	assert.False(t, ok)
}

func TestTokenValue_Location(t *testing.T) {
	within := &ast.LocationWithin{
		Center: orb.Point{18.06, 59.33},
		Radius: 10,
		Unit:   ast.DistKilometers,
		Is:     true,
	}

	token, ok := TokenValue(within)
	require.True(t, ok)
	assert.Equal(t, "within 10km of 59.33,18.06", token)
}
