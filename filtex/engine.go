// Package filtex is the public surface of the filter expression engine.
// It ties the family grammars, the fallback rule, the normalization
// pipeline, and the summary renderer together: text goes in, a
// canonical tree or a localized sentence comes out, and syntax errors
// never escape.
package filtex

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julianhyde/filtex-sub001/ast"
	"github.com/julianhyde/filtex-sub001/internal/cache"
	"github.com/julianhyde/filtex-sub001/internal/log"
	"github.com/julianhyde/filtex-sub001/internal/parse"
	"github.com/julianhyde/filtex-sub001/internal/summary"
	"github.com/julianhyde/filtex-sub001/internal/transform"
)

// SummaryOptions controls how Summarize renders its sentence.
type SummaryOptions struct {
	Locale       string // BCP 47 code; unknown codes fall back to English
	FieldLabel   string // display label attached when IncludeLabel is set
	IncludeLabel bool
}

// Engine parses, normalizes and summarizes filter expressions. It is
// safe for concurrent use; the only mutable state is the summary cache.
type Engine struct {
	summaries  cache.Cache[string, string]
	summaryTTL time.Duration
}

// New creates an Engine with a summary cache using the given TTL.
// A zero ttl disables caching.
func New(summaryTTL time.Duration) *Engine {
	e := &Engine{summaryTTL: summaryTTL}
	if summaryTTL > 0 {
		e.summaries = cache.NewInMemory[string, string]("summaries", summaryTTL, cache.DefaultCleanupInterval)
	}
	return e
}

// Parse turns user-typed filter text into a canonical expression tree.
// It is total: input that does not parse under the family's grammar
// becomes a MatchesAdvanced fallback node, reusing prev's stored text
// when prev is itself an advanced node. Families without a grammar
// (STRING and unknown) go straight to the fallback.
func (e *Engine) Parse(family ast.Family, text string, prev ast.Node) ast.Node {
	root, err := parseFamily(family, text)
	if err != nil {
		log.Debug(log.CatParse, "falling back to advanced match", "family", family, "err", err)
		return parse.ToAdvanced(text, prev)
	}

	out, err := transform.Normalize(family, root)
	if err != nil {
		// The grammar parsers never produce a tree the pipeline
		// rejects; reaching this is a bug, not bad input.
		panic(err)
	}
	return out
}

// Normalize canonicalizes an externally-built tree. Unlike Parse it
// returns the pipeline's error instead of panicking, since trees from
// outside the engine may be malformed.
func (e *Engine) Normalize(family ast.Family, node ast.Node) (ast.Node, error) {
	return transform.Normalize(family, node)
}

// Summarize parses text and renders the localized sentence for it.
// Results are memoized per (family, locale, label, include, text); a
// hit refreshes the entry's TTL so hot summaries stay cached.
func (e *Engine) Summarize(ctx context.Context, family ast.Family, text string, opts SummaryOptions) string {
	key := summaryKey(family, text, opts)
	if e.summaries != nil {
		if s, ok := e.summaries.GetWithRefresh(ctx, key, e.summaryTTL); ok {
			return s
		}
	}

	node := e.Parse(family, text, nil)
	loc := summary.Resolve(opts.Locale)
	s := summary.Render(node, loc, opts.FieldLabel, opts.IncludeLabel)
	log.Debug(log.CatSummary, "rendered summary", "family", family, "locale", loc.Tag, "text", text)

	if e.summaries != nil {
		e.summaries.Set(ctx, key, s, e.summaryTTL)
	}
	return s
}

// SummarizeTree renders a sentence for an already-parsed tree, without
// touching the cache.
func (e *Engine) SummarizeTree(node ast.Node, opts SummaryOptions) string {
	loc := summary.Resolve(opts.Locale)
	return summary.Render(node, loc, opts.FieldLabel, opts.IncludeLabel)
}

func summaryKey(family ast.Family, text string, opts SummaryOptions) string {
	var b strings.Builder
	b.WriteString(family.String())
	b.WriteByte('|')
	b.WriteString(opts.Locale)
	b.WriteByte('|')
	b.WriteString(opts.FieldLabel)
	b.WriteByte('|')
	if opts.IncludeLabel {
		b.WriteByte('1')
	} else {
		b.WriteByte('0')
	}
	b.WriteByte('|')
	b.WriteString(text)
	return b.String()
}

// parseFamily dispatches to the family's grammar parser.
func parseFamily(family ast.Family, text string) (ast.Node, error) {
	switch family {
	case ast.FamilyNumber:
		return parse.ParseNumber(text)
	case ast.FamilyDate:
		return parse.ParseDate(text)
	case ast.FamilyLocation:
		return parse.ParseLocation(text)
	default:
		return nil, fmt.Errorf("family %s has no grammar", family)
	}
}
