// Package transform canonicalizes freshly-parsed expression trees so
// that semantically-equivalent inputs produce one stable shape:
// adjacent equality comparisons in an OR chain collapse into a single
// multi-value node, a lone negation is folded into its positive
// neighbors, and a duplicate negated predicate left behind by that fold
// is pruned.
package transform

import (
	"fmt"

	"github.com/julianhyde/filtex-sub001/ast"
)

// InvariantError signals a tree shape the pipeline does not expect,
// such as a nil combinator child or a merge across different operators.
// Trees produced by the grammar parsers never trigger it; it exists to
// fail loudly when the pipeline is handed a malformed tree from
// elsewhere.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "invariant violation: " + e.Msg
}

func invariantf(format string, args ...any) *InvariantError {
	return &InvariantError{Msg: fmt.Sprintf(format, args...)}
}

// Normalize canonicalizes a successfully-parsed tree. Fallback nodes
// are already canonical and pass through untouched. The input tree is
// not mutated structurally; the result may share leaf nodes with it.
func Normalize(family ast.Family, node ast.Node) (ast.Node, error) {
	if node == nil {
		return nil, nil
	}
	if _, ok := node.(*ast.MatchesAdvanced); ok {
		return node, nil
	}

	p := &pass{
		family: family,
		// A single negated predicate mixed with positive ones is
		// treated as the one exception to an otherwise-positive set
		// and coalesced into a negated multi-value node.
		allowDifferingIs: ast.CountNegations(node) == 1,
	}
	out, err := p.rewrite(node)
	if err != nil {
		return nil, err
	}

	if family == ast.FamilyNumber {
		out = pruneDuplicateNegation(out)
	}
	return out, nil
}

// pass holds the per-invocation merge settings.
type pass struct {
	family           ast.Family
	allowDifferingIs bool
}

// rewrite walks the right-leaning OR spine, merging adjacent mergeable
// comparisons. The splice is done by pure reconstruction: each collapse
// builds a new chain level instead of editing the old one.
func (p *pass) rewrite(n ast.Node) (ast.Node, error) {
	c, ok := n.(*ast.Combinator)
	if !ok {
		return n, nil
	}
	if c.Left == nil || c.Right == nil {
		return nil, invariantf("%s combinator has a nil child", c.Op)
	}

	// The left child is normally a leaf predicate; recursing covers
	// nested combinators handed in from outside the parser.
	left, err := p.rewrite(c.Left)
	if err != nil {
		return nil, err
	}
	rest := c.Right

	if c.Op == ast.CombineOr {
		// Lookahead loop: test the current left against the next
		// predicate in the flattened list and splice while they merge.
		for {
			lc, ok := left.(*ast.Comparison)
			if !ok {
				break
			}
			rc, ok := rest.(*ast.Combinator)
			if !ok || rc.Op != ast.CombineOr {
				break
			}
			if rc.Left == nil || rc.Right == nil {
				return nil, invariantf("%s combinator has a nil child", rc.Op)
			}
			rl, ok := rc.Left.(*ast.Comparison)
			if !ok || !p.mergeable(lc, rl) {
				break
			}
			merged, err := p.merge(lc, rl)
			if err != nil {
				return nil, err
			}
			left = merged
			rest = rc.Right
		}

		// Final pair: if only two predicates remain and they merge,
		// the combinator collapses entirely.
		if lc, ok := left.(*ast.Comparison); ok {
			if rc, ok := rest.(*ast.Comparison); ok && p.mergeable(lc, rc) {
				return p.merge(lc, rc)
			}
		}
	}

	// Recurse down the right spine so merging is attempted at every
	// depth, not only at the root.
	newRest, err := p.rewrite(rest)
	if err != nil {
		return nil, err
	}
	return &ast.Combinator{Op: c.Op, Left: left, Right: newRest}, nil
}

// mergeable reports whether two comparisons may collapse into one.
// They must share a mergeable operator; their Is flags must match
// unless the lone-negation rule is active for this invocation.
func (p *pass) mergeable(a, b *ast.Comparison) bool {
	if a.Op != b.Op || !mergeableOp(a.Op) {
		return false
	}
	return p.allowDifferingIs || a.Is == b.Is
}

// mergeableOp limits merging to equality: only "=" carries "any of"
// list semantics. The set is the same for every family.
func mergeableOp(op ast.CompareOp) bool {
	return op == ast.OpEq
}

// merge concatenates the two value lists preserving order. Duplicate
// values pass through; dedup happens, if at all, at whole-node level in
// the pruning step. The merged Is flag is the logical AND of both
// inputs' flags — the documented quirk that folds a lone negation into
// a single negated multi-value node.
func (p *pass) merge(a, b *ast.Comparison) (*ast.Comparison, error) {
	if a.Op != b.Op {
		return nil, invariantf("cannot merge %s with %s", a.Op, b.Op)
	}
	values := make([]ast.Value, 0, len(a.Values)+len(b.Values))
	values = append(values, a.Values...)
	values = append(values, b.Values...)
	return &ast.Comparison{Op: a.Op, Values: values, Is: a.Is && b.Is}, nil
}

// pruneDuplicateNegation removes the second of exactly two
// structurally-equal negated predicates. The lone-negation merge can
// reintroduce such a duplicate, which must go for the tree to reach its
// canonical shape. Nodes are addressed by arena-assigned ids that exist
// only for the duration of this step.
func pruneDuplicateNegation(root ast.Node) ast.Node {
	var negated []ast.Node
	ast.Walk(root, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.Comparison:
			if !v.Is {
				negated = append(negated, n)
			}
		case *ast.Between:
			if !v.Is {
				negated = append(negated, n)
			}
		}
		return true
	})
	if len(negated) != 2 || !ast.Equal(negated[0], negated[1]) {
		return root
	}

	a := indexTree(root)
	defer a.discard()
	return removeByID(root, nodeID(negated[1]))
}
