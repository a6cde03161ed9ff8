package transform

import "github.com/julianhyde/filtex-sub001/ast"

// arena is an indexed table of the nodes in one tree. It exists so a
// cleanup step can address a node by a small integer id for removal;
// the table and the ids it hands out are local to one normalization
// call and carry no semantic meaning.
type arena struct {
	nodes []ast.Node // index 0 unused; ids start at 1
}

// indexTree stamps preorder ids onto the tree and records each node.
func indexTree(root ast.Node) *arena {
	a := &arena{nodes: make([]ast.Node, 1, 8)}
	ast.Walk(root, func(n ast.Node) bool {
		stampID(n, len(a.nodes))
		a.nodes = append(a.nodes, n)
		return true
	})
	return a
}

// discard drops the table. Ids already stamped on nodes are inert:
// equality and rendering ignore them.
func (a *arena) discard() {
	a.nodes = nil
}

// stampID assigns an id to a node. Ids are the one mutable aspect of an
// otherwise-immutable tree and are only written inside a single
// pipeline invocation.
func stampID(n ast.Node, id int) {
	switch v := n.(type) {
	case *ast.Comparison:
		v.ID = id
	case *ast.Between:
		v.ID = id
	case *ast.Combinator:
		v.ID = id
	case *ast.MatchesAdvanced:
		v.ID = id
	case *ast.DateWithin:
		v.ID = id
	case *ast.LocationWithin:
		v.ID = id
	case *ast.LocationBox:
		v.ID = id
	}
}

// nodeID reads a node's stamped id.
func nodeID(n ast.Node) int {
	switch v := n.(type) {
	case *ast.Comparison:
		return v.ID
	case *ast.Between:
		return v.ID
	case *ast.Combinator:
		return v.ID
	case *ast.MatchesAdvanced:
		return v.ID
	case *ast.DateWithin:
		return v.ID
	case *ast.LocationWithin:
		return v.ID
	case *ast.LocationBox:
		return v.ID
	default:
		return 0
	}
}

// removeByID rebuilds the tree without the node carrying id. When a
// combinator loses a child, the surviving child takes its place.
func removeByID(n ast.Node, id int) ast.Node {
	c, ok := n.(*ast.Combinator)
	if !ok {
		if nodeID(n) == id {
			return nil
		}
		return n
	}
	if c.ID == id {
		return nil
	}
	left := removeByID(c.Left, id)
	right := removeByID(c.Right, id)
	if left == nil {
		return right
	}
	if right == nil {
		return left
	}
	if left == c.Left && right == c.Right {
		return c
	}
	return &ast.Combinator{ID: c.ID, Op: c.Op, Left: left, Right: right}
}
