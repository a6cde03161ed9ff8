package ast

// Walk visits n and its descendants in preorder. It stops early if fn
// returns false for any node.
func Walk(n Node, fn func(Node) bool) {
	walk(n, fn)
}

func walk(n Node, fn func(Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	if c, ok := n.(*Combinator); ok {
		if !walk(c.Left, fn) {
			return false
		}
		return walk(c.Right, fn)
	}
	return true
}

// CountNegations counts negated Comparison and Between predicates in the
// tree. Family leaves carry their own Is flags but do not participate:
// the merge machinery only coalesces Comparison nodes, and the lone
// negation rule is defined over the mergeable predicate kinds.
func CountNegations(n Node) int {
	count := 0
	Walk(n, func(n Node) bool {
		switch v := n.(type) {
		case *Comparison:
			if !v.Is {
				count++
			}
		case *Between:
			if !v.Is {
				count++
			}
		}
		return true
	})
	return count
}
