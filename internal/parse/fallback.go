package parse

import "github.com/julianhyde/filtex-sub001/ast"

// ToAdvanced wraps unparseable input as a free-text MatchesAdvanced
// node. If the previous (pre-edit) tree is itself already an advanced
// node, its stored text and id are reused so that intentional free text
// survives incidental re-parses; otherwise the node gets id 1. The
// result is canonical as-is and needs no transform.
func ToAdvanced(text string, prev ast.Node) *ast.MatchesAdvanced {
	if adv, ok := prev.(*ast.MatchesAdvanced); ok {
		return &ast.MatchesAdvanced{ID: adv.ID, Text: adv.Text}
	}
	return &ast.MatchesAdvanced{ID: 1, Text: text}
}
