package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/julianhyde/filtex-sub001/ast"
	"github.com/julianhyde/filtex-sub001/filtex"
)

var parseCmd = &cobra.Command{
	Use:   "parse [expression]",
	Short: "Parse a filter expression and print the normalized tree",
	Long: `Parse a filter expression under a field's grammar and print the
canonical tree. Input that does not parse is shown as a free-text
match, mirroring how the engine treats it.

Expressions that begin with "-" (relative date offsets like -7d) must
follow a "--" separator so they are not read as flags.`,
	Example: `  filtex parse --kind number "[0,20],>30"
  filtex parse --kind date -- "-7d"
  filtex parse --field location 'within 10km of 59.33,18.06'`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringP("field", "f", "", "configured field name (picks kind and label)")
	parseCmd.Flags().StringP("kind", "k", "number", "value kind when no field is given")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	family, _, err := resolveField(cmd)
	if err != nil {
		return err
	}

	engine := filtex.New(0)
	node := engine.Parse(family, args[0], nil)
	printNode(cmd.OutOrStdout(), node, 0)

	if token, ok := filtex.TokenValue(node); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "token: %s\n", token)
	}
	return nil
}

// printNode writes an indented one-line-per-node view of the tree.
func printNode(w io.Writer, n ast.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := n.(type) {
	case *ast.Comparison:
		fmt.Fprintf(w, "%scomparison %s%s %s\n", indent, negPrefix(v.Is), v.Op, joinValues(v.Values))
	case *ast.Between:
		fmt.Fprintf(w, "%sbetween %s%s %s .. %s\n", indent, negPrefix(v.Is), v.Bounds, v.Low, v.High)
	case *ast.Combinator:
		fmt.Fprintf(w, "%scombinator %s\n", indent, v.Op)
		printNode(w, v.Left, depth+1)
		printNode(w, v.Right, depth+1)
	case *ast.MatchesAdvanced:
		fmt.Fprintf(w, "%smatches-advanced %q\n", indent, v.Text)
	case *ast.DateWithin:
		fmt.Fprintf(w, "%sdate-within %s%s\n", indent, negPrefix(v.Is), dateWindow(v))
	case *ast.LocationWithin:
		fmt.Fprintf(w, "%slocation-within %s%v%s of %v,%v\n", indent, negPrefix(v.Is), v.Radius, v.Unit, v.Center.Y(), v.Center.X())
	case *ast.LocationBox:
		fmt.Fprintf(w, "%slocation-box %s%v,%v .. %v,%v\n", indent, negPrefix(v.Is),
			v.Bound.Min.Y(), v.Bound.Min.X(), v.Bound.Max.Y(), v.Bound.Max.X())
	default:
		fmt.Fprintf(w, "%s<empty>\n", indent)
	}
}

func negPrefix(is bool) string {
	if is {
		return ""
	}
	return "not "
}

func joinValues(values []ast.Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, ",")
}

func dateWindow(v *ast.DateWithin) string {
	sign := "+"
	if v.Past {
		sign = "-"
	}
	return fmt.Sprintf("%s%d%s", sign, v.Amount, v.Unit)
}
