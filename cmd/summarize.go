package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/julianhyde/filtex-sub001/filtex"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [expression]",
	Short: "Render the localized natural-language summary of an expression",
	Example: `  filtex summarize --kind number "[0,20],>30"
  filtex summarize --field price --locale de "1,2,3"
  filtex summarize --kind date -- "-7d"`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().StringP("field", "f", "", "configured field name (picks kind and label)")
	summarizeCmd.Flags().StringP("kind", "k", "number", "value kind when no field is given")
	summarizeCmd.Flags().Bool("no-label", false, "omit the field label prefix")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	family, label, err := resolveField(cmd)
	if err != nil {
		return err
	}

	includeLabel := cfg.Summary.IncludeLabel && label != ""
	if noLabel, _ := cmd.Flags().GetBool("no-label"); noLabel {
		includeLabel = false
	}

	engine := filtex.New(cfg.Summary.CacheTTL)
	sentence := engine.Summarize(cmd.Context(), family, args[0], filtex.SummaryOptions{
		Locale:       cfg.Summary.Locale,
		FieldLabel:   label,
		IncludeLabel: includeLabel,
	})

	fmt.Fprintln(cmd.OutOrStdout(), sentence)
	return nil
}
