package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/julianhyde/filtex-sub001/ast"
	"github.com/julianhyde/filtex-sub001/internal/config"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Manage the filterable field catalog",
	Long: `List and edit the fields that filter expressions can target. Edits
are written back to the config file; comments and other sections are
preserved.`,
	Example: `  filtex fields list
  filtex fields add rating --kind number --label Rating
  filtex fields label price Cost
  filtex fields remove quantity`,
}

var fieldsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured fields",
	Args:  cobra.NoArgs,
	RunE:  runFieldsList,
}

var fieldsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a field to the catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runFieldsAdd,
}

var fieldsRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove a field from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runFieldsRemove,
}

var fieldsLabelCmd = &cobra.Command{
	Use:   "label [name] [label]",
	Short: "Change the label a field carries in summaries",
	Args:  cobra.ExactArgs(2),
	RunE:  runFieldsLabel,
}

func init() {
	fieldsAddCmd.Flags().StringP("kind", "k", "number", "value kind: number, date, location or string")
	fieldsAddCmd.Flags().String("label", "", "display label used in summaries")

	fieldsCmd.AddCommand(fieldsListCmd, fieldsAddCmd, fieldsRemoveCmd, fieldsLabelCmd)
	rootCmd.AddCommand(fieldsCmd)
}

// configFilePath returns the file field edits are written to. When no
// config file was loaded, edits create one in the current directory.
func configFilePath() string {
	if path := viper.ConfigFileUsed(); path != "" {
		return path
	}
	return ".filtex/config.yaml"
}

func runFieldsList(cmd *cobra.Command, args []string) error {
	for _, f := range cfg.GetFields() {
		label := f.Label
		if label == "" {
			label = "-"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", f.Name, f.Kind, label)
	}
	return nil
}

func runFieldsAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	kind, _ := cmd.Flags().GetString("kind")
	label, _ := cmd.Flags().GetString("label")

	if _, exists := cfg.FieldByName(name); exists {
		return fmt.Errorf("field %q already exists", name)
	}
	field := config.FieldConfig{Name: name, Label: label, Kind: kind}
	if field.Family() == ast.FamilyUnknown {
		return fmt.Errorf("invalid kind %q (must be \"number\", \"date\", \"location\" or \"string\")", kind)
	}

	if err := config.AddField(configFilePath(), field, cfg.GetFields()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "added field %s (%s)\n", name, kind)
	return nil
}

func runFieldsRemove(cmd *cobra.Command, args []string) error {
	name := args[0]
	fields := cfg.GetFields()

	idx := fieldIndex(fields, name)
	if idx < 0 {
		return fmt.Errorf("unknown field %q", name)
	}
	if err := config.DeleteField(configFilePath(), idx, fields); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed field %s\n", name)
	return nil
}

func runFieldsLabel(cmd *cobra.Command, args []string) error {
	name, label := args[0], args[1]
	fields := cfg.GetFields()

	idx := fieldIndex(fields, name)
	if idx < 0 {
		return fmt.Errorf("unknown field %q", name)
	}
	field := fields[idx]
	field.Label = label
	if err := config.UpdateField(configFilePath(), idx, field, fields); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "field %s labeled %q\n", name, label)
	return nil
}

func fieldIndex(fields []config.FieldConfig, name string) int {
	for i, f := range fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}
