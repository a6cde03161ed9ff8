package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/julianhyde/filtex-sub001/ast"
	"github.com/julianhyde/filtex-sub001/internal/config"
	"github.com/julianhyde/filtex-sub001/internal/log"
)

var (
	version   = "dev"
	cfgFile   string
	debugMode bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "filtex",
	Short:   "Parse and summarize compact filter expressions",
	Long: `Filtex parses the compact filter syntax typed into search fields
(e.g. "[0,20],>30" or "-7d") into a canonical expression tree and
renders localized natural-language summaries of it. Input that does not
parse becomes a free-text match; parsing never fails.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if debugMode || os.Getenv("FILTEX_DEBUG") != "" {
			cleanup, err := log.Init(".filtex/debug.log")
			if err != nil {
				return fmt.Errorf("initializing debug log: %w", err)
			}
			cobra.OnFinalize(cleanup)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/filtex/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false,
		"write debug logs to .filtex/debug.log")
	rootCmd.PersistentFlags().StringP("locale", "l", "",
		"locale for summaries (en, de, fr, es)")

	// Bind flags to viper
	_ = viper.BindPFlag("summary.locale", rootCmd.PersistentFlags().Lookup("locale"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("summary.locale", defaults.Summary.Locale)
	viper.SetDefault("summary.include_label", defaults.Summary.IncludeLabel)
	viper.SetDefault("summary.cache_ttl", defaults.Summary.CacheTTL)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .filtex/config.yaml (current directory)
		// 2. ~/.config/filtex/config.yaml (user config)
		if _, err := os.Stat(".filtex/config.yaml"); err == nil {
			viper.SetConfigFile(".filtex/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "filtex"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .filtex/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".filtex/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// resolveField maps the --field/--kind flags to a family and label.
// --field wins when both are set; an unknown field name is an error so
// typos do not silently parse under the wrong grammar.
func resolveField(cmd *cobra.Command) (ast.Family, string, error) {
	fieldName, _ := cmd.Flags().GetString("field")
	kind, _ := cmd.Flags().GetString("kind")

	if fieldName != "" {
		f, ok := cfg.FieldByName(fieldName)
		if !ok {
			return ast.FamilyUnknown, "", fmt.Errorf("unknown field %q (configure it under fields: in the config file)", fieldName)
		}
		return f.Family(), f.Label, nil
	}

	fam := ast.ParseFamily(kind)
	if fam == ast.FamilyUnknown {
		return ast.FamilyUnknown, "", fmt.Errorf("invalid kind %q (must be \"number\", \"date\", \"location\" or \"string\")", kind)
	}
	return fam, "", nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
