// Package config provides configuration types and defaults for filtex.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianhyde/filtex-sub001/ast"
	"github.com/julianhyde/filtex-sub001/internal/log"
)

// FieldConfig describes one filterable field: its machine name, the
// label used in summaries, and the value kind that picks the grammar.
type FieldConfig struct {
	Name  string `mapstructure:"name"`
	Label string `mapstructure:"label"`
	Kind  string `mapstructure:"kind"` // "number", "date", "location" or "string"
}

// Family resolves the configured kind string to an expression family.
func (f FieldConfig) Family() ast.Family {
	return ast.ParseFamily(f.Kind)
}

// SummaryConfig holds summary rendering options.
type SummaryConfig struct {
	Locale       string        `mapstructure:"locale"`        // BCP 47 code, e.g. "en", "de-AT"
	IncludeLabel bool          `mapstructure:"include_label"` // prefix summaries with the field label
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`     // how long rendered summaries stay cached
}

// Config holds all configuration options for filtex.
type Config struct {
	Summary SummaryConfig `mapstructure:"summary"`
	Fields  []FieldConfig `mapstructure:"fields"`
}

// DefaultFields returns the field catalog used when none is configured.
func DefaultFields() []FieldConfig {
	return []FieldConfig{
		{Name: "price", Label: "Price", Kind: "number"},
		{Name: "quantity", Label: "Quantity", Kind: "number"},
		{Name: "created", Label: "Created", Kind: "date"},
		{Name: "location", Label: "Location", Kind: "location"},
	}
}

// FieldByName looks up a configured field by its machine name.
func (c Config) FieldByName(name string) (FieldConfig, bool) {
	for _, f := range c.GetFields() {
		if f.Name == name {
			return f, true
		}
	}
	return FieldConfig{}, false
}

// GetFields returns the configured fields, or DefaultFields() if none configured.
func (c Config) GetFields() []FieldConfig {
	if len(c.Fields) > 0 {
		return c.Fields
	}
	return DefaultFields()
}

// ValidateFields checks the field catalog for errors.
// Returns nil if fields are valid or empty (will use defaults).
func ValidateFields(fields []FieldConfig) error {
	if len(fields) == 0 {
		return nil // Will use defaults
	}

	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return fmt.Errorf("field %d: name is required", i)
		}
		if seen[f.Name] {
			return fmt.Errorf("field %d (%s): duplicate name", i, f.Name)
		}
		seen[f.Name] = true

		if f.Family() == ast.FamilyUnknown {
			return fmt.Errorf("field %d (%s): invalid kind %q (must be \"number\", \"date\", \"location\" or \"string\")", i, f.Name, f.Kind)
		}
	}
	return nil
}

// Validate checks the whole configuration for errors.
func (c Config) Validate() error {
	if c.Summary.CacheTTL < 0 {
		return fmt.Errorf("summary.cache_ttl must not be negative, got %v", c.Summary.CacheTTL)
	}
	return ValidateFields(c.Fields)
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Summary: SummaryConfig{
			Locale:       "en",
			IncludeLabel: true,
			CacheTTL:     10 * time.Minute,
		},
		Fields: DefaultFields(),
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Filtex Configuration

# Summary rendering settings
summary:
  locale: en           # BCP 47 locale for summaries: en, de, fr, es
  include_label: true  # Prefix summaries with the field label ("Price is ...")
  cache_ttl: 10m       # How long rendered summaries stay cached

# Filterable fields - each field has a kind that picks the filter grammar
fields:
  - name: price
    label: Price
    kind: number

  - name: quantity
    label: Quantity
    kind: number

  - name: created
    label: Created
    kind: date

  - name: location
    label: Location
    kind: location

# Field options:
#   name: Machine name used to look the field up (required)
#   label: Display label used in summaries
#   kind: number, date, location or string
#
# Filter syntax by kind:
#   number:   30    >30    >=10    [0,20]    (0,20)    1,2,3    not 5
#   date:     2024-01-15    today    yesterday    -7d    +3m    [2024-01-01,2024-06-30]
#   location: "paris"    within 10km of 59.33,18.06    box 59.2,17.9,59.4,18.2
#
# Any input that does not parse becomes a free-text match; no error is shown.
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write the template
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
