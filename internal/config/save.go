// Package config provides configuration types, defaults, and persistence for filtex.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveFields updates the fields section in the config file.
// This preserves comments and formatting in other sections by using yaml.Node.
func SaveFields(configPath string, fields []FieldConfig) error {
	// Read existing file content
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	// Parse into yaml.Node to preserve comments
	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	fieldsNode := buildFieldsNode(fields)

	// Update or create the fields section
	if doc.Kind == 0 {
		// Empty or new file - create document structure
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: "fields"},
						fieldsNode,
					},
				},
			},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind == yaml.MappingNode {
			// Find and replace fields key, or append it
			found := false
			for i := 0; i < len(root.Content)-1; i += 2 {
				if root.Content[i].Value == "fields" {
					root.Content[i+1] = fieldsNode
					found = true
					break
				}
			}
			if !found {
				root.Content = append(root.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: "fields"},
					fieldsNode,
				)
			}
		}
	}

	// Marshal back to YAML
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	// Write atomically (write to temp, then rename)
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".filtex.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(buf.Bytes()); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// buildFieldsNode creates a yaml.Node representing the fields array.
func buildFieldsNode(fields []FieldConfig) *yaml.Node {
	node := &yaml.Node{
		Kind:    yaml.SequenceNode,
		Content: make([]*yaml.Node, 0, len(fields)),
	}

	for _, f := range fields {
		fieldNode := &yaml.Node{
			Kind: yaml.MappingNode,
			Content: []*yaml.Node{
				{Kind: yaml.ScalarNode, Value: "name"},
				{Kind: yaml.ScalarNode, Value: f.Name},
			},
		}

		if f.Label != "" {
			fieldNode.Content = append(fieldNode.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: "label"},
				&yaml.Node{Kind: yaml.ScalarNode, Value: f.Label},
			)
		}

		fieldNode.Content = append(fieldNode.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "kind"},
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.Kind},
		)

		node.Content = append(node.Content, fieldNode)
	}

	return node
}

// UpdateField replaces the field at index and saves.
func UpdateField(configPath string, index int, newField FieldConfig, allFields []FieldConfig) error {
	if index < 0 || index >= len(allFields) {
		return fmt.Errorf("field index %d out of range (have %d fields)", index, len(allFields))
	}

	updated := make([]FieldConfig, len(allFields))
	copy(updated, allFields)
	updated[index] = newField

	return SaveFields(configPath, updated)
}

// DeleteField removes the field at index and saves.
func DeleteField(configPath string, index int, allFields []FieldConfig) error {
	if index < 0 || index >= len(allFields) {
		return fmt.Errorf("field index %d out of range (have %d fields)", index, len(allFields))
	}

	updated := make([]FieldConfig, 0, len(allFields)-1)
	for i, f := range allFields {
		if i != index {
			updated = append(updated, f)
		}
	}

	return SaveFields(configPath, updated)
}

// AddField appends a new field to the catalog and saves.
func AddField(configPath string, newField FieldConfig, allFields []FieldConfig) error {
	fields := append(allFields, newField)
	return SaveFields(configPath, fields)
}
