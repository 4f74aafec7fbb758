package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

// GenerateSchemaFile writes a JSON schema for the configuration next to the
// config file. Called automatically when the default config is created.
func GenerateSchemaFile() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("get config directory: %w", err)
	}
	schemaFile := filepath.Join(configDir, "config.schema.json")

	data, err := SchemaJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(schemaFile, data, filePerm); err != nil {
		return fmt.Errorf("write schema file: %w", err)
	}
	return nil
}

// SchemaJSON returns the configuration JSON schema as pretty-printed bytes.
func SchemaJSON() ([]byte, error) {
	r := new(jsonschema.Reflector)
	schema := r.Reflect(&Config{})

	schema.ID = "https://github.com/mattmireles/Hyperchat-sub000/config.schema.json"
	schema.Title = "Hyperchat Configuration"
	schema.Description = "Configuration schema for hyperchat, a side-by-side multi-AI chat browser"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}
