package director

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// WriteScript writes a script as JSON for .json paths and YAML otherwise.
func WriteScript(script *Script, path string) error {
	data, err := MarshalScript(script, path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadScript reads a YAML or JSON script, chosen by file extension.
func ReadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	script, err := ParseScript(data, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return script, nil
}

func MarshalScript(script *Script, path string) ([]byte, error) {
	if isJSON(path) {
		return json.MarshalIndent(script, "", "  ")
	}
	return yaml.Marshal(script)
}

// ParseScript decodes script data; name only selects the format.
func ParseScript(data []byte, name string) (*Script, error) {
	var script Script
	if isJSON(name) {
		if err := json.Unmarshal(data, &script); err != nil {
			return nil, err
		}
	} else {
		if err := yaml.Unmarshal(data, &script); err != nil {
			return nil, err
		}
	}

	if script.Version == "" {
		script.Version = ScriptVersion
	}
	return &script, nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
