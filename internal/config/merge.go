package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names.
const (
	keyLogging = "logging"
	keyTable   = "table"
	keyStore   = "store"
	keyViewer  = "viewer"
)

// knownTopLevelKeys lists the YAML keys that correspond to Config fields.
// Keys not in this list are silently ignored during merge.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keyLogging: true,
	keyTable:   true,
	keyStore:   true,
	keyViewer:  true,
}

// MergeYAML loads a YAML file and merges each top-level section present in
// it onto target. Fields missing from a section keep target's values;
// sections missing from the file are left unchanged.
func MergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in MergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", overlayPath, err)
	}

	var overlay map[string]interface{}
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing config YAML from %s: %w", overlayPath, err)
	}

	// Empty or comment-only file: nothing to merge.
	if len(overlay) == 0 {
		return nil
	}

	for key, value := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}

		// Re-marshal the single section so it can be decoded onto the
		// strongly-typed target field.
		sectionBytes, marshalErr := yaml.Marshal(value)
		if marshalErr != nil {
			return fmt.Errorf("re-marshalling config section %q: %w", key, marshalErr)
		}

		if err = unmarshalSection(target, key, sectionBytes); err != nil {
			return fmt.Errorf("applying config section %q: %w", key, err)
		}
	}

	return nil
}

// unmarshalSection decodes raw YAML onto the field of target named by key.
func unmarshalSection(target *Config, key string, data []byte) error {
	switch key {
	case keyLogging:
		return yaml.Unmarshal(data, &target.Logging)
	case keyTable:
		return yaml.Unmarshal(data, &target.Table)
	case keyStore:
		return yaml.Unmarshal(data, &target.Store)
	case keyViewer:
		return yaml.Unmarshal(data, &target.Viewer)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}
