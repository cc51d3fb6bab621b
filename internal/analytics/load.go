package analytics

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Load reads a payload bundle from path. Files ending in .yaml or .yml are
// decoded as YAML and everything else as JSON. The bundle is normalized
// before it is returned.
func Load(fs afero.Fs, path string) (*Bundle, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("analytics: read %s: %w", path, err)
	}

	bundle, err := Decode(data, Format(path))
	if err != nil {
		return nil, fmt.Errorf("analytics: decode %s: %w", path, err)
	}
	return bundle, nil
}

// Format returns "yaml" or "json" depending on the extension of path.
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

// Decode parses a bundle in the given format and normalizes it.
func Decode(data []byte, format string) (*Bundle, error) {
	var bundle Bundle

	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &bundle); err != nil {
			return nil, err
		}
	case "json":
		if err := json.Unmarshal(data, &bundle); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported payload format %q", format)
	}

	bundle.Normalize()
	return &bundle, nil
}
