package model

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a supported document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned when a file extension maps to no known
// document format.
type ErrUnsupportedFormat struct {
	Extension string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported model format %q (expected .json, .yaml or .yml)", e.Extension)
}

// FormatFromPath derives the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", &ErrUnsupportedFormat{Extension: ext}
	}
}

// Serialize encodes the model in the given format. JSON output is indented
// so serialized models stay diffable and round-trip through Parse.
func Serialize(m *DataModel, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(m, "", "  ")
	case FormatYAML:
		return yaml.Marshal(m)
	default:
		return nil, &ErrUnsupportedFormat{Extension: string(format)}
	}
}
