package file

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/storyboard/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format is the on-disk encoding of a document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// ParseFormat maps a name to a Format, defaulting to JSON.
func ParseFormat(name string) Format {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "yaml", "yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) Format {
	return ParseFormat(filepath.Ext(path))
}

// Encode serializes a document. YAML output is derived from the JSON form so
// both formats share field names and the trigger envelope.
func Encode(doc *domain.Document, format Format) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	if format != FormatYAML {
		return data, nil
	}

	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to convert document: %w", err)
	}
	out, err := yaml.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal yaml document: %w", err)
	}
	return out, nil
}

// Decode parses a document. Decoding failures wrap domain.ErrInvalidDocument.
func Decode(data []byte, format Format) (*domain.Document, error) {
	if format == FormatYAML {
		var tree any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
		}
		converted, err := json.Marshal(tree)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
		}
		data = converted
	}

	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}
	if doc.Version == 0 {
		doc.Version = domain.DocumentVersion
	}
	return &doc, nil
}
