// Package export serializes variable sets to and from files for the
// import/export flows. The wire shape is always a flat mapping of variable
// name to string value, regardless of format.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/klauern/envsync/internal/logging"
	"github.com/klauern/envsync/internal/model"
)

// Format represents the serialization format for import/export files.
type Format string

const (
	// FormatJSON is the default: a flat JSON object written with 4-space
	// indentation for human readability.
	FormatJSON Format = "json"
	// FormatYAML serializes the mapping as YAML.
	FormatYAML Format = "yaml"
	// FormatTOML serializes the mapping as TOML.
	FormatTOML Format = "toml"
)

// IsValid returns true if the format is recognized.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTOML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// AllFormats returns all supported formats.
func AllFormats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat parses a string into a Format.
func ParseFormat(s string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "yml" {
		normalized = "yaml"
	}
	format := Format(normalized)
	if !format.IsValid() {
		return "", fmt.Errorf("unsupported format %q (valid: json, yaml, toml)", s)
	}
	return format, nil
}

// DetectFormat guesses the format from a file extension, defaulting to JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Error reports a malformed import file or an unwritable export target.
// It aborts the surrounding operation before any store mutation occurs.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("serializing %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Exporter writes variable sets in a configured format.
type Exporter struct {
	format Format
}

// New creates an Exporter for the given format.
func New(format Format) *Exporter {
	return &Exporter{format: format}
}

// Export writes vars to w in the configured format.
func (e *Exporter) Export(vars model.VariableSet, w io.Writer) error {
	logging.Debug("serializing variables",
		logging.Operation("export"),
		logging.Count(len(vars)),
	)

	switch e.format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		return enc.Encode(vars)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(vars); err != nil {
			_ = enc.Close()
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(vars)
	default:
		return fmt.Errorf("unsupported format: %s", e.format)
	}
}

// ExportFile writes vars to path, creating or truncating the file.
func (e *Exporter) ExportFile(vars model.VariableSet, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &Error{Path: path, Err: err}
	}
	if err := e.Export(vars, f); err != nil {
		_ = f.Close()
		return &Error{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &Error{Path: path, Err: err}
	}

	logging.Info("variables exported",
		logging.Path(path),
		logging.Count(len(vars)),
	)
	return nil
}
