package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/klauern/envsync/internal/logging"
	"github.com/klauern/envsync/internal/model"
)

// Importer reads variable sets from serialized files.
type Importer struct {
	format Format
}

// NewImporter creates an Importer for the given format.
func NewImporter(format Format) *Importer {
	return &Importer{format: format}
}

// Import decodes a flat mapping of names to values from r. Values must be
// strings; nested structures and non-string scalars are rejected by the
// decoder, never coerced.
func (i *Importer) Import(r io.Reader) (model.VariableSet, error) {
	vars := model.VariableSet{}

	var err error
	switch i.format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&vars)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&vars)
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&vars)
	default:
		return nil, fmt.Errorf("unsupported format: %s", i.format)
	}
	if err != nil {
		return nil, err
	}

	logging.Debug("variables imported",
		logging.Operation("import"),
		logging.Count(len(vars)),
	)
	return vars, nil
}

// ImportFile opens and decodes path.
func (i *Importer) ImportFile(path string) (model.VariableSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	defer f.Close()

	vars, err := i.Import(f)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	return vars, nil
}
