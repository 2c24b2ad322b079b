// Package curated loads the matcher's curated product table.
package curated

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/skin"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/validation"
)

//go:embed default.yaml
var defaultTable []byte

// Default returns the embedded table.
func Default() (skin.Table, error) {
	t, err := Decode(bytes.NewReader(defaultTable))
	if err != nil {
		return skin.Table{}, fmt.Errorf("embedded curated table: %w", err)
	}
	return t, nil
}

// Load reads the table at path, or the embedded table when path is empty.
func Load(path string) (skin.Table, error) {
	if path == "" {
		return Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return skin.Table{}, fmt.Errorf("open curated table: %w", err)
	}
	defer func() { _ = f.Close() }()

	t, err := Decode(f)
	if err != nil {
		return skin.Table{}, fmt.Errorf("curated table %s: %w", path, err)
	}
	return t, nil
}

// Decode parses and validates a YAML table. Unknown keys are rejected.
func Decode(r io.Reader) (skin.Table, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var t skin.Table
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return skin.Table{}, errors.New("table is empty")
		}
		return skin.Table{}, fmt.Errorf("parse: %w", err)
	}
	if err := validation.Struct(&t); err != nil {
		return skin.Table{}, fmt.Errorf("validate: %w", err)
	}
	if t.Len() == 0 {
		return skin.Table{}, errors.New("table is empty")
	}
	return t, nil
}
