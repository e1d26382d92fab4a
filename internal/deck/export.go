// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deck

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/vocab-deck/pkg/types"
)

// ExportYAML writes the cards to path as a YAML list.
func ExportYAML(path string, cards []types.Card) error {
	data, err := yaml.Marshal(cards)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the cards to path as an indented JSON array.
func ExportJSON(path string, cards []types.Card) error {
	if cards == nil {
		cards = []types.Card{}
	}
	data, err := json.MarshalIndent(cards, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Export picks the encoding from the file extension: .json writes JSON,
// anything else YAML.
func Export(path string, cards []types.Card) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ExportJSON(path, cards)
	}
	return ExportYAML(path, cards)
}
