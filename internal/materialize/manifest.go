package materialize

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/modekit-ai/modekit/internal/catalog"
)

// manifestDocument is the shape of the .modekitmodes file.
type manifestDocument struct {
	CustomModes []manifestEntry `yaml:"customModes"`
}

// manifestEntry is one selected mode's exported configuration.
type manifestEntry struct {
	Slug               string               `yaml:"slug"`
	Name               string               `yaml:"name"`
	RoleDefinition     string               `yaml:"roleDefinition"`
	CustomInstructions string               `yaml:"customInstructions,omitempty"`
	Groups             []catalog.Capability `yaml:"groups,omitempty"`
	Source             catalog.Provenance   `yaml:"source"`
}

// renderManifest encodes the manifest document for the selected modes. The
// mode description is exported as roleDefinition.
func renderManifest(modes []catalog.ModeDefinition) ([]byte, error) {
	doc := manifestDocument{CustomModes: make([]manifestEntry, len(modes))}
	for i, m := range modes {
		doc.CustomModes[i] = manifestEntry{
			Slug:               m.Slug,
			Name:               m.Name,
			RoleDefinition:     m.Description,
			CustomInstructions: m.Instructions,
			Groups:             m.Groups,
			Source:             m.Source,
		}
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return data, nil
}
