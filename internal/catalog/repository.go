package catalog

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/modekit-ai/modekit/internal/defs"
)

// systemCatalogFile is the document shape of the bundled catalog.
type systemCatalogFile struct {
	Modes      []ModeDefinition     `yaml:"modes"`
	Categories []CategoryDefinition `yaml:"categories"`
}

// userCatalogFile is the document shape of the user override catalog.
type userCatalogFile struct {
	CustomModes      []ModeDefinition     `yaml:"customModes"`
	CustomCategories []CategoryDefinition `yaml:"customCategories"`
}

// Repository loads the system and user catalogs. The system catalog is
// mandatory; the user catalog is best-effort and degrades to empty.
type Repository struct {
	systemDoc   []byte
	systemRules fs.FS
	userDir     string
}

// NewRepository creates a Repository over the embedded system catalog and the
// user catalog under the home directory.
func NewRepository() (*Repository, error) {
	doc, err := EmbeddedCatalogDocument()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSystemCatalog, err)
	}
	rules, err := EmbeddedRules()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSystemCatalog, err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		// No home directory means no user catalog; the system catalog
		// alone keeps the tool usable.
		slog.Warn("cannot determine home directory, skipping user catalog", "error", err)
		home = ""
	}

	userDir := ""
	if home != "" {
		userDir = filepath.Join(home, defs.UserConfigDir)
	}

	return NewRepositoryWithSources(doc, rules, userDir), nil
}

// NewRepositoryWithSources creates a Repository over explicit sources.
// userDir may be empty to disable the user catalog entirely.
func NewRepositoryWithSources(systemDoc []byte, systemRules fs.FS, userDir string) *Repository {
	return &Repository{
		systemDoc:   systemDoc,
		systemRules: systemRules,
		userDir:     userDir,
	}
}

// LoadSystemCatalog parses and schema-validates the bundled catalog. Any
// failure is fatal: the tool cannot proceed without its defaults.
func (r *Repository) LoadSystemCatalog() (*Catalog, error) {
	var doc systemCatalogFile
	if err := yaml.Unmarshal(r.systemDoc, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse system catalog: %w: %v", ErrSystemCatalog, ErrInvalidYAML, err)
	}

	cat := &Catalog{
		Modes:      doc.Modes,
		Categories: doc.Categories,
		Source:     ProvenanceSystem,
		Rules:      r.systemRules,
		RulesPath:  "embedded:rules",
	}
	tagCatalog(cat)

	if err := validateCatalog(cat, "modes", "categories"); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSystemCatalog, err)
	}
	return cat, nil
}

// LoadUserCatalog reads the user override catalog. A missing file is not an
// error; an unreadable, unparsable, or schema-invalid file is logged as a
// warning and replaced with an empty catalog so the tool stays usable.
func (r *Repository) LoadUserCatalog() (*Catalog, error) {
	rulesDir := ""
	if r.userDir != "" {
		rulesDir = filepath.Join(r.userDir, defs.UserRulesDir)
	}

	empty := &Catalog{Source: ProvenanceCustom, RulesPath: rulesDir}
	if rulesDir != "" {
		empty.Rules = os.DirFS(rulesDir)
	}

	if r.userDir == "" {
		return empty, nil
	}

	path := filepath.Join(r.userDir, defs.UserCatalogFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return empty, nil
		}
		slog.Warn("cannot read user catalog, ignoring it", "path", path, "error", err)
		return empty, nil
	}

	var doc userCatalogFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		slog.Warn("user catalog is not valid YAML, ignoring it", "path", path, "error", err)
		return empty, nil
	}

	cat := &Catalog{
		Modes:      doc.CustomModes,
		Categories: doc.CustomCategories,
		Source:     ProvenanceCustom,
		Rules:      empty.Rules,
		RulesPath:  rulesDir,
	}
	tagCatalog(cat)

	if err := validateCatalog(cat, "customModes", "customCategories"); err != nil {
		slog.Warn("user catalog failed validation, ignoring it", "path", path, "error", err)
		return empty, nil
	}
	return cat, nil
}

// tagCatalog stamps the catalog's provenance onto every definition and the
// rule origin onto every rule.
func tagCatalog(c *Catalog) {
	for i := range c.Modes {
		c.Modes[i].Source = c.Source
		for j := range c.Modes[i].Rules {
			c.Modes[i].Rules[j].Origin = c.Source
		}
	}
	for i := range c.Categories {
		c.Categories[i].Source = c.Source
	}
}
