package catalog

import (
	"embed"
	"fmt"
	"io/fs"
)

// Bundled system catalog: the definition document plus its rule file tree.
//
//go:embed assets
var embeddedAssets embed.FS

const (
	embeddedCatalogPath = "assets/catalog.yaml"
	embeddedRulesPath   = "assets/rules"
)

// EmbeddedCatalogDocument returns the raw bundled catalog document.
func EmbeddedCatalogDocument() ([]byte, error) {
	data, err := embeddedAssets.ReadFile(embeddedCatalogPath)
	if err != nil {
		return nil, fmt.Errorf("read embedded catalog: %w", err)
	}
	return data, nil
}

// EmbeddedRules returns the bundled rule file tree as an fs.FS rooted at the
// rules directory, so rule paths resolve directly against it.
func EmbeddedRules() (fs.FS, error) {
	sub, err := fs.Sub(embeddedAssets, embeddedRulesPath)
	if err != nil {
		return nil, fmt.Errorf("open embedded rules: %w", err)
	}
	return sub, nil
}
