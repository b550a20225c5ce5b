// Package data reads and writes the JSON snapshot files the chat answers
// from.
package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"lojachat/internal/model"
)

const ProductsFile = "diravena-products.json"

var policyFiles = map[model.PolicyKind]string{
	model.PolicyTerms:   "diravena-terms.json",
	model.PolicyPrivacy: "diravena-privacy.json",
	model.PolicyRefund:  "diravena-refund.json",
}

// PolicyFile returns the file name used for a policy document.
func PolicyFile(kind model.PolicyKind) string {
	return policyFiles[kind]
}

// LoadDir reads every snapshot file in dir. A missing or malformed file
// leaves its slot nil; LoadDir itself never fails.
func LoadDir(dir string, logger zerolog.Logger) *model.Snapshot {
	snapshot := &model.Snapshot{Policies: make(map[model.PolicyKind]*model.PolicyDocument)}

	var catalog model.ProductCatalog
	if err := readJSON(filepath.Join(dir, ProductsFile), &catalog); err != nil {
		logger.Warn().Err(err).Str("file", ProductsFile).Msg("Erro ao carregar dados")
	} else {
		snapshot.Catalog = &catalog
		logger.Info().Int("products", len(catalog.Products)).Msg("catálogo carregado")
	}

	for _, kind := range model.PolicyKinds {
		name := policyFiles[kind]
		var doc model.PolicyDocument
		if err := readJSON(filepath.Join(dir, name), &doc); err != nil {
			logger.Warn().Err(err).Str("file", name).Msg("Erro ao carregar dados")
			continue
		}
		snapshot.Policies[kind] = &doc
		logger.Info().Str("policy", string(kind)).Bool("sections", doc.HasSections()).Msg("política carregada")
	}

	return snapshot
}

func readJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// WriteCatalog stores the product snapshot in dir.
func WriteCatalog(dir string, catalog *model.ProductCatalog) error {
	return writeJSON(filepath.Join(dir, ProductsFile), catalog)
}

// WritePolicy stores one policy document in dir.
func WritePolicy(dir string, kind model.PolicyKind, doc *model.PolicyDocument) error {
	name, ok := policyFiles[kind]
	if !ok {
		return fmt.Errorf("unknown policy kind %q", kind)
	}
	return writeJSON(filepath.Join(dir, name), doc)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
