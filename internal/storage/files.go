// Package storage persists article records to disk and mirrors them to
// an optional archive database.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"otrscraper/internal/models"
)

// Store writes one raw-text file and one metadata file per article into
// the output directory.
type Store struct {
	basePath string
}

// NewStore creates a store rooted at basePath. The directory is expected
// to exist; see PrepareEnvironment.
func NewStore(basePath string) *Store {
	return &Store{basePath: basePath}
}

// PrepareEnvironment resets the output directory: existing contents are
// destroyed and the directory is recreated empty. Safe to call repeatedly
// and when no prior directory exists.
func PrepareEnvironment(basePath string) error {
	if err := os.RemoveAll(basePath); err != nil {
		return fmt.Errorf("failed to remove output directory: %w", err)
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	return nil
}

// SaveRaw writes the article body text keyed by record id.
func (s *Store) SaveRaw(article *models.Article) error {
	path := filepath.Join(s.basePath, fmt.Sprintf("%d_raw.txt", article.ID))

	if err := os.WriteFile(path, []byte(article.Text), 0644); err != nil {
		return fmt.Errorf("failed to write raw text: %w", err)
	}

	return nil
}

// SaveMeta writes the structured metadata (id, url, title, author, date)
// keyed by record id.
func (s *Store) SaveMeta(article *models.Article) error {
	jsonData, err := json.MarshalIndent(article, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	path := filepath.Join(s.basePath, fmt.Sprintf("%d_meta.json", article.ID))

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	return nil
}
