package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"

	"faq-studio/internal/core"
)

// DefaultCategories seed a new categories file
var DefaultCategories = []string{"tahakkuk", "tahsilat", "diger"}

// CategoryStore keeps the list of known category labels in a JSON file
type CategoryStore struct {
	path   string
	logger *core.Logger
	mu     sync.Mutex
}

// NewCategoryStore creates a category store at path
func NewCategoryStore(path string, logger *core.Logger) *CategoryStore {
	return &CategoryStore{path: path, logger: logger}
}

// EnsureExists creates the file with the default categories when missing
func (s *CategoryStore) EnsureExists() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat categories file: %w", err)
	}

	if err := writeJSONFile(s.path, DefaultCategories); err != nil {
		return err
	}
	s.logger.Debug("Created categories file", "path", s.path)
	return nil
}

// Load returns the stored categories, or the defaults when the file is
// missing, empty or malformed
func (s *CategoryStore) Load() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Add appends category when it is new and reports whether it was added
func (s *CategoryStore) Add(category string) (bool, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	categories := s.load()
	if slices.Contains(categories, category) {
		return false, nil
	}

	categories = append(categories, category)
	if err := writeJSONFile(s.path, categories); err != nil {
		return false, err
	}
	s.logger.Info("Category added", "category", category, "total", len(categories))
	return true, nil
}

func (s *CategoryStore) load() []string {
	data, err := os.ReadFile(s.path)
	if err == nil {
		data = bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
		if len(data) > 0 {
			var categories []string
			if err := json.Unmarshal(data, &categories); err == nil && categories != nil {
				return categories
			}
			s.logger.Warn("Categories file is not a JSON array of strings", "path", s.path)
		}
	}
	return slices.Clone(DefaultCategories)
}
