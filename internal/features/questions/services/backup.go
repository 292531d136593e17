package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"faq-studio/internal/core"
	"faq-studio/internal/features/questions/models"
)

// BackupFile mirrors stored questions into a JSON array file so the database
// can be rebuilt from it.
type BackupFile struct {
	path   string
	logger *core.Logger
	mu     sync.Mutex
}

// NewBackupFile creates a backup mirror at path
func NewBackupFile(path string, logger *core.Logger) *BackupFile {
	return &BackupFile{path: path, logger: logger}
}

// Path returns the backup file location
func (b *BackupFile) Path() string {
	return b.path
}

// EnsureExists creates the file, and its directory, holding an empty array
func (b *BackupFile) EnsureExists() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := os.Stat(b.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat backup file: %w", err)
	}

	return writeJSONFile(b.path, []models.BackupEntry{})
}

// Read returns all entries. A missing, empty or malformed file reads as no entries.
func (b *BackupFile) Read() ([]models.BackupEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.read(), nil
}

// Append adds one entry to the end of the file
func (b *BackupFile) Append(entry models.BackupEntry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := append(b.read(), entry)
	if err := writeJSONFile(b.path, entries); err != nil {
		return err
	}
	b.logger.Debug("Appended question to backup", "id", entry.ID, "entries", len(entries))
	return nil
}

// Remove drops every entry with id and reports whether any was removed
func (b *BackupFile) Remove(id int64) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.read()
	kept := entries[:0]
	for _, entry := range entries {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}

	if len(kept) == len(entries) {
		return false, nil
	}
	if err := writeJSONFile(b.path, kept); err != nil {
		return false, err
	}
	b.logger.Debug("Removed question from backup", "id", id, "entries", len(kept))
	return true, nil
}

func (b *BackupFile) read() []models.BackupEntry {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			b.logger.Warn("Failed to read backup file", "path", b.path, "error", err)
		}
		return []models.BackupEntry{}
	}

	data = bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(data) == 0 {
		return []models.BackupEntry{}
	}

	var entries []models.BackupEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		b.logger.Warn("Backup file is not a JSON array of questions", "path", b.path, "error", err)
		return []models.BackupEntry{}
	}
	if entries == nil {
		entries = []models.BackupEntry{}
	}
	return entries
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// writeJSONFile writes v as indented JSON through a temp file and rename
func writeJSONFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
