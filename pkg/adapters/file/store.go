package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/storyboard/pkg/domain"
)

// Store implements ports.DocumentStore using the local filesystem.
// It stores one document per artboard in a configured directory.
type Store struct {
	BasePath string
	Format   Format
}

// Option configures a Store.
type Option func(*Store)

// WithFormat selects the document encoding.
func WithFormat(f Format) Option {
	return func(s *Store) {
		s.Format = f
	}
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".storyboard/artboards".
func New(basePath string, opts ...Option) *Store {
	if basePath == "" {
		basePath = filepath.Join(".storyboard", "artboards")
	}
	s := &Store{BasePath: basePath, Format: FormatJSON}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) path(artboardID string) string {
	return filepath.Join(s.BasePath, artboardID+s.Format.Ext())
}

// Save persists the document atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, artboardID string, doc *domain.Document) error {
	if artboardID == "" {
		return fmt.Errorf("artboardID cannot be empty")
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure artboard directory: %w", err)
	}

	data, err := Encode(doc, s.Format)
	if err != nil {
		return err
	}

	// Same directory keeps the rename on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+artboardID+"-*"+s.Format.Ext())
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	destPath := s.path(artboardID)
	// os.Rename refuses to overwrite on Windows.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing document for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to document: %w", err)
	}
	return nil
}

// Load retrieves the document for an artboard.
func (s *Store) Load(ctx context.Context, artboardID string) (*domain.Document, error) {
	if artboardID == "" {
		return nil, fmt.Errorf("artboardID cannot be empty")
	}

	data, err := os.ReadFile(s.path(artboardID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrArtboardNotFound
		}
		return nil, fmt.Errorf("failed to read document file: %w", err)
	}

	doc, err := Decode(data, s.Format)
	if err != nil {
		return nil, fmt.Errorf("artboard %s: %w", artboardID, err)
	}
	doc.ArtboardID = artboardID
	return doc, nil
}

// Delete removes the document file.
func (s *Store) Delete(ctx context.Context, artboardID string) error {
	if artboardID == "" {
		return fmt.Errorf("artboardID cannot be empty")
	}

	err := os.Remove(s.path(artboardID))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete document file: %w", err)
	}
	return nil
}

// List returns all stored artboard IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list artboards: %w", err)
	}

	ext := s.Format.Ext()
	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ext || strings.HasPrefix(name, "tmp-") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ext))
	}
	sort.Strings(ids)
	return ids, nil
}

// ReadDocument loads a document from an arbitrary path, inferring the format from its extension.
func ReadDocument(path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Decode(data, FormatFromPath(path))
}

// WriteDocument writes a document to an arbitrary path, inferring the format from its extension.
func WriteDocument(path string, doc *domain.Document) error {
	data, err := Encode(doc, FormatFromPath(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
