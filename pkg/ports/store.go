package ports

import (
	"context"

	"github.com/aretw0/storyboard/pkg/domain"
)

// DocumentStore defines the interface for persisting artboard documents.
type DocumentStore interface {
	// Save persists the document for a given artboard ID, replacing any previous one.
	Save(ctx context.Context, artboardID string, doc *domain.Document) error

	// Load retrieves the document for a given artboard ID.
	// Returns domain.ErrArtboardNotFound if the artboard does not exist.
	Load(ctx context.Context, artboardID string) (*domain.Document, error)

	// Delete removes the document for a given artboard ID.
	Delete(ctx context.Context, artboardID string) error

	// List returns the IDs of all stored artboards.
	List(ctx context.Context) ([]string, error)
}
