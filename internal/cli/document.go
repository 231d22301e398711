package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/storyboard"
	"github.com/aretw0/storyboard/pkg/adapters/file"
	"github.com/aretw0/storyboard/pkg/domain"
)

// ArtboardFromPath derives an artboard id from a document file name.
func ArtboardFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ImportFile reads a JSON or YAML document into the engine. An empty
// artboardID falls back to the document's own id, then to the file name.
func ImportFile(eng *storyboard.Engine, path, artboardID string, mode domain.ImportMode) (string, domain.ImportResult, error) {
	doc, err := file.ReadDocument(path)
	if err != nil {
		return "", domain.ImportResult{}, err
	}
	if artboardID == "" {
		artboardID = doc.ArtboardID
	}
	if artboardID == "" {
		artboardID = ArtboardFromPath(path)
	}
	return artboardID, eng.Studio().Import(artboardID, *doc, mode), nil
}

// ExportFile writes an artboard to path; the extension picks JSON or YAML.
func ExportFile(eng *storyboard.Engine, artboardID, path string) error {
	doc := eng.Studio().Export(artboardID)
	if len(doc.States) == 0 {
		return fmt.Errorf("%w: %s", domain.ErrArtboardNotFound, artboardID)
	}
	return file.WriteDocument(path, &doc)
}

// OpenArtboard resolves a command argument. Paths to existing documents are
// imported; anything else is loaded from the configured store.
func OpenArtboard(ctx context.Context, eng *storyboard.Engine, arg string) (string, error) {
	if ext := strings.ToLower(filepath.Ext(arg)); ext == ".json" || ext == ".yaml" || ext == ".yml" {
		id, _, err := ImportFile(eng, arg, "", domain.ImportReplace)
		return id, err
	}
	if _, err := eng.Load(ctx, arg, domain.ImportReplace); err != nil {
		return "", err
	}
	return arg, nil
}
