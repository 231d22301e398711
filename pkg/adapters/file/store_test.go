package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/storyboard/pkg/adapters/file"
	"github.com/aretw0/storyboard/pkg/domain"
	"github.com/aretw0/storyboard/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunDocumentStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_YAMLContract(t *testing.T) {
	ports.RunDocumentStoreContract(t, file.New(t.TempDir(), file.WithFormat(file.FormatYAML)))
}

func TestFileStore_AtomicSaveLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	doc := &domain.Document{Version: domain.DocumentVersion}
	require.NoError(t, store.Save(ctx, "board", doc))
	require.NoError(t, store.Save(ctx, "board", doc))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "board.json", entries[0].Name())
}

func TestFileStore_CorruptDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0644))

	_, err := file.New(dir).Load(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
}

func TestReadWriteDocument_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yml")
	doc := &domain.Document{
		Version:    domain.DocumentVersion,
		ArtboardID: "a",
		States: []domain.AnimationState{
			{ID: "s1", Name: "Idle", Trigger: domain.AutoTrigger{Timing: 300}, HoldTime: 100},
		},
	}

	require.NoError(t, file.WriteDocument(path, doc))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "type: auto")

	loaded, err := file.ReadDocument(path)
	require.NoError(t, err)
	require.Len(t, loaded.States, 1)
	assert.Equal(t, domain.AutoTrigger{Timing: 300}, loaded.States[0].Trigger)
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, file.FormatYAML, file.ParseFormat("yml"))
	assert.Equal(t, file.FormatYAML, file.FormatFromPath("x/board.yaml"))
	assert.Equal(t, file.FormatJSON, file.ParseFormat("toml"))
}
