package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/storyboard"
	"github.com/aretw0/storyboard/internal/config"
	"github.com/aretw0/storyboard/internal/testutils"
	"github.com/aretw0/storyboard/internal/logging"
	"github.com/aretw0/storyboard/pkg/domain"
)

func newEngine(t *testing.T, opts ...EngineOption) *storyboard.Engine {
	t.Helper()
	eng, err := CreateEngine(config.Default(), logging.NewNop(), append([]EngineOption{Manual()}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })
	return eng
}

func seed(t *testing.T, eng *storyboard.Engine) (string, string) {
	return testutils.SeedArtboard(t, eng.Studio(), "hero")
}

func TestLoadConfig_Overrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "storyboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\nplayback:\n  frame_rate: 30\n"), 0644))

	cfg, err := LoadConfig(Options{ConfigPath: path, LogLevel: "debug", Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30, cfg.Playback.FrameRate)
	assert.Equal(t, config.BackendFile, cfg.Store.Backend)
	assert.Equal(t, dir, cfg.Store.Path)

	_, err = LoadConfig(Options{ConfigPath: filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	ctx := context.Background()
	assert.False(t, NewLogger("").Enabled(ctx, slog.LevelDebug))
	assert.False(t, NewLogger("off").Enabled(ctx, slog.LevelDebug))
	assert.True(t, NewLogger("debug").Enabled(ctx, slog.LevelDebug))
}

func TestImportExportFile(t *testing.T) {
	eng := newEngine(t)
	seed(t, eng)

	dir := t.TempDir()
	out := filepath.Join(dir, "hero.yaml")
	require.NoError(t, ExportFile(eng, "hero", out))
	assert.ErrorIs(t, ExportFile(eng, "ghost", filepath.Join(dir, "ghost.json")), domain.ErrArtboardNotFound)

	other := newEngine(t)
	id, res, err := ImportFile(other, out, "copy", domain.ImportReplace)
	require.NoError(t, err)
	assert.Equal(t, "copy", id)
	assert.Equal(t, 2, res.States)
	assert.Equal(t, 1, res.Transitions)
	assert.Equal(t, 800.0, other.Timeline("copy").TotalDuration)

	id, err = OpenArtboard(context.Background(), other, out)
	require.NoError(t, err)
	assert.Equal(t, "hero", id)
}

func TestArtboardFromPath(t *testing.T) {
	assert.Equal(t, "intro", ArtboardFromPath("/tmp/boards/intro.json"))
	assert.Equal(t, "intro", ArtboardFromPath("intro.yml"))
}

func TestPlay_Timeline(t *testing.T) {
	var buf bytes.Buffer
	eng := newEngine(t, WithHooks(EventPrinter(&buf)))
	seed(t, eng)

	res, err := Play(context.Background(), eng.Player("hero"), PlayOptions{
		ElementID: "box",
		Property:  domain.PropX,
		FrameRate: 50,
	})
	require.NoError(t, err)
	assert.True(t, res.Finished)
	assert.Equal(t, 40, res.Frames)
	require.NotEmpty(t, res.Samples)
	assert.Equal(t, 0.0, res.Samples[0])
	assert.InDelta(t, 100.0, res.Samples[len(res.Samples)-1], 1e-9)

	assert.Contains(t, buf.String(), ">>> play")
	assert.Contains(t, buf.String(), ">>> finish")
	assert.Contains(t, buf.String(), "segment_enter")
}

func TestPlay_LoopIsBounded(t *testing.T) {
	eng := newEngine(t)
	seed(t, eng)
	player := eng.Player("hero")
	player.SetLoop(true)

	res, err := Play(context.Background(), player, PlayOptions{FrameRate: 10, MaxDuration: 2000})
	require.NoError(t, err)
	assert.False(t, res.Finished)
	assert.Equal(t, 20, res.Frames)
}

func TestPlay_Chain(t *testing.T) {
	var buf bytes.Buffer
	eng := newEngine(t, WithHooks(EventPrinter(&buf)))
	a, b := seed(t, eng)
	chainID, ok := eng.Studio().CreateChain("hero", "Intro", a)
	require.True(t, ok)
	_, ok = eng.Studio().AddChainStep(chainID, b, nil)
	require.True(t, ok)

	res, err := Play(context.Background(), eng.Player("hero"), PlayOptions{ChainID: chainID, FrameRate: 10})
	require.NoError(t, err)
	assert.True(t, res.Finished)
	assert.Contains(t, buf.String(), "chain_start")
	assert.Contains(t, buf.String(), "chain_end")

	_, err = Play(context.Background(), eng.Player("hero"), PlayOptions{ChainID: "nope"})
	assert.ErrorIs(t, err, domain.ErrChainNotFound)
}

func TestPlay_Cancelled(t *testing.T) {
	eng := newEngine(t)
	seed(t, eng)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Play(ctx, eng.Player("hero"), PlayOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}
