package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradus-nz/gradus/internal/catalog"
	"github.com/gradus-nz/gradus/internal/config"
)

func TestRunInit_WritesLoadableConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "gradus", "config.yaml")
	var out bytes.Buffer
	require.NoError(t, runInit(strings.NewReader(""), &out, path, false))
	assert.Contains(t, out.String(), "Wrote config")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, catalog.Extended(), cfg.Tables)
	assert.Equal(t, "frost_chat.txt", cfg.Chat.TranscriptPath)
}

func TestRunInit_ExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keep: me\n"), 0600))

	var out bytes.Buffer
	require.NoError(t, runInit(strings.NewReader("n\n"), &out, path, false))
	assert.Contains(t, out.String(), "Aborted")
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep: me\n", string(b))

	require.NoError(t, runInit(strings.NewReader("y\n"), &out, path, false))
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Chemist")

	require.NoError(t, os.WriteFile(path, []byte("keep: me\n"), 0600))
	require.NoError(t, runInit(strings.NewReader(""), &out, path, true))
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "keep: me")
}
