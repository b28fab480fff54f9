package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndLoadSince(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "metrics.jsonl")
	require.NoError(t, Append(path, SessionMetrics{
		SessionID: "a",
		Date:      "2026-02-20",
		Turns:     5,
		RuleHits:  map[string]int{"interest": 2, "fallback": 3},
	}))
	require.NoError(t, Append(path, SessionMetrics{SessionID: "b", Date: "2026-02-10", Turns: 3}))

	since := time.Date(2026, 2, 15, 0, 0, 0, 0, time.Local)
	items, err := LoadSince(path, since)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "a", items[0].SessionID)
	assert.Equal(t, 5, items[0].Turns)
	assert.Equal(t, map[string]int{"interest": 2, "fallback": 3}, items[0].RuleHits)
	assert.NotEmpty(t, items[0].RecordedAt)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadSince_SkipsBadLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "metrics.jsonl")
	body := "not json\n\n{\"session_id\":\"ok\",\"date\":\"2026-03-01\",\"turns\":2}\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))

	items, err := LoadSince(path, time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "ok", items[0].SessionID)
}

func TestLoadSince_MissingFile(t *testing.T) {
	t.Parallel()

	items, err := LoadSince(filepath.Join(t.TempDir(), "none.jsonl"), time.Now())
	require.NoError(t, err)
	assert.Empty(t, items)
}
