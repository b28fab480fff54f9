package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradus-nz/gradus/internal/catalog"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoad_DefaultsWhenFileIsEmpty(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: json
chat:
  transcript_path: /tmp/out.txt
  metrics_enabled: false
tables:
  courses:
    - name: Arts
      threshold: 150
    - name: Science
      threshold: 280
  careers:
    - field: Arts
      titles: [Illustrator, Curator]
    - field: Science
      titles: [Chemist]
  faq:
    - question: When are exams?
      answer: November.
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/tmp/out.txt", cfg.Chat.TranscriptPath)
	assert.False(t, cfg.Chat.MetricsEnabled)
	assert.Equal(t, []catalog.Field{"Arts", catalog.Science}, cfg.Tables.Fields())

	titles, ok := cfg.Tables.CareersFor("Arts")
	require.True(t, ok)
	assert.Equal(t, []string{"Illustrator", "Curator"}, titles)
	assert.Equal(t, []catalog.FAQEntry{{Question: "When are exams?", Answer: "November."}}, cfg.Tables.FAQ)
}

func TestLoad_PartialTablesKeepDefaultFAQ(t *testing.T) {
	path := writeConfig(t, `
tables:
  courses:
    - name: Arts
      threshold: 150
  careers:
    - field: Arts
      titles: [Curator]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, catalog.Default().FAQ, cfg.Tables.FAQ)
}

func TestLoad_InconsistentTables(t *testing.T) {
	path := writeConfig(t, `
tables:
  courses:
    - name: Arts
      threshold: 150
  careers:
    - field: Music
      titles: [Pianist]
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrInconsistentTables)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GRADUS_LOGGING_LEVEL", "error")
	t.Setenv("GRADUS_CHAT_METRICS_PATH", "/var/lib/gradus/metrics.jsonl")

	cfg, err := Load(writeConfig(t, "logging:\n  level: debug\n"))
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, "/var/lib/gradus/metrics.jsonl", cfg.Chat.MetricsPath)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_MissingDefaultFileIsFine(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, catalog.Default(), cfg.Tables)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, loadEnvFile(filepath.Join(dir, "missing.env")))

	t.Setenv("GRADUS_CHAT_TRANSCRIPT_PATH", "")
	good := filepath.Join(dir, "good.env")
	require.NoError(t, os.WriteFile(good, []byte("GRADUS_CHAT_TRANSCRIPT_PATH=from-env.txt\n"), 0600))
	require.NoError(t, loadEnvFile(good))
	assert.Equal(t, "", os.Getenv("GRADUS_CHAT_TRANSCRIPT_PATH"))

	require.NoError(t, os.Unsetenv("GRADUS_CHAT_TRANSCRIPT_PATH"))
	require.NoError(t, loadEnvFile(good))
	assert.Equal(t, "from-env.txt", os.Getenv("GRADUS_CHAT_TRANSCRIPT_PATH"))

	bad := filepath.Join(dir, "bad.env")
	require.NoError(t, os.WriteFile(bad, []byte("GRADUS_LOGGING_LEVEL=\"debug\n"), 0600))
	err := loadEnvFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load")
}
