package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCLIEnv(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(base, "db", "splice.db"))
	t.Setenv("STORAGE_TYPE", "local")
	t.Setenv("STORAGE_LOCAL_PATH", filepath.Join(base, "media"))
	t.Setenv("EVENTS_BACKEND", "none")
	t.Setenv("FFPROBE_PATH", filepath.Join(base, "no-ffprobe"))
	return base
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer

	got := renderTable(&buf, []string{"A", "B"}, [][]string{{"1", "x"}, {"2"}}, []columnAlignment{alignRight})

	assert.Contains(t, got, "| A | B |")
	assert.Contains(t, got, "| 1 | x |")
	assert.Empty(t, renderTable(&buf, nil, nil, nil))
}

func TestDetectMIMEType(t *testing.T) {
	dir := t.TempDir()

	png := filepath.Join(dir, "logo.png")
	require.NoError(t, os.WriteFile(png, []byte("x"), 0o644))
	mt, err := detectMIMEType(png)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mt)

	// no extension: sniffed from the GIF magic
	sniffed := filepath.Join(dir, "poster")
	require.NoError(t, os.WriteFile(sniffed, []byte("GIF89a....."), 0o644))
	mt, err = detectMIMEType(sniffed)
	require.NoError(t, err)
	assert.Equal(t, "image/gif", mt)
}

func TestScriptCommand(t *testing.T) {
	// Arrange
	base := setupCLIEnv(t)
	path := filepath.Join(base, "edit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
steps:
  - add: {name: intro.mp4, type: video, duration: "00:10"}
  - add: {name: logo.png, type: image, duration: "00:05"}
  - remove: {clip: 7}
`), 0o644))

	// Act
	out, err := runCLI(t, "script", path)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "clip 2 at 0:10.0")
	assert.Contains(t, out, "error:")
	assert.Contains(t, out, "logo.png")
	assert.Contains(t, out, "total 0:15.0  play-head 0:00.0  2 clips")
}

func TestScriptCommand_Strict(t *testing.T) {
	base := setupCLIEnv(t)
	path := filepath.Join(base, "edit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - remove: {clip: 1}\n"), 0o644))

	_, err := runCLI(t, "script", "--strict", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 steps failed")
}

func TestScriptCommand_InvalidFile(t *testing.T) {
	base := setupCLIEnv(t)
	path := filepath.Join(base, "edit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps: []\n"), 0o644))

	_, err := runCLI(t, "script", path)

	require.Error(t, err)
}

func TestMediaCommands(t *testing.T) {
	// Arrange
	base := setupCLIEnv(t)
	file := filepath.Join(base, "logo.png")
	require.NoError(t, os.WriteFile(file, []byte("pixels"), 0o644))

	// Act
	_, err := runCLI(t, "media", "import", file)
	require.NoError(t, err)

	out, err := runCLI(t, "media", "list", "--json")
	require.NoError(t, err)

	// Assert
	var records []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Type     string `json:"type"`
		Duration string `json:"duration"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "logo.png", records[0].Name)
	assert.Equal(t, "image", records[0].Type)
	assert.Equal(t, "00:05", records[0].Duration)

	table, err := runCLI(t, "media", "list")
	require.NoError(t, err)
	assert.Contains(t, table, "logo.png")

	out, err = runCLI(t, "media", "rm", records[0].ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "removed "))

	out, err = runCLI(t, "media", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No media in the catalog")
}

func TestMediaImport_RejectsUnsupportedType(t *testing.T) {
	base := setupCLIEnv(t)
	file := filepath.Join(base, "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("hello"), 0o644))

	out, err := runCLI(t, "media", "import", file)

	require.Error(t, err)
	assert.Contains(t, out, "Unsupported file type")
}

func TestMediaRemove_InvalidID(t *testing.T) {
	setupCLIEnv(t)

	_, err := runCLI(t, "media", "rm", "not-a-uuid")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid media id")
}

func TestMigrateCommand(t *testing.T) {
	setupCLIEnv(t)

	out, err := runCLI(t, "migrate", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "20250101_001")

	out, err = runCLI(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Migrations completed successfully")

	out, err = runCLI(t, "migrate", "--status")
	require.NoError(t, err)
	assert.Contains(t, out, "Create media_records")
	assert.Contains(t, out, "No pending migrations")
}
