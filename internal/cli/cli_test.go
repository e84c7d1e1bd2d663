package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, store string) string {
	t.Helper()
	dir := t.TempDir()
	storePath := filepath.Join(dir, "projects.json")
	require.NoError(t, os.WriteFile(storePath, []byte(store), 0644))
	cfgPath := filepath.Join(dir, "portfolio.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("store:\n  path: "+storePath+"\n"), 0644))
	return cfgPath
}

func TestValidateCommand(t *testing.T) {
	cfg := writeConfig(t, `[{"id":"a","images":["x.jpg"]},{"id":"b"}]`)

	out, err := runCLI(t, "validate", "--config", cfg)

	require.NoError(t, err)
	assert.Contains(t, out, "2 project(s) OK")
}

func TestValidateCommandReportsProblems(t *testing.T) {
	cfg := writeConfig(t, `[{"id":"a"},{"id":"a"}]`)

	out, err := runCLI(t, "validate", "--config", cfg)

	assert.Error(t, err)
	assert.Contains(t, out, "duplicate id")
}

func TestValidateCommandLoadError(t *testing.T) {
	cfg := writeConfig(t, `[`)

	_, err := runCLI(t, "validate", "--config", cfg)

	assert.ErrorContains(t, err, "loading projects")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}
