package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdSubcommands(t *testing.T) {
	root := rootCmd()

	for _, name := range []string{"serve", "presets", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestServeCmdFlags(t *testing.T) {
	flags := serveCmd().Flags()

	for _, name := range []string{"addr", "env-file", "data-dir", "db-url", "log-level", "cache-ttl"} {
		assert.NotNil(t, flags.Lookup(name), "missing flag %s", name)
	}
	assert.Equal(t, ":8080", flags.Lookup("addr").DefValue)
}

func TestPresetsImportExportRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	dbURL := "sqlite:///" + filepath.Join(tmp, "hrms.db")

	yamlPath := filepath.Join(tmp, "presets.yaml")
	doc := "presets:\n  - name: Engineering in progress\n    query: status=IN_PROGRESS&department=engineering\n"
	require.NoError(t, os.WriteFile(yamlPath, []byte(doc), 0o644))

	var out bytes.Buffer
	root := rootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"presets", "import", yamlPath, "--data-dir", tmp, "--db-url", dbURL})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "imported Engineering in progress")

	out.Reset()
	root = rootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"presets", "export", "--data-dir", tmp, "--db-url", dbURL})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "department=engineering&status=IN_PROGRESS",
		"exported query is canonical")
}
