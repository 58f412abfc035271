package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleXML = filepath.Join("..", "internal", "generate", "testdata", "xml")

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, inputDir, logLevel = "", "", ""
	buildOutput, buildTemplates, buildQuiet = "", "", false
	jsonRefid, jsonCompact = "", false
	queryFile, queryTimeout = "", 10*time.Second

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBuildCommand(t *testing.T) {
	outDir := t.TempDir()
	out, err := run(t, "build", "-i", sampleXML, "-o", outDir, "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "Index Loaded")
	assert.Contains(t, out, "6 pages")
	assert.FileExists(t, filepath.Join(outDir, "Classes", "classengine_1_1Engine.md"))
}

func TestBuildCommandWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "site")
	cfgPath := filepath.Join(dir, "godoxy.yaml")
	content := "inputDir: " + sampleXML + "\noutputDir: " + outDir + "\nfileExt: mdx\nlogLevel: error\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0644))

	_, err := run(t, "build", "--config", cfgPath, "--quiet")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "Modules", "group__core.mdx"))
}

func TestJSONCommand(t *testing.T) {
	out, err := run(t, "json", "-i", sampleXML, "--log-level", "error", "--refid", "namespaceengine")
	require.NoError(t, err)

	var tree map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	assert.Equal(t, "engine", tree["name"])
	assert.Len(t, tree["children"], 3)
}

func TestFindCommand(t *testing.T) {
	out, err := run(t, "find", "-i", sampleXML, "--log-level", "error", "classengine_1_1Engine")
	require.NoError(t, err)
	assert.Contains(t, out, `"url": "Classes/classengine_1_1Engine.md"`)

	_, err = run(t, "find", "-i", sampleXML, "--log-level", "error", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to find node from cache by refid nope")
}

func TestQueryCommand(t *testing.T) {
	out, err := run(t, "query", "-i", sampleXML, "--log-level", "error", `search("Engine", "class").length`)
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestQueryCommandZeroTimeout(t *testing.T) {
	out, err := run(t, "query", "-i", sampleXML, "--log-level", "error", "--timeout", "0", `find("namespaceengine").name`)
	require.NoError(t, err)
	assert.Equal(t, "\"engine\"\n", out)
}

func TestMissingInput(t *testing.T) {
	_, err := run(t, "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input directory")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "godoxy dev")
}
