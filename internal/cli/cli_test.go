// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/woozymasta/dirstd"
	"github.com/woozymasta/dirstd/internal/config"
)

const tinyStandardCSV = "Path,Indicativeness,Variations,Regex\n" +
	"src/,1,src,\n" +
	"docs/,1,docs|doc,\n"

const hardwareListing = `README.md
LICENSE
okh.toml
mech/frame.FCStd
elec/main.kicad_pcb
bom.csv
mod/gripper/README.md
mod/gripper/mech/jaw.FCStd
`

// runCLI executes the command tree with isolated streams and config lookup.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := &App{
		stdin:             strings.NewReader(stdin),
		stdout:            &stdout,
		stderr:            &stderr,
		configSearchPaths: []string{t.TempDir()},
	}

	cmd := NewRootCommand(app)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())

	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()

	var exit *ExitError
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, code, exit.Code)
}

func TestStandardsCommand(t *testing.T) {
	t.Parallel()

	out, _, err := runCLI(t, "", "standards")
	require.NoError(t, err)

	var entries []standardEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)

	assert.Equal(t, "osh", entries[0].Name)
	assert.False(t, entries[0].Default)
	assert.Equal(t, "unixish", entries[1].Name)
	assert.True(t, entries[1].Default)
	assert.InDelta(t, 1.0, entries[1].Sum, 1e-9)
	assert.Positive(t, entries[1].Records)
}

func TestStandardsCommandText(t *testing.T) {
	t.Parallel()

	out, _, err := runCLI(t, "", "standards", "-f", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "osh")
	assert.Contains(t, out, "unixish")
	assert.Contains(t, out, "records")
}

func TestRateBestFitFromStdin(t *testing.T) {
	t.Parallel()

	out, _, err := runCLI(t, hardwareListing, "rate", "-I", "-", "--best-fit")
	require.NoError(t, err)

	var results []dirstd.RatingResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)

	assert.Equal(t, "osh", results[0].Rating.Name)
	assert.Positive(t, results[0].Rating.Factor)
	assert.Nil(t, results[0].Coverage)
}

func TestRateIncludeCoverage(t *testing.T) {
	t.Parallel()

	out, _, err := runCLI(t, hardwareListing, "rate", "-I", "-", "-s", "osh", "--include-coverage")
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &raw))
	require.Len(t, raw, 1)

	coverage, ok := raw[0]["coverage"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "osh", coverage["std"])
	assert.Contains(t, coverage["modules"], "mod/gripper")
}

func TestRateAllText(t *testing.T) {
	t.Parallel()

	out, _, err := runCLI(t, hardwareListing, "rate", "-I", "-", "--all", "-f", "text")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "osh")
	assert.Contains(t, lines[1], "unixish")
}

func TestRateUnknownStandard(t *testing.T) {
	t.Parallel()

	_, _, err := runCLI(t, hardwareListing, "rate", "-I", "-", "-s", "nope")
	requireExitCode(t, err, ExitConfig)
	assert.ErrorIs(t, err, dirstd.ErrUnknownStandard)
}

func TestRateInvalidListing(t *testing.T) {
	t.Parallel()

	_, _, err := runCLI(t, "../outside\n", "rate", "-I", "-")
	requireExitCode(t, err, ExitData)
	assert.ErrorIs(t, err, dirstd.ErrInvalidListingPath)
}

func TestRateListingFile(t *testing.T) {
	t.Parallel()

	listing := filepath.Join(t.TempDir(), "listing.txt")
	writeFile(t, listing, hardwareListing)

	out, _, err := runCLI(t, "", "rate", "-I", listing, "-s", "osh")
	require.NoError(t, err)

	var results []dirstd.RatingResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "osh", results[0].Rating.Name)
}

func TestRateWalksProjectDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "README.md"), "# demo")
	writeFile(t, filepath.Join(dir, "src", "main.c"), "int main(void) { return 0; }")
	writeFile(t, filepath.Join(dir, ".git", "HEAD"), "ref: refs/heads/main")

	out, _, err := runCLI(t, "", "rate", "-C", dir, "-s", "unixish", "--include-coverage")
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &raw))
	require.Len(t, raw, 1)

	coverage := raw[0]["coverage"].(map[string]any)
	in := coverage["in"].(map[string]any)
	assert.Contains(t, in, "README")
	assert.Contains(t, in, "src/")
	assert.NotContains(t, out, ".git/HEAD")
}

func TestMapStandardFileYAMLToOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stdFile := filepath.Join(dir, "tiny.csv")
	writeFile(t, stdFile, tinyStandardCSV)
	outFile := filepath.Join(dir, "map.yaml")

	out, _, err := runCLI(t, "src/main.c\ndocs/guide.md\nnotes.txt\n",
		"map", "--no-builtin", "--standard-file", stdFile, "-I", "-", "-f", "yaml", "-o", outFile)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)

	var entries []struct {
		Name     string `yaml:"name"`
		Coverage struct {
			In  map[string][]string `yaml:"in"`
			Out []string            `yaml:"out"`
		} `yaml:"coverage"`
		Records []dirstd.Record `yaml:"records"`
	}
	require.NoError(t, yaml.Unmarshal(data, &entries))
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "tiny", e.Name)
	assert.Equal(t, []string{"src/main.c", "docs/guide.md", "notes.txt"}, e.Coverage.Out)
	assert.Contains(t, e.Coverage.In, "src/")
	assert.Contains(t, e.Coverage.In, "docs/")
	require.Len(t, e.Records, 2)
	assert.Equal(t, "docs/", e.Records[0].Path)
	assert.Equal(t, "src/", e.Records[1].Path)
}

func TestMapText(t *testing.T) {
	t.Parallel()

	out, _, err := runCLI(t, hardwareListing, "map", "-I", "-", "-s", "osh", "-f", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "osh")
	assert.Contains(t, out, "mech/frame.FCStd")
	assert.Contains(t, out, "module")
	assert.Contains(t, out, "mod/gripper")
}

func TestNoStandardsLoaded(t *testing.T) {
	t.Parallel()

	_, _, err := runCLI(t, "", "standards", "--no-builtin")
	requireExitCode(t, err, ExitData)
	assert.ErrorIs(t, err, dirstd.ErrInvalidCatalog)
}

func TestInvalidIgnoreRegex(t *testing.T) {
	t.Parallel()

	_, _, err := runCLI(t, hardwareListing, "rate", "-I", "-", "-i", "(")
	requireExitCode(t, err, ExitConfig)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestSelectFlagsMutuallyExclusive(t *testing.T) {
	t.Parallel()

	_, _, err := runCLI(t, hardwareListing, "rate", "-I", "-", "--all", "--best-fit")
	assert.Error(t, err)
}

func TestWatchRejectsInputListing(t *testing.T) {
	t.Parallel()

	_, _, err := runCLI(t, "", "watch", "-I", "-")
	requireExitCode(t, err, ExitConfig)
}

func TestConfigFileFlag(t *testing.T) {
	t.Parallel()

	cfgFile := filepath.Join(t.TempDir(), "cfg.yaml")
	writeFile(t, cfgFile, "format: yaml\n")

	out, _, err := runCLI(t, "", "standards", "--config", cfgFile)
	require.NoError(t, err)

	var entries []standardEntry
	require.NoError(t, yaml.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "osh", entries[0].Name)
}

func TestFlagOverridesConfigFile(t *testing.T) {
	t.Parallel()

	cfgFile := filepath.Join(t.TempDir(), "cfg.yaml")
	writeFile(t, cfgFile, "format: yaml\n")

	out, _, err := runCLI(t, "", "standards", "--config", cfgFile, "-f", "json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
}

func TestVerboseLogsToStderr(t *testing.T) {
	t.Parallel()

	_, stderr, err := runCLI(t, hardwareListing, "rate", "-I", "-", "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "catalog ready")
}
