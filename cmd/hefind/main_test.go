package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-lines/internal/config"
	"github.com/cwbudde/algo-lines/internal/logger"
	"github.com/cwbudde/algo-lines/lines"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	color.NoColor = true
	os.Exit(m.Run())
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--color", "never"))
	err := root.Execute()
	return out.String(), err
}

func writeSynth(t *testing.T, name string, args ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	_, err := execute(t, append([]string{"synth", path}, args...)...)
	require.NoError(t, err)
	return path
}

func TestFindPrintsPositiveFilesOnly(t *testing.T) {
	positive := writeSynth(t, "positive.txt")
	negative := writeSynth(t, "negative.txt", "--lines", "5875.6404")

	out, err := execute(t, "find", positive, negative)
	require.NoError(t, err)
	assert.Equal(t, positive+"\n", out)
}

func TestFindVerbose(t *testing.T) {
	positive := writeSynth(t, "positive.txt", "--noise", "0.005")

	out, err := execute(t, "find", "--verbose", "-t", "1", "--jobs", "2", positive)
	require.NoError(t, err)

	rows := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(rows), 3)
	assert.Equal(t, positive, rows[0])
	for _, row := range rows[1:] {
		assert.Contains(t, row, " angstrom; S/N ")
		assert.True(t, strings.HasPrefix(row, "   line "), row)
	}
}

func TestFindSkipsUnreadableFiles(t *testing.T) {
	positive := writeSynth(t, "positive.txt")
	missing := filepath.Join(t.TempDir(), "missing.txt")

	out, err := execute(t, "find", missing, positive)
	require.NoError(t, err)
	assert.Equal(t, positive+"\n", out)

	_, err = execute(t, "find", missing)
	assert.Error(t, err)
}

func TestFindMinMatchesFlag(t *testing.T) {
	negative := writeSynth(t, "single.txt", "--lines", "5875.6404")

	out, err := execute(t, "find", "--min-matches", "1", negative)
	require.NoError(t, err)
	assert.Equal(t, negative+"\n", out)
}

func TestFindRejectsInvalidThreshold(t *testing.T) {
	positive := writeSynth(t, "positive.txt")

	_, err := execute(t, "find", "-t", "0", positive)
	assert.ErrorIs(t, err, lines.ErrInvalidConfig)
}

func TestFindWithConfigTable(t *testing.T) {
	sodium := writeSynth(t, "sodium.txt", "--lines", "5889.95,5895.92", "--width", "1", "--gaussian")
	cfgPath := filepath.Join(t.TempDir(), "hefind.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
[[tables]]
name = "sodium"
wavelengths = [5889.95, 5895.92]
`), 0o644))

	out, err := execute(t, "find", "--config", cfgPath, sodium)
	require.NoError(t, err)
	assert.Equal(t, sodium+"\n", out)

	_, err = execute(t, "find", "--config", cfgPath, "--table", "neon", sodium)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestLinesCommand(t *testing.T) {
	positive := writeSynth(t, "positive.txt")

	out, err := execute(t, "lines", positive)
	require.NoError(t, err)
	assert.Contains(t, out, "INDEX")
	assert.Contains(t, out, "4471.50")
	assert.Contains(t, out, "5875.64")
	assert.Contains(t, out, "2 lines, 2 matches: He present")
}

func TestStatsCommand(t *testing.T) {
	a := writeSynth(t, "a.txt")
	b := writeSynth(t, "b.txt", "--samples", "1000")

	out, err := execute(t, "stats", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "3700.00")
	assert.Contains(t, out, "8000.00")
	assert.Contains(t, out, "all: 3000 samples")
}

func TestSynthRejectsBadGrid(t *testing.T) {
	_, err := execute(t, "synth", filepath.Join(t.TempDir(), "x.txt"), "--samples", "1")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "hefind "+Version)
}

func TestUnknownLogLevel(t *testing.T) {
	_, err := execute(t, "version", "--log-level", "loud")
	assert.Error(t, err)
}
