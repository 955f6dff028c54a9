package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/unistroke/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp(&stdout, &stderr)
	err := app.Run(append([]string{"unistroke"}, args...))
	return stdout.String(), err
}

func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestParsePoints(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    core.Stroke
		wantErr bool
	}{
		{
			name:  "single line",
			input: "0,0 10,5 20,10",
			want:  core.Stroke{{X: 0, Y: 0}, {X: 10, Y: 5}, {X: 20, Y: 10}},
		},
		{
			name:  "newlines and negatives",
			input: "-1.5,2\n3,-4e1\n",
			want:  core.Stroke{{X: -1.5, Y: 2}, {X: 3, Y: -40}},
		},
		{name: "empty", input: "   ", wantErr: true},
		{name: "missing comma", input: "0,0 10", wantErr: true},
		{name: "bad x", input: "a,0", wantErr: true},
		{name: "bad y", input: "0,b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePoints(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		name   string
		result *core.Result
		want   string
	}{
		{name: "exact match", result: &core.Result{Distance: 0, Score: math.MaxFloat64}, want: "exact"},
		{name: "close match", result: &core.Result{Distance: 0.04, Score: 25}, want: "25.0000"},
		{name: "undefined rotation", result: &core.Result{Distance: math.Pi, Score: 1 / math.Pi}, want: "0.3183"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatScore(tt.result))
		})
	}
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := runApp(t, "--log-level", "loud", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestRecognize_Builtin(t *testing.T) {
	out, err := runApp(t, "recognize", "--builtin", "--points", "0,0 10,0 20,0 30,0")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "line\t"), "got %q", out)
	assert.Less(t, len(out), 32, "score must print compactly")
}

func TestRecognize_RequiresStroke(t *testing.T) {
	_, err := runApp(t, "recognize", "--builtin")
	assert.Error(t, err)
}

func TestRecognize_PointsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stroke.txt")
	require.NoError(t, os.WriteFile(path, []byte("0,0\n0,10\n0,20\n0,30\n"), 0o644))

	out, err := runApp(t, "recognize", "--builtin", "--file", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "line\t"), "got %q", out)

	_, err = runApp(t, "recognize", "--builtin", "--file", path, "--points", "0,0 1,1")
	assert.Error(t, err)
}

func TestRecognize_MinDistance(t *testing.T) {
	// Jitter around the origin leaves a single point once thinned
	_, err := runApp(t, "recognize", "--builtin", "--points", "0,0 1,1 2,0 1,2", "--min-distance", "10")
	assert.ErrorIs(t, err, core.ErrInvalidStroke)

	out, err := runApp(t, "recognize", "--builtin", "--points", "0,0 1,1 30,0 31,1 60,0", "--min-distance", "10")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "line\t"), "got %q", out)
}

func TestLibraryCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "db")

	out, err := runApp(t, "seed", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "added 10, already present 0\n", out)

	out, err = runApp(t, "seed", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "added 0, already present 10\n", out)

	out, err = runApp(t, "list", "--db", db)
	require.NoError(t, err)
	lines := nonEmptyLines(out)
	require.Len(t, lines, 10)
	assert.Contains(t, lines[0], "\tline\t")
	assert.Contains(t, lines[9], "\tpigtail\t")

	out, err = runApp(t, "list", "--db", db, "--name", "circle")
	require.NoError(t, err)
	assert.Len(t, nonEmptyLines(out), 1)

	out, err = runApp(t, "recognize", "--db", db, "--points", "0,0 10,0 20,0 30,0")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "line\t"), "got %q", out)

	out, err = runApp(t, "recognize", "--db", db, "--points", "0,0 50,10 100,0", "--min-score", "1e9")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "unrecognized\t"), "got %q", out)

	// An unknown ID aborts the whole removal
	_, err = runApp(t, "remove", "--db", db, "--name", "line", "--id", "12345")
	require.Error(t, err)
	out, err = runApp(t, "list", "--db", db)
	require.NoError(t, err)
	assert.Len(t, nonEmptyLines(out), 10)

	out, err = runApp(t, "remove", "--db", db, "--name", "line")
	require.NoError(t, err)
	assert.Equal(t, "removed 1\n", out)

	out, err = runApp(t, "list", "--db", db)
	require.NoError(t, err)
	assert.Len(t, nonEmptyLines(out), 9)
	assert.NotContains(t, out, "\tline\t")

	_, err = runApp(t, "remove", "--db", db)
	assert.Error(t, err)

	_, err = runApp(t, "remove", "--db", db, "--id", "not-a-number")
	assert.Error(t, err)
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	data := filepath.Join(dir, "templates.txt")

	_, err := runApp(t, "seed", "--db", src)
	require.NoError(t, err)

	_, err = runApp(t, "export", "--db", src, "--output", data)
	require.NoError(t, err)

	out, err := runApp(t, "import", "--db", dst, data)
	require.NoError(t, err)
	assert.Equal(t, "added 10, already present 0, repeated 0, invalid 0\n", out)

	exported, err := runApp(t, "export", "--db", dst)
	require.NoError(t, err)
	original, err := os.ReadFile(data)
	require.NoError(t, err)
	assert.Equal(t, string(original), exported)

	_, err = runApp(t, "import", "--db", dst)
	assert.Error(t, err)
}

func TestImport_SkipInvalid(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "db")
	data := filepath.Join(dir, "templates.txt")
	require.NoError(t, os.WriteFile(data, []byte("2\nline 2 0 0 10 0\ndot 1 5 5\n"), 0o644))

	_, err := runApp(t, "import", "--db", db, data)
	require.Error(t, err)

	out, err := runApp(t, "import", "--db", db, "--skip-invalid", data)
	require.NoError(t, err)
	assert.Equal(t, "added 1, already present 0, repeated 0, invalid 1\n", out)
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unistroke.yaml")

	out, err := runApp(t, "init-config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = runApp(t, "init-config", path)
	assert.Error(t, err)

	out, err = runApp(t, "--config", path, "recognize", "--builtin", "--points", "0,0 10,0 20,0")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "line\t"), "got %q", out)
}
