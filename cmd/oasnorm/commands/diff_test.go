package commands

import (
	"encoding/json"
	"testing"

	"github.com/erraggy/oasnorm/differ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupDiffFlags(t *testing.T) {
	t.Setenv("OASNORM_CONTEXT_LINES", "")
	fs, flags := SetupDiffFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Equal(t, FormatText, flags.Format)
		assert.Equal(t, 3, flags.Context)
		assert.Equal(t, ColorAuto, flags.Color)
		assert.Empty(t, flags.SourceLabel)
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"--format", "markdown", "--context", "0", "--color", "never",
			"--source-label", "main", "--target-label", "pr", "--jobs", "2", "old", "new"}
		require.NoError(t, fs.Parse(args))
		assert.Equal(t, FormatMarkdown, flags.Format)
		assert.Equal(t, 0, flags.Context)
		assert.Equal(t, ColorNever, flags.Color)
		assert.Equal(t, "main", flags.SourceLabel)
		assert.Equal(t, "pr", flags.TargetLabel)
		assert.Equal(t, 2, flags.Jobs)
		assert.Equal(t, 2, fs.NArg())
	})
}

func TestHandleDiff_Files(t *testing.T) {
	tio := setupTestIO(t)
	tio.writeFile(t, "/old/api.yaml", "a: 1\nb: [x]\n")
	tio.writeFile(t, "/new/api.yaml", "a: 2\nb: [x, y]\n")

	err := HandleDiff([]string{"--color", "never", "/old/api.yaml", "/new/api.yaml"})
	assert.ErrorIs(t, err, ErrChangesFound)

	out := tio.out.String()
	assert.Contains(t, out, "/old/api.yaml -> /new/api.yaml: 1 file(s) compared, 1 changed")
	assert.Contains(t, out, "  + /b/1\n")
	assert.Contains(t, out, "  ~ /a\n")
	assert.Contains(t, out, "--- a/api.yaml\n")
	assert.NotContains(t, out, "\x1b[")
}

func TestHandleDiff_NoChanges(t *testing.T) {
	tio := setupTestIO(t)
	tio.writeFile(t, "/old/api.json", `{"b": 1, "a": 2}`)
	tio.writeFile(t, "/new/api.json", `{"a": 2, "b": 1}`)

	require.NoError(t, HandleDiff([]string{"--color", "never", "/old/api.json", "/new/api.json"}))
	assert.Contains(t, tio.out.String(), "1 file(s) compared, 0 changed")
}

func TestHandleDiff_DirectoriesJSON(t *testing.T) {
	tio := setupTestIO(t)
	tio.writeFile(t, "/old/api.yaml", "a: 1\n")
	tio.writeFile(t, "/old/gone.yaml", "g: 1\n")
	tio.writeFile(t, "/new/api.yaml", "a: 1\n")
	tio.writeFile(t, "/new/sub/added.json", `{"n": 1}`)

	err := HandleDiff([]string{"--format", "json", "--source-label", "main", "--target-label", "pr", "/old", "/new"})
	assert.ErrorIs(t, err, ErrChangesFound)

	var report differ.Report
	require.NoError(t, json.Unmarshal(tio.out.Bytes(), &report))
	assert.Equal(t, "main", report.SourceLabel)
	assert.Equal(t, "pr", report.TargetLabel)
	assert.Equal(t, 3, report.ComparedCount)
	assert.Equal(t, 2, report.ChangedCount)
	require.Len(t, report.Files, 3)
	assert.Equal(t, "api.yaml", report.Files[0].FileName)
	assert.False(t, report.Files[0].Changed)
	assert.True(t, report.Files[1].IsDeleted)
	assert.Equal(t, "sub/added.json", report.Files[2].FileName)
	assert.True(t, report.Files[2].IsNew)
}

func TestHandleDiff_Markdown(t *testing.T) {
	tio := setupTestIO(t)
	tio.writeFile(t, "/old/api.yaml", "a: 1\n")
	tio.writeFile(t, "/new/api.yaml", "a: 2\n")

	err := HandleDiff([]string{"--format", "markdown", "/old", "/new"})
	assert.ErrorIs(t, err, ErrChangesFound)
	assert.Contains(t, tio.out.String(), differ.CommentMarker)
	assert.Contains(t, tio.out.String(), "```diff\n")
}

func TestHandleDiff_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", []string{}},
		{"one arg", []string{"/old/api.yaml"}},
		{"invalid format", []string{"--format", "yaml", "/old/api.yaml", "/new/api.yaml"}},
		{"invalid color", []string{"--color", "rainbow", "/old/api.yaml", "/new/api.yaml"}},
		{"negative context", []string{"--context", "-1", "/old/api.yaml", "/new/api.yaml"}},
		{"both missing", []string{"/nope/a.yaml", "/nope/b.yaml"}},
		{"parse error", []string{"/old/api.yaml", "/old/broken.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tio := setupTestIO(t)
			tio.writeFile(t, "/old/api.yaml", "a: 1\n")
			tio.writeFile(t, "/new/api.yaml", "a: 1\n")
			tio.writeFile(t, "/old/broken.yaml", "a: [\n")
			err := HandleDiff(tt.args)
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrChangesFound)
		})
	}
}

func TestResolveColor(t *testing.T) {
	on, err := resolveColor(ColorAlways)
	require.NoError(t, err)
	assert.True(t, on)

	off, err := resolveColor(ColorNever)
	require.NoError(t, err)
	assert.False(t, off)

	_, err = resolveColor(ColorAuto)
	assert.NoError(t, err)

	_, err = resolveColor("sometimes")
	assert.Error(t, err)
}
