package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testIO replaces the handlers' I/O with buffers and a memory filesystem.
type testIO struct {
	out *bytes.Buffer
	err *bytes.Buffer
	fs  afero.Fs
}

func setupTestIO(t *testing.T) *testIO {
	t.Helper()
	tio := &testIO{out: &bytes.Buffer{}, err: &bytes.Buffer{}, fs: afero.NewMemMapFs()}
	prevIn, prevOut, prevErr, prevFs := stdin, stdout, stderr, fsys
	stdin, stdout, stderr, fsys = strings.NewReader(""), tio.out, tio.err, tio.fs
	t.Cleanup(func() {
		stdin, stdout, stderr, fsys = prevIn, prevOut, prevErr, prevFs
	})
	return tio
}

func (tio *testIO) writeFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(tio.fs, name, []byte(content), 0o644))
}

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"valid text", FormatText, false},
		{"valid json", FormatJSON, false},
		{"valid markdown", FormatMarkdown, false},
		{"not allowed here", FormatYAML, true},
		{"empty format", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format, FormatText, FormatJSON, FormatMarkdown)
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tio := setupTestIO(t)
	tio.writeFile(t, "/out/existing.yaml", "a: 1\n")

	assert.Error(t, ValidateOutputPath("/specs/api.yaml", []string{"/specs/api.yaml"}))
	assert.NoError(t, ValidateOutputPath("/out/new.yaml", []string{"/specs/api.yaml", StdinFilePath}))
	assert.Empty(t, tio.err.String())

	assert.NoError(t, ValidateOutputPath("/out/existing.yaml", []string{"/specs/api.yaml"}))
	assert.Contains(t, tio.err.String(), "already exists")
}

func TestRejectSymlinkOutput_MissingFile(t *testing.T) {
	setupTestIO(t)
	assert.NoError(t, RejectSymlinkOutput("/nothing/here.yaml"))
}

func TestFormatSpecPath(t *testing.T) {
	assert.Equal(t, "<stdin>", FormatSpecPath(StdinFilePath))
	assert.Equal(t, "api.yaml", FormatSpecPath("api.yaml"))
}

func TestStringList(t *testing.T) {
	var s stringList
	require.NoError(t, s.Set("a"))
	require.NoError(t, s.Set("b=c"))
	assert.Equal(t, stringList{"a", "b=c"}, s)
	assert.Equal(t, "a,b=c", s.String())
}

func TestNewLogger(t *testing.T) {
	tio := setupTestIO(t)
	assert.Nil(t, newLogger(false))

	logger := newLogger(true)
	require.NotNil(t, logger)
	logger.Debug("stage complete", "stage", "check-refs")
	assert.Contains(t, tio.err.String(), "stage=check-refs")
}
