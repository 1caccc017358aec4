package mcpserver

import (
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useMemFs points the tools at a fresh memory filesystem for the test.
func useMemFs(t *testing.T) afero.Fs {
	t.Helper()
	prev := fsys
	fsys = afero.NewMemMapFs()
	if siblingCache != nil {
		siblingCache.Purge()
	}
	t.Cleanup(func() {
		fsys = prev
		if siblingCache != nil {
			siblingCache.Purge()
		}
	})
	return fsys
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"no path", errors.New("unknown preset"), "unknown preset"},
		{"absolute path", errors.New("open /home/user/specs/api.yaml: no such file"), "open <path>: no such file"},
		{"relative path kept", errors.New("reading specs/api.yaml"), "reading specs/api.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeError(tt.err))
		})
	}
}

func TestErrResult(t *testing.T) {
	result := errResult(errors.New("failed reading /tmp/x.yaml"))
	require.NotNil(t, result)
	assert.True(t, result.IsError)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "failed reading <path>", text.Text)
}

func TestDocInput(t *testing.T) {
	fs := useMemFs(t)
	require.NoError(t, afero.WriteFile(fs, "/a.yaml", []byte("a: 1\n"), 0o644))

	data, err := docInput{File: "/a.yaml"}.read()
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", string(data))

	data, err = docInput{Content: "b: 2"}.read()
	require.NoError(t, err)
	assert.Equal(t, "b: 2", string(data))

	data, err = docInput{}.read()
	require.NoError(t, err)
	assert.Nil(t, data)

	_, err = docInput{File: "/a.yaml", Content: "b: 2"}.read()
	assert.Error(t, err)

	_, err = docInput{}.transformOptions()
	assert.ErrorIs(t, err, errNoInput)

	_, err = docInput{File: "/missing.yaml"}.read()
	assert.Error(t, err)
}

func TestDocInput_InlineSizeLimit(t *testing.T) {
	prev := cfg.MaxInlineSize
	cfg.MaxInlineSize = 4
	t.Cleanup(func() { cfg.MaxInlineSize = prev })

	_, err := docInput{Content: "a: 12345"}.read()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OASNORM_MAX_INLINE_SIZE")
}
