package document

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/erraggy/oasnorm/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data string
		path string
		want SourceFormat
	}{
		{"json extension", "a: 1", "spec.json", SourceFormatJSON},
		{"yaml extension", "{}", "spec.yaml", SourceFormatYAML},
		{"yml extension", "{}", "spec.yml", SourceFormatYAML},
		{"json content", "  \n{\"a\": 1}", "", SourceFormatJSON},
		{"json array content", "[1]", "spec.txt", SourceFormatJSON},
		{"yaml content", "a: 1", "", SourceFormatYAML},
		{"empty defaults to yaml", "", "", SourceFormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat([]byte(tt.data), tt.path))
		})
	}
}

func TestParse(t *testing.T) {
	doc, format, err := Parse([]byte(`{"b": [1, 2.5, "x"], "a": {"c": null}}`), "")
	require.NoError(t, err)
	assert.Equal(t, SourceFormatJSON, format)
	assert.Equal(t, Map{"a": Map{"c": nil}, "b": List{1, 2.5, "x"}}, doc)

	doc, _, err = Parse([]byte("1: one\ntrue: yes\n"), "keys.yaml")
	require.NoError(t, err)
	m, ok := AsMap(doc)
	require.True(t, ok)
	assert.Equal(t, "one", m["1"])
	assert.Contains(t, m, "true")
}

func TestParse_FormatsCompareEqual(t *testing.T) {
	fromJSON, _, err := Parse([]byte(`{"type": "object", "required": ["id"], "maxItems": 3}`), "a.json")
	require.NoError(t, err)
	fromYAML, _, err := Parse([]byte("type: object\nrequired: [id]\nmaxItems: 3\n"), "a.yaml")
	require.NoError(t, err)
	assert.True(t, Equal(fromJSON, fromYAML))
}

func TestParse_Errors(t *testing.T) {
	_, _, err := Parse([]byte("a: [1, 2"), "broken.yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrParse))

	var pe *oaserrors.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "broken.yaml", pe.Path)
	assert.Equal(t, "yaml", pe.Format)

	_, _, err = Parse([]byte(`{"a": [1,`), "broken.json")
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "json", pe.Format)
	assert.Contains(t, err.Error(), "json parse error in broken.json")
}

func TestParseMap(t *testing.T) {
	m, _, err := ParseMap([]byte(""), "empty.yaml")
	require.NoError(t, err)
	assert.Equal(t, Map{}, m)

	_, _, err = ParseMap([]byte("- a\n- b\n"), "list.yaml")
	assert.True(t, errors.Is(err, oaserrors.ErrParse))

	m, _, err = ParseMap([]byte("openapi: 3.1.0\n"), "spec.yaml")
	require.NoError(t, err)
	assert.Equal(t, "3.1.0", m["openapi"])
}

func TestMarshal(t *testing.T) {
	doc := Map{"z": 1, "a": List{"x", Map{"k": true}}}

	y1, err := Marshal(doc, SourceFormatYAML)
	require.NoError(t, err)
	y2, err := Marshal(CopyMap(doc), SourceFormatYAML)
	require.NoError(t, err)
	assert.Equal(t, y1, y2)
	assert.Less(t, bytes.Index(y1, []byte("a:")), bytes.Index(y1, []byte("z:")))

	nested, err := Marshal(Map{"info": Map{"contact": Map{"name": "n"}}}, SourceFormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "info:\n  contact:\n    name: n\n", string(nested))

	j, err := Marshal(doc, SourceFormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": [\n    \"x\",\n    {\n      \"k\": true\n    }\n  ],\n  \"z\": 1\n}\n", string(j))

	back, _, err := Parse(y1, "roundtrip.yaml")
	require.NoError(t, err)
	assert.True(t, Equal(doc, back))
}

func TestDeepCopy(t *testing.T) {
	orig := Map{"a": List{Map{"b": 1}}, "s": "x"}
	cp := CopyMap(orig)
	cp["a"].(List)[0].(Map)["b"] = 2
	cp["s"] = "y"

	assert.Equal(t, 1, orig["a"].(List)[0].(Map)["b"])
	assert.Equal(t, "x", orig["s"])
	assert.Nil(t, CopyMap(nil))
	assert.Equal(t, 42, DeepCopy(42))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(1, 1.0))
	assert.True(t, Equal(Map{"n": 3}, Map{"n": float64(3)}))
	assert.True(t, Equal(List{int64(2)}, List{2}))
	assert.False(t, Equal(1, 1.5))
	assert.False(t, Equal("1", 1))
	assert.False(t, Equal(Map{"a": 1}, Map{"a": 1, "b": 2}))
	assert.False(t, Equal(List{1, 2}, List{2, 1}))
	assert.True(t, Equal(nil, nil))
}

func TestHelpers(t *testing.T) {
	m := Map{"b": 1, "a": 2, "c": 3, "tags": List{"x", 1, "y"}}
	assert.Equal(t, []string{"a", "b", "c", "tags"}, SortedKeys(m))
	assert.Equal(t, []string{"x", "y"}, StringSlice(m, "tags"))
	assert.Nil(t, StringSlice(m, "missing"))
	assert.Nil(t, StringSlice(m, "a"))
	assert.Equal(t, List{"p", "q"}, ToList([]string{"p", "q"}))

	_, ok := AsList(m)
	assert.False(t, ok)
	l, ok := AsList(m["tags"])
	assert.True(t, ok)
	assert.Len(t, l, 3)
}

func TestLoggers(t *testing.T) {
	assert.Equal(t, NopLogger{}, OrNop(nil))
	assert.Equal(t, NopLogger{}, NopLogger{}.With("k", "v"))

	var buf bytes.Buffer
	slogger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	var l Logger = NewSlogAdapter(slogger)
	assert.Same(t, l, OrNop(l))

	l.With("stage", "check-refs").Info("done", "count", 2)
	l.Debug("debug line")
	l.Warn("warn line")
	l.Error("error line")

	out := buf.String()
	assert.Contains(t, out, "stage=check-refs")
	assert.Contains(t, out, "count=2")
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "level=ERROR")
	assert.NotNil(t, NewSlogAdapter(nil))
}
