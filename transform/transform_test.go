package transform

import (
	"errors"
	"testing"

	"github.com/erraggy/oasnorm/document"
	"github.com/erraggy/oasnorm/oaserrors"
	"github.com/erraggy/oasnorm/resolver"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run transforms YAML content with the given stages and fails the test on error.
func run(t *testing.T, content string, opts ...Option) *Result {
	t.Helper()
	result, err := RunWithOptions(append([]Option{WithContent([]byte(content), "test.yaml")}, opts...)...)
	require.NoError(t, err)
	return result
}

func at(t *testing.T, doc document.Map, pointer string) any {
	t.Helper()
	v, ok := resolver.Pointer(doc, pointer)
	require.True(t, ok, "missing %s", pointer)
	return v
}

func TestRunWithOptions_NoopPreservesDocument(t *testing.T) {
	input := document.Map{
		"components": document.Map{
			"schemas": document.Map{
				"OurSchemaRef": document.Map{
					"type":       "object",
					"properties": document.Map{"name": document.Map{"type": "string"}},
				},
			},
		},
	}
	original := document.CopyMap(input)

	result, err := RunWithOptions(WithDocument(input), WithPreset(PresetNoop))
	require.NoError(t, err)
	assert.Equal(t, original, result.Document)
	assert.Empty(t, result.Stages)
	assert.Equal(t, PresetNoop, result.Preset)
	assert.Equal(t, document.SourceFormatYAML, result.SourceFormat)

	result.Document["components"] = nil
	assert.Equal(t, original, input, "input document must not be mutated")
}

func TestRunWithOptions_NothingToDoIsNoop(t *testing.T) {
	input := document.Map{
		"components": document.Map{
			"schemas": document.Map{
				"OurSchemaRef": document.Map{
					"type":       "object",
					"properties": document.Map{"name": document.Map{"type": "string"}},
				},
			},
		},
		"paths": document.Map{
			"/things": document.Map{
				"get": document.Map{
					"responses": document.Map{
						"200": document.Map{"$ref": "#/components/schemas/OurSchemaRef"},
					},
				},
			},
		},
	}
	result, err := RunWithOptions(WithDocument(input), WithPreset(PresetNormalize))
	require.NoError(t, err)
	assert.True(t, document.Equal(input, result.Document))
}

func TestRunWithOptions_Flatten(t *testing.T) {
	result := run(t, `
components:
  schemas:
    B:
      properties:
        b: {type: string}
      required: [b]
    Combined:
      allOf:
        - type: object
          properties:
            a: {type: string}
          required: [a]
        - $ref: '#/components/schemas/B'
    Choice:
      oneOf:
        - properties:
            common: {type: string}
            x: {type: string}
          required: [common, x]
        - properties:
            common: {type: string}
            y: {type: string}
          required: [common, y]
`, WithPreset(PresetFlatten))

	combined := at(t, result.Document, "/components/schemas/Combined").(document.Map)
	assert.Equal(t, document.Map{
		"type": "object",
		"properties": document.Map{
			"a": document.Map{"type": "string"},
			"b": document.Map{"type": "string"},
		},
		"required":             document.List{"a", "b"},
		"additionalProperties": false,
	}, combined)

	choice := at(t, result.Document, "/components/schemas/Choice").(document.Map)
	assert.Equal(t, document.List{"common"}, choice["required"])
	assert.Len(t, choice["properties"], 3)
	assert.Equal(t, 1, result.Stats.AllOfMerged)
	assert.Equal(t, 1, result.Stats.OneOfMerged)
}

func TestRunWithOptions_FlattenErrorCarriesPath(t *testing.T) {
	_, err := RunWithOptions(
		WithContent([]byte("components:\n  schemas:\n    Bad:\n      allOf: [1]\n"), "bad.yaml"),
		WithPreset(PresetFlatten),
	)
	require.Error(t, err)
	var compErr *oaserrors.CompositionError
	require.True(t, errors.As(err, &compErr))
	assert.Equal(t, "/components/schemas/Bad", compErr.Path)
	assert.Contains(t, err.Error(), "resolve-allof")
}

func TestResolveExternalRefs(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"/spec/openapi.yaml": `openapi: 3.0.3
paths:
  /pets:
    get:
      responses:
        "200":
          content:
            application/json:
              schema:
                $ref: 'schemas/pet.yaml'
        default:
          content:
            application/json:
              schema:
                $ref: 'common.yaml#/components/schemas/Error'
components:
  schemas:
    Error:
      type: string
`,
		"/spec/common.yaml": `components:
  schemas:
    Error:
      type: object
      properties:
        detail:
          $ref: '#/components/schemas/Detail'
    Detail:
      type: string
`,
		"/spec/schemas/pet.yaml": `type: object
properties:
  tag:
    $ref: 'tag.yaml#/components/schemas/Tag'
`,
		"/spec/schemas/tag.yaml": `components:
  schemas:
    Tag:
      type: string
`,
	}
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}

	result, err := RunWithOptions(WithFilePath("/spec/openapi.yaml"), WithFs(fs), WithPreset(PresetResolve))
	require.NoError(t, err)
	doc := result.Document

	schemas := at(t, doc, "/components/schemas").(document.Map)
	assert.Equal(t, document.Map{"type": "string"}, schemas["Error"], "existing component is kept")
	assert.Contains(t, schemas, "Error2")
	assert.Contains(t, schemas, "Detail")
	assert.Contains(t, schemas, "Tag")

	assert.Equal(t, "#/components/schemas/Error2",
		at(t, doc, "/paths/~1pets/get/responses/default/content/application~1json/schema/$ref"))
	assert.Equal(t, "#/components/schemas/Detail",
		at(t, doc, "/components/schemas/Error2/properties/detail/$ref"))
	assert.Equal(t, document.Map{
		"type":       "object",
		"properties": document.Map{"tag": document.Map{"$ref": "#/components/schemas/Tag"}},
	}, at(t, doc, "/paths/~1pets/get/responses/200/content/application~1json/schema"))

	assert.Equal(t, 4, result.Stats.ExternalRefsInlined)
	assert.Equal(t, "/spec/openapi.yaml", result.SourcePath)
}

func TestResolveExternalRefs_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/spec/loop.yaml", []byte("$ref: 'loop.yaml'\n"), 0o644))

	t.Run("missing file", func(t *testing.T) {
		_, err := RunWithOptions(
			WithContent([]byte("components:\n  schemas:\n    A:\n      $ref: 'nope.yaml#/components/schemas/A'\n"), "root.yaml"),
			WithFs(fs), WithBaseDir("/spec"), WithPreset(PresetResolve),
		)
		var refErr *oaserrors.ReferenceError
		require.True(t, errors.As(err, &refErr))
		assert.Equal(t, "/components/schemas/A", refErr.Path)
	})

	t.Run("inline loop", func(t *testing.T) {
		_, err := RunWithOptions(
			WithContent([]byte("components:\n  schemas:\n    A:\n      $ref: 'loop.yaml'\n"), "root.yaml"),
			WithFs(fs), WithBaseDir("/spec"), WithPreset(PresetResolve),
		)
		assert.True(t, errors.Is(err, oaserrors.ErrCircularReference))
	})
}

func TestInlineExternalValues(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/spec/examples/pet.json", []byte(`{"name": "Rex"}`), 0o644))

	result := run(t, `
examples:
  local:
    externalValue: examples/pet.json
  remote:
    externalValue: https://example.com/pet.json
`, WithFs(fs), WithBaseDir("/spec"), WithStages(InlineExternalValues()))

	assert.Equal(t, document.Map{"value": document.Map{"name": "Rex"}}, at(t, result.Document, "/examples/local"))
	assert.Equal(t, "https://example.com/pet.json", at(t, result.Document, "/examples/remote/externalValue"))
	assert.Equal(t, 1, result.Stats.ExternalValuesInlined)
}

func TestStripStages(t *testing.T) {
	result := run(t, `
info:
  title: t
  x-logo: {url: u}
paths:
  x-internal: true
  /x-pets:
    get: {x-rate-limit: 10, responses: {}}
webhooks:
  x-hook-meta: {owner: team}
  newPet: {post: {responses: {}}}
components:
  schemas:
    x-internal: {type: string}
    Pet:
      type: object
      example: {name: Rex}
      x-go-type: Pet
      properties:
        example: {type: string, example: foo}
        x-flag: {type: boolean, deprecated: false}
`, WithStages(StripField("example"), StripFieldPrefix("x-"), StripFieldValue("deprecated", false)))

	doc := result.Document
	assert.NotContains(t, at(t, doc, "/info"), "x-logo")
	assert.Contains(t, at(t, doc, "/components/schemas"), "x-internal")
	pet := at(t, doc, "/components/schemas/Pet").(document.Map)
	assert.NotContains(t, pet, "example")
	assert.NotContains(t, pet, "x-go-type")
	assert.Equal(t, document.Map{"type": "string"}, at(t, doc, "/components/schemas/Pet/properties/example"))
	assert.Equal(t, document.Map{"type": "boolean"}, at(t, doc, "/components/schemas/Pet/properties/x-flag"))
	assert.NotContains(t, at(t, doc, "/paths"), "x-internal")
	assert.Contains(t, at(t, doc, "/paths"), "/x-pets")
	assert.NotContains(t, at(t, doc, "/paths/~1x-pets/get"), "x-rate-limit")
	assert.Equal(t, []string{"newPet"}, document.SortedKeys(at(t, doc, "/webhooks").(document.Map)))
	assert.Equal(t, 8, result.Stats.FieldsStripped)
}

func TestParseStripRule(t *testing.T) {
	tests := []struct {
		in      string
		want    StripRule
		wantErr bool
	}{
		{in: "example", want: StripRule{Field: "example"}},
		{in: "x-*", want: StripRule{Field: "x-", Prefix: true}},
		{in: "deprecated=true", want: StripRule{Field: "deprecated", Value: true, HasValue: true}},
		{in: "format=int32", want: StripRule{Field: "format", Value: "int32", HasValue: true}},
		{in: "nullable=", want: StripRule{Field: "nullable", Value: "", HasValue: true}},
		{in: "", wantErr: true},
		{in: "=x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStripRule(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRewriteTags(t *testing.T) {
	result := run(t, `
tags:
  - name: pets
  - name: internal
  - name: animals
paths:
  /pets:
    get:
      tags: [pets, internal]
    post:
      tags: [internal]
`, WithStages(), WithTagRewrites(map[string]string{"pets": "animals", "internal": ""}))

	doc := result.Document
	assert.Equal(t, document.List{document.Map{"name": "animals"}}, doc["tags"])
	assert.Equal(t, document.List{"animals"}, at(t, doc, "/paths/~1pets/get/tags"))
	assert.NotContains(t, at(t, doc, "/paths/~1pets/post"), "tags")
	assert.Equal(t, 5, result.Stats.TagsRewritten)
	assert.Equal(t, []string{"rewrite-tags"}, result.Stages)
}

func TestRunWithOptions_OptionErrors(t *testing.T) {
	doc := document.Map{}
	tests := []struct {
		name string
		opts []Option
	}{
		{"no input", nil},
		{"two inputs", []Option{WithDocument(doc), WithContent([]byte("{}"), "x.json")}},
		{"unknown preset", []Option{WithDocument(doc), WithPreset("bogus")}},
		{"preset and stages", []Option{WithDocument(doc), WithPreset(PresetNoop), WithStages(CheckRefs())}},
		{"bad prune bound", []Option{WithDocument(doc), WithPruneBound(0)}},
		{"nil document", []Option{WithDocument(nil)}},
		{"empty path", []Option{WithFilePath("")}},
		{"empty strip rule", []Option{WithDocument(doc), WithStripRules(StripRule{})}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RunWithOptions(tt.opts...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrConfig))
		})
	}
}

func TestRunWithOptions_ParseError(t *testing.T) {
	_, err := RunWithOptions(WithContent([]byte("a: [unclosed"), "broken.yaml"))
	assert.True(t, errors.Is(err, oaserrors.ErrParse))

	_, err = RunWithOptions(WithContent([]byte("- just\n- a list\n"), "list.yaml"))
	assert.True(t, errors.Is(err, oaserrors.ErrParse))
}

func TestRunWithOptions_StripRulesAppended(t *testing.T) {
	result := run(t, "info:\n  title: t\n  summary: s\n",
		WithPreset(PresetNoop), WithStripRules(StripRule{Field: "summary"}))
	assert.NotContains(t, result.Document["info"], "summary")
	assert.Equal(t, []string{"strip-field:summary"}, result.Stages)
}

func TestRunWithOptions_JSONFormatDetected(t *testing.T) {
	result, err := RunWithOptions(WithContent([]byte(`{"openapi": "3.1.0"}`), ""))
	require.NoError(t, err)
	assert.Equal(t, document.SourceFormatJSON, result.SourceFormat)
	assert.Equal(t, PresetNormalize, result.Preset)
}
