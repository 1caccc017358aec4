package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/oasnorm/document"
	"github.com/erraggy/oasnorm/transform"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/afero"
)

type normalizeInput struct {
	Document    docInput          `json:"document"               jsonschema:"The document to normalize"`
	Preset      string            `json:"preset,omitempty"       jsonschema:"Preset name (see the presets tool). Defaults to OASNORM_PRESET or normalize"`
	Strip       []string          `json:"strip,omitempty"        jsonschema:"Extra fields to strip after the preset: name\\, name=value\\, or prefix*"`
	TagRewrites map[string]string `json:"tag_rewrites,omitempty" jsonschema:"Tag renames applied after the preset. An empty new name removes the tag"`
	PruneBound  int               `json:"prune_bound,omitempty"  jsonschema:"Maximum removing passes for unused schema pruning"`
	BaseDir     string            `json:"base_dir,omitempty"     jsonschema:"Directory external refs are resolved against. Defaults to the file's directory"`
	Format      string            `json:"format,omitempty"       jsonschema:"Output format: yaml or json. Defaults to the input format"`
	Output      string            `json:"output,omitempty"       jsonschema:"File path to write the normalized document. If omitted the document is returned inline"`
}

type normalizeOutput struct {
	Preset    string          `json:"preset"`
	Stages    []string        `json:"stages"`
	Stats     transform.Stats `json:"stats"`
	Format    string          `json:"format"`
	WrittenTo string          `json:"written_to,omitempty"`
	Document  string          `json:"document,omitempty"`
}

func handleNormalize(_ context.Context, _ *mcp.CallToolRequest, input normalizeInput) (*mcp.CallToolResult, normalizeOutput, error) {
	opts, err := buildTransformOptions(input)
	if err != nil {
		return errResult(err), normalizeOutput{}, nil
	}

	result, err := transform.RunWithOptions(opts...)
	if err != nil {
		return errResult(err), normalizeOutput{}, nil
	}

	format := result.SourceFormat
	switch input.Format {
	case "":
	case "yaml", "yml":
		format = document.SourceFormatYAML
	case "json":
		format = document.SourceFormatJSON
	default:
		return errResult(fmt.Errorf("invalid format %q; valid values: yaml, json", input.Format)), normalizeOutput{}, nil
	}

	data, err := document.Marshal(result.Document, format)
	if err != nil {
		return errResult(err), normalizeOutput{}, nil
	}

	output := normalizeOutput{
		Preset: result.Preset,
		Stages: result.Stages,
		Stats:  result.Stats,
		Format: string(format),
	}
	if input.Output != "" {
		if err := afero.WriteFile(fsys, input.Output, data, 0o644); err != nil {
			return errResult(fmt.Errorf("failed to write output file: %w", err)), normalizeOutput{}, nil
		}
		output.WrittenTo = input.Output
	} else {
		output.Document = string(data)
	}
	return nil, output, nil
}

// buildTransformOptions translates the MCP input into transform options,
// applying server defaults for anything the caller left unset.
func buildTransformOptions(input normalizeInput) ([]transform.Option, error) {
	opts, err := input.Document.transformOptions()
	if err != nil {
		return nil, err
	}

	preset := input.Preset
	if preset == "" {
		preset = cfg.Preset
	}
	opts = append(opts, transform.WithPreset(preset))

	bound := input.PruneBound
	if bound <= 0 {
		bound = cfg.PruneBound
	}
	opts = append(opts, transform.WithPruneBound(bound))

	if len(input.Strip) > 0 {
		rules := make([]transform.StripRule, 0, len(input.Strip))
		for _, s := range input.Strip {
			rule, err := transform.ParseStripRule(s)
			if err != nil {
				return nil, err
			}
			rules = append(rules, rule)
		}
		opts = append(opts, transform.WithStripRules(rules...))
	}
	if len(input.TagRewrites) > 0 {
		opts = append(opts, transform.WithTagRewrites(input.TagRewrites))
	}
	if input.BaseDir != "" {
		opts = append(opts, transform.WithBaseDir(input.BaseDir))
	}
	return opts, nil
}
