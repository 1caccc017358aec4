package mcpserver

import (
	"context"

	"github.com/erraggy/oasnorm/transform"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type presetsInput struct{}

type presetInfo struct {
	Name   string   `json:"name"`
	Stages []string `json:"stages"`
}

type presetsOutput struct {
	Default string       `json:"default"`
	Presets []presetInfo `json:"presets"`
}

func handlePresets(_ context.Context, _ *mcp.CallToolRequest, _ presetsInput) (*mcp.CallToolResult, presetsOutput, error) {
	output := presetsOutput{Default: cfg.Preset}
	for _, name := range transform.PresetNames() {
		pipeline, err := transform.Preset(name)
		if err != nil {
			return errResult(err), presetsOutput{}, nil
		}
		output.Presets = append(output.Presets, presetInfo{Name: name, Stages: pipeline.Names()})
	}
	return nil, output, nil
}
