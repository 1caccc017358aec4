package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/erraggy/oasnorm/differ"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type diffInput struct {
	Base         docInput `json:"base,omitempty"          jsonschema:"The baseline document. Omit for a newly added document"`
	Revision     docInput `json:"revision,omitempty"      jsonschema:"The candidate document. Omit for a deleted document"`
	Name         string   `json:"name,omitempty"          jsonschema:"File name used in patch headers. Defaults to the revision or base file name"`
	ContextLines *int     `json:"context_lines,omitempty" jsonschema:"Unchanged lines around each patch hunk (default 3)"`
	Comment      bool     `json:"comment,omitempty"       jsonschema:"Also render a Markdown drift report"`
}

type diffOutput struct {
	Changed   bool           `json:"changed"`
	IsNew     bool           `json:"is_new,omitempty"`
	IsDeleted bool           `json:"is_deleted,omitempty"`
	Summary   differ.Summary `json:"summary"`
	Patch     string         `json:"patch,omitempty"`
	Comment   string         `json:"comment,omitempty"`
}

func handleDiff(ctx context.Context, _ *mcp.CallToolRequest, input diffInput) (*mcp.CallToolResult, diffOutput, error) {
	if input.Base.empty() && input.Revision.empty() {
		return errResult(fmt.Errorf("at least one of base or revision must be provided")), diffOutput{}, nil
	}
	baseline, err := input.Base.read()
	if err != nil {
		return errResult(fmt.Errorf("base: %w", err)), diffOutput{}, nil
	}
	candidate, err := input.Revision.read()
	if err != nil {
		return errResult(fmt.Errorf("revision: %w", err)), diffOutput{}, nil
	}

	contextLines := cfg.ContextLines
	if input.ContextLines != nil {
		contextLines = *input.ContextLines
	}

	pair := differ.FilePair{Name: diffName(input), Baseline: baseline, Candidate: candidate}
	report, err := differ.CompareFiles(ctx, []differ.FilePair{pair},
		differ.WithContextLines(contextLines),
		differ.WithSourceLabel("base"),
		differ.WithTargetLabel("revision"),
	)
	if err != nil {
		return errResult(err), diffOutput{}, nil
	}

	file := report.Files[0]
	output := diffOutput{
		Changed:   file.Changed,
		IsNew:     file.IsNew,
		IsDeleted: file.IsDeleted,
		Summary:   file.Summary,
		Patch:     file.Patch,
	}
	if input.Comment {
		output.Comment = differ.RenderComment(report)
	}
	return nil, output, nil
}

func diffName(input diffInput) string {
	switch {
	case input.Name != "":
		return input.Name
	case input.Revision.File != "":
		return filepath.Base(input.Revision.File)
	case input.Base.File != "":
		return filepath.Base(input.Base.File)
	default:
		return "document.yaml"
	}
}
