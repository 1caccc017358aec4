package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/oasnorm/differ"
	"github.com/erraggy/oasnorm/internal/cliutil"
	"github.com/fatih/color"
	"github.com/spf13/afero"
)

// Color modes for text output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DiffFlags contains flags for the diff command
type DiffFlags struct {
	Format      string
	Context     int
	Color       string
	SourceLabel string
	TargetLabel string
	Jobs        int
	Verbose     bool
}

// SetupDiffFlags creates and configures a FlagSet for the diff command.
// Returns the FlagSet and a DiffFlags struct with bound flag variables.
func SetupDiffFlags() (*flag.FlagSet, *DiffFlags) {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	flags := &DiffFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or markdown")
	fs.IntVar(&flags.Context, "context",
		cliutil.EnvNonNegativeInt("OASNORM_CONTEXT_LINES", differ.DefaultContextLines),
		"unchanged lines shown around each patch hunk")
	fs.StringVar(&flags.Color, "color", ColorAuto, "colorize text output: auto, always, or never")
	fs.StringVar(&flags.SourceLabel, "source-label", "", "label for the baseline side (default: baseline path)")
	fs.StringVar(&flags.TargetLabel, "target-label", "", "label for the candidate side (default: candidate path)")
	fs.IntVar(&flags.Jobs, "jobs", 0, "files compared concurrently (default: GOMAXPROCS)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log comparison details to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasnorm diff [flags] <baseline> <candidate>\n\n")
		cliutil.Writef(fs.Output(), "Compare two schema files, or two directories of schema files, structurally.\n")
		cliutil.Writef(fs.Output(), "Formatting and key order are ignored; each changed file gets a unified patch\n")
		cliutil.Writef(fs.Output(), "over canonical YAML.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nOutput Formats:\n")
		cliutil.Writef(fs.Output(), "  text (default)  Human-readable text output\n")
		cliutil.Writef(fs.Output(), "  json            Drift report for programmatic processing\n")
		cliutil.Writef(fs.Output(), "  markdown        Pull request comment\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasnorm diff old/openapi.yaml new/openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oasnorm diff --format markdown --source-label main --target-label pr schemas-main/ schemas-pr/\n")
		cliutil.Writef(fs.Output(), "  oasnorm diff --format json old/ new/ | jq '.changedCount'\n")
		cliutil.Writef(fs.Output(), "\nExit Status:\n")
		cliutil.Writef(fs.Output(), "  0    No differences found\n")
		cliutil.Writef(fs.Output(), "  1    Differences found, or an error occurred\n")
	}

	return fs, flags
}

// HandleDiff executes the diff command. It returns ErrChangesFound when the
// inputs differ.
func HandleDiff(args []string) error {
	fs, flags := SetupDiffFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("diff command requires exactly two file or directory paths")
	}
	baselinePath, candidatePath := fs.Arg(0), fs.Arg(1)

	if err := ValidateOutputFormat(flags.Format, FormatText, FormatJSON, FormatMarkdown); err != nil {
		return err
	}
	colorize, err := resolveColor(flags.Color)
	if err != nil {
		return err
	}

	pairs, err := collectPairs(baselinePath, candidatePath)
	if err != nil {
		return err
	}

	sourceLabel := flags.SourceLabel
	if sourceLabel == "" {
		sourceLabel = baselinePath
	}
	targetLabel := flags.TargetLabel
	if targetLabel == "" {
		targetLabel = candidatePath
	}

	report, err := differ.CompareFiles(context.Background(), pairs,
		differ.WithContextLines(flags.Context),
		differ.WithSourceLabel(sourceLabel),
		differ.WithTargetLabel(targetLabel),
		differ.WithJobs(flags.Jobs),
		differ.WithLogger(newLogger(flags.Verbose)),
	)
	if err != nil {
		return fmt.Errorf("comparing schemas: %w", err)
	}

	switch flags.Format {
	case FormatJSON:
		data, err := report.JSON()
		if err != nil {
			return err
		}
		cliutil.Write(stdout, data)
	case FormatMarkdown:
		cliutil.Writef(stdout, "%s", differ.RenderComment(report))
	default:
		cliutil.Writef(stdout, "%s", differ.RenderText(report, colorize))
	}

	if report.HasChanges() {
		return ErrChangesFound
	}
	return nil
}

// collectPairs pairs two directories file by file when either path is a
// directory, and two single files otherwise.
func collectPairs(baselinePath, candidatePath string) ([]differ.FilePair, error) {
	baselineIsDir, err := afero.DirExists(fsys, baselinePath)
	if err != nil {
		return nil, err
	}
	candidateIsDir, err := afero.DirExists(fsys, candidatePath)
	if err != nil {
		return nil, err
	}
	if baselineIsDir || candidateIsDir {
		return differ.PairDirs(fsys, baselinePath, candidatePath)
	}
	return differ.PairFiles(fsys, baselinePath, candidatePath)
}

// resolveColor maps a color mode to whether text output is colorized. In
// auto mode color follows the terminal and NO_COLOR detection of stdout.
func resolveColor(mode string) (bool, error) {
	switch mode {
	case ColorAlways:
		return true, nil
	case ColorNever:
		return false, nil
	case ColorAuto:
		return !color.NoColor, nil
	default:
		return false, fmt.Errorf("invalid color mode '%s'. Valid modes: %s, %s, %s", mode, ColorAuto, ColorAlways, ColorNever)
	}
}
