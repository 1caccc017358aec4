package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/erraggy/oasnorm"
	"github.com/erraggy/oasnorm/document"
	"github.com/erraggy/oasnorm/internal/cliutil"
	"github.com/erraggy/oasnorm/transform"
	"github.com/spf13/afero"
)

// NormalizeFlags contains flags for the normalize command
type NormalizeFlags struct {
	Preset     string
	Format     string
	Output     string
	PruneBound int
	BaseDir    string
	Strip      stringList
	Tags       stringList
	Verbose    bool
}

// SetupNormalizeFlags creates and configures a FlagSet for the normalize command.
// Returns the FlagSet and a NormalizeFlags struct with bound flag variables.
// The preset and prune bound default to OASNORM_PRESET and OASNORM_PRUNE_BOUND.
func SetupNormalizeFlags() (*flag.FlagSet, *NormalizeFlags) {
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	flags := &NormalizeFlags{}

	fs.StringVar(&flags.Preset, "preset",
		cliutil.EnvChoice("OASNORM_PRESET", transform.DefaultPreset, transform.PresetNames()),
		"pipeline preset: "+strings.Join(transform.PresetNames(), ", "))
	fs.StringVar(&flags.Format, "format", "", "output format: yaml or json (default: input format)")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.IntVar(&flags.PruneBound, "prune-bound",
		cliutil.EnvInt("OASNORM_PRUNE_BOUND", transform.DefaultPruneBound),
		"maximum removing passes when pruning unused schemas")
	fs.StringVar(&flags.BaseDir, "base-dir", "", "directory external refs resolve against (default: input file's directory)")
	fs.Var(&flags.Strip, "strip", "strip a field after the preset: name, name=value, or prefix* (repeatable)")
	fs.Var(&flags.Tags, "tag", "rename a tag: old=new, or old= to remove it (repeatable)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log each stage to stderr")
	fs.BoolVar(&flags.Verbose, "v", false, "log each stage to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasnorm normalize [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Run an OpenAPI or JSON Schema document through a normalization pipeline.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nPresets:\n")
		for _, name := range transform.PresetNames() {
			pipeline, _ := transform.Preset(name)
			cliutil.Writef(fs.Output(), "  %-12s %d stage(s)\n", name, len(pipeline))
		}
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oasnorm normalize openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oasnorm normalize --preset schema -o schema.yaml openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oasnorm normalize --strip description --strip 'x-*' openapi.json\n")
		cliutil.Writef(fs.Output(), "  oasnorm normalize --tag internal= --tag pets=animals openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  cat openapi.yaml | oasnorm normalize --format json -\n")
	}

	return fs, flags
}

// HandleNormalize executes the normalize command
func HandleNormalize(args []string) error {
	fs, flags := SetupNormalizeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("normalize command requires exactly one file path or '-' for stdin")
	}
	specPath := fs.Arg(0)

	if flags.Format != "" {
		if err := ValidateOutputFormat(flags.Format, FormatYAML, FormatJSON); err != nil {
			return err
		}
	}

	opts, err := buildNormalizeOptions(specPath, flags)
	if err != nil {
		return err
	}

	result, err := transform.RunWithOptions(opts...)
	if err != nil {
		return fmt.Errorf("normalizing %s: %w", FormatSpecPath(specPath), err)
	}

	format := result.SourceFormat
	if flags.Format != "" {
		format = document.SourceFormat(flags.Format)
	}
	data, err := document.Marshal(result.Document, format)
	if err != nil {
		return err
	}

	if flags.Output == "" {
		cliutil.Write(stdout, data)
		return nil
	}

	if err := ValidateOutputPath(flags.Output, []string{specPath}); err != nil {
		return err
	}
	cleaned := filepath.Clean(flags.Output)
	if err := RejectSymlinkOutput(cleaned); err != nil {
		return err
	}
	if err := afero.WriteFile(fsys, cleaned, data, 0o600); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}

	cliutil.Writef(stderr, "oasnorm version: %s\n", oasnorm.Version())
	cliutil.Writef(stderr, "Specification: %s\n", FormatSpecPath(specPath))
	cliutil.Writef(stderr, "Preset: %s (%d stages)\n", result.Preset, len(result.Stages))
	writeStats(stderr, result.Stats)
	cliutil.Writef(stderr, "Duration: %v\n", result.Duration)
	cliutil.Writef(stderr, "Output: %s\n", cleaned)
	return nil
}

func buildNormalizeOptions(specPath string, flags *NormalizeFlags) ([]transform.Option, error) {
	opts := []transform.Option{
		transform.WithFs(fsys),
		transform.WithPreset(flags.Preset),
		transform.WithPruneBound(flags.PruneBound),
		transform.WithLogger(newLogger(flags.Verbose)),
	}

	if specPath == StdinFilePath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		opts = append(opts, transform.WithContent(data, ""))
	} else {
		opts = append(opts, transform.WithFilePath(specPath))
	}
	if flags.BaseDir != "" {
		opts = append(opts, transform.WithBaseDir(flags.BaseDir))
	}

	if len(flags.Strip) > 0 {
		rules := make([]transform.StripRule, 0, len(flags.Strip))
		for _, s := range flags.Strip {
			rule, err := transform.ParseStripRule(s)
			if err != nil {
				return nil, err
			}
			rules = append(rules, rule)
		}
		opts = append(opts, transform.WithStripRules(rules...))
	}

	if len(flags.Tags) > 0 {
		mapping, err := parseTagRewrites(flags.Tags)
		if err != nil {
			return nil, err
		}
		opts = append(opts, transform.WithTagRewrites(mapping))
	}
	return opts, nil
}

// parseTagRewrites turns "old=new" pairs into a rename map. An empty new name
// removes the tag.
func parseTagRewrites(pairs []string) (map[string]string, error) {
	mapping := make(map[string]string, len(pairs))
	for _, p := range pairs {
		oldName, newName, ok := strings.Cut(p, "=")
		if !ok || oldName == "" {
			return nil, fmt.Errorf("invalid tag rewrite %q: expected old=new", p)
		}
		mapping[oldName] = newName
	}
	return mapping, nil
}

func writeStats(w io.Writer, s transform.Stats) {
	rows := []struct {
		label string
		n     int
	}{
		{"External refs inlined", s.ExternalRefsInlined},
		{"External values inlined", s.ExternalValuesInlined},
		{"allOf merged", s.AllOfMerged},
		{"oneOf merged", s.OneOfMerged},
		{"anyOf merged", s.AnyOfMerged},
		{"Fields stripped", s.FieldsStripped},
		{"Enums extracted", s.EnumsExtracted},
		{"Tags rewritten", s.TagsRewritten},
		{"Schemas pruned", s.SchemasPruned},
		{"Refs checked", s.RefsChecked},
	}
	for _, r := range rows {
		if r.n > 0 {
			cliutil.Writef(w, "%s: %d\n", r.label, r.n)
		}
	}
}
