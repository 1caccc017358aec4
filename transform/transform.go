package transform

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/erraggy/oasnorm/document"
	"github.com/erraggy/oasnorm/oaserrors"
	"github.com/erraggy/oasnorm/resolver"
	"github.com/spf13/afero"
)

// Result is the outcome of a pipeline run.
type Result struct {
	// Document is the transformed document.
	Document document.Map
	// SourceFormat is the format the input was decoded from (YAML when the
	// input was an already-parsed document).
	SourceFormat document.SourceFormat
	// SourcePath is the input path, when the input was a file.
	SourcePath string
	// Preset is the preset name, or "" for a custom stage list.
	Preset string
	// Stages lists the stage names that ran, in order.
	Stages []string
	// Stats counts what the stages did.
	Stats Stats
	// Duration is the wall time of the whole run.
	Duration time.Duration
}

// Option is a function that configures a transform run.
type Option func(*runConfig) error

type runConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	content  []byte
	doc      document.Map

	contentName string
	format      document.SourceFormat

	preset     string
	stages     Pipeline
	stripRules []StripRule
	tagMapping map[string]string

	fs         afero.Fs
	baseDir    string
	loader     resolver.Loader
	cache      *resolver.Cache
	logger     document.Logger
	pruneBound int
}

// RunWithOptions transforms a document using functional options.
//
// Example:
//
//	result, err := transform.RunWithOptions(
//	    transform.WithFilePath("openapi.yaml"),
//	    transform.WithPreset(transform.PresetSchema),
//	    transform.WithPruneBound(20),
//	)
func RunWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("transform: invalid options: %w", err)
	}

	result := &Result{SourceFormat: cfg.format, Preset: cfg.preset}
	var doc document.Map
	switch {
	case cfg.filePath != nil:
		data, err := afero.ReadFile(cfg.fs, *cfg.filePath)
		if err != nil {
			return nil, fmt.Errorf("transform: reading %s: %w", *cfg.filePath, err)
		}
		result.SourcePath = *cfg.filePath
		doc, result.SourceFormat, err = document.ParseMap(data, *cfg.filePath)
		if err != nil {
			return nil, err
		}
	case cfg.content != nil:
		doc, result.SourceFormat, err = document.ParseMap(cfg.content, cfg.contentName)
		if err != nil {
			return nil, err
		}
	default:
		doc = document.CopyMap(cfg.doc)
	}

	pipeline := cfg.stages
	if pipeline == nil {
		if pipeline, err = Preset(cfg.preset); err != nil {
			return nil, fmt.Errorf("transform: %w", err)
		}
	}
	for _, rule := range cfg.stripRules {
		pipeline = append(pipeline, rule.Stage())
	}
	if len(cfg.tagMapping) > 0 {
		pipeline = append(pipeline, RewriteTags(cfg.tagMapping))
	}

	loader := cfg.loader
	if loader == nil {
		loader = resolver.NewFSLoader(cfg.fs, cfg.baseDir)
	}
	tc := &Context{
		Document:   doc,
		External:   resolver.NewExternal(loader, cfg.cache),
		Logger:     cfg.logger,
		PruneBound: cfg.pruneBound,
	}

	start := time.Now()
	if err := pipeline.Run(tc); err != nil {
		if result.SourcePath != "" {
			return nil, fmt.Errorf("%s: %w", result.SourcePath, err)
		}
		return nil, err
	}

	result.Document = tc.Document
	result.Stages = pipeline.Names()
	result.Stats = tc.Stats
	result.Duration = time.Since(start)
	document.OrNop(cfg.logger).Info("transformed document",
		"source", result.SourcePath,
		"preset", result.Preset,
		"stages", len(result.Stages),
		"duration", result.Duration)
	return result, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*runConfig, error) {
	cfg := &runConfig{
		format:     document.SourceFormatYAML,
		pruneBound: DefaultPruneBound,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	sources := 0
	if cfg.filePath != nil {
		sources++
	}
	if cfg.content != nil {
		sources++
	}
	if cfg.doc != nil {
		sources++
	}
	if sources == 0 {
		return nil, &oaserrors.ConfigError{Option: "input", Message: "no input source specified: use WithFilePath, WithContent or WithDocument"}
	}
	if sources > 1 {
		return nil, &oaserrors.ConfigError{Option: "input", Message: "multiple input sources specified: use only one of WithFilePath, WithContent or WithDocument"}
	}

	if cfg.preset != "" && cfg.stages != nil {
		return nil, &oaserrors.ConfigError{Option: "preset", Value: cfg.preset, Message: "cannot combine a preset with an explicit stage list"}
	}
	if cfg.preset == "" && cfg.stages == nil {
		cfg.preset = DefaultPreset
	}

	if cfg.fs == nil {
		cfg.fs = afero.NewOsFs()
	}
	if cfg.baseDir == "" {
		if cfg.filePath != nil {
			cfg.baseDir = filepath.Dir(*cfg.filePath)
		} else {
			cfg.baseDir = "."
		}
	}
	if cfg.cache == nil {
		cfg.cache = resolver.NewCache(resolver.DefaultCacheSize, 0)
	}
	return cfg, nil
}

// WithFilePath reads the document from a file. Sibling documents are resolved
// relative to its directory unless WithBaseDir is given.
func WithFilePath(path string) Option {
	return func(cfg *runConfig) error {
		if path == "" {
			return &oaserrors.ConfigError{Option: "file path", Message: "file path cannot be empty"}
		}
		cfg.filePath = &path
		return nil
	}
}

// WithContent decodes the document from raw YAML or JSON. The name is used
// for format detection and error messages.
func WithContent(data []byte, name string) Option {
	return func(cfg *runConfig) error {
		if data == nil {
			data = []byte{}
		}
		cfg.content = data
		cfg.contentName = name
		return nil
	}
}

// WithDocument transforms an already-parsed document. The document is copied
// and never modified.
func WithDocument(doc document.Map) Option {
	return func(cfg *runConfig) error {
		if doc == nil {
			return &oaserrors.ConfigError{Option: "document", Message: "document cannot be nil"}
		}
		cfg.doc = doc
		return nil
	}
}

// WithSourceFormat sets the format reported for a WithDocument input.
func WithSourceFormat(format document.SourceFormat) Option {
	return func(cfg *runConfig) error {
		cfg.format = format
		return nil
	}
}

// WithPreset selects a named pipeline.
func WithPreset(name string) Option {
	return func(cfg *runConfig) error {
		if _, err := Preset(name); err != nil {
			return err
		}
		cfg.preset = name
		return nil
	}
}

// WithStages runs an explicit stage list instead of a preset.
func WithStages(stages ...Stage) Option {
	return func(cfg *runConfig) error {
		cfg.stages = append(Pipeline{}, stages...)
		return nil
	}
}

// WithStripRules appends field-stripping stages after the pipeline.
func WithStripRules(rules ...StripRule) Option {
	return func(cfg *runConfig) error {
		for _, r := range rules {
			if r.Field == "" {
				return &oaserrors.ConfigError{Option: "strip rule", Message: "field cannot be empty"}
			}
		}
		cfg.stripRules = append(cfg.stripRules, rules...)
		return nil
	}
}

// WithTagRewrites appends a RewriteTags stage after the pipeline.
func WithTagRewrites(mapping map[string]string) Option {
	return func(cfg *runConfig) error {
		cfg.tagMapping = mapping
		return nil
	}
}

// WithFs sets the filesystem used for the input file and sibling documents.
func WithFs(fs afero.Fs) Option {
	return func(cfg *runConfig) error {
		cfg.fs = fs
		return nil
	}
}

// WithBaseDir sets the directory sibling documents are resolved against.
func WithBaseDir(dir string) Option {
	return func(cfg *runConfig) error {
		cfg.baseDir = dir
		return nil
	}
}

// WithLoader replaces the filesystem loader for sibling documents.
func WithLoader(loader resolver.Loader) Option {
	return func(cfg *runConfig) error {
		cfg.loader = loader
		return nil
	}
}

// WithCache shares a parsed-document cache across runs.
func WithCache(cache *resolver.Cache) Option {
	return func(cfg *runConfig) error {
		cfg.cache = cache
		return nil
	}
}

// WithLogger sets the logger for stage records.
func WithLogger(logger document.Logger) Option {
	return func(cfg *runConfig) error {
		cfg.logger = logger
		return nil
	}
}

// WithPruneBound caps the number of removing passes RemoveUnusedSchemas may make.
func WithPruneBound(n int) Option {
	return func(cfg *runConfig) error {
		if n <= 0 {
			return &oaserrors.ConfigError{Option: "prune bound", Value: n, Message: "must be positive"}
		}
		cfg.pruneBound = n
		return nil
	}
}
