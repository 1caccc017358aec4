package differ

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/erraggy/oasnorm/document"
	"github.com/erraggy/oasnorm/oaserrors"
	"golang.org/x/sync/errgroup"
)

// FilePair holds the two versions of one file. A nil Baseline marks a new
// file; a nil Candidate marks a deleted one.
type FilePair struct {
	Name      string
	Baseline  []byte
	Candidate []byte
}

// FileReport is the comparison result for one file.
type FileReport struct {
	FileName  string  `json:"fileName"`
	Changed   bool    `json:"changed"`
	IsNew     bool    `json:"isNew"`
	IsDeleted bool    `json:"isDeleted"`
	Summary   Summary `json:"summary"`
	Patch     string  `json:"patch"`
}

// Report aggregates the comparison of a set of files.
type Report struct {
	GeneratedAt   time.Time    `json:"generatedAt"`
	SourceLabel   string       `json:"sourceLabel"`
	TargetLabel   string       `json:"targetLabel"`
	ComparedCount int          `json:"comparedCount"`
	ChangedCount  int          `json:"changedCount"`
	Files         []FileReport `json:"files"`
}

// HasChanges reports whether any file changed.
func (r *Report) HasChanges() bool {
	return r.ChangedCount > 0
}

// ChangedFiles returns the reports of changed files, in name order.
func (r *Report) ChangedFiles() []FileReport {
	var out []FileReport
	for _, f := range r.Files {
		if f.Changed {
			out = append(out, f)
		}
	}
	return out
}

// JSON returns the report as indented JSON with a trailing newline.
func (r *Report) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("differ: marshaling report: %w", err)
	}
	return append(data, '\n'), nil
}

// Option is a function that configures a comparison
type Option func(*compareConfig) error

type compareConfig struct {
	contextLines int
	sourceLabel  string
	targetLabel  string
	clock        func() time.Time
	jobs         int
	logger       document.Logger
}

// CompareFiles compares every pair and builds a report. Both sides of a pair
// are parsed, compared structurally, and re-serialized to canonical YAML for
// the patch, so formatting-only edits do not count as changes. Pairs are
// processed concurrently; files appear in the report sorted by name.
func CompareFiles(ctx context.Context, pairs []FilePair, opts ...Option) (*Report, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("differ: invalid options: %w", err)
	}

	log := document.OrNop(cfg.logger)
	files := make([]FileReport, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(cfg.jobs, len(pairs))))
	for i, pair := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fr, err := compareFile(pair, cfg.contextLines)
			if err != nil {
				return err
			}
			log.Debug("compared file",
				"name", fr.FileName,
				"changed", fr.Changed,
				"added", fr.Summary.AddedCount,
				"removed", fr.Summary.RemovedCount,
				"modified", fr.Summary.ModifiedCount)
			files[i] = fr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(files, func(a, b FileReport) int {
		return strings.Compare(a.FileName, b.FileName)
	})
	report := &Report{
		GeneratedAt:   cfg.clock().UTC(),
		SourceLabel:   cfg.sourceLabel,
		TargetLabel:   cfg.targetLabel,
		ComparedCount: len(files),
		Files:         files,
	}
	for _, f := range files {
		if f.Changed {
			report.ChangedCount++
		}
	}
	log.Info("compared files",
		"compared", report.ComparedCount,
		"changed", report.ChangedCount)
	return report, nil
}

func compareFile(pair FilePair, contextLines int) (FileReport, error) {
	fr := FileReport{
		FileName:  pair.Name,
		IsNew:     pair.Baseline == nil,
		IsDeleted: pair.Candidate == nil,
	}
	if fr.IsNew && fr.IsDeleted {
		return fr, &oaserrors.PatchError{Label: pair.Name, Message: "file is missing on both sides"}
	}

	baseline, baselineText, err := canonical(pair.Baseline, pair.Name)
	if err != nil {
		return fr, err
	}
	candidate, candidateText, err := canonical(pair.Candidate, pair.Name)
	if err != nil {
		return fr, err
	}

	// A missing side compares as an empty document of the other side's shape.
	switch {
	case fr.IsNew:
		baseline = emptyLike(candidate)
	case fr.IsDeleted:
		candidate = emptyLike(baseline)
	}

	fr.Summary = Compare(baseline, candidate)
	fr.Changed = fr.IsNew || fr.IsDeleted || fr.Summary.HasChanges()
	if !fr.Changed {
		return fr, nil
	}
	fr.Patch, err = UnifiedPatch(baselineText, candidateText, pair.Name, contextLines)
	return fr, err
}

// canonical parses data and re-serializes it as YAML. Nil data yields a nil
// tree and empty text.
func canonical(data []byte, name string) (any, string, error) {
	if data == nil {
		return nil, "", nil
	}
	tree, _, err := document.Parse(data, name)
	if err != nil {
		return nil, "", err
	}
	if tree == nil {
		return nil, "", nil
	}
	text, err := document.Marshal(tree, document.SourceFormatYAML)
	if err != nil {
		return nil, "", err
	}
	return tree, string(text), nil
}

func emptyLike(v any) any {
	switch v.(type) {
	case document.Map:
		return document.Map{}
	case document.List:
		return document.List{}
	default:
		return nil
	}
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*compareConfig, error) {
	cfg := &compareConfig{
		contextLines: DefaultContextLines,
		sourceLabel:  "baseline",
		targetLabel:  "candidate",
		clock:        time.Now,
		jobs:         runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithContextLines sets the number of unchanged lines around each patch hunk.
func WithContextLines(n int) Option {
	return func(cfg *compareConfig) error {
		if n < 0 {
			return &oaserrors.ConfigError{Option: "context lines", Value: n, Message: "must not be negative"}
		}
		cfg.contextLines = n
		return nil
	}
}

// WithSourceLabel names the baseline side in the report.
func WithSourceLabel(label string) Option {
	return func(cfg *compareConfig) error {
		cfg.sourceLabel = label
		return nil
	}
}

// WithTargetLabel names the candidate side in the report.
func WithTargetLabel(label string) Option {
	return func(cfg *compareConfig) error {
		cfg.targetLabel = label
		return nil
	}
}

// WithClock sets the time source for Report.GeneratedAt.
func WithClock(clock func() time.Time) Option {
	return func(cfg *compareConfig) error {
		if clock == nil {
			return &oaserrors.ConfigError{Option: "clock", Message: "clock cannot be nil"}
		}
		cfg.clock = clock
		return nil
	}
}

// WithJobs caps the number of files compared concurrently.
// Zero or less uses GOMAXPROCS.
func WithJobs(n int) Option {
	return func(cfg *compareConfig) error {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		cfg.jobs = n
		return nil
	}
}

// WithLogger sets the logger for comparison records.
func WithLogger(logger document.Logger) Option {
	return func(cfg *compareConfig) error {
		cfg.logger = logger
		return nil
	}
}
