package transform

import (
	"fmt"
	"time"

	"github.com/erraggy/oasnorm/document"
	"github.com/erraggy/oasnorm/resolver"
)

// DefaultPruneBound is the number of pruning passes allowed before
// RemoveUnusedSchemas gives up.
const DefaultPruneBound = 10

// Stage is one named document rewrite.
type Stage struct {
	Name  string
	Apply func(tc *Context) error
}

// Pipeline is an ordered list of stages.
type Pipeline []Stage

// Context is the state shared by the stages of one run.
type Context struct {
	// Document is the tree being rewritten in place.
	Document document.Map
	// External loads sibling documents. May be nil when the document has no
	// file-qualified references.
	External *resolver.External
	// Logger receives per-stage records. Nil means no logging.
	Logger document.Logger
	// PruneBound caps RemoveUnusedSchemas passes. Zero means DefaultPruneBound.
	PruneBound int
	// Stats accumulates what the stages did.
	Stats Stats
}

// NewContext creates a Context for doc with default settings.
func NewContext(doc document.Map) *Context {
	return &Context{Document: doc, Logger: document.NopLogger{}, PruneBound: DefaultPruneBound}
}

func (tc *Context) logger() document.Logger {
	return document.OrNop(tc.Logger)
}

func (tc *Context) pruneBound() int {
	if tc.PruneBound <= 0 {
		return DefaultPruneBound
	}
	return tc.PruneBound
}

// Stats counts the rewrites performed during a run.
type Stats struct {
	ExternalRefsInlined   int         `json:"externalRefsInlined"`
	ExternalValuesInlined int         `json:"externalValuesInlined"`
	AllOfMerged           int         `json:"allOfMerged"`
	OneOfMerged           int         `json:"oneOfMerged"`
	AnyOfMerged           int         `json:"anyOfMerged"`
	FieldsStripped        int         `json:"fieldsStripped"`
	EnumsExtracted        int         `json:"enumsExtracted"`
	TagsRewritten         int         `json:"tagsRewritten"`
	SchemasPruned         int         `json:"schemasPruned"`
	PrunePasses           int         `json:"prunePasses"`
	RefsChecked           int         `json:"refsChecked"`
	Stages                []StageStat `json:"stages,omitempty"`
}

// StageStat records how long one stage took.
type StageStat struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
}

// Names returns the stage names in order.
func (p Pipeline) Names() []string {
	names := make([]string, len(p))
	for i, s := range p {
		names[i] = s.Name
	}
	return names
}

// Run applies every stage in order and stops at the first failure.
func (p Pipeline) Run(tc *Context) error {
	if tc == nil || tc.Document == nil {
		return fmt.Errorf("transform: no document to transform")
	}
	log := tc.logger()
	for _, stage := range p {
		start := time.Now()
		if err := stage.Apply(tc); err != nil {
			log.Error("stage failed", "stage", stage.Name, "error", err)
			return fmt.Errorf("transform: stage %s: %w", stage.Name, err)
		}
		elapsed := time.Since(start)
		tc.Stats.Stages = append(tc.Stats.Stages, StageStat{Name: stage.Name, Duration: elapsed})
		log.Debug("stage complete", "stage", stage.Name, "duration", elapsed)
	}
	return nil
}

// Concat joins pipelines into one, preserving order.
func Concat(pipelines ...Pipeline) Pipeline {
	var out Pipeline
	for _, p := range pipelines {
		out = append(out, p...)
	}
	return out
}
