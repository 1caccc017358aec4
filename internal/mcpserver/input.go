package mcpserver

import (
	"errors"
	"fmt"

	"github.com/erraggy/oasnorm/resolver"
	"github.com/erraggy/oasnorm/transform"
	"github.com/spf13/afero"
)

// docInput represents the two ways a document can be provided to a tool.
// At most one of File or Content may be set.
type docInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a YAML or JSON document on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

// fsys is the filesystem tools read from and write to. Tests swap in a
// memory filesystem.
var fsys afero.Fs = afero.NewOsFs()

// siblingCache holds sibling documents loaded while resolving external
// references. It is shared by every normalize call in the session.
var siblingCache = newSiblingCache()

func newSiblingCache() *resolver.Cache {
	if !cfg.CacheEnabled {
		return nil
	}
	return resolver.NewCache(cfg.CacheSize, cfg.CacheTTL)
}

var errNoInput = errors.New("exactly one of file or content must be provided")

func (d docInput) empty() bool {
	return d.File == "" && d.Content == ""
}

func (d docInput) validate() error {
	if d.File != "" && d.Content != "" {
		return fmt.Errorf("exactly one of file or content must be provided (got 2)")
	}
	if d.empty() {
		return errNoInput
	}
	if int64(len(d.Content)) > cfg.MaxInlineSize {
		return fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASNORM_MAX_INLINE_SIZE to increase",
			len(d.Content), cfg.MaxInlineSize)
	}
	return nil
}

// read returns the document bytes. An empty input yields nil data, which the
// differ treats as an absent side.
func (d docInput) read() ([]byte, error) {
	if d.empty() {
		return nil, nil
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	if d.File != "" {
		return afero.ReadFile(fsys, d.File)
	}
	return []byte(d.Content), nil
}

// transformOptions returns the input source options for a pipeline run.
func (d docInput) transformOptions() ([]transform.Option, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	opts := []transform.Option{transform.WithFs(fsys)}
	if d.File != "" {
		opts = append(opts, transform.WithFilePath(d.File))
	} else {
		opts = append(opts, transform.WithContent([]byte(d.Content), ""))
	}
	if siblingCache != nil {
		opts = append(opts, transform.WithCache(siblingCache))
	}
	return opts, nil
}
