package resolver

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/erraggy/oasnorm/document"
	"github.com/erraggy/oasnorm/internal/pathutil"
	"github.com/erraggy/oasnorm/oaserrors"
	"github.com/spf13/afero"
)

// Loader reads sibling documents by name. Names are slash-separated and
// relative to the loader's base.
type Loader interface {
	ReadFile(name string) ([]byte, error)
}

// FSLoader reads documents from an afero.Fs below a base directory.
type FSLoader struct {
	fs      afero.Fs
	baseDir string
}

// NewFSLoader creates a loader rooted at baseDir on fs.
// A nil fs uses the operating system filesystem.
func NewFSLoader(fs afero.Fs, baseDir string) *FSLoader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FSLoader{fs: fs, baseDir: baseDir}
}

// ReadFile implements Loader.
func (l *FSLoader) ReadFile(name string) ([]byte, error) {
	full := filepath.Join(l.baseDir, filepath.FromSlash(name))
	data, err := afero.ReadFile(l.fs, full)
	if err != nil {
		return nil, fmt.Errorf("resolver: reading %s: %w", name, err)
	}
	return data, nil
}

var _ Loader = (*FSLoader)(nil)

// External resolves file-qualified references through a Loader, caching parsed
// documents in a caller-owned Cache.
type External struct {
	loader Loader
	cache  *Cache
}

// NewExternal creates an External. A nil cache disables caching.
func NewExternal(loader Loader, cache *Cache) *External {
	return &External{loader: loader, cache: cache}
}

// Document returns the parsed document stored under name. The returned tree is
// shared with the cache and must not be mutated; use Resolve for a private copy.
func (e *External) Document(name string) (any, error) {
	name = path.Clean(name)
	if e.cache != nil {
		if doc, ok := e.cache.Get(name); ok {
			return doc, nil
		}
	}
	data, err := e.loader.ReadFile(name)
	if err != nil {
		return nil, err
	}
	doc, _, err := document.Parse(data, name)
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		e.cache.Add(name, doc)
	}
	return doc, nil
}

// Resolve loads the file part of ref and evaluates its fragment, returning a
// deep copy of the target. A ref without a fragment yields the whole document.
func (e *External) Resolve(ref string) (any, error) {
	file, pointer := pathutil.SplitRef(ref)
	if file == "" {
		return nil, &oaserrors.ReferenceError{Ref: ref, RefType: "local", Message: "not a file reference"}
	}
	doc, err := e.Document(file)
	if err != nil {
		return nil, &oaserrors.ReferenceError{Ref: ref, RefType: "file", Cause: err}
	}
	target, ok := Pointer(doc, pointer)
	if !ok {
		return nil, &oaserrors.ReferenceError{Ref: ref, RefType: "file", Message: "target not found in " + file}
	}
	return document.DeepCopy(target), nil
}

// Value loads the content of name for inlining. YAML and JSON files are decoded;
// anything else, or content that fails to decode, is returned as a string.
func (e *External) Value(name string) (any, error) {
	data, err := e.loader.ReadFile(path.Clean(name))
	if err != nil {
		return nil, err
	}
	switch path.Ext(name) {
	case ".json", ".yaml", ".yml":
		if doc, _, err := document.Parse(data, name); err == nil {
			return doc, nil
		}
	}
	return string(data), nil
}
