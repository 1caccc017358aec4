package differ

import (
	"fmt"
	"slices"

	"github.com/erraggy/oasnorm/document"
	"github.com/erraggy/oasnorm/internal/pathutil"
)

// ChangeType indicates whether a change is an addition, removal, or modification
type ChangeType string

const (
	// ChangeTypeAdded indicates a path present in the candidate only
	ChangeTypeAdded ChangeType = "added"
	// ChangeTypeRemoved indicates a path present in the baseline only
	ChangeTypeRemoved ChangeType = "removed"
	// ChangeTypeModified indicates a path present in both with different values
	ChangeTypeModified ChangeType = "modified"
)

// Change is one difference between two documents.
type Change struct {
	// Path is the JSON Pointer of the changed element ("" is the root)
	Path string
	// Type indicates if this is an addition, removal, or modification
	Type ChangeType
}

// String returns a formatted string representation of the change
func (c Change) String() string {
	var symbol string
	switch c.Type {
	case ChangeTypeAdded:
		symbol = "+"
	case ChangeTypeRemoved:
		symbol = "-"
	default:
		symbol = "~"
	}
	path := c.Path
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("%s %s", symbol, path)
}

// Summary lists the changed paths of one comparison, each list sorted.
type Summary struct {
	AddedPaths    []string `json:"addedPaths"`
	RemovedPaths  []string `json:"removedPaths"`
	ModifiedPaths []string `json:"modifiedPaths"`
	AddedCount    int      `json:"addedCount"`
	RemovedCount  int      `json:"removedCount"`
	ModifiedCount int      `json:"modifiedCount"`
}

// HasChanges reports whether any path differs.
func (s Summary) HasChanges() bool {
	return s.AddedCount+s.RemovedCount+s.ModifiedCount > 0
}

// Changes returns the summary as a single list: additions, then removals,
// then modifications.
func (s Summary) Changes() []Change {
	out := make([]Change, 0, s.AddedCount+s.RemovedCount+s.ModifiedCount)
	for _, p := range s.AddedPaths {
		out = append(out, Change{Path: p, Type: ChangeTypeAdded})
	}
	for _, p := range s.RemovedPaths {
		out = append(out, Change{Path: p, Type: ChangeTypeRemoved})
	}
	for _, p := range s.ModifiedPaths {
		out = append(out, Change{Path: p, Type: ChangeTypeModified})
	}
	return out
}

// Compare reports the paths added, removed and modified going from baseline to
// candidate.
func Compare(baseline, candidate any) Summary {
	c := &comparison{ptr: pathutil.Get()}
	defer pathutil.Put(c.ptr)
	c.compare(baseline, candidate)

	s := Summary{
		AddedPaths:    nonNil(c.added),
		RemovedPaths:  nonNil(c.removed),
		ModifiedPaths: nonNil(c.modified),
	}
	slices.Sort(s.AddedPaths)
	slices.Sort(s.RemovedPaths)
	slices.Sort(s.ModifiedPaths)
	s.AddedCount = len(s.AddedPaths)
	s.RemovedCount = len(s.RemovedPaths)
	s.ModifiedCount = len(s.ModifiedPaths)
	return s
}

type comparison struct {
	ptr      *pathutil.PointerBuilder
	added    []string
	removed  []string
	modified []string
}

func (c *comparison) compare(a, b any) {
	switch av := a.(type) {
	case document.Map:
		if bv, ok := b.(document.Map); ok {
			c.compareMaps(av, bv)
			return
		}
	case document.List:
		if bv, ok := b.(document.List); ok {
			c.compareLists(av, bv)
			return
		}
	}
	if !document.Equal(a, b) {
		c.modified = append(c.modified, c.ptr.String())
	}
}

func (c *comparison) compareMaps(a, b document.Map) {
	keys := make(document.Map, len(a)+len(b))
	for k := range a {
		keys[k] = nil
	}
	for k := range b {
		keys[k] = nil
	}
	for _, k := range document.SortedKeys(keys) {
		av, inA := a[k]
		bv, inB := b[k]
		c.ptr.Push(k)
		switch {
		case !inA:
			c.added = append(c.added, c.ptr.String())
		case !inB:
			c.removed = append(c.removed, c.ptr.String())
		default:
			c.compare(av, bv)
		}
		c.ptr.Pop()
	}
}

func (c *comparison) compareLists(a, b document.List) {
	for i := range max(len(a), len(b)) {
		c.ptr.PushIndex(i)
		switch {
		case i >= len(a):
			c.added = append(c.added, c.ptr.String())
		case i >= len(b):
			c.removed = append(c.removed, c.ptr.String())
		default:
			c.compare(a[i], b[i])
		}
		c.ptr.Pop()
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
