package resolver

import (
	"strconv"

	"github.com/erraggy/oasnorm/document"
	"github.com/erraggy/oasnorm/internal/pathutil"
)

// ComponentTable maps component names to schema subtrees. It shares storage with
// the document it was taken from, so additions and removals are visible there.
type ComponentTable map[string]any

// Resolve looks up a local reference in table. Both "#/components/schemas/" and
// "#/definitions/" prefixes are accepted. Returns (nil, false) when the prefix is
// not recognized or the name is absent.
func Resolve(ref string, table ComponentTable) (any, bool) {
	name, ok := pathutil.TrimSchemaPrefix(ref)
	if !ok {
		return nil, false
	}
	v, ok := table[name]
	return v, ok
}

// ComponentsOf returns the component table of doc: components.schemas when
// present, else a top-level definitions map, else a freshly created (and
// attached) components.schemas map.
func ComponentsOf(doc document.Map) ComponentTable {
	if table, ok := Lookup(doc); ok {
		return table
	}
	components, ok := doc["components"].(document.Map)
	if !ok {
		components = document.Map{}
		doc["components"] = components
	}
	schemas := document.Map{}
	components["schemas"] = schemas
	return ComponentTable(schemas)
}

// Lookup is like ComponentsOf but never modifies doc.
func Lookup(doc document.Map) (ComponentTable, bool) {
	if components, ok := doc["components"].(document.Map); ok {
		if schemas, ok := components["schemas"].(document.Map); ok {
			return ComponentTable(schemas), true
		}
	}
	if defs, ok := doc["definitions"].(document.Map); ok {
		return ComponentTable(defs), true
	}
	return nil, false
}

// Pointer evaluates a JSON Pointer (optionally "#"-prefixed) against root.
// Array tokens must be decimal indices.
func Pointer(root any, pointer string) (any, bool) {
	cur := root
	for _, tok := range pathutil.Tokens(pointer) {
		switch node := cur.(type) {
		case document.Map:
			next, ok := node[tok]
			if !ok {
				return nil, false
			}
			cur = next
		case document.List:
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}
