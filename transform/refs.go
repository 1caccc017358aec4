package transform

import (
	"github.com/erraggy/oasnorm/document"
	"github.com/erraggy/oasnorm/internal/pathutil"
	"github.com/erraggy/oasnorm/oaserrors"
	"github.com/erraggy/oasnorm/resolver"
	"github.com/erraggy/oasnorm/walker"
)

// CheckRefs fails on the first reference that is not local or does not resolve.
// Component references are looked up in the component table; any other local
// pointer is evaluated against the whole document.
func CheckRefs() Stage {
	return Stage{Name: "check-refs", Apply: func(tc *Context) error {
		table, _ := resolver.Lookup(tc.Document)
		var checkErr error
		walker.Walk(tc.Document, func(wc *walker.WalkContext, node document.Map) walker.Action {
			ref, ok := node["$ref"].(string)
			if !ok {
				return walker.Continue
			}
			tc.Stats.RefsChecked++
			if !pathutil.IsLocalRef(ref) {
				checkErr = &oaserrors.ReferenceError{Ref: ref, RefType: "file", Path: wc.JSONPath(), Message: "external reference was not resolved"}
				return walker.Stop
			}
			if !refResolves(tc.Document, table, ref) {
				checkErr = &oaserrors.ReferenceError{Ref: ref, RefType: "local", Path: wc.JSONPath(), Message: "target does not exist"}
				return walker.Stop
			}
			return walker.Continue
		})
		return checkErr
	}}
}

func refResolves(doc document.Map, table resolver.ComponentTable, ref string) bool {
	if _, isComponent := pathutil.TrimSchemaPrefix(ref); isComponent {
		_, found := resolver.Resolve(ref, table)
		return found
	}
	_, found := resolver.Pointer(doc, ref)
	return found
}
