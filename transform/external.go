package transform

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/erraggy/oasnorm/document"
	"github.com/erraggy/oasnorm/internal/naming"
	"github.com/erraggy/oasnorm/internal/pathutil"
	"github.com/erraggy/oasnorm/oaserrors"
	"github.com/erraggy/oasnorm/resolver"
	"github.com/erraggy/oasnorm/walker"
)

// ResolveExternalRefs imports the targets of file-qualified references into the
// local document and rewrites every reference to point at them.
//
// Targets addressed as "#/components/<kind>/<name>" or "#/definitions/<name>"
// become components of the same kind under the same name, with a numeric suffix
// when a different component already holds the name. References inside an
// imported target are followed too: local ones point into the target's own file
// and relative file names are resolved against that file's directory. Any other
// target (a whole file, or a pointer elsewhere) is inlined in place.
func ResolveExternalRefs() Stage {
	return Stage{Name: "resolve-external-refs", Apply: func(tc *Context) error {
		imp := &importer{tc: tc, imported: make(map[string]string)}
		var walkErr error
		walker.Walk(tc.Document, func(wc *walker.WalkContext, node document.Map) walker.Action {
			ref, ok := node["$ref"].(string)
			if !ok || pathutil.IsLocalRef(ref) {
				return walker.Continue
			}
			if err := imp.rewrite(node, ref, ""); err != nil {
				walkErr = withPath(err, wc.JSONPath())
				return walker.Stop
			}
			return walker.Continue
		})
		return walkErr
	}}
}

type importer struct {
	tc *Context
	// imported maps "<file>#<pointer>" to the local reference replacing it.
	imported map[string]string
	// inlining holds the whole-file or non-component targets currently being
	// inlined, to reject reference loops among them.
	inlining []string
}

// rewrite points node at the local copy of ref, which is relative to fromFile
// ("" for the root document).
func (imp *importer) rewrite(node document.Map, ref, fromFile string) error {
	key := imp.qualify(ref, fromFile)
	if local, ok := imp.imported[key]; ok {
		node["$ref"] = local
		return nil
	}

	file, pointer := pathutil.SplitRef(key)
	kind, name, isComponent := componentTarget(pointer)
	if !isComponent {
		return imp.inline(node, key, file)
	}

	if imp.tc.External == nil {
		return &oaserrors.ReferenceError{Ref: ref, RefType: "file", Message: "no loader configured for external references"}
	}
	target, err := imp.tc.External.Resolve(key)
	if err != nil {
		return err
	}

	table, prefix := imp.table(kind)
	name = naming.Disambiguate(name, func(candidate string) bool {
		existing, taken := table[candidate]
		return taken && !document.Equal(existing, target)
	})
	local := prefix + name
	imp.imported[key] = local
	node["$ref"] = local

	if _, exists := table[name]; exists {
		return nil
	}
	table[name] = target
	imp.tc.Stats.ExternalRefsInlined++
	imp.tc.logger().Debug("imported external component", "ref", key, "as", local)
	return imp.followRefs(target, file)
}

// inline replaces node with the target of key.
func (imp *importer) inline(node document.Map, key, file string) error {
	if slices.Contains(imp.inlining, key) {
		return &oaserrors.ReferenceError{Ref: key, RefType: "file", IsCircular: true, Message: "inlined reference refers back to itself"}
	}
	if imp.tc.External == nil {
		return &oaserrors.ReferenceError{Ref: key, RefType: "file", Message: "no loader configured for external references"}
	}
	target, err := imp.tc.External.Resolve(key)
	if err != nil {
		return err
	}
	targetMap, ok := target.(document.Map)
	if !ok {
		return &oaserrors.ReferenceError{Ref: key, RefType: "file", Message: fmt.Sprintf("target is %T, not an object", target)}
	}

	imp.inlining = append(imp.inlining, key)
	defer func() { imp.inlining = imp.inlining[:len(imp.inlining)-1] }()

	// The target itself may be a bare reference.
	if ref, ok := targetMap["$ref"].(string); ok && len(targetMap) == 1 {
		return imp.rewrite(node, ref, file)
	}
	if err := imp.followRefs(targetMap, file); err != nil {
		return err
	}
	clear(node)
	for k, v := range targetMap {
		node[k] = v
	}
	imp.tc.Stats.ExternalRefsInlined++
	return nil
}

// followRefs rewrites the references inside a subtree loaded from file.
func (imp *importer) followRefs(subtree any, file string) error {
	var walkErr error
	walker.Walk(subtree, func(wc *walker.WalkContext, node document.Map) walker.Action {
		ref, ok := node["$ref"].(string)
		if !ok {
			return walker.Continue
		}
		if err := imp.rewrite(node, ref, file); err != nil {
			walkErr = err
			return walker.Stop
		}
		return walker.Continue
	})
	return walkErr
}

// qualify makes ref's file part relative to the root document's directory.
// A local reference found in fromFile points into fromFile itself.
func (imp *importer) qualify(ref, fromFile string) string {
	file, pointer := pathutil.SplitRef(ref)
	switch {
	case file == "":
		file = fromFile
	case fromFile != "" && !path.IsAbs(file):
		file = path.Join(path.Dir(fromFile), file)
	}
	return path.Clean(file) + pointer
}

// table returns the local table for a component kind and its reference prefix.
func (imp *importer) table(kind string) (resolver.ComponentTable, string) {
	doc := imp.tc.Document
	if kind == "schemas" {
		if _, hasDefs := doc["definitions"]; hasDefs {
			if _, hasComponents := doc["components"]; !hasComponents {
				return resolver.ComponentsOf(doc), pathutil.RefPrefixDefinitions
			}
		}
		return resolver.ComponentsOf(doc), pathutil.RefPrefixSchemas
	}
	components, ok := doc["components"].(document.Map)
	if !ok {
		components = document.Map{}
		doc["components"] = components
	}
	table, ok := components[kind].(document.Map)
	if !ok {
		table = document.Map{}
		components[kind] = table
	}
	return resolver.ComponentTable(table), "#/components/" + kind + "/"
}

// componentTarget reports the component kind and name addressed by pointer.
func componentTarget(pointer string) (kind, name string, ok bool) {
	tokens := pathutil.Tokens(pointer)
	switch {
	case len(tokens) == 3 && tokens[0] == "components":
		return tokens[1], tokens[2], true
	case len(tokens) == 2 && tokens[0] == "definitions":
		return "schemas", tokens[1], true
	default:
		return "", "", false
	}
}

// InlineExternalValues replaces "externalValue: <file>" with "value: <content>".
// URLs are left untouched.
func InlineExternalValues() Stage {
	return Stage{Name: "inline-external-values", Apply: func(tc *Context) error {
		var walkErr error
		walker.WalkKey(tc.Document, "externalValue", func(wc *walker.WalkContext, node document.Map) walker.Action {
			name, ok := node["externalValue"].(string)
			if !ok || strings.Contains(name, "://") {
				return walker.Continue
			}
			if tc.External == nil {
				walkErr = &oaserrors.ReferenceError{Ref: name, RefType: "file", Path: wc.JSONPath(), Message: "no loader configured for external values"}
				return walker.Stop
			}
			value, err := tc.External.Value(name)
			if err != nil {
				walkErr = &oaserrors.ReferenceError{Ref: name, RefType: "file", Path: wc.JSONPath(), Cause: err}
				return walker.Stop
			}
			delete(node, "externalValue")
			node["value"] = value
			tc.Stats.ExternalValuesInlined++
			return walker.Continue
		})
		return walkErr
	}}
}
