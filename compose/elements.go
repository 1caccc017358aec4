package compose

import (
	"fmt"
	"slices"

	"github.com/erraggy/oasnorm/document"
	"github.com/erraggy/oasnorm/internal/pathutil"
	"github.com/erraggy/oasnorm/oaserrors"
	"github.com/erraggy/oasnorm/resolver"
)

// Keywords handled by this package.
const (
	KeywordAllOf = "allOf"
	KeywordOneOf = "oneOf"
	KeywordAnyOf = "anyOf"
)

// merger carries the component table and the chain of references currently
// being expanded, which detects compositions that refer back to themselves.
type merger struct {
	table resolver.ComponentTable
	stack []string
}

// elements returns the composition array held under keyword, or ok=false when
// the key is absent.
func elements(node document.Map, keyword string) (list document.List, ok bool, err error) {
	raw, present := node[keyword]
	if !present {
		return nil, false, nil
	}
	list, isList := raw.(document.List)
	if !isList {
		return nil, true, &oaserrors.CompositionError{
			Keyword: keyword,
			Index:   -1,
			Message: fmt.Sprintf("value must be an array, got %T", raw),
		}
	}
	return list, true, nil
}

// resolve turns every element into a private, composition-free schema.
func (m *merger) resolve(list document.List, keyword string) ([]document.Map, error) {
	out := make([]document.Map, 0, len(list))
	for i, item := range list {
		el, ok := item.(document.Map)
		if !ok {
			return nil, &oaserrors.CompositionError{
				Keyword: keyword,
				Index:   i,
				Message: fmt.Sprintf("element must be an object, got %T", item),
			}
		}
		resolved, err := m.resolveElement(el, keyword, i)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}

func (m *merger) resolveElement(el document.Map, keyword string, index int) (document.Map, error) {
	ref, isRef := el["$ref"].(string)
	if !isRef {
		schema := document.CopyMap(el)
		return schema, m.flatten(schema)
	}

	if !pathutil.IsLocalRef(ref) {
		return nil, &oaserrors.ReferenceError{
			Ref:     ref,
			RefType: "file",
			Message: "external references must be resolved before merging compositions",
		}
	}
	if slices.Contains(m.stack, ref) {
		return nil, &oaserrors.ReferenceError{
			Ref:        ref,
			RefType:    "local",
			IsCircular: true,
			Message:    "composition refers back to itself",
		}
	}
	target, found := resolver.Resolve(ref, m.table)
	if !found {
		return nil, &oaserrors.ReferenceError{Ref: ref, RefType: "local", Message: "not found in component table"}
	}
	targetMap, ok := target.(document.Map)
	if !ok {
		return nil, &oaserrors.CompositionError{
			Keyword: keyword,
			Index:   index,
			Message: fmt.Sprintf("%s resolves to %T, not a schema object", ref, target),
		}
	}

	schema := document.CopyMap(targetMap)
	m.stack = append(m.stack, ref)
	err := m.flatten(schema)
	m.stack = m.stack[:len(m.stack)-1]
	return schema, err
}

// flatten merges any compositions held directly by schema.
func (m *merger) flatten(schema document.Map) error {
	if err := m.mergeAllOf(schema); err != nil {
		return err
	}
	if err := m.mergeOneOf(schema, KeywordOneOf); err != nil {
		return err
	}
	return m.mergeOneOf(schema, KeywordAnyOf)
}

// replaceContents swaps every key of node for those of merged, keeping the
// node's identity so parents holding it observe the change.
func replaceContents(node, merged document.Map) {
	clear(node)
	for k, v := range merged {
		node[k] = v
	}
}

// appendUnique appends v to list unless an equal value is already present.
func appendUnique(list document.List, v any) document.List {
	for _, existing := range list {
		if document.Equal(existing, v) {
			return list
		}
	}
	return append(list, v)
}
