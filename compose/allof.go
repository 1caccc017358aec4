package compose

import (
	"github.com/erraggy/oasnorm/document"
	"github.com/erraggy/oasnorm/resolver"
)

// MergeAllOf replaces node's contents with the merge of its allOf elements.
// A node without allOf is left untouched; an empty allOf is simply removed.
func MergeAllOf(node document.Map, table resolver.ComponentTable) error {
	m := &merger{table: table}
	return m.mergeAllOf(node)
}

func (m *merger) mergeAllOf(node document.Map) error {
	list, ok, err := elements(node, KeywordAllOf)
	if err != nil || !ok {
		return err
	}
	if len(list) == 0 {
		delete(node, KeywordAllOf)
		return nil
	}

	resolved, err := m.resolve(list, KeywordAllOf)
	if err != nil {
		return err
	}

	var merged document.Map
	switch Classify(resolved) {
	case ObjectComposition:
		merged = mergeObjects(resolved)
	default:
		merged = mergeScalars(resolved)
	}
	replaceContents(node, merged)
	return nil
}

// mergeObjects unions properties (last element wins) and required names into a
// closed object schema.
func mergeObjects(elements []document.Map) document.Map {
	properties := document.Map{}
	var required []string
	seen := make(map[string]bool)

	for _, el := range elements {
		if props, ok := el["properties"].(document.Map); ok {
			for name, schema := range props {
				properties[name] = schema
			}
		}
		for _, name := range document.StringSlice(el, "required") {
			if !seen[name] {
				seen[name] = true
				required = append(required, name)
			}
		}
	}

	merged := document.Map{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		merged["required"] = document.ToList(required)
	}
	return merged
}

// mergeScalars unions constraint keywords with the first element winning,
// intersects enums, and lets a const suppress enum handling entirely.
func mergeScalars(elements []document.Map) document.Map {
	merged := document.Map{}
	var (
		enum      document.List
		haveEnum  bool
		constVal  any
		haveConst bool
	)

	for _, el := range elements {
		for _, key := range document.SortedKeys(el) {
			value := el[key]
			switch key {
			case "const":
				constVal, haveConst = value, true
			case "enum":
				values, ok := value.(document.List)
				if !ok {
					continue
				}
				if !haveEnum {
					enum, haveEnum = dedupe(values), true
					continue
				}
				enum = intersect(enum, values)
			default:
				if _, exists := merged[key]; !exists {
					merged[key] = value
				}
			}
		}
	}

	switch {
	case haveConst:
		merged["const"] = constVal
	case haveEnum:
		merged["enum"] = enum
	}
	return merged
}

func dedupe(values document.List) document.List {
	out := make(document.List, 0, len(values))
	for _, v := range values {
		out = appendUnique(out, v)
	}
	return out
}

// intersect keeps the values of a, in order, that also appear in b.
func intersect(a, b document.List) document.List {
	out := make(document.List, 0, len(a))
	for _, v := range a {
		for _, w := range b {
			if document.Equal(v, w) {
				out = append(out, v)
				break
			}
		}
	}
	return out
}
