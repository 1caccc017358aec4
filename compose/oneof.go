package compose

import (
	"fmt"
	"maps"
	"slices"

	"github.com/erraggy/oasnorm/document"
	"github.com/erraggy/oasnorm/oaserrors"
	"github.com/erraggy/oasnorm/resolver"
)

// propertyStats counts, for one property name, how the alternatives treat it.
type propertyStats struct {
	declared    int
	required    int
	constrained int
	literals    document.List
}

// MergeOneOf collapses the alternatives held under keyword ("oneOf" or "anyOf")
// into node. The keyword and any discriminator are removed. An empty
// alternatives array only removes the keyword.
func MergeOneOf(node document.Map, keyword string, table resolver.ComponentTable) error {
	if keyword != KeywordOneOf && keyword != KeywordAnyOf {
		return &oaserrors.CompositionError{
			Keyword: keyword,
			Index:   -1,
			Message: fmt.Sprintf("unsupported keyword, want %s or %s", KeywordOneOf, KeywordAnyOf),
		}
	}
	m := &merger{table: table}
	return m.mergeOneOf(node, keyword)
}

func (m *merger) mergeOneOf(node document.Map, keyword string) error {
	list, ok, err := elements(node, keyword)
	if err != nil || !ok {
		return err
	}
	if len(list) == 0 {
		delete(node, keyword)
		return nil
	}

	alternatives, err := m.resolve(list, keyword)
	if err != nil {
		return err
	}

	properties := document.Map{}
	if own, ok := node["properties"].(document.Map); ok {
		for name, schema := range own {
			properties[name] = schema
		}
	}

	stats := make(map[string]*propertyStats)
	for _, alt := range alternatives {
		requiredHere := make(map[string]bool)
		for _, name := range document.StringSlice(alt, "required") {
			requiredHere[name] = true
		}
		props, _ := alt["properties"].(document.Map)
		for _, name := range document.SortedKeys(props) {
			st, ok := stats[name]
			if !ok {
				st = &propertyStats{}
				stats[name] = st
			}
			st.declared++
			if requiredHere[name] {
				st.required++
			}
			if schema, ok := props[name].(document.Map); ok {
				st.collect(schema)
			}
			properties[name] = props[name]
		}
	}

	for name, st := range stats {
		schema, ok := properties[name].(document.Map)
		if !ok || st.declared < 2 {
			continue
		}
		switch {
		case st.constrained == st.declared:
			delete(schema, "const")
			schema["enum"] = st.literals
		case st.constrained > 0:
			delete(schema, "const")
			delete(schema, "enum")
		}
	}

	required := document.StringSlice(node, "required")
	present := make(map[string]bool, len(required))
	for _, name := range required {
		present[name] = true
	}
	for _, name := range slices.Sorted(maps.Keys(stats)) {
		st := stats[name]
		if st.declared == len(alternatives) && st.required == len(alternatives) && !present[name] {
			present[name] = true
			required = append(required, name)
		}
	}

	node["type"] = firstOf(node, alternatives, "type", "object")
	node["additionalProperties"] = firstOf(node, alternatives, "additionalProperties", false)
	if len(properties) > 0 {
		node["properties"] = properties
	}
	if len(required) > 0 {
		node["required"] = document.ToList(required)
	} else {
		delete(node, "required")
	}
	delete(node, keyword)
	delete(node, "discriminator")
	return nil
}

// collect records the literals an alternative pins for a property.
func (st *propertyStats) collect(schema document.Map) {
	c, hasConst := schema["const"]
	enum, hasEnum := schema["enum"].(document.List)
	if !hasConst && !hasEnum {
		return
	}
	st.constrained++
	if hasConst {
		st.literals = appendUnique(st.literals, c)
	}
	for _, v := range enum {
		st.literals = appendUnique(st.literals, v)
	}
}

// firstOf returns node[key] when present, else the first alternative's value,
// else fallback.
func firstOf(node document.Map, alternatives []document.Map, key string, fallback any) any {
	if v, ok := node[key]; ok {
		return v
	}
	if v, ok := alternatives[0][key]; ok {
		return v
	}
	return fallback
}
