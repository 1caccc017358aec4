package transform

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasnorm/document"
	"github.com/erraggy/oasnorm/walker"
)

// nameMapKeys are keys whose object values are keyed by user-chosen names
// rather than by schema keywords.
var nameMapKeys = map[string]bool{
	"properties":        true,
	"patternProperties": true,
	"definitions":       true,
	"$defs":             true,
	"examples":          true,
	"mapping":           true,
}

// isNameMap reports whether key, owned by the current node, is a name
// (property name, component name, path) that must never be treated as a keyword.
func isNameMap(wc *walker.WalkContext, key string) bool {
	tokens := wc.Tokens()
	switch len(tokens) {
	case 0:
		return false
	case 1:
		switch tokens[0] {
		case "paths", "webhooks":
			// Paths and webhooks objects allow x- extensions beside their names.
			return !strings.HasPrefix(key, "x-")
		case "parameters", "responses", "securityDefinitions":
			return true
		}
	case 2:
		if tokens[0] == "components" {
			return true
		}
	}
	return nameMapKeys[wc.Key()]
}

// StripField removes every keyword named field.
func StripField(field string) Stage {
	return Stage{Name: "strip-field:" + field, Apply: func(tc *Context) error {
		walker.WalkKey(tc.Document, field, func(wc *walker.WalkContext, node document.Map) walker.Action {
			if isNameMap(wc, field) {
				return walker.Continue
			}
			delete(node, field)
			tc.Stats.FieldsStripped++
			return walker.Continue
		})
		return nil
	}}
}

// StripFieldValue removes every keyword named field whose value equals value.
func StripFieldValue(field string, value any) Stage {
	return Stage{Name: fmt.Sprintf("strip-field-value:%s=%v", field, value), Apply: func(tc *Context) error {
		walker.WalkKey(tc.Document, field, func(wc *walker.WalkContext, node document.Map) walker.Action {
			if isNameMap(wc, field) || !document.Equal(node[field], value) {
				return walker.Continue
			}
			delete(node, field)
			tc.Stats.FieldsStripped++
			return walker.Continue
		})
		return nil
	}}
}

// StripFieldPrefix removes every keyword starting with prefix, such as
// vendor extensions ("x-").
func StripFieldPrefix(prefix string) Stage {
	return Stage{Name: "strip-prefix:" + prefix, Apply: func(tc *Context) error {
		walker.WalkKeyPrefix(tc.Document, prefix, func(wc *walker.WalkContext, node document.Map, key string) walker.Action {
			if isNameMap(wc, key) {
				return walker.Continue
			}
			delete(node, key)
			tc.Stats.FieldsStripped++
			return walker.Continue
		})
		return nil
	}}
}

// StripRule describes one field-stripping stage.
type StripRule struct {
	// Field is the keyword name, or the prefix when Prefix is set.
	Field string
	// Prefix strips every keyword starting with Field.
	Prefix bool
	// Value, when HasValue is set, restricts stripping to keywords equal to it.
	Value    any
	HasValue bool
}

// ParseStripRule parses "name", "name=value" or "prefix*". The value of a
// name=value rule is decoded as a YAML scalar, so "deprecated=true" matches the
// boolean.
func ParseStripRule(s string) (StripRule, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return StripRule{}, fmt.Errorf("transform: empty strip rule")
	}
	if prefix, ok := strings.CutSuffix(s, "*"); ok {
		return StripRule{Field: prefix, Prefix: true}, nil
	}
	name, raw, ok := strings.Cut(s, "=")
	if !ok {
		return StripRule{Field: s}, nil
	}
	if name == "" {
		return StripRule{}, fmt.Errorf("transform: strip rule %q has no field name", s)
	}
	value, _, err := document.Parse([]byte(raw), "")
	if err != nil || value == nil {
		value = raw
	}
	return StripRule{Field: name, Value: value, HasValue: true}, nil
}

// Stage returns the stage implementing the rule.
func (r StripRule) Stage() Stage {
	switch {
	case r.Prefix:
		return StripFieldPrefix(r.Field)
	case r.HasValue:
		return StripFieldValue(r.Field, r.Value)
	default:
		return StripField(r.Field)
	}
}
