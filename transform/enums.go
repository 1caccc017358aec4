package transform

import (
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/oasnorm/document"
	"github.com/erraggy/oasnorm/internal/naming"
	"github.com/erraggy/oasnorm/internal/pathutil"
	"github.com/erraggy/oasnorm/resolver"
	"github.com/erraggy/oasnorm/walker"
)

// ExtractEnums promotes inline enum schemas below the top level of the
// document into named components and replaces them with references.
//
// Structurally equal candidates share one component; a candidate without a
// description inherits its immediate parent's description, and that inherited
// description is part of the comparison. Names come from the nearest enclosing
// property or parameter, PascalCased with an "Enum" suffix and a numeric suffix
// when the name is already taken by a different schema. Component schemas that
// are themselves enums stay where they are.
func ExtractEnums() Stage {
	return Stage{Name: "extract-enums", Apply: func(tc *Context) error {
		ex := &enumExtractor{tc: tc}
		walker.Walk(tc.Document, ex.visit)
		return nil
	}}
}

type enumExtractor struct {
	tc    *Context
	table resolver.ComponentTable
}

func (ex *enumExtractor) visit(wc *walker.WalkContext, node document.Map) walker.Action {
	tokens := wc.Tokens()
	if skipEnumSubtree(tokens) {
		return walker.SkipChildren
	}
	if _, ok := node["enum"].(document.List); !ok || isComponentRoot(tokens) || isParameterObject(node) {
		return walker.Continue
	}
	if _, isRef := node["$ref"]; isRef || len(tokens) == 0 {
		return walker.Continue
	}

	candidate := document.CopyMap(node)
	if _, has := candidate["description"]; !has {
		if parent := wc.Parent(); parent != nil {
			if desc, ok := parent["description"].(string); ok {
				candidate["description"] = desc
			}
		}
	}

	if ex.table == nil {
		ex.table = resolver.ComponentsOf(ex.tc.Document)
	}
	name := ex.nameFor(wc, candidate)
	if _, exists := ex.table[name]; !exists {
		ex.table[name] = candidate
		ex.tc.Stats.EnumsExtracted++
		ex.tc.logger().Debug("extracted enum", "name", name, "from", wc.JSONPath())
	}

	clear(node)
	node["$ref"] = ex.componentRef(name)
	return walker.SkipChildren
}

// nameFor returns the component name for candidate, reusing an equal
// component when one exists.
func (ex *enumExtractor) nameFor(wc *walker.WalkContext, candidate document.Map) string {
	for _, existing := range document.SortedKeys(document.Map(ex.table)) {
		if document.Equal(ex.table[existing], candidate) {
			return existing
		}
	}
	base := naming.EnumName(enumBaseName(wc))
	return naming.Disambiguate(base, func(n string) bool {
		_, taken := ex.table[n]
		return taken
	})
}

// componentRef builds the local reference to an extracted component, using
// definitions only for documents that have no components object.
func (ex *enumExtractor) componentRef(name string) string {
	if _, hasComponents := ex.tc.Document["components"]; !hasComponents {
		if _, hasDefs := ex.tc.Document["definitions"]; hasDefs {
			return pathutil.DefinitionRef(name)
		}
	}
	return pathutil.SchemaRef(name)
}

// enumBaseName finds the nearest enclosing property name, parameter name or
// component name for the node being visited.
func enumBaseName(wc *walker.WalkContext) string {
	tokens := wc.Tokens()
	for i := len(tokens) - 1; i >= 0; i-- {
		if i > 0 && (tokens[i-1] == "properties" || tokens[i-1] == "patternProperties") {
			return tokens[i]
		}
		if param, ok := wc.Container(i).(document.Map); ok && isParameterObject(param) {
			if name, ok := param["name"].(string); ok && name != "" {
				return name
			}
		}
	}
	if owner := owningComponent(tokens); owner != "" {
		return owner
	}
	for i := len(tokens) - 1; i >= 0; i-- {
		if _, err := strconv.Atoi(tokens[i]); err == nil || isSchemaKeyword(tokens[i]) || slices.Contains(operationMethods, tokens[i]) {
			continue
		}
		return tokens[i]
	}
	return "Inline"
}

// isComponentRoot reports whether tokens address a component schema itself.
func isComponentRoot(tokens []string) bool {
	switch {
	case len(tokens) == 3 && tokens[0] == "components" && tokens[1] == "schemas":
		return true
	case len(tokens) == 2 && tokens[0] == "definitions":
		return true
	default:
		return false
	}
}

// skipEnumSubtree reports whether the subtree holds example data or vendor
// extensions rather than schemas.
func skipEnumSubtree(tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	last := tokens[len(tokens)-1]
	return last == "example" || last == "examples" || last == "default" || strings.HasPrefix(last, "x-")
}

// isParameterObject reports whether node is an OpenAPI parameter (which may
// carry enum directly in Swagger 2.0 and cannot become a schema reference).
func isParameterObject(node document.Map) bool {
	_, hasIn := node["in"].(string)
	_, hasName := node["name"].(string)
	return hasIn && hasName
}

func isSchemaKeyword(token string) bool {
	switch token {
	case "items", "schema", "additionalProperties", "not", "allOf", "oneOf", "anyOf",
		"content", "parameters", "responses", "requestBody", "properties":
		return true
	default:
		// media types such as "application/json"
		return strings.Contains(token, "/") && !strings.HasPrefix(token, "/")
	}
}
