package transform

import (
	"strings"

	"github.com/erraggy/oasnorm/document"
	"github.com/erraggy/oasnorm/internal/pathutil"
	"github.com/erraggy/oasnorm/oaserrors"
	"github.com/erraggy/oasnorm/resolver"
	"github.com/erraggy/oasnorm/walker"
)

// RemoveUnusedSchemas deletes component schemas that no $ref and no
// discriminator mapping points at. A component's references to itself do not
// count. Removing one component can orphan another, so passes repeat until
// nothing is removed; needing more than the context's prune bound of removing
// passes is a ResourceLimitError.
func RemoveUnusedSchemas() Stage {
	return Stage{Name: "remove-unused-schemas", Apply: func(tc *Context) error {
		table, ok := resolver.Lookup(tc.Document)
		if !ok {
			return nil
		}
		bound := tc.pruneBound()
		log := tc.logger()

		for pass := 1; ; pass++ {
			used := referencedSchemas(tc.Document)
			var unused []string
			for _, name := range document.SortedKeys(document.Map(table)) {
				if !used[name] {
					unused = append(unused, name)
				}
			}
			if len(unused) == 0 {
				tc.Stats.PrunePasses = pass - 1
				return nil
			}
			if pass > bound {
				return &oaserrors.ResourceLimitError{
					ResourceType: "prune_iterations",
					Limit:        int64(bound),
					Actual:       int64(pass),
					Pending:      unused,
					Message:      "unused schema removal did not reach a fixed point",
				}
			}
			for _, name := range unused {
				delete(table, name)
				tc.Stats.SchemasPruned++
				log.Debug("pruned unused schema", "name", name, "pass", pass)
			}
		}
	}}
}

// referencedSchemas collects the component names targeted by references and
// discriminator mappings, ignoring references a component makes to itself.
func referencedSchemas(doc document.Map) map[string]bool {
	used := make(map[string]bool)
	walker.Walk(doc, func(wc *walker.WalkContext, node document.Map) walker.Action {
		owner := owningComponent(wc.Tokens())
		if ref, ok := node["$ref"].(string); ok {
			if name, ok := pathutil.TrimSchemaPrefix(ref); ok && name != owner {
				used[name] = true
			}
		}
		if disc, ok := node["discriminator"].(document.Map); ok {
			if mapping, ok := disc["mapping"].(document.Map); ok {
				for _, v := range mapping {
					target, ok := v.(string)
					if !ok {
						continue
					}
					name, isRef := pathutil.TrimSchemaPrefix(target)
					if !isRef && !strings.ContainsAny(target, "#/") {
						name, isRef = target, true
					}
					if isRef && name != owner {
						used[name] = true
					}
				}
			}
		}
		return walker.Continue
	})
	return used
}

// owningComponent returns the component schema name a path lies within.
func owningComponent(tokens []string) string {
	switch {
	case len(tokens) >= 3 && tokens[0] == "components" && tokens[1] == "schemas":
		return tokens[2]
	case len(tokens) >= 2 && tokens[0] == "definitions":
		return tokens[1]
	default:
		return ""
	}
}
