package transform

import (
	"github.com/erraggy/oasnorm/document"
)

var operationMethods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// RewriteTags renames tags on operations and in the top-level tag list.
// A tag mapped to "" is removed. Renaming two tags to the same name keeps the
// first occurrence.
func RewriteTags(mapping map[string]string) Stage {
	return Stage{Name: "rewrite-tags", Apply: func(tc *Context) error {
		if len(mapping) == 0 {
			return nil
		}
		if paths, ok := document.AsMap(tc.Document["paths"]); ok {
			for _, p := range document.SortedKeys(paths) {
				item, ok := document.AsMap(paths[p])
				if !ok {
					continue
				}
				for _, method := range operationMethods {
					op, ok := document.AsMap(item[method])
					if !ok {
						continue
					}
					tc.Stats.TagsRewritten += rewriteOperationTags(op, mapping)
				}
			}
		}
		if tags, ok := document.AsList(tc.Document["tags"]); ok {
			tc.Document["tags"] = rewriteTagList(tags, mapping, &tc.Stats.TagsRewritten)
		}
		return nil
	}}
}

func rewriteOperationTags(op document.Map, mapping map[string]string) int {
	tags := document.StringSlice(op, "tags")
	if tags == nil {
		return 0
	}
	changed := 0
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if renamed, ok := mapping[tag]; ok {
			changed++
			tag = renamed
		}
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	if len(out) == 0 {
		delete(op, "tags")
	} else {
		op["tags"] = document.ToList(out)
	}
	return changed
}

func rewriteTagList(tags document.List, mapping map[string]string, changed *int) document.List {
	out := make(document.List, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, item := range tags {
		tag, ok := document.AsMap(item)
		if !ok {
			out = append(out, item)
			continue
		}
		name, _ := tag["name"].(string)
		if renamed, ok := mapping[name]; ok {
			*changed++
			if renamed == "" {
				continue
			}
			tag["name"] = renamed
			name = renamed
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, tag)
	}
	return out
}
