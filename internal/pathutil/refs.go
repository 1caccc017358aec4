// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import (
	"net/url"
	"strings"
)

// Local reference prefixes
const (
	RefPrefixDefinitions = "#/definitions/"
	RefPrefixSchemas     = "#/components/schemas/"
)

// SchemaRef builds "#/components/schemas/{name}".
func SchemaRef(name string) string {
	return RefPrefixSchemas + name
}

// DefinitionRef builds "#/definitions/{name}".
func DefinitionRef(name string) string {
	return RefPrefixDefinitions + name
}

// TrimSchemaPrefix strips either recognized local prefix from ref and returns
// the component name. Percent-encoded references are decoded first. Returns
// false when ref uses neither prefix.
func TrimSchemaPrefix(ref string) (string, bool) {
	for _, prefix := range []string{RefPrefixSchemas, RefPrefixDefinitions} {
		if name, ok := strings.CutPrefix(ref, prefix); ok {
			if strings.Contains(name, "%") {
				if decoded, err := url.PathUnescape(name); err == nil {
					name = decoded
				}
			}
			return name, true
		}
	}
	if decoded, err := url.PathUnescape(ref); err == nil && decoded != ref {
		return TrimSchemaPrefix(decoded)
	}
	return "", false
}

// SplitRef splits a reference into its file part and its fragment pointer.
// "common.yaml#/components/schemas/Error" yields ("common.yaml", "#/components/schemas/Error");
// "#/definitions/X" yields ("", "#/definitions/X"); "other.yaml" yields ("other.yaml", "").
func SplitRef(ref string) (file, pointer string) {
	idx := strings.IndexByte(ref, '#')
	if idx < 0 {
		return ref, ""
	}
	return ref[:idx], ref[idx:]
}

// IsLocalRef reports whether ref points into the current document.
func IsLocalRef(ref string) bool {
	return strings.HasPrefix(ref, "#")
}
