// Package document decodes, encodes, copies, and compares the open JSON-compatible
// trees that every other oasnorm package operates on.
//
// A document is a tree of map[string]any, []any, and scalars. No OpenAPI structure
// is imposed: a schema document is itself a schema-of-schemas, so all packages work
// on the generic form and probe keys directly.
//
// # Decoding
//
// Both YAML and JSON are decoded with the YAML decoder (YAML is a JSON superset),
// so integers decode to int regardless of the source format and two documents that
// differ only in format compare equal:
//
//	doc, format, err := document.Parse(data, "openapi.yaml")
//
// Mappings with non-string keys are normalized to map[string]any.
//
// # Encoding
//
// [Marshal] writes YAML or indented JSON with sorted keys. Serialization is lossy
// with respect to comments and formatting only.
//
// # Logging
//
// [Logger] is the structured logging interface shared by the pipeline, the differ,
// and the CLI. [NopLogger] is the default; [NewSlogAdapter] wraps log/slog.
package document
