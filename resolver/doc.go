// Package resolver resolves $ref pointers against a component table and loads
// sibling documents for file-qualified references.
//
// # Local references
//
// [Resolve] looks up "#/components/schemas/<name>" and "#/definitions/<name>"
// references in a [ComponentTable]. It never fails loudly: an unknown prefix or
// a missing name yields (nil, false), and callers decide whether that is fatal.
//
// # Sibling documents
//
// [External] resolves "<file>#/<pointer>" references through an injected
// [Loader]. [FSLoader] reads through an afero.Fs, so tests can use an in-memory
// filesystem:
//
//	fs := afero.NewMemMapFs()
//	_ = afero.WriteFile(fs, "/spec/common.yaml", data, 0o644)
//	ext := resolver.NewExternal(resolver.NewFSLoader(fs, "/spec"), resolver.NewCache(64, 0))
//	schema, err := ext.Resolve("common.yaml#/components/schemas/ErrorResponse")
//
// Parsed sibling documents are kept in a [Cache] owned by the caller; there is
// no process-wide state. Call [Cache.Purge] to reset it.
package resolver
