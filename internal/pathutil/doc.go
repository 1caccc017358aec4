// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package pathutil provides reference and JSON Pointer helpers shared by the
// transformers and the differ.
//
// # References
//
// Local references take the form "#/<container>/<name>". Two container
// conventions are recognized: "#/definitions/" (local definitions) and
// "#/components/schemas/" (OpenAPI components). Use [SchemaRef] to build a
// reference and [TrimSchemaPrefix] to recover a component name.
//
// # JSON Pointers
//
// [Escape] and [Unescape] apply RFC 6901 escaping ("~" as "~0", "/" as "~1").
// [PointerBuilder] builds pointers incrementally with push/pop semantics so a
// recursive traversal only materializes a string when it reports something:
//
//	p := pathutil.Get()
//	defer pathutil.Put(p)
//
//	p.Push("properties")
//	p.Push("a/b")
//	p.PushIndex(0)
//	p.String() // "/properties/a~1b/0"
package pathutil
