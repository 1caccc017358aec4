// Package oasnorm normalizes OpenAPI and JSON Schema documents and reports
// schema drift between two versions of them.
//
// oasnorm treats every document as an open JSON tree. It never models the
// OpenAPI object graph; instead a pipeline of small stages rewrites the tree
// in place, and a structural differ compares two trees path by path.
//
// # Overview
//
// The library consists of these packages:
//
//   - document: Parse, marshal, copy, and compare open document trees
//   - walker: Depth-first traversal with JSON Pointer tracking
//   - resolver: Component tables, local and file references, a sibling-file cache
//   - compose: Flatten allOf, oneOf, and anyOf compositions into plain schemas
//   - transform: The stage pipeline and its presets
//   - differ: Structural drift summaries, unified patches, and drift reports
//   - oaserrors: Typed errors shared by every package
//
// # Quick Start
//
// Normalize a document with the default preset:
//
//	result, err := transform.RunWithOptions(
//	    transform.WithFilePath("openapi.yaml"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, _ := document.Marshal(result.Document, result.SourceFormat)
//
// Run a custom stage list:
//
//	result, err := transform.RunWithOptions(
//	    transform.WithFilePath("openapi.yaml"),
//	    transform.WithStages(
//	        transform.ResolveAllOf(),
//	        transform.StripField("description"),
//	        transform.RemoveUnusedSchemas(),
//	    ),
//	)
//
// Compare two directories of normalized schemas:
//
//	pairs, err := differ.PairDirs(afero.NewOsFs(), "old", "new")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := differ.CompareFiles(ctx, pairs,
//	    differ.WithSourceLabel("main"),
//	    differ.WithTargetLabel("feature"),
//	)
//	fmt.Print(differ.RenderComment(report))
//
// # Presets
//
// A preset is a named pipeline. "noop" runs nothing and "resolve" inlines
// external references. "flatten" merges compositions, while "strip-docs" removes
// extensions, examples, and external docs. "schema" resolves, flattens, and
// prunes unused schemas for code generators. "normalize" (the default) does the
// same but also strips docs and extracts inline enums into components.
//
// # Error Handling
//
// All errors can be inspected with errors.Is against the sentinels in the
// oaserrors package:
//
//	if errors.Is(err, oaserrors.ErrCircularReference) {
//	    // a composition refers back to itself
//	}
//
// # Command-Line Interface
//
// The oasnorm command wraps the library:
//
//	oasnorm normalize --preset schema openapi.yaml
//	oasnorm diff --format markdown old/ new/
//	oasnorm mcp
package oasnorm
