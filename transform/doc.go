// Package transform runs named, ordered pipelines of document rewrites.
//
// A [Pipeline] is a fixed list of [Stage] values applied in sequence to one
// document; every stage mutates the document in place and later stages observe
// the effects of earlier ones. There is no reordering: composition flattening
// needs every reference to be local, so external reference resolution must come
// first, and pruning must come after anything that removes references.
//
// # Presets
//
// Presets are concatenations of smaller stage lists:
//
//	noop        (no stages)
//	resolve     ResolveExternalRefs, InlineExternalValues
//	flatten     ResolveAllOf, ResolveOneOf, ResolveAnyOf
//	strip-docs  StripFieldPrefix("x-"), StripField("example"), StripField("externalDocs")
//	schema      resolve + flatten + RemoveUnusedSchemas + CheckRefs
//	normalize   resolve + flatten + strip-docs + ExtractEnums + RemoveUnusedSchemas + CheckRefs
//
// # Usage
//
//	result, err := transform.RunWithOptions(
//	    transform.WithFilePath("openapi.yaml"),
//	    transform.WithPreset("normalize"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, _ := document.Marshal(result.Document, result.SourceFormat)
//
// RunWithOptions never mutates a caller-supplied document; it works on a deep
// copy. Stages can also be driven directly through [Pipeline.Run] with a
// [Context] the caller owns.
package transform
