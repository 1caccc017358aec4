// Package oaserrors provides structured error types for the oasnorm library.
//
// Import path: github.com/erraggy/oasnorm/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// so callers can tell a malformed input document apart from a pipeline
// misconfiguration and report the offending schema with context.
//
// # Error Types
//
//   - [ParseError]: YAML/JSON decoding failures
//   - [ReferenceError]: $ref values that cannot be resolved, locally or across files
//   - [CompositionError]: malformed allOf/oneOf/anyOf nodes
//   - [ResourceLimitError]: bounded iterations that did not converge
//   - [PatchError]: unified diff generation failures
//   - [ConfigError]: invalid options, presets, or environment values
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrCircularReference]: Matches [ReferenceError] with IsCircular=true
//   - [ErrComposition]: Matches any [CompositionError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrPatch]: Matches any [PatchError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage
//
//	result, err := transform.RunWithOptions(transform.WithDocument(doc), transform.WithPreset("normalize"))
//	if err != nil {
//	    var refErr *oaserrors.ReferenceError
//	    if errors.As(err, &refErr) {
//	        fmt.Printf("cannot resolve %s at %s\n", refErr.Ref, refErr.Path)
//	    }
//	    if errors.Is(err, oaserrors.ErrResourceLimit) {
//	        // pruning did not reach a fixed point
//	    }
//	}
package oaserrors
