// Package compose flattens allOf, oneOf and anyOf composition nodes into single
// schemas.
//
// Elements are either inline schemas or local references resolved through a
// [resolver.ComponentTable]. Every resolved element is deep copied before it is
// merged, and compositions nested inside a referenced element are flattened
// first, so the merged node never aliases a component table entry.
//
// # allOf
//
// [MergeAllOf] classifies the resolved elements once ([Classify]) and then
// applies one of two strategies:
//
//   - [ObjectComposition]: properties are unioned with later elements winning,
//     required lists are unioned, and the result is a closed object
//     (additionalProperties: false).
//   - [ScalarComposition]: keys are unioned with earlier elements winning, enum
//     values are intersected, and a const overrides any enum.
//
// # oneOf and anyOf
//
// [MergeOneOf] collapses alternatives into one schema describing their union. A
// property is required only when every alternative declares and requires it, and
// pinned literals (const/enum) survive only when every declaring alternative pins
// them.
//
// An empty composition array is removed without further effect. A non-array
// keyword value or a non-object element is a [oaserrors.CompositionError]; a
// reference that cannot be resolved is a [oaserrors.ReferenceError].
package compose
