// Package naming derives component names for schemas that oasnorm creates,
// such as enums promoted out of inline property definitions.
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
