package transform

import (
	"errors"

	"github.com/erraggy/oasnorm/compose"
	"github.com/erraggy/oasnorm/document"
	"github.com/erraggy/oasnorm/oaserrors"
	"github.com/erraggy/oasnorm/resolver"
	"github.com/erraggy/oasnorm/walker"
)

// ResolveAllOf merges every allOf node in the document, components included.
func ResolveAllOf() Stage {
	return Stage{Name: "resolve-allof", Apply: func(tc *Context) error {
		return flattenKeyword(tc, compose.KeywordAllOf, &tc.Stats.AllOfMerged)
	}}
}

// ResolveOneOf collapses every oneOf node into a single schema.
func ResolveOneOf() Stage {
	return Stage{Name: "resolve-oneof", Apply: func(tc *Context) error {
		return flattenKeyword(tc, compose.KeywordOneOf, &tc.Stats.OneOfMerged)
	}}
}

// ResolveAnyOf collapses every anyOf node into a single schema.
func ResolveAnyOf() Stage {
	return Stage{Name: "resolve-anyof", Apply: func(tc *Context) error {
		return flattenKeyword(tc, compose.KeywordAnyOf, &tc.Stats.AnyOfMerged)
	}}
}

func flattenKeyword(tc *Context, keyword string, counter *int) error {
	table, _ := resolver.Lookup(tc.Document)
	var walkErr error
	walker.WalkKey(tc.Document, keyword, func(wc *walker.WalkContext, node document.Map) walker.Action {
		var err error
		if keyword == compose.KeywordAllOf {
			err = compose.MergeAllOf(node, table)
		} else {
			err = compose.MergeOneOf(node, keyword, table)
		}
		if err != nil {
			walkErr = withPath(err, wc.JSONPath())
			return walker.Stop
		}
		*counter++
		return walker.Continue
	})
	if walkErr == nil && *counter > 0 {
		tc.logger().Debug("flattened compositions", "keyword", keyword, "count", *counter)
	}
	return walkErr
}

// withPath fills in the location of a composition or reference error raised
// without one.
func withPath(err error, path string) error {
	var compErr *oaserrors.CompositionError
	if errors.As(err, &compErr) && compErr.Path == "" {
		compErr.Path = path
	}
	var refErr *oaserrors.ReferenceError
	if errors.As(err, &refErr) && refErr.Path == "" {
		refErr.Path = path
	}
	return err
}
