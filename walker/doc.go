// Package walker provides key-driven traversal of open document trees.
//
// The walker visits every object node of a tree (map[string]any) in pre-order,
// depth-first, with object keys taken in lexicographic order so walks are
// deterministic. Arrays are traversed element-wise; scalars are leaves.
//
// # Quick Start
//
// Invoke a callback for every node that owns an "allOf" key:
//
//	walker.WalkKey(doc, "allOf", func(wc *walker.WalkContext, node document.Map) walker.Action {
//	    fmt.Println("composition at", wc.JSONPath())
//	    return walker.Continue
//	})
//
// Or for every node owning a key with a given prefix:
//
//	walker.WalkKeyPrefix(doc, "x-", func(wc *walker.WalkContext, node document.Map, key string) walker.Action {
//	    delete(node, key)
//	    return walker.Continue
//	})
//
// # Mutation
//
// Handlers may delete or replace keys of the node they receive. A node's
// children are read after its handler returns, so content a handler introduces
// is walked too, and each node is still visited exactly once. The child key
// list is snapshotted before descending, so deletions do not disturb the
// iteration.
//
// # Flow Control
//
// Handlers return an [Action]:
//
//   - [Continue]: descend into the node's children
//   - [SkipChildren]: do not descend into this node, continue with siblings
//   - [Stop]: stop the entire walk immediately
//
// # Cycles
//
// No cycle detection is performed. Trees decoded from text are acyclic at the
// object-identity level; $ref strings are not followed.
package walker
