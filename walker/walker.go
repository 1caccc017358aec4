package walker

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/oasnorm/document"
	"github.com/erraggy/oasnorm/internal/pathutil"
)

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// NodeHandler is called for each object node.
type NodeHandler func(wc *WalkContext, node document.Map) Action

// KeyHandler is called for each object node owning a key that matched a prefix.
type KeyHandler func(wc *WalkContext, node document.Map, key string) Action

// Walk visits every object node under root, root included.
func Walk(root any, handler NodeHandler) {
	s := newWalkState()
	defer pathutil.Put(s.ptr)
	s.walk(root, handler)
}

// WalkKey invokes handler for every object node that owns key.
// Nodes without the key are traversed but not reported.
func WalkKey(root any, key string, handler NodeHandler) {
	Walk(root, func(wc *WalkContext, node document.Map) Action {
		if _, ok := node[key]; !ok {
			return Continue
		}
		return handler(wc, node)
	})
}

// WalkKeyPrefix invokes handler once per matching key for every object node
// that owns keys starting with prefix. Matching keys are reported in
// lexicographic order; keys removed by an earlier call for the same node are
// skipped. The strongest action returned for a node wins.
func WalkKeyPrefix(root any, prefix string, handler KeyHandler) {
	Walk(root, func(wc *WalkContext, node document.Map) Action {
		var matched []string
		for k := range node {
			if strings.HasPrefix(k, prefix) {
				matched = append(matched, k)
			}
		}
		if len(matched) == 0 {
			return Continue
		}
		slices.Sort(matched)

		result := Continue
		for _, k := range matched {
			if _, ok := node[k]; !ok {
				continue
			}
			action := handler(wc, node, k)
			if action == Stop {
				return Stop
			}
			if action > result {
				result = action
			}
		}
		return result
	})
}

// walk returns false when the walk must stop.
func (s *walkState) walk(v any, handler NodeHandler) bool {
	switch node := v.(type) {
	case document.Map:
		action := handler(s.context(), node)
		switch action {
		case Stop:
			return false
		case SkipChildren:
			return true
		}

		// Children are read after the handler, which may have rewritten the node.
		for _, k := range document.SortedKeys(node) {
			child, ok := node[k]
			if !ok || !isContainer(child) {
				continue
			}
			s.push(k, node)
			cont := s.walk(child, handler)
			s.pop()
			if !cont {
				return false
			}
		}
	case document.List:
		items := slices.Clone(node)
		for i, child := range items {
			if !isContainer(child) {
				continue
			}
			s.pushIndex(i, node)
			cont := s.walk(child, handler)
			s.pop()
			if !cont {
				return false
			}
		}
	}
	return true
}

func isContainer(v any) bool {
	switch v.(type) {
	case document.Map, document.List:
		return true
	default:
		return false
	}
}
