package walker

import (
	"strconv"

	"github.com/erraggy/oasnorm/document"
	"github.com/erraggy/oasnorm/internal/pathutil"
)

// WalkContext provides contextual information about the current node being visited.
// A WalkContext is only valid for the duration of the handler call.
type WalkContext struct {
	state *walkState
}

// JSONPath returns the JSON Pointer of the current node. The root is "".
func (wc *WalkContext) JSONPath() string {
	return wc.state.ptr.String()
}

// Tokens returns the unescaped reference tokens leading to the current node.
// Array positions appear as decimal strings. The slice must not be modified.
func (wc *WalkContext) Tokens() []string {
	return wc.state.tokens
}

// Key returns the last token of the path, or "" at the root.
func (wc *WalkContext) Key() string {
	if len(wc.state.tokens) == 0 {
		return ""
	}
	return wc.state.tokens[len(wc.state.tokens)-1]
}

// Depth returns the number of tokens between the root and the current node.
func (wc *WalkContext) Depth() int {
	return len(wc.state.tokens)
}

// Container returns the container (document.Map or document.List) holding the
// node at tokens[i]. Container(Depth()-1) is the immediate container.
func (wc *WalkContext) Container(i int) any {
	return wc.state.containers[i]
}

// Parent returns the nearest enclosing object node, skipping arrays.
// Returns nil at the root.
func (wc *WalkContext) Parent() document.Map {
	for i := len(wc.state.containers) - 1; i >= 0; i-- {
		if m, ok := wc.state.containers[i].(document.Map); ok {
			return m
		}
	}
	return nil
}

// walkState tracks the path as we descend through the tree.
type walkState struct {
	ptr        *pathutil.PointerBuilder
	tokens     []string
	containers []any
	wc         WalkContext
}

func newWalkState() *walkState {
	s := &walkState{ptr: pathutil.Get()}
	s.wc.state = s
	return s
}

func (s *walkState) context() *WalkContext {
	return &s.wc
}

func (s *walkState) push(key string, container any) {
	s.ptr.Push(key)
	s.tokens = append(s.tokens, key)
	s.containers = append(s.containers, container)
}

func (s *walkState) pushIndex(i int, container any) {
	s.ptr.PushIndex(i)
	s.tokens = append(s.tokens, strconv.Itoa(i))
	s.containers = append(s.containers, container)
}

func (s *walkState) pop() {
	s.ptr.Pop()
	s.tokens = s.tokens[:len(s.tokens)-1]
	s.containers = s.containers[:len(s.containers)-1]
}
