package pathutil

import (
	"strconv"
	"strings"
)

// PointerBuilder provides efficient incremental JSON Pointer construction.
// Segments are stored escaped; the full string is only materialized when
// String() is called.
type PointerBuilder struct {
	segments []string
	length   int // Pre-calculated length for String() allocation
}

// Push adds an object key segment to the pointer.
func (p *PointerBuilder) Push(key string) {
	seg := Escape(key)
	p.segments = append(p.segments, seg)
	p.length += len(seg) + 1
}

// PushIndex adds an array index segment.
func (p *PointerBuilder) PushIndex(i int) {
	seg := strconv.Itoa(i)
	p.segments = append(p.segments, seg)
	p.length += len(seg) + 1
}

// Pop removes the last segment.
func (p *PointerBuilder) Pop() {
	if len(p.segments) == 0 {
		return
	}
	last := p.segments[len(p.segments)-1]
	p.segments = p.segments[:len(p.segments)-1]
	p.length -= len(last) + 1
}

// Depth returns the number of segments.
func (p *PointerBuilder) Depth() int {
	return len(p.segments)
}

// Reset clears the builder for reuse.
func (p *PointerBuilder) Reset() {
	p.segments = p.segments[:0]
	p.length = 0
}

// String materializes the pointer. The root pointer is "".
func (p *PointerBuilder) String() string {
	if len(p.segments) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(p.length)
	for _, seg := range p.segments {
		b.WriteByte('/')
		b.WriteString(seg)
	}
	return b.String()
}
