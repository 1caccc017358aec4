package pathutil

import "testing"

func TestPointerBuilder_Basic(t *testing.T) {
	p := &PointerBuilder{}
	p.Push("properties")
	p.Push("name")

	got := p.String()
	want := "/properties/name"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPointerBuilder_WithIndex(t *testing.T) {
	p := &PointerBuilder{}
	p.Push("allOf")
	p.PushIndex(0)
	p.Push("properties")

	got := p.String()
	want := "/allOf/0/properties"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPointerBuilder_PushPop(t *testing.T) {
	p := &PointerBuilder{}
	p.Push("a")
	p.Push("b")
	p.Pop()
	p.Push("c")

	got := p.String()
	want := "/a/c"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if p.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", p.Depth())
	}
}

func TestPointerBuilder_EscapesSegments(t *testing.T) {
	p := &PointerBuilder{}
	p.Push("paths")
	p.Push("/visitors/{visitor_id}")
	p.Push("x~y")

	got := p.String()
	want := "/paths/~1visitors~1{visitor_id}/x~0y"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPointerBuilder_EmptyAndReset(t *testing.T) {
	p := &PointerBuilder{}
	if p.String() != "" {
		t.Errorf("empty builder should produce root pointer, got %q", p.String())
	}
	p.Pop() // no-op on empty
	p.Push("a")
	p.Reset()
	if p.String() != "" || p.Depth() != 0 {
		t.Errorf("Reset should clear the builder, got %q", p.String())
	}
}

func TestPool_GetPut(t *testing.T) {
	p := Get()
	p.Push("leftover")
	Put(p)

	q := Get()
	defer Put(q)
	if q.String() != "" {
		t.Errorf("pooled builder should be reset, got %q", q.String())
	}
	Put(nil) // must not panic
}
