package objproc

import "testing"

// TestPooledParserStartsClean verifies that an acquired instance carries
// no records from a previous use.
func TestPooledParserStartsClean(t *testing.T) {
	content := "v 1 2 3\nv 4 5 6\nv 7 8 9\nf 1 2 3\nusemtl Steel\n"
	path := writeFixture(t, "pooled.obj", content)

	p := acquireParser(false)
	if err := p.Parse(path); err != nil {
		t.Fatalf("unexpected parse failure: %v", err)
	}
	if p.Vertex.Len() != 3 {
		t.Fatalf("expected 3 position records, got %d", p.Vertex.Len())
	}
	releaseParser(p)

	reused := acquireParser(false)
	defer releaseParser(reused)

	if !reused.Vertex.Empty() || !reused.Face.Vertex.Empty() {
		t.Error("expected a clean instance from the pool")
	}
	if len(reused.UseMaterial()) != 0 {
		t.Error("expected no material boundaries on a pooled instance")
	}
	if reused.Path() != "" {
		t.Errorf("expected an empty path, got %q", reused.Path())
	}
}

// TestPooledParserTriangulateMode verifies that the requested
// triangulation mode is applied regardless of how the pooled instance
// was configured before.
func TestPooledParserTriangulateMode(t *testing.T) {
	content := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n"
	path := writeFixture(t, "quad.obj", content)

	plain := acquireParser(false)
	if err := plain.Parse(path); err != nil {
		t.Fatalf("unexpected parse failure: %v", err)
	}
	if got := plain.Face.Vertex.Shape; len(got) != 1 || got[0] != 4 {
		t.Errorf("expected one 4-wide face record, got %v", got)
	}
	releaseParser(plain)

	fanned := acquireParser(true)
	defer releaseParser(fanned)
	if err := fanned.Parse(path); err != nil {
		t.Fatalf("unexpected parse failure: %v", err)
	}
	if got := fanned.Face.Vertex.Shape; len(got) != 2 {
		t.Errorf("expected two triangle records, got %v", got)
	}
}
