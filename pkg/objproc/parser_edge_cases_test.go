package objproc

import (
	"reflect"
	"testing"
)

// TestParseCRLFLineEndings verifies that carriage returns from Windows
// line endings never leak into records.
func TestParseCRLFLineEndings(t *testing.T) {
	path := writeFixture(t, "crlf.obj", "v 1 2 3\r\nusemtl Steel\r\nf 1 1 1\r\n")

	p := NewParser(false)
	if err := p.Parse(path); err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if !reflect.DeepEqual(p.Vertex.Shape, []int{3}) {
		t.Errorf("expected one 3-wide position, got shapes %v", p.Vertex.Shape)
	}
	if got := p.UseMaterial()[0].Name; got != "Steel" {
		t.Errorf("expected material name without carriage return, got %q", got)
	}
}

// TestParseBlankAndIndentedLines verifies that blank lines and leading
// indentation are tolerated.
func TestParseBlankAndIndentedLines(t *testing.T) {
	path := writeFixture(t, "blank.obj", "\n   \n\t v 1 2 3\n\nf 1\n")

	p := NewParser(false)
	if err := p.Parse(path); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if p.Vertex.Len() != 1 || p.Face.Vertex.Len() != 1 {
		t.Errorf("expected 1 position and 1 face, got %d and %d",
			p.Vertex.Len(), p.Face.Vertex.Len())
	}
}

// TestParseBareDirectiveLetters verifies that directive letters with no
// payload byte are skipped, not dereferenced past the line end.
func TestParseBareDirectiveLetters(t *testing.T) {
	path := writeFixture(t, "bare.obj", "v\nf\nl\np\no\ns\n#\ng\nv 1 2 3\n")

	p := NewParser(false)
	if err := p.Parse(path); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if p.Vertex.Len() != 1 {
		t.Errorf("expected 1 position record, got %d", p.Vertex.Len())
	}
	if len(p.Annotations()) != 0 {
		t.Errorf("expected bare markers to be skipped, got %v", p.Annotations())
	}
}

// TestParseCommentWithoutSpace verifies that '#' must be followed by a
// space to be captured; anything else is silently skipped.
func TestParseCommentWithoutSpace(t *testing.T) {
	path := writeFixture(t, "comment.obj", "#no space\n# with space\nv 1 2 3\n")

	p := NewParser(false)
	if err := p.Parse(path); err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	notes := p.Annotations()
	if len(notes) != 1 || notes[0].Text != "with space" {
		t.Errorf("expected exactly the spaced comment, got %v", notes)
	}
}

// TestParseUseMaterialWithoutSpace verifies that the directive check
// consumes exactly the keyword, so a glued name still parses.
func TestParseUseMaterialWithoutSpace(t *testing.T) {
	path := writeFixture(t, "glued.obj", "usemtlSteel\nv 1 2 3\n")

	p := NewParser(false)
	if err := p.Parse(path); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := p.UseMaterial()[0].Name; got != "Steel" {
		t.Errorf("expected glued material name 'Steel', got %q", got)
	}
}

// TestParseMtlLibWithoutTarget verifies that a bare mtllib directive
// leaves the declared target empty and falls back to extension
// replacement.
func TestParseMtlLibWithoutTarget(t *testing.T) {
	path := writeFixture(t, "bareMtl.obj", "mtllib\nv 1 2 3\n")

	p := NewParser(false)
	if err := p.Parse(path); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := p.MtlLib(); got == "" || got[len(got)-3:] != "mtl" {
		t.Errorf("expected extension-derived companion path, got %q", got)
	}
}

// TestParseLargePolygon verifies fan decomposition of a 10-gon into 8
// triangles.
func TestParseLargePolygon(t *testing.T) {
	content := ""
	for i := 0; i < 10; i++ {
		content += "v 0 0 0\n"
	}
	content += "f 1 2 3 4 5 6 7 8 9 10\n"
	path := writeFixture(t, "tengon.obj", content)

	p := NewParser(true)
	if err := p.Parse(path); err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if p.Face.Vertex.Len() != 8 {
		t.Fatalf("expected 8 triangles, got %d", p.Face.Vertex.Len())
	}
	if got := p.Face.Vertex.Record(7); !reflect.DeepEqual(got, []int{8, 9, 0}) {
		t.Errorf("expected final triangle [8 9 0], got %v", got)
	}
}

// TestParseZeroIndexDoesNotCrash verifies the documented gap: a literal
// 0 index resolves out of range but never panics.
func TestParseZeroIndexDoesNotCrash(t *testing.T) {
	path := writeFixture(t, "zero.obj", "v 1 2 3\nf 0 1 1\n")

	p := NewParser(false)
	if err := p.Parse(path); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := p.Face.Vertex.Record(0); !reflect.DeepEqual(got, []int{1, 0, 0}) {
		t.Errorf("expected indices [1 0 0], got %v", got)
	}
}

// TestParseFileWithoutTrailingNewline verifies that the implicit final
// line is parsed.
func TestParseFileWithoutTrailingNewline(t *testing.T) {
	path := writeFixture(t, "notrail.obj", "v 1 2 3\nv 4 5 6")

	p := NewParser(false)
	if err := p.Parse(path); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if p.Vertex.Len() != 2 {
		t.Errorf("expected 2 position records, got %d", p.Vertex.Len())
	}
}

// TestParseNegativeIndicesAcrossGrowth verifies that relative indices
// resolve against the position count at the time of the record, not the
// final count.
func TestParseNegativeIndicesAcrossGrowth(t *testing.T) {
	content := "v 0 0 0\nv 1 0 0\nf -1 -2 -2\nv 2 0 0\nf -1 -1 -1\n"
	path := writeFixture(t, "relative.obj", content)

	p := NewParser(false)
	if err := p.Parse(path); err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if got := p.Face.Vertex.Record(0); !reflect.DeepEqual(got, []int{1, 0, 0}) {
		t.Errorf("first face: expected [1 0 0], got %v", got)
	}
	if got := p.Face.Vertex.Record(1); !reflect.DeepEqual(got, []int{2, 2, 2}) {
		t.Errorf("second face: expected [2 2 2], got %v", got)
	}
}
