package objproc

import (
	"fmt"
	"strings"
)

// Parser reads one Wavefront OBJ file into flattened geometry
// collections. A Parser owns its collections exclusively and is not safe
// for concurrent use; Parse resets all state before each run, so one
// instance can be reused across files sequentially.
type Parser struct {
	// Vertex holds the v position records, 3 (x,y,z), 4 (x,y,z,w) or
	// 6 (x,y,z,r,g,b) floats wide.
	Vertex List[float32]

	// Texture holds the vt texture coordinate records, 1 to 3 floats wide.
	Texture List[float32]

	// Normal holds the vn normal records, always 3 floats wide.
	Normal List[float32]

	// Face holds the f records as three parallel index lists.
	Face Face

	// Line holds the l records as two parallel index lists.
	Line Line

	// Point holds the p records as one index list.
	Point Point

	path         string
	materialFile string
	materialFace []MaterialUse
	information  []Annotation
	triangulate  bool

	scratch recordScratch
}

// recordScratch holds the per-record staging buffers reused across
// lines. They are owned by the Parser, so reuse never crosses
// goroutines.
type recordScratch struct {
	floats  []float32
	vertex  []int
	texture []int
	normal  []int
	tri     []int
}

// NewParser creates a Parser. When triangulate is true, faces with more
// than three vertices are fan-decomposed into triangles on insertion.
func NewParser(triangulate bool) *Parser {
	return &Parser{
		triangulate: triangulate,
		scratch: recordScratch{
			floats:  make([]float32, 0, 6),
			vertex:  make([]int, 0, 8),
			texture: make([]int, 0, 8),
			normal:  make([]int, 0, 8),
			tri:     make([]int, 0, 3),
		},
	}
}

// Parse reads the OBJ file at path into the Parser's collections,
// clearing any previous state first. On failure the collections hold
// whatever records parsed before the failing line and must be treated as
// undefined; Clear (or the next Parse) restores a clean instance.
func (p *Parser) Parse(path string) error {
	p.Clear()
	p.path = path

	buffer, rows, err := ingest(path)
	if err != nil {
		return err
	}

	lines, err := indexLines(buffer, rows)
	if err != nil {
		return err
	}

	return p.dispatch(lines)
}

// dispatch classifies each trimmed line by its leading one or two bytes
// and routes it to the matching record parser. Unrecognized directives
// are skipped silently, as the format tolerates unknown extensions. The
// first record failure aborts the whole parse; records inserted before
// it are left in place.
func (p *Parser) dispatch(lines [][]byte) error {
	for row, raw := range lines {
		line := trimLine(raw)
		if len(line) == 0 {
			continue
		}

		b0 := line[0]
		var b1 byte
		if len(line) > 1 {
			b1 = line[1]
		}

		var err error
		switch {
		case b0 == 'f' && b1 == ' ':
			err = p.parseFace(after(line, 2), row)
		case b0 == 'v' && b1 == ' ':
			err = p.parsePosition(after(line, 2), row)
		case b0 == 'v' && b1 == 'n':
			err = p.parseNormal(after(line, 3), row)
		case b0 == 'v' && b1 == 't':
			err = p.parseTexture(after(line, 3), row)
		case b0 == 'u':
			err = p.parseUseMaterial(line, row)
		case (b0 == '#' || b0 == 'o' || b0 == 'g' || b0 == 's') && b1 == ' ':
			p.parseAnnotation(line)
		case b0 == 'l' && b1 == ' ':
			err = p.parseLine(after(line, 2), row)
		case b0 == 'p' && b1 == ' ':
			err = p.parsePoint(after(line, 2), row)
		case b0 == 'm':
			err = p.parseMaterialFile(line, row)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// Clear resets every collection and all parse metadata, returning the
// Parser to its freshly constructed state. The triangulation mode
// persists.
func (p *Parser) Clear() {
	p.Vertex.Clear()
	p.Texture.Clear()
	p.Normal.Clear()
	p.Face.Clear()
	p.Line.Clear()
	p.Point.Clear()

	p.materialFace = p.materialFace[:0]
	p.information = p.information[:0]
	p.materialFile = ""
	p.path = ""
}

// Path returns the source path of the last Parse call.
func (p *Parser) Path() string {
	return p.path
}

// UseMaterial returns the material activation boundaries in declaration
// order.
func (p *Parser) UseMaterial() []MaterialUse {
	return p.materialFace
}

// Annotations returns the captured comment, object, group and smoothing
// directives in source order.
func (p *Parser) Annotations() []Annotation {
	return p.information
}

// MtlLib returns the companion material library path: the declared
// mtllib target resolved against the source file's directory, or, when
// no mtllib was declared, the source path with its extension replaced by
// "mtl". It returns "" when neither form can be derived: a declared
// target with a bare source path, or an undeclared one with no
// extension.
func (p *Parser) MtlLib() string {
	if p.materialFile == "" {
		dot := strings.LastIndexByte(p.path, '.')
		if dot < 0 {
			return ""
		}
		return p.path[:dot+1] + "mtl"
	}

	sep := strings.LastIndexByte(p.path, '\\')
	if sep < 0 {
		sep = strings.LastIndexByte(p.path, '/')
	}
	if sep < 0 {
		return ""
	}
	return p.path[:sep+1] + p.materialFile
}

// Summarize reports the collection sizes and material metadata of the
// last parsed file.
func (p *Parser) Summarize() Summary {
	var names []string
	seen := make(map[string]bool, len(p.materialFace))
	for _, use := range p.materialFace {
		if !seen[use.Name] {
			seen[use.Name] = true
			names = append(names, use.Name)
		}
	}

	return Summary{
		Positions:   p.Vertex.Len(),
		TexCoords:   p.Texture.Len(),
		Normals:     p.Normal.Len(),
		Faces:       p.Face.Vertex.Len(),
		Lines:       p.Line.Vertex.Len(),
		Points:      p.Point.Vertex.Len(),
		Annotations: len(p.information),
		Materials:   names,
		MtlLib:      p.MtlLib(),
	}
}

// after returns line with its first n bytes removed, or nil when the
// line is shorter than that.
func after(line []byte, n int) []byte {
	if len(line) <= n {
		return nil
	}
	return line[n:]
}

// recordError reports a recognized directive whose mandatory field
// failed to scan. Rows are reported 1-based to match editors.
func recordError(row int, directive string) error {
	return fmt.Errorf("line %d: malformed '%s' record", row+1, directive)
}
