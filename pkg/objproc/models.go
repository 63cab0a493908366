package objproc

// List stores variable-arity records in flattened form. Values holds the
// concatenated scalars of every record and Shape holds one length per
// record, so record i occupies Values[offset(i) : offset(i)+Shape[i]]
// where offset(i) is the prefix sum of Shape[:i]. This models OBJ's
// heterogeneous line widths without a per-record allocation.
type List[T any] struct {
	// Values is the flat scalar storage of all records.
	Values []T

	// Shape is the per-record length sequence; sum(Shape) == len(Values).
	Shape []int
}

// Len returns the number of records, not the number of scalars.
func (l *List[T]) Len() int {
	return len(l.Shape)
}

// Empty reports whether the list holds no records.
func (l *List[T]) Empty() bool {
	return len(l.Shape) == 0
}

// Insert appends one record: the values go to the flat storage and the
// record length goes to the shape sequence.
func (l *List[T]) Insert(values []T) {
	l.Values = append(l.Values, values...)
	l.Shape = append(l.Shape, len(values))
}

// Record returns the scalar slice of record i as a view into the flat
// storage. It walks the shape sequence, so prefer sequential iteration
// over the Shape field in hot paths.
func (l *List[T]) Record(i int) []T {
	offset := 0
	for r := 0; r < i; r++ {
		offset += l.Shape[r]
	}
	return l.Values[offset : offset+l.Shape[i]]
}

// Clear empties both sequences while keeping their capacity.
func (l *List[T]) Clear() {
	l.Values = l.Values[:0]
	l.Shape = l.Shape[:0]
}

// Face holds the three parallel index lists of the f records. The
// texture and normal lists may carry fewer records than the vertex list
// when sub-indices were omitted, but each record is internally
// consistent.
type Face struct {
	Vertex  List[int]
	Texture List[int]
	Normal  List[int]
}

// Clear empties all three index lists.
func (f *Face) Clear() {
	f.Vertex.Clear()
	f.Texture.Clear()
	f.Normal.Clear()
}

// Line holds the two parallel index lists of the l records.
type Line struct {
	Vertex  List[int]
	Texture List[int]
}

// Clear empties both index lists.
func (l *Line) Clear() {
	l.Vertex.Clear()
	l.Texture.Clear()
}

// Point holds the vertex index list of the p records.
type Point struct {
	Vertex List[int]
}

// Clear empties the index list.
func (p *Point) Clear() {
	p.Vertex.Clear()
}

// MaterialUse marks where a named material becomes active: every face
// from FirstFace up to the next boundary is governed by Name.
type MaterialUse struct {
	// Name is the material name as declared by the usemtl directive.
	Name string `json:"name"`

	// FirstFace is the face record count at the time of the declaration.
	FirstFace int `json:"firstFace"`
}

// Annotation is one comment, object, group or smoothing directive,
// preserved for traceability and never interpreted by the parser.
type Annotation struct {
	// Marker is the directive byte: '#', 'o', 'g' or 's'.
	Marker byte `json:"marker"`

	// Text is the trimmed directive payload.
	Text string `json:"text"`

	// Face is the face record count at the time of the directive.
	Face int `json:"face"`
}

// Material is one entry of an externally parsed material library.
type Material struct {
	// Name is the material name, matched against usemtl declarations.
	Name string `json:"name"`

	// Diffuse is the Kd diffuse color.
	Diffuse [3]float32 `json:"diffuse"`

	// Dissolve is the d opacity scalar, 1 being fully opaque.
	Dissolve float32 `json:"dissolve"`
}

// MaterialProvider exposes an ordered material list, typically parsed
// from the .mtl companion file by the caller. The parser itself never
// reads material libraries.
type MaterialProvider interface {
	// Materials returns the material entries in library order.
	Materials() []Material
}

// Summary reports the collection sizes and material metadata of a parsed
// file.
type Summary struct {
	// Positions is the number of v records.
	Positions int `json:"positions"`

	// TexCoords is the number of vt records.
	TexCoords int `json:"texCoords"`

	// Normals is the number of vn records.
	Normals int `json:"normals"`

	// Faces is the number of face records after any triangulation.
	Faces int `json:"faces"`

	// Lines is the number of l records.
	Lines int `json:"lines"`

	// Points is the number of p records.
	Points int `json:"points"`

	// Annotations is the number of captured annotation directives.
	Annotations int `json:"annotations"`

	// Materials lists the used material names in first-use order.
	Materials []string `json:"materials,omitempty"`

	// MtlLib is the derived companion material library path.
	MtlLib string `json:"mtlLib,omitempty"`
}

// BoundsBox is the axis-aligned bounding box of a parsed file.
type BoundsBox struct {
	// Min is the componentwise minimum corner.
	Min [3]float32 `json:"min"`

	// Max is the componentwise maximum corner.
	Max [3]float32 `json:"max"`
}

// ScanFilters represents filters used when scanning a directory of OBJ
// files.
type ScanFilters struct {
	// UsesMaterial will filter results to files declaring this material
	UsesMaterial string `json:"usesMaterial,omitempty"`

	// NamePattern will filter results to files whose material, object or
	// group names match this regex
	NamePattern string `json:"namePattern,omitempty"`

	// MinFaces will filter results to files with at least this many faces
	MinFaces int `json:"minFaces,omitempty"`

	// FilesIn will filter results to a specific list of files
	FilesIn []string `json:"filesIn,omitempty"`
}

// ScanRequest represents the configuration for scanning a directory of
// OBJ files.
type ScanRequest struct {
	// Triangulate controls whether faces are fan-decomposed on insertion
	Triangulate bool `json:"triangulate"`

	// WithBounds controls whether each result carries a bounding box
	WithBounds bool `json:"withBounds"`

	// Filters contains optional scan filters
	Filters *ScanFilters `json:"filters,omitempty"`
}

// ScanResult represents the scan outcome for a single OBJ file.
type ScanResult struct {
	// Path to the OBJ file.
	Path string `json:"path"`

	// Summary of the parsed geometry.
	Summary Summary `json:"summary"`

	// Bounds of the parsed positions, when requested.
	Bounds *BoundsBox `json:"bounds,omitempty"`
}
