package objproc

import "github.com/go-gl/mathgl/mgl32"

// Bounds returns the axis-aligned bounding box over every position
// record, considering only the x, y, z lead of each record regardless of
// its width. ok is false when the collection holds no records wide
// enough to carry a position.
func Bounds(source *List[float32]) (bbMin, bbMax mgl32.Vec3, ok bool) {
	offset := 0
	for _, size := range source.Shape {
		record := source.Values[offset : offset+size]
		offset += size

		if size < 3 {
			continue
		}

		v := mgl32.Vec3{record[0], record[1], record[2]}
		if !ok {
			bbMin, bbMax, ok = v, v, true
			continue
		}

		bbMin = mgl32.Vec3{min(bbMin.X(), v.X()), min(bbMin.Y(), v.Y()), min(bbMin.Z(), v.Z())}
		bbMax = mgl32.Vec3{max(bbMax.X(), v.X()), max(bbMax.Y(), v.Y()), max(bbMax.Z(), v.Z())}
	}
	return bbMin, bbMax, ok
}

// BoundsBoxOf returns the bounding box of the last parse in its
// JSON-friendly form, or nil when no positions were parsed.
func BoundsBoxOf(p *Parser) *BoundsBox {
	bbMin, bbMax, ok := Bounds(&p.Vertex)
	if !ok {
		return nil
	}
	return &BoundsBox{Min: [3]float32(bbMin), Max: [3]float32(bbMax)}
}

// FaceNormals computes one unit normal per face record from the cross
// product of its first three resolved positions, following the parsed
// winding. Faces with fewer than three vertices, out-of-range indices or
// degenerate geometry get the zero vector so the result stays aligned
// with the face list.
func FaceNormals(p *Parser) []mgl32.Vec3 {
	offsets := make([]int, 0, p.Vertex.Len())
	offset := 0
	for _, size := range p.Vertex.Shape {
		offsets = append(offsets, offset)
		offset += size
	}

	position := func(i int) (mgl32.Vec3, bool) {
		if i < 0 || i >= len(offsets) {
			return mgl32.Vec3{}, false
		}
		o := offsets[i]
		return mgl32.Vec3{p.Vertex.Values[o], p.Vertex.Values[o+1], p.Vertex.Values[o+2]}, true
	}

	normals := make([]mgl32.Vec3, 0, p.Face.Vertex.Len())

	faceOffset := 0
	for _, size := range p.Face.Vertex.Shape {
		record := p.Face.Vertex.Values[faceOffset : faceOffset+size]
		faceOffset += size

		if size < 3 {
			normals = append(normals, mgl32.Vec3{})
			continue
		}

		a, okA := position(record[0])
		b, okB := position(record[1])
		c, okC := position(record[2])
		if !okA || !okB || !okC {
			normals = append(normals, mgl32.Vec3{})
			continue
		}

		n := b.Sub(a).Cross(c.Sub(a))
		if n.Len() == 0 {
			normals = append(normals, mgl32.Vec3{})
			continue
		}

		normals = append(normals, n.Normalize())
	}
	return normals
}
