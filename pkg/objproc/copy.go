package objproc

// VertexFormat identifies the per-record width of a position collection.
type VertexFormat int

const (
	// XYZ is a plain 3-component position.
	XYZ VertexFormat = 3

	// XYZW is a position with a trailing weight.
	XYZW VertexFormat = 4

	// XYZRGB is a position with a trailing vertex color.
	XYZRGB VertexFormat = 6
)

// TextureFormat identifies the per-record width of a texture coordinate
// collection.
type TextureFormat int

const (
	// UV is a 2-component texture coordinate.
	UV TextureFormat = 2

	// UVW is a 3-component texture coordinate.
	UVW TextureFormat = 3
)

// vertexFormat maps a record width onto the nearest recognized format.
func vertexFormat(size int) VertexFormat {
	switch size {
	case 4:
		return XYZW
	case 6:
		return XYZRGB
	}
	return XYZ
}

// textureFormat maps a record width onto the nearest recognized format.
func textureFormat(size int) TextureFormat {
	if size == 2 {
		return UV
	}
	return UVW
}

// VertexFormatOf reports the uniform format of a position collection and
// whether record widths vary. Varying collections report XYZ.
func VertexFormatOf(source *List[float32]) (format VertexFormat, varies bool) {
	if source.Empty() {
		return XYZ, false
	}

	format = vertexFormat(source.Shape[0])
	for _, size := range source.Shape {
		if vertexFormat(size) != format {
			return XYZ, true
		}
	}
	return format, false
}

// TextureFormatOf reports the uniform format of a texture coordinate
// collection and whether record widths vary. Varying collections report
// UV.
func TextureFormatOf(source *List[float32]) (format TextureFormat, varies bool) {
	if source.Empty() {
		return UV, false
	}

	format = textureFormat(source.Shape[0])
	for _, size := range source.Shape {
		if textureFormat(size) != format {
			return UV, true
		}
	}
	return format, false
}

// MoveVertices transfers the flat position storage to the caller when
// every record already has the requested format, leaving the source
// empty. The transfer is one-shot: the returned slice is the source's
// own backing array. An empty source counts as a successful nil
// transfer.
func MoveVertices(source *List[float32], format VertexFormat) ([]float32, bool) {
	if source.Empty() {
		return nil, true
	}

	if have, varies := VertexFormatOf(source); have != format || varies {
		return nil, false
	}

	values := source.Values
	source.Values = nil
	source.Shape = nil
	return values, true
}

// CopyVertices appends every position record to target in the requested
// format. When the whole collection is already uniform in that format
// the flat storage is moved out instead and the source is left empty;
// otherwise each record is padded with zeros or truncated to fit, record
// by record, and the source is untouched.
func CopyVertices(source *List[float32], target []float32, format VertexFormat) []float32 {
	if moved, ok := MoveVertices(source, format); ok {
		if len(target) == 0 {
			return moved
		}
		return append(target, moved...)
	}

	offset := 0
	for _, size := range source.Shape {
		record := source.Values[offset : offset+size]
		offset += size

		if VertexFormat(size) == format {
			target = append(target, record...)
			continue
		}

		target = append(target, lead(record, 0), lead(record, 1), lead(record, 2))
		switch format {
		case XYZW:
			target = append(target, 0)
		case XYZRGB:
			target = append(target, 0, 0, 0)
		}
	}
	return target
}

// MoveNormals transfers the flat normal storage to the caller when every
// record is 3 wide, leaving the source empty. An empty source counts as
// a successful nil transfer.
func MoveNormals(source *List[float32]) ([]float32, bool) {
	if source.Empty() {
		return nil, true
	}

	for _, size := range source.Shape {
		if size != int(XYZ) {
			return nil, false
		}
	}

	values := source.Values
	source.Values = nil
	source.Shape = nil
	return values, true
}

// CopyNormals appends every normal record to target, padded with zeros
// to width 3 where needed. A uniform source is moved out instead and
// left empty.
func CopyNormals(source *List[float32], target []float32) []float32 {
	if moved, ok := MoveNormals(source); ok {
		if len(target) == 0 {
			return moved
		}
		return append(target, moved...)
	}

	offset := 0
	for _, size := range source.Shape {
		record := source.Values[offset : offset+size]
		offset += size

		if size == int(XYZ) {
			target = append(target, record...)
			continue
		}

		target = append(target, lead(record, 0), lead(record, 1), lead(record, 2))
	}
	return target
}

// MoveTexCoords transfers the flat texture coordinate storage to the
// caller when every record already has the requested format, leaving the
// source empty. An empty source counts as a successful nil transfer.
func MoveTexCoords(source *List[float32], format TextureFormat) ([]float32, bool) {
	if source.Empty() {
		return nil, true
	}

	if have, varies := TextureFormatOf(source); have != format || varies {
		return nil, false
	}

	values := source.Values
	source.Values = nil
	source.Shape = nil
	return values, true
}

// CopyTexCoords appends every texture coordinate record to target in the
// requested format. Missing v components pad with zero; a missing w
// component pads with one, the format's neutral depth. A uniform source
// is moved out instead and left empty.
func CopyTexCoords(source *List[float32], target []float32, format TextureFormat) []float32 {
	if moved, ok := MoveTexCoords(source, format); ok {
		if len(target) == 0 {
			return moved
		}
		return append(target, moved...)
	}

	offset := 0
	for _, size := range source.Shape {
		record := source.Values[offset : offset+size]
		offset += size

		if TextureFormat(size) == format {
			target = append(target, record...)
			continue
		}

		target = append(target, lead(record, 0), lead(record, 1))
		if format == UVW {
			w := float32(1)
			if len(record) > 2 {
				w = record[2]
			}
			target = append(target, w)
		}
	}
	return target
}

// MoveIndices transfers the flat index storage to the caller
// unconditionally, leaving the source empty.
func MoveIndices(source *List[int]) []int {
	values := source.Values
	source.Values = nil
	source.Shape = nil
	return values
}

// CopyIndexRecords appends every index record to target as its own
// slice, copied out of the flat storage. The source is untouched.
func CopyIndexRecords(source *List[int], target [][]int) [][]int {
	offset := 0
	for _, size := range source.Shape {
		record := make([]int, size)
		copy(record, source.Values[offset:offset+size])
		offset += size

		target = append(target, record)
	}
	return target
}

// lead returns record[i], or zero past the record's width.
func lead(record []float32, i int) float32 {
	if i < len(record) {
		return record[i]
	}
	return 0
}
