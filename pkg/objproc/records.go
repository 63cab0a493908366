package objproc

// parsePosition reads a v record greedily: three mandatory floats
// (x,y,z), then a fourth for (x,y,z,w), then a fifth and sixth for
// (x,y,z,r,g,b). A failing fourth read after a successful third is not
// an error, it means the record is complete at width 3. Only widths 3, 4
// and 6 are representable; a line with exactly five floats keeps the
// largest valid prefix, width 4.
func (p *Parser) parsePosition(line []byte, row int) error {
	buf := p.scratch.floats[:0]
	defer func() { p.scratch.floats = buf[:0] }()

	cur := 0
	for n := 0; n < 3; n++ {
		v, next, ok := scanFloat(line, cur)
		if !ok {
			return recordError(row, "v")
		}
		buf = append(buf, v)
		cur = next
	}

	v, next, ok := scanFloat(line, cur)
	if !ok {
		p.Vertex.Insert(buf) // x, y, z
		return nil
	}
	buf = append(buf, v)
	cur = next

	v, next, ok = scanFloat(line, cur)
	if !ok {
		p.Vertex.Insert(buf) // x, y, z, w
		return nil
	}
	buf = append(buf, v)
	cur = next

	v, _, ok = scanFloat(line, cur)
	if !ok {
		p.Vertex.Insert(buf[:4]) // five floats present: keep x, y, z, w
		return nil
	}
	buf = append(buf, v)

	p.Vertex.Insert(buf) // x, y, z, r, g, b
	return nil
}

// parseNormal reads a vn record: exactly three mandatory floats.
func (p *Parser) parseNormal(line []byte, row int) error {
	buf := p.scratch.floats[:0]
	defer func() { p.scratch.floats = buf[:0] }()

	cur := 0
	for n := 0; n < 3; n++ {
		v, next, ok := scanFloat(line, cur)
		if !ok {
			return recordError(row, "vn")
		}
		buf = append(buf, v)
		cur = next
	}

	p.Normal.Insert(buf)
	return nil
}

// parseTexture reads a vt record: one mandatory float (u), then an
// optional v, then an optional w, producing widths 1, 2 or 3.
func (p *Parser) parseTexture(line []byte, row int) error {
	buf := p.scratch.floats[:0]
	defer func() { p.scratch.floats = buf[:0] }()

	v, cur, ok := scanFloat(line, 0)
	if !ok {
		return recordError(row, "vt")
	}
	buf = append(buf, v)

	for n := 0; n < 2; n++ {
		v, next, ok := scanFloat(line, cur)
		if !ok {
			break
		}
		buf = append(buf, v)
		cur = next
	}

	p.Texture.Insert(buf)
	return nil
}

// resolveIndex maps a raw OBJ index onto a zero-based absolute index.
// Positive values are 1-based; non-positive values address relative to
// the running record count, so -1 is the most recent record. A literal
// 0, which no conformant file emits, follows the non-positive branch and
// resolves to count: out of range for the current document, but never a
// crash.
func resolveIndex(raw, count int) int {
	if raw > 0 {
		return raw - 1
	}
	return raw + count
}

// parseFace reads an f record: entries of the form v[/vt][/vn],
// blank-separated, until end of line. Every raw index resolves
// immediately against the running position-record count, sub-indices
// included. A record with no entries at all is tolerated; a '/'
// announcing a sub-index that then fails to scan is a failure.
func (p *Parser) parseFace(line []byte, row int) error {
	s := &p.scratch
	s.vertex = s.vertex[:0]
	s.texture = s.texture[:0]
	s.normal = s.normal[:0]

	count := p.Vertex.Len()

	cur := 0
	for !atEOL(line, cur) {
		i, next, ok := scanInt(line, cur)
		if !ok {
			return recordError(row, "f")
		}
		cur = next
		s.vertex = append(s.vertex, resolveIndex(i, count))

		if cur < len(line) && line[cur] == '/' {
			cur++

			if !(cur < len(line) && line[cur] == '/') {
				i, next, ok = scanInt(line, cur)
				if !ok {
					return recordError(row, "f")
				}
				cur = next
				s.texture = append(s.texture, resolveIndex(i, count))
			}

			if cur < len(line) && line[cur] == '/' {
				cur++

				i, next, ok = scanInt(line, cur)
				if !ok {
					return recordError(row, "f")
				}
				cur = next
				s.normal = append(s.normal, resolveIndex(i, count))
			}
		}

		cur = skipBlank(line, cur)
	}

	p.insertIndices(&p.Face.Vertex, s.vertex)
	p.insertIndices(&p.Face.Texture, s.texture)
	p.insertIndices(&p.Face.Normal, s.normal)
	return nil
}

// parseLine reads an l record: entries of the form v[/vt] until end of
// line, resolved like face entries.
func (p *Parser) parseLine(line []byte, row int) error {
	s := &p.scratch
	s.vertex = s.vertex[:0]
	s.texture = s.texture[:0]

	count := p.Vertex.Len()

	cur := 0
	for !atEOL(line, cur) {
		i, next, ok := scanInt(line, cur)
		if !ok {
			return recordError(row, "l")
		}
		cur = next
		s.vertex = append(s.vertex, resolveIndex(i, count))

		if cur < len(line) && line[cur] == '/' {
			cur++

			i, next, ok = scanInt(line, cur)
			if !ok {
				return recordError(row, "l")
			}
			cur = next
			s.texture = append(s.texture, resolveIndex(i, count))
		}

		cur = skipBlank(line, cur)
	}

	p.Line.Vertex.Insert(s.vertex)
	p.Line.Texture.Insert(s.texture)
	return nil
}

// parsePoint reads a p record: bare vertex indices until end of line.
func (p *Parser) parsePoint(line []byte, row int) error {
	s := &p.scratch
	s.vertex = s.vertex[:0]

	count := p.Vertex.Len()

	cur := 0
	for !atEOL(line, cur) {
		i, next, ok := scanInt(line, cur)
		if !ok {
			return recordError(row, "p")
		}
		cur = next
		s.vertex = append(s.vertex, resolveIndex(i, count))

		cur = skipBlank(line, cur)
	}

	p.Point.Vertex.Insert(s.vertex)
	return nil
}

// parseMaterialFile reads an mtllib record, verifying the directive byte
// by byte before capturing the trimmed target path. Any other line
// starting with 'm' is a failure, matching the dispatcher's single-byte
// routing.
func (p *Parser) parseMaterialFile(line []byte, row int) error {
	rest, ok := expectWord(line, "mtllib")
	if !ok {
		return recordError(row, "mtllib")
	}

	p.materialFile = string(trimLine(rest))
	return nil
}

// parseUseMaterial reads a usemtl record and marks the face index at
// which the named material becomes active.
func (p *Parser) parseUseMaterial(line []byte, row int) error {
	rest, ok := expectWord(line, "usemtl")
	if !ok {
		return recordError(row, "usemtl")
	}

	p.materialFace = append(p.materialFace, MaterialUse{
		Name:      string(trimLine(rest)),
		FirstFace: p.Face.Vertex.Len(),
	})
	return nil
}

// parseAnnotation captures a comment, object, group or smoothing line,
// tagged with its marker byte and the face count at that point.
func (p *Parser) parseAnnotation(line []byte) {
	p.information = append(p.information, Annotation{
		Marker: line[0],
		Text:   string(trimLine(line[1:])),
		Face:   p.Face.Vertex.Len(),
	})
}

// expectWord consumes word from the front of line.
func expectWord(line []byte, word string) ([]byte, bool) {
	if len(line) < len(word) {
		return nil, false
	}
	for i := 0; i < len(word); i++ {
		if line[i] != word[i] {
			return nil, false
		}
	}
	return line[len(word):], true
}

// insertIndices appends one record of face indices, fan-triangulating
// when the Parser was configured to and the record has more than three
// entries. Shorter records, malformed one- and two-entry faces included,
// are inserted verbatim.
func (p *Parser) insertIndices(list *List[int], indices []int) {
	if p.triangulate && len(indices) > 3 {
		p.triangulateIndices(list, indices)
		return
	}
	list.Insert(indices)
}

// triangulateIndices fan-decomposes indices into len-2 triangles.
// Triangle k is (indices[k+1], indices[k+2], indices[0]): the anchor is
// the first entry but it is emitted last. Winding and the face ranges of
// the material linker depend on this exact order, so it must not be
// rearranged into the conventional anchor-first fan.
func (p *Parser) triangulateIndices(list *List[int], indices []int) {
	for k := 0; k+2 < len(indices); k++ {
		tri := p.scratch.tri[:0]
		tri = append(tri, indices[k+1], indices[k+2], indices[0])
		list.Insert(tri)
		p.scratch.tri = tri[:0]
	}
}
