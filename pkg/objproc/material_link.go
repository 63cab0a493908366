package objproc

// NoMaterial is the sentinel index emitted for faces governed by a
// usemtl name the provider does not know.
const NoMaterial = -1

// ConnectFaceMaterial maps each usemtl boundary onto the contiguous face
// range it governs, from its recorded first face up to the next
// boundary's first face (or the total face count for the last entry),
// and joins the ranges with the provider's material list. The result
// holds one resolved material index per face; unknown material names
// yield NoMaterial for their whole range. When the emitted count does
// not equal the face count the mapping is inconsistent and the result is
// discarded: callers get nil, not an error, and decide how to degrade.
func ConnectFaceMaterial(p *Parser, provider MaterialProvider) []int {
	materials := provider.Materials()
	if len(materials) == 0 || p.Face.Vertex.Empty() {
		return nil
	}

	nameIndex := make(map[string]int, len(materials))
	for i, m := range materials {
		nameIndex[m.Name] = i
	}

	faceCount := p.Face.Vertex.Len()
	boundaries := p.UseMaterial()

	connect := make([]int, 0, faceCount)
	for i, use := range boundaries {
		lastFace := faceCount
		if i+1 < len(boundaries) {
			lastFace = boundaries[i+1].FirstFace
		}

		index := NoMaterial
		if resolved, ok := nameIndex[use.Name]; ok {
			index = resolved
		}

		for face := use.FirstFace; face < lastFace; face++ {
			connect = append(connect, index)
		}
	}

	if len(connect) != faceCount {
		return nil
	}
	return connect
}

// FaceColors emits one diffuse color row per face, four components wide
// when alpha is requested and three otherwise. Faces governed by a known
// material take its diffuse color and, with alpha, its dissolve value.
// When no consistent face-material mapping exists every face falls back
// to the first material's color, or to blue when the provider is empty.
func FaceColors(p *Parser, provider MaterialProvider, alpha bool) [][]float32 {
	r, g, b, a := float32(0), float32(0), float32(1), float32(1)

	row := func() []float32 {
		if alpha {
			return []float32{r, g, b, a}
		}
		return []float32{r, g, b}
	}

	materials := provider.Materials()

	faceMaterial := ConnectFaceMaterial(p, provider)
	if len(faceMaterial) == 0 {
		if len(materials) > 0 {
			m := materials[0]
			r, g, b = m.Diffuse[0], m.Diffuse[1], m.Diffuse[2]
			if alpha {
				a = m.Dissolve
			}
		}

		colors := make([][]float32, p.Face.Vertex.Len())
		for i := range colors {
			colors[i] = row()
		}
		return colors
	}

	colors := make([][]float32, len(faceMaterial))
	current := NoMaterial
	for face := range colors {
		if index := faceMaterial[face]; index != current && index != NoMaterial {
			current = index

			m := materials[current]
			r, g, b = m.Diffuse[0], m.Diffuse[1], m.Diffuse[2]
			if alpha {
				a = m.Dissolve
			}
		}

		colors[face] = row()
	}
	return colors
}
