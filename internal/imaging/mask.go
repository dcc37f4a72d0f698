package imaging

// Mask is a binary image produced by thresholding a channel plane.
type Mask struct {
	Width  int
	Height int
	Bits   []bool
}

// Threshold binarizes the plane: pixels strictly above floor are set.
func (p *Plane) Threshold(floor float64) *Mask {
	mask := &Mask{
		Width:  p.Width,
		Height: p.Height,
		Bits:   make([]bool, len(p.Pix)),
	}
	for i, v := range p.Pix {
		mask.Bits[i] = float64(v) > floor
	}
	return mask
}

// Components labels the 4-connected components of the mask and returns their
// areas in discovery order. An all-clear mask yields an empty slice.
func (m *Mask) Components() []int {
	visited := make([]bool, len(m.Bits))
	var areas []int
	var queue []int

	for start, set := range m.Bits {
		if !set || visited[start] {
			continue
		}

		area := 0
		queue = append(queue[:0], start)
		visited[start] = true
		for len(queue) > 0 {
			idx := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			area++

			x, y := idx%m.Width, idx/m.Width
			if x > 0 {
				queue = m.visit(idx-1, visited, queue)
			}
			if x < m.Width-1 {
				queue = m.visit(idx+1, visited, queue)
			}
			if y > 0 {
				queue = m.visit(idx-m.Width, visited, queue)
			}
			if y < m.Height-1 {
				queue = m.visit(idx+m.Width, visited, queue)
			}
		}
		areas = append(areas, area)
	}
	return areas
}

func (m *Mask) visit(idx int, visited []bool, queue []int) []int {
	if m.Bits[idx] && !visited[idx] {
		visited[idx] = true
		queue = append(queue, idx)
	}
	return queue
}
