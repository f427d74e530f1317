package spritesmith

// bitmask is a boolean image stored as one byte per pixel, row-major.
// Used transiently during sprite isolation; never persisted.
type bitmask struct {
	w, h int
	pix  []uint8
}

func newBitmask(w, h int) *bitmask {
	return &bitmask{w: w, h: h, pix: make([]uint8, w*h)}
}

func (m *bitmask) at(x, y int) uint8 {
	return m.pix[y*m.w+x]
}

func (m *bitmask) set(x, y int, v uint8) {
	m.pix[y*m.w+x] = v
}

// morphRadius is half the side of the fixed 5x5 all-ones structuring element
// used to suppress speckle noise before labeling.
const morphRadius = 2

// dilate returns the morphological dilation of m: a pixel is set when any
// pixel in its 5x5 neighborhood is set. Pixels beyond the image edge count
// as unset.
func (m *bitmask) dilate() *bitmask {
	out := newBitmask(m.w, m.h)
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if m.at(x, y) == 0 {
				continue
			}
			y0, y1 := max(y-morphRadius, 0), min(y+morphRadius, m.h-1)
			x0, x1 := max(x-morphRadius, 0), min(x+morphRadius, m.w-1)
			for yy := y0; yy <= y1; yy++ {
				for xx := x0; xx <= x1; xx++ {
					out.set(xx, yy, 1)
				}
			}
		}
	}
	return out
}

// erode returns the morphological erosion of m: a pixel stays set only when
// every pixel in its 5x5 neighborhood is set. Pixels beyond the image edge
// count as set, so the mask does not shrink against the border.
func (m *bitmask) erode() *bitmask {
	out := newBitmask(m.w, m.h)
	for y := 0; y < m.h; y++ {
	pixels:
		for x := 0; x < m.w; x++ {
			if m.at(x, y) == 0 {
				continue
			}
			y0, y1 := max(y-morphRadius, 0), min(y+morphRadius, m.h-1)
			x0, x1 := max(x-morphRadius, 0), min(x+morphRadius, m.w-1)
			for yy := y0; yy <= y1; yy++ {
				for xx := x0; xx <= x1; xx++ {
					if m.at(xx, yy) == 0 {
						continue pixels
					}
				}
			}
			out.set(x, y, 1)
		}
	}
	return out
}

// denoise applies the fixed dilate-erode-dilate sequence that closes small
// gaps in the sprite blob and then regrows its silhouette, suppressing
// isolated speckle relative to the surviving regions.
func (m *bitmask) denoise() *bitmask {
	return m.dilate().erode().dilate()
}

// componentLabels holds the result of connected-component labeling: a label
// per pixel (0 = background, components numbered from 1) and the pixel count
// of each component indexed by label-1.
type componentLabels struct {
	labels []int32
	counts []int
}

// labelComponents labels the 8-connected components of the mask with a
// two-pass scan: provisional labels plus union-find on the first pass,
// relabeling to compact 1-based ids on the second.
func labelComponents(m *bitmask) componentLabels {
	labels := make([]int32, m.w*m.h)
	parent := []int32{0} // parent[0] unused; roots point to themselves

	var find func(int32) int32
	find = func(i int32) int32 {
		for parent[i] != i {
			parent[i] = parent[parent[i]] // path halving
			i = parent[i]
		}
		return i
	}
	union := func(a, b int32) {
		ra, rb := find(a), find(b)
		if ra != rb {
			if ra < rb {
				parent[rb] = ra
			} else {
				parent[ra] = rb
			}
		}
	}

	next := int32(1)
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if m.at(x, y) == 0 {
				continue
			}
			// Already-scanned 8-neighbors: W, NW, N, NE.
			var neighbors [4]int32
			n := 0
			if x > 0 && m.at(x-1, y) != 0 {
				neighbors[n] = labels[y*m.w+x-1]
				n++
			}
			if y > 0 {
				if x > 0 && m.at(x-1, y-1) != 0 {
					neighbors[n] = labels[(y-1)*m.w+x-1]
					n++
				}
				if m.at(x, y-1) != 0 {
					neighbors[n] = labels[(y-1)*m.w+x]
					n++
				}
				if x < m.w-1 && m.at(x+1, y-1) != 0 {
					neighbors[n] = labels[(y-1)*m.w+x+1]
					n++
				}
			}
			if n == 0 {
				parent = append(parent, next)
				labels[y*m.w+x] = next
				next++
				continue
			}
			lowest := neighbors[0]
			for i := 1; i < n; i++ {
				if neighbors[i] < lowest {
					lowest = neighbors[i]
				}
			}
			labels[y*m.w+x] = lowest
			for i := 0; i < n; i++ {
				union(lowest, neighbors[i])
			}
		}
	}

	// Compact root labels into consecutive 1-based component ids.
	compact := make(map[int32]int32)
	var counts []int
	for i, l := range labels {
		if l == 0 {
			continue
		}
		root := find(l)
		id, ok := compact[root]
		if !ok {
			id = int32(len(counts) + 1)
			compact[root] = id
			counts = append(counts, 0)
		}
		labels[i] = id
		counts[id-1]++
	}
	return componentLabels{labels: labels, counts: counts}
}

// rankByArea returns the 1-based label of the rank-th largest component
// (rank 0 = largest). Ties go to the lower label. ok is false when fewer
// than rank+1 components exist.
func (c componentLabels) rankByArea(rank int) (int32, bool) {
	if rank >= len(c.counts) {
		return 0, false
	}
	picked := make([]bool, len(c.counts))
	var label int32
	for r := 0; r <= rank; r++ {
		best := -1
		for i, n := range c.counts {
			if picked[i] {
				continue
			}
			if best < 0 || n > c.counts[best] {
				best = i
			}
		}
		picked[best] = true
		label = int32(best + 1)
	}
	return label, true
}
