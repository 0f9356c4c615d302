package contour

import (
	"image"
	"sort"
)

// Moore neighbourhood, clockwise on screen (Y grows downward) from east.
var neighbours = [8]image.Point{
	{1, 0},   // E
	{1, 1},   // SE
	{0, 1},   // S
	{-1, 1},  // SW
	{-1, 0},  // W
	{-1, -1}, // NW
	{0, -1},  // N
	{1, -1},  // NE
}

const dirWest = 4

// direction returns the index of the unit step d in neighbours, or -1.
func direction(d image.Point) int {
	for i, n := range neighbours {
		if n == d {
			return i
		}
	}
	return -1
}

// mask is a binary view over an edge map. Any non-zero pixel is foreground.
type mask struct {
	pix           []uint8
	stride        int
	width, height int
}

func newMask(g *image.Gray) mask {
	b := g.Bounds()
	return mask{
		pix:    g.Pix[g.PixOffset(b.Min.X, b.Min.Y):],
		stride: g.Stride,
		width:  b.Dx(),
		height: b.Dy(),
	}
}

func (m mask) on(p image.Point) bool {
	if p.X < 0 || p.Y < 0 || p.X >= m.width || p.Y >= m.height {
		return false
	}
	return m.pix[p.Y*m.stride+p.X] != 0
}

// Trace extracts contours from a binary edge map.
//
// The map is split into 8-connected components; components with fewer than
// minPixels pixels are dropped as noise. The outer boundary of each remaining
// component is traced and compressed so that only the end points of straight
// runs remain. Points are relative to edges.Bounds().Min, and contours are
// returned in raster order of their top-left-most pixel.
func Trace(edges *image.Gray, mode Retrieval, minPixels int) []Contour {
	m := newMask(edges)
	starts, sizes := components(m, minPixels)

	contours := make([]Contour, 0, len(starts))
	for i, start := range starts {
		contours = append(contours, compress(traceBoundary(m, start, 4*sizes[i]+16)))
	}

	if mode == RetrievalList {
		return contours
	}
	return outermost(contours)
}

// components labels 8-connected foreground regions with an iterative
// flood-fill. For each region of at least minPixels pixels it returns the
// first pixel met in raster order and the region size.
func components(m mask, minPixels int) (starts []image.Point, sizes []int) {
	visited := make([]bool, m.width*m.height)
	stack := make([]image.Point, 0, 256)

	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			start := image.Pt(x, y)
			if visited[y*m.width+x] || !m.on(start) {
				continue
			}

			size := 0
			visited[y*m.width+x] = true
			stack = append(stack[:0], start)
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				size++

				for _, d := range neighbours {
					q := p.Add(d)
					if !m.on(q) || visited[q.Y*m.width+q.X] {
						continue
					}
					visited[q.Y*m.width+q.X] = true
					stack = append(stack, q)
				}
			}

			if size >= minPixels {
				starts = append(starts, start)
				sizes = append(sizes, size)
			}
		}
	}
	return starts, sizes
}

// traceBoundary walks the outer boundary of the component containing start
// with Moore-neighbour tracing. start must be the component's first pixel in
// raster order, so its west neighbour is background.
//
// Tracing stops when start is about to be left in the same direction as the
// first step (Jacob's stopping criterion), or after limit steps.
func traceBoundary(m mask, start image.Point, limit int) Contour {
	out := Contour{start}
	cur, back := start, dirWest
	var second image.Point

	for i := 0; i < limit; i++ {
		next, nextBack, ok := mooreStep(m, cur, back)
		if !ok {
			break // isolated pixel
		}
		if i == 0 {
			second = next
		} else {
			if cur == start && next == second {
				break
			}
			out = append(out, cur)
		}
		cur, back = next, nextBack
	}
	return out
}

// mooreStep scans the neighbours of cur clockwise, starting just after the
// background pixel in direction back. It returns the first foreground
// neighbour and the direction from it to the last background pixel checked.
func mooreStep(m mask, cur image.Point, back int) (image.Point, int, bool) {
	prev := cur.Add(neighbours[back])
	for k := 1; k < 8; k++ {
		q := cur.Add(neighbours[(back+k)%8])
		if m.on(q) {
			return q, direction(prev.Sub(q)), true
		}
		prev = q
	}
	return image.Point{}, 0, false
}

// compress drops every vertex whose incoming and outgoing steps are equal,
// leaving only the corners of a traced boundary.
func compress(c Contour) Contour {
	n := len(c)
	if n < 3 {
		return c
	}
	out := make(Contour, 0, n/2+1)
	for i, p := range c {
		prev := c[(i+n-1)%n]
		next := c[(i+1)%n]
		if p.Sub(prev) != next.Sub(p) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return c[:1]
	}
	return out
}

// outermost removes contours lying inside another contour. Order is kept.
func outermost(contours []Contour) []Contour {
	type entry struct {
		idx    int
		bounds image.Rectangle
	}
	entries := make([]entry, len(contours))
	for i, c := range contours {
		entries[i] = entry{idx: i, bounds: c.Bounds()}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		ai := entries[i].bounds.Dx() * entries[i].bounds.Dy()
		aj := entries[j].bounds.Dx() * entries[j].bounds.Dy()
		return ai > aj
	})

	keep := make([]bool, len(contours))
	var kept []entry
	for _, e := range entries {
		enclosed := false
		for _, k := range kept {
			if e.bounds.In(k.bounds) && contours[k.idx].Contains(contours[e.idx][0]) {
				enclosed = true
				break
			}
		}
		if !enclosed {
			keep[e.idx] = true
			kept = append(kept, e)
		}
	}

	out := make([]Contour, 0, len(kept))
	for i, c := range contours {
		if keep[i] {
			out = append(out, c)
		}
	}
	return out
}
