package hitbox

import (
	"fmt"
	"image"
	"image/color"

	"github.com/milk9111/leveleditor/project"
	"github.com/milk9111/leveleditor/resource"
)

// MaxLevel caps the simplification tolerance, in pixels.
const MaxLevel = 30

// Red is the color given to every traced vertex.
var Red = project.Color{R: 255, A: 255}

type Vectorizer = project.Vectorizer

var _ Vectorizer = (*Tracer)(nil)

// Tracer outlines dark opaque regions of an image. Holes inside a region are
// not traced.
type Tracer struct {
	// Decode reads the image at a path. Defaults to resource.DecodeFile.
	Decode func(path string) (image.Image, error)
}

func NewTracer() *Tracer {
	return &Tracer{Decode: resource.DecodeFile}
}

func (t *Tracer) Vectorize(imagePath string, level int) ([]project.Polyline, error) {
	decode := t.Decode
	if decode == nil {
		decode = resource.DecodeFile
	}
	img, err := decode(imagePath)
	if err != nil {
		return nil, fmt.Errorf("hitbox: vectorize %s: %w", imagePath, err)
	}
	return Trace(img, level), nil
}

// Trace returns one closed LineStrip per 4-connected solid region of img, in
// raster order of each region's top-left pixel.
func Trace(img image.Image, level int) []project.Polyline {
	level = max(0, min(level, MaxLevel))
	g := newGrid(img)
	labels := g.label()

	var out []project.Polyline
	seen := make(map[int]bool)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			id := labels[y*g.w+x]
			if id == 0 || seen[id] {
				continue
			}
			seen[id] = true
			ring := trace(g, labels, id, image.Pt(x, y))
			ring = simplifyRing(ring, float64(level))
			if len(ring) < 3 {
				continue
			}
			out = append(out, toPolyline(ring, g.min))
		}
	}
	return out
}

func toPolyline(ring []image.Point, offset image.Point) project.Polyline {
	verts := make([]project.Vertex, 0, len(ring)+1)
	for _, p := range ring {
		verts = append(verts, project.Vertex{
			Position: project.Vec2{X: float64(p.X + offset.X), Y: float64(p.Y + offset.Y)},
			Color:    Red,
		})
	}
	verts = append(verts, verts[0])
	return project.Polyline{Primitive: project.LineStrip, Vertices: verts}
}

type grid struct {
	w, h  int
	min   image.Point
	solid []bool
}

func newGrid(img image.Image) *grid {
	b := img.Bounds()
	g := &grid{w: b.Dx(), h: b.Dy(), min: b.Min}
	g.solid = make([]bool, g.w*g.h)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			g.solid[y*g.w+x] = isSolid(img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return g
}

// isSolid treats dark, mostly opaque pixels as collision.
func isSolid(c color.Color) bool {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A < 128 {
		return false
	}
	lum := (299*int(n.R) + 587*int(n.G) + 114*int(n.B)) / 1000
	return lum < 128
}

func (g *grid) in(p image.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.w && p.Y < g.h
}

// label assigns 4-connected component ids starting at 1; 0 is empty.
func (g *grid) label() []int {
	labels := make([]int, len(g.solid))
	next := 0
	var stack []image.Point
	for i, s := range g.solid {
		if !s || labels[i] != 0 {
			continue
		}
		next++
		labels[i] = next
		stack = append(stack[:0], image.Pt(i%g.w, i/g.w))
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, d := range [4]image.Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				q := p.Add(d)
				if !g.in(q) {
					continue
				}
				j := q.Y*g.w + q.X
				if g.solid[j] && labels[j] == 0 {
					labels[j] = next
					stack = append(stack, q)
				}
			}
		}
	}
	return labels
}

// moore lists the 8 neighbours clockwise in screen space, starting west.
var moore = [8]image.Point{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

func mooreIndex(d image.Point) int {
	for i, m := range moore {
		if m == d {
			return i
		}
	}
	return 0
}

// trace walks the outer boundary of component id clockwise from start, which
// must be the component's first pixel in raster order. Tracing stops when
// start is re-entered from the same side it was first entered.
func trace(g *grid, labels []int, id int, start image.Point) []image.Point {
	member := func(p image.Point) bool {
		return g.in(p) && labels[p.Y*g.w+p.X] == id
	}

	ring := []image.Point{start}
	startBack := start.Add(moore[0])
	p, back := start, startBack
	limit := 4*len(labels) + 8
	for steps := 0; steps < limit; steps++ {
		k := mooreIndex(back.Sub(p))
		found := false
		for i := 1; i <= 8; i++ {
			c := p.Add(moore[(k+i)%8])
			if !member(c) {
				continue
			}
			back = p.Add(moore[(k+i-1)%8])
			p = c
			found = true
			break
		}
		if !found {
			break
		}
		if p == start && back == startBack {
			break
		}
		ring = append(ring, p)
	}
	return ring
}
