package hitbox

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/leveleditor/project"
)

// SegmentRef names one edge of a hitbox map: Vertices[Index] to
// Vertices[Index+1] of polyline Polyline.
type SegmentRef struct {
	Polyline int
	Index    int
}

// Preview indexes hitbox edges as static segments for hover queries.
type Preview struct {
	space    *cp.Space
	segments map[*cp.Shape]SegmentRef
}

func NewPreview(polys []project.Polyline) *Preview {
	p := &Preview{
		space:    cp.NewSpace(),
		segments: make(map[*cp.Shape]SegmentRef),
	}
	for pi, poly := range polys {
		for i := 0; i+1 < len(poly.Vertices); i++ {
			a := poly.Vertices[i].Position
			b := poly.Vertices[i+1].Position
			if a == b {
				continue
			}
			shape := cp.NewSegment(p.space.StaticBody, cp.Vector{X: a.X, Y: a.Y}, cp.Vector{X: b.X, Y: b.Y}, 0)
			p.space.AddShape(shape)
			p.segments[shape] = SegmentRef{Polyline: pi, Index: i}
		}
	}
	return p
}

// Len returns the number of indexed segments.
func (p *Preview) Len() int {
	return len(p.segments)
}

// SegmentAt returns the edge nearest to pt within maxDist.
func (p *Preview) SegmentAt(pt project.Vec2, maxDist float64) (SegmentRef, bool) {
	if p == nil || len(p.segments) == 0 {
		return SegmentRef{}, false
	}
	info := p.space.PointQueryNearest(cp.Vector{X: pt.X, Y: pt.Y}, maxDist, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return SegmentRef{}, false
	}
	ref, ok := p.segments[info.Shape]
	return ref, ok
}
