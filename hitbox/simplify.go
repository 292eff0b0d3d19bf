package hitbox

import (
	"image"
	"math"
)

// simplifyRing runs Ramer-Douglas-Peucker on an implicitly closed ring by
// splitting it at the point farthest from the first one.
func simplifyRing(ring []image.Point, epsilon float64) []image.Point {
	ring = dedupe(ring)
	if len(ring) < 3 {
		return ring
	}
	far, best := 0, -1.0
	for i, p := range ring {
		if d := dist(ring[0], p); d > best {
			far, best = i, d
		}
	}
	first := rdp(ring[:far+1], epsilon)
	second := rdp(append(append([]image.Point{}, ring[far:]...), ring[0]), epsilon)
	out := append(first, second[1:len(second)-1]...)
	return dedupe(out)
}

func rdp(pts []image.Point, epsilon float64) []image.Point {
	if len(pts) < 3 {
		return append([]image.Point{}, pts...)
	}
	a, b := pts[0], pts[len(pts)-1]
	idx, best := 0, -1.0
	for i := 1; i < len(pts)-1; i++ {
		if d := segmentDist(pts[i], a, b); d > best {
			idx, best = i, d
		}
	}
	if best <= epsilon {
		return []image.Point{a, b}
	}
	left := rdp(pts[:idx+1], epsilon)
	right := rdp(pts[idx:], epsilon)
	return append(left[:len(left)-1], right...)
}

// dedupe drops consecutive repeats, including a trailing copy of the first
// point.
func dedupe(pts []image.Point) []image.Point {
	out := make([]image.Point, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}
	return out
}

func dist(a, b image.Point) float64 {
	return math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
}

func segmentDist(p, a, b image.Point) float64 {
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	if dx == 0 && dy == 0 {
		return dist(p, a)
	}
	t := (float64(p.X-a.X)*dx + float64(p.Y-a.Y)*dy) / (dx*dx + dy*dy)
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(float64(p.X)-(float64(a.X)+t*dx), float64(p.Y)-(float64(a.Y)+t*dy))
}
