package editor

import "github.com/milk9111/leveleditor/project"

const (
	minZoom = 0.1
	maxZoom = 8
)

// View maps screen pixels to level coordinates: screen = world*Zoom + Offset.
type View struct {
	Zoom    float64
	OffsetX float64
	OffsetY float64
}

func (v View) zoom() float64 {
	if v.Zoom == 0 {
		return 1
	}
	return v.Zoom
}

func (v View) ScreenToWorld(sx, sy float64) project.Vec2 {
	z := v.zoom()
	return project.Vec2{X: (sx - v.OffsetX) / z, Y: (sy - v.OffsetY) / z}
}

func (v View) WorldToScreen(p project.Vec2) (float64, float64) {
	z := v.zoom()
	return p.X*z + v.OffsetX, p.Y*z + v.OffsetY
}

// ZoomAt scales the view by factor, keeping the level point under (sx, sy)
// fixed on screen.
func (v *View) ZoomAt(sx, sy, factor float64) {
	anchor := v.ScreenToWorld(sx, sy)
	z := max(minZoom, min(v.zoom()*factor, maxZoom))
	v.Zoom = z
	v.OffsetX = sx - anchor.X*z
	v.OffsetY = sy - anchor.Y*z
}

func (v *View) Pan(dx, dy float64) {
	v.OffsetX += dx
	v.OffsetY += dy
}
