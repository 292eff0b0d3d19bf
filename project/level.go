package project

import (
	"github.com/kvartborg/vector"
	"github.com/solarlune/resolv"
)

// IndexOf returns the position of obj in the paint order, or -1.
func (l *Level) IndexOf(obj *GameObject) int {
	for i, o := range l.GameObjects {
		if o == obj {
			return i
		}
	}
	return -1
}

// BringToFront moves the instance at i to the end of the paint order. The
// other instances keep their relative order.
func (l *Level) BringToFront(i int) bool {
	n := len(l.GameObjects)
	if i < 0 || i >= n {
		return false
	}
	obj := l.GameObjects[i]
	copy(l.GameObjects[i:], l.GameObjects[i+1:])
	l.GameObjects[n-1] = obj
	return true
}

// Remove deletes obj from the level.
func (l *Level) Remove(obj *GameObject) bool {
	i := l.IndexOf(obj)
	if i < 0 {
		return false
	}
	copy(l.GameObjects[i:], l.GameObjects[i+1:])
	l.GameObjects[len(l.GameObjects)-1] = nil
	l.GameObjects = l.GameObjects[:len(l.GameObjects)-1]
	return true
}

// Pick returns the index of the topmost instance whose bounds contain pt,
// or -1 when nothing is under it.
func (l *Level) Pick(pt Vec2) int {
	v := vector.Vector{pt.X, pt.Y}
	for i := len(l.GameObjects) - 1; i >= 0; i-- {
		shape := l.GameObjects[i].Bounds()
		if shape == nil {
			continue
		}
		if shape.PointInside(v) {
			return i
		}
	}
	return -1
}

// Bounds returns the transformed texture rectangle of the instance, or nil
// when no texture is bound.
func (o *GameObject) Bounds() *resolv.ConvexPolygon {
	if o == nil || o.texture == nil {
		return nil
	}
	b := o.texture.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	if w <= 0 || h <= 0 {
		return nil
	}
	rect := resolv.NewRectangle(0, 0, w, h)
	for _, p := range rect.Points {
		p[0] -= o.Origin.X
		p[1] -= o.Origin.Y
	}
	rect.SetPosition(o.Position.X, o.Position.Y)
	rect.SetScale(o.Scale.X, o.Scale.Y)
	// resolv rotates counter-clockwise in screen space.
	rect.SetRotation(-o.Rotation.Radians())
	return rect
}
