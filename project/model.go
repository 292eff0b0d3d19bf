package project

import "image"

// Texture is a decoded image usable for rendering. *ebiten.Image satisfies it.
type Texture interface {
	Bounds() image.Rectangle
}

// Asset is a catalog entry: a reusable image with a default placement.
type Asset struct {
	TexturePath     string
	DefaultScale    Vec2
	DefaultRotation Angle
}

// NewAsset returns an asset for path with unit scale and no rotation.
func NewAsset(path string) Asset {
	return Asset{TexturePath: path, DefaultScale: Vec2{X: 1, Y: 1}}
}

// GameObject is one placement of a catalog asset in the level.
type GameObject struct {
	AssetID  string
	Position Vec2
	Scale    Vec2
	Rotation Angle
	Origin   Vec2

	texture Texture
}

// Texture returns the bound resource, or nil when the asset is unbound.
func (o *GameObject) Texture() Texture {
	if o == nil {
		return nil
	}
	return o.texture
}

// bind attaches tex and recenters the origin on the texture size.
func (o *GameObject) bind(tex Texture) {
	o.texture = tex
	if tex == nil {
		return
	}
	o.Origin = halfSize(tex)
}

func halfSize(tex Texture) Vec2 {
	b := tex.Bounds()
	return Vec2{X: float64(b.Dx()) / 2, Y: float64(b.Dy()) / 2}
}

// Vertex is one point of a hitbox polyline.
type Vertex struct {
	Position Vec2
	Color    Color
}

// Polyline is one collision boundary produced by the vectorizer.
type Polyline struct {
	Primitive PrimitiveType
	Vertices  []Vertex
}

// Closed reports whether the last vertex repeats the first one.
func (p Polyline) Closed() bool {
	n := len(p.Vertices)
	return n >= 2 && p.Vertices[0].Position == p.Vertices[n-1].Position
}

// Opened returns a copy of p with the closing vertex dropped. Polylines that
// are already open come back unchanged.
func (p Polyline) Opened() Polyline {
	out := Polyline{Primitive: p.Primitive}
	verts := p.Vertices
	if p.Closed() {
		verts = verts[:len(verts)-1]
	}
	out.Vertices = append([]Vertex(nil), verts...)
	return out
}

// OpenAll applies Opened to every polyline.
func OpenAll(polys []Polyline) []Polyline {
	out := make([]Polyline, len(polys))
	for i, p := range polys {
		out[i] = p.Opened()
	}
	return out
}

// Level is the placed content of a project.
type Level struct {
	LevelNameID string
	HitboxMap   []Polyline
	GameObjects []*GameObject
}

// Project is the root of ownership for a level and its asset catalog.
type Project struct {
	Level                 Level
	BackgroundTexturePath string
	HitboxTexturePath     string
	SimplifyIndex         int
	HitboxMap             bool
	CloseHitboxLoop       bool
	Assets                map[string]*Asset
}

const DefaultSimplifyIndex = 3

// New returns an empty project with the editor defaults.
func New() *Project {
	return &Project{
		SimplifyIndex:   DefaultSimplifyIndex,
		CloseHitboxLoop: true,
		Assets:          make(map[string]*Asset),
	}
}

// Clone deep-copies p. Texture handles are shared since the resolver owns them.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	c := *p
	c.Assets = make(map[string]*Asset, len(p.Assets))
	for name, a := range p.Assets {
		if a == nil {
			continue
		}
		dup := *a
		c.Assets[name] = &dup
	}
	c.Level = p.Level.clone()
	return &c
}

func (l Level) clone() Level {
	c := Level{LevelNameID: l.LevelNameID}
	if l.HitboxMap != nil {
		c.HitboxMap = make([]Polyline, len(l.HitboxMap))
		for i, poly := range l.HitboxMap {
			c.HitboxMap[i] = Polyline{
				Primitive: poly.Primitive,
				Vertices:  append([]Vertex(nil), poly.Vertices...),
			}
		}
	}
	if l.GameObjects != nil {
		c.GameObjects = make([]*GameObject, len(l.GameObjects))
		for i, obj := range l.GameObjects {
			dup := *obj
			c.GameObjects[i] = &dup
		}
	}
	return c
}
