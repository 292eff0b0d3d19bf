package persist

import "github.com/milk9111/leveleditor/project"

// Document types mirror the on-disk JSON. Every geometric value is a named
// sub-object so new fields never shift positions.

type vec2Doc struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type angleDoc struct {
	Degrees float64 `json:"degrees"`
}

type colorDoc struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

type vertexDoc struct {
	Color    colorDoc `json:"color"`
	Position vec2Doc  `json:"position"`
}

type polylineDoc struct {
	PrimitiveType string      `json:"primitiveType"`
	Vertices      []vertexDoc `json:"vertices"`
}

type gameObjectDoc struct {
	AssetID  string   `json:"assetID"`
	Position vec2Doc  `json:"position"`
	Scale    vec2Doc  `json:"scale"`
	Rotation angleDoc `json:"rotation"`
	Origin   vec2Doc  `json:"origin"`
}

type levelDoc struct {
	LevelNameID string          `json:"levelNameId"`
	HitboxMap   []polylineDoc   `json:"hitboxMap"`
	GameObjects []gameObjectDoc `json:"gameObjects"`
}

type assetDoc struct {
	TexturePath     string   `json:"texturePath"`
	DefaultScale    vec2Doc  `json:"defaultScale"`
	DefaultRotation angleDoc `json:"defaultRotation"`
}

type projectDoc struct {
	Level                 levelDoc            `json:"level"`
	BackgroundTexturePath string              `json:"backgroundTexturePath"`
	HitboxTexturePath     string              `json:"hitboxTexturePath"`
	SimplifyIndex         int                 `json:"simplifyIndex"`
	HitboxMap             bool                `json:"bHitboxMap"`
	CloseHitboxLoop       bool                `json:"bCloseHitboxLoop"`
	Assets                map[string]assetDoc `json:"assets"`
}

func toVec2Doc(v project.Vec2) vec2Doc { return vec2Doc{X: v.X, Y: v.Y} }

func toColorDoc(c project.Color) colorDoc {
	return colorDoc{R: c.R, G: c.G, B: c.B, A: c.A}
}

func toPolylineDocs(polys []project.Polyline) []polylineDoc {
	docs := make([]polylineDoc, len(polys))
	for i, poly := range polys {
		verts := make([]vertexDoc, len(poly.Vertices))
		for j, v := range poly.Vertices {
			verts[j] = vertexDoc{Color: toColorDoc(v.Color), Position: toVec2Doc(v.Position)}
		}
		docs[i] = polylineDoc{PrimitiveType: poly.Primitive.String(), Vertices: verts}
	}
	return docs
}

func toGameObjectDoc(obj *project.GameObject) gameObjectDoc {
	return gameObjectDoc{
		AssetID:  obj.AssetID,
		Position: toVec2Doc(obj.Position),
		Scale:    toVec2Doc(obj.Scale),
		Rotation: angleDoc{Degrees: obj.Rotation.Degrees},
		Origin:   toVec2Doc(obj.Origin),
	}
}

func toLevelDoc(l *project.Level, hitboxes []project.Polyline) levelDoc {
	objs := make([]gameObjectDoc, 0, len(l.GameObjects))
	for _, obj := range l.GameObjects {
		if obj == nil {
			continue
		}
		objs = append(objs, toGameObjectDoc(obj))
	}
	return levelDoc{
		LevelNameID: l.LevelNameID,
		HitboxMap:   toPolylineDocs(hitboxes),
		GameObjects: objs,
	}
}

func toProjectDoc(p *project.Project) projectDoc {
	assets := make(map[string]assetDoc, len(p.Assets))
	for name, a := range p.Assets {
		if a == nil {
			continue
		}
		assets[name] = assetDoc{
			TexturePath:     a.TexturePath,
			DefaultScale:    toVec2Doc(a.DefaultScale),
			DefaultRotation: angleDoc{Degrees: a.DefaultRotation.Degrees},
		}
	}
	return projectDoc{
		Level:                 toLevelDoc(&p.Level, p.Level.HitboxMap),
		BackgroundTexturePath: p.BackgroundTexturePath,
		HitboxTexturePath:     p.HitboxTexturePath,
		SimplifyIndex:         p.SimplifyIndex,
		HitboxMap:             p.HitboxMap,
		CloseHitboxLoop:       p.CloseHitboxLoop,
		Assets:                assets,
	}
}
