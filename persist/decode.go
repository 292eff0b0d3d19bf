package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/milk9111/leveleditor/project"
)

// fieldReader pulls required fields out of one JSON object and keeps the
// first failure.
type fieldReader struct {
	obj map[string]json.RawMessage
	err error
}

func readObject(raw json.RawMessage) (*fieldReader, error) {
	if isNull(raw) {
		return nil, errNull
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, wrongType("object")
	}
	return &fieldReader{obj: obj}, nil
}

func get[T any](r *fieldReader, name string, dec func(json.RawMessage) (T, error)) T {
	var zero T
	if r.err != nil {
		return zero
	}
	raw, ok := r.obj[name]
	if !ok {
		r.err = at(name, errMissingField)
		return zero
	}
	v, err := dec(raw)
	if err != nil {
		r.err = at(name, err)
		return zero
	}
	return v
}

// optional is get for fields older documents may not carry.
func optional[T any](r *fieldReader, name string, dec func(json.RawMessage) (T, error), fallback T) T {
	if _, ok := r.obj[name]; !ok {
		return fallback
	}
	return get(r, name, dec)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func wrongType(kind string) error {
	return fmt.Errorf("expected %s", kind)
}

func scalar[T any](kind string) func(json.RawMessage) (T, error) {
	return func(raw json.RawMessage) (T, error) {
		var v T
		if isNull(raw) {
			return v, errNull
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return v, wrongType(kind)
		}
		return v, nil
	}
}

var (
	decodeString = scalar[string]("string")
	decodeFloat  = scalar[float64]("number")
	decodeInt    = scalar[int]("integer")
	decodeBool   = scalar[bool]("boolean")
	decodeUint8  = scalar[uint8]("integer 0-255")
)

func list[T any](dec func(json.RawMessage) (T, error)) func(json.RawMessage) ([]T, error) {
	return func(raw json.RawMessage) ([]T, error) {
		if isNull(raw) {
			return nil, errNull
		}
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, wrongType("array")
		}
		out := make([]T, 0, len(items))
		for i, item := range items {
			v, err := dec(item)
			if err != nil {
				return nil, at(fmt.Sprintf("[%d]", i), err)
			}
			out = append(out, v)
		}
		return out, nil
	}
}

func decodeVec2(raw json.RawMessage) (project.Vec2, error) {
	r, err := readObject(raw)
	if err != nil {
		return project.Vec2{}, err
	}
	v := project.Vec2{X: get(r, "x", decodeFloat), Y: get(r, "y", decodeFloat)}
	return v, r.err
}

func decodeAngle(raw json.RawMessage) (project.Angle, error) {
	r, err := readObject(raw)
	if err != nil {
		return project.Angle{}, err
	}
	return project.Degrees(get(r, "degrees", decodeFloat)), r.err
}

func decodeColor(raw json.RawMessage) (project.Color, error) {
	r, err := readObject(raw)
	if err != nil {
		return project.Color{}, err
	}
	c := project.Color{
		R: get(r, "r", decodeUint8),
		G: get(r, "g", decodeUint8),
		B: get(r, "b", decodeUint8),
		A: get(r, "a", decodeUint8),
	}
	return c, r.err
}

func decodePrimitive(raw json.RawMessage) (project.PrimitiveType, error) {
	s, err := decodeString(raw)
	if err != nil {
		return 0, err
	}
	return project.ParsePrimitiveType(s)
}

func decodeVertex(raw json.RawMessage) (project.Vertex, error) {
	r, err := readObject(raw)
	if err != nil {
		return project.Vertex{}, err
	}
	v := project.Vertex{
		Color:    get(r, "color", decodeColor),
		Position: get(r, "position", decodeVec2),
	}
	return v, r.err
}

func decodePolyline(raw json.RawMessage) (project.Polyline, error) {
	r, err := readObject(raw)
	if err != nil {
		return project.Polyline{}, err
	}
	p := project.Polyline{
		Primitive: get(r, "primitiveType", decodePrimitive),
		Vertices:  get(r, "vertices", list(decodeVertex)),
	}
	return p, r.err
}

func decodeGameObject(raw json.RawMessage) (*project.GameObject, error) {
	r, err := readObject(raw)
	if err != nil {
		return nil, err
	}
	obj := &project.GameObject{
		AssetID:  get(r, "assetID", decodeString),
		Position: get(r, "position", decodeVec2),
		Scale:    get(r, "scale", decodeVec2),
		Rotation: get(r, "rotation", decodeAngle),
		Origin:   get(r, "origin", decodeVec2),
	}
	if r.err != nil {
		return nil, r.err
	}
	return obj, nil
}

func decodeLevel(raw json.RawMessage) (project.Level, error) {
	r, err := readObject(raw)
	if err != nil {
		return project.Level{}, err
	}
	l := project.Level{
		LevelNameID: get(r, "levelNameId", decodeString),
		HitboxMap:   get(r, "hitboxMap", list(decodePolyline)),
		GameObjects: get(r, "gameObjects", list(decodeGameObject)),
	}
	return l, r.err
}

func decodeAsset(raw json.RawMessage) (*project.Asset, error) {
	r, err := readObject(raw)
	if err != nil {
		return nil, err
	}
	a := &project.Asset{
		TexturePath:     get(r, "texturePath", decodeString),
		DefaultScale:    get(r, "defaultScale", decodeVec2),
		DefaultRotation: get(r, "defaultRotation", decodeAngle),
	}
	if r.err != nil {
		return nil, r.err
	}
	return a, nil
}

func decodeAssets(raw json.RawMessage) (map[string]*project.Asset, error) {
	r, err := readObject(raw)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(r.obj))
	for name := range r.obj {
		names = append(names, name)
	}
	sort.Strings(names)
	assets := make(map[string]*project.Asset, len(names))
	for _, name := range names {
		if name == "" {
			return nil, errors.New("empty asset name")
		}
		a, err := decodeAsset(r.obj[name])
		if err != nil {
			return nil, at(name, err)
		}
		assets[name] = a
	}
	return assets, nil
}

func decodeProject(raw json.RawMessage) (*project.Project, error) {
	r, err := readObject(raw)
	if err != nil {
		return nil, err
	}
	p := &project.Project{
		Level:                 get(r, "level", decodeLevel),
		BackgroundTexturePath: get(r, "backgroundTexturePath", decodeString),
		HitboxTexturePath:     get(r, "hitboxTexturePath", decodeString),
		SimplifyIndex:         get(r, "simplifyIndex", decodeInt),
		HitboxMap:             get(r, "bHitboxMap", decodeBool),
		Assets:                get(r, "assets", decodeAssets),
		CloseHitboxLoop:       optional(r, "bCloseHitboxLoop", decodeBool, true),
	}
	if r.err != nil {
		return nil, r.err
	}
	return p, nil
}
