package project

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrEmptyAssetName      = errors.New("project: empty asset name")
	ErrUnknownAsset        = errors.New("project: unknown asset")
	ErrResourceUnavailable = errors.New("project: resource unavailable")
)

// Resolver binds asset names to decoded textures. It is a process-wide cache
// passed into the operations that need it.
type Resolver interface {
	LoadResource(name, path string) error
	Resource(name string) Texture
	Remove(name string) bool
	Clear()
}

// SetAsset inserts or replaces the catalog entry under name.
func (p *Project) SetAsset(name string, a Asset) error {
	if name == "" {
		return ErrEmptyAssetName
	}
	if p.Assets == nil {
		p.Assets = make(map[string]*Asset)
	}
	p.Assets[name] = &a
	return nil
}

// Asset returns the catalog entry for name.
func (p *Project) Asset(name string) (*Asset, bool) {
	a, ok := p.Assets[name]
	return a, ok && a != nil
}

// RemoveAsset drops name from the catalog. Instances that reference it are
// left alone and get pruned on the next Resolve.
func (p *Project) RemoveAsset(name string) bool {
	if _, ok := p.Assets[name]; !ok {
		return false
	}
	delete(p.Assets, name)
	return true
}

// AssetNames returns the catalog keys in sorted order.
func (p *Project) AssetNames() []string {
	names := make([]string, 0, len(p.Assets))
	for name := range p.Assets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyField selects which default transform fields ApplyDefaults copies.
type ApplyField uint8

const (
	ApplyScale ApplyField = 1 << iota
	ApplyRotation

	ApplyAll = ApplyScale | ApplyRotation
)

// ApplyDefaults overwrites the selected transform fields of every instance of
// name with the catalog entry's current defaults. It returns how many
// instances were updated.
func (p *Project) ApplyDefaults(name string, fields ApplyField) int {
	a, ok := p.Asset(name)
	if !ok {
		return 0
	}
	n := 0
	for _, obj := range p.Level.GameObjects {
		if obj.AssetID != name {
			continue
		}
		if fields&ApplyScale != 0 {
			obj.Scale = a.DefaultScale
		}
		if fields&ApplyRotation != 0 {
			obj.Rotation = a.DefaultRotation
		}
		n++
	}
	return n
}

// CreateInstance places a new instance of name at pos on top of the level.
// The resource is loaded on demand when the resolver does not have it yet.
func (p *Project) CreateInstance(name string, pos Vec2, r Resolver) (*GameObject, error) {
	a, ok := p.Asset(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAsset, name)
	}
	tex := r.Resource(name)
	if tex == nil {
		if err := r.LoadResource(name, a.TexturePath); err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrResourceUnavailable, name, err)
		}
		tex = r.Resource(name)
	}
	if tex == nil {
		return nil, fmt.Errorf("%w: %q", ErrResourceUnavailable, name)
	}
	obj := &GameObject{
		AssetID:  name,
		Position: pos,
		Scale:    a.DefaultScale,
		Rotation: a.DefaultRotation,
	}
	obj.bind(tex)
	p.Level.GameObjects = append(p.Level.GameObjects, obj)
	return obj, nil
}
