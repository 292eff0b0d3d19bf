package project

import (
	"fmt"
	"log"
)

// Vectorizer turns a black/white image into collision polylines.
type Vectorizer interface {
	Vectorize(imagePath string, level int) ([]Polyline, error)
}

// Prune removes instances whose asset is not in the catalog and returns how
// many were dropped.
func (p *Project) Prune() int {
	kept := p.Level.GameObjects[:0]
	dropped := 0
	for _, obj := range p.Level.GameObjects {
		if obj == nil {
			dropped++
			continue
		}
		if _, ok := p.Asset(obj.AssetID); !ok {
			dropped++
			continue
		}
		kept = append(kept, obj)
	}
	for i := len(kept); i < len(p.Level.GameObjects); i++ {
		p.Level.GameObjects[i] = nil
	}
	p.Level.GameObjects = kept
	return dropped
}

// Resolve loads every catalog resource the resolver does not already hold,
// prunes orphaned instances and rebinds the survivors. Load failures leave
// the asset unbound; they are logged, not returned.
func Resolve(p *Project, r Resolver) {
	for _, name := range p.AssetNames() {
		if r.Resource(name) != nil {
			continue
		}
		a := p.Assets[name]
		if err := r.LoadResource(name, a.TexturePath); err != nil {
			log.Printf("Asset %q left unbound: %v", name, err)
		}
	}
	if n := p.Prune(); n > 0 {
		log.Printf("Pruned %d game objects with unknown assets", n)
	}
	for _, obj := range p.Level.GameObjects {
		obj.bind(r.Resource(obj.AssetID))
	}
}

// GenerateHitboxes replaces the level's hitbox map with the vectorizer's
// output for the project's hitbox image. When the loop is not closed every
// ring loses its closing vertex.
func GenerateHitboxes(p *Project, v Vectorizer) error {
	if p.HitboxTexturePath == "" {
		return fmt.Errorf("project: generate hitboxes: no hitbox texture")
	}
	polys, err := v.Vectorize(p.HitboxTexturePath, p.SimplifyIndex)
	if err != nil {
		return fmt.Errorf("project: generate hitboxes: %w", err)
	}
	if !p.CloseHitboxLoop {
		polys = OpenAll(polys)
	}
	p.Level.HitboxMap = polys
	return nil
}
