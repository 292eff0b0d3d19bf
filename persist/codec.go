package persist

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/milk9111/leveleditor/project"
)

const indent = "    "

// Encode renders p as a project document.
func Encode(p *project.Project) ([]byte, error) {
	data, err := json.MarshalIndent(toProjectDoc(p), "", indent)
	if err != nil {
		return nil, fmt.Errorf("persist: encode project: %w", err)
	}
	return data, nil
}

// Decode parses a project document. Game objects whose asset is missing from
// the catalog are dropped. Texture handles are left unbound; run
// project.Resolve afterwards.
func Decode(data []byte) (*project.Project, error) {
	if err := checkSyntax(data); err != nil {
		return nil, err
	}
	p, err := decodeProject(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if n := p.Prune(); n > 0 {
		log.Printf("Dropped %d game objects referencing unknown assets", n)
	}
	return p, nil
}

// EncodeLevel renders the engine-facing export of l. When closeLoop is false
// each closed hitbox ring loses its closing vertex.
func EncodeLevel(l *project.Level, closeLoop bool) ([]byte, error) {
	hitboxes := l.HitboxMap
	if !closeLoop {
		hitboxes = project.OpenAll(hitboxes)
	}
	data, err := json.MarshalIndent(toLevelDoc(l, hitboxes), "", indent)
	if err != nil {
		return nil, fmt.Errorf("persist: encode level: %w", err)
	}
	return data, nil
}

// EncodeHitboxes renders a bare hitboxMap array.
func EncodeHitboxes(polys []project.Polyline) ([]byte, error) {
	data, err := json.MarshalIndent(toPolylineDocs(polys), "", indent)
	if err != nil {
		return nil, fmt.Errorf("persist: encode hitboxes: %w", err)
	}
	return data, nil
}

// EncodeGameObject renders a single game object, as used for copy and paste.
func EncodeGameObject(obj *project.GameObject) ([]byte, error) {
	data, err := json.Marshal(toGameObjectDoc(obj))
	if err != nil {
		return nil, fmt.Errorf("persist: encode game object: %w", err)
	}
	return data, nil
}

// DecodeGameObject parses the output of EncodeGameObject.
func DecodeGameObject(data []byte) (*project.GameObject, error) {
	if err := checkSyntax(data); err != nil {
		return nil, err
	}
	obj, err := decodeGameObject(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return obj, nil
}

func checkSyntax(data []byte) error {
	if json.Valid(data) {
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return ErrSyntax
}
