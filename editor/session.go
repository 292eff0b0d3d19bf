package editor

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/leveleditor/hitbox"
	"github.com/milk9111/leveleditor/persist"
	"github.com/milk9111/leveleditor/project"
)

const defaultMaxUndo = 100

var (
	ErrMissingInput = errors.New("editor: missing required input")
	ErrNoSelection  = errors.New("editor: nothing selected")
)

// Defaults seed projects started with NewDraft.
type Defaults struct {
	SimplifyIndex   int
	CloseHitboxLoop bool
}

// Session owns the live project and everything the editor does to it.
type Session struct {
	View     View
	Defaults Defaults

	project    *project.Project
	path       string
	resolver   project.Resolver
	vectorizer project.Vectorizer
	preview    *hitbox.Preview

	selected *project.GameObject

	dragging   bool
	dragPushed bool
	lastX      float64
	lastY      float64

	undoStack []*project.Project
	maxUndo   int
}

func NewSession(r project.Resolver, v project.Vectorizer) *Session {
	return &Session{
		View:       View{Zoom: 1},
		Defaults:   Defaults{SimplifyIndex: project.DefaultSimplifyIndex, CloseHitboxLoop: true},
		project:    project.New(),
		resolver:   r,
		vectorizer: v,
		maxUndo:    defaultMaxUndo,
	}
}

func (s *Session) Project() *project.Project { return s.project }

// Path is the file the live project was last opened from or saved to.
func (s *Session) Path() string { return s.path }

func (s *Session) Selected() *project.GameObject { return s.selected }

// Replace swaps in p as the live project. Bindings of the old project are
// dropped before p is resolved, so no instance ever mixes the two.
func (s *Session) Replace(p *project.Project) {
	if p == nil {
		p = project.New()
	}
	s.resolver.Clear()
	project.Resolve(p, s.resolver)
	if p.HitboxMap && s.vectorizer != nil {
		if err := project.GenerateHitboxes(p, s.vectorizer); err != nil {
			log.Printf("Keeping stored hitboxes: %v", err)
		}
	}
	s.project = p
	s.preview = nil
	s.selected = nil
	s.dragging = false
	s.undoStack = nil
}

// Open loads path and makes it the live project. On failure the live project
// is left as it was.
func (s *Session) Open(path string) error {
	p, err := persist.Load(path)
	if err != nil {
		return err
	}
	s.Replace(p)
	s.path = path
	log.Printf("Opened project: %s", path)
	return nil
}

// Save writes the live project to path, or to Path when path is empty.
func (s *Session) Save(path string) error {
	if path == "" {
		path = s.path
	}
	if path == "" {
		return fmt.Errorf("%w: save path", ErrMissingInput)
	}
	if err := persist.Save(path, s.project); err != nil {
		return err
	}
	s.path = path
	log.Printf("Saved project: %s", path)
	return nil
}

func (s *Session) Export(path string) error {
	if err := persist.ExportLevel(path, s.project); err != nil {
		return err
	}
	log.Printf("Exported level: %s", path)
	return nil
}

// Select makes the topmost instance under the screen point the selection.
// Clicking empty space clears it.
func (s *Session) Select(sx, sy float64) *project.GameObject {
	s.selected = nil
	if i := s.project.Level.Pick(s.View.ScreenToWorld(sx, sy)); i >= 0 {
		s.selected = s.project.Level.GameObjects[i]
	}
	return s.selected
}

func (s *Session) ClearSelection() {
	s.selected = nil
	s.dragging = false
}

func (s *Session) BeginDrag(sx, sy float64) bool {
	if s.selected == nil {
		return false
	}
	s.dragging = true
	s.dragPushed = false
	s.lastX, s.lastY = sx, sy
	return true
}

// DragTo moves the selection by the pointer delta since the last call,
// converted to level units.
func (s *Session) DragTo(sx, sy float64) {
	if !s.dragging || s.selected == nil {
		return
	}
	from := s.View.ScreenToWorld(s.lastX, s.lastY)
	to := s.View.ScreenToWorld(sx, sy)
	s.lastX, s.lastY = sx, sy
	delta := to.Sub(from)
	if delta == (project.Vec2{}) {
		return
	}
	if !s.dragPushed {
		s.pushUndo()
		s.dragPushed = true
	}
	s.selected.Position = s.selected.Position.Add(delta)
}

func (s *Session) EndDrag() {
	s.dragging = false
}

func (s *Session) Dragging() bool { return s.dragging }

func (s *Session) BringSelectedToFront() bool {
	i := s.project.Level.IndexOf(s.selected)
	if i < 0 || i == len(s.project.Level.GameObjects)-1 {
		return false
	}
	s.pushUndo()
	return s.project.Level.BringToFront(i)
}

func (s *Session) DeleteSelected() bool {
	if s.project.Level.IndexOf(s.selected) < 0 {
		return false
	}
	s.pushUndo()
	s.project.Level.Remove(s.selected)
	s.selected = nil
	s.dragging = false
	return true
}

// CreateInstance places name at the level point pos and selects it.
func (s *Session) CreateInstance(name string, pos project.Vec2) (*project.GameObject, error) {
	before := s.project.Clone()
	obj, err := s.project.CreateInstance(name, pos, s.resolver)
	if err != nil {
		return nil, err
	}
	s.record(before)
	s.selected = obj
	return obj, nil
}

// SetAsset upserts a catalog entry. A changed texture path reloads resources
// so existing instances pick up the new image.
func (s *Session) SetAsset(name string, a project.Asset) error {
	before := s.project.Clone()
	prev, existed := s.project.Asset(name)
	if err := s.project.SetAsset(name, a); err != nil {
		return err
	}
	s.record(before)
	if existed && prev.TexturePath != a.TexturePath {
		s.ReloadResources()
	}
	return nil
}

// RemoveAsset drops name from the catalog, its cached texture and its
// instances.
func (s *Session) RemoveAsset(name string) bool {
	before := s.project.Clone()
	if !s.project.RemoveAsset(name) {
		return false
	}
	s.resolver.Remove(name)
	s.record(before)
	if n := s.project.Prune(); n > 0 {
		log.Printf("Removed %d instances of %q", n, name)
	}
	if s.project.Level.IndexOf(s.selected) < 0 {
		s.selected = nil
		s.dragging = false
	}
	return true
}

func (s *Session) ApplyDefaults(name string, fields project.ApplyField) int {
	before := s.project.Clone()
	n := s.project.ApplyDefaults(name, fields)
	if n > 0 {
		s.record(before)
	}
	return n
}

// ReloadResources drops every cached texture and binds the live project
// again, recomputing origins for images whose size changed.
func (s *Session) ReloadResources() {
	s.resolver.Clear()
	project.Resolve(s.project, s.resolver)
	if s.project.Level.IndexOf(s.selected) < 0 {
		s.selected = nil
	}
}

// RegenerateHitboxes reruns the vectorizer over the hitbox image.
func (s *Session) RegenerateHitboxes() error {
	if s.vectorizer == nil {
		return fmt.Errorf("editor: no vectorizer")
	}
	before := s.project.Clone()
	if err := project.GenerateHitboxes(s.project, s.vectorizer); err != nil {
		return err
	}
	s.record(before)
	s.preview = nil
	return nil
}

// HitboxAt returns the hitbox edge within maxDist screen pixels of (sx, sy).
func (s *Session) HitboxAt(sx, sy, maxDist float64) (hitbox.SegmentRef, bool) {
	if s.preview == nil {
		s.preview = hitbox.NewPreview(s.project.Level.HitboxMap)
	}
	return s.preview.SegmentAt(s.View.ScreenToWorld(sx, sy), maxDist/s.View.zoom())
}

// CopySelected encodes the selection for the clipboard.
func (s *Session) CopySelected() ([]byte, error) {
	if s.selected == nil {
		return nil, ErrNoSelection
	}
	return persist.EncodeGameObject(s.selected)
}

// Paste creates a new instance from a CopySelected payload at pos, keeping
// the copied scale and rotation.
func (s *Session) Paste(data []byte, pos project.Vec2) (*project.GameObject, error) {
	src, err := persist.DecodeGameObject(data)
	if err != nil {
		return nil, err
	}
	obj, err := s.CreateInstance(src.AssetID, pos)
	if err != nil {
		return nil, err
	}
	obj.Scale = src.Scale
	obj.Rotation = src.Rotation
	return obj, nil
}

func (s *Session) CanUndo() bool { return len(s.undoStack) > 0 }

// Undo restores the project as it was before the last edit.
func (s *Session) Undo() bool {
	if len(s.undoStack) == 0 {
		return false
	}
	idx := len(s.undoStack) - 1
	snapshot := s.undoStack[idx]
	s.undoStack[idx] = nil
	s.undoStack = s.undoStack[:idx]
	// Catalog paths may differ from what is cached.
	s.resolver.Clear()
	project.Resolve(snapshot, s.resolver)
	s.project = snapshot
	s.preview = nil
	s.selected = nil
	s.dragging = false
	return true
}

func (s *Session) pushUndo() {
	s.record(s.project.Clone())
}

func (s *Session) record(snapshot *project.Project) {
	if s.maxUndo <= 0 {
		s.maxUndo = defaultMaxUndo
	}
	if len(s.undoStack) >= s.maxUndo {
		s.undoStack = s.undoStack[1:]
	}
	s.undoStack = append(s.undoStack, snapshot)
}
