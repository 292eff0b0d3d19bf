package editor

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/leveleditor/persist"
	"github.com/milk9111/leveleditor/project"
)

type fakeResolver struct {
	sizes  map[string]image.Point
	loaded map[string]project.Texture
	clears int
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		sizes: map[string]image.Point{
			"tree.png": {X: 10, Y: 10},
			"rock.png": {X: 4, Y: 6},
			"big.png":  {X: 20, Y: 20},
		},
		loaded: map[string]project.Texture{},
	}
}

func (r *fakeResolver) LoadResource(name, path string) error {
	if _, ok := r.loaded[name]; ok {
		return errors.New("already loaded")
	}
	size, ok := r.sizes[path]
	if !ok {
		return errors.New("no such image")
	}
	r.loaded[name] = image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	return nil
}

func (r *fakeResolver) Resource(name string) project.Texture { return r.loaded[name] }

func (r *fakeResolver) Remove(name string) bool {
	_, ok := r.loaded[name]
	delete(r.loaded, name)
	return ok
}

func (r *fakeResolver) Clear() {
	r.clears++
	r.loaded = map[string]project.Texture{}
}

type fakeVectorizer struct {
	calls int
}

func (v *fakeVectorizer) Vectorize(path string, level int) ([]project.Polyline, error) {
	v.calls++
	if path == "" {
		return nil, errors.New("no image")
	}
	verts := []project.Vertex{
		{Position: project.Vec2{X: 0, Y: 0}},
		{Position: project.Vec2{X: 10, Y: 0}},
		{Position: project.Vec2{X: 10, Y: 10}},
		{Position: project.Vec2{X: 0, Y: 0}},
	}
	return []project.Polyline{{Primitive: project.LineStrip, Vertices: verts}}, nil
}

func newTestSession(t *testing.T) (*Session, *fakeResolver) {
	t.Helper()
	r := newFakeResolver()
	s := NewSession(r, &fakeVectorizer{})
	for name, path := range map[string]string{"tree": "tree.png", "rock": "rock.png"} {
		if err := s.SetAsset(name, project.NewAsset(path)); err != nil {
			t.Fatalf("SetAsset(%s): %v", name, err)
		}
	}
	return s, r
}

func place(t *testing.T, s *Session, name string, x, y float64) *project.GameObject {
	t.Helper()
	obj, err := s.CreateInstance(name, project.Vec2{X: x, Y: y})
	if err != nil {
		t.Fatalf("CreateInstance(%s): %v", name, err)
	}
	return obj
}

func TestCreateInstanceSelects(t *testing.T) {
	s, _ := newTestSession(t)
	obj := place(t, s, "tree", 5, 5)
	if s.Selected() != obj {
		t.Fatalf("new instance not selected")
	}
	if _, err := s.CreateInstance("ghost", project.Vec2{}); !errors.Is(err, project.ErrUnknownAsset) {
		t.Fatalf("err = %v, want ErrUnknownAsset", err)
	}
	if s.Selected() != obj {
		t.Fatalf("failed create changed the selection")
	}
}

func TestSelectTopmost(t *testing.T) {
	s, _ := newTestSession(t)
	place(t, s, "tree", 10, 10)
	b := place(t, s, "tree", 14, 10)
	s.ClearSelection()

	if got := s.Select(12, 10); got != b {
		t.Fatalf("Select picked %+v, want the later instance", got)
	}
	if got := s.Select(500, 500); got != nil || s.Selected() != nil {
		t.Fatalf("clicking empty space kept a selection")
	}
}

func TestDragUnderZoom(t *testing.T) {
	s, _ := newTestSession(t)
	s.View = View{Zoom: 2, OffsetX: 100, OffsetY: 50}
	obj := place(t, s, "tree", 20, 20)

	sx, sy := s.View.WorldToScreen(obj.Position)
	if s.Select(sx, sy) != obj {
		t.Fatalf("Select missed the instance at (%v, %v)", sx, sy)
	}
	if !s.BeginDrag(sx, sy) {
		t.Fatalf("BeginDrag refused")
	}
	s.DragTo(sx+20, sy)
	s.DragTo(sx+20, sy+20)
	s.DragTo(sx+20, sy+20)
	s.EndDrag()

	if want := (project.Vec2{X: 30, Y: 30}); obj.Position != want {
		t.Fatalf("position = %+v, want %+v", obj.Position, want)
	}

	// One undo step for the whole drag.
	if !s.Undo() {
		t.Fatalf("Undo reported nothing to undo")
	}
	if got := s.Project().Level.GameObjects[0].Position; got != (project.Vec2{X: 20, Y: 20}) {
		t.Fatalf("after undo position = %+v", got)
	}
}

func TestDragWithoutSelection(t *testing.T) {
	s, _ := newTestSession(t)
	if s.BeginDrag(0, 0) {
		t.Fatalf("BeginDrag succeeded with nothing selected")
	}
	depth := len(s.undoStack)
	s.DragTo(10, 10)
	if s.Dragging() || len(s.undoStack) != depth {
		t.Fatalf("drag without selection recorded an edit")
	}
}

func TestBringSelectedToFront(t *testing.T) {
	s, _ := newTestSession(t)
	a := place(t, s, "tree", 0, 0)
	b := place(t, s, "tree", 100, 0)
	c := place(t, s, "tree", 200, 0)

	if s.Select(100, 0) != b {
		t.Fatalf("did not select B")
	}
	if !s.BringSelectedToFront() {
		t.Fatalf("BringSelectedToFront reported no change")
	}
	got := s.Project().Level.GameObjects
	if got[0] != a || got[1] != c || got[2] != b {
		t.Fatalf("order = %v, want A C B", got)
	}
	if s.Selected() != b {
		t.Fatalf("selection lost its instance")
	}
	if s.BringSelectedToFront() {
		t.Fatalf("already-front instance reported a change")
	}
}

func TestDeleteSelected(t *testing.T) {
	s, _ := newTestSession(t)
	place(t, s, "tree", 0, 0)
	place(t, s, "rock", 50, 50)
	if !s.DeleteSelected() {
		t.Fatalf("DeleteSelected failed")
	}
	if n := len(s.Project().Level.GameObjects); n != 1 || s.Selected() != nil {
		t.Fatalf("left %d instances, selection %v", n, s.Selected())
	}
	if s.DeleteSelected() {
		t.Fatalf("delete with no selection succeeded")
	}
}

func TestRemoveAssetPrunes(t *testing.T) {
	s, _ := newTestSession(t)
	place(t, s, "tree", 0, 0)
	rock := place(t, s, "rock", 50, 50)
	if !s.RemoveAsset("rock") {
		t.Fatalf("RemoveAsset failed")
	}
	if s.Project().Level.IndexOf(rock) >= 0 || s.Selected() != nil {
		t.Fatalf("rock instance survived removal of its asset")
	}
	if len(s.Project().Level.GameObjects) != 1 {
		t.Fatalf("tree instance was removed")
	}
}

func TestApplyDefaults(t *testing.T) {
	s, _ := newTestSession(t)
	for i := 0; i < 3; i++ {
		place(t, s, "tree", float64(i*20), 0)
	}
	rock := place(t, s, "rock", 0, 40)

	a := project.NewAsset("tree.png")
	a.DefaultScale = project.Vec2{X: 2, Y: 2}
	if err := s.SetAsset("tree", a); err != nil {
		t.Fatalf("SetAsset: %v", err)
	}
	if n := s.ApplyDefaults("tree", project.ApplyScale); n != 3 {
		t.Fatalf("updated %d, want 3", n)
	}
	for _, obj := range s.Project().Level.GameObjects {
		want := project.Vec2{X: 2, Y: 2}
		if obj == rock {
			want = project.Vec2{X: 1, Y: 1}
		}
		if obj.Scale != want {
			t.Fatalf("%s scale = %+v, want %+v", obj.AssetID, obj.Scale, want)
		}
	}
}

func TestSetAssetPathReloads(t *testing.T) {
	s, r := newTestSession(t)
	obj := place(t, s, "tree", 0, 0)
	clears := r.clears

	if err := s.SetAsset("tree", project.NewAsset("big.png")); err != nil {
		t.Fatalf("SetAsset: %v", err)
	}
	if r.clears != clears+1 {
		t.Fatalf("resolver not cleared on path change")
	}
	if obj.Origin != (project.Vec2{X: 10, Y: 10}) {
		t.Fatalf("origin = %+v, want recentered on new image", obj.Origin)
	}
}

func TestReAddedAssetLoadsNewImage(t *testing.T) {
	s, r := newTestSession(t)
	place(t, s, "tree", 0, 0)

	if !s.RemoveAsset("tree") {
		t.Fatalf("RemoveAsset failed")
	}
	if r.loaded["tree"] != nil {
		t.Fatalf("texture still cached after removing its asset")
	}
	if err := s.SetAsset("tree", project.NewAsset("big.png")); err != nil {
		t.Fatalf("SetAsset: %v", err)
	}
	obj := place(t, s, "tree", 0, 0)
	if got := obj.Texture().Bounds().Size(); got != image.Pt(20, 20) {
		t.Fatalf("texture size = %v, want 20x20", got)
	}
	if obj.Origin != (project.Vec2{X: 10, Y: 10}) {
		t.Fatalf("origin = %+v, want {10 10}", obj.Origin)
	}
}

func TestUndoPathChangeRebinds(t *testing.T) {
	s, _ := newTestSession(t)
	place(t, s, "tree", 0, 0)

	if err := s.SetAsset("tree", project.NewAsset("big.png")); err != nil {
		t.Fatalf("SetAsset: %v", err)
	}
	if !s.Undo() {
		t.Fatalf("Undo reported nothing to undo")
	}

	a, _ := s.Project().Asset("tree")
	if a.TexturePath != "tree.png" {
		t.Fatalf("path after undo = %q", a.TexturePath)
	}
	obj := s.Project().Level.GameObjects[0]
	if got := obj.Texture().Bounds().Size(); got != image.Pt(10, 10) {
		t.Fatalf("texture size after undo = %v, want 10x10", got)
	}
	if obj.Origin != (project.Vec2{X: 5, Y: 5}) {
		t.Fatalf("origin after undo = %+v, want {5 5}", obj.Origin)
	}
}

func TestUndoLimit(t *testing.T) {
	s, _ := newTestSession(t)
	s.undoStack = nil
	for i := 0; i < defaultMaxUndo+20; i++ {
		place(t, s, "tree", float64(i), 0)
	}
	if len(s.undoStack) != defaultMaxUndo {
		t.Fatalf("undo stack = %d, want %d", len(s.undoStack), defaultMaxUndo)
	}
	for s.Undo() {
	}
	if got := len(s.Project().Level.GameObjects); got != 20 {
		t.Fatalf("after full undo %d instances remain, want 20", got)
	}
}

func TestCopyPaste(t *testing.T) {
	s, _ := newTestSession(t)
	if _, err := s.CopySelected(); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("err = %v, want ErrNoSelection", err)
	}
	src := place(t, s, "tree", 1, 2)
	src.Scale = project.Vec2{X: 3, Y: 3}
	src.Rotation = project.Degrees(45)

	data, err := s.CopySelected()
	if err != nil {
		t.Fatalf("CopySelected: %v", err)
	}
	dup, err := s.Paste(data, project.Vec2{X: 40, Y: 40})
	if err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if dup == src || dup.Position != (project.Vec2{X: 40, Y: 40}) || dup.Scale != src.Scale || dup.Rotation != src.Rotation {
		t.Fatalf("pasted %+v from %+v", dup, src)
	}
	if s.Selected() != dup {
		t.Fatalf("pasted instance not selected")
	}
	if _, err := s.Paste([]byte("{"), project.Vec2{}); !errors.Is(err, persist.ErrSyntax) {
		t.Fatalf("err = %v, want ErrSyntax", err)
	}
}

func TestSaveOpen(t *testing.T) {
	s, _ := newTestSession(t)
	place(t, s, "tree", 3, 4)
	dir := t.TempDir()
	path := filepath.Join(dir, "level.json")

	if err := s.Save(""); !errors.Is(err, ErrMissingInput) {
		t.Fatalf("Save without path err = %v", err)
	}
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	other, r := newTestSession(t)
	if err := other.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if other.Path() != path {
		t.Fatalf("Path = %q", other.Path())
	}
	objs := other.Project().Level.GameObjects
	if len(objs) != 1 || objs[0].Texture() == nil || r.loaded["tree"] == nil {
		t.Fatalf("opened project not resolved: %+v", objs)
	}
	if other.CanUndo() {
		t.Fatalf("undo history survived Open")
	}
}

func TestFailedOpenKeepsProject(t *testing.T) {
	s, _ := newTestSession(t)
	place(t, s, "tree", 0, 0)
	live := s.Project()

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"level": 1}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name string
		path string
		want error
	}{
		{name: "missing", path: filepath.Join(dir, "missing.json"), want: persist.ErrIO},
		{name: "invalid", path: bad, want: persist.ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Open(tt.path); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if s.Project() != live || len(live.Level.GameObjects) != 1 {
				t.Fatalf("live project changed after failed open")
			}
		})
	}
}

func TestHitboxAt(t *testing.T) {
	s, _ := newTestSession(t)
	s.Project().HitboxTexturePath = "hitbox.png"
	if err := s.RegenerateHitboxes(); err != nil {
		t.Fatalf("RegenerateHitboxes: %v", err)
	}
	s.View = View{Zoom: 2}

	ref, ok := s.HitboxAt(10, 1, 4)
	if !ok || ref.Polyline != 0 || ref.Index != 0 {
		t.Fatalf("HitboxAt = %+v, %v", ref, ok)
	}
	if _, ok := s.HitboxAt(200, 200, 4); ok {
		t.Fatalf("found a hitbox far away")
	}
}
