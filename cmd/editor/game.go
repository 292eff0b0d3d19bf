package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/leveleditor/config"
	"github.com/milk9111/leveleditor/editor"
	"github.com/milk9111/leveleditor/project"
	"github.com/milk9111/leveleditor/resource"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

const (
	backgroundName = "background"
	hoverDistance  = 6
)

type Editor struct {
	session  *editor.Session
	recent   *config.Recent
	watcher  *resource.Watcher
	ui       *ebitenui.UI
	catalog  *CatalogPanel
	bgCache  *resource.Cache
	bgPath   string
	clipOK   bool
	placing  string
	status   string
	panning  bool
	panX     int
	panY     int
	assetSet string
}

func (g *Editor) actions() Actions {
	return Actions{
		Save:   g.save,
		Export: g.export,
		Front: func() {
			if g.session.BringSelectedToFront() {
				g.setStatus("Moved selection to front")
			}
		},
		Delete: func() {
			if g.session.DeleteSelected() {
				g.setStatus("Deleted selection")
			}
		},
		Undo: func() {
			if g.session.Undo() {
				g.setStatus("Undo")
			}
		},
		Hitboxes: func() {
			if err := g.session.RegenerateHitboxes(); err != nil {
				g.setStatus(fmt.Sprintf("Hitboxes failed: %v", err))
				return
			}
			g.setStatus(fmt.Sprintf("Generated %d hitboxes", len(g.session.Project().Level.HitboxMap)))
		},
		PickAsset: func(name string) {
			g.placing = name
			g.setStatus("Placing " + name)
		},
	}
}

func (g *Editor) setStatus(msg string) {
	g.status = msg
	log.Println(msg)
}

func (g *Editor) save() {
	if err := g.session.Save(""); err != nil {
		g.setStatus(fmt.Sprintf("Save failed: %v", err))
		return
	}
	g.touchRecent(g.session.Path())
}

func (g *Editor) export() {
	path := g.session.Path()
	if path == "" {
		g.setStatus("Save the project before exporting")
		return
	}
	out := strings.TrimSuffix(path, filepath.Ext(path)) + ".level.json"
	if err := g.session.Export(out); err != nil {
		g.setStatus(fmt.Sprintf("Export failed: %v", err))
	}
}

func (g *Editor) touchRecent(path string) {
	if g.recent == nil {
		return
	}
	if err := g.recent.Touch(path); err != nil {
		log.Printf("Warning: could not update recent projects: %v", err)
	}
}

func (g *Editor) Update() error {
	g.ui.Update()
	g.syncCatalog()
	g.reloadChanged()
	g.handleKeys()
	g.handleMouse()
	return nil
}

// syncCatalog refreshes the asset list when the catalog keys change.
func (g *Editor) syncCatalog() {
	names := g.session.Project().AssetNames()
	key := strings.Join(names, "\x00")
	if key == g.assetSet {
		return
	}
	g.assetSet = key
	g.catalog.SetAssets(names)
}

func (g *Editor) reloadChanged() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		log.Printf("Asset watcher: %v", err)
	default:
	}
	changed := g.watcher.Drain()
	if len(changed) == 0 {
		return
	}
	log.Printf("Reloading resources, %d files changed", len(changed))
	g.session.ReloadResources()
	g.bgPath = ""
}

func (g *Editor) handleKeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	a := g.actions()
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		a.Save()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyE):
		a.Export()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		a.Undo()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copySelected()
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV):
		g.paste()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		a.Front()
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete), inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		a.Delete()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		a.Hitboxes()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.placing = ""
		g.session.ClearSelection()
	}
}

func (g *Editor) copySelected() {
	if !g.clipOK {
		return
	}
	data, err := g.session.CopySelected()
	if err != nil {
		g.setStatus(fmt.Sprintf("Copy failed: %v", err))
		return
	}
	clipboard.Write(clipboard.FmtText, data)
}

func (g *Editor) paste() {
	if !g.clipOK {
		return
	}
	mx, my := ebiten.CursorPosition()
	pos := g.session.View.ScreenToWorld(float64(mx), float64(my))
	if _, err := g.session.Paste(clipboard.Read(clipboard.FmtText), pos); err != nil {
		g.setStatus(fmt.Sprintf("Paste failed: %v", err))
	}
}

func (g *Editor) handleMouse() {
	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)
	onCanvas := mx >= panelWidth

	if _, wy := ebiten.Wheel(); wy != 0 && onCanvas {
		g.session.View.ZoomAt(sx, sy, math.Pow(1.1, wy))
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) && onCanvas {
		g.panning = true
		g.panX, g.panY = mx, my
	}
	if g.panning {
		g.session.View.Pan(float64(mx-g.panX), float64(my-g.panY))
		g.panX, g.panY = mx, my
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle) {
			g.panning = false
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && onCanvas {
		if g.placing != "" {
			pos := g.session.View.ScreenToWorld(sx, sy)
			if _, err := g.session.CreateInstance(g.placing, pos); err != nil {
				g.setStatus(fmt.Sprintf("Place failed: %v", err))
			}
			g.placing = ""
			return
		}
		if g.session.Select(sx, sy) != nil {
			g.session.BeginDrag(sx, sy)
		}
	}
	if g.session.Dragging() {
		g.session.DragTo(sx, sy)
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
			g.session.EndDrag()
		}
	}
}

func (g *Editor) background() *ebiten.Image {
	p := g.session.Project()
	if p.BackgroundTexturePath == "" {
		return nil
	}
	if g.bgPath != p.BackgroundTexturePath {
		g.bgCache.Clear()
		g.bgPath = p.BackgroundTexturePath
		if err := g.bgCache.LoadResource(backgroundName, g.bgPath); err != nil {
			log.Printf("Background left unbound: %v", err)
		}
	}
	img, _ := g.bgCache.Resource(backgroundName).(*ebiten.Image)
	return img
}

func (g *Editor) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)
	view := g.session.View
	zoom := view.Zoom
	if zoom == 0 {
		zoom = 1
	}

	if bg := g.background(); bg != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate(view.OffsetX, view.OffsetY)
		screen.DrawImage(bg, op)
	}

	for _, obj := range g.session.Project().Level.GameObjects {
		img, ok := obj.Texture().(*ebiten.Image)
		if !ok || img == nil {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-obj.Origin.X, -obj.Origin.Y)
		op.GeoM.Scale(obj.Scale.X, obj.Scale.Y)
		op.GeoM.Rotate(obj.Rotation.Radians())
		op.GeoM.Translate(obj.Position.X, obj.Position.Y)
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate(view.OffsetX, view.OffsetY)
		screen.DrawImage(img, op)
	}

	g.drawHitboxes(screen)
	g.drawSelection(screen)
	g.ui.Draw(screen)

	msg := g.status
	if path := g.session.Path(); path != "" {
		msg = path + "  " + msg
	}
	ebitenutil.DebugPrintAt(screen, msg, panelWidth+8, 8)
}

func (g *Editor) drawHitboxes(screen *ebiten.Image) {
	mx, my := ebiten.CursorPosition()
	hover, hovering := g.session.HitboxAt(float64(mx), float64(my), hoverDistance)
	view := g.session.View
	for pi, poly := range g.session.Project().Level.HitboxMap {
		for i := 0; i+1 < len(poly.Vertices); i++ {
			ax, ay := view.WorldToScreen(poly.Vertices[i].Position)
			bx, by := view.WorldToScreen(poly.Vertices[i+1].Position)
			var clr color.Color = vertexColor(poly.Vertices[i].Color)
			width := float32(1)
			if hovering && hover.Polyline == pi && hover.Index == i {
				clr = colornames.Yellow
				width = 3
			}
			vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), width, clr, true)
		}
	}
}

func (g *Editor) drawSelection(screen *ebiten.Image) {
	shape := g.session.Selected().Bounds()
	if shape == nil {
		return
	}
	view := g.session.View
	pts := shape.Transformed()
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		ax, ay := view.WorldToScreen(project.Vec2{X: a.X(), Y: a.Y()})
		bx, by := view.WorldToScreen(project.Vec2{X: b.X(), Y: b.Y()})
		vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), 2, colornames.Lime, true)
	}
}

func vertexColor(c project.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (g *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
