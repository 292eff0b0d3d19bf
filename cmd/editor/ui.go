package main

import (
	"bytes"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

const panelWidth = 200

// Actions are the toolbar callbacks wired to the session.
type Actions struct {
	Save      func()
	Export    func()
	Front     func()
	Delete    func()
	Undo      func()
	Hitboxes  func()
	PickAsset func(name string)
}

// CatalogPanel lists asset names; the selected one is placed on click.
type CatalogPanel struct {
	list    *widget.List
	entries []any
}

func (cp *CatalogPanel) SetAssets(names []string) {
	if cp == nil || cp.list == nil {
		return
	}
	entries := make([]any, len(names))
	for i, name := range names {
		entries[i] = name
	}
	cp.entries = entries
	cp.list.SetEntries(entries)
}

func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func newTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		ListTheme: &widget.ListParams{
			EntryFace: fontFace,
			EntryColor: &widget.ListEntryColor{
				Unselected:          color.Black,
				Selected:            color.RGBA{0, 0, 128, 255},
				DisabledUnselected:  color.Gray{Y: 128},
				DisabledSelected:    color.Gray{Y: 64},
				SelectingBackground: color.RGBA{200, 220, 255, 255},
				SelectedBackground:  color.RGBA{180, 200, 255, 255},
			},
			ScrollContainerImage: &widget.ScrollContainerImage{
				Idle: solidNineSlice(color.RGBA{220, 220, 220, 255}),
				Mask: solidNineSlice(color.RGBA{220, 220, 220, 255}),
			},
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:    solidNineSlice(color.RGBA{180, 180, 180, 255}),
				Hover:   solidNineSlice(color.RGBA{200, 200, 200, 255}),
				Pressed: solidNineSlice(color.RGBA{160, 160, 160, 255}),
			},
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle: color.Black,
			},
		},
	}
}

func buildUI(actions Actions, assets []string) (*ebitenui.UI, *CatalogPanel) {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}
	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newTheme(&fontFace)
	theme := ui.PrimaryTheme

	panel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(panelWidth, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{40, 40, 40, 255})),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(6),
			),
		),
	)

	panel.AddChild(widget.NewLabel(
		widget.LabelOpts.Text("Assets", &fontFace, &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}),
	))

	catalog := &CatalogPanel{}
	catalog.list = widget.NewList(
		widget.ListOpts.Entries(nil),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			name, _ := e.(string)
			return name
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if name, ok := args.Entry.(string); ok && actions.PickAsset != nil {
				actions.PickAsset(name)
			}
		}),
	)
	catalog.list.GetWidget().MinHeight = 200
	panel.AddChild(catalog.list)
	catalog.SetAssets(assets)

	buttons := []struct {
		label string
		fn    func()
	}{
		{"Save", actions.Save},
		{"Export", actions.Export},
		{"To front", actions.Front},
		{"Delete", actions.Delete},
		{"Undo", actions.Undo},
		{"Hitboxes", actions.Hitboxes},
	}
	for _, b := range buttons {
		fn := b.fn
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(b.label, &fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(panelWidth-16, 28),
			),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if fn != nil {
					fn()
				}
			}),
		))
	}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	panel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
		StretchVertical:    true,
	}
	root.AddChild(panel)
	ui.Container = root
	return ui, catalog
}
