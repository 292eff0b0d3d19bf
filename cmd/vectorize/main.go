package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/leveleditor/hitbox"
	"github.com/milk9111/leveleditor/persist"
	"github.com/milk9111/leveleditor/project"
	"github.com/milk9111/leveleditor/resource"
	"golang.org/x/image/colornames"
)

// Preview shows the source image with the traced rings on top.
type Preview struct {
	src   *ebiten.Image
	polys []project.Polyline
	w, h  int
}

func (p *Preview) Update() error { return nil }

func (p *Preview) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Dimgray)
	screen.DrawImage(p.src, nil)
	for _, poly := range p.polys {
		for i := 0; i+1 < len(poly.Vertices); i++ {
			a, b := poly.Vertices[i].Position, poly.Vertices[i+1].Position
			vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2, colornames.Red, true)
		}
	}
}

func (p *Preview) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.w, p.h
}

func main() {
	in := flag.String("in", "", "Black/white hitbox image")
	out := flag.String("out", "", "Write the hitboxMap JSON here instead of stdout")
	level := flag.Int("simplify", project.DefaultSimplifyIndex, fmt.Sprintf("Simplification tolerance in pixels (0-%d)", hitbox.MaxLevel))
	open := flag.Bool("open", false, "Drop the closing vertex of every ring")
	preview := flag.Bool("preview", false, "Show the traced rings in a window")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	img, err := resource.DecodeFile(*in)
	if err != nil {
		log.Fatalf("Failed to read image: %v", err)
	}
	polys := hitbox.Trace(img, *level)
	if *open {
		polys = project.OpenAll(polys)
	}
	log.Printf("Traced %d hitboxes from %s", len(polys), *in)

	data, err := persist.EncodeHitboxes(polys)
	if err != nil {
		log.Fatalf("Failed to encode hitboxes: %v", err)
	}
	if *out != "" {
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			log.Fatalf("Failed to write %s: %v", *out, err)
		}
	} else {
		os.Stdout.Write(append(data, '\n'))
	}

	if *preview {
		runPreview(img, polys)
	}
}

func runPreview(img image.Image, polys []project.Polyline) {
	b := img.Bounds()
	p := &Preview{src: ebiten.NewImageFromImage(img), polys: polys, w: b.Dx(), h: b.Dy()}
	ebiten.SetWindowSize(p.w, p.h)
	ebiten.SetWindowTitle("Hitbox Preview")
	if err := ebiten.RunGame(p); err != nil {
		log.Fatal(err)
	}
}
