package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/leveleditor/config"
	"github.com/milk9111/leveleditor/editor"
	"github.com/milk9111/leveleditor/hitbox"
	"github.com/milk9111/leveleditor/resource"
	"golang.design/x/clipboard"
)

func main() {
	configPath := flag.String("config", "editor.yaml", "Editor settings file (YAML)")
	projectPath := flag.String("project", "", "Project file to open")
	background := flag.String("background", "", "Background image for a new project")
	hitboxImage := flag.String("hitbox", "", "Black/white hitbox image for a new project")
	flag.Parse()

	log.Println("Editor starting...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	session := editor.NewSession(resource.NewCache(cfg.AssetsDir), hitbox.NewTracer())
	session.Defaults = editor.Defaults{
		SimplifyIndex:   cfg.DefaultSimplify,
		CloseHitboxLoop: cfg.CloseHitboxLoop,
	}

	recent, err := config.OpenRecent("leveleditor")
	if err != nil {
		log.Printf("Warning: recent projects unavailable: %v", err)
	}

	g := &Editor{
		session: session,
		recent:  recent,
		bgCache: resource.NewCache(cfg.AssetsDir),
	}

	switch {
	case *projectPath != "":
		if err := session.Open(*projectPath); err != nil {
			log.Printf("Failed to open project %s: %v", *projectPath, err)
		} else {
			g.touchRecent(*projectPath)
		}
	case *background != "":
		d := session.NewDraft()
		d.Project.BackgroundTexturePath = *background
		d.Project.HitboxTexturePath = *hitboxImage
		d.Project.HitboxMap = *hitboxImage != ""
		if err := d.Confirm(); err != nil {
			log.Printf("Failed to create project: %v", err)
			d.Cancel()
		}
	case recent != nil && len(recent.Paths()) > 0:
		last := recent.Paths()[0]
		if err := session.Open(last); err != nil {
			log.Printf("Failed to reopen %s: %v", last, err)
		}
	}

	if cfg.WatchAssets {
		w, err := resource.NewWatcher(cfg.AssetsDir)
		if err != nil {
			log.Printf("Warning: asset watcher disabled: %v", err)
		} else {
			g.watcher = w
			defer w.Close()
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("Warning: clipboard unavailable: %v", err)
	} else {
		g.clipOK = true
	}

	g.ui, g.catalog = buildUI(g.actions(), session.Project().AssetNames())

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle("Level Editor")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
