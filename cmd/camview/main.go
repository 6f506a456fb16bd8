package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/camprovider/config"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	sceneName := flag.String("scene", "", "scene name in scene/scenes/ or path to a scene file (overrides config)")
	editor := flag.Bool("editor", false, "start in an authoring context with scene views")
	debug := flag.Bool("debug", false, "list every camera in the overlay")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *sceneName != "" {
		cfg.Scene = *sceneName
	}
	if *editor {
		cfg.Editor.Enabled = true
	}

	game, err := NewGame(cfg, *debug)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
