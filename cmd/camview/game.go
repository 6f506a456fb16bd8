package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/camprovider/config"
	"github.com/milk9111/camprovider/ecs"
	"github.com/milk9111/camprovider/ecs/component"
	"github.com/milk9111/camprovider/ecs/system"
	"github.com/milk9111/camprovider/scene"
)

type Game struct {
	cfg   config.Config
	debug bool

	world    *ecs.World
	provider *system.CameraProviderSystem
	watcher  *scene.Watcher
	renderer *Renderer

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
	frame   uint64
}

func NewGame(cfg config.Config, debug bool) (*Game, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:      cfg,
		debug:    debug,
		renderer: NewRenderer(cfg.Window.Width, cfg.Window.Height),
	}
	if err := g.loadScene(policy); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if cfg.Watch {
		dir := filepath.Dir(scene.Path(cfg.Scene))
		if _, err := os.Stat(dir); err != nil {
			log.Printf("scene watch disabled: %v", err)
		} else if w, err := scene.NewWatcher(dir); err != nil {
			log.Printf("scene watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// loadScene builds a fresh world for the configured scene. The provider is
// rebuilt with it so it never reports an entity from a previous world.
func (g *Game) loadScene(policy system.SelectionPolicy) error {
	spec, err := scene.LoadSpec(g.cfg.Scene)
	if err != nil {
		return err
	}

	w := ecs.NewWorld()
	if g.cfg.Editor.Enabled {
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.EditorStateComponent.Kind(), &component.EditorState{
			Playing: g.cfg.Editor.Playing,
		}); err != nil {
			return fmt.Errorf("camview: add editor state: %w", err)
		}
	}
	if _, err := scene.Build(w, spec); err != nil {
		return fmt.Errorf("camview: build scene %s: %w", spec.Name, err)
	}

	provider := system.NewCameraProviderSystem(policy)
	w.AddSystem(provider)
	w.AddSystem(system.NewCameraChangeLogSystem(nil))

	g.world = w
	g.provider = provider
	log.Printf("loaded scene %q: %d cameras, %d editor views", spec.Name, len(spec.Cameras), len(spec.EditorViews))
	return nil
}

// reload rebuilds the scene, keeping play mode toggled at runtime. Scene view
// focus comes back from the scene file.
func (g *Game) reload() {
	if playing, ok := system.EditorPlaying(g.world); ok {
		g.cfg.Editor.Playing = playing
		log.Printf("reload keeps playing=%t; scene view focus reset from %s", playing, g.cfg.Scene)
	}
	if err := g.loadScene(g.provider.Policy()); err != nil {
		log.Printf("scene reload failed: %v", err)
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frame++
	g.drainWatcher()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	handleInput(g)
	g.world.Update()
	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	want, err := filepath.Abs(scene.Path(g.cfg.Scene))
	if err != nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if got, err := filepath.Abs(name); err == nil && got == want {
				log.Printf("scene %s changed, reloading", name)
				g.reload()
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("scene watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.world, g.provider.Info(), g.debug)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("close scene watcher: %v", err)
		}
	}
}
