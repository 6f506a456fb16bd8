package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/camprovider/ecs"
	"github.com/milk9111/camprovider/ecs/component"
	"github.com/milk9111/camprovider/ecs/system"
)

const moveSpeed = 0.25

var moveKeys = []struct {
	key  ebiten.Key
	axis int
	sign float64
}{
	{ebiten.KeyArrowLeft, 0, -1},
	{ebiten.KeyArrowRight, 0, 1},
	{ebiten.KeyPageUp, 1, 1},
	{ebiten.KeyPageDown, 1, -1},
	{ebiten.KeyArrowUp, 2, 1},
	{ebiten.KeyArrowDown, 2, -1},
}

func handleInput(g *Game) {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reload()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		system.TogglePlaying(g.world)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		system.ToggleSceneViewFocus(g.world, g.frame)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		system.CycleMainCamera(g.world)
	}

	// move whatever the provider picked last frame
	transform, ok := ecs.Get(g.world, g.provider.Active(), component.TransformComponent.Kind())
	if !ok {
		return
	}
	for _, k := range moveKeys {
		if ebiten.IsKeyPressed(k.key) {
			transform.Position[k.axis] += k.sign * moveSpeed
		}
	}
}
