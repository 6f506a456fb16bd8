package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/camprovider/ecs"
	"github.com/milk9111/camprovider/ecs/component"
	"github.com/milk9111/camprovider/ecs/system"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	pixelsPerUnit = 16.0
	markerSize    = 6.0
	thumbWidth    = 240
	thumbHeight   = 135
)

// Renderer draws a top-down (x/z) view of the scene from the active camera
// and one thumbnail per offscreen render target.
type Renderer struct {
	width, height int
	face          *ebtext.GoXFace
	targets       map[string]*ebiten.Image
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		width:   width,
		height:  height,
		face:    ebtext.NewGoXFace(basicfont.Face7x13),
		targets: make(map[string]*ebiten.Image),
	}
}

func (r *Renderer) Draw(screen *ebiten.Image, w *ecs.World, info system.CameraInfo, debug bool) {
	names := r.renderTargets(w)

	screen.Fill(colornames.Black)
	r.renderView(screen, w, info.Camera, zoomOf(w, info.Camera))

	for i, name := range names {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(r.width-thumbWidth-8), float64(8+i*(thumbHeight+8)))
		screen.DrawImage(r.targets[name], op)
	}

	r.drawOverlay(screen, w, info, debug)
}

// renderTargets renders every enabled offscreen camera into its target. The
// camera holds CurrentCameraTag only while it is being rendered.
func (r *Renderer) renderTargets(w *ecs.World) []string {
	var names []string
	for _, e := range ecs.EntitiesWith(w, component.CameraComponent.Kind()) {
		cam, _ := ecs.Get(w, e, component.CameraComponent.Kind())
		if cam.Disabled || !cam.Offscreen() {
			continue
		}
		target, ok := r.targets[cam.TargetTexture]
		if !ok {
			target = ebiten.NewImage(thumbWidth, thumbHeight)
			r.targets[cam.TargetTexture] = target
		}

		if err := ecs.Add(w, e, component.CurrentCameraTagComponent.Kind(), &component.CurrentCameraTag{}); err != nil {
			continue
		}
		target.Fill(color.NRGBA{R: 0x10, G: 0x18, B: 0x28, A: 0xff})
		r.renderView(target, w, e, cam.Zoom)
		ecs.Remove(w, e, component.CurrentCameraTagComponent.Kind())

		names = append(names, cam.TargetTexture)
	}
	return names
}

func (r *Renderer) renderView(dst *ebiten.Image, w *ecs.World, viewer ecs.Entity, zoom float64) {
	var origin [3]float64
	if t, ok := ecs.Get(w, viewer, component.TransformComponent.Kind()); ok {
		origin = t.Position
	}
	bounds := dst.Bounds()
	cx := float64(bounds.Dx()) / 2
	cy := float64(bounds.Dy()) / 2
	scale := pixelsPerUnit * zoom

	ecs.ForEach(w, component.TransformComponent.Kind(), func(e ecs.Entity, t *component.Transform) {
		label, clr, ok := markerFor(w, e)
		if !ok {
			return
		}
		if e == viewer {
			clr = colornames.Gold
		}
		x := cx + (t.Position.X()-origin[0])*scale
		y := cy - (t.Position.Z()-origin[2])*scale
		vector.FillRect(dst, float32(x-markerSize/2), float32(y-markerSize/2), markerSize, markerSize, clr, false)

		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(x+markerSize, y-markerSize)
		op.ColorScale.ScaleWithColor(clr)
		ebtext.Draw(dst, label, r.face, op)
	})
}

func markerFor(w *ecs.World, e ecs.Entity) (string, color.Color, bool) {
	if cam, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok {
		switch {
		case cam.Disabled:
			return cam.Name, colornames.Dimgray, true
		case ecs.Has(w, e, component.MainCameraTagComponent.Kind()):
			return cam.Name, colornames.Lightgreen, true
		case cam.Offscreen():
			return cam.Name, colornames.Skyblue, true
		}
		return cam.Name, colornames.White, true
	}
	if view, ok := ecs.Get(w, e, component.SceneViewComponent.Kind()); ok {
		return view.Name, colornames.Orchid, true
	}
	return "", nil, false
}

func zoomOf(w *ecs.World, e ecs.Entity) float64 {
	if cam, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok && cam.Zoom > 0 {
		return cam.Zoom
	}
	return 1
}

func (r *Renderer) drawOverlay(screen *ebiten.Image, w *ecs.World, info system.CameraInfo, debug bool) {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.2f\n", ebiten.ActualFPS())
	if info.Camera.Valid() {
		label, _, _ := markerFor(w, info.Camera)
		fmt.Fprintf(&b, "Active: %s  Distance: %.2f  Height: %.2f\n", label, info.Distance, info.Height)
	} else {
		b.WriteString("Active: <none>\n")
	}
	if e, ok := ecs.First(w, component.EditorStateComponent.Kind()); ok {
		state, _ := ecs.Get(w, e, component.EditorStateComponent.Kind())
		mode := "editing"
		if state.Playing {
			mode = "playing"
		}
		fmt.Fprintf(&b, "Editor: %s (P play, F focus scene view)\n", mode)
	}
	b.WriteString("Tab: next main camera  R: reload  arrows/PgUp/PgDn: move  Esc: pause\n")

	if debug {
		for _, e := range ecs.Entities(w) {
			label, _, ok := markerFor(w, e)
			if !ok {
				continue
			}
			t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "  %-12s entity=%s pos=(%.1f, %.1f, %.1f)\n", label, e, t.Position.X(), t.Position.Y(), t.Position.Z())
		}
	}
	ebitenutil.DebugPrint(screen, b.String())
}
