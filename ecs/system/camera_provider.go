package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/camprovider/ecs"
	"github.com/milk9111/camprovider/ecs/component"
)

// EventCameraChanged is pushed when the active camera switches.
const EventCameraChanged = "camera_changed"

var ErrUnknownSelector = errors.New("camera provider: unknown selector")

// Selector names one step of the camera fallback chain.
type Selector string

const (
	SelectSceneView Selector = "scene_view"
	SelectMain      Selector = "main"
	SelectCurrent   Selector = "current"
	SelectOffscreen Selector = "offscreen"
	SelectFirst     Selector = "first"
)

// DefaultOrder is the fallback chain used when none is configured.
var DefaultOrder = []Selector{
	SelectSceneView,
	SelectMain,
	SelectCurrent,
	SelectOffscreen,
	SelectFirst,
}

// ParseSelector converts a config name to a Selector.
func ParseSelector(s string) (Selector, error) {
	sel := Selector(strings.ToLower(strings.TrimSpace(s)))
	switch sel {
	case SelectSceneView, SelectMain, SelectCurrent, SelectOffscreen, SelectFirst:
		return sel, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownSelector, s)
}

// SelectionPolicy controls how the active camera is chosen.
type SelectionPolicy struct {
	Order []Selector
	// EditorExclusive limits an authoring context that is not playing to the
	// scene view; runtime cameras are not considered.
	EditorExclusive bool
}

// DefaultPolicy returns the default fallback chain.
func DefaultPolicy() SelectionPolicy {
	return SelectionPolicy{Order: append([]Selector(nil), DefaultOrder...)}
}

// CameraInfo is a snapshot of the active camera.
type CameraInfo struct {
	Camera   ecs.Entity
	Distance float64
	Height   float64
}

// CameraChangedEvent is the payload of EventCameraChanged.
type CameraChangedEvent struct {
	Previous ecs.Entity
	Current  ecs.Entity
}

// CameraProviderSystem picks the active camera every frame and caches its
// distance from the origin and its height.
type CameraProviderSystem struct {
	policy SelectionPolicy
	info   CameraInfo
}

// NewCameraProviderSystem returns an observer with an empty snapshot. An empty
// policy order falls back to DefaultOrder.
func NewCameraProviderSystem(policy SelectionPolicy) *CameraProviderSystem {
	if len(policy.Order) == 0 {
		policy.Order = append([]Selector(nil), DefaultOrder...)
	}
	return &CameraProviderSystem{policy: policy}
}

// Update selects a camera and records it. When nothing is found the previous
// snapshot is kept.
func (cs *CameraProviderSystem) Update(w *ecs.World) {
	if e, ok := cs.selectCamera(w); ok {
		cs.SetCameraInfo(w, e)
	}
}

// SetCameraInfo records the metrics of e. It reports false and leaves the
// snapshot untouched if e is not a live entity with a transform.
func (cs *CameraProviderSystem) SetCameraInfo(w *ecs.World, e ecs.Entity) bool {
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return false
	}

	prev := cs.info.Camera
	cs.info = CameraInfo{
		Camera:   e,
		Distance: transform.Position.Len(),
		Height:   transform.Position.Y(),
	}

	if prev != e {
		w.Events().Push(ecs.Event{
			Type: EventCameraChanged,
			Data: CameraChangedEvent{Previous: prev, Current: e},
		})
	}
	return true
}

// Active returns the selected camera, or the zero Entity before the first
// selection.
func (cs *CameraProviderSystem) Active() ecs.Entity {
	return cs.info.Camera
}

// Distance returns the active camera's distance from the world origin.
func (cs *CameraProviderSystem) Distance() float64 {
	return cs.info.Distance
}

// Height returns the active camera's world-space Y.
func (cs *CameraProviderSystem) Height() float64 {
	return cs.info.Height
}

// Info returns a copy of the current snapshot.
func (cs *CameraProviderSystem) Info() CameraInfo { return cs.info }

// Policy returns the policy in use.
func (cs *CameraProviderSystem) Policy() SelectionPolicy { return cs.policy }

func (cs *CameraProviderSystem) selectCamera(w *ecs.World) (ecs.Entity, bool) {
	// the scene view only counts while authoring; play mode uses runtime cameras
	editor, inEditor := editorState(w)
	authoring := inEditor && !editor.Playing
	if authoring && cs.policy.EditorExclusive {
		return sceneViewCamera(w)
	}

	for _, sel := range cs.policy.Order {
		var (
			e  ecs.Entity
			ok bool
		)
		switch sel {
		case SelectSceneView:
			if authoring {
				e, ok = sceneViewCamera(w)
			}
		case SelectMain:
			e, ok = mainCamera(w)
		case SelectCurrent:
			e, ok = firstEnabled(w, func(e ecs.Entity, _ *component.Camera) bool {
				return ecs.Has(w, e, component.CurrentCameraTagComponent.Kind())
			})
		case SelectOffscreen:
			e, ok = firstEnabled(w, func(_ ecs.Entity, c *component.Camera) bool {
				return c.Offscreen()
			})
		case SelectFirst:
			e, ok = firstEnabled(w, nil)
		}
		if ok {
			return e, true
		}
	}
	return 0, false
}

func editorState(w *ecs.World) (*component.EditorState, bool) {
	e, ok := ecs.First(w, component.EditorStateComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.EditorStateComponent.Kind())
}

// sceneViewCamera returns the last active scene view if it has focus.
func sceneViewCamera(w *ecs.World) (ecs.Entity, bool) {
	e, view, ok := lastSceneView(w)
	if !ok || !view.Focused {
		return 0, false
	}
	return e, true
}

// lastSceneView returns the positioned scene view with the highest
// LastActive. Ties go to the lowest id.
func lastSceneView(w *ecs.World) (ecs.Entity, *component.SceneView, bool) {
	var (
		last     ecs.Entity
		lastView *component.SceneView
	)
	ecs.ForEach2(w, component.SceneViewComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, view *component.SceneView, _ *component.Transform) {
			if lastView == nil || view.LastActive > lastView.LastActive {
				last, lastView = e, view
			}
		})
	return last, lastView, lastView != nil
}

func mainCamera(w *ecs.World) (ecs.Entity, bool) {
	return firstEnabled(w, func(e ecs.Entity, _ *component.Camera) bool {
		return ecs.Has(w, e, component.MainCameraTagComponent.Kind())
	})
}

// firstEnabled returns the lowest-id enabled camera with a transform that is
// accepted by match. A nil match accepts any camera.
func firstEnabled(w *ecs.World, match func(ecs.Entity, *component.Camera) bool) (ecs.Entity, bool) {
	var (
		found ecs.Entity
		ok    bool
	)
	ecs.ForEach2(w, component.CameraComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, cam *component.Camera, _ *component.Transform) {
			if ok || cam.Disabled {
				return
			}
			if match == nil || match(e, cam) {
				found, ok = e, true
			}
		})
	return found, ok
}
