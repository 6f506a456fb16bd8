package system

import (
	"github.com/milk9111/camprovider/ecs"
	"github.com/milk9111/camprovider/ecs/component"
)

// TogglePlaying flips play mode of the authoring context. It reports false
// when the world has no EditorState.
func TogglePlaying(w *ecs.World) bool {
	e, ok := ecs.First(w, component.EditorStateComponent.Kind())
	if !ok {
		return false
	}
	state, _ := ecs.Get(w, e, component.EditorStateComponent.Kind())
	state.Playing = !state.Playing
	return true
}

// EditorPlaying reports the play mode of the authoring context. ok is false
// when the world has no EditorState.
func EditorPlaying(w *ecs.World) (playing, ok bool) {
	state, ok := editorState(w)
	if !ok {
		return false, false
	}
	return state.Playing, true
}

// ToggleSceneViewFocus flips focus on the last active scene view and stamps
// it with frame.
func ToggleSceneViewFocus(w *ecs.World, frame uint64) (ecs.Entity, bool) {
	last, lastView, ok := lastSceneView(w)
	if !ok {
		return 0, false
	}
	lastView.Focused = !lastView.Focused
	lastView.LastActive = frame
	return last, true
}

// CycleMainCamera moves the main tag to the next enabled camera in id order.
// It reports false when there is no enabled camera.
func CycleMainCamera(w *ecs.World) (ecs.Entity, bool) {
	var enabled []ecs.Entity
	for _, e := range ecs.EntitiesWith(w, component.CameraComponent.Kind()) {
		if cam, _ := ecs.Get(w, e, component.CameraComponent.Kind()); !cam.Disabled {
			enabled = append(enabled, e)
		}
	}
	if len(enabled) == 0 {
		return 0, false
	}

	next := enabled[0]
	for i, e := range enabled {
		if ecs.Has(w, e, component.MainCameraTagComponent.Kind()) {
			next = enabled[(i+1)%len(enabled)]
			break
		}
	}
	for _, e := range ecs.EntitiesWith(w, component.MainCameraTagComponent.Kind()) {
		ecs.Remove(w, e, component.MainCameraTagComponent.Kind())
	}
	if err := ecs.Add(w, next, component.MainCameraTagComponent.Kind(), &component.MainCameraTag{}); err != nil {
		return 0, false
	}
	return next, true
}
