package system

import (
	"bytes"
	"log"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/camprovider/ecs"
	"github.com/milk9111/camprovider/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cameraOpt func(t *testing.T, w *ecs.World, e ecs.Entity, cam *component.Camera)

func asMain() cameraOpt {
	return func(t *testing.T, w *ecs.World, e ecs.Entity, _ *component.Camera) {
		require.NoError(t, ecs.Add(w, e, component.MainCameraTagComponent.Kind(), &component.MainCameraTag{}))
	}
}

func asCurrent() cameraOpt {
	return func(t *testing.T, w *ecs.World, e ecs.Entity, _ *component.Camera) {
		require.NoError(t, ecs.Add(w, e, component.CurrentCameraTagComponent.Kind(), &component.CurrentCameraTag{}))
	}
}

func withTarget(name string) cameraOpt {
	return func(_ *testing.T, _ *ecs.World, _ ecs.Entity, cam *component.Camera) {
		cam.TargetTexture = name
	}
}

func disabled() cameraOpt {
	return func(_ *testing.T, _ *ecs.World, _ ecs.Entity, cam *component.Camera) {
		cam.Disabled = true
	}
}

func addCamera(t *testing.T, w *ecs.World, name string, pos mgl64.Vec3, opts ...cameraOpt) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	cam := &component.Camera{Name: name, Zoom: 1}
	for _, opt := range opts {
		opt(t, w, e, cam)
	}
	require.NoError(t, ecs.Add(w, e, component.CameraComponent.Kind(), cam))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos}))
	return e
}

func addSceneView(t *testing.T, w *ecs.World, pos mgl64.Vec3, focused bool, lastActive uint64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.SceneViewComponent.Kind(), &component.SceneView{
		Name:       "scene",
		Focused:    focused,
		LastActive: lastActive,
	}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos}))
	return e
}

func addEditor(t *testing.T, w *ecs.World, playing bool) {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.EditorStateComponent.Kind(), &component.EditorState{Playing: playing}))
}

func TestCameraProviderSelection(t *testing.T) {
	tests := []struct {
		name   string
		policy SelectionPolicy
		setup  func(t *testing.T, w *ecs.World) ecs.Entity
	}{
		{
			name:   "focused_scene_view_beats_main_in_editor",
			policy: DefaultPolicy(),
			setup: func(t *testing.T, w *ecs.World) ecs.Entity {
				addEditor(t, w, false)
				addCamera(t, w, "main", mgl64.Vec3{0, 1, -10}, asMain())
				return addSceneView(t, w, mgl64.Vec3{5, 5, 5}, true, 1)
			},
		},
		{
			name:   "unfocused_scene_view_falls_through_to_main",
			policy: DefaultPolicy(),
			setup: func(t *testing.T, w *ecs.World) ecs.Entity {
				addEditor(t, w, false)
				addSceneView(t, w, mgl64.Vec3{5, 5, 5}, false, 1)
				return addCamera(t, w, "main", mgl64.Vec3{0, 1, -10}, asMain())
			},
		},
		{
			name:   "only_last_active_scene_view_counts",
			policy: DefaultPolicy(),
			setup: func(t *testing.T, w *ecs.World) ecs.Entity {
				addEditor(t, w, false)
				addSceneView(t, w, mgl64.Vec3{5, 5, 5}, true, 1)
				addSceneView(t, w, mgl64.Vec3{6, 6, 6}, false, 9)
				return addCamera(t, w, "main", mgl64.Vec3{0, 1, -10}, asMain())
			},
		},
		{
			name:   "scene_view_ignored_without_editor",
			policy: DefaultPolicy(),
			setup: func(t *testing.T, w *ecs.World) ecs.Entity {
				addSceneView(t, w, mgl64.Vec3{5, 5, 5}, true, 1)
				return addCamera(t, w, "main", mgl64.Vec3{0, 1, -10}, asMain())
			},
		},
		{
			name:   "main_beats_current_and_offscreen",
			policy: DefaultPolicy(),
			setup: func(t *testing.T, w *ecs.World) ecs.Entity {
				addCamera(t, w, "current", mgl64.Vec3{1, 1, 1}, asCurrent())
				addCamera(t, w, "mirror", mgl64.Vec3{2, 2, 2}, withTarget("mirror"))
				return addCamera(t, w, "main", mgl64.Vec3{3, 3, 3}, asMain())
			},
		},
		{
			name:   "current_beats_offscreen",
			policy: DefaultPolicy(),
			setup: func(t *testing.T, w *ecs.World) ecs.Entity {
				addCamera(t, w, "mirror", mgl64.Vec3{2, 2, 2}, withTarget("mirror"))
				return addCamera(t, w, "current", mgl64.Vec3{1, 1, 1}, asCurrent())
			},
		},
		{
			name:   "offscreen_beats_first",
			policy: DefaultPolicy(),
			setup: func(t *testing.T, w *ecs.World) ecs.Entity {
				addCamera(t, w, "plain", mgl64.Vec3{1, 1, 1})
				return addCamera(t, w, "mirror", mgl64.Vec3{2, 2, 2}, withTarget("mirror"))
			},
		},
		{
			name:   "first_camera_fallback",
			policy: DefaultPolicy(),
			setup: func(t *testing.T, w *ecs.World) ecs.Entity {
				first := addCamera(t, w, "a", mgl64.Vec3{1, 1, 1})
				addCamera(t, w, "b", mgl64.Vec3{2, 2, 2})
				return first
			},
		},
		{
			name:   "disabled_cameras_are_skipped",
			policy: DefaultPolicy(),
			setup: func(t *testing.T, w *ecs.World) ecs.Entity {
				addCamera(t, w, "main", mgl64.Vec3{1, 1, 1}, asMain(), disabled())
				addCamera(t, w, "mirror", mgl64.Vec3{1, 1, 1}, withTarget("mirror"), disabled())
				return addCamera(t, w, "b", mgl64.Vec3{2, 2, 2})
			},
		},
		{
			name:   "custom_order_prefers_offscreen",
			policy: SelectionPolicy{Order: []Selector{SelectOffscreen, SelectMain}},
			setup: func(t *testing.T, w *ecs.World) ecs.Entity {
				addCamera(t, w, "main", mgl64.Vec3{1, 1, 1}, asMain())
				return addCamera(t, w, "mirror", mgl64.Vec3{2, 2, 2}, withTarget("mirror"))
			},
		},
		{
			name:   "editor_play_mode_ignores_focused_scene_view",
			policy: DefaultPolicy(),
			setup: func(t *testing.T, w *ecs.World) ecs.Entity {
				addEditor(t, w, true)
				main := addCamera(t, w, "main", mgl64.Vec3{1, 1, 1}, asMain())
				addSceneView(t, w, mgl64.Vec3{5, 5, 5}, true, 1)
				return main
			},
		},
		{
			name:   "editor_exclusive_play_mode_uses_runtime_chain",
			policy: SelectionPolicy{Order: DefaultOrder, EditorExclusive: true},
			setup: func(t *testing.T, w *ecs.World) ecs.Entity {
				addEditor(t, w, true)
				main := addCamera(t, w, "main", mgl64.Vec3{1, 1, 1}, asMain())
				addSceneView(t, w, mgl64.Vec3{5, 5, 5}, true, 1)
				return main
			},
		},
		{
			name:   "editor_exclusive_editing_uses_focused_scene_view",
			policy: SelectionPolicy{Order: DefaultOrder, EditorExclusive: true},
			setup: func(t *testing.T, w *ecs.World) ecs.Entity {
				addEditor(t, w, false)
				addCamera(t, w, "main", mgl64.Vec3{1, 1, 1}, asMain())
				return addSceneView(t, w, mgl64.Vec3{5, 5, 5}, true, 1)
			},
		},
		{
			name:   "scene_view_without_transform_is_skipped",
			policy: DefaultPolicy(),
			setup: func(t *testing.T, w *ecs.World) ecs.Entity {
				addEditor(t, w, false)
				bare := ecs.CreateEntity(w)
				require.NoError(t, ecs.Add(w, bare, component.SceneViewComponent.Kind(), &component.SceneView{Focused: true, LastActive: 9}))
				addCamera(t, w, "main", mgl64.Vec3{1, 1, 1}, asMain())
				return addSceneView(t, w, mgl64.Vec3{5, 5, 5}, true, 1)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			want := tc.setup(t, w)

			cs := NewCameraProviderSystem(tc.policy)
			cs.Update(w)

			assert.Equal(t, want, cs.Active())
		})
	}
}

func TestCameraProviderMetrics(t *testing.T) {
	w := ecs.NewWorld()
	pos := mgl64.Vec3{3, -7.25, 4}
	main := addCamera(t, w, "main", pos, asMain())

	cs := NewCameraProviderSystem(DefaultPolicy())
	cs.Update(w)

	require.Equal(t, main, cs.Active())
	assert.Equal(t, -7.25, cs.Height())
	assert.InDelta(t, math.Sqrt(3*3+7.25*7.25+4*4), cs.Distance(), 1e-12)
	assert.Equal(t, CameraInfo{Camera: main, Distance: cs.Distance(), Height: -7.25}, cs.Info())
}

func TestCameraProviderNoCameras(t *testing.T) {
	t.Run("first_call_leaves_zero_value", func(t *testing.T) {
		cs := NewCameraProviderSystem(DefaultPolicy())
		cs.Update(ecs.NewWorld())
		assert.Equal(t, CameraInfo{}, cs.Info())
		assert.False(t, cs.Active().Valid())
	})

	t.Run("keeps_previous_snapshot", func(t *testing.T) {
		w := ecs.NewWorld()
		main := addCamera(t, w, "main", mgl64.Vec3{0, 2, 0}, asMain())

		cs := NewCameraProviderSystem(DefaultPolicy())
		cs.Update(w)
		before := cs.Info()

		require.True(t, ecs.DestroyEntity(w, main))
		cs.Update(w)

		assert.Equal(t, before, cs.Info())
	})

	t.Run("editor_exclusive_ignores_runtime_cameras", func(t *testing.T) {
		w := ecs.NewWorld()
		addEditor(t, w, false)
		addSceneView(t, w, mgl64.Vec3{5, 5, 5}, false, 1)
		addCamera(t, w, "main", mgl64.Vec3{1, 1, 1}, asMain())

		cs := NewCameraProviderSystem(SelectionPolicy{EditorExclusive: true})
		cs.Update(w)

		assert.Equal(t, CameraInfo{}, cs.Info())
	})
}

func TestCameraProviderIdempotent(t *testing.T) {
	w := ecs.NewWorld()
	addCamera(t, w, "a", mgl64.Vec3{1, 2, 3})
	addCamera(t, w, "b", mgl64.Vec3{4, 5, 6}, withTarget("rt"))

	cs := NewCameraProviderSystem(DefaultPolicy())
	cs.Update(w)
	first := cs.Info()
	cs.Update(w)

	assert.Equal(t, first, cs.Info())
}

func TestCameraProviderTracksMovement(t *testing.T) {
	w := ecs.NewWorld()
	main := addCamera(t, w, "main", mgl64.Vec3{0, 1, 0}, asMain())

	cs := NewCameraProviderSystem(DefaultPolicy())
	cs.Update(w)
	assert.Equal(t, 1.0, cs.Height())

	transform, ok := ecs.Get(w, main, component.TransformComponent.Kind())
	require.True(t, ok)
	transform.Position = mgl64.Vec3{0, 0, -4}
	cs.Update(w)

	assert.Equal(t, 0.0, cs.Height())
	assert.Equal(t, 4.0, cs.Distance())
}

func TestSetCameraInfo(t *testing.T) {
	w := ecs.NewWorld()
	cam := addCamera(t, w, "a", mgl64.Vec3{0, 3, 4})
	bare := ecs.CreateEntity(w)

	cs := NewCameraProviderSystem(DefaultPolicy())
	assert.False(t, cs.SetCameraInfo(w, 0))
	assert.False(t, cs.SetCameraInfo(w, bare))
	assert.Equal(t, CameraInfo{}, cs.Info())

	require.True(t, cs.SetCameraInfo(w, cam))
	assert.Equal(t, CameraInfo{Camera: cam, Distance: 5, Height: 3}, cs.Info())
}

func TestCameraChangedEvents(t *testing.T) {
	w := ecs.NewWorld()
	a := addCamera(t, w, "a", mgl64.Vec3{1, 0, 0})

	cs := NewCameraProviderSystem(DefaultPolicy())
	cs.Update(w)
	cs.Update(w)

	events := w.Events().Drain()
	require.Len(t, events, 1)
	assert.Equal(t, EventCameraChanged, events[0].Type)
	assert.Equal(t, CameraChangedEvent{Previous: 0, Current: a}, events[0].Data)

	b := addCamera(t, w, "b", mgl64.Vec3{2, 0, 0}, asMain())
	cs.Update(w)

	events = w.Events().Drain()
	require.Len(t, events, 1)
	assert.Equal(t, CameraChangedEvent{Previous: a, Current: b}, events[0].Data)
}

func TestCameraChangeLogSystem(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)

	w := ecs.NewWorld()
	addCamera(t, w, "main", mgl64.Vec3{0, 1, 0}, asMain())
	w.AddSystem(NewCameraProviderSystem(DefaultPolicy()))
	w.AddSystem(ecs.SystemFunc(func(w *ecs.World) {
		w.Events().Push(ecs.Event{Type: "other"})
	}))
	var leftover []ecs.Event
	w.AddSystem(NewCameraChangeLogSystem(logger))
	w.AddSystem(ecs.SystemFunc(func(w *ecs.World) {
		leftover = w.Events().Drain()
	}))

	w.Update()

	assert.Equal(t, "active camera: <none> -> main\n", buf.String())
	require.Len(t, leftover, 1)
	assert.Equal(t, "other", leftover[0].Type)
}

func TestParseSelector(t *testing.T) {
	tests := []struct {
		in      string
		want    Selector
		wantErr bool
	}{
		{in: "main", want: SelectMain},
		{in: " Scene_View ", want: SelectSceneView},
		{in: "offscreen", want: SelectOffscreen},
		{in: "sideways", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseSelector(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrUnknownSelector)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
