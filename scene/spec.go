package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/camprovider/ecs"
	"github.com/milk9111/camprovider/ecs/component"
	"gopkg.in/yaml.v3"
)

var ErrNoCameras = errors.New("scene: no cameras or editor views")

type Spec struct {
	Name        string           `yaml:"name"`
	Cameras     []CameraSpec     `yaml:"cameras"`
	EditorViews []EditorViewSpec `yaml:"editor_views"`
}

type CameraSpec struct {
	Name          string     `yaml:"name"`
	Position      [3]float64 `yaml:"position"`
	Zoom          float64    `yaml:"zoom"`
	Main          bool       `yaml:"main"`
	TargetTexture string     `yaml:"target_texture"`
	Disabled      bool       `yaml:"disabled"`
}

type EditorViewSpec struct {
	Name     string     `yaml:"name"`
	Position [3]float64 `yaml:"position"`
	Focused  bool       `yaml:"focused"`
}

// LoadSpec loads and decodes the named scene.
func LoadSpec(name string) (*Spec, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("scene: load %s: %w", name, err)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", name, err)
	}
	return spec, nil
}

func Parse(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if len(spec.Cameras) == 0 && len(spec.EditorViews) == 0 {
		return nil, ErrNoCameras
	}
	return &spec, nil
}

// Build creates the scene's editor views and cameras in w, in file order.
// Editor views are created first so runtime cameras keep their relative
// order.
func Build(w *ecs.World, spec *Spec) ([]ecs.Entity, error) {
	out := make([]ecs.Entity, 0, len(spec.EditorViews)+len(spec.Cameras))
	for i, view := range spec.EditorViews {
		e, err := NewEditorView(w, view, uint64(len(spec.EditorViews)-i))
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	for _, cam := range spec.Cameras {
		e, err := NewCamera(w, cam)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func NewCamera(w *ecs.World, spec CameraSpec) (ecs.Entity, error) {
	camera := ecs.CreateEntity(w)

	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), &component.Transform{
		Position: mgl64.Vec3(spec.Position),
	}); err != nil {
		return 0, fmt.Errorf("camera %s: add transform: %w", spec.Name, err)
	}

	zoom := spec.Zoom
	if zoom == 0 {
		zoom = 1
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		Name:          spec.Name,
		Zoom:          zoom,
		TargetTexture: spec.TargetTexture,
		Disabled:      spec.Disabled,
	}); err != nil {
		return 0, fmt.Errorf("camera %s: add camera component: %w", spec.Name, err)
	}

	if spec.Main {
		if err := ecs.Add(w, camera, component.MainCameraTagComponent.Kind(), &component.MainCameraTag{}); err != nil {
			return 0, fmt.Errorf("camera %s: add main tag: %w", spec.Name, err)
		}
	}
	return camera, nil
}

// NewEditorView creates a scene view. Earlier views in a file get a higher
// lastActive so the first listed view starts as the last active one.
func NewEditorView(w *ecs.World, spec EditorViewSpec, lastActive uint64) (ecs.Entity, error) {
	view := ecs.CreateEntity(w)
	if err := ecs.Add(w, view, component.TransformComponent.Kind(), &component.Transform{
		Position: mgl64.Vec3(spec.Position),
	}); err != nil {
		return 0, fmt.Errorf("editor view %s: add transform: %w", spec.Name, err)
	}
	if err := ecs.Add(w, view, component.SceneViewComponent.Kind(), &component.SceneView{
		Name:       spec.Name,
		Focused:    spec.Focused,
		LastActive: lastActive,
	}); err != nil {
		return 0, fmt.Errorf("editor view %s: add scene view: %w", spec.Name, err)
	}
	return view, nil
}
