package system

import (
	"log"

	"github.com/milk9111/camprovider/ecs"
	"github.com/milk9111/camprovider/ecs/component"
)

// CameraChangeLogSystem logs active camera switches. Events of other types
// are put back on the queue.
type CameraChangeLogSystem struct {
	logger *log.Logger
}

func NewCameraChangeLogSystem(logger *log.Logger) *CameraChangeLogSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &CameraChangeLogSystem{logger: logger}
}

func (ls *CameraChangeLogSystem) Update(w *ecs.World) {
	q := w.Events()
	for _, evt := range q.Drain() {
		changed, ok := evt.Data.(CameraChangedEvent)
		if evt.Type != EventCameraChanged || !ok {
			q.Push(evt)
			continue
		}
		ls.logger.Printf("active camera: %s -> %s", cameraName(w, changed.Previous), cameraName(w, changed.Current))
	}
}

func cameraName(w *ecs.World, e ecs.Entity) string {
	if !e.Valid() {
		return "<none>"
	}
	if cam, ok := ecs.Get(w, e, component.CameraComponent.Kind()); ok && cam.Name != "" {
		return cam.Name
	}
	if view, ok := ecs.Get(w, e, component.SceneViewComponent.Kind()); ok && view.Name != "" {
		return "scene view " + view.Name
	}
	return "entity " + e.String()
}
