package component

import "github.com/go-gl/mathgl/mgl64"

// Transform holds a world-space position. Y is up.
type Transform struct {
	Position mgl64.Vec3
}

var TransformComponent = NewComponent[Transform]()
