package component

// Camera is a runtime camera known to enumeration unless Disabled.
type Camera struct {
	Name string
	Zoom float64
	// TargetTexture names an offscreen render target. Empty renders to the
	// screen.
	TargetTexture string
	Disabled      bool
}

// Offscreen reports whether the camera renders to a target other than the
// screen.
func (c *Camera) Offscreen() bool {
	return c != nil && c.TargetTexture != ""
}

var CameraComponent = NewComponent[Camera]()
