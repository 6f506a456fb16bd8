package component

// MainCameraTag marks a camera as a candidate for the main camera.
type MainCameraTag struct{}

var MainCameraTagComponent = NewComponent[MainCameraTag]()

// CurrentCameraTag is held by the camera being rendered right now.
type CurrentCameraTag struct{}

var CurrentCameraTagComponent = NewComponent[CurrentCameraTag]()
