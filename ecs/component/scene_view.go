package component

// SceneView is an editor preview camera. It is positioned by the entity's
// Transform and is not part of the runtime camera list.
type SceneView struct {
	Name    string
	Focused bool
	// LastActive is the frame the view was last interacted with; the view
	// with the highest value is the last active one.
	LastActive uint64
}

var SceneViewComponent = NewComponent[SceneView]()

// EditorState exists only in an authoring context.
type EditorState struct {
	Playing bool
}

var EditorStateComponent = NewComponent[EditorState]()
