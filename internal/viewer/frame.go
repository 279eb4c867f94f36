package viewer

import (
	"github.com/Faultbox/meshview/internal/engine/renderer"
)

// FrameInput is what a frontend collected from the user this frame.
// Drag and pan are in pixels, Wheel in notches.
type FrameInput struct {
	Viewport renderer.Viewport

	DragX, DragY float32
	PanX, PanY   float32
	Wheel        float32

	// Keyboard movement of the target, each in [-1, 1]
	Forward, Right, Up float32

	// Pick requests a ray cast at (PickU, PickV), in [0, 1] from the
	// top-left of the viewport.
	Pick         bool
	PickU, PickV float32

	ResetCamera bool
	Screenshot  bool
	DroppedFile string
}

// FrameResult tells the frontend what to do after Update.
type FrameResult struct {
	Params     renderer.FrameParams
	Screenshot bool
}

// Update applies one frame of input: queued loads first, then camera
// control. It touches no GPU state.
func (s *State) Update(in FrameInput) FrameResult {
	if in.DroppedFile != "" {
		s.RequestLoad(in.DroppedFile)
	}
	if path := s.takePending(); path != "" {
		// Errors are already logged and shown as status.
		_ = s.LoadModel(path)
	}

	if in.ResetCamera {
		s.ResetCamera()
	}
	if in.DragX != 0 || in.DragY != 0 {
		s.Camera.HandleDrag(in.DragX, in.DragY)
	}
	if in.PanX != 0 || in.PanY != 0 {
		s.Camera.HandlePan(in.PanX, in.PanY)
	}
	if in.Wheel != 0 {
		s.Camera.HandleZoom(in.Wheel)
	}
	if in.Forward != 0 || in.Right != 0 || in.Up != 0 {
		s.Camera.HandleMovement(in.Forward, in.Right, in.Up)
	}
	if in.Pick {
		s.Pick(in.PickU, in.PickV, in.Viewport.Aspect())
	}

	return FrameResult{
		Params:     s.FrameParams(in.Viewport),
		Screenshot: in.Screenshot,
	}
}

// Dirty reports whether geometry changed since the last Sync.
func (s *State) Dirty() bool {
	return s.meshDirty || s.wireDirty
}

// Sync uploads changed geometry to r.
func (s *State) Sync(r *renderer.Renderer) {
	if s.meshDirty {
		r.SetMesh(s.Mesh)
		r.SetVertexTransforms(s.Vertices)
		s.meshDirty = false
	}
	if s.wireDirty {
		r.SetEdgeTransforms(s.Wireframe.Transforms)
		s.wireDirty = false
	}
	r.SetTubeSegments(s.Config.Wireframe.Segments)
}

// Frame runs Update and draws the result into the currently bound target.
func (s *State) Frame(r *renderer.Renderer, in FrameInput) FrameResult {
	res := s.Update(in)
	s.Sync(r)
	if !in.Viewport.Empty() {
		r.Draw(res.Params)
	}
	return res
}
