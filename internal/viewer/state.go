// Package viewer ties together the mesh, its wireframe overlay, the orbit
// camera and the renderer, and runs them under either the GUI or the plain
// SDL frontend.
package viewer

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/config"
	"github.com/Faultbox/meshview/internal/engine/camera"
	"github.com/Faultbox/meshview/internal/engine/lighting"
	"github.com/Faultbox/meshview/internal/engine/picking"
	"github.com/Faultbox/meshview/internal/engine/renderer"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/internal/mesh"
	"github.com/Faultbox/meshview/internal/wireframe"
)

// statusTTL is how long a status message stays on screen.
const statusTTL = 5 * time.Second

// Status is a message shown in the panel or window title.
type Status struct {
	Text  string
	Error bool
	At    time.Time
}

// State is everything the per-frame function reads and updates. It holds no
// GPU resources; frontends sync it into a renderer when Dirty reports true.
type State struct {
	Config *config.Config
	Camera *camera.OrbitCamera

	Mesh      *mesh.Mesh
	Wireframe *wireframe.Result
	Vertices  []mgl32.Mat4
	Picked    *picking.Hit // Last triangle clicked in the view

	log    *zap.Logger
	now    func() time.Time
	status Status

	meshDirty bool
	wireDirty bool

	mu      sync.Mutex
	pending string // Model path queued from another goroutine
}

// NewState creates a viewer state from a validated config.
func NewState(cfg *config.Config) *State {
	s := &State{
		Config: cfg,
		log:    logger.Named("viewer"),
		now:    time.Now,
	}
	s.Camera = camera.NewOrbitCamera(cfg.Camera.SceneRadius, cfg.Camera.FOV, cfg.Camera.Near, cfg.Camera.Far)
	s.Camera.LookFrom(mgl32.Vec3(cfg.Camera.Direction))
	return s
}

// LoadModel reads, validates and extracts the wireframe of the mesh at
// path. On error the previous model stays loaded.
func (s *State) LoadModel(path string) error {
	start := s.now()

	m, err := mesh.Load(path)
	if err != nil {
		return s.fail(fmt.Errorf("loading %s: %w", path, err))
	}
	if err := m.Validate(); err != nil {
		return s.fail(fmt.Errorf("validating %s: %w", path, err))
	}
	m.ComputeNormals()

	opts, err := s.Config.WireframeOptions()
	if err != nil {
		return s.fail(err)
	}
	res, err := wireframe.Extract(m.Positions, m.Triangles, opts)
	if err != nil {
		return s.fail(fmt.Errorf("extracting edges of %s: %w", path, err))
	}

	s.Mesh = m
	s.Wireframe = res
	s.Vertices = wireframe.VertexTransforms(m.Positions)
	s.Picked = nil
	s.Config.Model.Path = path
	s.meshDirty = true
	s.wireDirty = true

	if s.Config.Camera.FitToModel {
		s.ResetCamera()
	}

	s.log.Info("model loaded",
		zap.String("path", path),
		zap.Int("vertices", len(m.Positions)),
		zap.Int("triangles", len(m.Triangles)),
		zap.Int("edges", res.Len()),
		zap.Duration("took", s.now().Sub(start)),
	)
	s.SetStatus(fmt.Sprintf("Loaded %s: %d triangles, %d edges", m.Name, len(m.Triangles), res.Len()), false)
	return nil
}

// RebuildWireframe re-extracts edges after the edge mode or degenerate
// policy changed. The previous overlay is kept on error.
func (s *State) RebuildWireframe() error {
	if s.Mesh == nil {
		return nil
	}
	opts, err := s.Config.WireframeOptions()
	if err != nil {
		return s.fail(err)
	}
	res, err := wireframe.Extract(s.Mesh.Positions, s.Mesh.Triangles, opts)
	if err != nil {
		return s.fail(fmt.Errorf("extracting edges: %w", err))
	}
	s.Wireframe = res
	s.wireDirty = true
	s.log.Debug("wireframe rebuilt",
		zap.Stringer("mode", opts.Mode),
		zap.Stringer("degenerate", opts.Degenerate),
		zap.Int("edges", res.Len()),
	)
	return nil
}

// ResetCamera frames the loaded model, or the configured scene radius when
// nothing is loaded, from the configured direction.
func (s *State) ResetCamera() {
	cc := s.Config.Camera
	if s.Mesh != nil {
		b := s.Mesh.Bounds()
		s.Camera.FitToBounds(b.Min, b.Max)
	} else {
		s.Camera = camera.NewOrbitCamera(cc.SceneRadius, cc.FOV, cc.Near, cc.Far)
	}
	s.Camera.LookFrom(mgl32.Vec3(cc.Direction))
}

// RequestLoad queues a model to be loaded on the next frame. Safe to call
// from any goroutine.
func (s *State) RequestLoad(path string) {
	s.mu.Lock()
	s.pending = path
	s.mu.Unlock()
}

func (s *State) takePending() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.pending
	s.pending = ""
	return p
}

// SetStatus replaces the current status message.
func (s *State) SetStatus(text string, isError bool) {
	s.status = Status{Text: text, Error: isError, At: s.now()}
}

// CurrentStatus returns the status message if it has not expired.
func (s *State) CurrentStatus() (Status, bool) {
	if s.status.Text == "" || s.now().Sub(s.status.At) > statusTTL {
		return Status{}, false
	}
	return s.status, true
}

func (s *State) fail(err error) error {
	s.log.Error("viewer error", zap.Error(err))
	s.SetStatus(err.Error(), true)
	return err
}

// EdgeRadius returns the tube radius in world units, relative to the model.
func (s *State) EdgeRadius() float32 {
	r := s.Camera.SceneRadius()
	if s.Mesh != nil {
		if mr := s.Mesh.Radius(); mr > 0 {
			r = mr
		}
	}
	return s.Config.Wireframe.Radius * r
}

// Title is the window title for the current model.
func (s *State) Title() string {
	title := s.Config.Graphics.Title
	if title == "" {
		title = "meshview"
	}
	if s.Mesh == nil {
		return title
	}
	return fmt.Sprintf("%s - %s", title, s.Mesh.Name)
}

// FrameParams builds the draw parameters for a viewport from the config and
// camera.
func (s *State) FrameParams(vp renderer.Viewport) renderer.FrameParams {
	cfg := s.Config
	eye := s.Camera.Position()

	light := lighting.FromConfig(cfg.Lighting)
	if cfg.Lighting.HeadlightMode {
		light = light.Headlight(eye.Sub(s.Camera.Target))
	}

	edgeRadius := s.EdgeRadius()
	p := renderer.FrameParams{
		Viewport:   vp,
		ClearColor: cfg.Graphics.ClearColor,
		View:       s.Camera.ViewMatrix(),
		Projection: s.Camera.ProjectionMatrix(vp.Aspect()),
		Eye:        eye,
		Light:      light,
		Material: renderer.Material{
			Albedo:    cfg.Material.Albedo,
			Specular:  cfg.Material.Specular,
			Shininess: cfg.Material.Shininess,
		},
		ShowSurface:  cfg.Wireframe.ShowSurface,
		ShowEdges:    cfg.Wireframe.Enabled,
		ShowVertices: cfg.Wireframe.Enabled && cfg.Wireframe.ShowVertices,
		ShowBounds:   cfg.Wireframe.ShowBounds,
		EdgeColor:    cfg.Wireframe.Color,
		EdgeRadius:   edgeRadius,
		VertexRadius: edgeRadius * cfg.Wireframe.VertexScale,
		BoundsColor:  [4]float32{0.9, 0.8, 0.2, 1},
	}
	return p
}

// Pick casts a ray through the view at (u, v), both in [0, 1] from the
// top-left, and records the nearest triangle hit.
func (s *State) Pick(u, v, aspect float32) (picking.Hit, bool) {
	s.Picked = nil
	if s.Mesh == nil {
		return picking.Hit{}, false
	}

	viewProj := s.Camera.ProjectionMatrix(aspect).Mul4(s.Camera.ViewMatrix())
	if viewProj.Det() == 0 {
		return picking.Hit{}, false
	}
	ray := picking.ScreenToRay(u, v, 1, 1, viewProj.Inv())

	b := s.Mesh.Bounds()
	hit, ok := picking.PickMesh(ray, s.Mesh.Positions, s.Mesh.Triangles, b.Min, b.Max)
	if !ok {
		return picking.Hit{}, false
	}
	s.Picked = &hit
	s.log.Debug("picked",
		zap.Int("triangle", hit.Triangle),
		zap.Uint32("vertex", hit.Vertex),
	)
	return hit, true
}
