// Package renderer draws a mesh, its instanced wireframe overlay and
// debug geometry with OpenGL 4.1.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/debug"
	"github.com/Faultbox/meshview/internal/engine/lighting"
	"github.com/Faultbox/meshview/internal/engine/primitive"
	"github.com/Faultbox/meshview/internal/engine/renderer/shaders"
	"github.com/Faultbox/meshview/internal/engine/shader"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/internal/mesh"
)

// Sphere tessellation for vertex markers.
const (
	sphereRings    = 8
	sphereSegments = 12
)

// Material describes the surface of the loaded model.
type Material struct {
	Albedo    [3]float32
	Specular  float32
	Shininess float32
}

// FrameParams is everything one Draw call needs.
type FrameParams struct {
	Viewport   Viewport
	ClearColor [4]float32

	View       mgl32.Mat4
	Projection mgl32.Mat4
	Eye        mgl32.Vec3

	Light    lighting.Light
	Material Material

	ShowSurface  bool
	ShowEdges    bool
	ShowVertices bool
	ShowBounds   bool

	EdgeColor    [4]float32
	EdgeRadius   float32 // World units
	VertexRadius float32 // World units
	BoundsColor  [4]float32
}

// Renderer owns the GPU resources for one model.
type Renderer struct {
	log *zap.Logger

	phong    *shader.Program
	instance *shader.Program
	line     *shader.Program

	surface  *meshBuffer
	edges    *instanceBuffer
	vertices *instanceBuffer
	bounds   *lineBuffer

	tubeSegments int
}

// Init loads OpenGL function pointers. Call once after a context exists.
func Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	return nil
}

// New compiles the shader programs and builds the reference primitives.
// Must be called with a current OpenGL context after Init.
func New(tubeSegments int) (*Renderer, error) {
	r := &Renderer{
		log:          logger.Named("render"),
		tubeSegments: max(tubeSegments, primitive.MinSegments),
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	if r.phong, err = shader.New("surface", shaders.SurfaceVertexShader, shaders.PhongFragmentShader); err != nil {
		r.Close()
		return nil, err
	}
	if r.instance, err = shader.New("instance", shaders.InstanceVertexShader, shaders.PhongFragmentShader); err != nil {
		r.Close()
		return nil, err
	}
	if r.line, err = shader.New("line", shaders.LineVertexShader, shaders.LineFragmentShader); err != nil {
		r.Close()
		return nil, err
	}

	r.surface = newMeshBuffer()
	r.edges = newInstanceBuffer(primitive.Cylinder(r.tubeSegments))
	r.vertices = newInstanceBuffer(primitive.Sphere(sphereRings, sphereSegments))
	r.bounds = newLineBuffer()

	r.log.Debug("renderer ready", zap.Int("tube_segments", r.tubeSegments))
	return r, nil
}

// Close releases all GPU resources.
func (r *Renderer) Close() {
	for _, p := range []*shader.Program{r.phong, r.instance, r.line} {
		if p != nil {
			p.Delete()
		}
	}
	if r.surface != nil {
		r.surface.destroy()
	}
	if r.edges != nil {
		r.edges.destroy()
	}
	if r.vertices != nil {
		r.vertices.destroy()
	}
	if r.bounds != nil {
		r.bounds.destroy()
	}
}

// SetMesh uploads the model surface and its bounding box.
func (r *Renderer) SetMesh(m *mesh.Mesh) {
	if m == nil {
		r.surface.upload(nil)
		r.bounds.upload(nil)
		return
	}
	r.surface.upload(m.Interleave())
	b := m.Bounds()
	r.bounds.upload(debug.BoundsWireframe(b.Min, b.Max, 0))
	r.log.Debug("mesh uploaded",
		zap.String("name", m.Name),
		zap.Int("triangles", len(m.Triangles)),
	)
}

// SetEdgeTransforms uploads one instance matrix per wireframe edge.
func (r *Renderer) SetEdgeTransforms(transforms []mgl32.Mat4) {
	r.edges.setInstances(transforms)
}

// SetVertexTransforms uploads one instance matrix per vertex marker.
func (r *Renderer) SetVertexTransforms(transforms []mgl32.Mat4) {
	r.vertices.setInstances(transforms)
}

// SetTubeSegments rebuilds the edge cylinder with a new tessellation.
func (r *Renderer) SetTubeSegments(segments int) {
	segments = max(segments, primitive.MinSegments)
	if segments == r.tubeSegments {
		return
	}
	r.tubeSegments = segments
	r.edges.setReference(primitive.Cylinder(segments))
}

// Draw clears the viewport and renders the enabled passes.
func (r *Renderer) Draw(p FrameParams) {
	vp := p.Viewport
	gl.Viewport(vp.X, vp.Y, vp.Width, vp.Height)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(vp.X, vp.Y, vp.Width, vp.Height)
	gl.ClearColor(p.ClearColor[0], p.ClearColor[1], p.ClearColor[2], p.ClearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Disable(gl.SCISSOR_TEST)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Disable(gl.CULL_FACE)

	if p.ShowSurface && r.surface.count > 0 {
		// Push the surface back so coincident edge tubes win the depth test.
		gl.Enable(gl.POLYGON_OFFSET_FILL)
		gl.PolygonOffset(1, 1)
		r.drawSurface(&p)
		gl.Disable(gl.POLYGON_OFFSET_FILL)
	}

	if p.ShowEdges && r.edges.instances > 0 {
		shape := mgl32.Scale3D(1, p.EdgeRadius, p.EdgeRadius)
		r.drawInstances(&p, r.edges, shape, Material{
			Albedo:    [3]float32{p.EdgeColor[0], p.EdgeColor[1], p.EdgeColor[2]},
			Specular:  p.Material.Specular,
			Shininess: p.Material.Shininess,
		}, p.EdgeColor[3])
	}

	if p.ShowVertices && r.vertices.instances > 0 {
		shape := mgl32.Scale3D(p.VertexRadius, p.VertexRadius, p.VertexRadius)
		r.drawInstances(&p, r.vertices, shape, Material{
			Albedo:    [3]float32{p.EdgeColor[0], p.EdgeColor[1], p.EdgeColor[2]},
			Specular:  p.Material.Specular,
			Shininess: p.Material.Shininess,
		}, p.EdgeColor[3])
	}

	if p.ShowBounds && r.bounds.count > 0 {
		r.line.Use()
		r.line.SetMat4("uView", &p.View[0])
		r.line.SetMat4("uProjection", &p.Projection[0])
		r.line.SetVec4("uColor", p.BoundsColor)
		r.bounds.draw()
	}

	gl.Disable(gl.BLEND)
}

func (r *Renderer) setLighting(prog *shader.Program, p *FrameParams, mat Material, alpha float32) {
	prog.SetMat4("uView", &p.View[0])
	prog.SetMat4("uProjection", &p.Projection[0])
	prog.SetVec3("uEye", p.Eye)
	prog.SetVec3("uLightDir", p.Light.Direction)
	prog.SetVec3("uLightColor", p.Light.Color)
	prog.SetVec3("uAmbient", p.Light.Ambient)
	prog.SetVec3("uAlbedo", mat.Albedo)
	prog.SetFloat("uSpecular", mat.Specular)
	prog.SetFloat("uShininess", max(mat.Shininess, 1))
	prog.SetFloat("uAlpha", alpha)

	if alpha < 1 {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}
}

func (r *Renderer) drawSurface(p *FrameParams) {
	r.phong.Use()
	model := mgl32.Ident4()
	r.phong.SetMat4("uModel", &model[0])
	r.setLighting(r.phong, p, p.Material, 1)
	r.surface.draw()
}

func (r *Renderer) drawInstances(p *FrameParams, buf *instanceBuffer, shape mgl32.Mat4, mat Material, alpha float32) {
	r.instance.Use()
	r.instance.SetMat4("uShape", &shape[0])
	r.setLighting(r.instance, p, mat, alpha)
	buf.draw()
}

// ReadPixels reads the viewport from the default framebuffer's back buffer
// as bottom-up RGBA rows. Call before swapping.
func ReadPixels(vp Viewport) []byte {
	if vp.Empty() {
		return nil
	}
	pixels := make([]byte, int(vp.Width)*int(vp.Height)*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.ReadBuffer(gl.BACK)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(vp.X, vp.Y, vp.Width, vp.Height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
