package viewer

import (
	"fmt"
	"math"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/meshview/internal/wireframe"
)

var (
	edgeModes          = []wireframe.EdgeMode{wireframe.EdgeModeCanonical, wireframe.EdgeModeUnique}
	degeneratePolicies = []wireframe.DegeneratePolicy{
		wireframe.DegenerateReject,
		wireframe.DegenerateSkip,
		wireframe.DegenerateIdentity,
	}
)

func (g *gui) renderPanel() {
	g.renderModelSection()
	imgui.Separator()

	if imgui.CollapsingHeaderTreeNodeFlagsV("Wireframe", imgui.TreeNodeFlagsDefaultOpen) {
		g.renderWireframeSection()
	}
	if imgui.CollapsingHeaderTreeNodeFlagsV("Material", imgui.TreeNodeFlagsDefaultOpen) {
		g.renderMaterialSection()
	}
	if imgui.CollapsingHeaderTreeNodeFlagsV("Lighting", imgui.TreeNodeFlagsNone) {
		g.renderLightingSection()
	}
	if imgui.CollapsingHeaderTreeNodeFlagsV("Camera", imgui.TreeNodeFlagsNone) {
		g.renderCameraSection()
	}

	imgui.Separator()
	if imgui.Button("Save config") {
		g.saveConfig()
	}
	imgui.SameLine()
	if imgui.Button("Screenshot") {
		g.pending.Screenshot = true
	}

	if st, ok := g.state.CurrentStatus(); ok {
		imgui.Separator()
		if st.Error {
			imgui.TextColored(imgui.NewVec4(1, 0.4, 0.4, 1), "Error")
		}
		imgui.TextWrapped(st.Text)
	}
}

func (g *gui) renderModelSection() {
	s := g.state
	if s.Mesh == nil {
		imgui.TextDisabled("No model loaded")
	} else {
		imgui.Text(s.Mesh.Name)
		imgui.Text(fmt.Sprintf("Vertices:  %d", len(s.Mesh.Positions)))
		imgui.Text(fmt.Sprintf("Triangles: %d", len(s.Mesh.Triangles)))
		imgui.Text(fmt.Sprintf("Edges:     %d", s.Wireframe.Len()))
		size := s.Mesh.Bounds().Size()
		imgui.Text(fmt.Sprintf("Size: %.3g x %.3g x %.3g", size.X(), size.Y(), size.Z()))
		imgui.TextDisabled(s.Config.Model.Path)

		if hit := s.Picked; hit != nil {
			tri := s.Mesh.Triangles[hit.Triangle]
			p := s.Mesh.Positions[hit.Vertex]
			imgui.Text(fmt.Sprintf("Picked triangle %d (%d, %d, %d)", hit.Triangle, tri[0], tri[1], tri[2]))
			imgui.Text(fmt.Sprintf("Nearest vertex %d at (%.3g, %.3g, %.3g)", hit.Vertex, p.X(), p.Y(), p.Z()))
		}
	}

	if imgui.ButtonV("Select a model", imgui.NewVec2(-1, 0)) {
		g.openFileDialog()
	}
	imgui.BeginDisabledV(s.Config.Model.Path == "")
	if imgui.Button("Reload") {
		s.RequestLoad(s.Config.Model.Path)
	}
	imgui.EndDisabled()
	imgui.SameLine()
	imgui.Checkbox("Watch file", &s.Config.Model.Watch)
	if imgui.IsItemHovered() {
		imgui.SetTooltip("Reload when the file changes on disk")
	}
}

func (g *gui) renderWireframeSection() {
	s := g.state
	wc := &s.Config.Wireframe

	imgui.Checkbox("Show edges", &wc.Enabled)
	imgui.Checkbox("Show surface", &wc.ShowSurface)
	imgui.Checkbox("Show vertices", &wc.ShowVertices)
	imgui.Checkbox("Show bounds", &wc.ShowBounds)

	mode, _ := wireframe.ParseEdgeMode(wc.EdgeMode)
	imgui.Text("Edges")
	for i, m := range edgeModes {
		if i > 0 {
			imgui.SameLine()
		}
		if imgui.RadioButtonBool(m.String(), mode == m) && mode != m {
			g.setWireframeOption(&wc.EdgeMode, m.String())
		}
	}

	policy, _ := wireframe.ParseDegeneratePolicy(wc.Degenerate)
	imgui.Text("Degenerate edges")
	for i, p := range degeneratePolicies {
		if i > 0 {
			imgui.SameLine()
		}
		if imgui.RadioButtonBool(p.String(), policy == p) && policy != p {
			g.setWireframeOption(&wc.Degenerate, p.String())
		}
	}

	imgui.SetNextItemWidth(-1)
	imgui.SliderFloatV("##Radius", &wc.Radius, 0.0005, 0.05, "radius %.4f", imgui.SliderFlagsNone)
	if imgui.IsItemHovered() {
		imgui.SetTooltip("Tube radius relative to the model size")
	}

	segments := int32(wc.Segments)
	imgui.SetNextItemWidth(-1)
	if imgui.SliderIntV("##Segments", &segments, 3, 32, "%d segments", imgui.SliderFlagsNone) {
		wc.Segments = int(segments)
	}

	imgui.BeginDisabledV(!wc.ShowVertices)
	imgui.SetNextItemWidth(-1)
	imgui.SliderFloatV("##VertexScale", &wc.VertexScale, 1, 10, "vertex size %.1fx", imgui.SliderFlagsNone)
	imgui.EndDisabled()

	imgui.ColorEdit4("Edge colour", &wc.Color)
}

// setWireframeOption applies an edge mode or degenerate policy and reverts
// it when the current model cannot be extracted with it.
func (g *gui) setWireframeOption(field *string, value string) {
	prev := *field
	*field = value
	if err := g.state.RebuildWireframe(); err != nil {
		*field = prev
	}
}

func (g *gui) renderMaterialSection() {
	mc := &g.state.Config.Material
	imgui.ColorEdit3("Albedo", &mc.Albedo)
	imgui.SetNextItemWidth(-1)
	imgui.SliderFloatV("##Specular", &mc.Specular, 0, 1, "specular %.2f", imgui.SliderFlagsNone)
	imgui.SetNextItemWidth(-1)
	imgui.SliderFloatV("##Shininess", &mc.Shininess, 1, 256, "shininess %.0f", imgui.SliderFlagsNone)
	imgui.ColorEdit4("Background", &g.state.Config.Graphics.ClearColor)
}

func (g *gui) renderLightingSection() {
	lc := &g.state.Config.Lighting
	imgui.ColorEdit3("Ambient", &lc.Ambient)
	imgui.ColorEdit3("Sun", &lc.SunColor)
	imgui.Checkbox("Headlight", &lc.HeadlightMode)
	if imgui.IsItemHovered() {
		imgui.SetTooltip("Light from the camera instead of the sun")
	}
	imgui.BeginDisabledV(lc.HeadlightMode)
	imgui.SetNextItemWidth(-1)
	imgui.SliderFloatV("##Azimuth", &lc.SunAzimuth, -180, 180, "azimuth %.0f", imgui.SliderFlagsNone)
	imgui.SetNextItemWidth(-1)
	imgui.SliderFloatV("##Elevation", &lc.SunElevation, -90, 90, "elevation %.0f", imgui.SliderFlagsNone)
	imgui.EndDisabled()
}

func (g *gui) renderCameraSection() {
	s := g.state
	cc := &s.Config.Camera

	imgui.SetNextItemWidth(-1)
	if imgui.SliderFloatV("##FOV", &cc.FOV, 10, 120, "fov %.0f", imgui.SliderFlagsNone) {
		s.Camera.FovY = cc.FOV * math.Pi / 180
	}
	imgui.Checkbox("Fit to model on load", &cc.FitToModel)
	if imgui.Button("Reset camera") {
		g.pending.ResetCamera = true
	}
	imgui.TextDisabled(fmt.Sprintf("Distance %.3g", s.Camera.Distance))
	imgui.TextDisabled("Drag: rotate, right drag: pan, wheel: zoom")
}
