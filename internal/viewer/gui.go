package viewer

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/framebuffer"
	"github.com/Faultbox/meshview/internal/engine/renderer"
	"github.com/Faultbox/meshview/internal/engine/ui"
)

// gui is the frontend with the configuration panel. The scene is drawn
// into an offscreen framebuffer and shown as an image next to the panel.
type gui struct {
	*session
	backend *ui.Backend
	fb      *framebuffer.Framebuffer

	// Input gathered over the view image, applied on the next frame.
	pending      FrameInput
	lastMousePos imgui.Vec2
}

// RunGUI opens the window and blocks until it is closed.
func RunGUI(s *State) error {
	gc := s.Config.Graphics
	backend, err := ui.NewBackend(s.Title(), gc.Width, gc.Height, gc.ClearColor)
	if err != nil {
		return err
	}

	ss, err := newSession(s)
	if err != nil {
		return err
	}
	defer ss.close()

	fb, err := framebuffer.New(1, 1)
	if err != nil {
		return err
	}
	defer fb.Destroy()

	g := &gui{session: ss, backend: backend, fb: fb}
	s.log.Info("starting GUI", zap.Int("panel_width", gc.PanelWidth))
	backend.Run(g.render)
	return nil
}

func (g *gui) render() {
	s := g.state

	if !ui.WantsKeyboard() {
		if ui.IsKeyPressed(imgui.KeyF12) {
			g.pending.Screenshot = true
		}
		if ui.IsKeyPressed(imgui.KeyR) {
			g.pending.ResetCamera = true
		}
	}

	g.renderMenuBar()

	x, y, w, h := ui.WorkArea()
	panel, view := splitLayout(Rect{X: x, Y: y, W: w, H: h}, float32(s.Config.Graphics.PanelWidth))

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(imgui.NewVec2(panel.X, panel.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(panel.W, panel.H))
	if imgui.BeginV("Configuration Panel", nil, flags) {
		g.renderPanel()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(view.X, view.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(view.W, view.H))
	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	viewFlags := flags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoScrollWithMouse | imgui.WindowFlagsNoBringToFrontOnFocus
	if imgui.BeginV("View", nil, viewFlags) {
		g.renderView()
	}
	imgui.End()
	imgui.PopStyleVar()

	g.syncWatcher()
	if title, ok := g.titleChanged(); ok {
		g.backend.SetWindowTitle(title)
	}
}

func (g *gui) renderMenuBar() {
	if imgui.BeginMainMenuBar() {
		if imgui.BeginMenu("File") {
			if imgui.MenuItemBool("Open model...") {
				g.openFileDialog()
			}
			if imgui.MenuItemBool("Save config") {
				g.saveConfig()
			}
			imgui.Separator()
			if imgui.MenuItemBool("Screenshot (F12)") {
				g.pending.Screenshot = true
			}
			imgui.EndMenu()
		}
		if imgui.BeginMenu("View") {
			if imgui.MenuItemBool("Reset camera (R)") {
				g.pending.ResetCamera = true
			}
			imgui.EndMenu()
		}
		imgui.EndMainMenuBar()
	}
}

// renderView draws the scene into the framebuffer and shows it.
func (g *gui) renderView() {
	avail := imgui.ContentRegionAvail()
	if avail.X < 1 || avail.Y < 1 {
		return
	}

	scale := ui.FramebufferScale()
	width, height := int32(avail.X*scale), int32(avail.Y*scale)
	g.fb.Resize(width, height)

	in := g.pending
	g.pending = FrameInput{}
	in.Viewport = renderer.Viewport{Width: width, Height: height}

	restore := g.fb.BindWithViewport()
	res := g.state.Frame(g.renderer, in)
	if res.Screenshot {
		w, h := g.fb.Size()
		_, _ = g.state.SaveScreenshot(g.shots, g.fb.ReadPixels(), int(w), int(h))
	}
	restore()

	origin := imgui.CursorScreenPos()
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(g.fb.ColorTexture()))
	imgui.ImageWithBgV(
		*texRef,
		avail,
		imgui.NewVec2(0, 1), // GL textures are bottom-up
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0, 0, 0, 1),
		imgui.NewVec4(1, 1, 1, 1),
	)

	if imgui.IsItemHovered() {
		mousePos := imgui.MousePos()
		dx := mousePos.X - g.lastMousePos.X
		dy := mousePos.Y - g.lastMousePos.Y
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			g.pending.DragX += dx
			g.pending.DragY += dy
		}
		if imgui.IsMouseDragging(imgui.MouseButtonRight) || imgui.IsMouseDragging(imgui.MouseButtonMiddle) {
			g.pending.PanX += dx
			g.pending.PanY += dy
		}
		g.lastMousePos = mousePos

		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			g.pending.Wheel += wheel
		}

		if imgui.IsMouseClickedBool(imgui.MouseButtonLeft) {
			g.pending.Pick = true
			g.pending.PickU = (mousePos.X - origin.X) / avail.X
			g.pending.PickV = (mousePos.Y - origin.Y) / avail.Y
		}
	}
}

// openFileDialog shows a native file dialog. SDL window operations must
// stay on the main thread, so the choice is queued for the next frame.
func (g *gui) openFileDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Meshes", "stl", "obj").
			Filter("All Files", "*").
			Title("Select a model").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				g.state.log.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		g.state.RequestLoad(filename)
	}()
}

func (g *gui) saveConfig() {
	path, err := g.state.Config.Save()
	if err != nil {
		_ = g.state.fail(err)
		return
	}
	g.state.log.Info("config saved", zap.String("path", path))
	g.state.SetStatus("Config saved to "+path, false)
}
