package viewer

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/input"
	"github.com/Faultbox/meshview/internal/engine/renderer"
	"github.com/Faultbox/meshview/internal/engine/window"
	"github.com/Faultbox/meshview/internal/wireframe"
)

// RunPlain opens a bare SDL window without the panel and blocks until it
// is closed. The mouse orbits the camera and keys toggle the overlays.
func RunPlain(s *State) error {
	gc := s.Config.Graphics
	win, err := window.New(window.Config{
		Title:       s.Title(),
		Width:       gc.Width,
		Height:      gc.Height,
		Fullscreen:  gc.Fullscreen,
		VSync:       gc.VSync,
		MSAASamples: gc.MSAASamples,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	if err := renderer.Init(); err != nil {
		return err
	}

	ss, err := newSession(s)
	if err != nil {
		return err
	}
	defer ss.close()

	in := input.New()
	s.log.Info("starting plain viewer")

	for {
		if in.Update() || in.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
			return nil
		}

		fi := plainFrameInput(in)
		handlePlainToggles(s, in)

		width, height := win.DrawableSize()
		fi.Viewport = renderer.Viewport{Width: int32(width), Height: int32(height)}
		if x, y, ok := in.Clicked(sdl.BUTTON_LEFT); ok {
			ww, wh := win.GetSize()
			fi.Pick = true
			fi.PickU, fi.PickV = float32(x)/float32(ww), float32(y)/float32(wh)
		}

		res := s.Frame(ss.renderer, fi)
		if res.Screenshot {
			_, _ = s.SaveScreenshot(ss.shots, renderer.ReadPixels(fi.Viewport), width, height)
		}

		ss.syncWatcher()
		if title, ok := ss.titleChanged(); ok {
			win.SetTitle(title)
		}
		win.SwapBuffers()
	}
}

// plainFrameInput converts this frame's SDL events into camera input.
func plainFrameInput(in *input.Input) FrameInput {
	var fi FrameInput

	dx, dy := in.MouseDelta()
	switch {
	case in.IsButtonDown(sdl.BUTTON_LEFT):
		fi.DragX, fi.DragY = float32(dx), float32(dy)
	case in.IsButtonDown(sdl.BUTTON_RIGHT), in.IsButtonDown(sdl.BUTTON_MIDDLE):
		fi.PanX, fi.PanY = float32(dx), float32(dy)
	}
	fi.Wheel = in.WheelDelta()

	axis := func(neg, pos sdl.Scancode) float32 {
		var v float32
		if in.IsKeyPressed(neg) {
			v--
		}
		if in.IsKeyPressed(pos) {
			v++
		}
		return v
	}
	fi.Forward = axis(sdl.SCANCODE_DOWN, sdl.SCANCODE_UP)
	fi.Right = axis(sdl.SCANCODE_LEFT, sdl.SCANCODE_RIGHT)
	fi.Up = axis(sdl.SCANCODE_PAGEDOWN, sdl.SCANCODE_PAGEUP)

	fi.ResetCamera = in.IsKeyPressed(sdl.SCANCODE_R)
	fi.Screenshot = in.IsKeyPressed(sdl.SCANCODE_F12)
	if path, ok := in.DroppedFile(); ok {
		fi.DroppedFile = path
	}
	return fi
}

func handlePlainToggles(s *State, in *input.Input) {
	wc := &s.Config.Wireframe
	if in.IsKeyPressed(sdl.SCANCODE_W) {
		wc.Enabled = !wc.Enabled
	}
	if in.IsKeyPressed(sdl.SCANCODE_F) {
		wc.ShowSurface = !wc.ShowSurface
	}
	if in.IsKeyPressed(sdl.SCANCODE_V) {
		wc.ShowVertices = !wc.ShowVertices
	}
	if in.IsKeyPressed(sdl.SCANCODE_B) {
		wc.ShowBounds = !wc.ShowBounds
	}
	if in.IsKeyPressed(sdl.SCANCODE_M) {
		mode, _ := wireframe.ParseEdgeMode(wc.EdgeMode)
		next := wireframe.EdgeModeUnique
		if mode == wireframe.EdgeModeUnique {
			next = wireframe.EdgeModeCanonical
		}
		prev := wc.EdgeMode
		wc.EdgeMode = next.String()
		if err := s.RebuildWireframe(); err != nil {
			wc.EdgeMode = prev
			return
		}
		s.log.Info("edge mode changed", zap.Stringer("mode", next))
	}
}
