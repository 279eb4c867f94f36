package viewer

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/debug"
	"github.com/Faultbox/meshview/internal/engine/renderer"
)

// session holds what both frontends share once a GL context exists.
type session struct {
	state    *State
	renderer *renderer.Renderer
	shots    *debug.ScreenshotCapture
	watcher  *Watcher
	title    string
}

func newSession(s *State) (*session, error) {
	r, err := renderer.New(s.Config.Wireframe.Segments)
	if err != nil {
		return nil, err
	}
	ss := &session{
		state:    s,
		renderer: r,
		shots:    s.newScreenshotCapture(),
	}

	if path := s.Config.Model.Path; path != "" {
		// Failure is reported in the status line; the viewer still opens.
		_ = s.LoadModel(path)
	}
	return ss, nil
}

// syncWatcher follows the loaded model with a file watcher when enabled.
func (ss *session) syncWatcher() {
	cfg := ss.state.Config.Model
	want := ""
	if cfg.Watch && ss.state.Mesh != nil && cfg.Path != "" {
		if abs, err := filepath.Abs(cfg.Path); err == nil {
			want = abs
		}
	}

	if ss.watcher != nil && ss.watcher.Path() == want {
		return
	}
	if ss.watcher != nil {
		ss.watcher.Close()
		ss.watcher = nil
	}
	if want == "" {
		return
	}

	w, err := NewWatcher(want, DefaultDebounce, ss.state.RequestLoad)
	if err != nil {
		ss.state.log.Warn("cannot watch model", zap.String("path", want), zap.Error(err))
		// Stop retrying every frame.
		ss.state.Config.Model.Watch = false
		return
	}
	ss.watcher = w
}

// titleChanged returns the window title when it differs from the last one.
func (ss *session) titleChanged() (string, bool) {
	t := ss.state.Title()
	if t == ss.title {
		return "", false
	}
	ss.title = t
	return t, true
}

func (ss *session) close() {
	if ss.watcher != nil {
		ss.watcher.Close()
	}
	ss.renderer.Close()
}
