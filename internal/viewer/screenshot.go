package viewer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/debug"
)

// newScreenshotCapture writes into the configured directory.
func (s *State) newScreenshotCapture() *debug.ScreenshotCapture {
	return debug.NewScreenshotCapture(s.Config.Screenshots.Dir, "meshview")
}

// SaveScreenshot writes bottom-up RGBA pixels as a PNG and reports the
// result through the status line.
func (s *State) SaveScreenshot(shots *debug.ScreenshotCapture, pixels []byte, width, height int) (string, error) {
	shots.SetOutputDir(s.Config.Screenshots.Dir)
	path, err := shots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		return "", s.fail(fmt.Errorf("saving screenshot: %w", err))
	}
	s.log.Info("screenshot saved", zap.String("path", path))
	s.SetStatus("Saved "+path, false)
	return path, nil
}
