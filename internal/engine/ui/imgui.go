// Package ui provides the ImGui backend that hosts the configuration panel.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/renderer"
	"github.com/Faultbox/meshview/internal/logger"
)

// Backend wraps the ImGui SDL backend.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	log     *zap.Logger
}

// NewBackend creates the window and OpenGL context and loads GL functions.
func NewBackend(title string, width, height int, bg [4]float32) (*Backend, error) {
	b := &Backend{log: logger.Named("ui")}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetAfterCreateContextHook(func() {
		imgui.StyleColorsDark()
	})

	b.backend.SetBgColor(imgui.NewVec4(bg[0], bg[1], bg[2], bg[3]))
	b.backend.CreateWindow(title, width, height)

	if err := renderer.Init(); err != nil {
		return nil, err
	}

	b.log.Info("imgui backend created",
		zap.String("title", title),
		zap.Int("width", width),
		zap.Int("height", height),
	)
	return b, nil
}

// Run starts the main render loop.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// SetBgColor changes the colour the backend clears the window with.
func (b *Backend) SetBgColor(c [4]float32) {
	b.backend.SetBgColor(imgui.NewVec4(c[0], c[1], c[2], c[3]))
}

// WorkArea returns the main viewport work area in logical pixels.
func WorkArea() (posX, posY, width, height float32) {
	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	return workPos.X, workPos.Y, workSize.X, workSize.Y
}

// FramebufferScale returns the logical-to-pixel scale of the display.
func FramebufferScale() float32 {
	s := imgui.CurrentIO().DisplayFramebufferScale()
	if s.X <= 0 {
		return 1
	}
	return s.X
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}

// IsKeyDown checks if a key is currently held down.
func IsKeyDown(key imgui.Key) bool {
	return imgui.IsKeyDown(key)
}

// WantsKeyboard reports whether a widget has keyboard focus, in which case
// viewer shortcuts should be ignored.
func WantsKeyboard() bool {
	return imgui.IsAnyItemActive()
}
