package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestButtonState(t *testing.T) {
	in := New()
	in.push(Event{Type: EventMouseDown, Button: sdl.BUTTON_LEFT})
	if !in.IsButtonDown(sdl.BUTTON_LEFT) {
		t.Fatal("left button should be down")
	}
	if in.IsButtonDown(sdl.BUTTON_RIGHT) {
		t.Error("right button should be up")
	}
	in.push(Event{Type: EventMouseUp, Button: sdl.BUTTON_LEFT})
	if in.IsButtonDown(sdl.BUTTON_LEFT) {
		t.Error("left button should be released")
	}
}

func TestFrameAggregates(t *testing.T) {
	in := New()
	in.push(Event{Type: EventMouseMove, DeltaX: 3, DeltaY: -1})
	in.push(Event{Type: EventMouseMove, DeltaX: 2, DeltaY: 4})
	in.push(Event{Type: EventMouseWheel, Wheel: 1})
	in.push(Event{Type: EventMouseWheel, Wheel: 0.5})
	in.push(Event{Type: EventKeyDown, Key: sdl.SCANCODE_F12})
	in.push(Event{Type: EventDropFile, Path: "a.stl"})
	in.push(Event{Type: EventDropFile, Path: "b.obj"})

	if dx, dy := in.MouseDelta(); dx != 5 || dy != 3 {
		t.Errorf("MouseDelta: got (%d,%d), want (5,3)", dx, dy)
	}
	if w := in.WheelDelta(); w != 1.5 {
		t.Errorf("WheelDelta: got %v, want 1.5", w)
	}
	if !in.IsKeyPressed(sdl.SCANCODE_F12) {
		t.Error("F12 should be pressed")
	}
	if in.IsKeyPressed(sdl.SCANCODE_R) {
		t.Error("R should not be pressed")
	}
	if p, ok := in.DroppedFile(); !ok || p != "b.obj" {
		t.Errorf("DroppedFile: got (%q,%v), want (b.obj,true)", p, ok)
	}
}

func TestClicked(t *testing.T) {
	in := New()
	if _, _, ok := in.Clicked(sdl.BUTTON_LEFT); ok {
		t.Error("no click expected")
	}
	in.Inject(Event{Type: EventMouseDown, Button: sdl.BUTTON_RIGHT, MouseX: 1, MouseY: 2})
	in.Inject(Event{Type: EventMouseDown, Button: sdl.BUTTON_LEFT, MouseX: 30, MouseY: 40})
	if x, y, ok := in.Clicked(sdl.BUTTON_LEFT); !ok || x != 30 || y != 40 {
		t.Errorf("Clicked: got (%d,%d,%v)", x, y, ok)
	}
}
