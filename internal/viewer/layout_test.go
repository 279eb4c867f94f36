package viewer

import "testing"

func TestSplitLayout(t *testing.T) {
	tests := []struct {
		name      string
		work      Rect
		panel     float32
		wantPanel Rect
		wantView  Rect
	}{
		{
			name:      "menu bar offset",
			work:      Rect{X: 0, Y: 20, W: 1280, H: 700},
			panel:     300,
			wantPanel: Rect{X: 0, Y: 20, W: 300, H: 700},
			wantView:  Rect{X: 300, Y: 20, W: 980, H: 700},
		},
		{
			name:      "panel clamped",
			work:      Rect{W: 200, H: 100},
			panel:     300,
			wantPanel: Rect{W: 136, H: 100},
			wantView:  Rect{X: 136, W: 64, H: 100},
		},
		{
			name:      "tiny window",
			work:      Rect{W: 50, H: 50},
			panel:     300,
			wantPanel: Rect{W: 0, H: 50},
			wantView:  Rect{W: 50, H: 50},
		},
		{
			name:      "negative panel",
			work:      Rect{W: 500, H: 400},
			panel:     -10,
			wantPanel: Rect{H: 400},
			wantView:  Rect{W: 500, H: 400},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			panel, view := splitLayout(tt.work, tt.panel)
			if panel != tt.wantPanel {
				t.Errorf("panel: got %+v, want %+v", panel, tt.wantPanel)
			}
			if view != tt.wantView {
				t.Errorf("view: got %+v, want %+v", view, tt.wantView)
			}
		})
	}
}
