package formats

import (
	"errors"
	"testing"
)

func TestParseOBJ_Quad(t *testing.T) {
	src := `# unit quad
o Plane
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
vt 0 0
f 1/1/1 2/1/1 3/1/1 4/1/1
`
	o, err := ParseOBJ([]byte(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if o.Name != "Plane" {
		t.Errorf("name: got %q, want Plane", o.Name)
	}
	if len(o.Vertices) != 4 {
		t.Errorf("vertices: got %d, want 4", len(o.Vertices))
	}
	if o.Polygons != 1 {
		t.Errorf("polygons: got %d, want 1", o.Polygons)
	}
	want := [][3]uint32{{0, 1, 2}, {0, 2, 3}}
	if len(o.Triangles) != len(want) {
		t.Fatalf("triangles: got %d, want %d", len(o.Triangles), len(want))
	}
	for i := range want {
		if o.Triangles[i] != want[i] {
			t.Errorf("triangle %d: got %v, want %v", i, o.Triangles[i], want[i])
		}
	}
}

func TestParseOBJ_RelativeIndices(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\nv 0 0 1\nf -4//1 -1//1 -2//1\n"
	o, err := ParseOBJ([]byte(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	want := [][3]uint32{{0, 1, 2}, {0, 3, 2}}
	for i := range want {
		if o.Triangles[i] != want[i] {
			t.Errorf("triangle %d: got %v, want %v", i, o.Triangles[i], want[i])
		}
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"short vertex", "v 1 2\n"},
		{"bad coordinate", "v 1 x 2\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"relative before start", "v 0 0 0\nf -1 -2 -3\n"},
		{"two corner face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"garbage index", "v 0 0 0\nf a b c\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ([]byte(tt.src))
			if !errors.Is(err, ErrInvalidOBJData) {
				t.Errorf("got error %v, want ErrInvalidOBJData", err)
			}
		})
	}
}

func TestParseOBJ_ForwardReferenceLeftForValidation(t *testing.T) {
	o, err := ParseOBJ([]byte("v 0 0 0\nf 1 2 9\n"))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if o.Triangles[0] != [3]uint32{0, 1, 8} {
		t.Errorf("triangle: got %v, want [0 1 8]", o.Triangles[0])
	}
}
