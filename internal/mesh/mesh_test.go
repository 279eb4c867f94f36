package mesh

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshview/pkg/formats"
)

func quad() *Mesh {
	return &Mesh{
		Name:      "quad",
		Positions: []mgl32.Vec3{{0, 0, 0}, {2, 0, 0}, {2, 2, 0}, {0, 2, 0}},
		Triangles: [][3]uint32{{0, 1, 2}, {0, 2, 3}},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mesh    *Mesh
		wantErr error
	}{
		{"ok", quad(), nil},
		{"empty", &Mesh{Positions: []mgl32.Vec3{{0, 0, 0}}}, ErrEmptyMesh},
		{"bad index", &Mesh{Positions: []mgl32.Vec3{{0, 0, 0}}, Triangles: [][3]uint32{{0, 0, 1}}}, ErrInvalidIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mesh.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBoundsCenterRadius(t *testing.T) {
	m := quad()
	b := m.Bounds()
	if b.Min != (mgl32.Vec3{0, 0, 0}) || b.Max != (mgl32.Vec3{2, 2, 0}) {
		t.Errorf("bounds: got %v..%v", b.Min, b.Max)
	}
	if got := m.Center(); got != (mgl32.Vec3{1, 1, 0}) {
		t.Errorf("center: got %v", got)
	}
	if got, want := m.Radius(), float32(1.4142135); got < want-1e-5 || got > want+1e-5 {
		t.Errorf("radius: got %v, want %v", got, want)
	}
	if got := (&Mesh{}).Bounds(); got != (Bounds{}) {
		t.Errorf("empty bounds: got %v", got)
	}
}

func TestComputeNormals(t *testing.T) {
	m := quad()
	m.Positions = append(m.Positions, mgl32.Vec3{5, 5, 5}) // unused
	m.ComputeNormals()

	if len(m.Normals) != len(m.Positions) {
		t.Fatalf("got %d normals for %d positions", len(m.Normals), len(m.Positions))
	}
	for i := 0; i < 4; i++ {
		if !m.Normals[i].ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-6) {
			t.Errorf("normal %d: got %v, want (0,0,1)", i, m.Normals[i])
		}
	}
	if m.Normals[4] != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("unused vertex normal: got %v", m.Normals[4])
	}
}

func TestInterleave(t *testing.T) {
	m := quad()
	data := m.Interleave()
	if want := len(m.Triangles) * 3 * VertexStride; len(data) != want {
		t.Fatalf("got %d floats, want %d", len(data), want)
	}
	// Third corner of the first triangle is (2,2,0) with normal +Z.
	corner := data[2*VertexStride : 3*VertexStride]
	want := []float32{2, 2, 0, 0, 0, 1}
	for i := range want {
		if corner[i] != want[i] {
			t.Errorf("corner[%d]: got %v, want %v", i, corner[i], want[i])
		}
	}
}

func TestAppend(t *testing.T) {
	m := quad()
	m.Append(quad())
	if len(m.Positions) != 8 || len(m.Triangles) != 4 {
		t.Fatalf("got %d positions / %d triangles", len(m.Positions), len(m.Triangles))
	}
	if m.Triangles[2] != [3]uint32{4, 5, 6} {
		t.Errorf("offset triangle: got %v", m.Triangles[2])
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	objPath := filepath.Join(dir, "square.obj")
	obj := "o Square\nv 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n"
	if err := os.WriteFile(objPath, []byte(obj), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(objPath)
	if err != nil {
		t.Fatalf("Load obj: %v", err)
	}
	if m.Name != "Square" || len(m.Triangles) != 2 || len(m.Positions) != 4 {
		t.Errorf("obj: got name=%q triangles=%d positions=%d", m.Name, len(m.Triangles), len(m.Positions))
	}

	stlPath := filepath.Join(dir, "soup.stl")
	f, err := os.Create(stlPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := formats.WriteBinarySTL(f, "soup", m.TriangleSoup()); err != nil {
		t.Fatal(err)
	}
	f.Close()

	s, err := Load(stlPath)
	if err != nil {
		t.Fatalf("Load stl: %v", err)
	}
	if s.Name != "soup" || len(s.Triangles) != 2 || len(s.Positions) != 4 {
		t.Errorf("stl: got name=%q triangles=%d positions=%d", s.Name, len(s.Triangles), len(s.Positions))
	}

	if _, err := Load(filepath.Join(dir, "model.fbx")); !errors.Is(err, formats.ErrUnsupportedFormat) {
		t.Errorf("fbx: got %v, want ErrUnsupportedFormat", err)
	}
}
