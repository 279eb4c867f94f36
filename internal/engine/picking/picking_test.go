package picking

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestScreenToRayCenter(t *testing.T) {
	eye := mgl32.Vec3{0, 0, 5}
	view := mgl32.LookAtV(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 100)
	inv := proj.Mul4(view).Inv()

	r := ScreenToRay(50, 50, 100, 100, inv)
	want := mgl32.Vec3{0, 0, -1}
	for i := range want {
		if !approx(r.Direction[i], want[i]) {
			t.Fatalf("direction: got %v, want %v", r.Direction, want)
		}
	}
	if !approx(r.Origin[0], 0) || !approx(r.Origin[1], 0) || !approx(r.Origin[2], 4.9) {
		t.Errorf("origin: got %v, want near plane at z=4.9", r.Origin)
	}

	// Top of the viewport looks up.
	if up := ScreenToRay(50, 0, 100, 100, inv); up.Direction[1] <= 0 {
		t.Errorf("top ray should point up, got %v", up.Direction)
	}
}

func TestIntersectAABB(t *testing.T) {
	lo, hi := mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}

	tests := []struct {
		name  string
		ray   Ray
		wantT float32
		hit   bool
	}{
		{"front", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}}, 4, true},
		{"inside", Ray{mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}}, 1, true},
		{"miss", Ray{mgl32.Vec3{3, 0, 5}, mgl32.Vec3{0, 0, -1}}, 0, false},
		{"behind", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 1}}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(lo, hi)
			if hit != tt.hit || (hit && !approx(got, tt.wantT)) {
				t.Errorf("got (%v, %v), want (%v, %v)", got, hit, tt.wantT, tt.hit)
			}
		})
	}
}

func TestIntersectTriangle(t *testing.T) {
	a, b, c := mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}

	tests := []struct {
		name  string
		ray   Ray
		wantT float32
		hit   bool
	}{
		{"front face", Ray{mgl32.Vec3{0.25, 0.25, 2}, mgl32.Vec3{0, 0, -1}}, 2, true},
		{"back face", Ray{mgl32.Vec3{0.25, 0.25, -3}, mgl32.Vec3{0, 0, 1}}, 3, true},
		{"outside", Ray{mgl32.Vec3{0.8, 0.8, 2}, mgl32.Vec3{0, 0, -1}}, 0, false},
		{"parallel", Ray{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}}, 0, false},
		{"behind origin", Ray{mgl32.Vec3{0.25, 0.25, 2}, mgl32.Vec3{0, 0, 1}}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectTriangle(a, b, c)
			if hit != tt.hit || (hit && !approx(got, tt.wantT)) {
				t.Errorf("got (%v, %v), want (%v, %v)", got, hit, tt.wantT, tt.hit)
			}
		})
	}
}

func TestPickMesh(t *testing.T) {
	// Two parallel squares at z=0 and z=-1, each made of two triangles.
	positions := []mgl32.Vec3{
		{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0},
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	}
	triangles := [][3]uint32{
		{4, 5, 6}, {4, 6, 7}, // back square first
		{0, 1, 2}, {0, 2, 3},
	}
	lo, hi := mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 0}

	r := Ray{Origin: mgl32.Vec3{0.9, -0.8, 5}, Direction: mgl32.Vec3{0, 0, -1}}
	hit, ok := PickMesh(r, positions, triangles, lo, hi)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Triangle != 2 {
		t.Errorf("triangle: got %d, want 2 (nearest square)", hit.Triangle)
	}
	if hit.Vertex != 1 {
		t.Errorf("vertex: got %d, want 1", hit.Vertex)
	}
	if !approx(hit.Distance, 5) || !approx(hit.Point[2], 0) {
		t.Errorf("hit at %v (t=%v)", hit.Point, hit.Distance)
	}

	miss := Ray{Origin: mgl32.Vec3{5, 5, 5}, Direction: mgl32.Vec3{0, 0, -1}}
	if _, ok := PickMesh(miss, positions, triangles, lo, hi); ok {
		t.Error("expected a miss outside the bounds")
	}
}
