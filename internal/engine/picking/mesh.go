package picking

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Hit is the closest triangle under a ray.
type Hit struct {
	Triangle int
	Vertex   uint32 // Corner of Triangle nearest to Point
	Distance float32
	Point    mgl32.Vec3
}

// PickMesh returns the nearest triangle hit by r. Indices must already be
// validated against positions.
func PickMesh(r Ray, positions []mgl32.Vec3, triangles [][3]uint32, lo, hi mgl32.Vec3) (Hit, bool) {
	if _, ok := r.IntersectAABB(lo, hi); !ok {
		return Hit{}, false
	}

	best := Hit{Triangle: -1}
	for i, tri := range triangles {
		t, ok := r.IntersectTriangle(positions[tri[0]], positions[tri[1]], positions[tri[2]])
		if !ok || (best.Triangle >= 0 && t >= best.Distance) {
			continue
		}
		best = Hit{Triangle: i, Distance: t}
	}
	if best.Triangle < 0 {
		return Hit{}, false
	}

	best.Point = r.At(best.Distance)
	tri := triangles[best.Triangle]
	nearest := float32(-1)
	for _, idx := range tri {
		d := positions[idx].Sub(best.Point).Len()
		if nearest < 0 || d < nearest {
			nearest = d
			best.Vertex = idx
		}
	}
	return best, true
}
