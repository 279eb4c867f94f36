// Package primitive generates the unit meshes drawn once per wireframe
// instance.
package primitive

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshview/internal/mesh"
)

// Minimum tessellation accepted by the generators.
const (
	MinSegments = 3
	MinRings    = 2
)

// Cylinder returns an open cylinder of radius 1 running along +X from
// x=0 to x=1. Normals point radially outward.
func Cylinder(segments int) *mesh.Mesh {
	segments = max(segments, MinSegments)

	m := &mesh.Mesh{
		Name:      "cylinder",
		Positions: make([]mgl32.Vec3, 0, 2*segments),
		Normals:   make([]mgl32.Vec3, 0, 2*segments),
		Triangles: make([][3]uint32, 0, 2*segments),
	}

	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		y, z := float32(math.Cos(a)), float32(math.Sin(a))
		n := mgl32.Vec3{0, y, z}
		m.Positions = append(m.Positions, mgl32.Vec3{0, y, z}, mgl32.Vec3{1, y, z})
		m.Normals = append(m.Normals, n, n)
	}

	// Ring i uses vertices 2i (x=0) and 2i+1 (x=1). Winding is
	// counter-clockwise seen from outside.
	for i := 0; i < segments; i++ {
		j := (i + 1) % segments
		b0, t0 := uint32(2*i), uint32(2*i+1)
		b1, t1 := uint32(2*j), uint32(2*j+1)
		m.Triangles = append(m.Triangles,
			[3]uint32{b0, b1, t0},
			[3]uint32{t0, b1, t1},
		)
	}
	return m
}

// Sphere returns a UV sphere of radius 1 centred on the origin.
func Sphere(rings, segments int) *mesh.Mesh {
	rings = max(rings, MinRings)
	segments = max(segments, MinSegments)

	m := &mesh.Mesh{Name: "sphere"}

	for r := 0; r <= rings; r++ {
		phi := math.Pi * float64(r) / float64(rings)
		y := float32(math.Cos(phi))
		ring := float32(math.Sin(phi))
		for s := 0; s <= segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(segments)
			p := mgl32.Vec3{
				ring * float32(math.Cos(theta)),
				y,
				ring * float32(math.Sin(theta)),
			}
			m.Positions = append(m.Positions, p)
			m.Normals = append(m.Normals, p)
		}
	}

	stride := uint32(segments + 1)
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a := uint32(r)*stride + uint32(s)
			b := a + stride
			if r != 0 {
				m.Triangles = append(m.Triangles, [3]uint32{a, a + 1, b})
			}
			if r != rings-1 {
				m.Triangles = append(m.Triangles, [3]uint32{a + 1, b + 1, b})
			}
		}
	}
	return m
}

// Apply returns a copy of m with every position transformed by t.
// Normals are transformed by the inverse transpose when present and t is
// invertible; otherwise they are dropped.
func Apply(m *mesh.Mesh, t mgl32.Mat4) *mesh.Mesh {
	out := &mesh.Mesh{
		Name:      m.Name,
		Positions: make([]mgl32.Vec3, len(m.Positions)),
		Triangles: append([][3]uint32(nil), m.Triangles...),
	}
	for i, p := range m.Positions {
		out.Positions[i] = mgl32.TransformCoordinate(p, t)
	}

	if len(m.Normals) == len(m.Positions) && t.Det() != 0 {
		nm := t.Mat3().Inv().Transpose()
		out.Normals = make([]mgl32.Vec3, len(m.Normals))
		for i, n := range m.Normals {
			out.Normals[i] = nm.Mul3x1(n).Normalize()
		}
	}
	return out
}

// Instance bakes one copy of the reference mesh per transform into a
// single mesh.
func Instance(ref *mesh.Mesh, transforms []mgl32.Mat4) *mesh.Mesh {
	out := &mesh.Mesh{
		Name:      ref.Name,
		Positions: make([]mgl32.Vec3, 0, len(ref.Positions)*len(transforms)),
		Triangles: make([][3]uint32, 0, len(ref.Triangles)*len(transforms)),
	}
	for _, t := range transforms {
		out.Append(Apply(ref, t))
	}
	return out
}
