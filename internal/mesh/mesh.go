// Package mesh holds the indexed triangle mesh shared by the viewer, the
// wireframe extractor and the command line tool.
package mesh

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshview/internal/wireframe"
	"github.com/Faultbox/meshview/pkg/formats"
)

// Mesh errors.
var (
	ErrEmptyMesh    = errors.New("mesh has no triangles")
	ErrInvalidIndex = wireframe.ErrInvalidIndex
)

// Mesh is an ordered list of positions and the triangles indexing them.
// Normals is either empty or one entry per position.
type Mesh struct {
	Name      string
	Positions []mgl32.Vec3
	Triangles [][3]uint32
	Normals   []mgl32.Vec3
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max mgl32.Vec3
}

// Size returns the box extent on each axis.
func (b Bounds) Size() mgl32.Vec3 { return b.Max.Sub(b.Min) }

// Center returns the box midpoint.
func (b Bounds) Center() mgl32.Vec3 { return b.Min.Add(b.Max).Mul(0.5) }

// Load reads a mesh file, choosing the parser from the extension.
func Load(path string) (*Mesh, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	switch formats.DetectFormat(path) {
	case formats.FormatSTL:
		s, err := formats.ParseSTLFile(path)
		if err != nil {
			return nil, err
		}
		return FromArrays(name, s.Vertices, s.Triangles), nil

	case formats.FormatOBJ:
		o, err := formats.ParseOBJFile(path)
		if err != nil {
			return nil, err
		}
		if o.Name != "" {
			name = o.Name
		}
		return FromArrays(name, o.Vertices, o.Triangles), nil

	default:
		return nil, fmt.Errorf("%w: %s", formats.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// FromArrays builds a mesh from parser output.
func FromArrays(name string, vertices [][3]float32, triangles [][3]uint32) *Mesh {
	m := &Mesh{
		Name:      name,
		Positions: make([]mgl32.Vec3, len(vertices)),
		Triangles: triangles,
	}
	for i, v := range vertices {
		m.Positions[i] = mgl32.Vec3(v)
	}
	return m
}

// Validate reports meshes that cannot be drawn or extracted.
func (m *Mesh) Validate() error {
	if len(m.Triangles) == 0 {
		return ErrEmptyMesh
	}
	return wireframe.ValidateIndices(len(m.Positions), m.Triangles)
}

// Bounds returns the box around all positions. An empty mesh has a zero box.
func (m *Mesh) Bounds() Bounds {
	if len(m.Positions) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Positions[0], Max: m.Positions[0]}
	for _, p := range m.Positions[1:] {
		for c := 0; c < 3; c++ {
			b.Min[c] = min(b.Min[c], p[c])
			b.Max[c] = max(b.Max[c], p[c])
		}
	}
	return b
}

// Center returns the midpoint of the bounding box.
func (m *Mesh) Center() mgl32.Vec3 {
	return m.Bounds().Center()
}

// Radius returns the largest distance from Center to any position.
func (m *Mesh) Radius() float32 {
	c := m.Center()
	var r float32
	for _, p := range m.Positions {
		r = max(r, p.Sub(c).Len())
	}
	return r
}

// ComputeNormals fills Normals with area-weighted vertex normals.
// Vertices not used by any triangle get +Y.
func (m *Mesh) ComputeNormals() {
	normals := make([]mgl32.Vec3, len(m.Positions))
	for _, tri := range m.Triangles {
		if int(max(tri[0], tri[1], tri[2])) >= len(m.Positions) {
			continue
		}
		p0, p1, p2 := m.Positions[tri[0]], m.Positions[tri[1]], m.Positions[tri[2]]
		// Unnormalized cross product: length is twice the triangle area.
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		for _, idx := range tri {
			normals[idx] = normals[idx].Add(n)
		}
	}
	for i, n := range normals {
		if l := n.Len(); l > 0 && !math.IsInf(float64(l), 0) {
			normals[i] = n.Mul(1 / l)
		} else {
			normals[i] = mgl32.Vec3{0, 1, 0}
		}
	}
	m.Normals = normals
}

// VertexStride is the number of floats per interleaved vertex.
const VertexStride = 6

// Interleave expands the indexed mesh into a flat position+normal array
// with three vertices per triangle, ready for a DrawArrays upload.
// Normals are computed first if missing.
func (m *Mesh) Interleave() []float32 {
	if len(m.Normals) != len(m.Positions) {
		m.ComputeNormals()
	}
	out := make([]float32, 0, len(m.Triangles)*3*VertexStride)
	for _, tri := range m.Triangles {
		for _, idx := range tri {
			p, n := m.Positions[idx], m.Normals[idx]
			out = append(out, p[0], p[1], p[2], n[0], n[1], n[2])
		}
	}
	return out
}

// TriangleSoup returns the corner positions of every triangle.
func (m *Mesh) TriangleSoup() [][3][3]float32 {
	out := make([][3][3]float32, len(m.Triangles))
	for i, tri := range m.Triangles {
		for c, idx := range tri {
			out[i][c] = m.Positions[idx]
		}
	}
	return out
}

// Append adds other's triangles to m, offsetting indices.
func (m *Mesh) Append(other *Mesh) {
	base := uint32(len(m.Positions))
	m.Positions = append(m.Positions, other.Positions...)
	for _, tri := range other.Triangles {
		m.Triangles = append(m.Triangles, [3]uint32{tri[0] + base, tri[1] + base, tri[2] + base})
	}
	m.Normals = nil
}
