// Package wireframe turns triangle meshes into per-edge instance transforms.
//
// Each transform maps a reference primitive lying on the X axis from x=0 to
// x=1 onto one mesh edge, so a single cylinder can be drawn once per edge
// with instanced rendering.
package wireframe

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Extraction errors.
var (
	ErrInvalidIndex   = errors.New("triangle index out of range")
	ErrDegenerateEdge = errors.New("degenerate edge")
	ErrNonFiniteEdge  = errors.New("non-finite edge")
)

// Edge is an ordered pair of vertex indices.
type Edge struct {
	A, B uint32
}

// EdgeMode selects which triangle edges produce instances.
type EdgeMode int

const (
	// EdgeModeCanonical keeps an edge slot (x, y) only when x < y. On a
	// consistently wound closed mesh every shared edge appears once this way.
	EdgeModeCanonical EdgeMode = iota
	// EdgeModeUnique keeps each unordered index pair exactly once, in
	// first-seen order, oriented from the lower index to the higher one.
	EdgeModeUnique
)

func (m EdgeMode) String() string {
	switch m {
	case EdgeModeCanonical:
		return "canonical"
	case EdgeModeUnique:
		return "unique"
	default:
		return fmt.Sprintf("EdgeMode(%d)", int(m))
	}
}

// ParseEdgeMode parses "canonical" or "unique". An empty string is canonical.
func ParseEdgeMode(s string) (EdgeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "canonical":
		return EdgeModeCanonical, nil
	case "unique":
		return EdgeModeUnique, nil
	default:
		return 0, fmt.Errorf("unknown edge mode %q", s)
	}
}

// DegeneratePolicy decides what happens to an edge whose endpoints coincide.
// Edges without a finite transform are dropped by DegenerateSkip and
// rejected with ErrNonFiniteEdge otherwise.
type DegeneratePolicy int

const (
	// DegenerateReject fails the whole extraction with ErrDegenerateEdge.
	DegenerateReject DegeneratePolicy = iota
	// DegenerateSkip drops the edge.
	DegenerateSkip
	// DegenerateIdentity emits a translation to the point with a zero
	// length along the primary axis and no rotation.
	DegenerateIdentity
)

func (p DegeneratePolicy) String() string {
	switch p {
	case DegenerateReject:
		return "reject"
	case DegenerateSkip:
		return "skip"
	case DegenerateIdentity:
		return "identity"
	default:
		return fmt.Sprintf("DegeneratePolicy(%d)", int(p))
	}
}

// ParseDegeneratePolicy parses "reject", "skip" or "identity". An empty
// string is reject.
func ParseDegeneratePolicy(s string) (DegeneratePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return DegenerateReject, nil
	case "skip":
		return DegenerateSkip, nil
	case "identity":
		return DegenerateIdentity, nil
	default:
		return 0, fmt.Errorf("unknown degenerate policy %q", s)
	}
}

// Options controls extraction. The zero value is canonical mode with
// degenerate edges rejected.
type Options struct {
	Mode       EdgeMode
	Degenerate DegeneratePolicy
}

// IndexError reports a triangle that references a missing vertex.
type IndexError struct {
	Triangle    int
	Index       uint32
	VertexCount int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("triangle %d: index %d out of range [0, %d)", e.Triangle, e.Index, e.VertexCount)
}

func (e *IndexError) Unwrap() error { return ErrInvalidIndex }

// DegenerateEdgeError reports an edge whose endpoints are the same point.
type DegenerateEdgeError struct {
	Triangle int
	Edge     Edge
	Point    mgl32.Vec3
}

func (e *DegenerateEdgeError) Error() string {
	return fmt.Sprintf("triangle %d: edge %d-%d has zero length at (%g, %g, %g)",
		e.Triangle, e.Edge.A, e.Edge.B, e.Point[0], e.Point[1], e.Point[2])
}

func (e *DegenerateEdgeError) Unwrap() error { return ErrDegenerateEdge }

// NonFiniteEdgeError reports an edge with a NaN or infinite endpoint, or one
// too long for its transform to fit in float32.
type NonFiniteEdgeError struct {
	Triangle int
	Edge     Edge
	P1, P2   mgl32.Vec3
}

func (e *NonFiniteEdgeError) Error() string {
	return fmt.Sprintf("triangle %d: edge %d-%d from %v to %v has no finite transform",
		e.Triangle, e.Edge.A, e.Edge.B, e.P1, e.P2)
}

func (e *NonFiniteEdgeError) Unwrap() error { return ErrNonFiniteEdge }

// Result holds the edges kept by an extraction and their transforms.
// Edges[i] produced Transforms[i], except that edges dropped by
// DegenerateSkip appear in neither.
type Result struct {
	Edges      []Edge
	Transforms []mgl32.Mat4
}

// Len returns the number of instances.
func (r *Result) Len() int { return len(r.Transforms) }

// ExtractEdgeTransforms returns one transform per canonical edge, rejecting
// meshes with out-of-range indices, zero-length edges or edges without a
// finite transform.
func ExtractEdgeTransforms(positions []mgl32.Vec3, triangles [][3]uint32) ([]mgl32.Mat4, error) {
	res, err := Extract(positions, triangles, Options{})
	if err != nil {
		return nil, err
	}
	return res.Transforms, nil
}

// Extract validates every triangle index, then builds transforms for the
// edges selected by opts.Mode in triangle-then-slot order.
func Extract(positions []mgl32.Vec3, triangles [][3]uint32, opts Options) (*Result, error) {
	if err := ValidateIndices(len(positions), triangles); err != nil {
		return nil, err
	}

	res := &Result{
		Edges:      make([]Edge, 0, len(triangles)*3/2),
		Transforms: make([]mgl32.Mat4, 0, len(triangles)*3/2),
	}

	var err error
	forEachEdge(triangles, opts.Mode, func(tri int, e Edge) bool {
		p1, p2 := positions[e.A], positions[e.B]
		m, terr := edgeTransform(p1, p2)
		switch {
		case terr == nil:
		case opts.Degenerate == DegenerateSkip:
			return true
		case errors.Is(terr, ErrNonFiniteEdge):
			err = &NonFiniteEdgeError{Triangle: tri, Edge: e, P1: p1, P2: p2}
			return false
		case opts.Degenerate == DegenerateIdentity:
			m = mgl32.Translate3D(p1[0], p1[1], p1[2]).Mul4(mgl32.Scale3D(0, 1, 1))
		default:
			err = &DegenerateEdgeError{Triangle: tri, Edge: e, Point: p1}
			return false
		}
		res.Edges = append(res.Edges, e)
		res.Transforms = append(res.Transforms, m)
		return true
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ValidateIndices checks that every triangle index addresses one of
// vertexCount vertices.
func ValidateIndices(vertexCount int, triangles [][3]uint32) error {
	for t, tri := range triangles {
		for _, idx := range tri {
			if uint64(idx) >= uint64(vertexCount) {
				return &IndexError{Triangle: t, Index: idx, VertexCount: vertexCount}
			}
		}
	}
	return nil
}

// Edges returns the edges selected by mode without touching positions.
// Indices are not validated.
func Edges(triangles [][3]uint32, mode EdgeMode) []Edge {
	edges := make([]Edge, 0, len(triangles)*3/2)
	forEachEdge(triangles, mode, func(_ int, e Edge) bool {
		edges = append(edges, e)
		return true
	})
	return edges
}

// forEachEdge walks the slots (i1,i2), (i2,i3), (i3,i1) of every triangle
// and calls fn for each selected edge until fn returns false.
func forEachEdge(triangles [][3]uint32, mode EdgeMode, fn func(tri int, e Edge) bool) {
	var seen map[uint64]struct{}
	if mode == EdgeModeUnique {
		seen = make(map[uint64]struct{}, len(triangles)*3/2)
	}

	for t, tri := range triangles {
		slots := [3]Edge{{tri[0], tri[1]}, {tri[1], tri[2]}, {tri[2], tri[0]}}
		for _, e := range slots {
			switch mode {
			case EdgeModeUnique:
				if e.A == e.B {
					continue
				}
				if e.A > e.B {
					e.A, e.B = e.B, e.A
				}
				key := uint64(e.A) | uint64(e.B)<<32
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
			default:
				if e.A >= e.B {
					continue
				}
			}
			if !fn(t, e) {
				return
			}
		}
	}
}

// EdgeTransform returns Translate(p1) * Rotate(X -> p2-p1) * Scale(|p2-p1|, 1, 1).
// ok is false when the points coincide or the transform is not finite.
func EdgeTransform(p1, p2 mgl32.Vec3) (m mgl32.Mat4, ok bool) {
	m, err := edgeTransform(p1, p2)
	return m, err == nil
}

func edgeTransform(p1, p2 mgl32.Vec3) (mgl32.Mat4, error) {
	if !finite(p1) || !finite(p2) {
		return mgl32.Ident4(), ErrNonFiniteEdge
	}
	if p1 == p2 {
		return mgl32.Ident4(), ErrDegenerateEdge
	}

	// float32 overflows when squaring components above ~1.8e19.
	dx := float64(p2[0]) - float64(p1[0])
	dy := float64(p2[1]) - float64(p1[1])
	dz := float64(p2[2]) - float64(p1[2])
	length := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if length == 0 {
		return mgl32.Ident4(), ErrDegenerateEdge
	}
	if length > math.MaxFloat32 {
		return mgl32.Ident4(), ErrNonFiniteEdge
	}

	dir := mgl32.Vec3{float32(dx / length), float32(dy / length), float32(dz / length)}
	m := mgl32.Translate3D(p1[0], p1[1], p1[2]).
		Mul4(rotationFromX(dir).Mat4()).
		Mul4(mgl32.Scale3D(float32(length), 1, 1))
	for _, v := range m {
		if !finite32(v) {
			return mgl32.Ident4(), ErrNonFiniteEdge
		}
	}
	return m, nil
}

func finite(v mgl32.Vec3) bool {
	return finite32(v[0]) && finite32(v[1]) && finite32(v[2])
}

func finite32(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

// rotationFromX returns the shortest-arc rotation taking +X onto the unit
// vector dir. The exactly antiparallel case turns half way around +Y.
func rotationFromX(dir mgl32.Vec3) mgl32.Quat {
	// w = 1 + dot(X, dir), rewritten for dir.x < 0 so that nearly
	// antiparallel edges keep their precision.
	var w float32
	if dir[0] >= 0 {
		w = 1 + dir[0]
	} else {
		side := dir[1]*dir[1] + dir[2]*dir[2]
		if side == 0 {
			return mgl32.Quat{W: 0, V: mgl32.Vec3{0, 1, 0}}
		}
		w = side / (1 - dir[0])
	}
	// V = X cross dir
	q := mgl32.Quat{W: w, V: mgl32.Vec3{0, -dir[2], dir[1]}}
	return q.Normalize()
}

// VertexTransforms returns a translation per position for the vertex
// marker overlay.
func VertexTransforms(positions []mgl32.Vec3) []mgl32.Mat4 {
	out := make([]mgl32.Mat4, len(positions))
	for i, p := range positions {
		out[i] = mgl32.Translate3D(p[0], p[1], p[2])
	}
	return out
}

// CrossSection returns the scale that gives the unit cylinder a tube
// radius. It is applied on the right of an edge transform.
func CrossSection(radius float32) mgl32.Mat4 {
	return mgl32.Scale3D(1, radius, radius)
}
