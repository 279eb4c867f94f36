package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshview/internal/engine/primitive"
	"github.com/Faultbox/meshview/internal/mesh"
	"github.com/Faultbox/meshview/internal/wireframe"
	"github.com/Faultbox/meshview/pkg/formats"
)

// wireframeFlags registers the extraction options shared by edges and
// export.
func wireframeFlags(fs *flag.FlagSet) (mode, degenerate *string) {
	mode = fs.String("mode", "canonical", "Edge mode: canonical or unique")
	degenerate = fs.String("degenerate", "reject", "Degenerate edges: reject, skip or identity")
	return mode, degenerate
}

func parseOptions(mode, degenerate string) (wireframe.Options, error) {
	m, err := wireframe.ParseEdgeMode(mode)
	if err != nil {
		return wireframe.Options{}, err
	}
	p, err := wireframe.ParseDegeneratePolicy(degenerate)
	if err != nil {
		return wireframe.Options{}, err
	}
	return wireframe.Options{Mode: m, Degenerate: p}, nil
}

func loadMesh(path string) (*mesh.Mesh, error) {
	m, err := mesh.Load(path)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func cmdInfo(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	pos, err := parseInterspersed(fs, args)
	if err != nil || len(pos) != 1 {
		return usageError("info <model>")
	}

	m, err := loadMesh(pos[0])
	if err != nil {
		return err
	}

	b := m.Bounds()
	size := b.Size()
	center := b.Center()

	canonical := len(wireframe.Edges(m.Triangles, wireframe.EdgeModeCanonical))
	unique := len(wireframe.Edges(m.Triangles, wireframe.EdgeModeUnique))

	// Identity keeps degenerate edges, skip drops them.
	kept, err := wireframe.Extract(m.Positions, m.Triangles, wireframe.Options{Degenerate: wireframe.DegenerateIdentity})
	if err != nil {
		return err
	}
	skipped, err := wireframe.Extract(m.Positions, m.Triangles, wireframe.Options{Degenerate: wireframe.DegenerateSkip})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Mesh: %s\n", m.Name)
	fmt.Fprintf(w, "Format: %s\n", formats.DetectFormat(pos[0]))
	fmt.Fprintf(w, "Vertices: %d\n", len(m.Positions))
	fmt.Fprintf(w, "Triangles: %d\n", len(m.Triangles))
	fmt.Fprintf(w, "Bounds: min (%g, %g, %g) max (%g, %g, %g)\n",
		b.Min.X(), b.Min.Y(), b.Min.Z(), b.Max.X(), b.Max.Y(), b.Max.Z())
	fmt.Fprintf(w, "Size: %g x %g x %g\n", size.X(), size.Y(), size.Z())
	fmt.Fprintf(w, "Center: (%g, %g, %g)\n", center.X(), center.Y(), center.Z())
	fmt.Fprintf(w, "Radius: %g\n", m.Radius())
	fmt.Fprintf(w, "Edges (canonical): %d\n", canonical)
	fmt.Fprintf(w, "Edges (unique): %d\n", unique)
	fmt.Fprintf(w, "Degenerate edges: %d\n", kept.Len()-skipped.Len())
	return nil
}

func cmdEdges(args []string, w io.Writer) error {
	const usage = "edges <model> [-mode canonical|unique] [-degenerate reject|skip|identity] [-n N]"

	fs := flag.NewFlagSet("edges", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	mode, degenerate := wireframeFlags(fs)
	limit := fs.Int("n", 0, "Print at most N edges (0 for all)")
	pos, err := parseInterspersed(fs, args)
	if err != nil || len(pos) != 1 {
		return usageError(usage)
	}

	opts, err := parseOptions(*mode, *degenerate)
	if err != nil {
		return err
	}
	m, err := loadMesh(pos[0])
	if err != nil {
		return err
	}
	res, err := wireframe.Extract(m.Positions, m.Triangles, opts)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	defer bw.Flush()

	fmt.Fprintf(bw, "%d edges (%s, %s)\n", res.Len(), opts.Mode, opts.Degenerate)
	for i, t := range res.Transforms {
		if *limit > 0 && i >= *limit {
			fmt.Fprintf(bw, "... %d more\n", res.Len()-i)
			break
		}
		e := res.Edges[i]
		fmt.Fprintf(bw, "[%d] %d-%d\n", i, e.A, e.B)
		for row := 0; row < 4; row++ {
			r := t.Row(row)
			fmt.Fprintf(bw, "  %10.5f %10.5f %10.5f %10.5f\n", r[0], r[1], r[2], r[3])
		}
	}
	return nil
}

func cmdExport(args []string, w io.Writer) error {
	const usage = "export <model> <out.stl> [-radius r] [-segments n] [-mode] [-degenerate] [-surface]"

	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	mode, degenerate := wireframeFlags(fs)
	radius := fs.Float64("radius", 0.004, "Tube radius relative to the model radius")
	segments := fs.Int("segments", 8, "Tube segments")
	surface := fs.Bool("surface", false, "Include the model surface")
	pos, err := parseInterspersed(fs, args)
	if err != nil || len(pos) != 2 {
		return usageError(usage)
	}
	if *radius <= 0 {
		return fmt.Errorf("radius must be positive, got %g", *radius)
	}
	if *segments < primitive.MinSegments {
		return fmt.Errorf("segments must be at least %d, got %d", primitive.MinSegments, *segments)
	}

	opts, err := parseOptions(*mode, *degenerate)
	if err != nil {
		return err
	}
	m, err := loadMesh(pos[0])
	if err != nil {
		return err
	}
	res, err := wireframe.Extract(m.Positions, m.Triangles, opts)
	if err != nil {
		return err
	}

	out := bakeWireframe(m, res.Transforms, float32(*radius)*m.Radius(), *segments)
	if *surface {
		out.Append(m)
	}

	f, err := os.Create(pos[1])
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := formats.WriteBinarySTL(bw, "meshview wireframe of "+m.Name, out.TriangleSoup()); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Wrote %s: %d edges, %d triangles\n", pos[1], res.Len(), len(out.Triangles))
	return nil
}

// bakeWireframe instances a tube of the given world radius on every edge.
func bakeWireframe(m *mesh.Mesh, transforms []mgl32.Mat4, radius float32, segments int) *mesh.Mesh {
	shape := wireframe.CrossSection(radius)
	tubes := make([]mgl32.Mat4, len(transforms))
	for i, t := range transforms {
		tubes[i] = t.Mul4(shape)
	}
	out := primitive.Instance(primitive.Cylinder(segments), tubes)
	out.Name = m.Name + "_wireframe"
	return out
}
