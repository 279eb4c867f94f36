// STL (stereolithography) mesh parser and writer.
package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// STL format errors.
var (
	ErrTruncatedSTLData = errors.New("truncated STL data")
	ErrInvalidSTLData   = errors.New("invalid STL data")
)

const (
	stlHeaderSize = 80
	stlRecordSize = 50 // normal + 3 vertices (12 float32) + attribute uint16
)

// STL is a triangle soup read from an STL file with coincident vertices
// welded into a shared index.
type STL struct {
	Name      string       // Header text (binary) or solid name (ASCII)
	Binary    bool         // True when read from the binary encoding
	Vertices  [][3]float32 // Unique vertex positions
	Triangles [][3]uint32  // Indices into Vertices, file order
}

// vertexWelder assigns one index per distinct position.
type vertexWelder struct {
	index    map[[3]float32]uint32
	vertices [][3]float32
}

func newVertexWelder(capacity int) *vertexWelder {
	return &vertexWelder{
		index:    make(map[[3]float32]uint32, capacity),
		vertices: make([][3]float32, 0, capacity),
	}
}

func (w *vertexWelder) add(v [3]float32) uint32 {
	if idx, ok := w.index[v]; ok {
		return idx
	}
	idx := uint32(len(w.vertices))
	w.vertices = append(w.vertices, v)
	w.index[v] = idx
	return idx
}

// ParseSTL parses binary or ASCII STL data.
// Binary is detected by the record count matching the data size, which
// also covers binary files whose header happens to begin with "solid".
func ParseSTL(data []byte) (*STL, error) {
	if len(data) >= stlHeaderSize+4 {
		count := binary.LittleEndian.Uint32(data[stlHeaderSize:])
		if uint64(len(data)) == stlHeaderSize+4+uint64(count)*stlRecordSize {
			return parseBinarySTL(data, int(count))
		}
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if bytes.HasPrefix(trimmed, []byte("solid")) {
		return parseASCIISTL(trimmed)
	}

	if len(data) < stlHeaderSize+4 {
		return nil, ErrTruncatedSTLData
	}
	count := binary.LittleEndian.Uint32(data[stlHeaderSize:])
	if uint64(len(data)) < stlHeaderSize+4+uint64(count)*stlRecordSize {
		return nil, fmt.Errorf("%w: header declares %d triangles, have %d bytes",
			ErrTruncatedSTLData, count, len(data))
	}
	return nil, fmt.Errorf("%w: trailing bytes after %d triangles", ErrInvalidSTLData, count)
}

func parseBinarySTL(data []byte, count int) (*STL, error) {
	s := &STL{
		Name:   strings.TrimRight(readNullString(data[:stlHeaderSize]), " "),
		Binary: true,
	}

	welder := newVertexWelder(count / 2)
	s.Triangles = make([][3]uint32, 0, count)

	rec := data[stlHeaderSize+4:]
	for i := 0; i < count; i++ {
		off := i * stlRecordSize
		var tri [3]uint32
		for v := 0; v < 3; v++ {
			var p [3]float32
			for c := 0; c < 3; c++ {
				const start = 12 // skip facet normal
				bits := binary.LittleEndian.Uint32(rec[off+start+12*v+4*c:])
				p[c] = math.Float32frombits(bits)
			}
			if !finite(p) {
				return nil, fmt.Errorf("%w: non-finite vertex in triangle %d", ErrInvalidSTLData, i)
			}
			tri[v] = welder.add(p)
		}
		s.Triangles = append(s.Triangles, tri)
	}

	s.Vertices = welder.vertices
	return s, nil
}

func parseASCIISTL(data []byte) (*STL, error) {
	s := &STL{}
	welder := newVertexWelder(256)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		facet   []uint32
		inFacet bool
		lineNo  int
	)
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if lineNo == 1 && len(fields) > 1 {
				s.Name = strings.Join(fields[1:], " ")
			}
		case "facet":
			if inFacet {
				return nil, fmt.Errorf("%w: line %d: nested facet", ErrInvalidSTLData, lineNo)
			}
			inFacet = true
			facet = facet[:0]
		case "vertex":
			if !inFacet {
				return nil, fmt.Errorf("%w: line %d: vertex outside facet", ErrInvalidSTLData, lineNo)
			}
			if len(fields) != 4 {
				return nil, fmt.Errorf("%w: line %d: vertex needs 3 coordinates", ErrInvalidSTLData, lineNo)
			}
			p, err := parseCoords(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidSTLData, lineNo, err)
			}
			facet = append(facet, welder.add(p))
		case "endfacet":
			if !inFacet || len(facet) != 3 {
				return nil, fmt.Errorf("%w: line %d: facet has %d vertices", ErrInvalidSTLData, lineNo, len(facet))
			}
			s.Triangles = append(s.Triangles, [3]uint32{facet[0], facet[1], facet[2]})
			inFacet = false
		case "endsolid":
			if inFacet {
				return nil, fmt.Errorf("%w: line %d: unterminated facet", ErrInvalidSTLData, lineNo)
			}
			s.Vertices = welder.vertices
			return s, nil
		}
		// "outer loop", "endloop" and facet normals carry nothing we keep.
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ASCII STL: %w", err)
	}
	return nil, fmt.Errorf("%w: missing endsolid", ErrTruncatedSTLData)
}

// ParseSTLFile parses an STL file from disk.
func ParseSTLFile(path string) (*STL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading STL file: %w", err)
	}
	return ParseSTL(data)
}

// WriteBinarySTL writes triangles as binary STL with computed facet
// normals. The header is truncated to 80 bytes.
func WriteBinarySTL(w io.Writer, header string, triangles [][3][3]float32) error {
	if uint64(len(triangles)) > math.MaxUint32 {
		return fmt.Errorf("too many triangles for STL: %d", len(triangles))
	}

	bw := bufio.NewWriter(w)

	var head [stlHeaderSize]byte
	copy(head[:], header)
	if _, err := bw.Write(head[:]); err != nil {
		return err
	}

	var buf [stlRecordSize]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(len(triangles)))
	if _, err := bw.Write(buf[:4]); err != nil {
		return err
	}

	for _, tri := range triangles {
		n := facetNormal(tri)
		putVec := func(off int, v [3]float32) {
			for c := 0; c < 3; c++ {
				binary.LittleEndian.PutUint32(buf[off+4*c:], math.Float32bits(v[c]))
			}
		}
		putVec(0, n)
		putVec(12, tri[0])
		putVec(24, tri[1])
		putVec(36, tri[2])
		buf[48], buf[49] = 0, 0
		if _, err := bw.Write(buf[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func facetNormal(tri [3][3]float32) [3]float32 {
	ax, ay, az := tri[1][0]-tri[0][0], tri[1][1]-tri[0][1], tri[1][2]-tri[0][2]
	bx, by, bz := tri[2][0]-tri[0][0], tri[2][1]-tri[0][1], tri[2][2]-tri[0][2]
	n := [3]float32{ay*bz - az*by, az*bx - ax*bz, ax*by - ay*bx}
	l := float32(math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])))
	if l == 0 {
		return [3]float32{}
	}
	return [3]float32{n[0] / l, n[1] / l, n[2] / l}
}

func parseCoords(fields []string) ([3]float32, error) {
	var p [3]float32
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return p, err
		}
		p[i] = float32(f)
	}
	if !finite(p) {
		return p, errors.New("non-finite coordinate")
	}
	return p, nil
}

func finite(p [3]float32) bool {
	for _, c := range p {
		if math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
			return false
		}
	}
	return true
}
