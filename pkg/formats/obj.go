// Wavefront OBJ mesh parser (geometry only).
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrInvalidOBJData is returned for malformed OBJ records.
var ErrInvalidOBJData = errors.New("invalid OBJ data")

// OBJ holds the positions and triangulated faces of an OBJ file.
// Texture coordinates, normals, groups and materials are ignored.
type OBJ struct {
	Name      string       // First "o" record, if any
	Vertices  [][3]float32 // "v" records in file order
	Triangles [][3]uint32  // Fan-triangulated "f" records
	Polygons  int          // Number of "f" records before triangulation
}

// ParseOBJ parses OBJ text. Face indices may be absolute (1-based) or
// relative (negative). Indices past the end of the vertex list are kept
// as-is and left for the mesh validator to reject.
func ParseOBJ(data []byte) (*OBJ, error) {
	o := &OBJ{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var corners []uint32
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: vertex needs 3 coordinates", ErrInvalidOBJData, lineNo)
			}
			p, err := parseCoords(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidOBJData, lineNo, err)
			}
			o.Vertices = append(o.Vertices, p)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: face needs at least 3 vertices", ErrInvalidOBJData, lineNo)
			}
			corners = corners[:0]
			for _, ref := range fields[1:] {
				idx, err := resolveOBJIndex(ref, len(o.Vertices))
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidOBJData, lineNo, err)
				}
				corners = append(corners, idx)
			}
			for i := 1; i+1 < len(corners); i++ {
				o.Triangles = append(o.Triangles, [3]uint32{corners[0], corners[i], corners[i+1]})
			}
			o.Polygons++

		case "o":
			if o.Name == "" && len(fields) > 1 {
				o.Name = strings.Join(fields[1:], " ")
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}
	return o, nil
}

// resolveOBJIndex turns a face reference ("7", "7/1", "7//3", "-1/2/3")
// into a 0-based vertex index.
func resolveOBJIndex(ref string, vertexCount int) (uint32, error) {
	if i := strings.IndexByte(ref, '/'); i >= 0 {
		ref = ref[:i]
	}
	n, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad vertex reference %q", ref)
	}
	switch {
	case n > 0:
		if n > 1<<32 {
			return 0, fmt.Errorf("vertex reference %d out of range", n)
		}
		return uint32(n - 1), nil
	case n < 0:
		abs := int64(vertexCount) + n
		if abs < 0 {
			return 0, fmt.Errorf("relative vertex reference %d before first vertex", n)
		}
		return uint32(abs), nil
	default:
		return 0, errors.New("vertex reference 0 (OBJ indices start at 1)")
	}
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return ParseOBJ(data)
}
